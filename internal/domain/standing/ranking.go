package standing

import "sort"

// Rank orders rows by points, goal difference and goals for, all descending,
// falling back to team id ascending, and assigns positions 1..N. The input
// slice is left untouched.
func Rank(rows []Standing) []Standing {
	out := make([]Standing, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})
	for idx := range out {
		out[idx].Position = idx + 1
	}

	return out
}

// Less reports whether a ranks above b.
func Less(a, b Standing) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if gdA, gdB := a.GoalDifference(), b.GoalDifference(); gdA != gdB {
		return gdA > gdB
	}
	if a.GoalsFor != b.GoalsFor {
		return a.GoalsFor > b.GoalsFor
	}
	return a.TeamID < b.TeamID
}

// Positions indexes ranked rows by team id.
func Positions(ranked []Standing) map[int64]int {
	out := make(map[int64]int, len(ranked))
	for _, row := range ranked {
		out[row.TeamID] = row.Position
	}
	return out
}
