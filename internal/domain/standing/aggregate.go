package standing

import (
	"sort"

	"github.com/riskibarqy/league-standings/internal/domain/match"
)

const (
	PointsForWin  = 3
	PointsForDraw = 1
)

// Calculate builds one row per team of the season from scratch. Teams listed
// in teamIDs or appearing in any match get a row; only completed matches of
// seasonID move the counters. Rows come back ordered by team id with zero
// positions.
func Calculate(seasonID int64, teamIDs []int64, matches []match.Match) []Standing {
	rows := make(map[int64]*Standing, len(teamIDs))
	row := func(teamID int64) *Standing {
		if item, ok := rows[teamID]; ok {
			return item
		}
		item := &Standing{SeasonID: seasonID, TeamID: teamID}
		rows[teamID] = item
		return item
	}

	for _, teamID := range teamIDs {
		row(teamID)
	}

	for _, item := range matches {
		if item.SeasonID != seasonID {
			continue
		}
		home := row(item.HomeTeamID)
		away := row(item.AwayTeamID)
		if !item.IsCompleted() || item.HomeGoals == nil || item.AwayGoals == nil {
			continue
		}

		tally(home, *item.HomeGoals, *item.AwayGoals)
		tally(away, *item.AwayGoals, *item.HomeGoals)
	}

	out := make([]Standing, 0, len(rows))
	for _, item := range rows {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TeamID < out[j].TeamID
	})

	return out
}

func tally(row *Standing, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded

	switch match.Outcome(scored, conceded) {
	case match.ResultWin:
		row.Won++
		row.Points += PointsForWin
	case match.ResultDraw:
		row.Drawn++
		row.Points += PointsForDraw
	default:
		row.Lost++
	}
}

// TeamsOf lists the distinct team ids that appear in matches, ascending.
func TeamsOf(matches []match.Match) []int64 {
	seen := make(map[int64]struct{}, len(matches)*2)
	out := make([]int64, 0, len(matches)*2)
	for _, item := range matches {
		for _, teamID := range []int64{item.HomeTeamID, item.AwayTeamID} {
			if _, ok := seen[teamID]; ok {
				continue
			}
			seen[teamID] = struct{}{}
			out = append(out, teamID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
