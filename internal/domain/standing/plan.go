package standing

import (
	"sort"

	"github.com/riskibarqy/league-standings/internal/domain/match"
)

type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// MatchState is the part of a match that decides standings work.
type MatchState struct {
	SeasonID   int64
	Status     string
	HomeTeamID int64
	AwayTeamID int64
}

func StateOf(item match.Match) *MatchState {
	return &MatchState{
		SeasonID:   item.SeasonID,
		Status:     item.Status,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
	}
}

func (s *MatchState) completed() bool {
	return s != nil && s.Status == match.StatusCompleted
}

// Mutation is a single match change. Before is nil on create, After is nil on delete.
type Mutation struct {
	Operation Operation
	Before    *MatchState
	After     *MatchState
}

// Plan lists the standings work a mutation requires.
type Plan struct {
	// Seed maps a season to the teams that must have a row in it.
	Seed map[int64][]int64
	// Full lists seasons whose counters are rebuilt, ascending.
	Full []int64
}

func (p Plan) IsFull(seasonID int64) bool {
	for _, id := range p.Full {
		if id == seasonID {
			return true
		}
	}
	return false
}

// SeedSeasons returns seeded seasons in ascending order.
func (p Plan) SeedSeasons() []int64 {
	out := make([]int64, 0, len(p.Seed))
	for seasonID := range p.Seed {
		out = append(out, seasonID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (p Plan) Empty() bool {
	return len(p.Seed) == 0 && len(p.Full) == 0
}

// PlanRecompute decides which seasons a match mutation dirties.
func PlanRecompute(m Mutation) Plan {
	plan := Plan{Seed: make(map[int64][]int64)}
	full := make(map[int64]struct{})

	switch m.Operation {
	case OperationCreate:
		if m.After == nil {
			break
		}
		plan.seed(m.After)
		if m.After.completed() {
			full[m.After.SeasonID] = struct{}{}
		}
	case OperationUpdate:
		if m.After == nil {
			break
		}
		plan.seed(m.After)
		seasonChanged := m.Before != nil && m.Before.SeasonID != m.After.SeasonID
		if m.After.completed() || m.Before.completed() || seasonChanged {
			full[m.After.SeasonID] = struct{}{}
		}
		if seasonChanged && m.Before.completed() {
			full[m.Before.SeasonID] = struct{}{}
		}
	case OperationDelete:
		if m.Before.completed() {
			full[m.Before.SeasonID] = struct{}{}
		}
	}

	plan.Full = make([]int64, 0, len(full))
	for seasonID := range full {
		plan.Full = append(plan.Full, seasonID)
	}
	sort.Slice(plan.Full, func(i, j int) bool { return plan.Full[i] < plan.Full[j] })

	return plan
}

func (p *Plan) seed(state *MatchState) {
	p.Seed[state.SeasonID] = append(p.Seed[state.SeasonID], state.HomeTeamID, state.AwayTeamID)
}
