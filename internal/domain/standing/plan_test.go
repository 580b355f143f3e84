package standing

import (
	"testing"

	"github.com/riskibarqy/league-standings/internal/domain/match"
)

func state(seasonID int64, status string) *MatchState {
	return &MatchState{SeasonID: seasonID, Status: status, HomeTeamID: 1, AwayTeamID: 2}
}

func TestPlanRecompute(t *testing.T) {
	tests := []struct {
		name     string
		mutation Mutation
		full     []int64
		seed     []int64
	}{
		{
			name:     "create scheduled only seeds",
			mutation: Mutation{Operation: OperationCreate, After: state(1, match.StatusScheduled)},
			seed:     []int64{1},
		},
		{
			name:     "create completed recomputes season",
			mutation: Mutation{Operation: OperationCreate, After: state(1, match.StatusCompleted)},
			full:     []int64{1},
			seed:     []int64{1},
		},
		{
			name: "update scheduled to ongoing does nothing but seed",
			mutation: Mutation{
				Operation: OperationUpdate,
				Before:    state(1, match.StatusScheduled),
				After:     state(1, match.StatusOngoing),
			},
			seed: []int64{1},
		},
		{
			name: "update to completed",
			mutation: Mutation{
				Operation: OperationUpdate,
				Before:    state(1, match.StatusOngoing),
				After:     state(1, match.StatusCompleted),
			},
			full: []int64{1},
			seed: []int64{1},
		},
		{
			name: "update away from completed",
			mutation: Mutation{
				Operation: OperationUpdate,
				Before:    state(1, match.StatusCompleted),
				After:     state(1, match.StatusCancelled),
			},
			full: []int64{1},
			seed: []int64{1},
		},
		{
			name: "completed match moves season",
			mutation: Mutation{
				Operation: OperationUpdate,
				Before:    state(2, match.StatusCompleted),
				After:     state(1, match.StatusCompleted),
			},
			full: []int64{1, 2},
			seed: []int64{1},
		},
		{
			name: "scheduled match moves season",
			mutation: Mutation{
				Operation: OperationUpdate,
				Before:    state(2, match.StatusScheduled),
				After:     state(3, match.StatusScheduled),
			},
			full: []int64{3},
			seed: []int64{3},
		},
		{
			name:     "delete completed",
			mutation: Mutation{Operation: OperationDelete, Before: state(4, match.StatusCompleted)},
			full:     []int64{4},
		},
		{
			name:     "delete scheduled",
			mutation: Mutation{Operation: OperationDelete, Before: state(4, match.StatusScheduled)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plan := PlanRecompute(tc.mutation)

			if len(plan.Full) != len(tc.full) {
				t.Fatalf("expected full %v, got %v", tc.full, plan.Full)
			}
			for idx := range tc.full {
				if plan.Full[idx] != tc.full[idx] {
					t.Fatalf("expected full %v, got %v", tc.full, plan.Full)
				}
				if !plan.IsFull(tc.full[idx]) {
					t.Fatalf("expected IsFull(%d)", tc.full[idx])
				}
			}

			seeded := plan.SeedSeasons()
			if len(seeded) != len(tc.seed) {
				t.Fatalf("expected seed %v, got %v", tc.seed, seeded)
			}
			for idx := range tc.seed {
				if seeded[idx] != tc.seed[idx] {
					t.Fatalf("expected seed %v, got %v", tc.seed, seeded)
				}
				if teams := plan.Seed[seeded[idx]]; len(teams) != 2 {
					t.Fatalf("expected both teams seeded, got %v", teams)
				}
			}
		})
	}
}

func TestPlanRecompute_EmptyWithoutStates(t *testing.T) {
	if plan := PlanRecompute(Mutation{Operation: OperationDelete}); !plan.Empty() {
		t.Fatalf("expected empty plan, got %+v", plan)
	}
}
