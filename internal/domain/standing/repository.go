package standing

import "context"

// Repository exposes standings reads outside of a transaction.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID int64) ([]Standing, error)
	ListSeasons(ctx context.Context) ([]SeasonSummary, error)
}

// Writer is bound to a single transaction. Only the recompute coordinator
// writes through it.
type Writer interface {
	ListBySeason(ctx context.Context, seasonID int64) ([]Standing, error)
	// Seed inserts zero rows for teams that have none yet and reports how many
	// rows were inserted.
	Seed(ctx context.Context, seasonID int64, teamIDs []int64) (int, error)
	// Upsert overwrites counters, points and position of every given row.
	Upsert(ctx context.Context, rows []Standing) error
	UpdatePositions(ctx context.Context, seasonID int64, positions map[int64]int) error
}
