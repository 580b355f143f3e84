package match

import "context"

// Repository exposes match reads outside of a transaction.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	ListByStatus(ctx context.Context, statuses ...string) ([]Match, error)
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	// ListCompletedByTeam returns the newest completed matches of a team first.
	// seasonID 0 means every season.
	ListCompletedByTeam(ctx context.Context, teamID, seasonID int64, limit int) ([]Match, error)
	ListCompletedBetween(ctx context.Context, teamID, opponentID int64) ([]Match, error)
}

// Writer is bound to a single transaction.
type Writer interface {
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	// GetForUpdate reads a match and locks its row until the transaction ends.
	GetForUpdate(ctx context.Context, id int64) (Match, bool, error)
	Create(ctx context.Context, item Match) (Match, error)
	Update(ctx context.Context, item Match) error
	Delete(ctx context.Context, id int64) error
	ListBySeason(ctx context.Context, seasonID int64) ([]Match, error)
}
