package season

import "context"

type Repository interface {
	List(ctx context.Context) ([]Season, error)
	GetByID(ctx context.Context, id int64) (Season, bool, error)
}

// Locker serializes standings work per season inside a transaction.
type Locker interface {
	Lock(ctx context.Context, id int64) (bool, error)
}
