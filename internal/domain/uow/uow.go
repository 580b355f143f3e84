package uow

import (
	"context"
	"errors"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/season"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
)

// Repositories are bound to one open transaction and must not escape it.
type Repositories interface {
	Seasons() season.Locker
	Matches() match.Writer
	Standings() standing.Writer
}

// Runner executes fn inside a transaction. The transaction commits when fn
// returns nil and rolls back on error, panic or context cancellation.
type Runner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

var (
	// ErrReferenceNotFound reports a write that points at a season or team
	// that does not exist.
	ErrReferenceNotFound = errors.New("referenced row not found")
	// ErrConstraint reports a write rejected by a store level check.
	ErrConstraint = errors.New("constraint violated")
)
