package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/season"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/uow"
)

// TxRunner opens one read committed transaction per call. Season row locks
// taken inside it serialize competing recomputes.
type TxRunner struct {
	db *sqlx.DB
}

func NewTxRunner(db *sqlx.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, repos uow.Repositories) error) error {
	if fn == nil {
		return fmt.Errorf("transaction func is required")
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, txRepositories{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type txRepositories struct {
	tx *sqlx.Tx
}

func (t txRepositories) Seasons() season.Locker {
	return &SeasonRepository{db: t.tx}
}

func (t txRepositories) Matches() match.Writer {
	return &MatchRepository{db: t.tx}
}

func (t txRepositories) Standings() standing.Writer {
	return &StandingRepository{db: t.tx}
}
