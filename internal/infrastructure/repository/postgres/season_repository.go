package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-standings/internal/domain/season"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db sqlx.ExtContext
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("season_id", "season_year").From("seasons").
		OrderBy("season_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, season.Season{ID: row.ID, Year: row.Year})
	}
	return out, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, id int64) (season.Season, bool, error) {
	query, args, err := qb.Select("season_id", "season_year").From("seasons").
		Where(qb.Eq("season_id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build select season by id query: %w", err)
	}

	var row seasonTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("select season by id: %w", err)
	}

	return season.Season{ID: row.ID, Year: row.Year}, true, nil
}

// Lock takes a row lock on the season that is held until the transaction
// ends, so recomputes of the same season run one after another.
func (r *SeasonRepository) Lock(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.Select("season_id").From("seasons").
		Where(qb.Eq("season_id", id)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build lock season query: %w", err)
	}

	var locked int64
	if err := sqlx.GetContext(ctx, r.db, &locked, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("lock season id=%d: %w", id, err)
	}
	return true, nil
}
