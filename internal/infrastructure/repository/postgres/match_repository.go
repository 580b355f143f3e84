package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

// MatchRepository serves reads from the pool and writes inside a transaction,
// depending on what db is bound to.
type MatchRepository struct {
	db sqlx.ExtContext
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		OrderBy("match_date DESC", "match_id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	return r.selectMatches(ctx, "list matches", query, args)
}

func (r *MatchRepository) ListByStatus(ctx context.Context, statuses ...string) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(qb.In("status", qb.Strings(statuses))).
		OrderBy("match_date ASC", "match_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by status query: %w", err)
	}

	return r.selectMatches(ctx, "list matches by status", query, args)
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	return r.getByID(ctx, id, false)
}

// GetForUpdate waits for concurrent writers of the row and returns the
// committed state they left behind.
func (r *MatchRepository) GetForUpdate(ctx context.Context, id int64) (match.Match, bool, error) {
	return r.getByID(ctx, id, true)
}

func (r *MatchRepository) getByID(ctx context.Context, id int64, lock bool) (match.Match, bool, error) {
	builder := qb.Select(matchColumns...).From("matches").
		Where(qb.Eq("match_id", id)).
		Limit(1)
	if lock {
		builder = builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match id=%d: %w", id, err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListCompletedByTeam(ctx context.Context, teamID, seasonID int64, limit int) ([]match.Match, error) {
	conditions := []qb.Condition{
		qb.Eq("status", match.StatusCompleted),
		qb.Or(qb.Eq("home_team_id", teamID), qb.Eq("away_team_id", teamID)),
	}
	if seasonID > 0 {
		conditions = append(conditions, qb.Eq("season_id", seasonID))
	}

	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(conditions...).
		OrderBy("match_date DESC", "match_id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team form query: %w", err)
	}

	return r.selectMatches(ctx, "list team form", query, args)
}

func (r *MatchRepository) ListCompletedBetween(ctx context.Context, teamID, opponentID int64) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(
			qb.Eq("status", match.StatusCompleted),
			qb.Or(
				qb.And(qb.Eq("home_team_id", teamID), qb.Eq("away_team_id", opponentID)),
				qb.And(qb.Eq("home_team_id", opponentID), qb.Eq("away_team_id", teamID)),
			),
		).
		OrderBy("match_date DESC", "match_id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list head to head query: %w", err)
	}

	return r.selectMatches(ctx, "list head to head", query, args)
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID int64) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).From("matches").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by season query: %w", err)
	}

	return r.selectMatches(ctx, "list matches by season", query, args)
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	query, args, err := qb.InsertModel("matches", matchWriteModelFrom(item), "RETURNING match_id")
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	var id int64
	if err := sqlx.GetContext(ctx, r.db, &id, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", translateError(err))
	}

	item.ID = id
	return item, nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	builder, err := qb.UpdateModel("matches", matchWriteModelFrom(item))
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}
	query, args, err := builder.
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("match_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match id=%d: %w", item.ID, translateError(err))
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update match id=%d: no row updated", item.ID)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := qb.DeleteFrom("matches").Where(qb.Eq("match_id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete match id=%d: %w", id, translateError(err))
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("delete match id=%d: no row deleted", id)
	}
	return nil
}

func (r *MatchRepository) selectMatches(ctx context.Context, op, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.ID,
		SeasonID:   row.SeasonID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		MatchDate:  row.MatchDate,
		Status:     row.Status,
		HomeGoals:  nullInt64ToIntPtr(row.HomeGoals),
		AwayGoals:  nullInt64ToIntPtr(row.AwayGoals),
		Venue:      row.Venue,
		Referee:    row.Referee,
	}
}

func matchWriteModelFrom(item match.Match) matchWriteModel {
	return matchWriteModel{
		SeasonID:   item.SeasonID,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		MatchDate:  item.MatchDate,
		Status:     item.Status,
		HomeGoals:  item.HomeGoals,
		AwayGoals:  item.AwayGoals,
		Venue:      item.Venue,
		Referee:    item.Referee,
	}
}
