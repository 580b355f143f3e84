package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

type StandingRepository struct {
	db sqlx.ExtContext
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListBySeason(ctx context.Context, seasonID int64) ([]standing.Standing, error) {
	query, args, err := qb.Select(standingColumns...).From("standings").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("position ASC", "team_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings season=%d: %w", seasonID, err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Standing{
			SeasonID:     row.SeasonID,
			TeamID:       row.TeamID,
			Position:     row.Position,
			Played:       row.Played,
			Won:          row.Won,
			Drawn:        row.Drawn,
			Lost:         row.Lost,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			Points:       row.Points,
		})
	}
	return out, nil
}

func (r *StandingRepository) ListSeasons(ctx context.Context) ([]standing.SeasonSummary, error) {
	query, args, err := qb.Select("s.season_id", "se.season_year", "COUNT(*) AS team_count").
		From("standings s").
		Join("JOIN seasons se ON se.season_id = s.season_id").
		GroupBy("s.season_id", "se.season_year").
		OrderBy("se.season_year DESC", "s.season_id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standing seasons query: %w", err)
	}

	var rows []seasonSummaryModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standing seasons: %w", err)
	}

	out := make([]standing.SeasonSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.SeasonSummary{
			SeasonID:   row.SeasonID,
			SeasonYear: row.SeasonYear,
			TeamCount:  row.TeamCount,
		})
	}
	return out, nil
}

func (r *StandingRepository) Seed(ctx context.Context, seasonID int64, teamIDs []int64) (int, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}

	unique := make(map[int64]struct{}, len(teamIDs))
	ordered := make([]int64, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if _, ok := unique[teamID]; ok {
			continue
		}
		unique[teamID] = struct{}{}
		ordered = append(ordered, teamID)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	builder := qb.InsertInto("standings").Columns("season_id", "team_id")
	for _, teamID := range ordered {
		builder.Values(seasonID, teamID)
	}
	query, args, err := builder.Suffix("ON CONFLICT (season_id, team_id) DO NOTHING").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build seed standings query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("seed standings season=%d: %w", seasonID, translateError(err))
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("seed standings rows affected: %w", err)
	}
	return int(inserted), nil
}

func (r *StandingRepository) Upsert(ctx context.Context, rows []standing.Standing) error {
	if len(rows) == 0 {
		return nil
	}

	builder := qb.InsertInto("standings").Columns(standingColumns...)
	for _, row := range rows {
		builder.Values(
			row.SeasonID,
			row.TeamID,
			row.Position,
			row.Played,
			row.Won,
			row.Drawn,
			row.Lost,
			row.GoalsFor,
			row.GoalsAgainst,
			row.Points,
		)
	}
	query, args, err := builder.Suffix(`ON CONFLICT (season_id, team_id)
DO UPDATE SET
    position = EXCLUDED.position,
    played = EXCLUDED.played,
    won = EXCLUDED.won,
    drawn = EXCLUDED.drawn,
    lost = EXCLUDED.lost,
    goals_for = EXCLUDED.goals_for,
    goals_against = EXCLUDED.goals_against,
    points = EXCLUDED.points,
    updated_at = NOW()`).ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert standings query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert standings: %w", translateError(err))
	}
	return nil
}

func (r *StandingRepository) UpdatePositions(ctx context.Context, seasonID int64, positions map[int64]int) error {
	if len(positions) == 0 {
		return nil
	}

	teamIDs := make([]int64, 0, len(positions))
	for teamID := range positions {
		teamIDs = append(teamIDs, teamID)
	}
	sort.Slice(teamIDs, func(i, j int) bool { return teamIDs[i] < teamIDs[j] })
	values := make([]int64, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		values = append(values, int64(positions[teamID]))
	}

	const query = `UPDATE standings AS s
SET position = v.position, updated_at = NOW()
FROM (SELECT UNNEST($1::bigint[]) AS team_id, UNNEST($2::int[]) AS position) AS v
WHERE s.season_id = $3 AND s.team_id = v.team_id`

	result, err := r.db.ExecContext(ctx, query, pq.Array(teamIDs), pq.Array(values), seasonID)
	if err != nil {
		return fmt.Errorf("update standing positions season=%d: %w", seasonID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update standing positions rows affected: %w", err)
	}
	if int(affected) != len(positions) {
		return fmt.Errorf("update standing positions season=%d: updated %d rows, expected %d", seasonID, affected, len(positions))
	}
	return nil
}
