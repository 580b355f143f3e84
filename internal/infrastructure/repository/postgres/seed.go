package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads demo seasons and teams into an empty database. It
// reports whether anything was inserted.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons`); err != nil {
		return false, fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, s := range memory.SeedSeasons() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO seasons (season_id, season_year)
VALUES (:season_id, :season_year)
ON CONFLICT (season_id) DO NOTHING`, map[string]any{
			"season_id":   s.ID,
			"season_year": s.Year,
		})
		if err != nil {
			return false, fmt.Errorf("bind seed season %d query: %w", s.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return false, fmt.Errorf("seed season %d: %w", s.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (team_id, team_name, stadium, founded_year)
VALUES (:team_id, :team_name, :stadium, :founded_year)
ON CONFLICT (team_id) DO NOTHING`, map[string]any{
			"team_id":      t.ID,
			"team_name":    t.Name,
			"stadium":      t.Stadium,
			"founded_year": t.FoundedYear,
		})
		if err != nil {
			return false, fmt.Errorf("bind seed team %d query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return false, fmt.Errorf("seed team %d: %w", t.ID, err)
		}

		if t.CoachName == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO coaches (team_id, name)
VALUES ($1, $2)
ON CONFLICT (team_id) DO NOTHING`, t.ID, t.CoachName); err != nil {
			return false, fmt.Errorf("seed coach for team %d: %w", t.ID, err)
		}
	}

	// explicit ids leave the serial sequences behind
	for _, stmt := range []string{
		`SELECT setval(pg_get_serial_sequence('seasons', 'season_id'), (SELECT MAX(season_id) FROM seasons))`,
		`SELECT setval(pg_get_serial_sequence('teams', 'team_id'), (SELECT MAX(team_id) FROM teams))`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, fmt.Errorf("advance sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed tx: %w", err)
	}
	return true, nil
}
