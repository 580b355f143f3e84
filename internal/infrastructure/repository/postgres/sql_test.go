package postgres

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/uow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func TestTranslateError(t *testing.T) {
	t.Run("foreign key violation", func(t *testing.T) {
		err := translateError(&pq.Error{Code: pqForeignKeyViolation, Constraint: "matches_season_id_fkey"})
		assert.ErrorIs(t, err, uow.ErrReferenceNotFound)
		assert.Contains(t, err.Error(), "matches_season_id_fkey")
	})

	t.Run("check violation", func(t *testing.T) {
		err := translateError(&pq.Error{Code: pqCheckViolation, Constraint: "matches_goals_iff_completed"})
		assert.ErrorIs(t, err, uow.ErrConstraint)
	})

	t.Run("unrelated error untouched", func(t *testing.T) {
		in := errors.New("connection reset")
		assert.Same(t, in, translateError(in))
		assert.NoError(t, translateError(nil))
	})
}

func TestTxRunner_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	runner := NewTxRunner(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT season_id FROM seasons WHERE season_id = $1 FOR UPDATE")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"season_id"}).AddRow(int64(2)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO standings (season_id, team_id) VALUES ($1, $2), ($3, $4) ON CONFLICT (season_id, team_id) DO NOTHING")).
		WithArgs(int64(2), int64(1), int64(2), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var inserted int
	err := runner.WithinTx(context.Background(), func(ctx context.Context, repos uow.Repositories) error {
		ok, err := repos.Seasons().Lock(ctx, 2)
		if err != nil {
			return err
		}
		require.True(t, ok)
		inserted, err = repos.Standings().Seed(ctx, 2, []int64{5, 1, 5})
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	runner := NewTxRunner(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO standings").
		WillReturnError(&pq.Error{Code: pqForeignKeyViolation, Constraint: "standings_team_id_fkey"})
	mock.ExpectRollback()

	err := runner.WithinTx(context.Background(), func(ctx context.Context, repos uow.Repositories) error {
		return repos.Standings().Upsert(ctx, []standing.Standing{{SeasonID: 1, TeamID: 99}})
	})

	require.ErrorIs(t, err, uow.ErrReferenceNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_RollsBackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)
	runner := NewTxRunner(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = runner.WithinTx(context.Background(), func(context.Context, uow.Repositories) error {
			panic("boom")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeasonRepository_LockMissingSeason(t *testing.T) {
	db, mock := newMockDB(t)
	runner := NewTxRunner(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"season_id"}))
	mock.ExpectRollback()

	errMissing := errors.New("missing")
	err := runner.WithinTx(context.Background(), func(ctx context.Context, repos uow.Repositories) error {
		ok, err := repos.Seasons().Lock(ctx, 7)
		if err != nil {
			return err
		}
		if !ok {
			return errMissing
		}
		return nil
	})

	require.ErrorIs(t, err, errMissing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStandingRepository_UpdatePositionsChecksRowCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStandingRepository(db)

	mock.ExpectExec("UPDATE standings AS s").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePositions(context.Background(), 3, map[int64]int{10: 1, 11: 2})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM matches WHERE match_id = $1 LIMIT 1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(matchColumns))

	_, ok, err := repo.GetByID(context.Background(), 42)

	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStandingRepository_SeedSkipsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStandingRepository(db)

	inserted, err := repo.Seed(context.Background(), 1, nil)

	require.NoError(t, err)
	assert.Zero(t, inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepository_CreateAndUpdateShareColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	homeGoals, awayGoals := 2, 1
	item := match.Match{
		SeasonID:   1,
		HomeTeamID: 3,
		AwayTeamID: 4,
		MatchDate:  time.Date(2024, time.August, 1, 12, 0, 0, 0, time.UTC),
		Status:     match.StatusCompleted,
		HomeGoals:  &homeGoals,
		AwayGoals:  &awayGoals,
		Venue:      "GBK",
	}

	columns := "season_id, home_team_id, away_team_id, match_date, status, home_team_goals, away_team_goals, venue, referee"
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO matches (" + columns + ") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING match_id")).
		WillReturnRows(sqlmock.NewRows([]string{"match_id"}).AddRow(int64(11)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE matches SET season_id = $1, home_team_id = $2, away_team_id = $3, match_date = $4, status = $5, home_team_goals = $6, away_team_goals = $7, venue = $8, referee = $9, updated_at = NOW() WHERE match_id = $10")).
		WithArgs(int64(2), int64(3), int64(4), sqlmock.AnyArg(), match.StatusCompleted, sqlmock.AnyArg(), sqlmock.AnyArg(), "GBK", "", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)

	created.SeasonID = 2
	require.NoError(t, repo.Update(context.Background(), created))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepository_GetForUpdateLocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	runner := NewTxRunner(db)

	kickoff := time.Date(2024, time.August, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM matches WHERE match_id = $1 LIMIT 1 FOR UPDATE")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(matchColumns).
			AddRow(int64(9), int64(2), int64(3), int64(4), kickoff, match.StatusCompleted, int64(1), int64(0), "GBK", ""))
	mock.ExpectCommit()

	var got match.Match
	err := runner.WithinTx(context.Background(), func(ctx context.Context, repos uow.Repositories) error {
		item, ok, err := repos.Matches().GetForUpdate(ctx, 9)
		if err != nil {
			return err
		}
		require.True(t, ok)
		got = item
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), got.SeasonID)
	require.NotNil(t, got.HomeGoals)
	assert.Equal(t, 1, *got.HomeGoals)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStandingRepository_SeedDedupesAndCountsInserted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStandingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO standings (season_id, team_id) VALUES ($1, $2), ($3, $4) ON CONFLICT (season_id, team_id) DO NOTHING")).
		WithArgs(int64(4), int64(3), int64(4), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	inserted, err := repo.Seed(context.Background(), 4, []int64{7, 3, 7})

	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStandingRepository_UpsertOverwritesEveryCounter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStandingRepository(db)

	assignments := make([]string, 0, len(standingColumns))
	for _, col := range standingColumns[2:] {
		assignments = append(assignments, regexp.QuoteMeta(col+" = EXCLUDED."+col))
	}
	pattern := "^" + regexp.QuoteMeta("INSERT INTO standings ("+strings.Join(standingColumns, ", ")+") VALUES "+
		"($1, $2, $3, $4, $5, $6, $7, $8, $9, $10), ($11, $12, $13, $14, $15, $16, $17, $18, $19, $20) "+
		"ON CONFLICT (season_id, team_id)") +
		`\s+DO UPDATE SET\s+` + strings.Join(assignments, `,\s+`) + `,\s+updated_at = NOW\(\)$`

	mock.ExpectExec(pattern).
		WithArgs(
			int64(1), int64(10), 1, 2, 2, 0, 0, 5, 1, 6,
			int64(1), int64(11), 2, 2, 0, 0, 2, 1, 5, 0,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.Upsert(context.Background(), []standing.Standing{
		{SeasonID: 1, TeamID: 10, Position: 1, Played: 2, Won: 2, GoalsFor: 5, GoalsAgainst: 1, Points: 6},
		{SeasonID: 1, TeamID: 11, Position: 2, Played: 2, Lost: 2, GoalsFor: 1, GoalsAgainst: 5},
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
