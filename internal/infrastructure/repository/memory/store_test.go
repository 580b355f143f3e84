package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/uow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CommitPublishesWrites(t *testing.T) {
	store := NewSeededStore()
	ctx := context.Background()

	var created match.Match
	err := store.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		created, err = repos.Matches().Create(ctx, match.Match{
			SeasonID:   SeasonID2024,
			HomeTeamID: TeamIDPersija,
			AwayTeamID: TeamIDBorneo,
			MatchDate:  time.Date(2024, time.October, 1, 12, 0, 0, 0, time.UTC),
			Status:     match.StatusScheduled,
		})
		if err != nil {
			return err
		}
		_, err = repos.Standings().Seed(ctx, SeasonID2024, []int64{TeamIDPersija, TeamIDBorneo})
		return err
	})
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(len(SeedMatches())))

	got, ok, err := NewMatchRepository(store).GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TeamIDBorneo, got.AwayTeamID)

	rows, err := NewStandingRepository(store).ListBySeason(ctx, SeasonID2024)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestStore_ErrorRollsBack(t *testing.T) {
	store := NewSeededStore()
	ctx := context.Background()
	before, err := NewMatchRepository(store).List(ctx)
	require.NoError(t, err)

	wantErr := errors.New("standings write failed")
	err = store.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if err := repos.Matches().Delete(ctx, before[0].ID); err != nil {
			return err
		}
		if err := repos.Standings().Upsert(ctx, []standing.Standing{{SeasonID: SeasonID2024, TeamID: TeamIDPersib, Points: 99}}); err != nil {
			return err
		}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	after, err := NewMatchRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))

	rows, err := NewStandingRepository(store).ListBySeason(ctx, SeasonID2024)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStore_PanicRollsBack(t *testing.T) {
	store := NewSeededStore()
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = store.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
			_, _ = repos.Standings().Seed(ctx, SeasonID2023, []int64{TeamIDPersija})
			panic("boom")
		})
	})

	rows, err := NewStandingRepository(store).ListBySeason(ctx, SeasonID2023)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// the writer lock must be released after a panic
	require.NoError(t, store.WithinTx(ctx, func(context.Context, uow.Repositories) error { return nil }))
}

func TestStore_CancelledContextRollsBack(t *testing.T) {
	store := NewSeededStore()
	ctx, cancel := context.WithCancel(context.Background())

	err := store.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		_, err := repos.Standings().Seed(ctx, SeasonID2023, []int64{TeamIDPersija})
		cancel()
		return err
	})
	require.ErrorIs(t, err, context.Canceled)

	rows, err := NewStandingRepository(store).ListBySeason(context.Background(), SeasonID2023)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStore_SeedIsIdempotent(t *testing.T) {
	store := NewSeededStore()
	ctx := context.Background()

	var first, second int
	require.NoError(t, store.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		first, err = repos.Standings().Seed(ctx, SeasonID2023, []int64{TeamIDPersija, TeamIDPersib})
		if err != nil {
			return err
		}
		second, err = repos.Standings().Seed(ctx, SeasonID2023, []int64{TeamIDPersib, TeamIDPSM})
		return err
	}))

	assert.Equal(t, 2, first)
	assert.Equal(t, 1, second)
}

func TestStore_MissingReferences(t *testing.T) {
	store := NewSeededStore()
	ctx := context.Background()

	err := store.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		_, err := repos.Matches().Create(ctx, match.Match{SeasonID: 99, HomeTeamID: TeamIDPersija, AwayTeamID: TeamIDPersib})
		return err
	})
	require.ErrorIs(t, err, uow.ErrReferenceNotFound)

	err = store.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		_, err := repos.Standings().Seed(ctx, SeasonID2023, []int64{404})
		return err
	})
	require.ErrorIs(t, err, uow.ErrReferenceNotFound)
}

func TestMatchRepository_Queries(t *testing.T) {
	store := NewSeededStore()
	repo := NewMatchRepository(store)
	ctx := context.Background()

	scheduled, err := repo.ListByStatus(ctx, match.StatusScheduled, match.StatusOngoing)
	require.NoError(t, err)
	require.Len(t, scheduled, 2)
	assert.True(t, scheduled[0].MatchDate.Before(scheduled[1].MatchDate))

	form, err := repo.ListCompletedByTeam(ctx, TeamIDPersib, 0, 2)
	require.NoError(t, err)
	require.Len(t, form, 2)
	assert.Equal(t, SeasonID2024, form[0].SeasonID)

	seasonForm, err := repo.ListCompletedByTeam(ctx, TeamIDPersib, SeasonID2023, 10)
	require.NoError(t, err)
	assert.Len(t, seasonForm, 2)

	h2h, err := repo.ListCompletedBetween(ctx, TeamIDPersija, TeamIDPersib)
	require.NoError(t, err)
	require.Len(t, h2h, 2)
	assert.True(t, h2h[0].MatchDate.After(h2h[1].MatchDate))
}
