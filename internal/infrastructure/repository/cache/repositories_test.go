package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/season"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	seasonmock "github.com/riskibarqy/league-standings/internal/mocks/domain/season"
	teammock "github.com/riskibarqy/league-standings/internal/mocks/domain/team"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTeamRepository_CachesListNotMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	next.On("List", mock.Anything).Return([]team.Team{{ID: 1, Name: "Alpha"}}, nil).Once()
	next.On("GetByID", mock.Anything, int64(9)).Return(team.Team{}, false, nil).Twice()

	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.List(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", second[0].Name)

	for i := 0; i < 2; i++ {
		_, exists, err := repo.GetByID(ctx, 9)
		require.NoError(t, err)
		assert.False(t, exists)
	}
}

func TestTeamRepository_MissIsNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	next.On("GetByID", mock.Anything, int64(5)).Return(team.Team{}, false, nil).Once()
	next.On("GetByID", mock.Anything, int64(5)).Return(team.Team{ID: 5, Name: "Echo"}, true, nil).Once()

	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	_, exists, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.False(t, exists)

	for i := 0; i < 2; i++ {
		item, exists, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "Echo", item.Name)
	}
}

func TestSeasonRepository_CachesByID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := seasonmock.NewRepository(t)
	next.On("GetByID", mock.Anything, int64(2)).Return(season.Season{ID: 2, Year: "2024/2025"}, true, nil).Once()
	next.On("List", mock.Anything).Return([]season.Season{{ID: 2, Year: "2024/2025"}}, nil).Once()

	repo := NewSeasonRepository(next, basecache.NewStore(time.Minute))
	for i := 0; i < 2; i++ {
		item, exists, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "2024/2025", item.Year)

		items, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	}
}
