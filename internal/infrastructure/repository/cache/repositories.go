package cache

import (
	"context"
	"errors"
	"strconv"

	"github.com/riskibarqy/league-standings/internal/domain/season"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	basecache "github.com/riskibarqy/league-standings/internal/platform/cache"
)

// Seasons and teams are reference data without a write path in the service,
// so their decorators never invalidate and rely on the TTL alone. Only hits
// are cached by id: a row inserted later is visible on the next lookup. Match
// and standing reads always go to the store.

// errMiss keeps a missing row out of the cache.
var errMiss = errors.New("cache: row not found")

type SeasonRepository struct {
	next  season.Repository
	cache *basecache.Store
}

func NewSeasonRepository(next season.Repository, cache *basecache.Store) *SeasonRepository {
	return &SeasonRepository{next: next, cache: cache}
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	items, err := basecache.Load(ctx, r.cache, "season:list", func(ctx context.Context) ([]season.Season, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]season.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]season.Season(nil), items...), nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, id int64) (season.Season, bool, error) {
	return loadByID(ctx, r.cache, "season:id:"+strconv.FormatInt(id, 10), func(ctx context.Context) (season.Season, bool, error) {
		return r.next.GetByID(ctx, id)
	})
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, "team:list", func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	return loadByID(ctx, r.cache, "team:id:"+strconv.FormatInt(teamID, 10), func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

func loadByID[T any](ctx context.Context, store *basecache.Store, key string, get func(context.Context) (T, bool, error)) (T, bool, error) {
	item, err := basecache.Load(ctx, store, key, func(ctx context.Context) (T, error) {
		item, exists, err := get(ctx)
		if err != nil {
			return item, err
		}
		if !exists {
			return item, errMiss
		}
		return item, nil
	})
	if errors.Is(err, errMiss) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return item, true, nil
}
