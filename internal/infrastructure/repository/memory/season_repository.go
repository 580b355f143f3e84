package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/league-standings/internal/domain/season"
)

type SeasonRepository struct {
	store *Store
}

func NewSeasonRepository(store *Store) *SeasonRepository {
	return &SeasonRepository{store: store}
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	var out []season.Season
	r.store.read(func(st *state) {
		out = make([]season.Season, 0, len(st.seasons))
		for _, item := range st.seasons {
			out = append(out, item)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, id int64) (season.Season, bool, error) {
	var (
		item season.Season
		ok   bool
	)
	r.store.read(func(st *state) {
		item, ok = st.seasons[id]
	})
	return item, ok, nil
}
