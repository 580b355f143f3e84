package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/league-standings/internal/domain/standing"
)

type StandingRepository struct {
	store *Store
}

func NewStandingRepository(store *Store) *StandingRepository {
	return &StandingRepository{store: store}
}

func (r *StandingRepository) ListBySeason(_ context.Context, seasonID int64) ([]standing.Standing, error) {
	var out []standing.Standing
	r.store.read(func(st *state) {
		out = standingsOf(st, seasonID)
	})
	return out, nil
}

func (r *StandingRepository) ListSeasons(_ context.Context) ([]standing.SeasonSummary, error) {
	var out []standing.SeasonSummary
	r.store.read(func(st *state) {
		out = make([]standing.SeasonSummary, 0, len(st.standings))
		for seasonID, rows := range st.standings {
			if len(rows) == 0 {
				continue
			}
			out = append(out, standing.SeasonSummary{
				SeasonID:   seasonID,
				SeasonYear: st.seasons[seasonID].Year,
				TeamCount:  len(rows),
			})
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeasonYear != out[j].SeasonYear {
			return out[i].SeasonYear > out[j].SeasonYear
		}
		return out[i].SeasonID > out[j].SeasonID
	})
	return out, nil
}
