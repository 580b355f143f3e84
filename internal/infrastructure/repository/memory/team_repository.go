package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/league-standings/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	var out []team.Team
	r.store.read(func(st *state) {
		out = make([]team.Team, 0, len(st.teams))
		for _, item := range st.teams {
			out = append(out, item)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	var (
		item team.Team
		ok   bool
	)
	r.store.read(func(st *state) {
		item, ok = st.teams[teamID]
	})
	return item, ok, nil
}
