package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/league-standings/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	out := r.collect(func(match.Match) bool { return true })
	sortNewestFirst(out)
	return out, nil
}

func (r *MatchRepository) ListByStatus(_ context.Context, statuses ...string) ([]match.Match, error) {
	allowed := make(map[string]struct{}, len(statuses))
	for _, status := range statuses {
		allowed[status] = struct{}{}
	}
	out := r.collect(func(item match.Match) bool {
		_, ok := allowed[item.Status]
		return ok
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	var (
		item match.Match
		ok   bool
	)
	r.store.read(func(st *state) {
		item, ok = st.matches[id]
		item = cloneMatch(item)
	})
	if !ok {
		return match.Match{}, false, nil
	}
	return item, true, nil
}

func (r *MatchRepository) ListCompletedByTeam(_ context.Context, teamID, seasonID int64, limit int) ([]match.Match, error) {
	out := r.collect(func(item match.Match) bool {
		if !item.IsCompleted() || !item.Involves(teamID) {
			return false
		}
		return seasonID == 0 || item.SeasonID == seasonID
	})
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MatchRepository) ListCompletedBetween(_ context.Context, teamID, opponentID int64) ([]match.Match, error) {
	out := r.collect(func(item match.Match) bool {
		return item.IsCompleted() && item.Involves(teamID) && item.Involves(opponentID)
	})
	sortNewestFirst(out)
	return out, nil
}

func (r *MatchRepository) collect(keep func(match.Match) bool) []match.Match {
	out := make([]match.Match, 0)
	r.store.read(func(st *state) {
		for _, item := range st.matches {
			if keep(item) {
				out = append(out, cloneMatch(item))
			}
		}
	})
	return out
}

func sortNewestFirst(items []match.Match) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].MatchDate.Equal(items[j].MatchDate) {
			return items[i].MatchDate.After(items[j].MatchDate)
		}
		return items[i].ID > items[j].ID
	})
}
