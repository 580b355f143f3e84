package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/season"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/domain/uow"
	idgen "github.com/riskibarqy/league-standings/internal/platform/id"
)

type state struct {
	seasons   map[int64]season.Season
	teams     map[int64]team.Team
	matches   map[int64]match.Match
	standings map[int64]map[int64]standing.Standing
}

func newState() *state {
	return &state{
		seasons:   make(map[int64]season.Season),
		teams:     make(map[int64]team.Team),
		matches:   make(map[int64]match.Match),
		standings: make(map[int64]map[int64]standing.Standing),
	}
}

func (s *state) clone() *state {
	out := &state{
		seasons:   make(map[int64]season.Season, len(s.seasons)),
		teams:     make(map[int64]team.Team, len(s.teams)),
		matches:   make(map[int64]match.Match, len(s.matches)),
		standings: make(map[int64]map[int64]standing.Standing, len(s.standings)),
	}
	for k, v := range s.seasons {
		out.seasons[k] = v
	}
	for k, v := range s.teams {
		out.teams[k] = v
	}
	for k, v := range s.matches {
		out.matches[k] = cloneMatch(v)
	}
	for seasonID, rows := range s.standings {
		copied := make(map[int64]standing.Standing, len(rows))
		for teamID, row := range rows {
			copied[teamID] = row
		}
		out.standings[seasonID] = copied
	}
	return out
}

func cloneMatch(item match.Match) match.Match {
	if item.HomeGoals != nil {
		v := *item.HomeGoals
		item.HomeGoals = &v
	}
	if item.AwayGoals != nil {
		v := *item.AwayGoals
		item.AwayGoals = &v
	}
	return item
}

// Store keeps every table in process memory. Transactions run one at a time
// against a private copy that replaces the live state only on commit.
type Store struct {
	mu      sync.RWMutex
	writer  sync.Mutex
	state   *state
	matchID *idgen.Sequence
}

func NewStore() *Store {
	return &Store{
		state:   newState(),
		matchID: idgen.NewSequence(0),
	}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// PutSeasons and PutTeams load reference data, which has no write path
// through the service.
func (s *Store) PutSeasons(items ...season.Season) {
	s.writer.Lock()
	defer s.writer.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.state.seasons[item.ID] = item
	}
}

func (s *Store) PutTeams(items ...team.Team) {
	s.writer.Lock()
	defer s.writer.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.state.teams[item.ID] = item
	}
}

// PutMatches stores matches verbatim, keeping their ids, without touching standings.
func (s *Store) PutMatches(items ...match.Match) {
	s.writer.Lock()
	defer s.writer.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		if item.ID == 0 {
			item.ID = s.matchID.Next()
		}
		s.matchID.Observe(item.ID)
		s.state.matches[item.ID] = cloneMatch(item)
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos uow.Repositories) error) (err error) {
	if fn == nil {
		return fmt.Errorf("transaction func is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.writer.Lock()
	defer s.writer.Unlock()

	s.mu.RLock()
	working := s.state.clone()
	s.mu.RUnlock()

	tx := &txRepositories{state: working, matchID: s.matchID}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = working
	s.mu.Unlock()
	return nil
}

type txRepositories struct {
	state   *state
	matchID *idgen.Sequence
}

func (t *txRepositories) Seasons() season.Locker {
	return txSeasons{state: t.state}
}

func (t *txRepositories) Matches() match.Writer {
	return txMatches{state: t.state, matchID: t.matchID}
}

func (t *txRepositories) Standings() standing.Writer {
	return txStandings{state: t.state}
}

type txSeasons struct {
	state *state
}

// Lock only checks existence; the store-wide writer lock already serializes transactions.
func (r txSeasons) Lock(_ context.Context, id int64) (bool, error) {
	_, ok := r.state.seasons[id]
	return ok, nil
}

type txMatches struct {
	state   *state
	matchID *idgen.Sequence
}

func (r txMatches) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	item, ok := r.state.matches[id]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(item), true, nil
}

// GetForUpdate needs no row lock: the writer mutex is held for the whole
// transaction.
func (r txMatches) GetForUpdate(ctx context.Context, id int64) (match.Match, bool, error) {
	return r.GetByID(ctx, id)
}

func (r txMatches) Create(_ context.Context, item match.Match) (match.Match, error) {
	if err := r.checkRefs(item); err != nil {
		return match.Match{}, err
	}
	item.ID = r.matchID.Next()
	r.state.matches[item.ID] = cloneMatch(item)
	return cloneMatch(item), nil
}

func (r txMatches) Update(_ context.Context, item match.Match) error {
	if _, ok := r.state.matches[item.ID]; !ok {
		return fmt.Errorf("match %d not found", item.ID)
	}
	if err := r.checkRefs(item); err != nil {
		return err
	}
	r.state.matches[item.ID] = cloneMatch(item)
	return nil
}

func (r txMatches) Delete(_ context.Context, id int64) error {
	if _, ok := r.state.matches[id]; !ok {
		return fmt.Errorf("match %d not found", id)
	}
	delete(r.state.matches, id)
	return nil
}

func (r txMatches) ListBySeason(_ context.Context, seasonID int64) ([]match.Match, error) {
	out := make([]match.Match, 0)
	for _, item := range r.state.matches {
		if item.SeasonID == seasonID {
			out = append(out, cloneMatch(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// checkRefs mirrors the foreign keys of the relational schema.
func (r txMatches) checkRefs(item match.Match) error {
	if _, ok := r.state.seasons[item.SeasonID]; !ok {
		return fmt.Errorf("%w: season %d", uow.ErrReferenceNotFound, item.SeasonID)
	}
	for _, teamID := range []int64{item.HomeTeamID, item.AwayTeamID} {
		if _, ok := r.state.teams[teamID]; !ok {
			return fmt.Errorf("%w: team %d", uow.ErrReferenceNotFound, teamID)
		}
	}
	return nil
}

type txStandings struct {
	state *state
}

func (r txStandings) ListBySeason(_ context.Context, seasonID int64) ([]standing.Standing, error) {
	return standingsOf(r.state, seasonID), nil
}

func (r txStandings) Seed(_ context.Context, seasonID int64, teamIDs []int64) (int, error) {
	if _, ok := r.state.seasons[seasonID]; !ok {
		return 0, fmt.Errorf("%w: season %d", uow.ErrReferenceNotFound, seasonID)
	}
	rows := r.state.standings[seasonID]
	if rows == nil {
		rows = make(map[int64]standing.Standing)
		r.state.standings[seasonID] = rows
	}

	inserted := 0
	for _, teamID := range teamIDs {
		if _, ok := rows[teamID]; ok {
			continue
		}
		if _, ok := r.state.teams[teamID]; !ok {
			return inserted, fmt.Errorf("%w: team %d", uow.ErrReferenceNotFound, teamID)
		}
		rows[teamID] = standing.Standing{SeasonID: seasonID, TeamID: teamID}
		inserted++
	}
	return inserted, nil
}

func (r txStandings) Upsert(_ context.Context, items []standing.Standing) error {
	for _, item := range items {
		rows := r.state.standings[item.SeasonID]
		if rows == nil {
			rows = make(map[int64]standing.Standing)
			r.state.standings[item.SeasonID] = rows
		}
		rows[item.TeamID] = item
	}
	return nil
}

func (r txStandings) UpdatePositions(_ context.Context, seasonID int64, positions map[int64]int) error {
	rows := r.state.standings[seasonID]
	for teamID, position := range positions {
		row, ok := rows[teamID]
		if !ok {
			return fmt.Errorf("standing for team %d in season %d not found", teamID, seasonID)
		}
		row.Position = position
		rows[teamID] = row
	}
	return nil
}

func standingsOf(st *state, seasonID int64) []standing.Standing {
	rows := st.standings[seasonID]
	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}
