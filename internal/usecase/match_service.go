package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/season"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/domain/uow"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

// MatchInput carries every writable field of a match. Updates replace the
// whole row.
type MatchInput struct {
	SeasonID   int64
	HomeTeamID int64
	AwayTeamID int64
	MatchDate  time.Time
	Status     string
	HomeGoals  *int
	AwayGoals  *int
	Venue      string
	Referee    string
}

// MatchMutationResult is the stored match plus the standings work it caused.
type MatchMutationResult struct {
	Match      match.Match
	Recomputed []RecomputeResult
}

type MatchService struct {
	runner      uow.Runner
	matchRepo   match.Repository
	seasonRepo  season.Repository
	teamRepo    team.Repository
	coordinator *StandingsCoordinator
	logger      *logging.Logger
}

func NewMatchService(
	runner uow.Runner,
	matchRepo match.Repository,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	coordinator *StandingsCoordinator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if coordinator == nil {
		coordinator = NewStandingsCoordinator(logger)
	}
	return &MatchService{
		runner:      runner,
		matchRepo:   matchRepo,
		seasonRepo:  seasonRepo,
		teamRepo:    teamRepo,
		coordinator: coordinator,
		logger:      logger,
	}
}

func (s *MatchService) List(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	items, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return s.withTeamNames(ctx, items)
}

// ListScheduled returns matches that have not been played yet, soonest first.
func (s *MatchService) ListScheduled(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListScheduled")
	defer span.End()

	items, err := s.matchRepo.ListByStatus(ctx, match.StatusScheduled, match.StatusOngoing)
	if err != nil {
		return nil, fmt.Errorf("list scheduled matches: %w", err)
	}
	return s.withTeamNames(ctx, items)
}

func (s *MatchService) Get(ctx context.Context, matchID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	if matchID <= 0 {
		return match.Match{}, fmt.Errorf("%w: match id must be > 0", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	items, err := s.withTeamNames(ctx, []match.Match{item})
	if err != nil {
		return match.Match{}, err
	}
	return items[0], nil
}

func (s *MatchService) Create(ctx context.Context, input MatchInput) (MatchMutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	item, err := s.prepare(ctx, input)
	if err != nil {
		return MatchMutationResult{}, err
	}

	var result MatchMutationResult
	err = s.runner.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		created, err := repos.Matches().Create(ctx, item)
		if err != nil {
			return fmt.Errorf("create match: %w", err)
		}

		recomputed, err := s.coordinator.Apply(ctx, repos, standing.Mutation{
			Operation: standing.OperationCreate,
			After:     standing.StateOf(created),
		})
		if err != nil {
			return err
		}

		result = MatchMutationResult{Match: created, Recomputed: recomputed}
		return nil
	})
	if err != nil {
		return MatchMutationResult{}, s.mutationError(ctx, "create", 0, err)
	}

	result.Match = s.withNames(ctx, result.Match)
	s.logger.InfoContext(ctx, "match created",
		"match_id", result.Match.ID,
		"season_id", result.Match.SeasonID,
		"status", result.Match.Status,
		"recomputed_seasons", len(result.Recomputed),
	)
	return result, nil
}

func (s *MatchService) Update(ctx context.Context, matchID int64, input MatchInput) (MatchMutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

	if matchID <= 0 {
		return MatchMutationResult{}, fmt.Errorf("%w: match id must be > 0", ErrInvalidInput)
	}
	item, err := s.prepare(ctx, input)
	if err != nil {
		return MatchMutationResult{}, err
	}
	item.ID = matchID

	var result MatchMutationResult
	err = s.runner.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		before, exists, err := repos.Matches().GetForUpdate(ctx, matchID)
		if err != nil {
			return fmt.Errorf("get match: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
		}

		if err := repos.Matches().Update(ctx, item); err != nil {
			return fmt.Errorf("update match: %w", err)
		}

		recomputed, err := s.coordinator.Apply(ctx, repos, standing.Mutation{
			Operation: standing.OperationUpdate,
			Before:    standing.StateOf(before),
			After:     standing.StateOf(item),
		})
		if err != nil {
			return err
		}

		result = MatchMutationResult{Match: item, Recomputed: recomputed}
		return nil
	})
	if err != nil {
		return MatchMutationResult{}, s.mutationError(ctx, "update", matchID, err)
	}

	result.Match = s.withNames(ctx, result.Match)
	s.logger.InfoContext(ctx, "match updated",
		"match_id", matchID,
		"season_id", result.Match.SeasonID,
		"status", result.Match.Status,
		"recomputed_seasons", len(result.Recomputed),
	)
	return result, nil
}

func (s *MatchService) Delete(ctx context.Context, matchID int64) ([]RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	if matchID <= 0 {
		return nil, fmt.Errorf("%w: match id must be > 0", ErrInvalidInput)
	}

	var recomputed []RecomputeResult
	err := s.runner.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		before, exists, err := repos.Matches().GetForUpdate(ctx, matchID)
		if err != nil {
			return fmt.Errorf("get match: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
		}

		if err := repos.Matches().Delete(ctx, matchID); err != nil {
			return fmt.Errorf("delete match: %w", err)
		}

		recomputed, err = s.coordinator.Apply(ctx, repos, standing.Mutation{
			Operation: standing.OperationDelete,
			Before:    standing.StateOf(before),
		})
		return err
	})
	if err != nil {
		return nil, s.mutationError(ctx, "delete", matchID, err)
	}

	s.logger.InfoContext(ctx, "match deleted",
		"match_id", matchID,
		"recomputed_seasons", len(recomputed),
	)
	return recomputed, nil
}

// prepare validates input and checks that the season and both teams exist
// before any transaction is opened.
func (s *MatchService) prepare(ctx context.Context, input MatchInput) (match.Match, error) {
	item, err := normalizeMatchInput(input)
	if err != nil {
		return match.Match{}, err
	}

	if _, exists, err := s.seasonRepo.GetByID(ctx, item.SeasonID); err != nil {
		return match.Match{}, fmt.Errorf("get season: %w", err)
	} else if !exists {
		return match.Match{}, fmt.Errorf("%w: season=%d", ErrNotFound, item.SeasonID)
	}

	for _, teamID := range []int64{item.HomeTeamID, item.AwayTeamID} {
		if _, exists, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			return match.Match{}, fmt.Errorf("get team: %w", err)
		} else if !exists {
			return match.Match{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
		}
	}

	return item, nil
}

func normalizeMatchInput(input MatchInput) (match.Match, error) {
	if input.SeasonID <= 0 {
		return match.Match{}, fmt.Errorf("%w: season id must be > 0", ErrInvalidInput)
	}
	if input.HomeTeamID <= 0 || input.AwayTeamID <= 0 {
		return match.Match{}, fmt.Errorf("%w: home and away team ids must be > 0", ErrInvalidInput)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return match.Match{}, fmt.Errorf("%w: home and away team must differ", ErrInvalidInput)
	}
	if input.MatchDate.IsZero() {
		return match.Match{}, fmt.Errorf("%w: match date is required", ErrInvalidInput)
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = match.StatusScheduled
		if input.HomeGoals != nil && input.AwayGoals != nil {
			status = match.StatusCompleted
		}
	}
	status, ok := match.NormalizeStatus(status)
	if !ok {
		return match.Match{}, fmt.Errorf("%w: status must be one of %s", ErrInvalidInput, strings.Join(match.Statuses(), ", "))
	}

	if status == match.StatusCompleted {
		if input.HomeGoals == nil || input.AwayGoals == nil {
			return match.Match{}, fmt.Errorf("%w: completed match requires home and away goals", ErrInvalidInput)
		}
		if *input.HomeGoals < 0 || *input.AwayGoals < 0 {
			return match.Match{}, fmt.Errorf("%w: goals must be >= 0", ErrInvalidInput)
		}
	} else if input.HomeGoals != nil || input.AwayGoals != nil {
		return match.Match{}, fmt.Errorf("%w: goals are only allowed on completed matches, status=%s", ErrInvalidInput, status)
	}

	item := match.Match{
		SeasonID:   input.SeasonID,
		HomeTeamID: input.HomeTeamID,
		AwayTeamID: input.AwayTeamID,
		MatchDate:  input.MatchDate.UTC(),
		Status:     status,
		Venue:      strings.TrimSpace(input.Venue),
		Referee:    strings.TrimSpace(input.Referee),
	}
	if input.HomeGoals != nil {
		home, away := *input.HomeGoals, *input.AwayGoals
		item.HomeGoals = &home
		item.AwayGoals = &away
	}
	return item, nil
}

// mutationError maps store level failures onto usecase errors. Consistency
// failures pass through untouched so their detail survives.
func (s *MatchService) mutationError(ctx context.Context, operation string, matchID int64, err error) error {
	switch {
	case crerr.Is(err, ErrConsistencyFailure):
		s.logger.ErrorContext(ctx, "match mutation rolled back",
			"operation", operation,
			"match_id", matchID,
			"error", err,
			"detail", strings.Join(crerr.GetAllDetails(err), "; "),
		)
		return err
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
		return err
	case errors.Is(err, uow.ErrReferenceNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, uow.ErrConstraint):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%s match: %w", operation, err)
	}
}

func (s *MatchService) withNames(ctx context.Context, item match.Match) match.Match {
	items, err := s.withTeamNames(ctx, []match.Match{item})
	if err != nil {
		s.logger.WarnContext(ctx, "resolve team names failed", "match_id", item.ID, "error", err)
		return item
	}
	return items[0]
}

func (s *MatchService) withTeamNames(ctx context.Context, items []match.Match) ([]match.Match, error) {
	names, err := teamNames(ctx, s.teamRepo)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		item.HomeTeam = names[item.HomeTeamID]
		item.AwayTeam = names[item.AwayTeamID]
		out = append(out, item)
	}
	return out, nil
}

func teamNames(ctx context.Context, repo team.Repository) (map[int64]string, error) {
	teams, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	out := make(map[int64]string, len(teams))
	for _, item := range teams {
		out[item.ID] = item.Name
	}
	return out, nil
}
