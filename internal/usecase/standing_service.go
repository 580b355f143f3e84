package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-standings/internal/domain/season"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/domain/uow"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRecomputeWorkers = 4
	maxRecomputeWorkers     = 32

	recalculateStatusSuccess = "success"
	recalculateStatusFailed  = "failed"
)

// StandingEntry is a ranked row joined with the team it belongs to.
type StandingEntry struct {
	standing.Standing
	TeamName       string
	Stadium        string
	CoachName      string
	GoalDifference int
}

type SeasonTable struct {
	Season  season.Season
	Entries []StandingEntry
}

type RecalculateSeasonResult struct {
	SeasonID   int64  `json:"seasonId"`
	Status     string `json:"status"`
	Rows       int    `json:"rows"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

type RecalculateAllResult struct {
	Workers      int                       `json:"workers"`
	SuccessCount int                       `json:"successCount"`
	FailedCount  int                       `json:"failedCount"`
	Seasons      []RecalculateSeasonResult `json:"seasons"`
}

type StandingService struct {
	runner       uow.Runner
	seasonRepo   season.Repository
	teamRepo     team.Repository
	standingRepo standing.Repository
	coordinator  *StandingsCoordinator
	workers      int
	logger       *logging.Logger
}

func NewStandingService(
	runner uow.Runner,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	standingRepo standing.Repository,
	coordinator *StandingsCoordinator,
	workers int,
	logger *logging.Logger,
) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}
	if coordinator == nil {
		coordinator = NewStandingsCoordinator(logger)
	}
	if workers <= 0 {
		workers = defaultRecomputeWorkers
	}
	if workers > maxRecomputeWorkers {
		workers = maxRecomputeWorkers
	}
	return &StandingService{
		runner:       runner,
		seasonRepo:   seasonRepo,
		teamRepo:     teamRepo,
		standingRepo: standingRepo,
		coordinator:  coordinator,
		workers:      workers,
		logger:       logger,
	}
}

// GetBySeason returns the ranked table of a season with team details.
func (s *StandingService) GetBySeason(ctx context.Context, seasonID int64) (SeasonTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.GetBySeason", seasonAttr(seasonID))
	defer span.End()

	if seasonID <= 0 {
		return SeasonTable{}, fmt.Errorf("%w: season id must be > 0", ErrInvalidInput)
	}

	var (
		item    season.Season
		exists  bool
		rows    []standing.Standing
		teamsBy map[int64]team.Team
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		item, exists, err = s.seasonRepo.GetByID(groupCtx, seasonID)
		if err != nil {
			return fmt.Errorf("get season: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		rows, err = s.standingRepo.ListBySeason(groupCtx, seasonID)
		if err != nil {
			return fmt.Errorf("list standings: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		teams, err := s.teamRepo.List(groupCtx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		teamsBy = make(map[int64]team.Team, len(teams))
		for _, t := range teams {
			teamsBy[t.ID] = t
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return SeasonTable{}, err
	}
	if !exists {
		return SeasonTable{}, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		return rows[i].TeamID < rows[j].TeamID
	})

	table := SeasonTable{Season: item, Entries: make([]StandingEntry, 0, len(rows))}
	for _, row := range rows {
		t := teamsBy[row.TeamID]
		table.Entries = append(table.Entries, StandingEntry{
			Standing:       row,
			TeamName:       t.Name,
			Stadium:        t.Stadium,
			CoachName:      t.CoachName,
			GoalDifference: row.GoalDifference(),
		})
	}
	return table, nil
}

// ListSeasons returns seasons that have a standings table.
func (s *StandingService) ListSeasons(ctx context.Context) ([]standing.SeasonSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListSeasons")
	defer span.End()

	items, err := s.standingRepo.ListSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list standing seasons: %w", err)
	}
	return items, nil
}

// Recalculate forces a full recompute of one season.
func (s *StandingService) Recalculate(ctx context.Context, seasonID int64) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Recalculate", seasonAttr(seasonID))
	defer span.End()

	if err := s.ensureSeason(ctx, seasonID); err != nil {
		return RecomputeResult{}, err
	}

	var result RecomputeResult
	err := s.runner.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		result, err = s.coordinator.Recompute(ctx, repos, seasonID)
		return err
	})
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("recalculate season %d: %w", seasonID, err)
	}
	return result, nil
}

// Refresh re-ranks one season from the stored counters.
func (s *StandingService) Refresh(ctx context.Context, seasonID int64) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Refresh", seasonAttr(seasonID))
	defer span.End()

	if err := s.ensureSeason(ctx, seasonID); err != nil {
		return RecomputeResult{}, err
	}

	var result RecomputeResult
	err := s.runner.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		var err error
		result, err = s.coordinator.Rerank(ctx, repos, seasonID)
		return err
	})
	if err != nil {
		return RecomputeResult{}, fmt.Errorf("refresh season %d: %w", seasonID, err)
	}
	return result, nil
}

// RecalculateAll fully recomputes every season, one transaction per season.
// A failing season does not stop the others.
func (s *StandingService) RecalculateAll(ctx context.Context) (RecalculateAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.RecalculateAll")
	defer span.End()

	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return RecalculateAllResult{}, fmt.Errorf("list seasons: %w", err)
	}

	result := RecalculateAllResult{
		Workers: s.workers,
		Seasons: make([]RecalculateSeasonResult, 0, len(seasons)),
	}
	if len(seasons) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return RecalculateAllResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan RecalculateSeasonResult, len(seasons))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, item := range seasons {
		seasonID := item.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecalculateSeasonResult{SeasonID: seasonID}
			err := s.runner.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
				recomputed, err := s.coordinator.Recompute(ctx, repos, seasonID)
				row.Rows = recomputed.Rows
				return err
			})
			row.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				s.logger.WarnContext(ctx, "season recalculation failed", "season_id", seasonID, "error", err)
				row.Status = recalculateStatusFailed
				row.Message = err.Error()
				row.Rows = 0
				failedCount.Add(1)
			} else {
				row.Status = recalculateStatusSuccess
				successCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return RecalculateAllResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Seasons = append(result.Seasons, row)
	}
	sort.SliceStable(result.Seasons, func(i, j int) bool {
		return result.Seasons[i].SeasonID < result.Seasons[j].SeasonID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	s.logger.InfoContext(ctx, "standings recalculated for all seasons",
		"seasons", len(seasons),
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func (s *StandingService) ensureSeason(ctx context.Context, seasonID int64) error {
	if seasonID <= 0 {
		return fmt.Errorf("%w: season id must be > 0", ErrInvalidInput)
	}
	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	return nil
}
