package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/uow"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

const (
	recomputeModeFull   = "full"
	recomputeModeRerank = "rerank"
)

// RecomputeResult describes the standings work done for one season.
type RecomputeResult struct {
	SeasonID int64  `json:"seasonId"`
	Mode     string `json:"mode"`
	Rows     int    `json:"rows"`
	Seeded   int    `json:"seeded"`
}

// StandingsCoordinator keeps standings rows in line with the matches of a
// season. Every method runs inside the caller's transaction and never commits.
type StandingsCoordinator struct {
	logger *logging.Logger
	now    func() time.Time
}

func NewStandingsCoordinator(logger *logging.Logger) *StandingsCoordinator {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsCoordinator{
		logger: logger,
		now:    time.Now,
	}
}

// Apply performs the standings work a single match mutation requires.
// Seasons are handled in ascending id order so row locks are always taken in
// the same order.
func (c *StandingsCoordinator) Apply(ctx context.Context, repos uow.Repositories, mutation standing.Mutation) ([]RecomputeResult, error) {
	plan := standing.PlanRecompute(mutation)
	if plan.Empty() {
		return nil, nil
	}

	seasonIDs := dirtySeasons(plan)
	results := make([]RecomputeResult, 0, len(seasonIDs))
	for _, seasonID := range seasonIDs {
		if plan.IsFull(seasonID) {
			result, err := c.Recompute(ctx, repos, seasonID, plan.Seed[seasonID]...)
			if err != nil {
				return nil, err
			}
			results = append(results, result)
			continue
		}

		result, err := c.seedOnly(ctx, repos, seasonID, plan.Seed[seasonID])
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// Recompute rebuilds every counter of a season from its completed matches and
// ranks the result. Rows of teams that no longer have matches are zeroed,
// never deleted.
func (c *StandingsCoordinator) Recompute(ctx context.Context, repos uow.Repositories, seasonID int64, teamIDs ...int64) (_ RecomputeResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsCoordinator.Recompute", seasonAttr(seasonID))
	defer func() {
		recordSpanError(span, err)
		span.End()
	}()

	start := c.now()
	result := RecomputeResult{SeasonID: seasonID, Mode: recomputeModeFull}

	if err := lockSeason(ctx, repos, seasonID); err != nil {
		return result, err
	}

	matches, err := repos.Matches().ListBySeason(ctx, seasonID)
	if err != nil {
		return result, consistencyFailure(err, seasonID, "list season matches")
	}

	seedIDs := mergeTeamIDs(standing.TeamsOf(matches), teamIDs)
	seeded, err := repos.Standings().Seed(ctx, seasonID, seedIDs)
	if err != nil {
		return result, consistencyFailure(err, seasonID, "seed standings")
	}
	result.Seeded = seeded

	existing, err := repos.Standings().ListBySeason(ctx, seasonID)
	if err != nil {
		return result, consistencyFailure(err, seasonID, "list standings")
	}
	for _, row := range existing {
		seedIDs = append(seedIDs, row.TeamID)
	}

	ranked := standing.Rank(standing.Calculate(seasonID, seedIDs, matches))
	if err := validateRows(ranked); err != nil {
		return result, consistencyFailure(err, seasonID, "validate standings")
	}
	if err := repos.Standings().Upsert(ctx, ranked); err != nil {
		return result, consistencyFailure(err, seasonID, "write standings")
	}

	result.Rows = len(ranked)
	c.logger.InfoContext(ctx, "standings recomputed",
		"season_id", seasonID,
		"mode", result.Mode,
		"rows", result.Rows,
		"seeded", result.Seeded,
		"matches", len(matches),
		"duration_ms", c.now().Sub(start).Milliseconds(),
	)
	return result, nil
}

// Rerank recomputes positions from the stored counters without touching them.
func (c *StandingsCoordinator) Rerank(ctx context.Context, repos uow.Repositories, seasonID int64) (_ RecomputeResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsCoordinator.Rerank", seasonAttr(seasonID))
	defer func() {
		recordSpanError(span, err)
		span.End()
	}()

	start := c.now()
	result := RecomputeResult{SeasonID: seasonID, Mode: recomputeModeRerank}

	if err := lockSeason(ctx, repos, seasonID); err != nil {
		return result, err
	}
	if err := c.rerank(ctx, repos, seasonID, &result); err != nil {
		return result, err
	}

	c.logger.InfoContext(ctx, "standings reranked",
		"season_id", seasonID,
		"rows", result.Rows,
		"duration_ms", c.now().Sub(start).Milliseconds(),
	)
	return result, nil
}

// seedOnly makes sure both teams of a non-completed match own a row. New rows
// enter the table through a re-rank so positions stay dense.
func (c *StandingsCoordinator) seedOnly(ctx context.Context, repos uow.Repositories, seasonID int64, teamIDs []int64) (RecomputeResult, error) {
	result := RecomputeResult{SeasonID: seasonID, Mode: recomputeModeRerank}

	if err := lockSeason(ctx, repos, seasonID); err != nil {
		return result, err
	}

	seeded, err := repos.Standings().Seed(ctx, seasonID, mergeTeamIDs(teamIDs, nil))
	if err != nil {
		return result, consistencyFailure(err, seasonID, "seed standings")
	}
	result.Seeded = seeded
	if seeded == 0 {
		return result, nil
	}

	if err := c.rerank(ctx, repos, seasonID, &result); err != nil {
		return result, err
	}
	c.logger.DebugContext(ctx, "standings seeded",
		"season_id", seasonID,
		"seeded", seeded,
		"rows", result.Rows,
	)
	return result, nil
}

func (c *StandingsCoordinator) rerank(ctx context.Context, repos uow.Repositories, seasonID int64, result *RecomputeResult) error {
	rows, err := repos.Standings().ListBySeason(ctx, seasonID)
	if err != nil {
		return consistencyFailure(err, seasonID, "list standings")
	}
	if err := validateRows(rows); err != nil {
		return consistencyFailure(err, seasonID, "validate standings")
	}

	ranked := standing.Rank(rows)
	if err := repos.Standings().UpdatePositions(ctx, seasonID, standing.Positions(ranked)); err != nil {
		return consistencyFailure(err, seasonID, "write positions")
	}
	result.Rows = len(ranked)
	return nil
}

func lockSeason(ctx context.Context, repos uow.Repositories, seasonID int64) error {
	found, err := repos.Seasons().Lock(ctx, seasonID)
	if err != nil {
		return consistencyFailure(err, seasonID, "lock season")
	}
	if !found {
		return fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	return nil
}

func consistencyFailure(err error, seasonID int64, stage string) error {
	err = crerr.Wrapf(err, "%s", stage)
	err = crerr.WithDetailf(err, "season_id=%d stage=%s", seasonID, stage)
	return crerr.Mark(err, ErrConsistencyFailure)
}

func validateRows(rows []standing.Standing) error {
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func dirtySeasons(plan standing.Plan) []int64 {
	seen := make(map[int64]struct{}, len(plan.Seed)+len(plan.Full))
	out := make([]int64, 0, len(plan.Seed)+len(plan.Full))
	for _, seasonID := range append(plan.SeedSeasons(), plan.Full...) {
		if _, ok := seen[seasonID]; ok {
			continue
		}
		seen[seasonID] = struct{}{}
		out = append(out, seasonID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// mergeTeamIDs returns the distinct ids of both lists, ascending.
func mergeTeamIDs(a, b []int64) []int64 {
	seen := make(map[int64]struct{}, len(a)+len(b))
	out := make([]int64, 0, len(a)+len(b))
	for _, list := range [][]int64{a, b} {
		for _, teamID := range list {
			if teamID <= 0 {
				continue
			}
			if _, ok := seen[teamID]; ok {
				continue
			}
			seen[teamID] = struct{}{}
			out = append(out, teamID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
