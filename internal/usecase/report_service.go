package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/season"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/sourcegraph/conc/pool"
)

// ReportLimits bounds how many matches form and head-to-head reports return.
type ReportLimits struct {
	FormDefault      int
	FormSeason       int
	FormMax          int
	HeadToHeadRecent int
}

func DefaultReportLimits() ReportLimits {
	return ReportLimits{
		FormDefault:      5,
		FormSeason:       10,
		FormMax:          50,
		HeadToHeadRecent: 5,
	}
}

// FormEntry is one completed match seen from the reported team.
type FormEntry struct {
	MatchID       int64
	SeasonID      int64
	MatchDate     time.Time
	HomeTeamID    int64
	AwayTeamID    int64
	HomeTeam      string
	AwayTeam      string
	GoalsScored   int
	GoalsConceded int
	Result        string
}

type TeamForm struct {
	Team     team.Team
	SeasonID int64
	Limit    int
	Form     string
	Won      int
	Drawn    int
	Lost     int
	Points   int
	Matches  []FormEntry
}

type HeadToHead struct {
	Team1         team.Team
	Team2         team.Team
	TotalMatches  int
	Team1Wins     int
	Team2Wins     int
	Draws         int
	Team1Goals    int
	Team2Goals    int
	RecentMatches []match.Match
}

// ReportService answers read-only questions about past results. It never
// touches standings.
type ReportService struct {
	matchRepo  match.Repository
	seasonRepo season.Repository
	teamRepo   team.Repository
	limits     ReportLimits
}

func NewReportService(
	matchRepo match.Repository,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	limits ReportLimits,
) *ReportService {
	defaults := DefaultReportLimits()
	if limits.FormDefault <= 0 {
		limits.FormDefault = defaults.FormDefault
	}
	if limits.FormSeason <= 0 {
		limits.FormSeason = defaults.FormSeason
	}
	if limits.FormMax <= 0 {
		limits.FormMax = defaults.FormMax
	}
	if limits.HeadToHeadRecent <= 0 {
		limits.HeadToHeadRecent = defaults.HeadToHeadRecent
	}
	return &ReportService{
		matchRepo:  matchRepo,
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		limits:     limits,
	}
}

// TeamForm returns the latest completed matches of a team across every season.
func (s *ReportService) TeamForm(ctx context.Context, teamID int64, limit int) (TeamForm, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.TeamForm")
	defer span.End()

	return s.form(ctx, teamID, 0, s.clampLimit(limit, s.limits.FormDefault))
}

// SeasonTeamForm is TeamForm restricted to one season.
func (s *ReportService) SeasonTeamForm(ctx context.Context, seasonID, teamID int64, limit int) (TeamForm, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.SeasonTeamForm")
	defer span.End()

	if seasonID <= 0 {
		return TeamForm{}, fmt.Errorf("%w: season id must be > 0", ErrInvalidInput)
	}
	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return TeamForm{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return TeamForm{}, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}

	return s.form(ctx, teamID, seasonID, s.clampLimit(limit, s.limits.FormSeason))
}

func (s *ReportService) form(ctx context.Context, teamID, seasonID int64, limit int) (TeamForm, error) {
	if teamID <= 0 {
		return TeamForm{}, fmt.Errorf("%w: team id must be > 0", ErrInvalidInput)
	}
	if limit < 0 {
		return TeamForm{}, fmt.Errorf("%w: limit must be >= 0", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamForm{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamForm{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}

	matches, err := s.matchRepo.ListCompletedByTeam(ctx, teamID, seasonID, limit)
	if err != nil {
		return TeamForm{}, fmt.Errorf("list team matches: %w", err)
	}
	names, err := teamNames(ctx, s.teamRepo)
	if err != nil {
		return TeamForm{}, err
	}

	out := TeamForm{
		Team:     item,
		SeasonID: seasonID,
		Limit:    limit,
		Matches:  make([]FormEntry, 0, len(matches)),
	}
	var form strings.Builder
	for _, m := range matches {
		scored, conceded, ok := m.Score(teamID)
		if !ok {
			continue
		}
		result := match.Outcome(scored, conceded)
		switch result {
		case match.ResultWin:
			out.Won++
			out.Points += standing.PointsForWin
		case match.ResultDraw:
			out.Drawn++
			out.Points += standing.PointsForDraw
		default:
			out.Lost++
		}
		form.WriteString(result)

		out.Matches = append(out.Matches, FormEntry{
			MatchID:       m.ID,
			SeasonID:      m.SeasonID,
			MatchDate:     m.MatchDate,
			HomeTeamID:    m.HomeTeamID,
			AwayTeamID:    m.AwayTeamID,
			HomeTeam:      names[m.HomeTeamID],
			AwayTeam:      names[m.AwayTeamID],
			GoalsScored:   scored,
			GoalsConceded: conceded,
			Result:        result,
		})
	}
	out.Form = form.String()
	return out, nil
}

// HeadToHead summarizes every completed meeting of two teams.
func (s *ReportService) HeadToHead(ctx context.Context, teamID, opponentID int64) (HeadToHead, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.HeadToHead")
	defer span.End()

	if teamID <= 0 || opponentID <= 0 {
		return HeadToHead{}, fmt.Errorf("%w: team ids must be > 0", ErrInvalidInput)
	}
	if teamID == opponentID {
		return HeadToHead{}, fmt.Errorf("%w: head to head needs two different teams", ErrInvalidInput)
	}

	var (
		team1, team2     team.Team
		exists1, exists2 bool
		matches          []match.Match
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		team1, exists1, err = s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		team2, exists2, err = s.teamRepo.GetByID(ctx, opponentID)
		if err != nil {
			return fmt.Errorf("get team: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		matches, err = s.matchRepo.ListCompletedBetween(ctx, teamID, opponentID)
		if err != nil {
			return fmt.Errorf("list head to head matches: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return HeadToHead{}, err
	}
	if !exists1 {
		return HeadToHead{}, fmt.Errorf("%w: team=%d", ErrNotFound, teamID)
	}
	if !exists2 {
		return HeadToHead{}, fmt.Errorf("%w: team=%d", ErrNotFound, opponentID)
	}

	out := HeadToHead{Team1: team1, Team2: team2}
	for _, m := range matches {
		scored, conceded, ok := m.Score(teamID)
		if !ok {
			continue
		}
		out.TotalMatches++
		out.Team1Goals += scored
		out.Team2Goals += conceded
		switch match.Outcome(scored, conceded) {
		case match.ResultWin:
			out.Team1Wins++
		case match.ResultLoss:
			out.Team2Wins++
		default:
			out.Draws++
		}

		if len(out.RecentMatches) < s.limits.HeadToHeadRecent {
			m.HomeTeam, m.AwayTeam = nameFor(m.HomeTeamID, team1, team2), nameFor(m.AwayTeamID, team1, team2)
			out.RecentMatches = append(out.RecentMatches, m)
		}
	}
	return out, nil
}

func (s *ReportService) clampLimit(limit, fallback int) int {
	if limit == 0 {
		return fallback
	}
	if limit > s.limits.FormMax {
		return s.limits.FormMax
	}
	return limit
}

func nameFor(teamID int64, teams ...team.Team) string {
	for _, t := range teams {
		if t.ID == teamID {
			return t.Name
		}
	}
	return ""
}
