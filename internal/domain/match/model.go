package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "Scheduled"
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
	StatusPostponed = "Postponed"
	StatusCancelled = "Cancelled"
)

const (
	ResultWin  = "W"
	ResultDraw = "D"
	ResultLoss = "L"
)

var statuses = []string{
	StatusScheduled,
	StatusOngoing,
	StatusCompleted,
	StatusPostponed,
	StatusCancelled,
}

// Match is one fixture between two teams inside a season.
type Match struct {
	ID         int64
	SeasonID   int64
	HomeTeamID int64
	AwayTeamID int64
	HomeTeam   string
	AwayTeam   string
	MatchDate  time.Time
	Status     string
	HomeGoals  *int
	AwayGoals  *int
	Venue      string
	Referee    string
}

// Statuses returns every accepted status in canonical form.
func Statuses() []string {
	out := make([]string, len(statuses))
	copy(out, statuses)
	return out
}

// NormalizeStatus maps user input onto a canonical status, case-insensitively.
func NormalizeStatus(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, status := range statuses {
		if strings.EqualFold(status, value) {
			return status, true
		}
	}
	return "", false
}

func (m Match) IsCompleted() bool {
	return m.Status == StatusCompleted
}

func (m Match) Involves(teamID int64) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// Score returns goals from the perspective of teamID. ok is false when the
// match carries no final score or teamID did not play in it.
func (m Match) Score(teamID int64) (scored, conceded int, ok bool) {
	if !m.IsCompleted() || m.HomeGoals == nil || m.AwayGoals == nil {
		return 0, 0, false
	}
	switch teamID {
	case m.HomeTeamID:
		return *m.HomeGoals, *m.AwayGoals, true
	case m.AwayTeamID:
		return *m.AwayGoals, *m.HomeGoals, true
	default:
		return 0, 0, false
	}
}

// ResultFor returns W, D or L for teamID, or an empty string when the match
// has no result for that team.
func (m Match) ResultFor(teamID int64) string {
	scored, conceded, ok := m.Score(teamID)
	if !ok {
		return ""
	}
	return Outcome(scored, conceded)
}

func Outcome(scored, conceded int) string {
	switch {
	case scored > conceded:
		return ResultWin
	case scored < conceded:
		return ResultLoss
	default:
		return ResultDraw
	}
}
