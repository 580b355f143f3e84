package httpapi

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/team"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

type matchDTO struct {
	ID         int64  `json:"id"`
	SeasonID   int64  `json:"seasonId"`
	HomeTeamID int64  `json:"homeTeamId"`
	AwayTeamID int64  `json:"awayTeamId"`
	HomeTeam   string `json:"homeTeam,omitempty"`
	AwayTeam   string `json:"awayTeam,omitempty"`
	MatchDate  string `json:"matchDate"`
	Status     string `json:"status"`
	HomeGoals  *int   `json:"homeGoals"`
	AwayGoals  *int   `json:"awayGoals"`
	Venue      string `json:"venue,omitempty"`
	Referee    string `json:"referee,omitempty"`
}

type matchMutationDTO struct {
	Match      matchDTO                  `json:"match"`
	Recomputed []usecase.RecomputeResult `json:"recomputed"`
}

type deleteMatchDTO struct {
	MatchID    int64                     `json:"matchId"`
	Recomputed []usecase.RecomputeResult `json:"recomputed"`
}

type seasonSummaryDTO struct {
	SeasonID   int64  `json:"seasonId"`
	SeasonYear string `json:"seasonYear"`
	TeamCount  int    `json:"teamCount"`
}

type standingEntryDTO struct {
	Position       int    `json:"position"`
	TeamID         int64  `json:"teamId"`
	TeamName       string `json:"teamName"`
	Stadium        string `json:"stadium,omitempty"`
	CoachName      string `json:"coachName,omitempty"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

type seasonTableDTO struct {
	SeasonID   int64              `json:"seasonId"`
	SeasonYear string             `json:"seasonYear"`
	Standings  []standingEntryDTO `json:"standings"`
}

type teamDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Stadium     string `json:"stadium,omitempty"`
	FoundedYear int    `json:"foundedYear,omitempty"`
	CoachName   string `json:"coachName,omitempty"`
}

type formEntryDTO struct {
	MatchID       int64  `json:"matchId"`
	SeasonID      int64  `json:"seasonId"`
	MatchDate     string `json:"matchDate"`
	HomeTeam      string `json:"homeTeam"`
	AwayTeam      string `json:"awayTeam"`
	GoalsScored   int    `json:"goalsScored"`
	GoalsConceded int    `json:"goalsConceded"`
	Result        string `json:"result"`
}

type teamFormDTO struct {
	Team     teamDTO        `json:"team"`
	SeasonID int64          `json:"seasonId,omitempty"`
	Limit    int            `json:"limit"`
	Form     string         `json:"form"`
	Won      int            `json:"won"`
	Drawn    int            `json:"drawn"`
	Lost     int            `json:"lost"`
	Points   int            `json:"points"`
	Matches  []formEntryDTO `json:"matches"`
}

type headToHeadDTO struct {
	Team1         teamDTO    `json:"team1"`
	Team2         teamDTO    `json:"team2"`
	TotalMatches  int        `json:"totalMatches"`
	Team1Wins     int        `json:"team1Wins"`
	Team2Wins     int        `json:"team2Wins"`
	Draws         int        `json:"draws"`
	Team1Goals    int        `json:"team1Goals"`
	Team2Goals    int        `json:"team2Goals"`
	RecentMatches []matchDTO `json:"recentMatches"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:         v.ID,
		SeasonID:   v.SeasonID,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		HomeTeam:   v.HomeTeam,
		AwayTeam:   v.AwayTeam,
		MatchDate:  formatTime(v.MatchDate),
		Status:     v.Status,
		HomeGoals:  v.HomeGoals,
		AwayGoals:  v.AwayGoals,
		Venue:      v.Venue,
		Referee:    v.Referee,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func recomputedOrEmpty(items []usecase.RecomputeResult) []usecase.RecomputeResult {
	if items == nil {
		return []usecase.RecomputeResult{}
	}
	return items
}

func matchMutationToDTO(v usecase.MatchMutationResult) matchMutationDTO {
	return matchMutationDTO{
		Match:      matchToDTO(v.Match),
		Recomputed: recomputedOrEmpty(v.Recomputed),
	}
}

func seasonTableToDTO(v usecase.SeasonTable) seasonTableDTO {
	rows := make([]standingEntryDTO, 0, len(v.Entries))
	for _, entry := range v.Entries {
		rows = append(rows, standingEntryDTO{
			Position:       entry.Position,
			TeamID:         entry.TeamID,
			TeamName:       entry.TeamName,
			Stadium:        entry.Stadium,
			CoachName:      entry.CoachName,
			Played:         entry.Played,
			Won:            entry.Won,
			Drawn:          entry.Drawn,
			Lost:           entry.Lost,
			GoalsFor:       entry.GoalsFor,
			GoalsAgainst:   entry.GoalsAgainst,
			GoalDifference: entry.GoalDifference,
			Points:         entry.Points,
		})
	}

	return seasonTableDTO{
		SeasonID:   v.Season.ID,
		SeasonYear: v.Season.Year,
		Standings:  rows,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:          v.ID,
		Name:        v.Name,
		Stadium:     v.Stadium,
		FoundedYear: v.FoundedYear,
		CoachName:   v.CoachName,
	}
}

func teamFormToDTO(v usecase.TeamForm) teamFormDTO {
	matches := make([]formEntryDTO, 0, len(v.Matches))
	for _, item := range v.Matches {
		matches = append(matches, formEntryDTO{
			MatchID:       item.MatchID,
			SeasonID:      item.SeasonID,
			MatchDate:     formatTime(item.MatchDate),
			HomeTeam:      item.HomeTeam,
			AwayTeam:      item.AwayTeam,
			GoalsScored:   item.GoalsScored,
			GoalsConceded: item.GoalsConceded,
			Result:        item.Result,
		})
	}

	return teamFormDTO{
		Team:     teamToDTO(v.Team),
		SeasonID: v.SeasonID,
		Limit:    v.Limit,
		Form:     v.Form,
		Won:      v.Won,
		Drawn:    v.Drawn,
		Lost:     v.Lost,
		Points:   v.Points,
		Matches:  matches,
	}
}

func headToHeadToDTO(v usecase.HeadToHead) headToHeadDTO {
	return headToHeadDTO{
		Team1:         teamToDTO(v.Team1),
		Team2:         teamToDTO(v.Team2),
		TotalMatches:  v.TotalMatches,
		Team1Wins:     v.Team1Wins,
		Team2Wins:     v.Team2Wins,
		Draws:         v.Draws,
		Team1Goals:    v.Team1Goals,
		Team2Goals:    v.Team2Goals,
		RecentMatches: matchesToDTO(v.RecentMatches),
	}
}
