package postgres

import (
	"database/sql"
	"time"
)

type seasonTableModel struct {
	ID   int64  `db:"season_id"`
	Year string `db:"season_year"`
}

type teamTableModel struct {
	ID          int64          `db:"team_id"`
	Name        string         `db:"team_name"`
	Stadium     string         `db:"stadium"`
	FoundedYear sql.NullInt64  `db:"founded_year"`
	CoachName   sql.NullString `db:"coach_name"`
}

type matchTableModel struct {
	ID         int64         `db:"match_id"`
	SeasonID   int64         `db:"season_id"`
	HomeTeamID int64         `db:"home_team_id"`
	AwayTeamID int64         `db:"away_team_id"`
	MatchDate  time.Time     `db:"match_date"`
	Status     string        `db:"status"`
	HomeGoals  sql.NullInt64 `db:"home_team_goals"`
	AwayGoals  sql.NullInt64 `db:"away_team_goals"`
	Venue      string        `db:"venue"`
	Referee    string        `db:"referee"`
}

// matchWriteModel holds the columns written by both insert and update.
type matchWriteModel struct {
	SeasonID   int64     `db:"season_id"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	MatchDate  time.Time `db:"match_date"`
	Status     string    `db:"status"`
	HomeGoals  *int      `db:"home_team_goals"`
	AwayGoals  *int      `db:"away_team_goals"`
	Venue      string    `db:"venue"`
	Referee    string    `db:"referee"`
}

type standingTableModel struct {
	SeasonID     int64 `db:"season_id"`
	TeamID       int64 `db:"team_id"`
	Position     int   `db:"position"`
	Played       int   `db:"played"`
	Won          int   `db:"won"`
	Drawn        int   `db:"drawn"`
	Lost         int   `db:"lost"`
	GoalsFor     int   `db:"goals_for"`
	GoalsAgainst int   `db:"goals_against"`
	Points       int   `db:"points"`
}

type seasonSummaryModel struct {
	SeasonID   int64  `db:"season_id"`
	SeasonYear string `db:"season_year"`
	TeamCount  int    `db:"team_count"`
}

var matchColumns = []string{
	"match_id",
	"season_id",
	"home_team_id",
	"away_team_id",
	"match_date",
	"status",
	"home_team_goals",
	"away_team_goals",
	"venue",
	"referee",
}

var standingColumns = []string{
	"season_id",
	"team_id",
	"position",
	"played",
	"won",
	"drawn",
	"lost",
	"goals_for",
	"goals_against",
	"points",
}
