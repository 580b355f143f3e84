package standing

import "fmt"

// Standing is the derived table row of one team in one season.
type Standing struct {
	SeasonID     int64
	TeamID       int64
	Position     int
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

// SeasonSummary describes a season that has a standings table.
type SeasonSummary struct {
	SeasonID   int64
	SeasonYear string
	TeamCount  int
}

func (s Standing) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// Validate checks the counter identities every stored row must satisfy.
func (s Standing) Validate() error {
	if s.Played != s.Won+s.Drawn+s.Lost {
		return fmt.Errorf("team %d: played %d != won %d + drawn %d + lost %d", s.TeamID, s.Played, s.Won, s.Drawn, s.Lost)
	}
	if s.Points != PointsForWin*s.Won+PointsForDraw*s.Drawn {
		return fmt.Errorf("team %d: points %d do not match %d won and %d drawn", s.TeamID, s.Points, s.Won, s.Drawn)
	}
	if s.Won < 0 || s.Drawn < 0 || s.Lost < 0 || s.GoalsFor < 0 || s.GoalsAgainst < 0 {
		return fmt.Errorf("team %d: negative counter", s.TeamID)
	}
	return nil
}
