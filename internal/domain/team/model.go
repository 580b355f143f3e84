package team

import "fmt"

// Team is a club that plays matches across seasons.
type Team struct {
	ID          int64
	Name        string
	Stadium     string
	FoundedYear int
	CoachName   string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be > 0")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
