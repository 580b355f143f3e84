package memory

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/season"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

const (
	SeasonID2023 int64 = 1
	SeasonID2024 int64 = 2
)

const (
	TeamIDPersija int64 = iota + 1
	TeamIDPersib
	TeamIDPersebaya
	TeamIDBaliUnited
	TeamIDPSM
	TeamIDBorneo
)

func SeedSeasons() []season.Season {
	return []season.Season{
		{ID: SeasonID2023, Year: "2023/2024"},
		{ID: SeasonID2024, Year: "2024/2025"},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDPersija, Name: "Persija Jakarta", Stadium: "Jakarta International Stadium", FoundedYear: 1928, CoachName: "Carlos Pena"},
		{ID: TeamIDPersib, Name: "Persib Bandung", Stadium: "Gelora Bandung Lautan Api", FoundedYear: 1933, CoachName: "Bojan Hodak"},
		{ID: TeamIDPersebaya, Name: "Persebaya Surabaya", Stadium: "Gelora Bung Tomo", FoundedYear: 1927, CoachName: "Paul Munster"},
		{ID: TeamIDBaliUnited, Name: "Bali United", Stadium: "Kapten I Wayan Dipta", FoundedYear: 2015, CoachName: "Stefano Cugurra"},
		{ID: TeamIDPSM, Name: "PSM Makassar", Stadium: "Gelora BJ Habibie", FoundedYear: 1915, CoachName: "Bernardo Tavares"},
		{ID: TeamIDBorneo, Name: "Borneo FC", Stadium: "Segiri", FoundedYear: 2014, CoachName: "Pieter Huistra"},
	}
}

func SeedMatches() []match.Match {
	kickoff := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
	score := func(v int) *int { return &v }

	return []match.Match{
		{SeasonID: SeasonID2023, HomeTeamID: TeamIDPersija, AwayTeamID: TeamIDPersib, MatchDate: kickoff(2023, time.July, 2), Status: match.StatusCompleted, HomeGoals: score(1), AwayGoals: score(1), Venue: "Jakarta International Stadium", Referee: "Thoriq Alkatiri"},
		{SeasonID: SeasonID2023, HomeTeamID: TeamIDPersebaya, AwayTeamID: TeamIDBaliUnited, MatchDate: kickoff(2023, time.July, 3), Status: match.StatusCompleted, HomeGoals: score(2), AwayGoals: score(0), Venue: "Gelora Bung Tomo", Referee: "Yudi Nurcahya"},
		{SeasonID: SeasonID2023, HomeTeamID: TeamIDPSM, AwayTeamID: TeamIDBorneo, MatchDate: kickoff(2023, time.July, 4), Status: match.StatusCompleted, HomeGoals: score(0), AwayGoals: score(3), Venue: "Gelora BJ Habibie", Referee: "Fariq Hitaba"},
		{SeasonID: SeasonID2023, HomeTeamID: TeamIDPersib, AwayTeamID: TeamIDBorneo, MatchDate: kickoff(2023, time.August, 12), Status: match.StatusCompleted, HomeGoals: score(2), AwayGoals: score(1), Venue: "Gelora Bandung Lautan Api", Referee: "Thoriq Alkatiri"},
		{SeasonID: SeasonID2024, HomeTeamID: TeamIDPersib, AwayTeamID: TeamIDPersija, MatchDate: kickoff(2024, time.August, 9), Status: match.StatusCompleted, HomeGoals: score(2), AwayGoals: score(0), Venue: "Gelora Bandung Lautan Api", Referee: "Yudi Nurcahya"},
		{SeasonID: SeasonID2024, HomeTeamID: TeamIDBaliUnited, AwayTeamID: TeamIDPSM, MatchDate: kickoff(2024, time.August, 10), Status: match.StatusCompleted, HomeGoals: score(1), AwayGoals: score(1), Venue: "Kapten I Wayan Dipta", Referee: "Fariq Hitaba"},
		{SeasonID: SeasonID2024, HomeTeamID: TeamIDBorneo, AwayTeamID: TeamIDPersebaya, MatchDate: kickoff(2024, time.August, 11), Status: match.StatusCompleted, HomeGoals: score(3), AwayGoals: score(2), Venue: "Segiri", Referee: "Thoriq Alkatiri"},
		{SeasonID: SeasonID2024, HomeTeamID: TeamIDPersija, AwayTeamID: TeamIDPersebaya, MatchDate: kickoff(2024, time.September, 14), Status: match.StatusPostponed, Venue: "Jakarta International Stadium"},
		{SeasonID: SeasonID2024, HomeTeamID: TeamIDPersib, AwayTeamID: TeamIDBaliUnited, MatchDate: kickoff(2024, time.September, 21), Status: match.StatusScheduled, Venue: "Gelora Bandung Lautan Api"},
		{SeasonID: SeasonID2024, HomeTeamID: TeamIDPSM, AwayTeamID: TeamIDPersija, MatchDate: kickoff(2024, time.September, 28), Status: match.StatusScheduled, Venue: "Gelora BJ Habibie"},
	}
}

// NewSeededStore returns a store filled with demo data. Standings are left
// empty; callers rebuild them through the recompute path.
func NewSeededStore() *Store {
	store := NewStore()
	store.PutSeasons(SeedSeasons()...)
	store.PutTeams(SeedTeams()...)
	store.PutMatches(SeedMatches()...)
	return store
}
