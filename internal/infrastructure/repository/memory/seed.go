package memory

import (
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
	"github.com/riskibarqy/fantasy-nft/internal/domain/team"
)

// Seed data for the memory storage driver. Athlete team ids refer to the
// order of SeedTeams (1-based) since the memory repositories assign ids
// sequentially.

func SeedTeams() []team.Team {
	return []team.Team{
		{Location: "Los Angeles", Name: "Dodgers", APIID: 29, Key: "LAD", PrimaryColor: "005A9C", SecondaryColor: "FFFFFF"},
		{Location: "New York", Name: "Yankees", APIID: 9, Key: "NYY", PrimaryColor: "0C2340", SecondaryColor: "C4CED3"},
		{Location: "San Francisco", Name: "Giants", APIID: 28, Key: "SF", PrimaryColor: "FD5A1E", SecondaryColor: "27251F"},
	}
}

func SeedAthletes() []athlete.Athlete {
	return []athlete.Athlete{
		{FirstName: "Mookie", LastName: "Betts", APIID: 10000150, TeamID: 1, Position: "RF", Jersey: 50, IsActive: true},
		{FirstName: "Aaron", LastName: "Judge", APIID: 10002056, TeamID: 2, Position: "RF", Jersey: 99, IsActive: true},
		{FirstName: "Brandon", LastName: "Crawford", APIID: 10000478, TeamID: 3, Position: "SS", Jersey: 35, IsActive: true},
	}
}

func SeedGames(now time.Time) []game.Game {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -3)
	return []game.Game{
		game.Game{Name: "Weekly Slugfest", StartAt: start, DurationMinutes: 7 * 24 * 60, Prize: 500}.Normalize(),
	}
}
