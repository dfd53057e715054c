package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
)

// StatsProvider is the normalized view of the third-party stats feed.
// Failures are returned as *UpstreamError.
type StatsProvider interface {
	FetchSeasonStats(ctx context.Context, season string) ([]ExternalAthleteStat, error)
	FetchDailyStats(ctx context.Context, day time.Time) ([]ExternalAthleteStat, error)
	FetchRoster(ctx context.Context) ([]ExternalAthlete, error)
	FetchTeams(ctx context.Context) ([]ExternalTeam, error)
}

// ChainQuerier runs read-only smart contract queries and returns the raw
// query result JSON.
type ChainQuerier interface {
	QueryContract(ctx context.Context, contractAddr string, msg any) ([]byte, error)
}

// ExternalAthleteStat is one provider stat row. FantasyScore is nil when the
// provider did not publish a point total.
type ExternalAthleteStat struct {
	APIID        int64
	TeamAPIID    int64
	FantasyScore *float64
	Stats        score.Stats
	Position     string
}

type ExternalAthlete struct {
	APIID        int64
	TeamAPIID    int64
	FirstName    string
	LastName     string
	Position     string
	Jersey       int
	Salary       float64
	Status       string
	InjuryStatus *string
}

type ExternalTeam struct {
	APIID          int64
	Location       string
	Name           string
	Key            string
	PrimaryColor   string
	SecondaryColor string
}
