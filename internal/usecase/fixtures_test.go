package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/account"
	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
	"github.com/riskibarqy/fantasy-nft/internal/domain/gameteam"
	"github.com/riskibarqy/fantasy-nft/internal/domain/team"
	"github.com/riskibarqy/fantasy-nft/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
)

type stubStatsProvider struct {
	mu        sync.Mutex
	season    []ExternalAthleteStat
	daily     []ExternalAthleteStat
	roster    []ExternalAthlete
	teams     []ExternalTeam
	err       error
	calls     int
	dailyDays []time.Time
}

func (p *stubStatsProvider) FetchSeasonStats(_ context.Context, _ string) ([]ExternalAthleteStat, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.season, p.err
}

func (p *stubStatsProvider) FetchDailyStats(_ context.Context, day time.Time) ([]ExternalAthleteStat, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.dailyDays = append(p.dailyDays, day)
	return p.daily, p.err
}

func (p *stubStatsProvider) FetchRoster(_ context.Context) ([]ExternalAthlete, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.roster, p.err
}

func (p *stubStatsProvider) FetchTeams(_ context.Context) ([]ExternalTeam, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.teams, p.err
}

type stubIDGenerator struct {
	next int
}

func (g *stubIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("run-%d", g.next), nil
}

func points(v float64) *float64 {
	return &v
}

type scoringFixture struct {
	provider  *stubStatsProvider
	teams     *memory.TeamRepository
	athletes  *memory.AthleteRepository
	scores    *memory.ScoreRepository
	games     *memory.GameRepository
	gameTeams *memory.GameTeamRepository
	accounts  *memory.AccountRepository
	service   *ScoreService
	now       time.Time
}

func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()

	f := &scoringFixture{
		provider:  &stubStatsProvider{},
		teams:     memory.NewTeamRepository([]team.Team{{Location: "Houston", Name: "Astros", APIID: 16}}),
		athletes:  memory.NewAthleteRepository(nil),
		scores:    memory.NewScoreRepository(),
		games:     memory.NewGameRepository(nil),
		gameTeams: memory.NewGameTeamRepository(),
		accounts:  memory.NewAccountRepository(),
		now:       time.Date(2021, 6, 2, 10, 0, 0, 0, time.UTC),
	}
	f.service = NewScoreService(
		f.provider,
		f.athletes,
		f.scores,
		f.games,
		f.gameTeams,
		&stubIDGenerator{},
		ScoreConfig{Season: "2021", Location: time.UTC},
		logging.NewNop(),
	)
	f.service.now = func() time.Time { return f.now }
	return f
}

func (f *scoringFixture) addAthlete(t *testing.T, apiID int64, first, last string) athlete.Athlete {
	t.Helper()
	item, err := f.athletes.Upsert(context.Background(), athlete.Athlete{
		FirstName: first,
		LastName:  last,
		APIID:     apiID,
		TeamID:    1,
		Position:  "CF",
	})
	if err != nil {
		t.Fatalf("seed athlete: %v", err)
	}
	return item
}

// addGame creates a game spanning the fixture's "yesterday".
func (f *scoringFixture) addGame(t *testing.T, name string) game.Game {
	t.Helper()
	item, err := f.games.Create(context.Background(), game.Game{
		Name:            name,
		StartAt:         time.Date(2021, 5, 30, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 7 * 24 * 60,
		Prize:           100,
	}.Normalize())
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}
	return item
}

func (f *scoringFixture) addTeam(t *testing.T, gameID int64, wallet, name string, score float64, athleteIDs ...int64) gameteam.GameTeam {
	t.Helper()
	ctx := context.Background()

	acc, err := f.accounts.GetOrCreateAccount(ctx, wallet)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	coll, err := f.accounts.GetOrCreateCollection(ctx, "terra1collection")
	if err != nil {
		t.Fatalf("seed collection: %v", err)
	}

	assets := make([]gameteam.GameAsset, 0, len(athleteIDs))
	for i, athleteID := range athleteIDs {
		ga, err := f.gameTeams.GetOrCreateGameAthlete(ctx, gameID, athleteID)
		if err != nil {
			t.Fatalf("seed game athlete: %v", err)
		}
		asset, err := f.accounts.GetOrCreateAsset(ctx, accountAsset(name, i, coll.ID, acc.ID))
		if err != nil {
			t.Fatalf("seed asset: %v", err)
		}
		assets = append(assets, gameteam.GameAsset{GameAthleteID: ga.ID, AssetID: asset.ID})
	}

	created, err := f.gameTeams.Create(ctx, gameteam.GameTeam{
		GameID:       gameID,
		AccountID:    acc.ID,
		Name:         name,
		FantasyScore: score,
	}, assets)
	if err != nil {
		t.Fatalf("seed game team: %v", err)
	}
	return created
}

func (f *scoringFixture) teamScore(t *testing.T, id int64) float64 {
	t.Helper()
	item, ok, err := f.gameTeams.GetByID(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("get game team %d: ok=%v err=%v", id, ok, err)
	}
	return item.FantasyScore
}

func accountAsset(teamName string, slot int, collectionID, ownerID int64) account.Asset {
	return account.Asset{
		TokenID:      fmt.Sprintf("%s-%d", teamName, slot),
		CollectionID: collectionID,
		OwnerID:      ownerID,
	}
}

// stubChainQuerier answers contract queries through handle and counts calls.
type stubChainQuerier struct {
	mu     sync.Mutex
	calls  int
	handle func(contractAddr string, msg any) ([]byte, error)
}

func (c *stubChainQuerier) QueryContract(_ context.Context, contractAddr string, msg any) ([]byte, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.handle(contractAddr, msg)
}

func (c *stubChainQuerier) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func nftInfoJSON(owner string, athleteID int64, name string) []byte {
	return []byte(fmt.Sprintf(
		`{"access":{"owner":%q},"info":{"token_uri":"ipfs://token","extension":{"athlete_id":"%d","name":%q,"image":"ipfs://image"}}}`,
		owner, athleteID, name,
	))
}
