package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
)

// ownedTokens answers all_nft_info as if wallet owned every token, carrying
// the athlete mapped in athleteByToken.
func ownedTokens(wallet string, athleteByToken map[string]int64) *stubChainQuerier {
	return &stubChainQuerier{handle: func(_ string, msg any) ([]byte, error) {
		q, ok := msg.(allNFTInfoQuery)
		if !ok {
			return nil, fmt.Errorf("unexpected query %T", msg)
		}
		athleteID, ok := athleteByToken[q.AllNFTInfo.TokenID]
		if !ok {
			return nil, NewUpstreamError(UpstreamKindHTTP, "Contract query failed", "token not found")
		}
		return nftInfoJSON(wallet, athleteID, "token "+q.AllNFTInfo.TokenID), nil
	}}
}

func newGameTeamFixture(t *testing.T, chain ChainQuerier) (*scoringFixture, *GameTeamService) {
	t.Helper()
	f := newScoringFixture(t)
	svc := NewGameTeamService(
		f.games,
		f.gameTeams,
		f.athletes,
		f.scores,
		f.accounts,
		chain,
		ScoreConfig{Season: "2021", Location: time.UTC},
		logging.NewNop(),
	)
	return f, svc
}

func TestGameTeamService_CreateGame_DerivesEnd(t *testing.T) {
	t.Parallel()

	_, svc := newGameTeamFixture(t, nil)
	start := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	created, err := svc.CreateGame(context.Background(), CreateGameInput{
		Name:            " Week 2 ",
		StartAt:         start,
		DurationMinutes: 90,
		Prize:           50,
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if !created.EndAt.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("unexpected end: got=%s", created.EndAt)
	}
	if created.Name != "Week 2" || created.ID <= 0 {
		t.Fatalf("unexpected game: %+v", created)
	}

	if _, err := svc.CreateGame(context.Background(), CreateGameInput{Name: "bad", StartAt: start}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero duration, got %v", err)
	}
}

func TestGameTeamService_GetTeamDetail_DefaultsMissingScores(t *testing.T) {
	t.Parallel()

	f, svc := newGameTeamFixture(t, nil)
	scored := f.addAthlete(t, 555, "Jose", "Altuve")
	unscored := f.addAthlete(t, 556, "Alex", "Bregman")
	if err := f.scores.Upsert(context.Background(), []score.Record{{
		AthleteID:    scored.ID,
		Window:       score.SeasonWindow("2021"),
		FantasyScore: 42,
		Stats:        score.Stats{Singles: 10},
	}}); err != nil {
		t.Fatalf("seed score: %v", err)
	}
	g := f.addGame(t, "Week 1")
	team := f.addTeam(t, g.ID, "terra1wallet", "Rockets", 12, scored.ID, unscored.ID)

	view, err := svc.GetTeamDetail(context.Background(), team.ID)
	if err != nil {
		t.Fatalf("get team detail: %v", err)
	}
	if view.WalletAddr != "terra1wallet" || view.FantasyScore != 12 || view.Season != "2021" {
		t.Fatalf("unexpected team detail: %+v", view)
	}
	if len(view.Athletes) != 2 {
		t.Fatalf("unexpected roster size: got=%d want=2", len(view.Athletes))
	}
	if view.Athletes[0].FantasyScore != 42 || view.Athletes[0].Singles != 10 {
		t.Fatalf("unexpected scored athlete: %+v", view.Athletes[0])
	}
	if view.Athletes[1].ScoreView != (ScoreView{}) {
		t.Fatalf("unscored athlete must default to zeros: %+v", view.Athletes[1])
	}

	if _, err := svc.GetTeamDetail(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGameTeamService_ListRegisteredTeams(t *testing.T) {
	t.Parallel()

	f, svc := newGameTeamFixture(t, nil)
	g := f.addGame(t, "Week 1")
	f.addTeam(t, g.ID, "terra1wallet", "Rockets", 0)
	f.addTeam(t, g.ID, "terra1other", "Comets", 0)

	ctx := context.Background()
	teams, err := svc.ListRegisteredTeams(ctx, g.ID, "terra1wallet")
	if err != nil {
		t.Fatalf("list registered teams: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Rockets" {
		t.Fatalf("unexpected teams: %+v", teams)
	}

	unknown, err := svc.ListRegisteredTeams(ctx, g.ID, "terra1stranger")
	if err != nil {
		t.Fatalf("list for unknown wallet: %v", err)
	}
	if unknown == nil || len(unknown) != 0 {
		t.Fatalf("unknown wallet must return an empty list, got %#v", unknown)
	}

	if _, err := svc.ListRegisteredTeams(ctx, 404, "terra1wallet"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGameTeamService_RegisterTeam(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t)
	a := f.addAthlete(t, 555, "Jose", "Altuve")
	b := f.addAthlete(t, 556, "Alex", "Bregman")
	g := f.addGame(t, "Week 1")

	chain := ownedTokens("terra1wallet", map[string]int64{"1": a.ID, "2": b.ID})
	svc := NewGameTeamService(f.games, f.gameTeams, f.athletes, f.scores, f.accounts, chain,
		ScoreConfig{Season: "2021", Location: time.UTC}, logging.NewNop())

	input := RegisterTeamInput{
		GameID:       g.ID,
		Name:         "Rockets",
		WalletAddr:   "terra1wallet",
		ContractAddr: testCollection,
		Tokens:       []TeamTokenInput{{TokenID: "1", AthleteID: a.ID}, {TokenID: "2", AthleteID: b.ID}},
	}

	ctx := context.Background()
	view, err := svc.RegisterTeam(ctx, input)
	if err != nil {
		t.Fatalf("register team: %v", err)
	}
	if view.ID <= 0 || len(view.Athletes) != 2 || view.FantasyScore != 0 {
		t.Fatalf("unexpected registered team: %+v", view)
	}

	input.Name = "Rockets again"
	if _, err := svc.RegisterTeam(ctx, input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for already listed token, got %v", err)
	}
}

func TestGameTeamService_RegisterTeam_RejectsTokenListedByPreviousOwner(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t)
	a := f.addAthlete(t, 555, "Jose", "Altuve")
	g := f.addGame(t, "Week 1")
	cfg := ScoreConfig{Season: "2021", Location: time.UTC}
	ctx := context.Background()

	seller := NewGameTeamService(f.games, f.gameTeams, f.athletes, f.scores, f.accounts,
		ownedTokens("terra1seller", map[string]int64{"1": a.ID}), cfg, logging.NewNop())
	if _, err := seller.RegisterTeam(ctx, RegisterTeamInput{
		GameID:       g.ID,
		Name:         "Rockets",
		WalletAddr:   "terra1seller",
		ContractAddr: testCollection,
		Tokens:       []TeamTokenInput{{TokenID: "1", AthleteID: a.ID}},
	}); err != nil {
		t.Fatalf("register seller team: %v", err)
	}

	// The token has since moved to another wallet.
	buyer := NewGameTeamService(f.games, f.gameTeams, f.athletes, f.scores, f.accounts,
		ownedTokens("terra1buyer", map[string]int64{"1": a.ID}), cfg, logging.NewNop())
	_, err := buyer.RegisterTeam(ctx, RegisterTeamInput{
		GameID:       g.ID,
		Name:         "Comets",
		WalletAddr:   "terra1buyer",
		ContractAddr: testCollection,
		Tokens:       []TeamTokenInput{{TokenID: "1", AthleteID: a.ID}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for token already in the game, got %v", err)
	}
	teams, _ := f.gameTeams.ListByGame(ctx, g.ID)
	if len(teams) != 1 {
		t.Fatalf("unexpected teams in game: got=%d want=1", len(teams))
	}
}

func TestGameTeamService_RegisterTeam_TrimsTokenIDs(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t)
	a := f.addAthlete(t, 555, "Jose", "Altuve")
	g := f.addGame(t, "Week 1")
	chain := ownedTokens("terra1wallet", map[string]int64{"1": a.ID})
	svc := NewGameTeamService(f.games, f.gameTeams, f.athletes, f.scores, f.accounts, chain,
		ScoreConfig{Season: "2021", Location: time.UTC}, logging.NewNop())

	ctx := context.Background()
	tokens := []TeamTokenInput{{TokenID: " 1 ", AthleteID: a.ID}}
	if _, err := svc.RegisterTeam(ctx, RegisterTeamInput{
		GameID:       g.ID,
		Name:         "Rockets",
		WalletAddr:   "terra1wallet",
		ContractAddr: testCollection,
		Tokens:       tokens,
	}); err != nil {
		t.Fatalf("register team with padded token id: %v", err)
	}
	if tokens[0].TokenID != " 1 " {
		t.Fatalf("caller input was modified: %q", tokens[0].TokenID)
	}

	_, err := svc.RegisterTeam(ctx, RegisterTeamInput{
		GameID:       g.ID,
		Name:         "Rockets again",
		WalletAddr:   "terra1wallet",
		ContractAddr: testCollection,
		Tokens:       []TeamTokenInput{{TokenID: "1", AthleteID: a.ID}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected trimmed token to be listed already, got %v", err)
	}
	if f.accounts.AssetCount() != 1 {
		t.Fatalf("unexpected mirrored assets: got=%d want=1", f.accounts.AssetCount())
	}
}

func TestGameTeamService_RegisterTeam_RejectsBeforeWriting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		wallet   string
		token    func(athleteID int64) TeamTokenInput
		sentinel error
	}{
		{
			name:     "token owned by someone else",
			wallet:   "terra1thief",
			token:    func(id int64) TeamTokenInput { return TeamTokenInput{TokenID: "1", AthleteID: id} },
			sentinel: ErrInvalidInput,
		},
		{
			name:     "athlete mismatch",
			wallet:   "terra1wallet",
			token:    func(id int64) TeamTokenInput { return TeamTokenInput{TokenID: "1", AthleteID: id + 1} },
			sentinel: ErrInvalidInput,
		},
		{
			name:     "unknown token on chain",
			wallet:   "terra1wallet",
			token:    func(id int64) TeamTokenInput { return TeamTokenInput{TokenID: "99", AthleteID: id} },
			sentinel: ErrUpstreamUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newScoringFixture(t)
			a := f.addAthlete(t, 555, "Jose", "Altuve")
			f.addAthlete(t, 556, "Alex", "Bregman")
			g := f.addGame(t, "Week 1")

			chain := ownedTokens("terra1wallet", map[string]int64{"1": a.ID})
			svc := NewGameTeamService(f.games, f.gameTeams, f.athletes, f.scores, f.accounts, chain,
				ScoreConfig{Season: "2021", Location: time.UTC}, logging.NewNop())

			_, err := svc.RegisterTeam(context.Background(), RegisterTeamInput{
				GameID:       g.ID,
				Name:         "Rockets",
				WalletAddr:   tc.wallet,
				ContractAddr: testCollection,
				Tokens:       []TeamTokenInput{tc.token(a.ID)},
			})
			if !errors.Is(err, tc.sentinel) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.sentinel)
			}
			if f.accounts.AssetCount() != 0 {
				t.Fatalf("rejected registration wrote %d assets", f.accounts.AssetCount())
			}
			teams, _ := f.gameTeams.ListByGame(context.Background(), g.ID)
			if len(teams) != 0 {
				t.Fatalf("rejected registration created %d teams", len(teams))
			}
		})
	}
}

func TestGameTeamService_RegisterTeam_ValidatesInput(t *testing.T) {
	t.Parallel()

	chain := &stubChainQuerier{handle: func(string, any) ([]byte, error) { return nil, errors.New("unexpected call") }}
	_, svc := newGameTeamFixture(t, chain)

	tests := []RegisterTeamInput{
		{Name: "x", WalletAddr: "w", ContractAddr: "c", Tokens: []TeamTokenInput{{TokenID: "1", AthleteID: 1}}},
		{GameID: 1, WalletAddr: "w", ContractAddr: "c", Tokens: []TeamTokenInput{{TokenID: "1", AthleteID: 1}}},
		{GameID: 1, Name: "x", WalletAddr: "w", ContractAddr: "c"},
		{GameID: 1, Name: "x", WalletAddr: "w", ContractAddr: "c", Tokens: []TeamTokenInput{{TokenID: "1", AthleteID: 1}, {TokenID: "1", AthleteID: 2}}},
	}
	for i, input := range tests {
		if _, err := svc.RegisterTeam(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
	if chain.callCount() != 0 {
		t.Fatalf("chain must not be queried for invalid input")
	}
}
