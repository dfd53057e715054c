package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
	"github.com/riskibarqy/fantasy-nft/internal/infrastructure/repository/memory"
	usecasemock "github.com/riskibarqy/fantasy-nft/internal/mocks/usecase"
	"github.com/riskibarqy/fantasy-nft/internal/observability"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
	"github.com/stretchr/testify/mock"
)

const testJobToken = "job-secret"

type routerFixture struct {
	router   http.Handler
	provider *usecasemock.StatsProvider
	chain    *usecasemock.ChainQuerier
	games    *memory.GameRepository
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()

	provider := usecasemock.NewStatsProvider(t)
	chain := usecasemock.NewChainQuerier(t)
	games := memory.NewGameRepository(nil)
	gameTeams := memory.NewGameTeamRepository()
	athletes := memory.NewAthleteRepository(memory.SeedAthletes())
	teams := memory.NewTeamRepository(memory.SeedTeams())
	scores := memory.NewScoreRepository()
	accounts := memory.NewAccountRepository()
	logger := logging.NewNop()
	scoreCfg := usecase.ScoreConfig{Season: "2021", Location: time.UTC}
	metrics := observability.NewMetrics()

	handler := NewHandler(
		usecase.NewGameTeamService(games, gameTeams, athletes, scores, accounts, chain, scoreCfg, logger),
		usecase.NewCatalogService(teams, athletes),
		usecase.NewLeaderboardService(games, gameTeams, accounts),
		usecase.NewOwnershipService(chain, accounts, athletes, scores, gameTeams, usecase.OwnershipConfig{}, scoreCfg, logger),
		usecase.NewScoreService(provider, athletes, scores, games, gameTeams, nil, scoreCfg, logger),
		usecase.NewAthleteSyncService(provider, teams, athletes, 2, logger),
		metrics,
		logger,
	)

	return routerFixture{
		router:   NewRouter(handler, metrics, logger, []string{"*"}, testJobToken),
		provider: provider,
		chain:    chain,
		games:    games,
	}
}

func (f routerFixture) do(t *testing.T, method, path, body string, withToken bool) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		req.Header.Set(internalJobTokenHeader, testJobToken)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec, _ := f.do(t, http.MethodGet, "/healthz", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
}

func TestRouter_OperationRoutesRequireJobToken(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	for _, path := range []string{
		"/fantasy/athlete/sync",
		"/fantasy/team/sync",
		"/fantasy/athlete/stats/sync",
		"/fantasy/game/1/test_update_scores",
		"/fantasy/game",
		"/internal/jobs/update-team-scores",
	} {
		rec, _ := f.do(t, http.MethodPost, path, "", false)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: unexpected status: got=%d want=%d", path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestRouter_CreateAndGetGame(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	body := `{"name":"Opening Week","start_datetime":"2021-06-01T00:00:00Z","duration":1440,"prize":250}`
	rec, created := f.do(t, http.MethodPost, "/fantasy/game", body, true)
	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected create status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := created["data"].(map[string]any)
	if got, _ := data["end_datetime"].(string); got != "2021-06-02T00:00:00Z" {
		t.Fatalf("unexpected end_datetime: got=%v want=2021-06-02T00:00:00Z", data["end_datetime"])
	}

	rec, fetched := f.do(t, http.MethodGet, "/fantasy/game/1", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected get status: got=%d", rec.Code)
	}
	data, _ = fetched["data"].(map[string]any)
	if got, _ := data["name"].(string); got != "Opening Week" {
		t.Fatalf("unexpected name: got=%v want=Opening Week", data["name"])
	}
}

func TestRouter_CreateGameRejectsInvalidPayload(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec, _ := f.do(t, http.MethodPost, "/fantasy/game", `{"name":"x","duration":0}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	rec, _ = f.do(t, http.MethodPost, "/fantasy/game", `{"unknown":true}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status for unknown field: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestRouter_GameIDMustBeNumeric(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec, _ := f.do(t, http.MethodGet, "/fantasy/game/abc", "", false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	rec, _ = f.do(t, http.MethodGet, "/fantasy/game/99", "", false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status for missing game: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_LeaderboardIsPadded(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	if _, err := f.games.Create(context.Background(), game.Game{Name: "G", StartAt: start, DurationMinutes: 60, Prize: 10}.Normalize()); err != nil {
		t.Fatalf("create game: %v", err)
	}

	rec, body := f.do(t, http.MethodGet, "/fantasy/game/1/leaderboard?page=1&page_size=10", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	entries, _ := data["entries"].([]any)
	if len(entries) != usecase.LeaderboardMinEntries {
		t.Fatalf("unexpected entries: got=%d want=%d", len(entries), usecase.LeaderboardMinEntries)
	}

	rec, _ = f.do(t, http.MethodGet, "/fantasy/game/1/leaderboard?page=x", "", false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status for bad page: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestRouter_UpstreamFailureSurfacesResponse(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	upstreamBody := map[string]any{"HttpStatusCode": float64(401), "Message": "Invalid API key"}
	f.provider.On("FetchSeasonStats", mock.Anything, "2021").
		Return(nil, usecase.NewUpstreamError(usecase.UpstreamKindHTTP, "Failed to fetch data from Stats Perform API", upstreamBody)).
		Once()

	rec, body := f.do(t, http.MethodPost, "/fantasy/athlete/stats/sync", `{"season":"2021"}`, true)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadGateway)
	}
	errBody, _ := body["error"].(map[string]any)
	if got, _ := errBody["message"].(string); got != "Failed to fetch data from Stats Perform API" {
		t.Fatalf("unexpected message: got=%v", errBody["message"])
	}
	response, _ := errBody["response"].(map[string]any)
	if got, _ := response["Message"].(string); got != "Invalid API key" {
		t.Fatalf("unexpected upstream response: got=%v", errBody["response"])
	}
}

func TestRouter_AccountAssetsMirrorsChainTokens(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	f.chain.On("QueryContract", mock.Anything, "terra1collection", mock.Anything).
		Return([]byte(`{"tokens":["7","8"]}`), nil).
		Once()

	rec, body := f.do(t, http.MethodGet, "/account/assets/account/terra1wallet/collection/terra1collection", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	items, _ := body["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("unexpected asset count: got=%d want=2", len(items))
	}
}

func TestRouter_RegisterTeamRequiresSingleCollection(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	body := `{"name":"Sluggers","game":1,"wallet_addr":"terra1wallet","athletes":[` +
		`{"athlete_id":1,"token_id":"1","contract_addr":"terra1a"},` +
		`{"athlete_id":2,"token_id":"2","contract_addr":"terra1b"}]}`
	rec, _ := f.do(t, http.MethodPost, "/fantasy/game_team", body, false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestRouter_ScoringDateMustBeISO(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec, _ := f.do(t, http.MethodPost, "/internal/jobs/update-team-scores", `{"date":"06/01/2021"}`, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestRouter_TeamRoutes(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec, body := f.do(t, http.MethodGet, "/fantasy/team", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected list status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	if items, _ := body["data"].([]any); len(items) != len(memory.SeedTeams()) {
		t.Fatalf("unexpected team count: got=%d want=%d", len(items), len(memory.SeedTeams()))
	}

	rec, body = f.do(t, http.MethodGet, "/fantasy/team/2", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected get status: got=%d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	if got, _ := data["name"].(string); got != "Yankees" {
		t.Fatalf("unexpected team: got=%v want=Yankees", data["name"])
	}

	rec, _ = f.do(t, http.MethodGet, "/fantasy/team/99", "", false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status for missing team: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_AthleteRoutesNestTeam(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	rec, body := f.do(t, http.MethodGet, "/fantasy/athlete", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected list status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	items, _ := body["data"].([]any)
	if len(items) != len(memory.SeedAthletes()) {
		t.Fatalf("unexpected athlete count: got=%d want=%d", len(items), len(memory.SeedAthletes()))
	}

	rec, body = f.do(t, http.MethodGet, "/fantasy/athlete?team_id=2", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected filtered status: got=%d", rec.Code)
	}
	items, _ = body["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("unexpected filtered count: got=%d want=1", len(items))
	}
	judge, _ := items[0].(map[string]any)
	if got, _ := judge["last_name"].(string); got != "Judge" {
		t.Fatalf("unexpected athlete: got=%v want=Judge", judge["last_name"])
	}

	rec, body = f.do(t, http.MethodGet, "/fantasy/athlete/1", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected get status: got=%d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	club, _ := data["team"].(map[string]any)
	if got, _ := club["key"].(string); got != "LAD" {
		t.Fatalf("unexpected nested team: got=%v want=LAD", data["team"])
	}

	rec, _ = f.do(t, http.MethodGet, "/fantasy/athlete/99", "", false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status for missing athlete: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
	rec, _ = f.do(t, http.MethodGet, "/fantasy/athlete?team_id=x", "", false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status for bad team_id: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
}

func TestRouter_ListGamesNewestFirst(t *testing.T) {
	t.Parallel()

	f := newRouterFixture(t)
	ctx := context.Background()
	for _, g := range []game.Game{
		{Name: "Opening Week", StartAt: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), DurationMinutes: 60, Prize: 10},
		{Name: "Second Week", StartAt: time.Date(2021, 6, 8, 0, 0, 0, 0, time.UTC), DurationMinutes: 60, Prize: 10},
	} {
		if _, err := f.games.Create(ctx, g.Normalize()); err != nil {
			t.Fatalf("create game: %v", err)
		}
	}

	rec, body := f.do(t, http.MethodGet, "/fantasy/game", "", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	items, _ := body["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("unexpected game count: got=%d want=2", len(items))
	}
	first, _ := items[0].(map[string]any)
	if got, _ := first["name"].(string); got != "Second Week" {
		t.Fatalf("unexpected first game: got=%v want=Second Week", first["name"])
	}
}
