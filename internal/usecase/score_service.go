package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
	"github.com/riskibarqy/fantasy-nft/internal/domain/gameteam"
	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
	"github.com/riskibarqy/fantasy-nft/internal/platform/id"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
)

const (
	GameScoringApplied        = "applied"
	GameScoringAlreadyApplied = "already_applied"
	GameScoringFailed         = "failed"
	// GameScoringNoData leaves the day unmarked so a later run can still apply it.
	GameScoringNoData         = "no_data"
)

type ScoreConfig struct {
	// Season is the season tag used for snapshot sync and read paths. Empty
	// means the current year in Location.
	Season   string
	Location *time.Location
	Rules    score.Rules
}

type SeasonSyncResult struct {
	Season    string `json:"season"`
	Received  int    `json:"received"`
	Upserted  int    `json:"upserted"`
	Unmatched int    `json:"unmatched"`
}

type DailyScoringInput struct {
	// Date is the calendar day to score; zero means yesterday.
	Date   time.Time
	GameID int64
}

type GameScoringResult struct {
	GameID       int64   `json:"game_id"`
	Status       string  `json:"status"`
	TeamsUpdated int     `json:"teams_updated"`
	TotalDelta   float64 `json:"total_delta"`
	Message      string  `json:"message,omitempty"`
}

type DailyScoringResult struct {
	Date            string              `json:"date"`
	RunID           string              `json:"run_id"`
	Received        int                 `json:"received"`
	RecordsUpserted int                 `json:"records_upserted"`
	Unmatched       int                 `json:"unmatched"`
	Games           []GameScoringResult `json:"games"`
}

// ScoreService turns provider stat rows into score records and folds daily
// deltas into game team totals.
type ScoreService struct {
	provider     StatsProvider
	athleteRepo  athlete.Repository
	scoreRepo    score.Repository
	gameRepo     game.Repository
	gameTeamRepo gameteam.Repository
	ids          id.Generator
	cfg          ScoreConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewScoreService(
	provider StatsProvider,
	athleteRepo athlete.Repository,
	scoreRepo score.Repository,
	gameRepo game.Repository,
	gameTeamRepo gameteam.Repository,
	ids id.Generator,
	cfg ScoreConfig,
	logger *logging.Logger,
) *ScoreService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Rules == (score.Rules{}) {
		cfg.Rules = score.DefaultRules()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	return &ScoreService{
		provider:     provider,
		athleteRepo:  athleteRepo,
		scoreRepo:    scoreRepo,
		gameRepo:     gameRepo,
		gameTeamRepo: gameTeamRepo,
		ids:          ids,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// CurrentSeason is the season tag read paths join against.
func (s *ScoreService) CurrentSeason() string {
	return currentSeason(s.cfg, s.now())
}

func currentSeason(cfg ScoreConfig, now time.Time) string {
	if season := strings.TrimSpace(cfg.Season); season != "" {
		return season
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format("2006")
}

// SyncSeasonStats overwrites the season records with the provider's latest
// cumulative figures. Running it twice with the same payload is a no-op.
func (s *ScoreService) SyncSeasonStats(ctx context.Context, season string) (SeasonSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.SyncSeasonStats")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		season = s.CurrentSeason()
	}
	window := score.SeasonWindow(season)
	if err := window.Validate(); err != nil {
		return SeasonSyncResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rows, err := s.provider.FetchSeasonStats(ctx, season)
	if err != nil {
		return SeasonSyncResult{}, err
	}

	result := SeasonSyncResult{Season: season, Received: len(rows)}
	records, unmatched, err := s.buildRecords(ctx, window, collapseRows(rows, s.cfg.Rules, false))
	if err != nil {
		return SeasonSyncResult{}, err
	}
	result.Unmatched = unmatched

	if len(records) > 0 {
		if err := s.scoreRepo.Upsert(ctx, records); err != nil {
			return SeasonSyncResult{}, fmt.Errorf("upsert season score records: %w", err)
		}
	}
	result.Upserted = len(records)

	s.logger.InfoContext(ctx, "season stats synced",
		"season", season,
		"received", result.Received,
		"upserted", result.Upserted,
		"unmatched", result.Unmatched,
	)
	return result, nil
}

// RunDailyScoring scores one calendar day. The feed is fetched before any
// write; each game is applied at most once per day through the run marker.
// A day whose feed matches no athlete is reported as no_data and not marked.
func (s *ScoreService) RunDailyScoring(ctx context.Context, input DailyScoringInput) (DailyScoringResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.RunDailyScoring", gameIDAttr(input.GameID))
	defer span.End()

	day := input.Date
	if day.IsZero() {
		day = s.now().In(s.cfg.Location).AddDate(0, 0, -1)
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.cfg.Location)
	dayEnd := dayStart.AddDate(0, 0, 1)
	window := score.DateWindow(dayStart)

	var games []game.Game
	if input.GameID > 0 {
		item, exists, err := s.gameRepo.GetByID(ctx, input.GameID)
		if err != nil {
			return DailyScoringResult{}, fmt.Errorf("get game: %w", err)
		}
		if !exists {
			return DailyScoringResult{}, fmt.Errorf("%w: game=%d", ErrNotFound, input.GameID)
		}
		games = []game.Game{item}
	}

	rows, err := s.provider.FetchDailyStats(ctx, dayStart)
	if err != nil {
		return DailyScoringResult{}, err
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return DailyScoringResult{}, fmt.Errorf("generate run id: %w", err)
	}
	result := DailyScoringResult{
		Date:     window.Tag,
		RunID:    runID,
		Received: len(rows),
		Games:    []GameScoringResult{},
	}

	records, unmatched, err := s.buildRecords(ctx, window, collapseRows(rows, s.cfg.Rules, true))
	if err != nil {
		return DailyScoringResult{}, err
	}
	result.Unmatched = unmatched
	if len(records) > 0 {
		if err := s.scoreRepo.Upsert(ctx, records); err != nil {
			return DailyScoringResult{}, fmt.Errorf("upsert daily score records: %w", err)
		}
	}
	result.RecordsUpserted = len(records)

	deltaByAthlete := make(map[int64]float64, len(records))
	for _, r := range records {
		deltaByAthlete[r.AthleteID] = r.FantasyScore
	}

	if input.GameID <= 0 {
		games, err = s.gameRepo.ListActiveDuring(ctx, dayStart, dayEnd)
		if err != nil {
			return result, fmt.Errorf("list active games: %w", err)
		}
	}

	if len(records) == 0 && len(games) > 0 {
		s.logger.WarnContext(ctx, "daily feed has no matched rows, games left unmarked",
			"date", result.Date,
			"received", result.Received,
			"unmatched", result.Unmatched,
		)
	}

	for _, g := range games {
		if err := ctx.Err(); err != nil {
			s.logger.WarnContext(ctx, "daily scoring cancelled", "date", result.Date, "processed_games", len(result.Games))
			return result, err
		}
		if len(records) == 0 {
			result.Games = append(result.Games, GameScoringResult{GameID: g.ID, Status: GameScoringNoData})
			continue
		}
		result.Games = append(result.Games, s.scoreGame(ctx, g, dayStart, runID, deltaByAthlete))
	}

	s.logger.InfoContext(ctx, "daily scoring completed",
		"date", result.Date,
		"run_id", runID,
		"received", result.Received,
		"records_upserted", result.RecordsUpserted,
		"games", len(result.Games),
	)
	return result, nil
}

func (s *ScoreService) scoreGame(
	ctx context.Context,
	g game.Game,
	day time.Time,
	runID string,
	deltaByAthlete map[int64]float64,
) GameScoringResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.scoreGame", gameIDAttr(g.ID))
	defer span.End()

	row := GameScoringResult{GameID: g.ID}
	fail := func(msg string, err error) GameScoringResult {
		recordSpanError(span, err)
		row.Status = GameScoringFailed
		row.Message = msg
		s.logger.ErrorContext(ctx, "score game failed", "game_id", g.ID, "step", msg, "error", err)
		return row
	}

	teams, err := s.gameTeamRepo.ListByGame(ctx, g.ID)
	if err != nil {
		return fail("list game teams", err)
	}
	teamIDs := make([]int64, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	slots, err := s.gameTeamRepo.ListRoster(ctx, teamIDs)
	if err != nil {
		return fail("list roster", err)
	}

	deltas := make(map[int64]float64)
	for _, slot := range slots {
		delta, ok := deltaByAthlete[slot.AthleteID]
		if !ok || delta == 0 {
			continue
		}
		deltas[slot.GameTeamID] += delta
	}

	var total float64
	for teamID, delta := range deltas {
		delta = roundScore(delta)
		deltas[teamID] = delta
		total += delta
	}

	run := gameteam.DailyRun{
		GameID:       g.ID,
		ScoreDate:    day,
		RunID:        runID,
		TeamsUpdated: len(deltas),
		TotalDelta:   roundScore(total),
	}
	applied, err := s.gameTeamRepo.ApplyDailyScores(ctx, run, deltas)
	if err != nil {
		return fail("apply daily scores", err)
	}
	if !applied {
		row.Status = GameScoringAlreadyApplied
		s.logger.WarnContext(ctx, "daily scores already applied", "game_id", g.ID, "date", run.DateKey())
		return row
	}

	row.Status = GameScoringApplied
	row.TeamsUpdated = run.TeamsUpdated
	row.TotalDelta = run.TotalDelta
	return row
}

type collapsedRow struct {
	apiID        int64
	fantasyScore float64
	stats        score.Stats
	position     string
}

// collapseRows keys rows by provider id. When sum is set, repeated ids (double
// headers on one day) are added together; otherwise the last row wins.
func collapseRows(rows []ExternalAthleteStat, rules score.Rules, sum bool) []collapsedRow {
	out := make([]collapsedRow, 0, len(rows))
	index := make(map[int64]int, len(rows))
	for _, r := range rows {
		if r.APIID <= 0 {
			continue
		}
		points := rules.Score(r.Stats)
		if r.FantasyScore != nil {
			points = *r.FantasyScore
		}
		next := collapsedRow{apiID: r.APIID, fantasyScore: points, stats: r.Stats, position: r.Position}

		i, ok := index[r.APIID]
		if !ok {
			index[r.APIID] = len(out)
			out = append(out, next)
			continue
		}
		if !sum {
			out[i] = next
			continue
		}
		out[i].fantasyScore += next.fantasyScore
		out[i].stats = out[i].stats.Add(next.stats)
		if next.position != "" {
			out[i].position = next.position
		}
	}
	return out
}

// buildRecords matches rows to athletes strictly by provider id.
func (s *ScoreService) buildRecords(ctx context.Context, window score.Window, rows []collapsedRow) ([]score.Record, int, error) {
	if len(rows) == 0 {
		return nil, 0, nil
	}

	apiIDs := make([]int64, 0, len(rows))
	for _, r := range rows {
		apiIDs = append(apiIDs, r.apiID)
	}
	athletes, err := s.athleteRepo.ListByAPIIDs(ctx, apiIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("list athletes by api ids: %w", err)
	}
	athleteIDByAPIID := make(map[int64]int64, len(athletes))
	for _, a := range athletes {
		athleteIDByAPIID[a.APIID] = a.ID
	}

	records := make([]score.Record, 0, len(rows))
	unmatched := 0
	for _, r := range rows {
		athleteID, ok := athleteIDByAPIID[r.apiID]
		if !ok {
			unmatched++
			s.logger.DebugContext(ctx, "skip stat row without athlete", "api_id", r.apiID, "window", window.Key())
			continue
		}
		records = append(records, score.Record{
			AthleteID:    athleteID,
			Window:       window,
			FantasyScore: roundScore(r.fantasyScore),
			Stats:        r.stats,
			Position:     r.position,
		})
	}
	return records, unmatched, nil
}

func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
