package statsfeed

import (
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
)

// UpstreamMessage is the message surfaced to API callers on any feed failure.
const UpstreamMessage = "Failed to fetch data from Stats Perform API"

const (
	seasonStatsPath = "stats/json/PlayerSeasonStats/"
	dailyStatsPath  = "stats/json/PlayerGameStatsByDate/"
	rosterPath      = "scores/json/Players"
	teamsPath       = "scores/json/teams"
	feedDateLayout  = "2006-Jan-02"
)

type Fetcher interface {
	Fetch(ctx context.Context, path string) Result
}

// Provider adapts the raw feed to usecase.StatsProvider.
type Provider struct {
	client Fetcher
	logger *logging.Logger
}

var _ usecase.StatsProvider = (*Provider)(nil)

func NewProvider(client Fetcher, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.Default()
	}
	return &Provider{client: client, logger: logger}
}

// DailyPath renders the by-date endpoint, e.g. .../PlayerGameStatsByDate/2021-JUN-01.
func DailyPath(day time.Time) string {
	return dailyStatsPath + strings.ToUpper(day.Format(feedDateLayout))
}

func SeasonPath(season string) string {
	return seasonStatsPath + strings.TrimSpace(season)
}

func (p *Provider) FetchSeasonStats(ctx context.Context, season string) ([]usecase.ExternalAthleteStat, error) {
	var rows []playerStatRow
	if err := p.fetchInto(ctx, SeasonPath(season), &rows); err != nil {
		return nil, err
	}
	return normalizeStats(rows), nil
}

func (p *Provider) FetchDailyStats(ctx context.Context, day time.Time) ([]usecase.ExternalAthleteStat, error) {
	var rows []playerStatRow
	if err := p.fetchInto(ctx, DailyPath(day), &rows); err != nil {
		return nil, err
	}
	return normalizeStats(rows), nil
}

func (p *Provider) FetchRoster(ctx context.Context) ([]usecase.ExternalAthlete, error) {
	var rows []rosterRow
	if err := p.fetchInto(ctx, rosterPath, &rows); err != nil {
		return nil, err
	}
	return normalizeRoster(rows), nil
}

func (p *Provider) FetchTeams(ctx context.Context) ([]usecase.ExternalTeam, error) {
	var rows []teamRow
	if err := p.fetchInto(ctx, teamsPath, &rows); err != nil {
		return nil, err
	}
	return normalizeTeams(rows), nil
}

func (p *Provider) fetchInto(ctx context.Context, path string, target any) error {
	res := p.client.Fetch(ctx, path)
	if !res.OK() {
		p.logger.WarnContext(ctx, "stats feed fetch failed",
			"path", path,
			"kind", res.Kind,
			"status_code", res.StatusCode,
			"message", res.Message,
		)
		return usecase.NewUpstreamError(res.Kind, UpstreamMessage, responseBody(res.Payload))
	}

	if err := sonic.Unmarshal(res.Payload, target); err != nil {
		p.logger.WarnContext(ctx, "stats feed payload has unexpected shape", "path", path, "error", err)
		return usecase.NewUpstreamError(usecase.UpstreamKindMalformed, UpstreamMessage, responseBody(res.Payload))
	}
	return nil
}

// responseBody decodes the upstream body for the error envelope, falling back
// to the raw text when it is not JSON.
func responseBody(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var decoded any
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return abbreviateBody(raw)
	}
	return decoded
}
