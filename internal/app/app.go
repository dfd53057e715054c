package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/fantasy-nft/external/chain"
	"github.com/riskibarqy/fantasy-nft/external/statsfeed"
	"github.com/riskibarqy/fantasy-nft/internal/config"
	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
	"github.com/riskibarqy/fantasy-nft/internal/interfaces/httpapi"
	"github.com/riskibarqy/fantasy-nft/internal/observability"
	idgen "github.com/riskibarqy/fantasy-nft/internal/platform/id"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Container holds the wired services shared by the API server and the job
// CLI. Close releases the database and cache connections.
type Container struct {
	Metrics     *observability.Metrics
	GameTeams   *usecase.GameTeamService
	Catalog     *usecase.CatalogService
	Leaderboard *usecase.LeaderboardService
	Ownership   *usecase.OwnershipService
	Scores      *usecase.ScoreService
	AthleteSync *usecase.AthleteSyncService

	logger  *logging.Logger
	closers []func() error
}

func Build(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Container{logger: logger}

	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, db.Close)
		repos = postgresRepositories(db)
	default:
		repos = memoryRepositories(time.Now())
	}
	if cfg.CacheEnabled {
		repos = withReadCache(repos, cfg.CacheTTL)
	}

	rules, err := score.LoadRules(cfg.ScoringRulesPath)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("load scoring rules: %w", err)
	}
	scoreCfg := usecase.ScoreConfig{
		Season:   cfg.ScoringSeason,
		Location: cfg.ScoringLocation,
		Rules:    rules,
	}

	if cfg.MetricsEnabled {
		c.Metrics = observability.NewMetrics()
	}
	onBreakerState := c.Metrics.BreakerListener()

	feedClient := statsfeed.NewClient(statsfeed.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.StatsFeedTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:        cfg.StatsFeedBaseURL,
		PublicKey:      cfg.StatsFeedPublicKey,
		SecretKey:      cfg.StatsFeedSecretKey,
		Timeout:        cfg.StatsFeedTimeout,
		MaxRetries:     cfg.StatsFeedMaxRetries,
		RatePerSecond:  cfg.StatsFeedRatePerSecond,
		RateBurst:      cfg.StatsFeedRateBurst,
		Logger:         logger.Named("statsfeed"),
		CircuitBreaker: cfg.StatsFeedCircuit,
		OnBreakerState: onBreakerState,
	})
	provider := statsfeed.NewProvider(feedClient, logger.Named("statsfeed"))

	chainClient, err := chain.NewClient(chain.ClientConfig{
		LCDURL:         cfg.ChainLCDURL,
		Timeout:        cfg.ChainTimeout,
		Logger:         logger.Named("chain"),
		CircuitBreaker: cfg.ChainCircuit,
		OnBreakerState: onBreakerState,
	})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("build chain client: %w", err)
	}

	var ownershipChain usecase.ChainQuerier = chainClient
	if cfg.ChainCacheTTL > 0 {
		byteStore, closeStore := newByteStore(ctx, cfg, logger)
		if closeStore != nil {
			c.closers = append(c.closers, closeStore)
		}
		ownershipChain = chain.NewCachedQuerier(chainClient, byteStore, cfg.ChainCacheTTL, logger.Named("chain"))
	}

	// Registration checks ownership against the live chain state.
	c.GameTeams = usecase.NewGameTeamService(
		repos.games,
		repos.gameTeams,
		repos.athletes,
		repos.scores,
		repos.accounts,
		chainClient,
		scoreCfg,
		logger,
	)
	c.Leaderboard = usecase.NewLeaderboardService(repos.games, repos.gameTeams, repos.accounts)
	c.Ownership = usecase.NewOwnershipService(
		ownershipChain,
		repos.accounts,
		repos.athletes,
		repos.scores,
		repos.gameTeams,
		usecase.OwnershipConfig{
			GameContractAddr:   cfg.ChainGameContract,
			NFTInfoConcurrency: cfg.ChainNFTInfoConcurrency,
		},
		scoreCfg,
		logger,
	)
	c.Scores = usecase.NewScoreService(
		provider,
		repos.athletes,
		repos.scores,
		repos.games,
		repos.gameTeams,
		idgen.NewUUIDGenerator(),
		scoreCfg,
		logger,
	)
	c.Catalog = usecase.NewCatalogService(repos.teams, repos.athletes)
	c.AthleteSync = usecase.NewAthleteSyncService(provider, repos.teams, repos.athletes, cfg.WorkerPoolSize, logger)

	logger.Info("container built",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"redis_enabled", cfg.RedisEnabled,
		"metrics_enabled", cfg.MetricsEnabled,
		"season", cfg.ScoringSeason,
		"timezone", cfg.ScoringTimezone,
	)

	return c, nil
}

// Close releases resources in reverse acquisition order.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

func NewHTTPServer(cfg config.Config, c *Container) (*http.Server, error) {
	handler := httpapi.NewHandler(
		c.GameTeams,
		c.Catalog,
		c.Leaderboard,
		c.Ownership,
		c.Scores,
		c.AthleteSync,
		c.Metrics,
		c.logger,
	)
	router := httpapi.NewRouter(handler, c.Metrics, c.logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
