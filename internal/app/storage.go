package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/fantasy-nft/internal/config"
	"github.com/riskibarqy/fantasy-nft/internal/domain/account"
	"github.com/riskibarqy/fantasy-nft/internal/domain/athlete"
	"github.com/riskibarqy/fantasy-nft/internal/domain/game"
	"github.com/riskibarqy/fantasy-nft/internal/domain/gameteam"
	"github.com/riskibarqy/fantasy-nft/internal/domain/score"
	"github.com/riskibarqy/fantasy-nft/internal/domain/team"
	cacherepo "github.com/riskibarqy/fantasy-nft/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-nft/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-nft/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-nft/internal/platform/cache"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const redisPingTimeout = 3 * time.Second

type repositories struct {
	teams     team.Repository
	athletes  athlete.Repository
	scores    score.Repository
	games     game.Repository
	gameTeams gameteam.Repository
	accounts  account.Repository
}

func openDatabase(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	db, err := otelsqlx.Open(
		"postgres",
		normalizeDBURL(cfg.DBURL, cfg.ServiceName),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	logger.Info("postgres connected", "dsn", redactDBURL(cfg.DBURL), "max_open_conns", cfg.DBMaxOpenConns)

	if cfg.DBSeedOnBoot {
		if err := postgres.BootstrapSeed(ctx, db, time.Now()); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("bootstrap seed checked", "db", dbNameFromURL(cfg.DBURL))
	}

	return db, nil
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		teams:     postgres.NewTeamRepository(db),
		athletes:  postgres.NewAthleteRepository(db),
		scores:    postgres.NewScoreRepository(db),
		games:     postgres.NewGameRepository(db),
		gameTeams: postgres.NewGameTeamRepository(db),
		accounts:  postgres.NewAccountRepository(db),
	}
}

func memoryRepositories(now time.Time) repositories {
	return repositories{
		teams:     memory.NewTeamRepository(memory.SeedTeams()),
		athletes:  memory.NewAthleteRepository(memory.SeedAthletes()),
		scores:    memory.NewScoreRepository(),
		games:     memory.NewGameRepository(memory.SeedGames(now)),
		gameTeams: memory.NewGameTeamRepository(),
		accounts:  memory.NewAccountRepository(),
	}
}

// withReadCache wraps the read-heavy repositories in the in-process cache.
func withReadCache(repos repositories, ttl time.Duration) repositories {
	store := cache.NewStore(ttl)
	repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
	repos.athletes = cacherepo.NewAthleteRepository(repos.athletes, store)
	repos.scores = cacherepo.NewScoreRepository(repos.scores, store)
	repos.games = cacherepo.NewGameRepository(repos.games, store)
	return repos
}

// newByteStore returns the chain query cache backend. An unreachable redis
// degrades to the in-process store instead of failing boot.
func newByteStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (cache.ByteStore, func() error) {
	memoryStore := cache.NewMemoryByteStore(cache.NewStore(cfg.ChainCacheTTL))
	if !cfg.RedisEnabled {
		return memoryStore, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-process chain cache", "addr", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return memoryStore, nil
	}

	logger.Info("redis chain cache enabled", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return cache.NewRedisStore(client, cfg.RedisKeyPrefix), client.Close
}
