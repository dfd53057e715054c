package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/riskibarqy/fantasy-nft/cmd/jobs"

type athleteSyncer interface {
	SyncTeams(ctx context.Context) (usecase.TeamSyncResult, error)
	SyncRoster(ctx context.Context) (usecase.AthleteSyncResult, error)
}

type scorer interface {
	SyncSeasonStats(ctx context.Context, season string) (usecase.SeasonSyncResult, error)
	RunDailyScoring(ctx context.Context, input usecase.DailyScoringInput) (usecase.DailyScoringResult, error)
}

type services struct {
	athleteSync athleteSyncer
	scores      scorer
}

type buildFunc func(ctx context.Context) (services, func() error, error)

func newRootCommand(build buildFunc, logger *logging.Logger, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "jobs",
		Short:         "Run fantasy-nft sync and scoring jobs once",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "sync-teams",
			Short: "Upsert MLB teams from the stats feed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), build, logger, out, "sync-teams", func(ctx context.Context, s services) (any, error) {
					return s.athleteSync.SyncTeams(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "sync-athletes",
			Short: "Upsert the active roster from the stats feed",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), build, logger, out, "sync-athletes", func(ctx context.Context, s services) (any, error) {
					return s.athleteSync.SyncRoster(ctx)
				})
			},
		},
		newSeasonStatsCommand(build, logger, out),
		newUpdateScoresCommand(build, logger, out),
	)

	return root
}

func newSeasonStatsCommand(build buildFunc, logger *logging.Logger, out io.Writer) *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "sync-season-stats",
		Short: "Recompute season score records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			season = strings.TrimSpace(season)
			if season != "" && !isYear(season) {
				return fmt.Errorf("%w: season must be a four digit year", usecase.ErrInvalidInput)
			}
			return run(cmd.Context(), build, logger, out, "sync-season-stats", func(ctx context.Context, s services) (any, error) {
				return s.scores.SyncSeasonStats(ctx, season)
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "season year, defaults to the configured or current season")
	return cmd
}

func newUpdateScoresCommand(build buildFunc, logger *logging.Logger, out io.Writer) *cobra.Command {
	var (
		date   string
		gameID int64
	)
	cmd := &cobra.Command{
		Use:   "update-team-scores",
		Short: "Apply one day of athlete scores to game teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDate(date)
			if err != nil {
				return err
			}
			if gameID < 0 {
				return fmt.Errorf("%w: game must be positive", usecase.ErrInvalidInput)
			}
			return run(cmd.Context(), build, logger, out, "update-team-scores", func(ctx context.Context, s services) (any, error) {
				return s.scores.RunDailyScoring(ctx, usecase.DailyScoringInput{Date: day, GameID: gameID})
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to score as YYYY-MM-DD, defaults to yesterday")
	cmd.Flags().Int64Var(&gameID, "game", 0, "score a single game regardless of its window")
	return cmd
}

func run(
	ctx context.Context,
	build buildFunc,
	logger *logging.Logger,
	out io.Writer,
	job string,
	fn func(ctx context.Context, s services) (any, error),
) error {
	s, closeFn, err := build(ctx)
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}
	if closeFn != nil {
		defer func() {
			if err := closeFn(); err != nil {
				logger.Warn("close job resources", "job", job, "error", err)
			}
		}()
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "jobs."+job)
	defer span.End()
	log := logger.WithContext(ctx).With("job", job)

	started := time.Now()
	result, err := fn(ctx, s)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: %w", job, err)
	}
	log.Info("job finished", "elapsed", time.Since(started).String())

	return sonic.ConfigDefault.NewEncoder(out).Encode(result)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", usecase.ErrInvalidInput)
	}
	return day, nil
}

func isYear(raw string) bool {
	if len(raw) != 4 {
		return false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
