package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/fantasy-nft/internal/config"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

func noopShutdown(context.Context) error { return nil }

// tracingDisabledReason reports why spans would not be exported, or "" when
// the exporter can start.
func tracingDisabledReason(cfg config.Config) string {
	switch {
	case !cfg.UptraceEnabled:
		return "UPTRACE_ENABLED=false"
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		return "UPTRACE_DSN empty"
	default:
		return ""
	}
}

// InitUptrace installs the global tracer and meter providers. The returned
// func flushes pending spans.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if reason := tracingDisabledReason(cfg); reason != "" {
		logger.Info("tracing disabled", "reason", reason)
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
		uptrace.WithResourceAttributes(
			attribute.String("fantasy.storage_driver", cfg.StorageDriver),
			attribute.String("fantasy.scoring_season", cfg.ScoringSeason),
		),
	)

	logger.Info("tracing enabled",
		"exporter", "uptrace",
		"storage_driver", cfg.StorageDriver,
		"scoring_season", cfg.ScoringSeason,
	)
	return uptrace.Shutdown, nil
}
