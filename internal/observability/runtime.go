package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/config"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
)

// Runtime owns the process-wide telemetry started at boot.
type Runtime struct {
	logger          *logging.Logger
	shutdownTracing func(context.Context) error
	stopProfiler    func() error
	pprofServer     *http.Server
	pprofTimeout    time.Duration
}

// Start brings up tracing and, when profiling is true, pyroscope and the
// pprof listener. One-shot job runs pass false.
func Start(cfg config.Config, logger *logging.Logger, profiling bool) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{
		logger:       logger,
		stopProfiler: func() error { return nil },
		pprofTimeout: cfg.ShutdownTimeout,
	}

	var err error
	if rt.shutdownTracing, err = InitUptrace(cfg, logger); err != nil {
		return nil, err
	}
	if !profiling {
		return rt, nil
	}

	if rt.stopProfiler, err = InitPyroscope(cfg, logger); err != nil {
		_ = rt.shutdownTracing(context.Background())
		return nil, err
	}
	if rt.pprofServer, err = StartPprofServer(cfg, logger); err != nil {
		_ = rt.stopProfiler()
		_ = rt.shutdownTracing(context.Background())
		return nil, err
	}

	return rt, nil
}

// Shutdown stops everything Start began and flushes pending spans.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var errs []error
	if err := StopPprofServer(r.pprofServer, r.logger, r.pprofTimeout); err != nil {
		errs = append(errs, err)
	}
	if err := r.stopProfiler(); err != nil {
		errs = append(errs, err)
	}
	if err := r.shutdownTracing(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
