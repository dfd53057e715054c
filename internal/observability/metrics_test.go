package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/fantasy-nft/internal/platform/resilience"
)

func TestMetrics_BreakerListenerTracksOpenState(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	listener := m.BreakerListener()
	listener("chain", resilience.CircuitStateClosed, resilience.CircuitStateOpen)

	if got := testutil.ToFloat64(m.BreakerOpen.WithLabelValues("chain")); got != 1 {
		t.Fatalf("unexpected open gauge: got=%v want=1", got)
	}

	listener("chain", resilience.CircuitStateOpen, resilience.CircuitStateHalfOpen)
	if got := testutil.ToFloat64(m.BreakerOpen.WithLabelValues("chain")); got != 0 {
		t.Fatalf("unexpected open gauge: got=%v want=0", got)
	}
	if got := testutil.ToFloat64(m.BreakerTransitions.WithLabelValues("chain", "open")); got != 1 {
		t.Fatalf("unexpected transitions: got=%v want=1", got)
	}
}

func TestMetrics_JobAndScoringCounters(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveJob("update-team-scores", nil)
	m.ObserveJob("update-team-scores", errors.New("boom"))
	m.ObserveScoring(5, 3, 2)

	if got := testutil.ToFloat64(m.JobRuns.WithLabelValues("update-team-scores", "failure")); got != 1 {
		t.Fatalf("unexpected failure count: got=%v want=1", got)
	}
	if got := testutil.ToFloat64(m.ScoringRecords.WithLabelValues("unmatched")); got != 2 {
		t.Fatalf("unexpected unmatched count: got=%v want=2", got)
	}
}

func TestMetrics_HandlerExposesHTTPSeries(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.ObserveHTTP(http.MethodGet, "GET /healthz", http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "fantasy_nft_http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.ObserveHTTP(http.MethodGet, "", http.StatusOK, time.Millisecond)
	m.ObserveJob("sync-teams", nil)
	m.ObserveScoring(1, 1, 0)
	if m.BreakerListener() != nil {
		t.Fatalf("expected nil listener for nil metrics")
	}
}
