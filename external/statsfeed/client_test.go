package statsfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-nft/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
)

func newTestClient(baseURL string, mutate func(*ClientConfig)) *Client {
	cfg := ClientConfig{
		BaseURL:      baseURL,
		PublicKey:    "pub",
		SecretKey:    "secret",
		Timeout:      2 * time.Second,
		RetryBackoff: time.Millisecond,
		Logger:       logging.NewNop(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestClientFetch_SignsRequest(t *testing.T) {
	t.Parallel()

	fixed := time.Unix(1622505600, 0)
	var gotPath, gotKey, gotSig, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotSig = r.URL.Query().Get("sig")
		gotAccept = r.Header.Get("accept")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, func(cfg *ClientConfig) {
		cfg.Now = func() time.Time { return fixed }
	})
	res := client.Fetch(context.Background(), DailyPath(time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)))
	if !res.OK() {
		t.Fatalf("unexpected failure: %+v", res)
	}
	if gotPath != "/stats/json/PlayerGameStatsByDate/2021-JUN-01" {
		t.Fatalf("unexpected path: got=%s", gotPath)
	}
	if gotKey != "pub" {
		t.Fatalf("unexpected api_key: got=%s want=pub", gotKey)
	}
	if want := Sign("pub", "secret", fixed); gotSig != want {
		t.Fatalf("unexpected sig: got=%s want=%s", gotSig, want)
	}
	if gotAccept != "application/json" {
		t.Fatalf("unexpected accept header: got=%s", gotAccept)
	}
}

func TestSign_IsHexSHA256(t *testing.T) {
	t.Parallel()

	sig := Sign("pub", "secret", time.Unix(100, 0))
	if len(sig) != 64 {
		t.Fatalf("unexpected signature length: got=%d want=64", len(sig))
	}
	if sig == Sign("pub", "secret", time.Unix(101, 0)) {
		t.Fatalf("signature must change with the timestamp")
	}
}

func TestClientFetch_ClassifiesTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, func(cfg *ClientConfig) {
		cfg.Timeout = 20 * time.Millisecond
		cfg.MaxRetries = 3
	})
	res := client.Fetch(context.Background(), "scores/json/teams")
	if res.OK() || res.Kind != usecase.UpstreamKindTimeout {
		t.Fatalf("unexpected result: got=%+v want kind=%s", res, usecase.UpstreamKindTimeout)
	}
}

func TestClientFetch_ClassifiesConnectionError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	res := newTestClient(baseURL, nil).Fetch(context.Background(), "scores/json/teams")
	if res.OK() || res.Kind != usecase.UpstreamKindConnection {
		t.Fatalf("unexpected result: got=%+v want kind=%s", res, usecase.UpstreamKindConnection)
	}
	if strings.Contains(res.Message, "secret") {
		t.Fatalf("message leaks the secret: %s", res.Message)
	}
}

func TestClientFetch_HTTPErrorKeepsBodyWithoutRetry(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"Message":"bad key"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, func(cfg *ClientConfig) { cfg.MaxRetries = 3 })
	res := client.Fetch(context.Background(), "scores/json/Players")
	if res.OK() || res.Kind != usecase.UpstreamKindHTTP {
		t.Fatalf("unexpected result: got=%+v", res)
	}
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status code: got=%d want=%d", res.StatusCode, http.StatusUnauthorized)
	}
	if string(res.Payload) != `{"Message":"bad key"}` {
		t.Fatalf("unexpected payload: got=%s", res.Payload)
	}
	if hits.Load() != 1 {
		t.Fatalf("4xx must not be retried: hits=%d", hits.Load())
	}
}

func TestClientFetch_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[{"TeamID":1}]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, func(cfg *ClientConfig) { cfg.MaxRetries = 2 })
	res := client.Fetch(context.Background(), "scores/json/teams")
	if !res.OK() {
		t.Fatalf("unexpected failure: %+v", res)
	}
	if hits.Load() != 2 {
		t.Fatalf("unexpected attempts: got=%d want=2", hits.Load())
	}
}

func TestClientFetch_MalformedBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	res := newTestClient(srv.URL, nil).Fetch(context.Background(), "scores/json/teams")
	if res.OK() || res.Kind != usecase.UpstreamKindMalformed {
		t.Fatalf("unexpected result: got=%+v want kind=%s", res, usecase.UpstreamKindMalformed)
	}
	if string(res.Payload) != `<html>maintenance</html>` {
		t.Fatalf("unexpected payload: got=%s", res.Payload)
	}
}

func TestClientFetch_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var transitions atomic.Int32
	client := newTestClient(srv.URL, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
		cfg.OnBreakerState = func(name string, from, to resilience.CircuitState) {
			if name == "statsfeed" && to == resilience.CircuitStateOpen {
				transitions.Add(1)
			}
		}
	})

	for i := 0; i < 2; i++ {
		if res := client.Fetch(context.Background(), "scores/json/teams"); res.Kind != usecase.UpstreamKindHTTP {
			t.Fatalf("attempt %d: unexpected kind: got=%s want=%s", i, res.Kind, usecase.UpstreamKindHTTP)
		}
	}
	res := client.Fetch(context.Background(), "scores/json/teams")
	if res.Kind != usecase.UpstreamKindCircuitOpen {
		t.Fatalf("unexpected kind: got=%s want=%s", res.Kind, usecase.UpstreamKindCircuitOpen)
	}
	if hits.Load() != 2 {
		t.Fatalf("open circuit must not reach upstream: hits=%d", hits.Load())
	}
	if transitions.Load() != 1 {
		t.Fatalf("unexpected open transitions: got=%d want=1", transitions.Load())
	}
}

func TestClientFetch_CallerTimeoutDoesNotFailJoinedCallers(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[{"PlayerID":555}]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	shortCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	shortDone := make(chan Result, 1)
	go func() { shortDone <- client.Fetch(shortCtx, "scores/json/Players") }()

	time.Sleep(10 * time.Millisecond)
	joined := client.Fetch(context.Background(), "scores/json/Players")
	short := <-shortDone

	if short.OK() || short.Kind != usecase.UpstreamKindTimeout {
		t.Fatalf("unexpected result for expired caller: got=%+v want kind=%s", short, usecase.UpstreamKindTimeout)
	}
	if !joined.OK() || string(joined.Payload) != `[{"PlayerID":555}]` {
		t.Fatalf("joined caller must get the upstream result: got=%+v", joined)
	}
	if hits.Load() != 1 {
		t.Fatalf("unexpected upstream hits: got=%d want=1", hits.Load())
	}
	if state := client.breaker.State(); state != resilience.CircuitStateClosed {
		t.Fatalf("caller timeout must not count against the breaker: state=%s", state)
	}
}

func TestNewClient_LeavesCallerHTTPClientUntouched(t *testing.T) {
	t.Parallel()

	shared := &http.Client{}
	client := NewClient(ClientConfig{HTTPClient: shared, Logger: logging.NewNop()})

	if shared.Timeout != 0 {
		t.Fatalf("caller client was modified: timeout=%s", shared.Timeout)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Fatalf("unexpected client timeout: got=%s want=%s", client.httpClient.Timeout, defaultTimeout)
	}
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	got := redactURL("https://feed.test/scores/json/teams?api_key=pub&sig=abc")
	if strings.Contains(got, "pub") || strings.Contains(got, "abc") {
		t.Fatalf("credentials not redacted: %s", got)
	}
}
