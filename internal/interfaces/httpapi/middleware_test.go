package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCORS(t *testing.T) {
	const site = "https://fantasy-nft.example.com"
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
		wantVary   bool
	}{
		{name: "listed origin echoed", allowed: []string{site}, method: http.MethodGet, origin: site, wantStatus: http.StatusOK, wantAllow: site, wantVary: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: site, wantStatus: http.StatusNoContent, wantAllow: "*"},
		{name: "unlisted origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodGet, origin: site, wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "blank entries ignored", allowed: []string{" ", ""}, method: http.MethodGet, origin: site, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/fantasy/game/1", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, ok).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Fatalf("unexpected allow origin: got=%q want=%q", got, tt.wantAllow)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Fatalf("unexpected Vary header: %q", rec.Header().Get("Vary"))
			}
			if tt.wantAllow != "" && !strings.Contains(rec.Header().Get("Access-Control-Allow-Headers"), internalJobTokenHeader) {
				t.Fatalf("job token header missing from allowed headers")
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", "/metrics", " /HEALTHZ "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for %q", path)
		}
	}
	for _, path := range []string{"/fantasy/game/1", "/athlete_tokens/terra1/collection/terra2", "/"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for %q", path)
		}
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })

	tests := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{name: "match", configured: "job-secret", provided: " job-secret ", want: http.StatusAccepted},
		{name: "mismatch", configured: "job-secret", provided: "job-secreT", want: http.StatusUnauthorized},
		{name: "missing header", configured: "job-secret", want: http.StatusUnauthorized},
		{name: "unconfigured", configured: "", provided: "anything", want: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/internal/jobs/update-team-scores", nil)
			if tt.provided != "" {
				req.Header.Set(internalJobTokenHeader, tt.provided)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tt.configured, ok).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequestLogging_LevelFollowsStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.FromZap(zap.New(core))

	for status, want := range map[int]zapcore.Level{
		http.StatusOK:         zapcore.InfoLevel,
		http.StatusNotFound:   zapcore.WarnLevel,
		http.StatusBadGateway: zapcore.ErrorLevel,
	} {
		status := status
		h := RequestLogging(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("{}"))
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fantasy/game/1", nil))

		entries := logs.TakeAll()
		if len(entries) != 1 || entries[0].Level != want {
			t.Fatalf("status %d: unexpected entries %+v", status, entries)
		}
		if got := entries[0].ContextMap()["bytes"]; got != int64(2) {
			t.Fatalf("status %d: unexpected bytes field %v", status, got)
		}
	}
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := recoverPanic(logging.FromZap(zap.New(core)), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("leaderboard exploded")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fantasy/game/1/leaderboard", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "leaderboard exploded") {
		t.Fatalf("panic value leaked into response: %s", rec.Body.String())
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one error log, got %d", logs.Len())
	}
}

func TestRecoverPanic_RepanicsAbortHandler(t *testing.T) {
	h := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
