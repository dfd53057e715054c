package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != apiVersion {
		t.Fatalf("unexpected apiVersion: %v", body["apiVersion"])
	}
	return body
}

func TestWriteSuccess_OmitsError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusCreated, map[string]int64{"id": 7})

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusCreated)
	}
	body := decodeEnvelope(t, rec)
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
	data, _ := body["data"].(map[string]any)
	if data["id"] != float64(7) {
		t.Fatalf("unexpected data: %v", body["data"])
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantCode   int
		wantStatus string
		wantReason string
	}{
		{fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), http.StatusBadRequest, "INVALID_ARGUMENT", "invalidInput"},
		{fmt.Errorf("game 9: %w", usecase.ErrNotFound), http.StatusNotFound, "NOT_FOUND", "notFound"},
		{usecase.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized"},
		{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE", "dependencyUnavailable"},
		{usecase.NewUpstreamError(usecase.UpstreamKindMalformed, "bad json", nil), http.StatusBadGateway, "UNAVAILABLE", "upstreamMalformed"},
		{usecase.NewUpstreamError(usecase.UpstreamKindHTTP, "401", nil), http.StatusBadGateway, "UNAVAILABLE", "upstreamHTTPError"},
		{errors.New("pq: deadlock detected"), http.StatusInternalServerError, "INTERNAL", "internalError"},
	}

	for _, tt := range tests {
		t.Run(tt.wantReason, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tt.err)

			if rec.Code != tt.wantCode {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tt.wantCode)
			}
			errObj, _ := decodeEnvelope(t, rec)["error"].(map[string]any)
			if got, _ := errObj["status"].(string); got != tt.wantStatus {
				t.Fatalf("unexpected status text: got=%v want=%s", errObj["status"], tt.wantStatus)
			}
			items, _ := errObj["errors"].([]any)
			first, _ := items[0].(map[string]any)
			if got, _ := first["reason"].(string); got != tt.wantReason {
				t.Fatalf("unexpected reason: got=%v want=%s", first["reason"], tt.wantReason)
			}
		})
	}
}

func TestWriteError_InternalHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("pq: password authentication failed"))

	errObj, _ := decodeEnvelope(t, rec)["error"].(map[string]any)
	if got, _ := errObj["message"].(string); got != internalErrorMessage {
		t.Fatalf("unexpected message: %v", errObj["message"])
	}
	items, _ := errObj["errors"].([]any)
	first, _ := items[0].(map[string]any)
	if got, _ := first["message"].(string); got != internalErrorMessage {
		t.Fatalf("internal detail leaked: %v", first["message"])
	}
}

func TestWriteError_UpstreamSurfacesResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	err := usecase.NewUpstreamError(usecase.UpstreamKindTimeout, "Contract query failed", "lcd timeout")
	writeError(context.Background(), rec, fmt.Errorf("resolve tokens: %w", err))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadGateway)
	}
	errObj, _ := decodeEnvelope(t, rec)["error"].(map[string]any)
	if got, _ := errObj["message"].(string); got != "Contract query failed" {
		t.Fatalf("unexpected message: %v", errObj["message"])
	}
	if got, _ := errObj["response"].(string); got != "lcd timeout" {
		t.Fatalf("unexpected response: %v", errObj["response"])
	}
	if rec.Header().Get("Retry-After") != "" {
		t.Fatalf("timeout should not set Retry-After")
	}
}

func TestWriteError_CircuitOpenSetsRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, usecase.NewUpstreamError(usecase.UpstreamKindCircuitOpen, "stats feed circuit open", nil))

	if got := rec.Header().Get("Retry-After"); got != "15" {
		t.Fatalf("unexpected Retry-After: %q", got)
	}
}
