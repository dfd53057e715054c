package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "fantasy-nft"

	internalErrorMessage = "internal server error"

	// circuitRetryAfter matches the default breaker open timeout.
	circuitRetryAfter = 15
)

// envelope is the Google JSON style body every route returns.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code     int         `json:"code"`
	Message  string      `json:"message"`
	Status   string      `json:"status"`
	Errors   []errorItem `json:"errors,omitempty"`
	Response any         `json:"response,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorRule struct {
	target     error
	httpStatus int
	reason     string
	status     string
}

// errorRules is matched in order; the first errors.Is hit wins.
var errorRules = []errorRule{
	{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
	{usecase.ErrNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
	{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
	{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
	{usecase.ErrUpstreamMalformed, http.StatusBadGateway, "upstreamMalformed", "UNAVAILABLE"},
	{usecase.ErrUpstreamUnavailable, http.StatusBadGateway, "upstreamUnavailable", "UNAVAILABLE"},
}

var internalRule = errorRule{httpStatus: http.StatusInternalServerError, reason: "internalError", status: "INTERNAL"}

var upstreamReasons = map[string]string{
	usecase.UpstreamKindTimeout:     "upstreamTimeout",
	usecase.UpstreamKindConnection:  "upstreamConnection",
	usecase.UpstreamKindHTTP:        "upstreamHTTPError",
	usecase.UpstreamKindCircuitOpen: "upstreamCircuitOpen",
}

func matchError(err error) errorRule {
	for _, rule := range errorRules {
		if errors.Is(err, rule.target) {
			return rule
		}
	}
	return internalRule
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError renders err in the envelope. Upstream failures surface the
// upstream message and raw response instead of the wrapped error text.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	_, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	rule := matchError(err)
	body := &errorBody{
		Code:    rule.httpStatus,
		Message: err.Error(),
		Status:  rule.status,
	}
	reason := rule.reason

	var upstream *usecase.UpstreamError
	if errors.As(err, &upstream) {
		body.Message = upstream.Message
		body.Response = upstream.Response
		if r, ok := upstreamReasons[upstream.Kind]; ok {
			reason = r
		}
		if upstream.Kind == usecase.UpstreamKindCircuitOpen {
			w.Header().Set("Retry-After", strconv.Itoa(circuitRetryAfter))
		}
	}
	detail := err.Error()
	if rule.httpStatus == http.StatusInternalServerError {
		body.Message = internalErrorMessage
		detail = internalErrorMessage
	}
	body.Errors = []errorItem{{Domain: errorDomain, Reason: reason, Message: detail}}

	writeJSON(w, rule.httpStatus, envelope{APIVersion: apiVersion, Error: body})
}

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    http.StatusInternalServerError,
			Message: internalErrorMessage,
			Status:  internalRule.status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: internalRule.reason, Message: internalErrorMessage}},
		},
	})
}
