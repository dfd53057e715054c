package statsfeed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-nft/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL      = "https://api.sportsdata.io/v3/mlb"
	defaultTimeout      = 20 * time.Second
	defaultRetryBackoff = time.Second
	maxResponseBytes    = 16 << 20
)

type Status string

const (
	StatusOK    Status = "OK"
	StatusError Status = "ERROR"
)

var sigParamRegex = regexp.MustCompile(`(api_key|sig)=[^&\s"']+`)
var errStatsFeedTransient = crerr.New("stats feed transient failure")

// Result is the outcome of one feed request. Fetch never returns a Go error;
// failures are reported through Status and Kind.
type Result struct {
	Status     Status
	Kind       string
	Message    string
	StatusCode int
	Payload    []byte
}

func (r Result) OK() bool {
	return r.Status == StatusOK
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	PublicKey      string
	SecretKey      string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	RatePerSecond  float64
	RateBurst      int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	OnBreakerState resilience.StateListener
	Now            func() time.Time
}

type Client struct {
	httpClient   *http.Client
	baseURL      string
	publicKey    string
	secretKey    string
	maxRetries   int
	retryBackoff time.Duration
	limiter      *rate.Limiter
	callBudget   time.Duration
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	flight       resilience.Group[Result]
	now          func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		httpClient = &copied
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	var limiter *rate.Limiter
	if cfg.RatePerSecond > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		publicKey:    strings.TrimSpace(cfg.PublicKey),
		secretKey:    strings.TrimSpace(cfg.SecretKey),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		limiter:      limiter,
		callBudget:   callBudget(httpClient.Timeout, backoff, max(cfg.MaxRetries, 0)),
		logger:       logger,
		breaker:      resilience.NewNamedCircuitBreaker("statsfeed", cfg.CircuitBreaker, cfg.OnBreakerState),
		now:          now,
	}
}

// callBudget bounds one shared request: every attempt plus the backoff
// between attempts.
func callBudget(timeout, backoff time.Duration, retries int) time.Duration {
	attempts := time.Duration(retries + 1)
	return timeout*attempts + backoff*time.Duration(retries*(retries+1)/2)
}

// Sign returns the request signature: hex(sha256(public + secret + unix seconds)).
func Sign(publicKey, secretKey string, ts time.Time) string {
	sum := sha256.Sum256([]byte(publicKey + secretKey + strconv.FormatInt(ts.Unix(), 10)))
	return hex.EncodeToString(sum[:])
}

// Fetch performs a signed GET of {base}/{path}. Identical concurrent paths
// share one upstream request.
func (c *Client) Fetch(ctx context.Context, path string) Result {
	path = strings.TrimLeft(strings.TrimSpace(path), "/")

	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "stats feed circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return Result{
			Status:  StatusError,
			Kind:    usecase.UpstreamKindCircuitOpen,
			Message: "stats feed is temporarily unavailable",
		}
	}

	// The shared request outlives any single caller; each caller waits on its
	// own context.
	ch := c.flight.DoChan(path, func() (Result, error) {
		reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.callBudget)
		defer cancel()

		raw, err := c.executeRequest(reqCtx, path)
		c.breaker.Record(err, isStatsFeedTransient)
		if err != nil {
			return failureResult(err), nil
		}

		if !sonic.Valid(raw) {
			return Result{
				Status:  StatusError,
				Kind:    usecase.UpstreamKindMalformed,
				Message: "provider returned an undecodable body",
				Payload: raw,
			}, nil
		}
		return Result{Status: StatusOK, StatusCode: http.StatusOK, Payload: raw}, nil
	})

	select {
	case <-ctx.Done():
		return Result{Status: StatusError, Kind: classifyTransportError(ctx.Err()), Message: ctx.Err().Error()}
	case res := <-ch:
		if res.Err != nil {
			return failureResult(res.Err)
		}
		return res.Val
	}
}

// requestError carries enough detail to build a failure Result.
type requestError struct {
	kind       string
	statusCode int
	body       []byte
	err        error
}

func (e *requestError) Error() string {
	return e.err.Error()
}

func (e *requestError) Unwrap() error {
	return e.err
}

func failureResult(err error) Result {
	var reqErr *requestError
	if stderrors.As(err, &reqErr) {
		return Result{
			Status:     StatusError,
			Kind:       reqErr.kind,
			Message:    reqErr.Error(),
			StatusCode: reqErr.statusCode,
			Payload:    reqErr.body,
		}
	}
	return Result{Status: StatusError, Kind: classifyTransportError(err), Message: err.Error()}
}

func (c *Client) signedURL(path string) string {
	values := url.Values{}
	values.Set("api_key", c.publicKey)
	values.Set("sig", Sign(c.publicKey, c.secretKey, c.now()))
	return c.baseURL + "/" + path + "?" + values.Encode()
}

func (c *Client) executeRequest(ctx context.Context, path string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, &requestError{kind: classifyTransportError(err), err: fmt.Errorf("rate limiter: %w", err)}
			}
		}

		fullURL := c.signedURL(path)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, &requestError{kind: usecase.UpstreamKindConnection, err: fmt.Errorf("build request: %w", err)}
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Transport failures are surfaced without retrying.
			lastErr = &requestError{
				kind: classifyTransportError(err),
				err:  crerr.Mark(fmt.Errorf("send request: %s", sanitizeSensitiveText(err.Error(), c.secretKey)), errStatsFeedTransient),
			}
			c.logger.WarnContext(ctx, "stats feed request failed", "url", redactURL(fullURL), "error", lastErr)
			return nil, lastErr
		}

		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = &requestError{
				kind: classifyTransportError(readErr),
				err:  crerr.Mark(fmt.Errorf("read response body: %w", readErr), errStatsFeedTransient),
			}
			c.logger.WarnContext(ctx, "stats feed request failed", "url", redactURL(fullURL), "error", lastErr)
			return nil, lastErr
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return raw, nil
		}

		statusErr := fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		if isRetryableStatus(resp.StatusCode) {
			statusErr = crerr.Mark(statusErr, errStatsFeedTransient)
		}
		lastErr = &requestError{kind: usecase.UpstreamKindHTTP, statusCode: resp.StatusCode, body: raw, err: statusErr}
		if !isRetryableStatus(resp.StatusCode) || attempt == c.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &requestError{kind: classifyTransportError(ctx.Err()), err: ctx.Err()}
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "stats feed request failed", "url", redactURL(c.baseURL+"/"+path), "error", lastErr)
	return nil, lastErr
}

func classifyTransportError(err error) string {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return usecase.UpstreamKindTimeout
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return usecase.UpstreamKindTimeout
	}
	return usecase.UpstreamKindConnection
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, secret string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if secret != "" {
		value = strings.ReplaceAll(value, secret, "REDACTED")
	}
	return sigParamRegex.ReplaceAllString(value, "$1=REDACTED")
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	for _, key := range []string{"api_key", "sig"} {
		if query.Has(key) {
			query.Set(key, "REDACTED")
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func isStatsFeedTransient(err error) bool {
	return crerr.Is(err, errStatsFeedTransient)
}
