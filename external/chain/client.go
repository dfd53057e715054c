package chain

import (
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-nft/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-nft/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout   = 10 * time.Second
	contractsPath    = "/terra/wasm/v1beta1/contracts/"
	queryFailedMsg   = "Contract query failed"
	maxResponseBytes = 8 << 20
)

var errChainTransient = crerr.New("chain lcd transient failure")

// Doer is the subset of *fasthttp.Client used by the LCD client.
type Doer interface {
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
}

type ClientConfig struct {
	HTTPClient     Doer
	LCDURL         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	OnBreakerState resilience.StateListener
}

// Client runs smart contract store queries against a Terra LCD endpoint.
type Client struct {
	httpClient Doer
	lcdURL     string
	timeout    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

var _ usecase.ChainQuerier = (*Client)(nil)

func NewClient(cfg ClientConfig) (*Client, error) {
	lcdURL := strings.TrimRight(strings.TrimSpace(cfg.LCDURL), "/")
	parsed, err := url.Parse(lcdURL)
	if err != nil {
		return nil, crerr.Wrapf(err, "parse lcd url %q", lcdURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, crerr.Newf("lcd url %q uses unsupported scheme=%q", lcdURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, crerr.Newf("lcd url %q has empty host", lcdURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "fantasy-nft",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	return &Client{
		httpClient: httpClient,
		lcdURL:     lcdURL,
		timeout:    timeout,
		logger:     logger,
		breaker:    resilience.NewNamedCircuitBreaker("chain", cfg.CircuitBreaker, cfg.OnBreakerState),
	}, nil
}

type storeResponse struct {
	QueryResult json.RawMessage `json:"query_result"`
	Result      json.RawMessage `json:"result"`
}

// QueryContract encodes msg as JSON and returns the contract's query_result.
// Failures are *usecase.UpstreamError.
func (c *Client) QueryContract(ctx context.Context, contractAddr string, msg any) ([]byte, error) {
	contractAddr = strings.TrimSpace(contractAddr)
	if contractAddr == "" {
		return nil, fmt.Errorf("%w: contract address is required", usecase.ErrInvalidInput)
	}
	encoded, err := sonic.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: encode query message: %v", usecase.ErrInvalidInput, err)
	}

	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "chain circuit breaker rejected request", "contract", contractAddr, "state", c.breaker.State())
		return nil, usecase.NewUpstreamError(usecase.UpstreamKindCircuitOpen, queryFailedMsg, "lcd endpoint is temporarily unavailable")
	}

	raw, err := c.get(ctx, buildStoreURL(c.lcdURL, contractAddr, encoded))
	c.breaker.Record(err, isChainTransient)
	if err != nil {
		c.logger.WarnContext(ctx, "chain query failed", "contract", contractAddr, "error", err)
		return nil, err
	}

	var decoded storeResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return nil, usecase.NewUpstreamError(usecase.UpstreamKindMalformed, queryFailedMsg, abbreviateBody(raw))
	}
	result := decoded.QueryResult
	if len(result) == 0 {
		result = decoded.Result
	}
	if len(result) == 0 || string(result) == "null" {
		return nil, usecase.NewUpstreamError(usecase.UpstreamKindMalformed, queryFailedMsg, abbreviateBody(raw))
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, upstreamErr(classifyTransportError(err), err.Error(), err)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, upstreamErr(classifyTransportError(err), err.Error(), fmt.Errorf("%w: %v", errChainTransient, err))
	}

	body := append([]byte(nil), resp.Body()...)
	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		cause := fmt.Errorf("lcd status=%d body=%s", status, abbreviateBody(body))
		if status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError {
			cause = fmt.Errorf("%w: %v", errChainTransient, cause)
		}
		return nil, upstreamErr(usecase.UpstreamKindHTTP, abbreviateBody(body), cause)
	}
	return body, nil
}

func upstreamErr(kind string, response any, cause error) *usecase.UpstreamError {
	err := usecase.NewUpstreamError(kind, queryFailedMsg, response)
	err.Err = fmt.Errorf("%w: %w", err.Err, cause)
	return err
}

// buildStoreURL renders {lcd}/terra/wasm/v1beta1/contracts/{contract}/store?query_msg=<base64 json>.
func buildStoreURL(lcdURL, contractAddr string, msg []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(lcdURL)
	_, _ = buf.WriteString(contractsPath)
	_, _ = buf.WriteString(url.PathEscape(contractAddr))
	_, _ = buf.WriteString("/store?query_msg=")
	_, _ = buf.WriteString(url.QueryEscape(base64.StdEncoding.EncodeToString(msg)))
	return buf.String()
}

func classifyTransportError(err error) string {
	if stderrors.Is(err, context.DeadlineExceeded) ||
		stderrors.Is(err, fasthttp.ErrTimeout) ||
		stderrors.Is(err, fasthttp.ErrDialTimeout) {
		return usecase.UpstreamKindTimeout
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return usecase.UpstreamKindTimeout
	}
	return usecase.UpstreamKindConnection
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func isChainTransient(err error) bool {
	return stderrors.Is(err, errChainTransient)
}
