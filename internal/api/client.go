package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-sync/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-sync/pkg/errors"
	"github.com/angelmondragon/storefront-sync/pkg/logger"
	"github.com/angelmondragon/storefront-sync/pkg/metrics"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

// The collaborator authenticates with a bare token header rather than a
// bearer scheme.
const tokenHeader = "token"

// TokenSource yields the current auth token at call time. Implementations
// must return the empty string when no session is active.
type TokenSource interface {
	Token() string
}

// AuthFailureHandler is notified when the collaborator rejects the session
// token on any authenticated call.
type AuthFailureHandler interface {
	HandleAuthFailure(ctx context.Context)
}

// Client is a typed HTTP client for the remote e-commerce collaborator. All
// state it touches lives server-side; the stores layered on top own the
// local snapshots.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	onAuthFailure AuthFailureHandler
	log           *logger.Logger
	metrics       *metrics.ClientMetrics
	retryAttempts uint64
	retryBase     time.Duration
}

// Options configures a Client. Tokens and OnAuthFailure may be nil for
// catalog-only use.
type Options struct {
	Config        config.APIConfig
	Tokens        TokenSource
	OnAuthFailure AuthFailureHandler
	Logger        *logger.Logger
	Metrics       *metrics.ClientMetrics
	HTTPClient    *http.Client
}

// NewClient builds a collaborator client from the provided options.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.Config.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Config.RequestTimeout}
	}
	attempts := uint64(1)
	if opts.Config.RetryAttempts > 1 {
		attempts = uint64(opts.Config.RetryAttempts)
	}
	retryBase := opts.Config.RetryBaseDelay
	if retryBase <= 0 {
		retryBase = 250 * time.Millisecond
	}
	return &Client{
		baseURL:       baseURL,
		httpClient:    httpClient,
		tokens:        opts.Tokens,
		onAuthFailure: opts.OnAuthFailure,
		log:           opts.Logger,
		metrics:       opts.Metrics,
		retryAttempts: attempts,
		retryBase:     retryBase,
	}, nil
}

type call struct {
	operation string
	method    string
	path      string
	query     url.Values
	body      any
	authed    bool
}

// errorBody is the collaborator's error envelope.
type errorBody struct {
	Message   string `json:"message"`
	StatusMsg string `json:"statusMsg"`
}

func (c *Client) do(ctx context.Context, req call, out any) error {
	start := time.Now()
	err := c.doWithRetry(ctx, req, out)
	c.metrics.ObserveDuration(req.operation, time.Since(start))
	if err != nil {
		code := "transport"
		if typed := pkgerrors.As(err); typed != nil {
			code = string(typed.Code())
		}
		c.metrics.IncFailure(req.operation, code)
		return err
	}
	c.metrics.IncSuccess(req.operation)
	return nil
}

// doWithRetry retries idempotent reads on retryable failures. Mutations are
// issued exactly once; the stores re-sync from the server instead.
func (c *Client) doWithRetry(ctx context.Context, req call, out any) error {
	if req.method != http.MethodGet || c.retryAttempts <= 1 {
		return c.doOnce(ctx, req, out)
	}
	backoff := retry.WithMaxRetries(c.retryAttempts-1, retry.NewFibonacci(c.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.doOnce(ctx, req, out)
		if err != nil && pkgerrors.IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) doOnce(ctx context.Context, req call, out any) error {
	requestID := uuid.NewString()
	ctx = c.log.WithRequestID(ctx, requestID)

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		body = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.authed && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set(tokenHeader, token)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Cancellation is the caller's signal, not a collaborator failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Warn(ctx, "collaborator request failed: "+req.operation)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, req.operation+" request failed")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapFailure(ctx, req, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding "+req.operation+" response")
	}
	return nil
}

func (c *Client) mapFailure(ctx context.Context, req call, resp *http.Response) error {
	var parsed errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &parsed)
	message := parsed.Message
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	code := pkgerrors.CodeForStatus(resp.StatusCode)
	if code == pkgerrors.CodeUnauthorized && req.authed && c.onAuthFailure != nil {
		c.onAuthFailure.HandleAuthFailure(ctx)
	}
	c.log.Warn(ctx, fmt.Sprintf("collaborator rejected %s: %d %s", req.operation, resp.StatusCode, message))
	return pkgerrors.New(code, message).WithDetails(map[string]any{
		"operation": req.operation,
		"status":    resp.StatusCode,
	})
}
