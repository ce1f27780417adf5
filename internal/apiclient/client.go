package apiclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/metrics"
)

// TokenSource yields the bearer token for the request being made. An empty
// string means the request goes out anonymously.
type TokenSource interface {
	Token(ctx context.Context) string
}

type TokenFunc func(ctx context.Context) string

func (f TokenFunc) Token(ctx context.Context) string { return f(ctx) }

type Config struct {
	BaseURL string // e.g. http://127.0.0.1:8000/api
	Timeout time.Duration
	Tokens  TokenSource
	// OnUnauthorized runs for every 401 before the error is returned; it is
	// where the caller drops its persisted token and user.
	OnUnauthorized func(ctx context.Context)
	Log            zerolog.Logger
	Transport      http.RoundTripper
}

// Client is the single HTTP client every page and command shares.
type Client struct {
	http           *resty.Client
	tokens         TokenSource
	onUnauthorized func(ctx context.Context)
	log            zerolog.Logger
}

func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if cfg.Transport != nil {
		rc.SetTransport(cfg.Transport)
	}

	c := &Client{
		http:           rc,
		tokens:         cfg.Tokens,
		onUnauthorized: cfg.OnUnauthorized,
		log:            cfg.Log,
	}
	rc.OnBeforeRequest(c.attachToken)
	rc.OnAfterResponse(c.checkResponse)
	rc.OnError(func(req *resty.Request, err error) {
		// Answered requests were already counted in checkResponse.
		var respErr *resty.ResponseError
		if errors.As(err, &respErr) {
			return
		}
		metrics.ObserveUpstream(req.Method, 0, time.Since(req.Time))
	})
	return c
}

func (c *Client) attachToken(_ *resty.Client, req *resty.Request) error {
	if c.tokens == nil {
		return nil
	}
	if tok := c.tokens.Token(req.Context()); tok != "" {
		req.SetAuthToken(tok)
	}
	return nil
}

func (c *Client) checkResponse(_ *resty.Client, resp *resty.Response) error {
	metrics.ObserveUpstream(resp.Request.Method, resp.StatusCode(), resp.Time())
	if resp.IsSuccess() {
		return nil
	}

	apiErr := newAPIError(resp.StatusCode(), resp.Body())
	// A 401 without a bearer is a rejected login, not a lost session.
	if resp.StatusCode() == http.StatusUnauthorized && resp.Request.Token != "" {
		c.log.Info().Str("path", resp.Request.URL).Msg("api answered 401; clearing credentials")
		metrics.ForcedLogout()
		if c.onUnauthorized != nil {
			c.onUnauthorized(resp.Request.Context())
		}
		return apiErr
	}
	c.log.Debug().Int("status", resp.StatusCode()).Str("method", resp.Request.Method).
		Str("path", resp.Request.URL).Str("message", apiErr.Message).Msg("api error")
	return apiErr
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	req := c.request(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	if out != nil {
		req.SetResult(out)
	}
	_, err := req.Get(path)
	return err
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	req := c.request(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	_, err := req.Execute(method, path)
	return err
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.send(ctx, http.MethodDelete, path, nil, nil)
}
