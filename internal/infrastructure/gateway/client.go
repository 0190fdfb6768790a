// Package gateway is the single HTTP entry point for the blog API. It owns
// the request hook that attaches the bearer token and the response hook
// that classifies every failure, emits exactly one notification for it,
// and hands the error back to the caller. It performs no retries; each
// request is attempted exactly once.
package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/2azusa/Go-Blog/internal/infrastructure/session"
)

const (
	msgConnectivity = "network error, please check your connection"
	msgLoginExpired = "login session expired, please log in again"
	msgNoPermission = "you do not have permission for this operation"
	msgNotFound     = "requested resource not found"
	msgServerError  = "server error, please try again later"
)

// Envelope is the uniform response wrapper every endpoint returns. The
// body-level Status is the success discriminator regardless of the HTTP
// transport status.
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Total   *int64          `json:"total,omitempty"`
	Token   string          `json:"token,omitempty"`
}

// Config captures the construction parameters of the gateway client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RedirectDelay is how long to wait after an auth-expiry notification
	// before invoking the navigator, so the message stays visible. Zero
	// navigates synchronously.
	RedirectDelay time.Duration
}

// Client wraps a resty client configured with base URL, timeout, and the
// auth/notification hooks.
type Client struct {
	http          *resty.Client
	session       session.Store
	notifier      Notifier
	navigator     Navigator
	redirectDelay time.Duration
	log           zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithNotifier replaces the default log-backed notifier.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithNavigator replaces the default log-backed login navigator.
func WithNavigator(n Navigator) Option {
	return func(c *Client) { c.navigator = n }
}

// WithLogger sets the logger used by the client and its defaults.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New wires a gateway client. Construction is pure configuration and has
// no failure mode.
func New(cfg Config, store session.Store, opts ...Option) *Client {
	c := &Client{
		session:       store,
		redirectDelay: cfg.RedirectDelay,
		log:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = LogNotifier{Log: c.log}
	}
	if c.navigator == nil {
		c.navigator = LogNavigator{Log: c.log}
	}

	c.http = resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", "blogctl/1.0")

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token, ok := c.session.Token(); ok {
			req.SetAuthToken(token)
		}
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	return c
}

// Get issues a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, func(req *resty.Request) {
		if query != nil {
			req.SetQueryParamsFromValues(query)
		}
	})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, func(req *resty.Request) {
		if body != nil {
			req.SetBody(body)
		}
	})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, path, func(req *resty.Request) {
		if body != nil {
			req.SetBody(body)
		}
	})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// Upload posts a multipart file under the "file" form field.
func (c *Client) Upload(ctx context.Context, path, filename string, content io.Reader) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, func(req *resty.Request) {
		req.SetFileReader("file", filename, content)
	})
}

func (c *Client) do(ctx context.Context, method, path string, build func(*resty.Request)) (*Envelope, error) {
	req := c.http.R().SetContext(ctx)
	if build != nil {
		build(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		// No response reached the client: connectivity, timeout, DNS.
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed without response")
		c.notifier.Error(msgConnectivity)
		return nil, &APIError{Kind: KindTransport, Message: msgConnectivity, cause: err}
	}

	env := &Envelope{}
	if body := resp.Body(); len(body) > 0 {
		if jerr := json.Unmarshal(body, env); jerr != nil {
			// Non-envelope body from a proxy or crashed handler; fall back
			// to transport-status classification below.
			c.log.Debug().Err(jerr).Int("http_status", resp.StatusCode()).Msg("response body is not an api envelope")
			env = &Envelope{}
		}
	}

	if resp.IsError() || env.Status != StatusOK {
		return nil, c.fail(method, path, resp.StatusCode(), env)
	}
	return env, nil
}

// fail classifies a failed exchange, emits the one central notification
// for it, applies the session side effects, and builds the error that is
// re-raised to the caller.
func (c *Client) fail(method, path string, httpStatus int, env *Envelope) *APIError {
	msg := env.Message

	switch {
	case isAuthInvalid(env.Status):
		if msg == "" {
			msg = msgLoginExpired
		}
		c.notifier.Error(msg)
		if err := c.session.Clear(); err != nil {
			c.log.Warn().Err(err).Msg("failed to clear session token")
		}
		c.gotoLogin()
		return c.apiError(KindAuthExpired, env.Status, httpStatus, msg, method, path)

	case env.Status == StatusNoPermission:
		if msg == "" {
			msg = msgNoPermission
		}
		c.notifier.Error(msg)
		return c.apiError(KindForbidden, env.Status, httpStatus, msg, method, path)

	default:
		kind := KindDomain
		switch {
		case httpStatus == http.StatusNotFound:
			kind = KindNotFound
			if msg == "" {
				msg = msgNotFound
			}
		case httpStatus >= http.StatusInternalServerError:
			kind = KindServer
			if msg == "" {
				msg = msgServerError
			}
		default:
			if msg == "" {
				msg = msgFromHTTPStatus(httpStatus)
			}
		}
		c.notifier.Error(msg)
		return c.apiError(kind, env.Status, httpStatus, msg, method, path)
	}
}

func (c *Client) apiError(kind Kind, status, httpStatus int, msg, method, path string) *APIError {
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("kind", kind.String()).
		Int("status", status).
		Int("http_status", httpStatus).
		Msg(msg)
	return &APIError{Kind: kind, Status: status, HTTPStatus: httpStatus, Message: msg}
}

func (c *Client) gotoLogin() {
	if c.redirectDelay <= 0 {
		c.navigator.GotoLogin()
		return
	}
	time.AfterFunc(c.redirectDelay, c.navigator.GotoLogin)
}

func msgFromHTTPStatus(status int) string {
	if text := http.StatusText(status); text != "" {
		return "request failed: " + text
	}
	return "request failed"
}
