package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gallerykit/gallerykit/session"
)

// Default view paths of the gallery frontend. They are only compared
// against Navigator locations and can be overridden per deployment.
const (
	DefaultLoginPath    = "/login.html"
	DefaultRegisterPath = "/register.html"
)

const defaultUserAgent = "gallerykit/1.0"

// ErrMalformedResponse indicates a success response whose body could not be
// decoded.
var ErrMalformedResponse = errors.New("malformed response body")

// Client is the session-aware access layer for the gallery service. Every
// network operation goes through it: it attaches the bearer token to
// authenticated calls, funnels all responses through one classifier, and
// runs the authorization-failure recovery protocol on any 401 before the
// error reaches the caller.
//
// Zero value is not usable; use New.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	session      *session.Session
	nav          Navigator
	log          *slog.Logger
	loginPath    string
	registerPath string
	userAgent    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, e.g. for custom
// transports or proxies.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithSession attaches the session the client persists tokens into. Without
// it the client runs on a throwaway in-memory session.
func WithSession(sess *session.Session) Option {
	return func(c *Client) {
		if sess != nil {
			c.session = sess
		}
	}
}

// WithNavigator attaches the navigation sink used by the recovery protocol.
func WithNavigator(nav Navigator) Option {
	return func(c *Client) {
		if nav != nil {
			c.nav = nav
		}
	}
}

// WithLogger attaches a logger for non-fatal events (swallowed profile
// fetch failures, session write failures during recovery).
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithLoginPath overrides the login view path used by the recovery protocol.
func WithLoginPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.loginPath = path
		}
	}
}

// WithRegisterPath overrides the registration view path.
func WithRegisterPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.registerPath = path
		}
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a gallery client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		nav:          NopNavigator{},
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		loginPath:    DefaultLoginPath,
		registerPath: DefaultRegisterPath,
		userAgent:    defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == nil {
		c.session = session.New(session.NewMemoryStore())
	}
	return c
}

// Session exposes the attached session so consumers can read authentication
// state (e.g. to decide which controls to render). Consumers never touch
// the session's storage keys or request headers directly.
func (c *Client) Session() *session.Session {
	return c.session
}

// newRequest builds a request with the client-wide headers attached.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// send dispatches a request and decodes the success body into out (skipped
// when out is nil). For authenticated calls the bearer token is attached
// when present; an absent token still sends the request unauthenticated,
// the server stays authoritative on whether the route needs auth. A 401 on
// an authenticated call runs the recovery protocol before the error is
// returned, so callers that check session state right after a failed call
// already see it cleared.
func (c *Client) send(req *http.Request, out any, authenticated bool) error {
	ctx := req.Context()

	if authenticated {
		if token, ok := c.session.Token(ctx); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Any("error", err))
		return &NetworkError{err: err}
	}
	defer resp.Body.Close()

	result := classify(resp)
	switch result.outcome {
	case outcomeUnauthorized:
		if authenticated {
			c.recoverAuth(ctx)
		}
		return result.err
	case outcomeServerError:
		return result.err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrMalformedResponse, err)
	}
	return nil
}

// recoverAuth runs the authorization-failure recovery protocol: clear the
// session, remember where the user was, send them to the login view. When
// the user is already on the login or registration view neither a return
// URL is stored nor a navigation triggered. The protocol completes before
// the rejected result is delivered; the caller still receives the error and
// must tolerate the navigation happening alongside its own error handling.
func (c *Client) recoverAuth(ctx context.Context) {
	if err := c.session.Clear(ctx); err != nil {
		c.log.ErrorContext(ctx, "failed to clear session", slog.Any("error", err))
	}

	location := c.nav.Location()
	if c.isAuthScreen(location) {
		return
	}

	if location != "" {
		if err := c.session.SetReturnURL(ctx, location); err != nil {
			c.log.ErrorContext(ctx, "failed to store return url", slog.Any("error", err))
		}
	}
	c.nav.Navigate(c.loginPath)
}

// isAuthScreen reports whether location (path+query) points at the login or
// registration view.
func (c *Client) isAuthScreen(location string) bool {
	path := location
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path == c.loginPath || path == c.registerPath
}
