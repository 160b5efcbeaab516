package session

import (
	"context"
	"encoding/json"
	"sync"
)

// Storage keys. Fixed names keep the session state distinct from any other
// application data sharing the same store.
const (
	tokenKey     = "gallery_auth_token"
	userKey      = "gallery_user_data"
	returnURLKey = "gallery_return_url"
)

// DefaultLandingPath is returned by TakeReturnURL when no return URL is pending.
const DefaultLandingPath = "/"

// Session holds the client-side authentication state: the bearer token, a
// cached user profile snapshot and an optional pending return URL. All state
// lives in the backing Store; Session itself only serializes access so that
// multi-key operations (Clear, TakeReturnURL) are observed as a single step.
type Session struct {
	mu          sync.Mutex
	store       Store
	landingPath string
}

// Option configures a Session.
type Option func(*Session)

// WithLandingPath overrides the default landing path returned by
// TakeReturnURL when no return URL is pending.
func WithLandingPath(path string) Option {
	return func(s *Session) {
		if path != "" {
			s.landingPath = path
		}
	}
}

// New creates a Session backed by the given store.
func New(store Store, opts ...Option) *Session {
	s := &Session{
		store:       store,
		landingPath: DefaultLandingPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveToken persists the bearer token, overwriting any existing value. The
// token is treated as opaque; no format validation is performed.
func (s *Session) SaveToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Set(ctx, tokenKey, token)
}

// Token returns the current bearer token. The second return value is false
// if no token was ever saved, the token was cleared, or the store could not
// be read (storage corruption reads as absent, it is never surfaced).
func (s *Session) Token(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok, err := s.store.Get(ctx, tokenKey)
	if err != nil || !ok {
		return "", false
	}
	return token, true
}

// IsAuthenticated reports whether a non-empty token is present.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	token, ok := s.Token(ctx)
	return ok && token != ""
}

// Clear removes the token and the cached user profile in one operation.
// A consumer can never observe a cleared token alongside a stale profile.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Delete(ctx, tokenKey, userKey)
}

// SaveUser caches a profile snapshot as JSON. The profile is a display
// cache only; it is meaningful only while a token is present.
func (s *Session) SaveUser(ctx context.Context, user any) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Set(ctx, userKey, string(data))
}

// User decodes the cached profile snapshot into dst and reports whether a
// snapshot was present. Malformed stored data reads as absent.
func (s *Session) User(ctx context.Context, dst any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.store.Get(ctx, userKey)
	if err != nil || !ok {
		return false
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return false
	}
	return true
}

// SetReturnURL remembers the path the user was on when forced to
// authenticate. At most one return URL is pending at a time.
func (s *Session) SetReturnURL(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Set(ctx, returnURLKey, path)
}

// TakeReturnURL reads and clears the pending return URL in one operation.
// When none is pending it returns the configured landing path, so two
// consecutive calls yield the stored value once and then the default.
func (s *Session) TakeReturnURL(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok, err := s.store.Get(ctx, returnURLKey)
	if err != nil || !ok || path == "" {
		return s.landingPath
	}
	if err := s.store.Delete(ctx, returnURLKey); err != nil {
		return s.landingPath
	}
	return path
}
