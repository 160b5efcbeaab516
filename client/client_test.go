package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gallerykit/gallerykit/client"
	"github.com/gallerykit/gallerykit/session"
)

// recordingNavigator captures the recovery protocol's observable effects.
type recordingNavigator struct {
	location    string
	navigations []string
}

func (n *recordingNavigator) Location() string { return n.location }

func (n *recordingNavigator) Navigate(path string) {
	n.navigations = append(n.navigations, path)
}

type fixture struct {
	api  *client.Client
	sess *session.Session
	nav  *recordingNavigator
}

// newFixture wires a client against a stub backend and returns the pieces a
// test needs to observe session state and navigation.
func newFixture(t *testing.T, handler http.Handler, opts ...client.Option) *fixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess := session.New(session.NewMemoryStore())
	nav := &recordingNavigator{}

	opts = append([]client.Option{
		client.WithSession(sess),
		client.WithNavigator(nav),
	}, opts...)

	return &fixture{
		api:  client.New(server.URL, opts...),
		sess: sess,
		nav:  nav,
	}
}

// galleryStub builds a chi router mimicking the gallery backend. Routes not
// registered return 404 with a JSON detail, like the real service.
func galleryStub(register func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
	})
	register(r)
	return r
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func saveToken(t *testing.T, sess *session.Session, token string) {
	t.Helper()
	if err := sess.SaveToken(context.Background(), token); err != nil {
		t.Fatalf("save token: %v", err)
	}
}
