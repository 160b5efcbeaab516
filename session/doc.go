// Package session owns the client-held authentication state of a gallery
// client: the bearer token, a cached user profile snapshot and the pending
// return URL that the login flow restores after a forced re-authentication.
//
// The package is storage-agnostic: state is persisted through the small
// key-value Store interface, so tests can substitute an in-memory store for
// the durable one. Three backends ship out of the box:
//
//   - MemoryStore – process-local map, the default.
//   - FileStore   – a single JSON document on disk with atomic writes and
//     optional AES-GCM encryption at rest.
//   - RedisStore  – shared state in Redis for multi-process clients.
//
// # Invariants
//
// The cached profile is only meaningful while a token is present. Clear
// removes both in one store operation, so no consumer ever observes a
// cleared token next to a stale profile. TakeReturnURL reads and clears the
// pending return URL as a single step: the stored value is handed out
// exactly once, after which the configured landing path is returned.
//
// Corrupt persisted state (unreadable file, malformed JSON, failed
// decryption) is reset to absent rather than surfaced; the only expiry
// signal for a token is a rejected request, never local inspection.
//
// # Usage
//
//	store, err := session.NewFileStore(filepath.Join(home, ".gallery", "session.json"))
//	if err != nil {
//	    // handle error
//	}
//	sess := session.New(store, session.WithLandingPath("/index.html"))
//
//	sess.SaveToken(ctx, token)
//	if sess.IsAuthenticated(ctx) {
//	    // attach the token to outgoing requests
//	}
package session
