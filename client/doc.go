// Package client is the session-aware access layer for the gallery
// service: every network operation the UI performs goes through it. It
// attaches the bearer token to authenticated calls, funnels every response
// through a single classifier, and enforces the cross-cutting invariant the
// rest of the UI relies on: after any 401 the session is cleared, the
// user's location is remembered, and the user is sent to the login view —
// all before the failed call returns.
//
// # Architecture
//
// Response interpretation is split in two, so the interesting part stays
// pure and testable:
//
//   - classify(resp) turns an HTTP response into a tagged result
//     (ok / unauthorized / serverError) with no side effects;
//   - the dispatch layer runs the authorization-failure recovery protocol
//     when the tag is unauthorized, via the injected Navigator and the
//     attached session.Session.
//
// Presentation consumers depend on this package only; they never touch
// storage keys or request headers directly.
//
// # Operations
//
// Unauthenticated: Register (JSON), Login (form-urlencoded, password-grant
// style). Authenticated: CurrentUser, ListItems, GetItem, UploadItem,
// UpdateItem, DeleteItem. Login persists the token first and then caches
// the profile best-effort; a profile-fetch failure never fails the login.
//
// # Errors
//
//   - *NetworkError    – the request never completed; generic message.
//   - *APIError        – non-2xx response with the server's detail text.
//   - *ValidationError – local precondition failed, no network call made.
//   - ErrUnauthenticated – operation needs a token and none is present.
//
// No operation is retried automatically.
//
// # Usage
//
//	sess := session.New(store)
//	api := client.New("https://gallery.example.com",
//	    client.WithSession(sess),
//	    client.WithNavigator(nav),
//	)
//
//	items, err := api.ListItems(ctx)
//	if err != nil {
//	    // render inline; on a 401 the navigation has already been triggered
//	}
package client
