package session

import "context"

// Store defines the key-value backend a Session persists its state in.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key. The second return value
	// reports whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, overwriting any existing value.
	Set(ctx context.Context, key, value string) error

	// Delete removes all given keys in a single operation. Deleting a
	// missing key is not an error.
	Delete(ctx context.Context, keys ...string) error
}
