package client

// Navigator abstracts "where the user currently is" and "send the user
// somewhere else". A browser shell backs it with the window location, a CLI
// with a recorded hint, tests with a recorder. Keeping navigation behind an
// interface keeps the response classification pure and testable.
type Navigator interface {
	// Location returns the current full path+query, or "" when unknown.
	Location() string

	// Navigate sends the user to path.
	Navigate(path string)
}

// NopNavigator is a Navigator that knows no location and ignores
// navigation. It is the default when none is configured.
type NopNavigator struct{}

func (NopNavigator) Location() string { return "" }

func (NopNavigator) Navigate(string) {}
