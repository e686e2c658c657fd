package gateway

import "errors"

// Provider failures collapse into a small taxonomy so the orchestrator can
// branch on error kind alone.
var (
	// ErrProviderUnavailable covers network, HTTP and timeout failures
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrInvalidResponse covers payloads missing expected fields
	ErrInvalidResponse = errors.New("invalid provider response")

	// ErrNoResults is raised by the gateway itself when a search returns an
	// empty result set, so callers never have to inspect result lengths
	ErrNoResults = errors.New("no results found")
)
