package browser

import "github.com/pkg/errors"

var (
	// ErrUnknownTab is returned when an API call names a tab id that is
	// not in the registry.
	ErrUnknownTab = errors.New("unknown tab")

	// ErrNavigationFailed wraps a resource-loader or stream failure. The
	// tab moves to Failed and keeps its previous document.
	ErrNavigationFailed = errors.New("navigation failed")
)

// errStaleResult marks a parse whose generation was superseded by a newer
// navigation. Stale results are dropped silently, never surfaced.
var errStaleResult = errors.New("stale parse result")
