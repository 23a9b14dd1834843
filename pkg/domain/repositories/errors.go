package repositories

import "errors"

// ErrNotFound indicates a catalog lookup for a key that was never registered.
// Implementations wrap it with the offending key so callers can use errors.Is.
var ErrNotFound = errors.New("catalog entry not found")
