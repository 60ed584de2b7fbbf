package storage

import "errors"

// ErrDataUnavailable means a persisted document is absent or unreadable.
// Readers surface it as "no data" instead of failing hard.
var ErrDataUnavailable = errors.New("data unavailable")
