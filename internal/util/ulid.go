package util

import "github.com/oklog/ulid/v2"

// New returns a new lexically sortable ULID string; safe for concurrent use.
func New() string {
	return ulid.Make().String()
}
