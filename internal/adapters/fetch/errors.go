package fetch

import "errors"

// Sentinel kinds for fetch errors.
var (
	ErrBadStatus = errors.New("unexpected response status")
)
