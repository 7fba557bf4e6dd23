package shared

import "errors"

// ErrUnavailable indicates a backing store could not serve the request.
var ErrUnavailable = errors.New("temporarily unavailable")
