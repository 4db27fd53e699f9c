package repository

import "errors"

// ErrNotFound is wrapped by every repository when a referenced row is absent.
// Handlers map it to HTTP 404.
var ErrNotFound = errors.New("not found")
