package analysis

import "errors"

// ErrInvalidInput is returned for input that cannot be analyzed at all, as
// opposed to missing or malformed optional data, which degrades to defaults.
var ErrInvalidInput = errors.New("invalid analysis input")
