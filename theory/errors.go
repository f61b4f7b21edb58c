package theory

import "errors"

// ErrInvalidNote is returned when a pitch name cannot be parsed. Fingering
// callers match it with errors.Is rather than string comparison.
var ErrInvalidNote = errors.New("invalid note name")
