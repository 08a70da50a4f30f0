package tracker

import "errors"

// ErrGrantNotFound is returned when an operation references an unknown grant
// id, so callers can tell "no such grant" apart from "grant with no notes".
var ErrGrantNotFound = errors.New("grant not found")
