package model

import "errors"

var (
	// ErrRange is returned when a transform would leave the 0..127 key space.
	ErrRange = errors.New("note out of range")

	// ErrInvalidArgument covers bad degrees, inversion counts and resolutions.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrIndex = errors.New("index out of bounds")

	// ErrStream means an event stream could not be paired into notes.
	ErrStream = errors.New("malformed event stream")

	ErrFormat = errors.New("unsupported midi format")
)
