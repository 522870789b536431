package cairocodec

import "errors"

var (
	// ErrMalformedInput is returned when a raw value matches no known shape
	// or one of its literals cannot be coerced to a felt.
	ErrMalformedInput = errors.New("malformed input")

	// ErrOutOfRange is returned when a value exceeds the width it is packed into.
	ErrOutOfRange = errors.New("value out of range")
)
