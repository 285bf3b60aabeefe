package reader

import "errors"

var (
	// ErrNoText is returned when the recognizer finds no usable text line.
	ErrNoText = errors.New("reader: no text detected")

	// ErrEncode is returned when a plate image cannot be encoded for the recognizer.
	ErrEncode = errors.New("reader: encode plate image")
)
