package vision

import "errors"

var (
	// ErrUnreadableImage is returned when OpenCV cannot decode an image.
	ErrUnreadableImage = errors.New("vision: unreadable image")

	// ErrNoPlate is returned when no contour has a plate-like shape.
	ErrNoPlate = errors.New("vision: no plate found")

	// ErrNoCharacters is returned when segmentation finds no character blobs.
	ErrNoCharacters = errors.New("vision: no characters found")

	// ErrWriteFailed is returned when OpenCV fails to write an image file.
	ErrWriteFailed = errors.New("vision: write failed")
)
