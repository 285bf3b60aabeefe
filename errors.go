package lpreval

import (
	"errors"

	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/score"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidGroundTruth indicates an image whose file name yields an empty plate.
	ErrInvalidGroundTruth = score.ErrInvalidGroundTruth

	// ErrCorpusEmpty indicates the reference directory holds no images.
	ErrCorpusEmpty = score.ErrCorpusEmpty

	// ErrCollaboratorUnavailable indicates full-plate scoring was requested
	// without a PlateReader.
	ErrCollaboratorUnavailable = errors.New("lpreval: full plate reader not configured")

	// ErrCharacterRecognition indicates every attempt to classify a character slot failed.
	ErrCharacterRecognition = errors.New("lpreval: character recognition failed")

	// ErrLengthMismatch flags full-plate and segmented predictions of different lengths.
	// It is only logged.
	ErrLengthMismatch = errors.New("lpreval: full plate and segmented predictions differ in length")

	// ErrMissingCollaborator indicates New was called without a mandatory collaborator.
	ErrMissingCollaborator = errors.New("lpreval: missing collaborator")
)
