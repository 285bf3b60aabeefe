package lpreval

import (
	"context"
	"fmt"
	"image"
)

// Plate is a detected plate region.
type Plate struct {
	Image image.Image
	Path  string // where the detector stored the crop, if anywhere
	Meta  any    // detector specific, not used for scoring
}

// Detector locates the plate in a reference image.
// It returns an error when no plate is found.
type Detector interface {
	DetectPlate(ctx context.Context, path string) (Plate, error)
}

// Segmenter splits a plate into character crops in reading order.
type Segmenter interface {
	Segment(ctx context.Context, plate Plate) ([]image.Image, error)
}

// CharRequest is one character classification call.
type CharRequest struct {
	Image image.Image

	// Index is the slot position on the plate. It is only meaningful when
	// Indexed is set.
	Index   int
	Indexed bool

	// Model is the auxiliary model declared with WithAuxModel, or nil.
	Model any
}

// Alternate returns the fallback shape of the request, without slot position.
func (r CharRequest) Alternate() CharRequest {
	r.Index = 0
	r.Indexed = false
	return r
}

// Classifier recognizes a single character crop.
type Classifier interface {
	Classify(ctx context.Context, req CharRequest) (string, error)
}

// PlateReader recognizes a whole plate in one pass.
type PlateReader interface {
	ReadPlate(ctx context.Context, plate image.Image) (string, error)
}

// PreviewSink receives every detected plate, for display or inspection.
type PreviewSink interface {
	Preview(ctx context.Context, id string, plate image.Image) error
}

// CharResult is the outcome of classifying one character slot.
type CharResult struct {
	Text     string
	Attempts int
	Err      error // non-nil when every attempt failed; Text is then empty
}

// Stage names the pipeline step an image failed in.
type Stage string

const (
	StageDetect  Stage = "detect"
	StageSegment Stage = "segment"
	StageTimeout Stage = "timeout"
)

// PerImageFailure describes an image whose pipeline failed. The image is
// still scored, with whatever predictions were produced before the failure.
type PerImageFailure struct {
	ID    string
	Stage Stage
	Err   error
}

func (f *PerImageFailure) Error() string {
	return fmt.Sprintf("%s %s: %v", f.Stage, f.ID, f.Err)
}

func (f *PerImageFailure) Unwrap() error {
	return f.Err
}
