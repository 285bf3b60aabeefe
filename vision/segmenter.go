package vision

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sort"

	"gocv.io/x/gocv"

	lpreval "github.com/GabrielGausachs/PSIV-License-Plate-Detection"
)

// CharSegmenter splits a plate into character crops with Otsu thresholding
// and external contours.
type CharSegmenter struct {
	cfg config
}

// NewCharSegmenter creates a CharSegmenter.
func NewCharSegmenter(opts ...Option) *CharSegmenter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &CharSegmenter{cfg: cfg}
}

// Segment returns grayscale character crops ordered left to right. A plate
// stored on disk by the detector is read back from plate.Path; otherwise
// plate.Image is used.
func (s *CharSegmenter) Segment(ctx context.Context, plate lpreval.Plate) ([]image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := plateMat(plate)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	if src.Channels() == 1 {
		src.CopyTo(&gray)
	} else {
		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	}

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinaryInv|gocv.ThresholdOtsu)

	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	rects := make([]image.Rectangle, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		rects = append(rects, gocv.BoundingRect(contours.At(i)))
	}

	boxes := charBoxes(rects, gray.Rows(), s.cfg.minCharHeight, s.cfg.maxCharHeight)
	if len(boxes) == 0 {
		return nil, fmt.Errorf("%w: %d contours", ErrNoCharacters, len(rects))
	}

	chars := make([]image.Image, 0, len(boxes))
	for _, r := range boxes {
		region := gray.Region(r)
		mat := region.Clone()
		region.Close()
		crop, err := mat.ToImage()
		mat.Close()
		if err != nil {
			return nil, fmt.Errorf("converting character crop: %w", err)
		}
		chars = append(chars, crop)
	}

	s.cfg.logger.DebugContext(ctx, "plate segmented",
		slog.Int("characters", len(chars)),
		slog.Int("contours", len(rects)),
	)
	return chars, nil
}

func plateMat(plate lpreval.Plate) (gocv.Mat, error) {
	if plate.Path != "" {
		m := gocv.IMRead(plate.Path, gocv.IMReadColor)
		if m.Empty() {
			m.Close()
			return gocv.Mat{}, fmt.Errorf("%w: %s", ErrUnreadableImage, plate.Path)
		}
		return m, nil
	}
	if plate.Image == nil {
		return gocv.Mat{}, fmt.Errorf("%w: plate has no image", ErrUnreadableImage)
	}
	m, err := gocv.ImageToMatRGB(plate.Image)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %w", ErrUnreadableImage, err)
	}
	return m, nil
}

// charBoxes keeps the rectangles that look like characters on a plate of
// the given height and sorts them by their left edge.
func charBoxes(rects []image.Rectangle, plateHeight int, minFrac, maxFrac float64) []image.Rectangle {
	if plateHeight <= 0 {
		return nil
	}

	var boxes []image.Rectangle
	for _, r := range rects {
		w, h := r.Dx(), r.Dy()
		frac := float64(h) / float64(plateHeight)
		if frac < minFrac || frac > maxFrac {
			continue
		}
		// Characters are taller than wide; wider blobs are borders or smudges.
		if w == 0 || w > h {
			continue
		}
		boxes = append(boxes, r)
	}

	sort.Slice(boxes, func(i, j int) bool {
		return boxes[i].Min.X < boxes[j].Min.X
	})
	return boxes
}
