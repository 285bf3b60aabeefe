// Package vision locates plates and splits them into characters with OpenCV.
//
// PlateDetector and CharSegmenter implement the lpreval Detector and
// Segmenter collaborators; WindowPreview and DirPreview implement
// PreviewSink. Every type needs the OpenCV libraries gocv links against.
package vision

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	lpreval "github.com/GabrielGausachs/PSIV-License-Plate-Detection"
)

// PlateDetector finds the largest plate-shaped contour in an image.
type PlateDetector struct {
	cfg config
}

// NewPlateDetector creates a PlateDetector.
func NewPlateDetector(opts ...Option) *PlateDetector {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &PlateDetector{cfg: cfg}
}

// DetectPlate reads the image at path and returns the plate crop. The
// returned Plate carries the crop rectangle in Meta.
func (d *PlateDetector) DetectPlate(ctx context.Context, path string) (lpreval.Plate, error) {
	if err := ctx.Err(); err != nil {
		return lpreval.Plate{}, err
	}

	img := gocv.IMRead(path, gocv.IMReadColor)
	defer img.Close()
	if img.Empty() {
		return lpreval.Plate{}, fmt.Errorf("%w: %s", ErrUnreadableImage, path)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	k := d.cfg.blurKernelSize
	gocv.GaussianBlur(gray, &blurred, image.Pt(k, k), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, d.cfg.cannyLow, d.cfg.cannyHigh)

	contours := gocv.FindContours(edges, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer contours.Close()

	rects := make([]image.Rectangle, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		rects = append(rects, gocv.BoundingRect(contours.At(i)))
	}

	rect, ok := pickPlate(rects, d.cfg.minAspect, d.cfg.maxAspect, d.cfg.minPlateArea)
	if !ok {
		return lpreval.Plate{}, fmt.Errorf("%w: %s (%d contours)", ErrNoPlate, path, len(rects))
	}

	region := img.Region(rect)
	crop := region.Clone()
	region.Close()
	defer crop.Close()

	plateImg, err := crop.ToImage()
	if err != nil {
		return lpreval.Plate{}, fmt.Errorf("converting plate crop: %w", err)
	}

	plate := lpreval.Plate{Image: plateImg, Meta: rect}
	if d.cfg.workDir != "" {
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out := filepath.Join(d.cfg.workDir, id+".png")
		if !gocv.IMWrite(out, crop) {
			return lpreval.Plate{}, fmt.Errorf("%w: %s", ErrWriteFailed, out)
		}
		plate.Path = out
	}

	d.cfg.logger.DebugContext(ctx, "plate detected",
		slog.String("path", path),
		slog.String("rect", rect.String()),
		slog.Int("contours", len(rects)),
	)
	return plate, nil
}

// pickPlate returns the largest rectangle whose width/height ratio is in
// [minAspect, maxAspect] and whose area is at least minArea.
func pickPlate(rects []image.Rectangle, minAspect, maxAspect float64, minArea int) (image.Rectangle, bool) {
	var best image.Rectangle
	bestArea := 0
	for _, r := range rects {
		w, h := r.Dx(), r.Dy()
		if h == 0 {
			continue
		}
		aspect := float64(w) / float64(h)
		if aspect < minAspect || aspect > maxAspect {
			continue
		}
		area := w * h
		if area < minArea || area <= bestArea {
			continue
		}
		best, bestArea = r, area
	}
	return best, bestArea > 0
}
