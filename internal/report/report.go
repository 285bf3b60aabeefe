// Package report prints the human-readable evaluation report.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/score"
)

const separator = "--------------------"

// Printer writes report blocks to an io.Writer.
// Write errors are ignored; the report is for operator visibility only.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w. A nil w discards the report.
func New(w io.Writer) *Printer {
	if w == nil {
		w = io.Discard
	}
	return &Printer{w: w}
}

// ImageHeader starts the block of one test image.
func (p *Printer) ImageHeader(id string) {
	fmt.Fprintf(p.w, "\n%s\nTest image: %s\n", separator, id)
}

// Image prints the scores of one image.
func (p *Printer) Image(img score.Image) {
	fmt.Fprintf(p.w, "\n%s\nActual characters: %s\n", separator, img.Truth)
	if img.FullPlate.Present {
		p.record("Full plate", img.FullPlate)
	}
	p.record("Segmented plate", img.Segmented)
}

func (p *Printer) record(title string, r score.Record) {
	verdict := r.Verdict()
	fmt.Fprintf(p.w, "\n%s:\n", title)
	fmt.Fprintf(p.w, "\n%-25s%s\n", "Predicted:", r.Prediction)
	fmt.Fprintf(p.w, "%-25s%d - %s\n", "Levenshtein distance:", r.Distance, verdict)
	fmt.Fprintf(p.w, "%-25s%.2f%% - %s\n", "Accuracy:", r.Accuracy, verdict)
}

// Failure prints a per-image diagnostic.
func (p *Printer) Failure(id string, err error) {
	fmt.Fprintf(p.w, "Image %s failed: %v\n", id, err)
}

// Summary prints the corpus totals and the final banner.
func (p *Printer) Summary(s score.Summary) {
	fmt.Fprintf(p.w, "\n%s\n", separator)
	fmt.Fprintf(p.w, "Total correct for full plate: %d - %.2f%%\n", s.FullPlateExact, s.FullPlateAccuracy)
	fmt.Fprintf(p.w, "Total correct for segmented plate: %d - %.2f%%\n", s.SegmentedExact, s.SegmentedAccuracy)
	fmt.Fprintf(p.w, "Total correct letters: %d - %.2f%% (assuming %d per plate), %.2f%% of %d truth characters\n",
		s.CorrectChars, s.CharAccuracy, s.AssumedPlateLength, s.TruthCharAccuracy, s.TruthChars)
	fmt.Fprintf(p.w, "Segmented accuracy per image: mean %.2f%%, stddev %.2f\n", s.SegmentedMean, s.SegmentedStdDev)
	if s.Failed > 0 {
		fmt.Fprintf(p.w, "Failed images: %d of %d\n", s.Failed, s.Images)
	}
	p.Banner(s.Pass)
}

// Banner prints the overall verdict line.
func (p *Printer) Banner(pass bool) {
	word := "failed"
	if pass {
		word = "passed"
	}
	bar := strings.Repeat("-", 18)
	fmt.Fprintf(p.w, "\n%s Test %s! %s\n", bar, word, bar)
}
