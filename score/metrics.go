package score

import (
	"unicode/utf8"

	"gonum.org/v1/gonum/stat"
)

// Thresholds holds corpus-level evaluation parameters.
type Thresholds struct {
	PassAccuracy       float64 // minimum overall accuracy for both prediction kinds
	AssumedPlateLength int     // characters per plate for CharAccuracy
}

// DefaultThresholds returns the default corpus thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PassAccuracy:       90,
		AssumedPlateLength: 7,
	}
}

// Accumulator holds running corpus totals.
// The zero value is ready to use.
type Accumulator struct {
	Images         int
	FullPlateExact int
	SegmentedExact int
	CorrectChars   int
	TruthChars     int
	Failed         int

	segmented []float64
}

// Add folds one scored image into the totals.
func (a *Accumulator) Add(img Image) {
	a.Images++
	if img.FullPlate.Exact {
		a.FullPlateExact++
	}
	if img.Segmented.Exact {
		a.SegmentedExact++
	}
	a.CorrectChars += img.Correct
	a.TruthChars += utf8.RuneCountInString(img.Truth)
	a.segmented = append(a.segmented, img.Segmented.Accuracy)
}

// AddFailure counts an image whose pipeline failed before producing predictions.
// The image still counts towards every denominator with zero correct output.
func (a *Accumulator) AddFailure(img Image) {
	a.Failed++
	a.Add(img)
}

// Summary holds the corpus-level metrics and verdict.
type Summary struct {
	Images         int
	Failed         int
	FullPlateExact int
	SegmentedExact int
	CorrectChars   int
	TruthChars     int

	FullPlateAccuracy float64 // FullPlateExact / Images * 100
	SegmentedAccuracy float64 // SegmentedExact / Images * 100

	// CharAccuracy assumes every plate has AssumedPlateLength characters.
	// It can exceed 100 on a corpus of longer plates.
	CharAccuracy       float64
	AssumedPlateLength int

	// TruthCharAccuracy uses the real truth lengths as the denominator.
	TruthCharAccuracy float64

	SegmentedMean   float64
	SegmentedStdDev float64

	PassAccuracy float64
	Pass         bool
}

// Summary computes the corpus metrics. It returns ErrCorpusEmpty when no
// image has been added.
func (a *Accumulator) Summary(th Thresholds) (Summary, error) {
	if a.Images == 0 {
		return Summary{}, ErrCorpusEmpty
	}
	if th.AssumedPlateLength <= 0 {
		th.AssumedPlateLength = DefaultThresholds().AssumedPlateLength
	}

	n := float64(a.Images)
	s := Summary{
		Images:             a.Images,
		Failed:             a.Failed,
		FullPlateExact:     a.FullPlateExact,
		SegmentedExact:     a.SegmentedExact,
		CorrectChars:       a.CorrectChars,
		TruthChars:         a.TruthChars,
		FullPlateAccuracy:  float64(a.FullPlateExact) / n * 100,
		SegmentedAccuracy:  float64(a.SegmentedExact) / n * 100,
		CharAccuracy:       float64(a.CorrectChars) / (n * float64(th.AssumedPlateLength)) * 100,
		AssumedPlateLength: th.AssumedPlateLength,
		PassAccuracy:       th.PassAccuracy,
	}
	if a.TruthChars > 0 {
		s.TruthCharAccuracy = float64(a.CorrectChars) / float64(a.TruthChars) * 100
	}
	if len(a.segmented) > 1 {
		s.SegmentedMean, s.SegmentedStdDev = stat.MeanStdDev(a.segmented, nil)
	} else if len(a.segmented) == 1 {
		s.SegmentedMean = a.segmented[0]
	}

	s.Pass = s.FullPlateAccuracy >= th.PassAccuracy && s.SegmentedAccuracy >= th.PassAccuracy
	return s, nil
}
