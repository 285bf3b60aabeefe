// Package score turns plate predictions into comparable accuracy metrics.
//
// Scoring is pure: nothing here reads images or talks to a recognizer. A
// corpus driver feeds one (truth, predictions) pair per image into ScoreImage
// and folds the results into an Accumulator.
package score

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidGroundTruth indicates an empty ground-truth string.
	ErrInvalidGroundTruth = errors.New("score: invalid ground truth")

	// ErrCorpusEmpty indicates that no image was scored.
	ErrCorpusEmpty = errors.New("score: corpus is empty")
)

// Verdict is the binary classification of a single prediction.
type Verdict int

const (
	Incorrect Verdict = iota
	Correct
)

func (v Verdict) String() string {
	if v == Correct {
		return "Correct"
	}
	return "Incorrect"
}

// Record holds the score of one prediction against one ground truth.
type Record struct {
	Present    bool    // false when no prediction was produced
	Prediction string  // normalized prediction
	Distance   int     // Levenshtein distance to the truth
	Matches    int     // positions where prediction and truth agree
	Accuracy   float64 // Matches / len(truth) * 100

	// Exact is set when every truth position matches (Accuracy == 100).
	// Characters past the end of the truth do not break an exact match.
	Exact bool
}

// Verdict classifies the record. Only exact matches are Correct.
func (r Record) Verdict() Verdict {
	if r.Exact {
		return Correct
	}
	return Incorrect
}

// Absent returns the record of a prediction that was never produced.
// It scores zero and is never an exact match.
func Absent() Record {
	return Record{}
}

// Distance returns the Levenshtein distance between a and b, counted in runes.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Matches counts positions where truth and pred hold the same rune.
// Only the first min(len(truth), len(pred)) positions are compared.
func Matches(truth, pred string) int {
	n := 0
	for truth != "" && pred != "" {
		tr, ts := utf8.DecodeRuneInString(truth)
		pr, ps := utf8.DecodeRuneInString(pred)
		if tr == pr {
			n++
		}
		truth = truth[ts:]
		pred = pred[ps:]
	}
	return n
}

// Accuracy returns the position-wise accuracy of pred against truth in percent.
// The denominator is always the truth length, so a truncated prediction never
// reaches 100 and characters past the end of truth are ignored.
func Accuracy(truth, pred string) (float64, error) {
	total := utf8.RuneCountInString(truth)
	if total == 0 {
		return 0, ErrInvalidGroundTruth
	}
	return float64(Matches(truth, pred)) / float64(total) * 100, nil
}

// Score normalizes pred and scores it against truth.
func Score(truth, pred string) (Record, error) {
	if truth == "" {
		return Record{}, ErrInvalidGroundTruth
	}

	pred = Normalize(pred)
	matches := Matches(truth, pred)
	total := utf8.RuneCountInString(truth)

	return Record{
		Present:    true,
		Prediction: pred,
		Distance:   Distance(pred, truth),
		Matches:    matches,
		Accuracy:   float64(matches) / float64(total) * 100,
		Exact:      matches == total,
	}, nil
}

// Predictions holds the raw recognizer output for one image.
type Predictions struct {
	FullPlate    string
	HasFullPlate bool
	Segmented    string
}

// Image is the scored result of one corpus image.
type Image struct {
	Truth     string
	FullPlate Record
	Segmented Record

	// Correct is the number of segmented characters in the right position.
	// It feeds the corpus-wide character accuracy.
	Correct int

	// Mismatch reports that both predictions are present but disagree in length.
	Mismatch bool
}

// ScoreImage scores both predictions of one image.
// A full-plate prediction that is missing or empty after normalization is
// reported as absent. The segmented prediction is always scored.
func ScoreImage(truth string, p Predictions) (Image, error) {
	if truth == "" {
		return Image{}, ErrInvalidGroundTruth
	}

	seg, err := Score(truth, p.Segmented)
	if err != nil {
		return Image{}, fmt.Errorf("segmented prediction: %w", err)
	}

	img := Image{
		Truth:     truth,
		FullPlate: Absent(),
		Segmented: seg,
		Correct:   seg.Matches,
	}

	if p.HasFullPlate && Normalize(p.FullPlate) != "" {
		full, err := Score(truth, p.FullPlate)
		if err != nil {
			return Image{}, fmt.Errorf("full plate prediction: %w", err)
		}
		img.FullPlate = full
		img.Mismatch = utf8.RuneCountInString(full.Prediction) != utf8.RuneCountInString(seg.Prediction)
	}

	return img, nil
}
