package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/score"
)

func TestPrinter_Image(t *testing.T) {
	img, err := score.ScoreImage("AB123CD", score.Predictions{
		FullPlate:    "AB123CD",
		HasFullPlate: true,
		Segmented:    "AB132CD",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	p := New(&buf)
	p.ImageHeader("AB123CD.png")
	p.Image(img)
	out := buf.String()

	assert.Contains(t, out, "Test image: AB123CD.png")
	assert.Contains(t, out, "Actual characters: AB123CD")
	assert.Contains(t, out, "Full plate:")
	assert.Contains(t, out, "Segmented plate:")
	assert.Contains(t, out, "Levenshtein distance:    2 - Incorrect")
	assert.Contains(t, out, "Accuracy:                71.43% - Incorrect")
	assert.Contains(t, out, "Accuracy:                100.00% - Correct")
}

func TestPrinter_ImageWithoutFullPlate(t *testing.T) {
	img, err := score.ScoreImage("XY9988", score.Predictions{Segmented: "XY9988"})
	require.NoError(t, err)

	var buf bytes.Buffer
	New(&buf).Image(img)

	assert.NotContains(t, buf.String(), "Full plate:")
	assert.Contains(t, buf.String(), "Segmented plate:")
}

func TestPrinter_Summary(t *testing.T) {
	tests := []struct {
		name string
		pass bool
		want string
	}{
		{"pass", true, "Test passed!"},
		{"fail", false, "Test failed!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf).Summary(score.Summary{
				Images:             10,
				Failed:             1,
				SegmentedExact:     9,
				SegmentedAccuracy:  90,
				CorrectChars:       69,
				CharAccuracy:       98.5714,
				AssumedPlateLength: 7,
				Pass:               tt.pass,
			})
			out := buf.String()
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "Total correct for segmented plate: 9 - 90.00%")
			assert.Contains(t, out, "Total correct letters: 69 - 98.57%")
			assert.Contains(t, out, "Failed images: 1 of 10")
		})
	}
}

func TestPrinter_Failure(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Failure("1234BCD.png", errors.New("no plate found"))
	assert.Equal(t, "Image 1234BCD.png failed: no plate found\n", buf.String())
}

func TestNew_NilWriter(t *testing.T) {
	p := New(nil)
	assert.NotPanics(t, func() { p.Banner(true) })
}
