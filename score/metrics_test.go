package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustScore(t *testing.T, truth string, p Predictions) Image {
	t.Helper()
	img, err := ScoreImage(truth, p)
	require.NoError(t, err)
	return img
}

func TestAccumulator_NinetyPercentPasses(t *testing.T) {
	var acc Accumulator
	for i := 0; i < 9; i++ {
		acc.Add(mustScore(t, "1234BCD", Predictions{FullPlate: "1234BCD", HasFullPlate: true, Segmented: "1234BCD"}))
	}
	acc.Add(mustScore(t, "1234BCD", Predictions{FullPlate: "1234BCD", HasFullPlate: true, Segmented: "1234BCX"}))

	s, err := acc.Summary(DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, 10, s.Images)
	assert.Equal(t, 9, s.SegmentedExact)
	assert.Equal(t, 69, s.CorrectChars)
	assert.InDelta(t, 90.0, s.SegmentedAccuracy, 1e-9)
	assert.InDelta(t, 100.0, s.FullPlateAccuracy, 1e-9)
	assert.InDelta(t, 98.57, s.CharAccuracy, 0.01)
	assert.InDelta(t, 98.57, s.TruthCharAccuracy, 0.01)
	assert.True(t, s.Pass, "90%% is the pass threshold")
}

func TestAccumulator_TrailingExtrasCountAsExact(t *testing.T) {
	var acc Accumulator
	acc.Add(mustScore(t, "1234BCD", Predictions{FullPlate: "1234BCDX", HasFullPlate: true, Segmented: "1234BCDX"}))

	s, err := acc.Summary(DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, 1, s.SegmentedExact)
	assert.Equal(t, 1, s.FullPlateExact)
	assert.True(t, s.Pass)
}

func TestAccumulator_Verdict(t *testing.T) {
	tests := []struct {
		name     string
		full     []bool
		seg      []bool
		wantPass bool
	}{
		{"all exact", []bool{true, true}, []bool{true, true}, true},
		{"segmented below threshold", []bool{true, true}, []bool{true, false}, false},
		{"full plate below threshold", []bool{false, true}, []bool{true, true}, false},
		{"no full plate at all", []bool{false, false}, []bool{true, true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var acc Accumulator
			for i := range tt.full {
				p := Predictions{Segmented: "AB12"}
				if !tt.seg[i] {
					p.Segmented = "AB1"
				}
				if tt.full[i] {
					p.FullPlate, p.HasFullPlate = "AB12", true
				}
				acc.Add(mustScore(t, "AB12", p))
			}

			s, err := acc.Summary(DefaultThresholds())
			require.NoError(t, err)
			assert.Equal(t, tt.wantPass, s.Pass)
			assert.GreaterOrEqual(t, s.FullPlateAccuracy, 0.0)
			assert.LessOrEqual(t, s.FullPlateAccuracy, 100.0)
			assert.GreaterOrEqual(t, s.SegmentedAccuracy, 0.0)
			assert.LessOrEqual(t, s.SegmentedAccuracy, 100.0)
		})
	}
}

func TestAccumulator_AllExactOnlyWhenEveryImageExact(t *testing.T) {
	var acc Accumulator
	acc.Add(mustScore(t, "AB12", Predictions{Segmented: "AB12"}))
	acc.Add(mustScore(t, "CD34", Predictions{Segmented: "CD3"}))

	s, err := acc.Summary(DefaultThresholds())
	require.NoError(t, err)
	assert.Less(t, s.SegmentedAccuracy, 100.0)
	assert.InDelta(t, 50.0, s.SegmentedAccuracy, 1e-9)
	assert.InDelta(t, 87.5, s.SegmentedMean, 1e-9)
	assert.Greater(t, s.SegmentedStdDev, 0.0)
}

func TestAccumulator_FixedPlateLength(t *testing.T) {
	var acc Accumulator
	acc.Add(mustScore(t, "12345678", Predictions{Segmented: "12345678"}))

	s, err := acc.Summary(DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, 7, s.AssumedPlateLength)
	assert.InDelta(t, 800.0/7, s.CharAccuracy, 1e-9, "fixed length denominator overshoots on long plates")
	assert.InDelta(t, 100.0, s.TruthCharAccuracy, 1e-9)

	s, err = acc.Summary(Thresholds{PassAccuracy: 90, AssumedPlateLength: 8})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, s.CharAccuracy, 1e-9)
}

func TestAccumulator_Failure(t *testing.T) {
	var acc Accumulator
	acc.Add(mustScore(t, "AB12", Predictions{Segmented: "AB12"}))
	acc.AddFailure(mustScore(t, "CD34", Predictions{}))

	s, err := acc.Summary(DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Images)
	assert.Equal(t, 1, s.Failed)
	assert.InDelta(t, 50.0, s.SegmentedAccuracy, 1e-9)
	assert.InDelta(t, 50.0, s.TruthCharAccuracy, 1e-9)
}

func TestAccumulator_Empty(t *testing.T) {
	var acc Accumulator
	_, err := acc.Summary(DefaultThresholds())
	assert.ErrorIs(t, err, ErrCorpusEmpty)
}
