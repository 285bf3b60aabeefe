package reader

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTextDetector struct {
	detections []types.TextDetection
	err        error
	calls      int
	gotBytes   int
}

func (f *fakeTextDetector) DetectText(_ context.Context, in *rekognition.DetectTextInput, _ ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error) {
	f.calls++
	f.gotBytes = len(in.Image.Bytes)
	if f.err != nil {
		return nil, f.err
	}
	return &rekognition.DetectTextOutput{TextDetections: f.detections}, nil
}

func line(text string, conf float32) types.TextDetection {
	return types.TextDetection{
		Type:         types.TextTypesLine,
		DetectedText: aws.String(text),
		Confidence:   aws.Float32(conf),
	}
}

func word(text string, conf float32) types.TextDetection {
	d := line(text, conf)
	d.Type = types.TextTypesWord
	return d
}

func TestBestLine(t *testing.T) {
	tests := []struct {
		name       string
		detections []types.TextDetection
		want       string
		wantOK     bool
	}{
		{
			name:       "highest confidence line",
			detections: []types.TextDetection{line("12 34 abc", 80), line("5678 DEF", 95), word("ZZZZZZZ", 99)},
			want:       "5678DEF",
			wantOK:     true,
		},
		{
			name:       "below minimum",
			detections: []types.TextDetection{line("1234ABC", 40)},
		},
		{
			name:       "blank line skipped",
			detections: []types.TextDetection{line("   ", 99), line("1234ABC", 60)},
			want:       "1234ABC",
			wantOK:     true,
		},
		{
			name:       "words only",
			detections: []types.TextDetection{word("1234ABC", 99)},
		},
		{
			name: "nothing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := bestLine(tt.detections, 50)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRekognition_ReadPlate(t *testing.T) {
	fake := &fakeTextDetector{detections: []types.TextDetection{line("1234 abc", 91)}}
	r := NewRekognition(fake)

	got, err := r.ReadPlate(context.Background(), image.NewGray(image.Rect(0, 0, 60, 20)))
	require.NoError(t, err)
	assert.Equal(t, "1234ABC", got)
	assert.Equal(t, 1, fake.calls)
	assert.Positive(t, fake.gotBytes)
}

func TestRekognition_ReadPlateErrors(t *testing.T) {
	plate := image.NewGray(image.Rect(0, 0, 60, 20))
	ctx := context.Background()

	boom := errors.New("throttled")
	_, err := NewRekognition(&fakeTextDetector{err: boom}).ReadPlate(ctx, plate)
	assert.ErrorIs(t, err, boom)

	_, err = NewRekognition(&fakeTextDetector{}).ReadPlate(ctx, plate)
	assert.ErrorIs(t, err, ErrNoText)

	strict := NewRekognition(&fakeTextDetector{detections: []types.TextDetection{line("1234ABC", 80)}}, WithMinConfidence(90))
	_, err = strict.ReadPlate(ctx, plate)
	assert.ErrorIs(t, err, ErrNoText)

	fake := &fakeTextDetector{}
	_, err = NewRekognition(fake).ReadPlate(ctx, nil)
	assert.ErrorIs(t, err, ErrEncode)
	assert.Zero(t, fake.calls)
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "1234ABC", compact(" 1234 abc\n"))
	assert.Equal(t, "", compact(" \t\n"))
}

func TestTesseract_ReadPlate(t *testing.T) {
	tess, err := NewTesseract()
	if err != nil {
		t.Skipf("Skipping: tesseract not usable: %v", err)
	}
	defer func() { _ = tess.Close() }()

	blank := image.NewGray(image.Rect(0, 0, 120, 40))
	for i := range blank.Pix {
		blank.Pix[i] = 255
	}

	got, err := tess.ReadPlate(context.Background(), blank)
	require.NoError(t, err)
	assert.Empty(t, got)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tess.ReadPlate(cancelled, blank)
	assert.ErrorIs(t, err, context.Canceled)
}
