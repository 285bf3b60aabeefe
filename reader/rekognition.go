package reader

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// TextDetector is the part of the Rekognition client the reader uses.
type TextDetector interface {
	DetectText(ctx context.Context, params *rekognition.DetectTextInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectTextOutput, error)
}

// Rekognition reads plates with the AWS Rekognition DetectText API.
type Rekognition struct {
	client        TextDetector
	minConfidence float32
	logger        *slog.Logger
}

// NewRekognition creates a Rekognition reader on client.
func NewRekognition(client TextDetector, opts ...Option) *Rekognition {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Rekognition{
		client:        client,
		minConfidence: cfg.minConfidence,
		logger:        cfg.logger,
	}
}

// LoadRekognition creates a Rekognition reader from the default AWS
// credential chain. An empty region keeps the chain's region.
func LoadRekognition(ctx context.Context, region string, opts ...Option) (*Rekognition, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewRekognition(rekognition.NewFromConfig(awsCfg), opts...), nil
}

// ReadPlate returns the most confident text line on plate, upper-cased and
// without whitespace. Lines below the minimum confidence are ignored.
func (r *Rekognition) ReadPlate(ctx context.Context, plate image.Image) (string, error) {
	buf, err := encodePNG(plate)
	if err != nil {
		return "", err
	}

	out, err := r.client.DetectText(ctx, &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: buf},
	})
	if err != nil {
		return "", fmt.Errorf("rekognition DetectText: %w", err)
	}

	text, confidence, ok := bestLine(out.TextDetections, r.minConfidence)
	if !ok {
		return "", fmt.Errorf("%w: %d detections", ErrNoText, len(out.TextDetections))
	}

	r.logger.DebugContext(ctx, "rekognition read plate",
		slog.String("text", text),
		slog.Float64("confidence", float64(confidence)),
		slog.Int("detections", len(out.TextDetections)),
	)
	return text, nil
}

// bestLine picks the LINE detection with the highest confidence at or above
// minConfidence.
func bestLine(detections []types.TextDetection, minConfidence float32) (string, float32, bool) {
	var (
		best     string
		bestConf float32
		found    bool
	)
	for _, d := range detections {
		if d.Type != types.TextTypesLine || d.DetectedText == nil {
			continue
		}
		conf := aws.ToFloat32(d.Confidence)
		if conf < minConfidence || (found && conf <= bestConf) {
			continue
		}
		text := compact(*d.DetectedText)
		if text == "" {
			continue
		}
		best, bestConf, found = text, conf, true
	}
	return best, bestConf, found
}
