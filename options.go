package lpreval

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/GabrielGausachs/PSIV-License-Plate-Detection/score"
)

// Option configures an Evaluator.
type Option func(*config)

type config struct {
	logger       *slog.Logger
	output       io.Writer
	reader       PlateReader
	fullPlate    bool
	auxModel     any
	charAttempts int
	preview      PreviewSink
	imageTimeout time.Duration
	extensions   []string
	thresholds   score.Thresholds
}

func defaultConfig() config {
	return config{
		logger:       slog.Default(),
		output:       os.Stdout,
		charAttempts: 2,
		thresholds:   score.DefaultThresholds(),
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOutput sets where the console report is written (default: os.Stdout).
// A nil writer discards the report.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// WithFullPlate enables full-plate scoring with the given reader.
func WithFullPlate(r PlateReader) Option {
	return func(c *config) {
		c.reader = r
		c.fullPlate = true
	}
}

// WithFullPlateRequired requests full-plate scoring without changing the reader.
// If no reader is configured, every full-plate prediction is reported absent.
func WithFullPlateRequired(enabled bool) Option {
	return func(c *config) {
		c.fullPlate = enabled
	}
}

// WithAuxModel declares that the classifier accepts an auxiliary model,
// which is passed on every CharRequest.
func WithAuxModel(model any) Option {
	return func(c *config) {
		c.auxModel = model
	}
}

// WithCharAttempts sets how many times a character slot is classified before
// it degrades to an empty string (default: 2, the primary and the alternate request).
func WithCharAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.charAttempts = n
		}
	}
}

// WithPreview sets a sink that receives every detected plate.
func WithPreview(s PreviewSink) Option {
	return func(c *config) {
		c.preview = s
	}
}

// WithImageTimeout bounds the collaborator calls of a single image.
// Expiry scores the image as failed. Zero disables the timeout.
func WithImageTimeout(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.imageTimeout = d
		}
	}
}

// WithExtensions restricts the corpus to the given file extensions.
func WithExtensions(exts ...string) Option {
	return func(c *config) {
		c.extensions = exts
	}
}

// WithAssumedPlateLength sets the plate length used by the fixed-length
// character accuracy (default: 7).
func WithAssumedPlateLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.thresholds.AssumedPlateLength = n
		}
	}
}

// WithPassAccuracy sets the overall accuracy both prediction kinds must reach
// for the corpus to pass (default: 90).
func WithPassAccuracy(p float64) Option {
	return func(c *config) {
		if p >= 0 && p <= 100 {
			c.thresholds.PassAccuracy = p
		}
	}
}
