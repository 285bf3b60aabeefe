package vision

import "log/slog"

// Option configures a PlateDetector or CharSegmenter.
type Option func(*config)

type config struct {
	minAspect      float64
	maxAspect      float64
	minPlateArea   int
	workDir        string
	minCharHeight  float64
	maxCharHeight  float64
	cannyLow       float32
	cannyHigh      float32
	blurKernelSize int
	logger         *slog.Logger
}

func defaultConfig() config {
	return config{
		minAspect:      2,
		maxAspect:      6,
		minPlateArea:   1000,
		minCharHeight:  0.35,
		maxCharHeight:  0.95,
		cannyLow:       100,
		cannyHigh:      200,
		blurKernelSize: 5,
		logger:         slog.Default(),
	}
}

// WithPlateAspect sets the accepted width/height ratio of a plate (default: 2 to 6).
func WithPlateAspect(minRatio, maxRatio float64) Option {
	return func(c *config) {
		if minRatio > 0 && maxRatio >= minRatio {
			c.minAspect = minRatio
			c.maxAspect = maxRatio
		}
	}
}

// WithMinPlateArea sets the smallest plate candidate in pixels (default: 1000).
func WithMinPlateArea(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.minPlateArea = n
		}
	}
}

// WithWorkDir makes the detector store every plate crop as <id>.png in dir,
// so segmentation reads the stored crop.
func WithWorkDir(dir string) Option {
	return func(c *config) {
		c.workDir = dir
	}
}

// WithCharHeight sets the accepted character height as a fraction of the
// plate height (default: 0.35 to 0.95).
func WithCharHeight(minFrac, maxFrac float64) Option {
	return func(c *config) {
		if minFrac > 0 && maxFrac >= minFrac && maxFrac <= 1 {
			c.minCharHeight = minFrac
			c.maxCharHeight = maxFrac
		}
	}
}

// WithCanny sets the Canny hysteresis thresholds (default: 100, 200).
func WithCanny(low, high float32) Option {
	return func(c *config) {
		if low > 0 && high > low {
			c.cannyLow = low
			c.cannyHigh = high
		}
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
