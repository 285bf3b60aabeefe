package reader

import "log/slog"

// PlateChars is the default character whitelist: plates carry upper-case
// letters and digits only.
const PlateChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Option configures a Tesseract or Rekognition reader.
type Option func(*config)

type config struct {
	language      string
	whitelist     string
	minConfidence float32
	logger        *slog.Logger
}

func defaultConfig() config {
	return config{
		language:      "eng",
		whitelist:     PlateChars,
		minConfidence: 50,
		logger:        slog.Default(),
	}
}

// WithLanguage sets the Tesseract language (default: "eng").
func WithLanguage(lang string) Option {
	return func(c *config) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithWhitelist sets the characters Tesseract may emit (default: PlateChars).
func WithWhitelist(chars string) Option {
	return func(c *config) {
		c.whitelist = chars
	}
}

// WithMinConfidence sets the lowest Rekognition line confidence accepted,
// in percent (default: 50).
func WithMinConfidence(p float32) Option {
	return func(c *config) {
		if p >= 0 && p <= 100 {
			c.minConfidence = p
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
