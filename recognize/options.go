package recognize

import (
	"log/slog"
)

// DefaultAlphabet is the class order of the default model output.
const DefaultAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Option configures a Classifier.
type Option func(*config)

type config struct {
	alphabet      string
	layout        string
	width         int
	height        int
	invert        bool
	poolSize      int
	inputName     string
	outputName    string
	sharedLibrary string
	logger        *slog.Logger
}

func defaultConfig() config {
	return config{
		alphabet:   DefaultAlphabet,
		width:      28,
		height:     28,
		poolSize:   1,
		inputName:  "input",
		outputName: "output",
		logger:     slog.Default(),
	}
}

// WithAlphabet sets the characters of the model output classes, in order.
func WithAlphabet(a string) Option {
	return func(c *config) {
		if a != "" {
			c.alphabet = a
		}
	}
}

// WithLayout restricts each slot of an indexed request: 'N' allows digits,
// 'L' allows letters, any other byte allows every class. For example
// "NNNNLLL" describes the current Spanish plate format.
func WithLayout(layout string) Option {
	return func(c *config) {
		c.layout = layout
	}
}

// WithInputSize sets the model input width and height (default: 28x28).
func WithInputSize(w, h int) Option {
	return func(c *config) {
		if w > 0 && h > 0 {
			c.width, c.height = w, h
		}
	}
}

// WithInvert feeds the model light characters on a dark background.
func WithInvert(invert bool) Option {
	return func(c *config) {
		c.invert = invert
	}
}

// WithPoolSize sets the ONNX session pool size (default: 1).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithIONames sets the model input and output tensor names
// (default: "input" and "output").
func WithIONames(input, output string) Option {
	return func(c *config) {
		if input != "" {
			c.inputName = input
		}
		if output != "" {
			c.outputName = output
		}
	}
}

// WithSharedLibrary sets the path of the onnxruntime shared library.
func WithSharedLibrary(path string) Option {
	return func(c *config) {
		c.sharedLibrary = path
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
