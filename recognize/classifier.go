package recognize

import (
	"context"
	"fmt"
	"log/slog"

	lpreval "github.com/GabrielGausachs/PSIV-License-Plate-Detection"
)

// Classifier recognizes single plate characters with an ONNX model whose
// output is one score per alphabet class.
// It is safe for concurrent use.
type Classifier struct {
	pool     *Pool
	alphabet []rune
	layout   string
	width    int
	height   int
	invert   bool
	logger   *slog.Logger
}

// New creates a Classifier for the model at modelPath.
func New(modelPath string, opts ...Option) (*Classifier, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	pool, err := NewPool(SessionConfig{
		ModelPath:     modelPath,
		InputName:     cfg.inputName,
		OutputName:    cfg.outputName,
		SharedLibrary: cfg.sharedLibrary,
	}, cfg.poolSize)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		pool:     pool,
		alphabet: []rune(cfg.alphabet),
		layout:   cfg.layout,
		width:    cfg.width,
		height:   cfg.height,
		invert:   cfg.invert,
		logger:   cfg.logger,
	}, nil
}

// Classify returns the best class for req.Image. Indexed requests are
// restricted by the plate layout; an index past the layout fails so the
// caller can retry without it. req.Model is not used.
func (c *Classifier) Classify(ctx context.Context, req lpreval.CharRequest) (string, error) {
	allow, err := c.filter(req)
	if err != nil {
		return "", err
	}

	session, err := c.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer c.pool.Release(session)

	pixels := Preprocess(req.Image, c.width, c.height, c.invert)
	shape := []int64{1, 1, int64(c.height), int64(c.width)}

	scores, err := session.Infer(ctx, pixels, shape)
	if err != nil {
		return "", err
	}

	r, score, err := decode(scores, c.alphabet, allow)
	if err != nil {
		return "", fmt.Errorf("%w: got %d scores for %d classes", err, len(scores), len(c.alphabet))
	}

	c.logger.DebugContext(ctx, "character classified",
		slog.String("char", string(r)),
		slog.Float64("score", float64(score)),
		slog.Int("slot", req.Index),
		slog.Bool("indexed", req.Indexed),
	)
	return string(r), nil
}

func (c *Classifier) filter(req lpreval.CharRequest) (func(rune) bool, error) {
	if !req.Indexed || c.layout == "" {
		return nil, nil
	}
	if req.Index < 0 || req.Index >= len(c.layout) {
		return nil, fmt.Errorf("%w: slot %d, layout %q", ErrSlotOutsideLayout, req.Index, c.layout)
	}
	return slotFilter(c.layout[req.Index]), nil
}

// Close releases the session pool.
func (c *Classifier) Close() error {
	return c.pool.Close()
}
