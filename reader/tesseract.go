// Package reader recognizes whole license plates in one pass.
//
// Tesseract runs locally through gosseract; Rekognition calls the AWS
// DetectText API. Both implement the lpreval PlateReader collaborator.
package reader

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract reads a plate as a single text line.
// It is safe for concurrent use; calls are serialized.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
	logger *slog.Logger
}

// NewTesseract creates a Tesseract reader.
func NewTesseract(opts ...Option) (*Tesseract, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	client := gosseract.NewClient()

	if err := client.SetLanguage(cfg.language); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("setting OCR language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("setting page segmentation mode: %w", err)
	}
	if cfg.whitelist != "" {
		if err := client.SetWhitelist(cfg.whitelist); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("setting whitelist: %w", err)
		}
	}

	// Plates are not words; keep the dictionaries from rewriting them.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Tesseract{client: client, logger: cfg.logger}, nil
}

// ReadPlate returns the text Tesseract finds on plate, upper-cased and
// without whitespace.
func (t *Tesseract) ReadPlate(ctx context.Context, plate image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	buf, err := encodePNG(plate)
	if err != nil {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.client.SetImageFromBytes(buf); err != nil {
		return "", fmt.Errorf("setting OCR image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	text = compact(text)
	t.logger.DebugContext(ctx, "tesseract read plate", slog.String("text", text))
	return text, nil
}

// Close releases the Tesseract client.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}

// compact upper-cases s and drops all whitespace.
func compact(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
