// Package corpus enumerates reference plate images and their ground truth.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions lists the image types loaded when no filter is given.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}

// Case is one labeled reference image.
type Case struct {
	ID    string // file name
	Path  string
	Truth string // file name without extension
}

// TruthFromName derives the ground-truth plate string from a file name.
func TruthFromName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadCase builds the case for a single image path.
func LoadCase(path string) Case {
	return Case{
		ID:    filepath.Base(path),
		Path:  path,
		Truth: TruthFromName(path),
	}
}

// Load lists the reference images of a directory in listing order.
// Directories are skipped. exts filters by extension,
// case-insensitively; nil means DefaultExtensions.
func Load(dir string, exts []string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	if exts == nil {
		exts = DefaultExtensions
	}
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = true
	}

	var cases []Case
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(allowed) > 0 && !allowed[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		cases = append(cases, LoadCase(filepath.Join(dir, name)))
	}

	return cases, nil
}
