package vision

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"gocv.io/x/gocv"
)

// WindowPreview shows every plate in an OpenCV window.
type WindowPreview struct {
	window *gocv.Window
	delay  int
}

// NewWindowPreview opens a window named title. Each plate stays on screen
// for delayMs milliseconds; 0 waits for a key press.
func NewWindowPreview(title string, delayMs int) *WindowPreview {
	return &WindowPreview{
		window: gocv.NewWindow(title),
		delay:  delayMs,
	}
}

// Preview displays plate with id as the window title.
func (p *WindowPreview) Preview(ctx context.Context, id string, plate image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mat, err := gocv.ImageToMatRGB(plate)
	if err != nil {
		return fmt.Errorf("converting plate %s: %w", id, err)
	}
	defer mat.Close()

	p.window.SetWindowTitle(id)
	p.window.IMShow(mat)
	p.window.WaitKey(p.delay)
	return nil
}

// Close destroys the window.
func (p *WindowPreview) Close() error {
	return p.window.Close()
}

// DirPreview writes every plate to a directory as <id>.png.
type DirPreview struct {
	dir string
}

// NewDirPreview creates a DirPreview writing into dir, which must exist.
func NewDirPreview(dir string) *DirPreview {
	return &DirPreview{dir: dir}
}

// Preview writes plate to <dir>/<id>.png.
func (p *DirPreview) Preview(ctx context.Context, id string, plate image.Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mat, err := gocv.ImageToMatRGB(plate)
	if err != nil {
		return fmt.Errorf("converting plate %s: %w", id, err)
	}
	defer mat.Close()

	out := filepath.Join(p.dir, id+".png")
	if !gocv.IMWrite(out, mat) {
		return fmt.Errorf("%w: %s", ErrWriteFailed, out)
	}
	return nil
}
