package reader

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// encodePNG returns img as PNG bytes.
func encodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrEncode)
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	defer buf.Close()

	// GetBytes aliases the native buffer, which Close frees.
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
