package recognize

import (
	"image"
	"unicode"

	"golang.org/x/image/draw"
)

// Preprocess converts a character crop into a 1xHxW float tensor in [0, 1].
func Preprocess(img image.Image, width, height int, invert bool) []float32 {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	pixels := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := float32(dst.GrayAt(x, y).Y) / 255
			if invert {
				v = 1 - v
			}
			pixels[y*width+x] = v
		}
	}
	return pixels
}

// slotFilter returns which classes are allowed for a layout byte.
func slotFilter(kind byte) func(rune) bool {
	switch kind {
	case 'N':
		return unicode.IsDigit
	case 'L':
		return unicode.IsLetter
	default:
		return nil
	}
}

// decode picks the best-scoring class accepted by allow (every class when nil).
func decode(scores []float32, alphabet []rune, allow func(rune) bool) (rune, float32, error) {
	if len(scores) != len(alphabet) {
		return 0, 0, ErrOutputSize
	}

	best := -1
	for i, r := range alphabet {
		if allow != nil && !allow(r) {
			continue
		}
		if best < 0 || scores[i] > scores[best] {
			best = i
		}
	}
	if best < 0 {
		return 0, 0, ErrNoClass
	}
	return alphabet[best], scores[best], nil
}
