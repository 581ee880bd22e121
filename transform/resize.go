package transform

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Multiplier compensates for terminal cells being taller than they are wide.
// It was tuned by eye and is not derived from any font metric.
const Multiplier = 0.45

// Height returns the row count for a srcW x srcH image rendered w columns wide.
// The column ratio is taken with integer division before the correction is applied.
func Height(srcW, srcH, w int) int {
	return int(math.Floor(float64(w*srcH/srcW) * Multiplier))
}

// Resize scales gray to width columns and Height rows with a triangle filter.
// A zero row count is legal and yields an empty image.
func Resize(gray *image.Gray, width int) (*image.Gray, error) {
	bounds := gray.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	if srcW == 0 || srcH == 0 {
		return nil, &DimensionError{Width: srcW, Height: srcH, Target: width, Err: ErrEmptyImage}
	}
	if width <= 0 {
		return nil, &DimensionError{Width: srcW, Height: srcH, Target: width, Err: ErrInvalidWidth}
	}

	height := Height(srcW, srcH, width)
	dst := image.NewGray(image.Rect(0, 0, width, height))
	if height == 0 {
		return dst, nil
	}

	draw.BiLinear.Scale(dst, dst.Rect, gray, bounds, draw.Src, nil)
	return dst, nil
}
