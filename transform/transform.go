// Package transform turns decoded images into ASCII-art grids.
//
// The pipeline is Grayscale, then Resize, then Quantize. Every stage is pure
// and nothing is kept between calls, so a Grid is safe to hand to any goroutine.
package transform

import "image"

// Transform renders img as a Grid width columns wide.
func Transform(img image.Image, width int) (Grid, error) {
	_, grid, err := Pipeline(img, width)
	return grid, err
}

// Pipeline is Transform that also returns the resized grayscale image.
func Pipeline(img image.Image, width int) (*image.Gray, Grid, error) {
	if img == nil {
		return nil, nil, &DimensionError{Target: width, Err: ErrEmptyImage}
	}

	resized, err := Resize(Grayscale(img), width)
	if err != nil {
		return nil, nil, err
	}

	grid, err := Quantize(resized)
	if err != nil {
		return nil, nil, err
	}

	return resized, grid, nil
}
