package transform

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuma(t *testing.T) {
	tests := []struct {
		name string
		in   color.Color
		want uint8
	}{
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"red", color.RGBA{255, 0, 0, 255}, 54},
		{"green", color.RGBA{0, 255, 0, 255}, 182},
		{"blue", color.RGBA{0, 0, 255, 255}, 18},
		{"mid gray", color.RGBA{150, 150, 150, 255}, 150},
		{"transparent", color.RGBA{0, 0, 0, 0}, 0},
		{"transparent white", color.NRGBA{255, 255, 255, 0}, 255},
		{"half alpha white", color.NRGBA{255, 255, 255, 128}, 255},
		{"premultiplied half red", color.RGBA{128, 0, 0, 128}, 54},
		{"gray16", color.Gray16{0xffff}, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, luma(tt.in).Y)
		})
	}
}

func TestGrayscaleKeepsDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 7, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 7; x++ {
			src.Set(x, y, color.RGBA{uint8(x * 30), uint8(y * 60), 10, 255})
		}
	}

	gray := Grayscale(src)
	require.Equal(t, image.Rect(0, 0, 7, 3), gray.Bounds())
	assert.Equal(t, luma(src.At(4, 2)), gray.GrayAt(4, 2))
}

func TestGrayscaleRebasesSubImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	src.Set(5, 5, color.White)
	sub := src.SubImage(image.Rect(5, 5, 8, 9))

	gray := Grayscale(sub)
	require.Equal(t, image.Rect(0, 0, 3, 4), gray.Bounds())
	assert.Equal(t, uint8(255), gray.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), gray.GrayAt(1, 0).Y, "alpha is ignored")
}

func TestGrayscaleCopiesGraySource(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	src.SetGray(2, 3, color.Gray{42})
	sub := src.SubImage(image.Rect(1, 1, 4, 4)).(*image.Gray)

	gray := Grayscale(sub)
	require.Equal(t, image.Rect(0, 0, 3, 3), gray.Bounds())
	assert.Equal(t, uint8(42), gray.GrayAt(1, 2).Y)

	gray.SetGray(1, 2, color.Gray{7})
	assert.Equal(t, uint8(42), src.GrayAt(2, 3).Y, "source must not be aliased")
}
