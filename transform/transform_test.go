package transform

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestTransformMidGray(t *testing.T) {
	grid, err := Transform(uniformRGBA(10, 10, color.RGBA{150, 150, 150, 255}), 10)
	require.NoError(t, err)

	row := strings.Repeat(":", 10)
	want := []string{row, row, row, row}
	if diff := cmp.Diff(want, grid.Lines()); diff != "" {
		t.Errorf("Transform mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformAspect(t *testing.T) {
	grid, err := Transform(uniformRGBA(200, 100, color.RGBA{0, 0, 0, 255}), 120)
	require.NoError(t, err)
	assert.Equal(t, 120, grid.Width())
	assert.Equal(t, 27, grid.Height())
	for _, line := range grid.Lines() {
		require.Equal(t, strings.Repeat("@", 120), line)
	}
}

func TestTransformWhite(t *testing.T) {
	grid, err := Transform(uniformRGBA(64, 48, color.RGBA{255, 255, 255, 255}), 30)
	require.NoError(t, err)
	require.Equal(t, Height(64, 48, 30), grid.Height())
	for _, line := range grid.Lines() {
		require.Equal(t, strings.Repeat(" ", 30), line)
	}
}

func TestTransformIsPure(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 97, 61))
	for y := 0; y < 61; y++ {
		for x := 0; x < 97; x++ {
			src.SetRGBA(x, y, color.RGBA{uint8(x * 5), uint8(y * 3), uint8(x ^ y), 255})
		}
	}

	first, err := Transform(src, 60)
	require.NoError(t, err)
	second, err := Transform(src, 60)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
}

func TestTransformDegenerate(t *testing.T) {
	grid, err := Transform(uniformRGBA(1000, 1, color.RGBA{0, 0, 0, 255}), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, grid.Height())
	assert.Equal(t, "", grid.String())
}

func TestTransformInvalid(t *testing.T) {
	tests := []struct {
		name  string
		img   image.Image
		width int
		want  error
	}{
		{"nil image", nil, 10, ErrEmptyImage},
		{"empty image", image.NewRGBA(image.Rectangle{}), 10, ErrEmptyImage},
		{"zero width", uniformRGBA(4, 4, color.RGBA{}), 0, ErrInvalidWidth},
		{"negative width", uniformRGBA(4, 4, color.RGBA{}), -1, ErrInvalidWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gray, grid, err := Pipeline(tt.img, tt.width)
			require.Error(t, err)
			assert.Nil(t, gray)
			assert.Nil(t, grid)
			assert.True(t, errors.Is(err, tt.want))
			assert.True(t, errors.Is(err, ErrInvalidDimensions))
			assert.False(t, errors.Is(err, ErrInvariant))
		})
	}
}

func TestPipelineReturnsResized(t *testing.T) {
	gray, grid, err := Pipeline(uniformRGBA(200, 100, color.RGBA{100, 100, 100, 255}), 60)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 60, 13), gray.Bounds())
	assert.Equal(t, gray.Bounds().Dy(), grid.Height())
	assert.Equal(t, uint8(100), gray.GrayAt(30, 6).Y)
}
