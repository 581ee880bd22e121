package transform

import (
	"image"
	"io"
	"strings"
)

// Ramp runs from darkest to lightest.
const Ramp = "@#8&o:*. "

// upper bounds (inclusive) of each Ramp bucket
var bucketMax = [len(Ramp)]int{28, 56, 84, 112, 140, 168, 196, 224, 255}

var glyphs = buildGlyphTable()

func buildGlyphTable() [256]rune {
	var table [256]rune
	bucket := 0
	for v := range table {
		if v > bucketMax[bucket] {
			bucket++
		}
		table[v] = rune(Ramp[bucket])
	}
	return table
}

// Glyph maps a luminance value to its Ramp character.
func Glyph(v int) (rune, error) {
	if v < 0 || v >= len(glyphs) {
		return 0, &LuminanceError{X: -1, Y: -1, Value: v}
	}
	return glyphs[v], nil
}

// Grid is a rendered image, one slice of glyphs per row.
type Grid [][]rune

func (g Grid) Height() int { return len(g) }

func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) Lines() []string {
	lines := make([]string, len(g))
	for i, row := range g {
		lines[i] = string(row)
	}
	return lines
}

func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.Width() + 1) * g.Height())
	for _, row := range g {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g Grid) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.String())
	return int64(n), err
}

// Quantize converts every pixel of gray to a glyph, keeping row-major order.
func Quantize(gray *image.Gray) (Grid, error) {
	bounds := gray.Bounds()
	grid := make(Grid, bounds.Dy())

	for y := 0; y < bounds.Dy(); y++ {
		row := make([]rune, bounds.Dx())
		for x := range row {
			v := int(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			c, err := Glyph(v)
			if err != nil {
				return nil, &LuminanceError{X: x, Y: y, Value: v}
			}
			row[x] = c
		}
		grid[y] = row
	}

	return grid, nil
}
