package decode

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var errNoViewBox = errors.New("svg has no usable viewBox")

// svgMaxSide caps the longest side of a rasterised SVG. Output grids are at
// most a few hundred columns wide.
const svgMaxSide = 4096

// loadSVG rasterises an SVG document on a white background at its viewBox size,
// scaled down so the longest side fits svgMaxSide.
func loadSVG(data []byte) (image.Image, error) {
	svgIcon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	viewBoxW := svgIcon.ViewBox.W
	viewBoxH := svgIcon.ViewBox.H
	if !(viewBoxW > 0 && viewBoxH > 0) || math.IsInf(viewBoxW, 0) || math.IsInf(viewBoxH, 0) {
		return nil, errNoViewBox
	}

	targetW, targetH := viewBoxW, viewBoxH
	if longest := math.Max(targetW, targetH); longest > svgMaxSide {
		scale := svgMaxSide / longest
		targetW *= scale
		targetH *= scale
	}

	svgIcon.SetTarget(0, 0, targetW, targetH)
	width := min(svgMaxSide, max(1, int(math.Ceil(targetW))))
	height := min(svgMaxSide, max(1, int(math.Ceil(targetH))))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	svgIcon.Draw(raster, 1.0)
	return img, nil
}
