package transform

import (
	"image"
	"image/color"
)

// Grayscale returns a single-channel copy of src using Rec.709 luma.
// The result always starts at the origin. Alpha is ignored after un-premultiplying.
func Grayscale(src image.Image) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	if g, ok := src.(*image.Gray); ok {
		for y := 0; y < bounds.Dy(); y++ {
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+bounds.Dx()], g.Pix[g.PixOffset(bounds.Min.X, bounds.Min.Y+y):])
		}
		return dst
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetGray(x-bounds.Min.X, y-bounds.Min.Y, luma(src.At(x, y)))
		}
	}

	return dst
}

func luma(c color.Color) color.Gray {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	y := (2126*uint32(n.R) + 7152*uint32(n.G) + 722*uint32(n.B)) / 10000

	return color.Gray{uint8(y)}
}
