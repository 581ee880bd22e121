// Package decode turns image bytes from disk or the network into an image.Image.
//
// PNG, JPEG, GIF, BMP, TIFF, WebP and SVG are understood. Failures are always
// reported as *DecodeError and never end the process.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension bounds each side of a raster image before it is decoded.
	MaxDimension = 16384
	// MaxPixels bounds width*height of a raster image before it is decoded.
	MaxPixels = 40 << 20
)

func File(filePath string) (image.Image, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &DecodeError{Source: filePath, Kind: ErrRead, Err: err}
	}

	return Bytes(data, filePath)
}

// Bytes decodes data. name is used for error messages and to spot SVG by extension.
func Bytes(data []byte, name string) (img image.Image, err error) {
	if len(data) == 0 {
		return nil, &DecodeError{Source: name, Kind: ErrEmpty}
	}

	// oksvg and some image decoders panic on malformed input.
	defer func() {
		if p := recover(); p != nil {
			img, err = nil, &DecodeError{Source: name, Kind: ErrFormat, Err: fmt.Errorf("decoder panic: %v", p)}
		}
	}()

	if isSVG(name, data) {
		img, err = loadSVG(data)
	} else {
		img, err = decodeRaster(data)
	}
	if err != nil {
		kind := ErrFormat
		if errors.Is(err, ErrTooLarge) {
			kind = ErrTooLarge
		}
		return nil, &DecodeError{Source: name, Kind: kind, Err: err}
	}

	if img.Bounds().Empty() {
		return nil, &DecodeError{Source: name, Kind: ErrEmpty}
	}

	return img, nil
}

// decodeRaster checks the header dimensions before allocating any pixels.
func decodeRaster(data []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension || cfg.Width*cfg.Height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

func isSVG(name string, data []byte) bool {
	ext := strings.ToLower(filepath.Ext(strings.SplitN(name, "?", 2)[0]))
	if ext == ".svg" {
		return true
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimSpace(head)
	if bytes.HasPrefix(head, []byte("<svg")) {
		return true
	}
	return bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg"))
}
