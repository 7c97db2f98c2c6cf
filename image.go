package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadImage reads a raster or SVG image and returns its luminance along with
// the name of the format it was decoded from. SVG files are rasterized at
// svgScale pixels per user unit.
func LoadImage(filePath string, svgScale float64) (*image.Gray, string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, "", err
	}

	if strings.ToLower(filepath.Ext(filePath)) == ".svg" {
		img, err := loadSVG(data, svgScale)
		if err != nil {
			return nil, "", err
		}
		return toGray(img), "svg", nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", filePath, err)
	}

	return toGray(img), format, nil
}

// toGray converts img to luminance, compositing transparent pixels over
// white so that they do not burn.
func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}

	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := src.At(x, y).RGBA()
			lum := (299*r + 587*g + 114*b) / 1000
			lum += 0xffff - a
			dst.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: uint8(min(lum, 0xffff) >> 8)})
		}
	}

	return dst
}

// resample scales img to width pixels, keeping the aspect ratio.
func resample(img *image.Gray, width int) *image.Gray {
	bounds := img.Bounds()
	if width <= 0 || width == bounds.Dx() {
		return img
	}

	height := max(1, bounds.Dy()*width/bounds.Dx())
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
