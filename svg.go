package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// loadSVG rasterizes an SVG document onto a white canvas.
func loadSVG(data []byte, scale float64) (*image.RGBA, error) {
	if scale <= 0 {
		scale = 1
	}

	svgIcon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	viewBoxW := svgIcon.ViewBox.W * scale
	viewBoxH := svgIcon.ViewBox.H * scale

	svgIcon.SetTarget(0, 0, viewBoxW, viewBoxH)
	width := int(viewBoxW)
	height := int(viewBoxH)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("svg has an empty view box (%gx%g)", svgIcon.ViewBox.W, svgIcon.ViewBox.H)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	scanner.SetClip(img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	svgIcon.Draw(raster, 1.0)
	return img, nil
}
