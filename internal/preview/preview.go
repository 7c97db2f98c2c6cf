// Package preview draws the toolpath of a planned job as a grayscale image,
// darker where the laser burns harder.
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"bitmaplaser/internal/gcode"
)

// Options control the preview resolution.
type Options struct {
	PixelsPerMM float64
	// LineWidthMM is the width of a burnt track. Zero means one pixel.
	LineWidthMM float64
}

type head struct {
	x, y     float64
	power    uint16
	relative bool
}

// Render walks the commands of doc and fills every powered controlled move.
// Arc moves reposition the head but are not drawn. A job without extent
// gives a blank canvas one track wide.
func Render(doc *gcode.Document, opts Options) *image.Gray {
	if opts.PixelsPerMM <= 0 {
		opts.PixelsPerMM = 10
	}
	lineWidth := opts.LineWidthMM * opts.PixelsPerMM
	if lineWidth <= 0 {
		lineWidth = 1
	}

	bb := doc.BoundingBox()
	w := int(math.Ceil(bb.Width()*opts.PixelsPerMM + lineWidth))
	h := int(math.Ceil(bb.Height()*opts.PixelsPerMM + lineWidth))

	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	filler := rasterx.NewFiller(w, h, scanner)

	toPixel := func(x, y float64) (float64, float64) {
		return (x-bb.MinX)*opts.PixelsPerMM + lineWidth/2, (bb.MaxY-y)*opts.PixelsPerMM + lineWidth/2
	}

	var hd head
	for _, c := range doc.Commands() {
		switch c := c.(type) {
		case *gcode.SetPositioning:
			hd.relative = c.Mode == gcode.Relative
		case *gcode.ToolState:
			hd.power = c.Power
		case *gcode.ArcMove:
			hd.x, hd.y = hd.target(c.EndX, c.EndY)
		case *gcode.LinearMove:
			x, y := hd.x, hd.y
			if c.X != nil {
				x, _ = hd.target(*c.X, 0)
			}
			if c.Y != nil {
				_, y = hd.target(0, *c.Y)
			}

			if c.Kind == gcode.ControlledMove && hd.power > 0 {
				x0, y0 := toPixel(hd.x, hd.y)
				x1, y1 := toPixel(x, y)
				stroke(filler, x0, y0, x1, y1, lineWidth, burn(hd.power))
			}
			hd.x, hd.y = x, y
		}
	}

	return img
}

func (hd head) target(x, y float64) (float64, float64) {
	if hd.relative {
		return hd.x + x, hd.y + y
	}
	return x, y
}

func burn(power uint16) color.Gray {
	if power > 255 {
		power = 255
	}
	return color.Gray{Y: uint8(255 - power)}
}

// stroke fills the rectangle of the given width centred on the segment.
func stroke(f *rasterx.Filler, x0, y0, x1, y1, width float64, c color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	f.SetColor(c)
	f.Start(toFixed(x0+nx, y0+ny))
	f.Line(toFixed(x1+nx, y1+ny))
	f.Line(toFixed(x1-nx, y1-ny))
	f.Line(toFixed(x0-nx, y0-ny))
	f.Stop(true)
	f.Draw()
	f.Clear()
}

func toFixed(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
}
