// Package raster plans a serpentine laser scan over a grayscale image.
//
// Rows are scanned from the bottom of the image to the top. Each pixel row is
// covered by one or more passes so that passes are never further apart than
// the requested spacing, and the scan direction flips before every pass.
// Runs of equal power collapse into a single move.
package raster

import (
	"fmt"
	"image"
	"math"

	"bitmaplaser/internal/gcode"
)

// Job is a planned engraving together with the geometry it was planned at.
type Job struct {
	Document *gcode.Document
	Geometry Geometry
}

// Plan turns img into an engraving job. Nothing is returned on error.
func Plan(img *image.Gray, p Params) (*gcode.Document, error) {
	job, err := PlanJob(img, p)
	if err != nil {
		return nil, err
	}
	return job.Document, nil
}

// PlanJob is Plan, also reporting the derived geometry.
func PlanJob(img *image.Gray, p Params) (*Job, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image", ErrDegenerate)
	}

	bounds := img.Bounds()
	geo, err := p.Geometry(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	Logger().Debug("raster geometry",
		"pixels_wide", geo.PixelsWide,
		"pixels_high", geo.PixelsHigh,
		"mm_per_pixel", geo.MMPerPixel,
		"passes_per_pixel", geo.PassesPerPixel,
		"pass_spacing_mm", geo.PassSpacingMM)

	pl := &planner{
		img:    img,
		params: p,
		geo:    geo,
		rapid:  p.rapidFeed(),
		doc:    gcode.NewDocument(),
	}
	pl.run()

	if p.hasOffset() {
		pl.doc.Translate(p.OffsetX, p.OffsetY, p.OffsetZ)
	}

	bb := pl.doc.BoundingBox()
	Logger().Debug("raster plan complete",
		"commands", pl.doc.Len(),
		"min_x", bb.MinX, "min_y", bb.MinY,
		"max_x", bb.MaxX, "max_y", bb.MaxY)

	return &Job{Document: pl.doc, Geometry: geo}, nil
}

type planner struct {
	img    *image.Gray
	params Params
	geo    Geometry
	rapid  float64
	doc    *gcode.Document

	leftToRight bool
}

func (pl *planner) run() {
	doc := pl.doc
	doc.Append(&gcode.SetPositioning{Mode: gcode.Absolute, Note: "Set movement to absolute"})
	doc.Append(&gcode.SetUnits{Units: gcode.Millimeters, Note: "Set units to mm"})
	doc.Append(gcode.Rapid().WithX(0).WithY(0).WithZ(0).WithFeed(pl.rapid).WithNote("Move to the origin"))
	doc.Append(&gcode.ToolState{Power: 0})
	doc.Append(&gcode.Blank{})

	// Flipped before every pass, so the first pass runs right to left.
	pl.leftToRight = true

	for row := pl.geo.PixelsHigh - 1; row >= 0; row-- {
		doc.Append(&gcode.Blank{})
		doc.Append(&gcode.Blank{})

		rowY := float64(pl.geo.PixelsHigh-1-row) * pl.geo.MMPerPixel
		for pass := 0; pass < pl.geo.PassesPerPixel; pass++ {
			y := rowY + float64(pass)/float64(pl.geo.PassesPerPixel)*pl.geo.MMPerPixel
			doc.Append(gcode.Rapid().WithY(y).WithFeed(pl.rapid))

			pl.leftToRight = !pl.leftToRight
			pl.scanPass(row)
		}
	}
}

// scanPass emits the moves for one pass along the given pixel row. A move is
// only written where the power changes; the move reaching the start of a new
// run is a rapid when the run it leaves is unpowered and long enough. Every
// pass starts and ends with the laser off.
func (pl *planner) scanPass(row int) {
	p := pl.params
	mm := pl.geo.MMPerPixel
	width := pl.geo.PixelsWide
	origin := pl.img.Bounds().Min

	// Power currently on the laser.
	var on uint16
	lastX := pl.geo.WidthMM
	if pl.leftToRight {
		lastX = 0
	}

	var x float64
	for i := 0; i < width; i++ {
		col := i
		if !pl.leftToRight {
			col = width - 1 - i
		}

		power := p.Power(pl.img.GrayAt(origin.X+col, origin.Y+row).Y)

		x = mm * float64(col)
		if !pl.leftToRight {
			x += mm
		}

		if power == on {
			continue
		}

		if p.unpowered(on) && math.Abs(x-lastX) > p.MinRapidDistanceMM {
			pl.doc.Append(gcode.Rapid().WithX(x).WithFeed(pl.rapid))
		} else {
			pl.doc.Append(gcode.Feed().WithX(x).WithFeed(p.FeedLasing))
		}
		pl.doc.Append(&gcode.ToolState{Power: power})

		lastX = x
		on = power
	}

	if on != 0 {
		end := x - mm
		if pl.leftToRight {
			end = x + mm
		}
		pl.doc.Append(gcode.Feed().WithX(end).WithFeed(p.FeedLasing))
		pl.doc.Append(&gcode.ToolState{Power: 0})
	}
}
