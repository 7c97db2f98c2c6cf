package machine

import (
	"fmt"
	"math"

	"bitmaplaser/internal/gcode"
)

// ArcRadius writes arcs with the R word instead of I/J center offsets, for
// controllers that only understand radius notation.
type ArcRadius struct {
	Base
}

func (ArcRadius) Arc(c *gcode.ArcMove, p gcode.OutputProperties) []string {
	op := "G2"
	if c.Direction == gcode.CounterClockwise {
		op = "G3"
	}
	r := math.Hypot(c.CenterOffsetX, c.CenterOffsetY)
	return []string{fmt.Sprintf("%s X%s Y%s R%s", op,
		gcode.FormatNumber(c.EndX, p.Precision),
		gcode.FormatNumber(c.EndY, p.Precision),
		gcode.FormatNumber(r, p.Precision))}
}
