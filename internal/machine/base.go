// Package machine provides the dialects that turn gcode commands into text
// for specific controllers.
package machine

import (
	"fmt"
	"strings"

	"bitmaplaser/internal/gcode"
)

// Base is the generic G-code dialect. Vendor dialects embed it and override
// only the commands they treat differently.
type Base struct{}

func (Base) Defaults() gcode.OutputProperties {
	return gcode.OutputProperties{
		LineEnding:      "\n",
		LineNumbers:     false,
		IncludeComments: true,
		Precision:       3,
	}
}

func (Base) Units(c *gcode.SetUnits, _ gcode.OutputProperties) []string {
	if c.Units == gcode.Inches {
		return []string{"G20"}
	}
	return []string{"G21"}
}

func (Base) Positioning(c *gcode.SetPositioning, _ gcode.OutputProperties) []string {
	if c.Mode == gcode.Relative {
		return []string{"G91"}
	}
	return []string{"G90"}
}

func (Base) Linear(c *gcode.LinearMove, p gcode.OutputProperties) []string {
	var sb strings.Builder
	if c.Kind == gcode.ControlledMove {
		sb.WriteString("G1")
	} else {
		sb.WriteString("G0")
	}

	writeAxis(&sb, "X", c.X, p.Precision)
	writeAxis(&sb, "Y", c.Y, p.Precision)
	writeAxis(&sb, "Z", c.Z, p.Precision)
	writeAxis(&sb, "F", c.Feed, p.Precision)

	return []string{sb.String()}
}

func (Base) Arc(c *gcode.ArcMove, p gcode.OutputProperties) []string {
	op := "G2"
	if c.Direction == gcode.CounterClockwise {
		op = "G3"
	}
	return []string{fmt.Sprintf("%s X%s Y%s I%s J%s", op,
		gcode.FormatNumber(c.EndX, p.Precision),
		gcode.FormatNumber(c.EndY, p.Precision),
		gcode.FormatNumber(c.CenterOffsetX, p.Precision),
		gcode.FormatNumber(c.CenterOffsetY, p.Precision))}
}

func (Base) Tool(c *gcode.ToolState, _ gcode.OutputProperties) []string {
	return []string{fmt.Sprintf("M106 S%d", c.Power)}
}

func (Base) Dwell(c *gcode.Dwell, _ gcode.OutputProperties) []string {
	return []string{fmt.Sprintf("G4 P%d", c.Duration.Milliseconds())}
}

// Comment returns no body; the renderer appends the annotation itself.
func (Base) Comment(*gcode.Comment, gcode.OutputProperties) []string { return nil }

func (Base) Blank(*gcode.Blank, gcode.OutputProperties) []string { return nil }

func writeAxis(sb *strings.Builder, axis string, v *float64, precision uint) {
	if v == nil {
		return
	}
	sb.WriteString(" ")
	sb.WriteString(axis)
	sb.WriteString(gcode.FormatNumber(*v, precision))
}
