package machine

import (
	"fmt"

	"bitmaplaser/internal/gcode"
)

// Marlin drives a tool mounted on the Z axis. Power 0 retracts the tool,
// anything else engages it and lowers Z in proportion to the power.
type Marlin struct {
	Base
}

func (Marlin) Tool(c *gcode.ToolState, _ gcode.OutputProperties) []string {
	code := "M05"
	if c.Power > 0 {
		code = "M03"
	}
	return []string{code, fmt.Sprintf("G00 Z%.3f", float64(c.Power)/100)}
}
