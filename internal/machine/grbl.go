package machine

import (
	"fmt"

	"bitmaplaser/internal/gcode"
)

// GRBL uses the spindle commands for the laser: M3 with the power as the
// spindle speed, M5 to switch it off.
type GRBL struct {
	Base
}

func (GRBL) Tool(c *gcode.ToolState, _ gcode.OutputProperties) []string {
	if c.Power == 0 {
		return []string{"M5"}
	}
	return []string{fmt.Sprintf("M3 S%d", c.Power)}
}
