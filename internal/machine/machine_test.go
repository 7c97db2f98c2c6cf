package machine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitmaplaser/internal/gcode"
)

func TestBaseLinear(t *testing.T) {
	p := Base{}.Defaults()

	tests := []struct {
		name string
		move *gcode.LinearMove
		want string
	}{
		{"rapid all axes", gcode.Rapid().WithX(0).WithY(0).WithZ(0).WithFeed(2000), "G0 X0.000 Y0.000 Z0.000 F2000.000"},
		{"controlled x only", gcode.Feed().WithX(12.3456), "G1 X12.346"},
		{"no axes", gcode.Rapid(), "G0"},
		{"negative zero", gcode.Feed().WithY(-0.0001), "G1 Y0.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{tt.want}, Base{}.Linear(tt.move, p))
		})
	}
}

func TestBaseModes(t *testing.T) {
	p := Base{}.Defaults()
	assert.Equal(t, []string{"G21"}, Base{}.Units(&gcode.SetUnits{Units: gcode.Millimeters}, p))
	assert.Equal(t, []string{"G20"}, Base{}.Units(&gcode.SetUnits{Units: gcode.Inches}, p))
	assert.Equal(t, []string{"G90"}, Base{}.Positioning(&gcode.SetPositioning{Mode: gcode.Absolute}, p))
	assert.Equal(t, []string{"G91"}, Base{}.Positioning(&gcode.SetPositioning{Mode: gcode.Relative}, p))
	assert.Equal(t, []string{"M106 S42"}, Base{}.Tool(&gcode.ToolState{Power: 42}, p))
	assert.Empty(t, Base{}.Comment(&gcode.Comment{Note: "x"}, p))
	assert.Empty(t, Base{}.Blank(&gcode.Blank{}, p))
}

func TestMarlinToolState(t *testing.T) {
	p := Marlin{}.Defaults()
	assert.Equal(t, []string{"M05", "G00 Z0.000"}, Marlin{}.Tool(&gcode.ToolState{Power: 0}, p))
	assert.Equal(t, []string{"M03", "G00 Z2.550"}, Marlin{}.Tool(&gcode.ToolState{Power: 255}, p))
	assert.Equal(t, []string{"M03", "G00 Z0.010"}, Marlin{}.Tool(&gcode.ToolState{Power: 1}, p))
}

func TestGRBLToolState(t *testing.T) {
	p := GRBL{}.Defaults()
	assert.Equal(t, []string{"M5"}, GRBL{}.Tool(&gcode.ToolState{Power: 0}, p))
	assert.Equal(t, []string{"M3 S200"}, GRBL{}.Tool(&gcode.ToolState{Power: 200}, p))
}

func TestArcRadius(t *testing.T) {
	p := ArcRadius{}.Defaults()
	arc := &gcode.ArcMove{Direction: gcode.Clockwise, EndX: 10, EndY: 0, CenterOffsetX: 3, CenterOffsetY: 4}

	assert.Equal(t, []string{"G2 X10.000 Y0.000 R5.000"}, ArcRadius{}.Arc(arc, p))
	assert.Equal(t, []string{"G2 X10.000 Y0.000 I3.000 J4.000"}, Base{}.Arc(arc, p))
}

func mixedDocument() *gcode.Document {
	doc := gcode.NewDocument()
	doc.Append(&gcode.Comment{Note: "job"})
	doc.Append(&gcode.SetPositioning{Mode: gcode.Absolute, Note: "Set movement to absolute"})
	doc.Append(&gcode.SetUnits{Units: gcode.Millimeters})
	doc.Append(gcode.Rapid().WithX(0).WithY(0).WithZ(0).WithFeed(2000))
	doc.Append(&gcode.ToolState{Power: 0})
	doc.Append(&gcode.Blank{})
	doc.Append(gcode.Rapid().WithY(0.1))
	doc.Append(gcode.Feed().WithX(3).WithFeed(1000))
	doc.Append(&gcode.ToolState{Power: 200})
	doc.Append(gcode.Feed().WithX(0).WithFeed(1000))
	doc.Append(&gcode.ToolState{Power: 0})
	return doc
}

// Lines coming from anything but a ToolState must not depend on which of the
// dialects rendered them.
func TestVendorDialectsOnlyChangeToolLines(t *testing.T) {
	doc := mixedDocument()

	base, err := doc.Render(Base{})
	require.NoError(t, err)

	for _, vendor := range []gcode.Dialect{Marlin{}, GRBL{}} {
		out, err := doc.Render(vendor)
		require.NoError(t, err)

		assert.Equal(t, withoutTool(base, isBaseTool), withoutTool(out, isVendorTool))
	}
}

func isBaseTool(line string) bool { return strings.HasPrefix(line, "M106") }

func isVendorTool(line string) bool {
	return strings.HasPrefix(line, "M0") || strings.HasPrefix(line, "G00 Z") ||
		strings.HasPrefix(line, "M3") || strings.HasPrefix(line, "M5")
}

func withoutTool(out string, isTool func(string) bool) []string {
	var kept []string
	for _, line := range strings.SplitAfter(out, "\n") {
		if !isTool(line) {
			kept = append(kept, line)
		}
	}
	return kept
}

func TestLookup(t *testing.T) {
	d, err := Lookup("Marlin")
	require.NoError(t, err)
	assert.IsType(t, Marlin{}, d)

	d, err = Lookup(" base ")
	require.NoError(t, err)
	assert.IsType(t, Base{}, d)

	_, err = Lookup("makerbot")
	assert.ErrorIs(t, err, ErrUnknownDialect)
	assert.Contains(t, err.Error(), "grbl")
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"arc-radius", "base", "grbl", "marlin"}, Names())
}
