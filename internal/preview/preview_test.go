package preview

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitmaplaser/internal/gcode"
	"bitmaplaser/internal/raster"
)

func TestRenderBurnsPlannedRows(t *testing.T) {
	img, err := raster.GrayFromRows([][]uint8{
		{255, 255, 255, 255},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)

	doc, err := raster.Plan(img, raster.DefaultParams())
	require.NoError(t, err)

	out := Render(doc, Options{PixelsPerMM: 10, LineWidthMM: 0.1})

	assert.Equal(t, 2, out.Bounds().Dy())
	assert.GreaterOrEqual(t, out.Bounds().Dx(), 5)
	assert.Less(t, out.GrayAt(2, 1).Y, uint8(16), "bottom row is burnt")
	assert.Equal(t, uint8(255), out.GrayAt(2, 0).Y, "top row is untouched")
}

func TestRenderShadesByPower(t *testing.T) {
	doc := gcode.NewDocument()
	doc.Append(gcode.Rapid().WithX(0).WithY(0))
	doc.Append(&gcode.ToolState{Power: 128})
	doc.Append(gcode.Feed().WithX(2))
	doc.Append(&gcode.ToolState{Power: 0})
	doc.Append(gcode.Feed().WithX(4))
	doc.Append(gcode.Rapid().WithY(1))

	out := Render(doc, Options{PixelsPerMM: 4, LineWidthMM: 0.5})

	// Track centre sits at y = 1mm * 4 + 1px.
	assert.InDelta(t, 127, int(out.GrayAt(3, 5).Y), 2)
	assert.Equal(t, uint8(255), out.GrayAt(12, 5).Y, "unpowered move leaves no mark")
	assert.Equal(t, uint8(255), out.GrayAt(3, 1).Y)
}

func TestRenderRapidsDoNotBurn(t *testing.T) {
	doc := gcode.NewDocument()
	doc.Append(&gcode.ToolState{Power: 255})
	doc.Append(gcode.Rapid().WithX(3).WithY(3))

	out := Render(doc, Options{PixelsPerMM: 2})

	for _, v := range out.Pix {
		assert.Equal(t, uint8(255), v)
	}
}

func TestRenderWithoutExtentIsBlank(t *testing.T) {
	doc := gcode.NewDocument()
	doc.Append(gcode.Rapid().WithX(0).WithY(0))
	doc.Append(&gcode.ToolState{Power: 255})

	out := Render(doc, Options{PixelsPerMM: 4, LineWidthMM: 0.5})

	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	for _, v := range out.Pix {
		assert.Equal(t, uint8(255), v)
	}
}
