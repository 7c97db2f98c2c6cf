package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitmaplaser/internal/raster"
)

func TestDefaultMatchesPlannerDefaults(t *testing.T) {
	assert.Equal(t, raster.DefaultParams(), Default().Params())
	assert.Equal(t, "base", Default().Dialect)
}

func TestLoadFileOverlaysPresentKeys(t *testing.T) {
	content := `
pass_spacing_mm: 0.05
feedrate_lasing: 800
physical_width_mm: 120
bw_mode: true
dialect: marlin
line_numbers: true
precision: 2
`
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, 0.05, cfg.PassSpacingMM)
	assert.Equal(t, 800.0, cfg.FeedrateLasing)
	assert.Equal(t, 2000.0, cfg.FeedrateRapid, "absent keys keep their value")
	require.NotNil(t, cfg.PhysicalWidthMM)
	assert.Equal(t, 120.0, *cfg.PhysicalWidthMM)
	assert.Nil(t, cfg.PhysicalHeightMM)
	assert.True(t, cfg.BWMode)
	assert.Equal(t, 125, cfg.BWThreshold)
	assert.Equal(t, "marlin", cfg.Dialect)

	require.NotNil(t, cfg.Output.LineNumbers)
	assert.True(t, *cfg.Output.LineNumbers)
	require.NotNil(t, cfg.Output.Precision)
	assert.Equal(t, uint(2), *cfg.Output.Precision)
	assert.Nil(t, cfg.Output.IncludeComments)
}

func TestApplyJSON(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyJSON(`{"invert": true, "laser_power_min": 40, "offset_y": 2.5, "line_ending": "\r\n"}`))

	p := cfg.Params()
	assert.True(t, p.Invert)
	assert.Equal(t, 40, p.PowerMin)
	assert.Equal(t, 255, p.PowerMax)
	assert.Equal(t, 2.5, p.OffsetY)
	require.NotNil(t, cfg.Output.LineEnding)
	assert.Equal(t, "\r\n", *cfg.Output.LineEnding)
}

func TestBothDimensionsFailValidation(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyJSON(`{"physical_width_mm": 10, "physical_height_mm": 10}`))

	var cfgErr *raster.ConfigError
	assert.True(t, errors.As(cfg.Params().Validate(), &cfgErr))
}

func TestUnknownKeyRejected(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyJSON(`{"mm_per_pass": 0.2}`)
	assert.Error(t, err)
	assert.Equal(t, Default().PassSpacingMM, cfg.PassSpacingMM)
}

func TestEmptyDocumentIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.LoadFile(filepath.Join(t.TempDir(), "nope.yaml")))
}
