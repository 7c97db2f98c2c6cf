// Package config holds the user facing job settings and loads them from YAML
// or JSON documents.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"bitmaplaser/internal/gcode"
	"bitmaplaser/internal/raster"
)

// Config mirrors the command line options. Pointer fields are optional.
type Config struct {
	PassSpacingMM      float64  `yaml:"pass_spacing_mm"`
	FeedrateLasing     float64  `yaml:"feedrate_lasing"`
	FeedrateRapid      float64  `yaml:"feedrate_rapid"`
	Invert             bool     `yaml:"invert"`
	PhysicalWidthMM    *float64 `yaml:"physical_width_mm"`
	PhysicalHeightMM   *float64 `yaml:"physical_height_mm"`
	MinRapidDistanceMM float64  `yaml:"min_rapid_distance_mm"`
	LaserPowerMin      int      `yaml:"laser_power_min"`
	LaserPowerMax      int      `yaml:"laser_power_max"`
	BWMode             bool     `yaml:"bw_mode"`
	BWThreshold        int      `yaml:"bw_threshold"`
	OffsetX            float64  `yaml:"offset_x"`
	OffsetY            float64  `yaml:"offset_y"`
	OffsetZ            float64  `yaml:"offset_z"`

	Dialect string `yaml:"dialect"`

	// Output settings override the dialect defaults when set.
	Output gcode.Overrides `yaml:",inline"`

	ResampleWidthPx int     `yaml:"resample_width_px"`
	SVGScale        float64 `yaml:"svg_scale"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	p := raster.DefaultParams()
	return Config{
		PassSpacingMM:      p.PassSpacingMM,
		FeedrateLasing:     p.FeedLasing,
		FeedrateRapid:      p.FeedRapid,
		MinRapidDistanceMM: p.MinRapidDistanceMM,
		LaserPowerMin:      p.PowerMin,
		LaserPowerMax:      p.PowerMax,
		BWThreshold:        p.BWThreshold,
		Dialect:            "base",
		SVGScale:           1,
	}
}

// LoadFile overlays the keys present in the YAML or JSON file at path.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := c.decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// ApplyJSON overlays the keys present in an inline JSON object.
func (c *Config) ApplyJSON(s string) error {
	if err := c.decode(bytes.NewReader([]byte(s))); err != nil {
		return fmt.Errorf("json config: %w", err)
	}
	return nil
}

// decode only touches the keys present in the document. JSON is valid YAML,
// so one decoder serves both.
func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Params converts the configuration into planner settings.
func (c Config) Params() raster.Params {
	return raster.Params{
		PassSpacingMM:      c.PassSpacingMM,
		FeedLasing:         c.FeedrateLasing,
		FeedRapid:          c.FeedrateRapid,
		Invert:             c.Invert,
		PhysicalWidthMM:    c.PhysicalWidthMM,
		PhysicalHeightMM:   c.PhysicalHeightMM,
		MinRapidDistanceMM: c.MinRapidDistanceMM,
		PowerMin:           c.LaserPowerMin,
		PowerMax:           c.LaserPowerMax,
		BWMode:             c.BWMode,
		BWThreshold:        c.BWThreshold,
		OffsetX:            c.OffsetX,
		OffsetY:            c.OffsetY,
		OffsetZ:            c.OffsetZ,
	}
}
