package raster

import (
	"fmt"
	"math"
)

// DefaultMMPerPixel is the pixel pitch used when neither physical dimension
// is given.
const DefaultMMPerPixel = 0.1

// passEpsilon absorbs float noise in the pass count, so that 0.3mm pixels at
// 0.1mm spacing give 3 passes rather than 4.
const passEpsilon = 1e-9

// Params are the process settings for one engraving job.
type Params struct {
	PassSpacingMM float64
	FeedLasing    float64
	// FeedRapid of 0 means use FeedLasing.
	FeedRapid float64
	Invert    bool

	// At most one of PhysicalWidthMM and PhysicalHeightMM may be set.
	PhysicalWidthMM  *float64
	PhysicalHeightMM *float64

	MinRapidDistanceMM float64
	PowerMin           int
	PowerMax           int
	BWMode             bool
	BWThreshold        int

	OffsetX, OffsetY, OffsetZ float64
}

// DefaultParams returns the settings used when nothing is configured.
func DefaultParams() Params {
	return Params{
		PassSpacingMM:      0.1,
		FeedLasing:         1000,
		FeedRapid:          2000,
		MinRapidDistanceMM: 0,
		PowerMin:           0,
		PowerMax:           255,
		BWThreshold:        125,
	}
}

// Validate checks the settings that do not depend on the image.
func (p Params) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"feedrate_lasing", p.FeedLasing},
		{"feedrate_rapid", p.FeedRapid},
		{"min_rapid_distance_mm", p.MinRapidDistanceMM},
		{"offset_x", p.OffsetX},
		{"offset_y", p.OffsetY},
		{"offset_z", p.OffsetZ},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return configErrorf(f.name, "must be a finite number, got %g", f.value)
		}
	}
	if p.PhysicalWidthMM != nil && p.PhysicalHeightMM != nil {
		return configErrorf("physical_width_mm", "only one of physical_width_mm and physical_height_mm may be set")
	}
	if p.PowerMin < 0 || p.PowerMin > 255 {
		return configErrorf("laser_power_min", "%d is outside 0-255", p.PowerMin)
	}
	if p.PowerMax < 0 || p.PowerMax > 255 {
		return configErrorf("laser_power_max", "%d is outside 0-255", p.PowerMax)
	}
	if p.PowerMin > p.PowerMax {
		return configErrorf("laser_power_min", "%d is greater than laser_power_max %d", p.PowerMin, p.PowerMax)
	}
	if p.BWThreshold < 0 || p.BWThreshold > 255 {
		return configErrorf("bw_threshold", "%d is outside 0-255", p.BWThreshold)
	}
	if p.FeedLasing <= 0 {
		return configErrorf("feedrate_lasing", "must be positive, got %g", p.FeedLasing)
	}
	if p.FeedRapid < 0 {
		return configErrorf("feedrate_rapid", "must not be negative, got %g", p.FeedRapid)
	}
	if p.MinRapidDistanceMM < 0 {
		return configErrorf("min_rapid_distance_mm", "must not be negative, got %g", p.MinRapidDistanceMM)
	}
	if !(p.PassSpacingMM > 0) || math.IsInf(p.PassSpacingMM, 0) {
		return fmt.Errorf("%w: pass spacing %g", ErrDegenerate, p.PassSpacingMM)
	}
	return nil
}

func (p Params) rapidFeed() float64 {
	if p.FeedRapid == 0 {
		return p.FeedLasing
	}
	return p.FeedRapid
}

// unpowered reports whether a run at power leaves no mark: the laser is off
// or at the configured minimum.
func (p Params) unpowered(power uint16) bool {
	return power == 0 || int(power) == p.PowerMin
}

func (p Params) hasOffset() bool {
	return p.OffsetX != 0 || p.OffsetY != 0 || p.OffsetZ != 0
}

// Power maps an 8 bit pixel intensity to a laser power. Without Invert the
// intensity is complemented, so black burns hardest.
func (p Params) Power(intensity uint8) uint16 {
	level := int(intensity)
	if !p.Invert {
		level = 255 - level
	}

	if p.BWMode {
		if level >= p.BWThreshold {
			return uint16(p.PowerMax)
		}
		return uint16(p.PowerMin)
	}

	return uint16(p.PowerMin + level*(p.PowerMax-p.PowerMin)/255)
}

// Geometry holds the quantities derived from the image size and Params.
type Geometry struct {
	PixelsWide, PixelsHigh int
	MMPerPixel             float64
	PassesPerPixel         int
	// PassSpacingMM is the requested spacing divided evenly by the pass count.
	PassSpacingMM float64
	WidthMM       float64
	HeightMM      float64
}

// Geometry derives the job geometry for an image of the given size.
func (p Params) Geometry(width, height int) (Geometry, error) {
	if width <= 0 || height <= 0 {
		return Geometry{}, fmt.Errorf("%w: image is %dx%d pixels", ErrDegenerate, width, height)
	}
	if err := p.Validate(); err != nil {
		return Geometry{}, err
	}

	mmPerPixel := DefaultMMPerPixel
	switch {
	case p.PhysicalWidthMM != nil:
		mmPerPixel = *p.PhysicalWidthMM / float64(width)
	case p.PhysicalHeightMM != nil:
		mmPerPixel = *p.PhysicalHeightMM / float64(height)
	}
	if !(mmPerPixel > 0) || math.IsInf(mmPerPixel, 0) {
		return Geometry{}, fmt.Errorf("%w: pixel pitch %g mm", ErrDegenerate, mmPerPixel)
	}

	passes := int(math.Ceil(mmPerPixel/p.PassSpacingMM - passEpsilon))
	if passes < 1 {
		passes = 1
	}

	return Geometry{
		PixelsWide:     width,
		PixelsHigh:     height,
		MMPerPixel:     mmPerPixel,
		PassesPerPixel: passes,
		PassSpacingMM:  p.PassSpacingMM / float64(passes),
		WidthMM:        float64(width) * mmPerPixel,
		HeightMM:       float64(height) * mmPerPixel,
	}, nil
}
