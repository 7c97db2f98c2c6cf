package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"bitmaplaser/internal/config"
	"bitmaplaser/internal/gcode"
	"bitmaplaser/internal/machine"
	"bitmaplaser/internal/preview"
	"bitmaplaser/internal/raster"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil && !errors.Is(err, flag.ErrHelp) {
		failf("%v", err)
	}
}

func failf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

type options struct {
	cfg        config.Config
	input      string
	output     string
	configFile string
	jsonConfig string
	previewOut string
	previewRes float64
	jobID      string
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{cfg: config.Default()}
	cfg := &o.cfg

	fs := flag.NewFlagSet("bitmaplaser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.input, "input", "", "Path to the input image (PNG, JPEG, GIF, BMP, TIFF, WebP or SVG)")
	fs.StringVar(&o.output, "output", "", "Path to the output G-code file. Leave blank to write to stdout")
	fs.StringVar(&o.configFile, "config", "", "YAML or JSON file with job settings")
	fs.StringVar(&o.jsonConfig, "json-config", "", "Job settings as an inline JSON object, applied last")
	fs.StringVar(&o.previewOut, "preview", "", "Write a PNG preview of the toolpath to this path")
	fs.Float64Var(&o.previewRes, "preview-ppmm", 10, "Preview resolution in pixels per mm")
	fs.StringVar(&o.jobID, "job-id", "", "Job identifier written as the first comment (random when empty)")
	fs.BoolVar(&o.verbose, "v", false, "Verbose logging")

	fs.Float64Var(&cfg.PassSpacingMM, "mm-per-pass", cfg.PassSpacingMM, "Distance between passes (mm)")
	fs.Float64Var(&cfg.FeedrateLasing, "feedrate-lase", cfg.FeedrateLasing, "Feed rate when lasing")
	fs.Float64Var(&cfg.FeedrateRapid, "feedrate-rapid", cfg.FeedrateRapid, "Feed rate when moving between lased areas (0 uses the lasing rate)")
	fs.Float64Var(&cfg.MinRapidDistanceMM, "rapid-min-distance", cfg.MinRapidDistanceMM, "Shortest unpowered move (mm) that uses a rapid")
	fs.BoolVar(&cfg.Invert, "invert", cfg.Invert, "Burn light pixels instead of dark ones")
	fs.Func("dimension-width", "Output width in mm; keeps the aspect ratio", optionalFloat(&cfg.PhysicalWidthMM))
	fs.Func("dimension-height", "Output height in mm; keeps the aspect ratio", optionalFloat(&cfg.PhysicalHeightMM))
	fs.IntVar(&cfg.LaserPowerMin, "laser-power-min", cfg.LaserPowerMin, "Minimum laser power (0-255)")
	fs.IntVar(&cfg.LaserPowerMax, "laser-power-max", cfg.LaserPowerMax, "Maximum laser power (0-255)")
	fs.BoolVar(&cfg.BWMode, "colour-mode-bw", cfg.BWMode, "Burn black or white only, rather than grayscale")
	fs.IntVar(&cfg.BWThreshold, "colour-mode-bw-threshold", cfg.BWThreshold, "Threshold for black or white mode (0-255)")
	fs.Float64Var(&cfg.OffsetX, "offset-x", cfg.OffsetX, "X offset of the job from the origin (mm)")
	fs.Float64Var(&cfg.OffsetY, "offset-y", cfg.OffsetY, "Y offset of the job from the origin (mm)")
	fs.Float64Var(&cfg.OffsetZ, "offset-z", cfg.OffsetZ, "Z offset of the job from the origin (mm)")
	fs.StringVar(&cfg.Dialect, "dialect", cfg.Dialect, "Output dialect: "+strings.Join(machine.Names(), ", "))
	fs.IntVar(&cfg.ResampleWidthPx, "resample-width", cfg.ResampleWidthPx, "Resample the image to this many pixels wide (0 keeps the size)")
	fs.Float64Var(&cfg.SVGScale, "svg-scale", cfg.SVGScale, "Pixels per SVG user unit")

	lineNumbers := fs.Bool("line-numbers", false, "Prefix lines with N numbers")
	comments := fs.Bool("comments", true, "Include comments")
	precision := fs.Uint("precision", 3, "Decimal places for coordinates")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "line-numbers":
			cfg.Output.LineNumbers = lineNumbers
		case "comments":
			cfg.Output.IncludeComments = comments
		case "precision":
			cfg.Output.Precision = precision
		}
	})

	if o.input == "" {
		fs.Usage()
		return nil, fmt.Errorf("no input image given")
	}

	if o.configFile != "" {
		if err := cfg.LoadFile(o.configFile); err != nil {
			return nil, err
		}
	}
	if o.jsonConfig != "" {
		if err := cfg.ApplyJSON(o.jsonConfig); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func optionalFloat(dst **float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	raster.SetLogger(logger)

	dialect, err := machine.Lookup(o.cfg.Dialect)
	if err != nil {
		return err
	}
	params := o.cfg.Params()
	if err := params.Validate(); err != nil {
		return err
	}

	scriptStart := time.Now()
	start := scriptStart

	img, format, err := LoadImage(o.input, o.cfg.SVGScale)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	img = resample(img, o.cfg.ResampleWidthPx)
	logger.Info("loaded image", "path", o.input, "format", format, "bounds", img.Bounds(), "took", time.Since(start))

	start = time.Now()
	job, err := raster.PlanJob(img, params)
	if err != nil {
		return fmt.Errorf("failed to plan raster: %w", err)
	}
	doc := job.Document
	logger.Info("planned commands", "commands", doc.Len(), "took", time.Since(start))

	jobID := o.jobID
	if jobID == "" {
		jobID = uuid.New().String()
	}
	doc.Insert(&gcode.Comment{Note: "job " + jobID}, 0)
	doc.SetOverrides(o.cfg.Output)

	start = time.Now()
	program, err := doc.Render(dialect)
	if err != nil {
		return fmt.Errorf("failed to render G-code: %w", err)
	}
	bb := doc.BoundingBox()
	logger.Info("rendered program",
		"dialect", o.cfg.Dialect,
		"bytes", len(program),
		"min_x", bb.MinX, "min_y", bb.MinY, "min_z", bb.MinZ,
		"max_x", bb.MaxX, "max_y", bb.MaxY, "max_z", bb.MaxZ,
		"took", time.Since(start))

	start = time.Now()
	if o.output == "" {
		if _, err := io.WriteString(stdout, program); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(o.output, []byte(program), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("G-code written", "path", o.output, "took", time.Since(start))
	}

	if o.previewOut != "" {
		geo := job.Geometry
		if err := writePreview(doc, o.previewOut, preview.Options{
			PixelsPerMM: o.previewRes,
			LineWidthMM: geo.MMPerPixel / float64(geo.PassesPerPixel),
		}); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
		logger.Info("preview written", "path", o.previewOut)
	}

	logger.Info("done", "took", time.Since(scriptStart))
	return nil
}

func writePreview(doc *gcode.Document, path string, opts preview.Options) error {
	img := preview.Render(doc, opts)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
