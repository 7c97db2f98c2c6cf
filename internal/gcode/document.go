package gcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("gcode: unknown command kind")
	ErrNoDialect      = errors.New("gcode: no dialect selected")
)

// BoundingBox is the axis aligned volume enclosing every positional command
// of a Document. It always contains the origin.
type BoundingBox struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

func (b BoundingBox) Width() float64  { return b.MaxX - b.MinX }
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

func (b *BoundingBox) include(x, y, z float64) {
	b.MinX = min(b.MinX, x)
	b.MinY = min(b.MinY, y)
	b.MinZ = min(b.MinZ, z)
	b.MaxX = max(b.MaxX, x)
	b.MaxY = max(b.MaxY, y)
	b.MaxZ = max(b.MaxZ, z)
}

// Document is an ordered list of commands making up one job.
type Document struct {
	commands  []Command
	bounds    BoundingBox
	overrides Overrides
}

func NewDocument() *Document {
	return &Document{}
}

// Append adds c to the end of the document.
func (d *Document) Append(c Command) {
	d.commands = append(d.commands, c)
	d.track(c)
}

// Insert adds c before position pos. Positions outside the document are
// clamped to its start or end.
func (d *Document) Insert(c Command, pos int) {
	pos = max(0, min(pos, len(d.commands)))
	d.commands = append(d.commands, nil)
	copy(d.commands[pos+1:], d.commands[pos:])
	d.commands[pos] = c
	d.track(c)
}

// track grows the bounding box for move commands. An unset axis counts as 0.
func (d *Document) track(c Command) {
	switch m := c.(type) {
	case *LinearMove:
		d.bounds.include(valueOrZero(m.X), valueOrZero(m.Y), valueOrZero(m.Z))
	case *ArcMove:
		d.bounds.include(m.EndX, m.EndY, 0)
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Translate shifts every coordinate that is set on a move command. Unset
// coordinates stay unset. The bounding box is rebuilt afterwards.
func (d *Document) Translate(dx, dy, dz float64) {
	d.bounds = BoundingBox{}
	for _, c := range d.commands {
		switch m := c.(type) {
		case *LinearMove:
			shift(m.X, dx)
			shift(m.Y, dy)
			shift(m.Z, dz)
		case *ArcMove:
			m.EndX += dx
			m.EndY += dy
		}
		d.track(c)
	}
}

func shift(v *float64, by float64) {
	if v != nil {
		*v += by
	}
}

func (d *Document) Len() int { return len(d.commands) }

// Commands returns the commands in job order. Callers must not modify them.
func (d *Document) Commands() []Command { return d.commands }

func (d *Document) BoundingBox() BoundingBox { return d.bounds }

// SetOverrides replaces the document level output settings.
func (d *Document) SetOverrides(o Overrides) { d.overrides = o }

func (d *Document) Overrides() Overrides { return d.overrides }

// Render produces the full program text for dialect. Either the whole
// program is returned or an error, never a partial program.
func (d *Document) Render(dialect Dialect) (string, error) {
	if dialect == nil {
		return "", ErrNoDialect
	}

	props := Merge(dialect.Defaults(), d.overrides)
	width := len(strconv.Itoa(len(d.commands)))
	lineNumber := 1

	var sb strings.Builder
	for _, c := range d.commands {
		lines, err := dispatch(dialect, c, props)
		if err != nil {
			return "", err
		}
		if len(lines) == 0 {
			lines = []string{""}
		}

		_, blank := c.(*Blank)
		for _, line := range lines {
			if props.IncludeComments && c.Annotation() != "" {
				line += " ; " + c.Annotation()
			}
			line = strings.TrimSpace(line)

			if line == "" {
				if blank {
					sb.WriteString(props.LineEnding)
				}
				continue
			}

			if props.LineNumbers {
				fmt.Fprintf(&sb, "N%0*d ", width, lineNumber)
			}
			sb.WriteString(line)
			sb.WriteString(props.LineEnding)
			lineNumber++
		}
	}

	return sb.String(), nil
}
