// Package gcode holds the machine-agnostic instruction set and the Document
// that collects instructions for a job and renders them through a Dialect.
package gcode

import "time"

type Units int

const (
	Millimeters Units = iota
	Inches
)

type PositioningMode int

const (
	Absolute PositioningMode = iota
	Relative
)

type MoveKind int

const (
	RapidMove MoveKind = iota
	ControlledMove
)

type ArcDirection int

const (
	Clockwise ArcDirection = iota
	CounterClockwise
)

// Command is one abstract machine instruction. The set of implementations is
// closed; every Command carries an optional human readable annotation.
type Command interface {
	Annotation() string
	isCommand()
}

type SetUnits struct {
	Units Units
	Note  string
}

type SetPositioning struct {
	Mode PositioningMode
	Note string
}

// LinearMove moves the tool in a straight line. A nil axis leaves that axis
// unchanged and a nil Feed lets the dialect pick its default feed rate.
type LinearMove struct {
	Kind MoveKind
	X    *float64
	Y    *float64
	Z    *float64
	Feed *float64
	Note string
}

// ArcMove is a circular move in the XY plane. The center offsets are
// relative to the start point of the arc.
type ArcMove struct {
	Direction     ArcDirection
	EndX          float64
	EndY          float64
	CenterOffsetX float64
	CenterOffsetY float64
	Note          string
}

// ToolState sets the abstract tool intensity in the range 0-255. What that
// means physically is up to the dialect.
type ToolState struct {
	Power uint16
	Note  string
}

type Dwell struct {
	Duration time.Duration
	Note     string
}

type Comment struct {
	Note string
}

// Blank is a pure formatting separator.
type Blank struct{}

func (c *SetUnits) Annotation() string       { return c.Note }
func (c *SetPositioning) Annotation() string { return c.Note }
func (c *LinearMove) Annotation() string     { return c.Note }
func (c *ArcMove) Annotation() string        { return c.Note }
func (c *ToolState) Annotation() string      { return c.Note }
func (c *Dwell) Annotation() string          { return c.Note }
func (c *Comment) Annotation() string        { return c.Note }
func (c *Blank) Annotation() string          { return "" }

func (*SetUnits) isCommand()       {}
func (*SetPositioning) isCommand() {}
func (*LinearMove) isCommand()     {}
func (*ArcMove) isCommand()        {}
func (*ToolState) isCommand()      {}
func (*Dwell) isCommand()          {}
func (*Comment) isCommand()        {}
func (*Blank) isCommand()          {}

// Rapid starts a rapid positioning move with every axis unset.
func Rapid() *LinearMove {
	return &LinearMove{Kind: RapidMove}
}

// Feed starts a controlled move with every axis unset.
func Feed() *LinearMove {
	return &LinearMove{Kind: ControlledMove}
}

func (m *LinearMove) WithX(v float64) *LinearMove {
	m.X = &v
	return m
}

func (m *LinearMove) WithY(v float64) *LinearMove {
	m.Y = &v
	return m
}

func (m *LinearMove) WithZ(v float64) *LinearMove {
	m.Z = &v
	return m
}

func (m *LinearMove) WithFeed(v float64) *LinearMove {
	m.Feed = &v
	return m
}

func (m *LinearMove) WithNote(note string) *LinearMove {
	m.Note = note
	return m
}
