package gcode

import "fmt"

// Dialect turns abstract commands into the literal lines understood by one
// machine or firmware. Each method may return any number of lines, including
// none. Implementations are stateless.
type Dialect interface {
	Defaults() OutputProperties

	Units(c *SetUnits, p OutputProperties) []string
	Positioning(c *SetPositioning, p OutputProperties) []string
	Linear(c *LinearMove, p OutputProperties) []string
	Arc(c *ArcMove, p OutputProperties) []string
	Tool(c *ToolState, p OutputProperties) []string
	Dwell(c *Dwell, p OutputProperties) []string
	Comment(c *Comment, p OutputProperties) []string
	Blank(c *Blank, p OutputProperties) []string
}

func dispatch(d Dialect, c Command, p OutputProperties) ([]string, error) {
	switch c := c.(type) {
	case *SetUnits:
		return d.Units(c, p), nil
	case *SetPositioning:
		return d.Positioning(c, p), nil
	case *LinearMove:
		return d.Linear(c, p), nil
	case *ArcMove:
		return d.Arc(c, p), nil
	case *ToolState:
		return d.Tool(c, p), nil
	case *Dwell:
		return d.Dwell(c, p), nil
	case *Comment:
		return d.Comment(c, p), nil
	case *Blank:
		return d.Blank(c, p), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, c)
	}
}
