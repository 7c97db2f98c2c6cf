package gcode

import "strconv"

// OutputProperties controls how rendered lines are laid out.
type OutputProperties struct {
	LineEnding      string
	LineNumbers     bool
	IncludeComments bool
	Precision       uint
}

// Overrides holds document level output settings. A nil field falls back to
// the dialect default.
type Overrides struct {
	LineEnding      *string `yaml:"line_ending"`
	LineNumbers     *bool   `yaml:"line_numbers"`
	IncludeComments *bool   `yaml:"include_comments"`
	Precision       *uint   `yaml:"precision"`
}

// Merge returns base with every non-nil override applied.
func Merge(base OutputProperties, o Overrides) OutputProperties {
	if o.LineEnding != nil {
		base.LineEnding = *o.LineEnding
	}
	if o.LineNumbers != nil {
		base.LineNumbers = *o.LineNumbers
	}
	if o.IncludeComments != nil {
		base.IncludeComments = *o.IncludeComments
	}
	if o.Precision != nil {
		base.Precision = *o.Precision
	}
	return base
}

// FormatNumber renders v rounded to precision decimal places. Negative zero
// is printed without its sign.
func FormatNumber(v float64, precision uint) string {
	s := strconv.FormatFloat(v, 'f', int(precision), 64)
	if s[0] == '-' {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == 0 {
			return s[1:]
		}
	}
	return s
}
