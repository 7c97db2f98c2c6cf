package machine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bitmaplaser/internal/gcode"
)

var ErrUnknownDialect = errors.New("unknown dialect")

var dialects = map[string]gcode.Dialect{
	"base":       Base{},
	"marlin":     Marlin{},
	"grbl":       GRBL{},
	"arc-radius": ArcRadius{},
}

// Lookup returns the dialect registered under name. Names are case
// insensitive.
func Lookup(name string) (gcode.Dialect, error) {
	d, ok := dialects[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownDialect, name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names lists the registered dialect names in sorted order.
func Names() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
