package diagram

import (
	"errors"
	"strings"
)

// ErrEngine wraps failures reported by the external diagram engine.
var ErrEngine = errors.New("diagram engine failed")

// Engine turns wrapped diagram source into a bitmap and a human-readable
// description. Implementations may be remote servers or local commands;
// both are opaque to the renderer and may fail on malformed input.
type Engine interface {
	Generate(wrapped string) (image []byte, description string, err error)
}

// fallbackDescription is used when an engine reports nothing useful.
const fallbackDescription = "diagram"

// firstLine trims output to a single line suitable for error messages.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	const maxLen = 120
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return strings.TrimSpace(s)
}
