// Package diagram converts embedded diagram descriptions to bitmap images
// through an external engine, caching results by source-text hash.
package diagram

import (
	"errors"
	"fmt"
	"strings"
)

// Supported dialect names, as they appear in fenced code block info-strings.
const (
	KindPlantUML = "plantuml"
	KindDitaa    = "ditaa"
	KindDot      = "dot"
	KindSalt     = "salt"
	KindGantt    = "gantt"
	KindMindmap  = "mindmap"
)

// ErrUnknownKind indicates a dialect name outside the supported set.
var ErrUnknownKind = errors.New("unknown diagram dialect")

// markers maps each dialect to the word of its @start/@end pair.
// PlantUML is the irregular entry: blocks are tagged "plantuml" but the
// engine expects @startuml/@enduml.
var markers = map[string]string{
	KindPlantUML: "uml",
	KindDitaa:    "ditaa",
	KindDot:      "dot",
	KindSalt:     "salt",
	KindGantt:    "gantt",
	KindMindmap:  "mindmap",
}

// Block is one diagram description lifted from a fenced code block.
// Source is the literal block content without wrapping markers.
type Block struct {
	Kind   string
	Source string
}

// KindForInfo reports whether an info-string names a supported dialect.
// Only the first word of the info-string is considered, case-insensitively.
func KindForInfo(info string) (string, bool) {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return "", false
	}
	kind := strings.ToLower(fields[0])
	if _, ok := markers[kind]; !ok {
		return "", false
	}
	return kind, true
}

// Wrap surrounds the block source with the dialect's start and end markers,
// producing the exact text the engine consumes.
func (b Block) Wrap() (string, error) {
	m, ok := markers[b.Kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, b.Kind)
	}

	src := b.Source
	if src != "" && !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	return "@start" + m + "\n" + src + "@end" + m + "\n", nil
}
