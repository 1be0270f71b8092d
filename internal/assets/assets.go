// Package assets provides the embedded stylesheets applied to rendered pages.
package assets

import (
	"embed"
	"errors"
	"fmt"
)

//go:embed styles/*.css
var styles embed.FS

// ErrStyleNotFound indicates the named style does not exist.
var ErrStyleNotFound = errors.New("style not found")

// DefaultStyleName is applied when no style is configured.
const DefaultStyleName = "default"

// LoadStyle returns the CSS for a named embedded style.
// The name should not include the .css extension.
func LoadStyle(name string) (string, error) {
	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}
