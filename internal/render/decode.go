package render

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/sources/file"
)

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".js", ".cjs", ".mjs":
		return FormatJS
	default:
		return FormatJSON
	}
}

// Decode reads back output produced by Write. JS input must be in the shape
// Write emits: a single object literal assigned to a const.
func Decode(source string, data []byte, f Format) (*domain.Config, error) {
	switch f {
	case FormatJSON, FormatYAML:
		return file.Parse(source, data)
	case FormatJS:
		obj, err := extractObjectLiteral(data)
		if err != nil {
			return nil, &domain.SyntaxError{Source: source, Msg: err.Error()}
		}
		return file.Parse(source, obj)
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}

// assignedObject matches "= { ... };" up to the last closing brace.
var assignedObject = regexp.MustCompile(`(?s)=\s*(\{.*\})\s*;`)

// extractObjectLiteral returns the object literal assigned in a sidebars.js.
func extractObjectLiteral(data []byte) ([]byte, error) {
	m := assignedObject.FindSubmatch(data)
	if m == nil {
		return nil, fmt.Errorf("no object literal assignment found")
	}
	return m[1], nil
}
