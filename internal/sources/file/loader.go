// Package file loads sidebars from a YAML or JSON file.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// Loader handles loading and parsing of a sidebars file
type Loader struct {
	filePath string
}

// NewLoader creates a new sidebars file loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

func (l *Loader) Name() string { return SourceName }

// Path is the file this loader reads.
func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the sidebars file
func (l *Loader) Load(ctx context.Context) (*domain.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sidebars file: %w", err)
	}

	return Parse(l.filePath, data)
}

// Parse decodes sidebars from YAML or JSON (JSON is read as YAML).
// source only labels errors.
func Parse(source string, data []byte) (*domain.Config, error) {
	if json.Valid(data) {
		data = unescapeSolidus(data)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.SyntaxError{Source: source, Msg: "failed to parse sidebars", Err: err}
	}

	return NewMapper(source).MapConfig(&doc)
}

// unescapeSolidus rewrites the JSON escape \/ to /, which YAML does not
// accept inside double-quoted scalars. An escaped backslash is copied as is.
func unescapeSolidus(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\/`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\\' || i+1 == len(data) {
			out = append(out, c)
			continue
		}
		if data[i+1] == '/' {
			out = append(out, '/')
		} else {
			out = append(out, c, data[i+1])
		}
		i++
	}
	return out
}
