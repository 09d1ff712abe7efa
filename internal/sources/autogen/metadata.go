package autogen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

var frontMatterDelim = []byte("---")

// readFrontMatter parses the leading "---" block of a doc. Docs without one
// yield the zero value.
func (g *Generator) readFrontMatter(p string) (frontMatter, error) {
	var fm frontMatter

	data, err := fs.ReadFile(g.fsys, p)
	if err != nil {
		return fm, fmt.Errorf("failed to read doc %s: %w", g.display(p), err)
	}

	block, ok := extractFrontMatter(data)
	if !ok {
		return fm, nil
	}
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return fm, &domain.SyntaxError{Source: g.display(p), Msg: "invalid front matter", Err: err}
	}
	return fm, nil
}

// extractFrontMatter returns the YAML between the opening and closing "---"
// lines.
func extractFrontMatter(data []byte) ([]byte, bool) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, frontMatterDelim) {
		return nil, false
	}
	rest := data[len(frontMatterDelim):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return nil, false
	}
	rest = rest[nl+1:]

	if bytes.HasPrefix(rest, frontMatterDelim) {
		return nil, true
	}
	end := bytes.Index(rest, append([]byte("\n"), frontMatterDelim...))
	if end < 0 {
		return nil, false
	}
	return rest[:end], true
}

// readCategoryMeta reads the first _category_ file present in dir.
func (g *Generator) readCategoryMeta(dir string) (categoryMeta, error) {
	var meta categoryMeta
	for _, name := range categoryFiles {
		p := path.Join(dir, name)
		data, err := fs.ReadFile(g.fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return meta, fmt.Errorf("failed to read %s: %w", g.display(p), err)
		}
		if err := yaml.Unmarshal(data, &meta); err != nil {
			return meta, &domain.SyntaxError{Source: g.display(p), Msg: "invalid category metadata", Err: err}
		}
		return meta, nil
	}
	return meta, nil
}
