// Package render writes a sidebar configuration in the formats the
// documentation generator reads.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatJS   Format = "js"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatJS}

// ParseFormat accepts a format name, case-insensitively. "yml" is an alias.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatJS:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, yaml or js)", s)
	}
}

// Render returns cfg encoded as f.
func Render(cfg *domain.Config, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, cfg, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes cfg as f into w.
func Write(w io.Writer, cfg *domain.Config, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, cfg)
	case FormatYAML:
		return writeYAML(w, cfg)
	case FormatJS:
		return writeJS(w, cfg)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

func indentedJSON(cfg *domain.Config) ([]byte, error) {
	raw, err := cfg.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sidebars: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent sidebars: %w", err)
	}
	return out.Bytes(), nil
}

func writeJSON(w io.Writer, cfg *domain.Config) error {
	data, err := indentedJSON(cfg)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

const jsHeader = `// Generated by docnav. Do not edit.

// @ts-check

/** @type {import('@docusaurus/plugin-content-docs').SidebarsConfig} */
const sidebars = `

func writeJS(w io.Writer, cfg *domain.Config) error {
	data, err := indentedJSON(cfg)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString(jsHeader)
	buf.Write(data)
	buf.WriteString(";\n\nmodule.exports = sidebars;\n")
	_, err = w.Write(buf.Bytes())
	return err
}

func writeYAML(w io.Writer, cfg *domain.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToNode(cfg)); err != nil {
		return fmt.Errorf("failed to encode sidebars yaml: %w", err)
	}
	return enc.Close()
}

// ToNode builds an order-preserving YAML tree of cfg.
func ToNode(cfg *domain.Config) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, sb := range cfg.Sidebars() {
		root.Content = append(root.Content, str(sb.Name), entriesNode(sb.Items))
	}
	return root
}

func entriesNode(items []domain.Entry) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, e := range items {
		switch v := e.(type) {
		case domain.DocRef:
			seq.Content = append(seq.Content, str(string(v)))
		case *domain.Category:
			m := &yaml.Node{Kind: yaml.MappingNode}
			m.Content = append(m.Content,
				str("type"), str(string(domain.KindCategory)),
				str("label"), str(v.Label),
				str("items"), entriesNode(v.Items),
			)
			if v.Collapsed != nil {
				m.Content = append(m.Content, str("collapsed"),
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(*v.Collapsed)})
			}
			seq.Content = append(seq.Content, m)
		}
	}
	return seq
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}
