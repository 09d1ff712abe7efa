package file

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// Mapper converts a parsed YAML tree to a domain.Config
type Mapper struct {
	source string
}

// NewMapper creates a new mapper; source only labels errors.
func NewMapper(source string) *Mapper {
	return &Mapper{source: source}
}

// MapConfig walks the document node. Mapping order becomes sidebar order.
func (m *Mapper) MapConfig(doc *yaml.Node) (*domain.Config, error) {
	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, m.syntax(root, "empty document")
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return nil, m.syntax(root, "empty document")
	}
	root = deref(root)
	if root.Kind != yaml.MappingNode {
		return nil, m.syntax(root, "top level must map sidebar names to entry lists")
	}

	seen := make(map[string]int, len(root.Content)/2)
	sidebars := make([]domain.Sidebar, 0, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, m.syntax(key, "sidebar name must be a string")
		}
		if line, dup := seen[key.Value]; dup {
			return nil, fmt.Errorf("%s:%d: %q already defined at line %d: %w",
				m.source, key.Line, key.Value, line, domain.ErrDuplicateSidebar)
		}
		seen[key.Value] = key.Line

		items, err := m.mapEntries(value)
		if err != nil {
			return nil, err
		}
		sidebars = append(sidebars, domain.Sidebar{Name: key.Value, Items: items})
	}

	cfg, err := domain.NewConfig(sidebars...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.source, err)
	}
	return cfg, nil
}

// mapEntries maps a sequence node. A missing or null node yields no entries
// and is left to validation.
func (m *Mapper) mapEntries(n *yaml.Node) ([]domain.Entry, error) {
	n = deref(n)
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, m.syntax(n, "expected a list of entries")
	}

	entries := make([]domain.Entry, 0, len(n.Content))
	for _, child := range n.Content {
		e, err := m.mapEntry(deref(child))
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (m *Mapper) mapEntry(n *yaml.Node) (domain.Entry, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() != "!!str" {
			return nil, m.syntax(n, "document id must be a string, got %s", n.ShortTag())
		}
		return domain.DocRef(n.Value), nil

	case yaml.MappingNode:
		if hasKey(n, "type") {
			return m.mapObject(n)
		}
		return m.mapShorthand(n)

	default:
		return nil, m.syntax(n, "entry must be a document id or an object")
	}
}

// mapObject handles {type: category|doc, ...}.
func (m *Mapper) mapObject(n *yaml.Node) (domain.Entry, error) {
	var s entrySchema
	if err := n.Decode(&s); err != nil {
		return nil, &domain.SyntaxError{
			Source: m.source, Line: n.Line, Column: n.Column,
			Msg: "invalid entry", Err: err,
		}
	}

	switch s.Type {
	case typeCategory:
		items, err := m.mapEntries(&s.Items)
		if err != nil {
			return nil, err
		}
		return &domain.Category{Label: s.Label, Items: items, Collapsed: s.Collapsed}, nil
	case typeDoc:
		if s.ID == "" {
			return nil, m.syntax(n, "doc entry without id")
		}
		return domain.DocRef(s.ID), nil
	default:
		return nil, m.syntax(n, "unsupported entry type %q", s.Type)
	}
}

// mapShorthand handles {"Label": [items]}.
func (m *Mapper) mapShorthand(n *yaml.Node) (domain.Entry, error) {
	if len(n.Content) != 2 {
		return nil, m.syntax(n, "object entry needs a type, or exactly one label key")
	}
	label, value := n.Content[0], deref(n.Content[1])
	if label.Kind != yaml.ScalarNode {
		return nil, m.syntax(label, "category label must be a string")
	}
	if value.Kind != yaml.SequenceNode && !isNull(value) {
		return nil, m.syntax(value, "category %q must map to a list", label.Value)
	}
	items, err := m.mapEntries(value)
	if err != nil {
		return nil, err
	}
	return &domain.Category{Label: label.Value, Items: items}, nil
}

func (m *Mapper) syntax(n *yaml.Node, format string, args ...interface{}) error {
	return &domain.SyntaxError{
		Source: m.source,
		Line:   n.Line,
		Column: n.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}
