package domain

// Sidebar is one named navigation tree.
type Sidebar struct {
	Name  string
	Items []Entry
}

// NewSidebar is a literal helper.
func NewSidebar(name string, items ...Entry) Sidebar {
	return Sidebar{Name: name, Items: items}
}

// Docs flattens the sidebar into reading order. This is the order used for
// next/previous navigation.
func (s Sidebar) Docs() []DocRef {
	var out []DocRef
	walk(s.Items, nil, func(ref DocRef, _ []string) {
		out = append(out, ref)
	})
	return out
}

// Walk visits every DocRef depth-first in rendered order. trail holds the
// labels of the enclosing categories, outermost first; it is reused between
// calls and must be copied if retained.
func (s Sidebar) Walk(fn func(ref DocRef, trail []string)) {
	walk(s.Items, nil, fn)
}

func walk(items []Entry, trail []string, fn func(DocRef, []string)) {
	for _, e := range items {
		switch v := e.(type) {
		case DocRef:
			fn(v, trail)
		case *Category:
			if v == nil {
				continue
			}
			walk(v.Items, append(trail, v.Label), fn)
		}
	}
}

// Config is the loaded sidebar configuration: sidebar name -> entries, in
// authoring order. It is only built by NewConfig and is read-only afterwards.
type Config struct {
	sidebars []Sidebar
	byName   map[string]int
}

// NewConfig validates the sidebars and returns an immutable Config.
// The input is deep-copied.
func NewConfig(sidebars ...Sidebar) (*Config, error) {
	cfg := &Config{
		sidebars: make([]Sidebar, 0, len(sidebars)),
		byName:   make(map[string]int, len(sidebars)),
	}
	for _, sb := range sidebars {
		cfg.sidebars = append(cfg.sidebars, Sidebar{
			Name:  sb.Name,
			Items: cloneEntries(sb.Items),
		})
	}
	if err := Validate(cfg.sidebars); err != nil {
		return nil, err
	}
	for i, sb := range cfg.sidebars {
		cfg.byName[sb.Name] = i
	}
	return cfg, nil
}

// Names returns sidebar names in authoring order.
func (c *Config) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.sidebars))
	for _, sb := range c.sidebars {
		names = append(names, sb.Name)
	}
	return names
}

// Sidebar looks up a sidebar by name. The returned entries are a copy.
func (c *Config) Sidebar(name string) (Sidebar, bool) {
	if c == nil {
		return Sidebar{}, false
	}
	i, ok := c.byName[name]
	if !ok {
		return Sidebar{}, false
	}
	sb := c.sidebars[i]
	return Sidebar{Name: sb.Name, Items: cloneEntries(sb.Items)}, true
}

// Sidebars returns a deep copy of all sidebars in authoring order.
func (c *Config) Sidebars() []Sidebar {
	if c == nil {
		return nil
	}
	out := make([]Sidebar, 0, len(c.sidebars))
	for _, sb := range c.sidebars {
		out = append(out, Sidebar{Name: sb.Name, Items: cloneEntries(sb.Items)})
	}
	return out
}

// Len is the number of sidebars.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sidebars)
}

// Equal reports order-preserving structural equality.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Len() != other.Len() {
		return false
	}
	for i := range c.sidebars {
		a, b := c.sidebars[i], other.sidebars[i]
		if a.Name != b.Name || !entriesEqual(a.Items, b.Items) {
			return false
		}
	}
	return true
}

func entriesEqual(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch x := a[i].(type) {
		case DocRef:
			y, ok := b[i].(DocRef)
			if !ok || x != y {
				return false
			}
		case *Category:
			y, ok := b[i].(*Category)
			if !ok || x.Label != y.Label || !boolPtrEqual(x.Collapsed, y.Collapsed) {
				return false
			}
			if !entriesEqual(x.Items, y.Items) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
