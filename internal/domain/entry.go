package domain

// EntryKind tags the two shapes a navigation entry can take.
type EntryKind string

const (
	KindDoc      EntryKind = "doc"
	KindCategory EntryKind = "category"
)

// Entry is a single navigation item: either a DocRef or a *Category.
//
// The set of implementations is closed (see isEntry), so a type switch over
// DocRef and *Category is exhaustive.
type Entry interface {
	Kind() EntryKind
	isEntry()
}

// DocRef names one document known to the documentation generator.
// Example: concepts/scheduler
type DocRef string

func (DocRef) Kind() EntryKind { return KindDoc }
func (DocRef) isEntry()        {}

// Category is a labelled, collapsible grouping of entries.
type Category struct {
	// Label is the human readable section title.
	Label string

	// Items are rendered in this order. Must not be empty.
	Items []Entry

	// Collapsed is optional; nil leaves the decision to the generator.
	Collapsed *bool
}

func (*Category) Kind() EntryKind { return KindCategory }
func (*Category) isEntry()        {}

// Doc is a small helper for building literals.
func Doc(id string) DocRef { return DocRef(id) }

// NewCategory builds a category from its label and items.
func NewCategory(label string, items ...Entry) *Category {
	return &Category{Label: label, Items: items}
}

// Docs turns a list of ids into entries, preserving order.
func Docs(ids ...string) []Entry {
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, DocRef(id))
	}
	return entries
}

// cloneEntries deep-copies an entry list so a Config never shares
// category pointers with its caller.
func cloneEntries(in []Entry) []Entry {
	if in == nil {
		return nil
	}
	out := make([]Entry, 0, len(in))
	for _, e := range in {
		switch v := e.(type) {
		case DocRef:
			out = append(out, v)
		case *Category:
			out = append(out, v.clone())
		default:
			out = append(out, e)
		}
	}
	return out
}

func (c *Category) clone() *Category {
	if c == nil {
		return nil
	}
	cp := &Category{
		Label: c.Label,
		Items: cloneEntries(c.Items),
	}
	if c.Collapsed != nil {
		v := *c.Collapsed
		cp.Collapsed = &v
	}
	return cp
}
