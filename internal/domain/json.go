package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// categoryJSON is the generator's wire shape for a category.
type categoryJSON struct {
	Type      EntryKind `json:"type"`
	Label     string    `json:"label"`
	Items     entryList `json:"items"`
	Collapsed *bool     `json:"collapsed,omitempty"`
}

type entryList []Entry

func (l entryList) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(l))
	for _, e := range l {
		raw, err := marshalEntry(e)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

func marshalEntry(e Entry) ([]byte, error) {
	switch v := e.(type) {
	case DocRef:
		return json.Marshal(string(v))
	case *Category:
		return v.MarshalJSON()
	default:
		return nil, fmt.Errorf("unsupported entry %T", e)
	}
}

// MarshalJSON renders {"type":"category","label":...,"items":[...]}.
func (c *Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(categoryJSON{
		Type:      KindCategory,
		Label:     c.Label,
		Items:     entryList(c.Items),
		Collapsed: c.Collapsed,
	})
}

// MarshalItemsJSON renders one sidebar's entry list.
func (s Sidebar) MarshalItemsJSON() ([]byte, error) {
	return entryList(s.Items).MarshalJSON()
}

// MarshalJSON renders the config as a JSON object whose keys keep authoring
// order, which encoding/json maps cannot do.
func (c *Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sb := range c.Sidebars() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sb.Name)
		if err != nil {
			return nil, err
		}
		items, err := sb.MarshalItemsJSON()
		if err != nil {
			return nil, fmt.Errorf("sidebar %q: %w", sb.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(items)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
