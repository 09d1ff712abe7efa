package domain

import (
	"encoding/json"
	"testing"
)

func TestConfigMarshalJSON(t *testing.T) {
	cat := NewCategory("Guides", Docs("guides/a", "guides/b")...)
	cat.Collapsed = boolPtr(false)

	cfg, err := NewConfig(
		NewSidebar("zeta", Doc("intro"), cat),
		NewSidebar("alpha", Doc("api/index")),
	)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	got, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"zeta":["intro",{"type":"category","label":"Guides","items":["guides/a","guides/b"],"collapsed":false}],"alpha":["api/index"]}`
	if string(got) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", got, want)
	}
}

func TestCategoryMarshalJSONOmitsCollapsed(t *testing.T) {
	got, err := json.Marshal(NewCategory("Tutorials", Doc("tutorials/one")))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"type":"category","label":"Tutorials","items":["tutorials/one"]}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
