package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

func sampleConfig(t *testing.T) *domain.Config {
	t.Helper()
	collapsed := true
	guides := domain.NewCategory("Guides",
		domain.Doc("guides/setup"),
		domain.NewCategory("Advanced", domain.Doc("guides/advanced/tuning")),
	)
	guides.Collapsed = &collapsed

	cfg, err := domain.NewConfig(
		domain.NewSidebar("tutorialSidebar",
			domain.Doc("getting-started"),
			domain.Doc("true"),
			guides,
		),
		domain.NewSidebar("apiSidebar", domain.Doc("api/index")),
	)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	return cfg
}

func TestRoundTrip(t *testing.T) {
	cfg := sampleConfig(t)

	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Render(cfg, f)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			back, err := Decode("sidebars."+string(f), data, f)
			if err != nil {
				t.Fatalf("Decode() error = %v\n%s", err, data)
			}
			if !cfg.Equal(back) {
				t.Errorf("round trip changed the configuration:\n%s", data)
			}
		})
	}
}

func TestRoundTripUnusualText(t *testing.T) {
	cfg, err := domain.NewConfig(domain.NewSidebar("Référence",
		domain.Doc("guides/überblick"),
		domain.NewCategory(`Rockets 🚀 "quoted" C:\/tmp };`, domain.Doc("a/b")),
	))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Render(cfg, f)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			back, err := Decode("sidebars."+string(f), data, f)
			if err != nil {
				t.Fatalf("Decode() error = %v\n%s", err, data)
			}
			if !cfg.Equal(back) {
				t.Errorf("round trip changed the configuration:\n%s", data)
			}
		})
	}
}

func TestNewConfigRejectsInvalidUTF8(t *testing.T) {
	tests := map[string]domain.Sidebar{
		"doc id":       domain.NewSidebar("docs", domain.Doc("guides/\xff")),
		"label":        domain.NewSidebar("docs", domain.NewCategory("G\xc3uides", domain.Doc("a"))),
		"sidebar name": domain.NewSidebar("do\xffcs", domain.Doc("a")),
	}
	for name, sb := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := domain.NewConfig(sb); err == nil {
				t.Error("NewConfig() error = nil, want rejection of invalid UTF-8")
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	cfg, err := domain.NewConfig(domain.NewSidebar("docs",
		domain.Doc("intro"),
		domain.NewCategory("Guides", domain.Doc("guides/a")),
	))
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}

	got, err := Render(cfg, FormatJSON)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := `{
  "docs": [
    "intro",
    {
      "type": "category",
      "label": "Guides",
      "items": [
        "guides/a"
      ]
    }
  ]
}
`
	if string(got) != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderYAMLKeepsOrder(t *testing.T) {
	got, err := Render(sampleConfig(t), FormatYAML)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	s := string(got)
	if strings.Index(s, "tutorialSidebar:") > strings.Index(s, "apiSidebar:") {
		t.Errorf("sidebar order not preserved:\n%s", s)
	}
	if !strings.Contains(s, "collapsed: true") {
		t.Errorf("collapsed flag missing:\n%s", s)
	}
	if !strings.Contains(s, `- "true"`) {
		t.Errorf("string doc id that looks like a bool was not quoted:\n%s", s)
	}
}

func TestRenderJS(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleConfig(t), FormatJS); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	s := buf.String()
	if !strings.HasPrefix(s, "// Generated by docnav. Do not edit.") {
		t.Errorf("missing generated header:\n%s", s)
	}
	if !strings.HasSuffix(s, "module.exports = sidebars;\n") {
		t.Errorf("missing module export:\n%s", s)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "YAML", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: " js ", want: FormatJS},
		{in: "toml", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"sidebars.json":     FormatJSON,
		"sidebars.yaml":     FormatYAML,
		"conf/sidebars.YML": FormatYAML,
		"sidebars.js":       FormatJS,
		"sidebars.cjs":      FormatJS,
		"sidebars":          FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestDecodeJSWithoutAssignment(t *testing.T) {
	_, err := Decode("sidebars.js", []byte("module.exports = require('./other');\n"), FormatJS)
	if !errors.Is(err, domain.ErrSyntax) {
		t.Errorf("Decode() error = %v, want ErrSyntax", err)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if _, err := Render(sampleConfig(t), Format("toml")); err == nil {
		t.Error("Render() with unknown format should fail")
	}
}
