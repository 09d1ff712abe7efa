package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

const validYAML = `
tutorialSidebar:
  - getting-started
  - installation
  - type: category
    label: Concepts
    collapsed: false
    items:
      - concepts/plugins
      - concepts/scheduler
  - type: doc
    id: faq
  - Tutorials:
      - tutorials/ethereum_mainnet
apiSidebar:
  - api/index
`

func TestParseYAML(t *testing.T) {
	cfg, err := Parse("sidebars.yaml", []byte(validYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := cfg.Names(); len(got) != 2 || got[0] != "tutorialSidebar" || got[1] != "apiSidebar" {
		t.Fatalf("Names() = %v, want [tutorialSidebar apiSidebar]", got)
	}

	collapsed := false
	concepts := domain.NewCategory("Concepts", domain.Docs("concepts/plugins", "concepts/scheduler")...)
	concepts.Collapsed = &collapsed

	want, err := domain.NewConfig(
		domain.NewSidebar("tutorialSidebar",
			domain.Doc("getting-started"),
			domain.Doc("installation"),
			concepts,
			domain.Doc("faq"),
			domain.NewCategory("Tutorials", domain.Doc("tutorials/ethereum_mainnet")),
		),
		domain.NewSidebar("apiSidebar", domain.Doc("api/index")),
	)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	if !cfg.Equal(want) {
		t.Errorf("Parse() did not produce the expected configuration")
	}
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantDocs  []domain.DocRef
		wantLabel string
	}{
		{
			name: "plain",
			data: `{
  "docs": [
    "intro",
    {"type": "category", "label": "Guides", "items": ["guides/a", "guides/b"]}
  ]
}`,
			wantDocs:  []domain.DocRef{"intro", "guides/a", "guides/b"},
			wantLabel: "Guides",
		},
		{
			name:      "escaped solidus",
			data:      `{"docs": ["intro", {"type": "category", "label": "In\/Out", "items": ["guides\/a"]}]}`,
			wantDocs:  []domain.DocRef{"intro", "guides/a"},
			wantLabel: "In/Out",
		},
		{
			name:      "escaped backslash before slash",
			data:      `{"docs": [{"type": "category", "label": "C:\\/tmp \\\/x", "items": ["a"]}]}`,
			wantDocs:  []domain.DocRef{"a"},
			wantLabel: `C:\/tmp \/x`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse("sidebars.json", []byte(tt.data))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			sb, ok := cfg.Sidebar("docs")
			if !ok {
				t.Fatal("sidebar docs missing")
			}
			if got := sb.Docs(); !reflect.DeepEqual(got, tt.wantDocs) {
				t.Errorf("Docs() = %v, want %v", got, tt.wantDocs)
			}
			var label string
			for _, e := range sb.Items {
				if c, ok := e.(*domain.Category); ok {
					label = c.Label
				}
			}
			if label != tt.wantLabel {
				t.Errorf("category label = %q, want %q", label, tt.wantLabel)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantErr  error
		wantLine int
	}{
		{
			name:    "empty document",
			data:    "",
			wantErr: domain.ErrSyntax,
		},
		{
			name:    "malformed yaml",
			data:    "docs: [intro,\n",
			wantErr: domain.ErrSyntax,
		},
		{
			name:     "top level list",
			data:     "- intro\n",
			wantErr:  domain.ErrSyntax,
			wantLine: 1,
		},
		{
			name:     "sidebar not a list",
			data:     "docs: intro\n",
			wantErr:  domain.ErrSyntax,
			wantLine: 1,
		},
		{
			name:     "numeric doc id",
			data:     "docs:\n  - intro\n  - 42\n",
			wantErr:  domain.ErrSyntax,
			wantLine: 3,
		},
		{
			name:     "unsupported type",
			data:     "docs:\n  - type: link\n    href: https://example.com\n",
			wantErr:  domain.ErrSyntax,
			wantLine: 2,
		},
		{
			name:     "doc without id",
			data:     "docs:\n  - type: doc\n",
			wantErr:  domain.ErrSyntax,
			wantLine: 2,
		},
		{
			name:     "shorthand with two keys",
			data:     "docs:\n  - A: [a]\n    B: [b]\n",
			wantErr:  domain.ErrSyntax,
			wantLine: 2,
		},
		{
			name:    "duplicate sidebar key",
			data:    "docs:\n  - a\ndocs:\n  - b\n",
			wantErr: domain.ErrDuplicateSidebar,
		},
		{
			name:    "empty category items",
			data:    "docs:\n  - type: category\n    label: Empty\n    items: []\n",
			wantErr: domain.ErrEmptyCategory,
		},
		{
			name:    "category without items",
			data:    "docs:\n  - type: category\n    label: Empty\n",
			wantErr: domain.ErrEmptyCategory,
		},
		{
			name:    "empty shorthand",
			data:    "docs:\n  - Empty:\n",
			wantErr: domain.ErrEmptyCategory,
		},
		{
			name:    "empty sidebar",
			data:    "docs: []\n",
			wantErr: domain.ErrEmptySidebar,
		},
		{
			name:    "category without label",
			data:    "docs:\n  - type: category\n    items: [a]\n",
			wantErr: domain.ErrMissingLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse("sidebars.yaml", []byte(tt.data))
			if err == nil {
				t.Fatalf("Parse() = %v, want error", cfg.Names())
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), "sidebars.yaml") {
				t.Errorf("Parse() error = %q, want source name", err.Error())
			}
			if tt.wantLine > 0 {
				var synErr *domain.SyntaxError
				if !errors.As(err, &synErr) {
					t.Fatalf("Parse() error = %T, want *domain.SyntaxError", err)
				}
				if synErr.Line != tt.wantLine {
					t.Errorf("SyntaxError.Line = %d, want %d", synErr.Line, tt.wantLine)
				}
			}
		})
	}
}

func TestParseAnchors(t *testing.T) {
	data := `
shared: &common
  - intro
  - faq
docs: *common
`
	cfg, err := Parse("sidebars.yaml", []byte(data))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sb, _ := cfg.Sidebar("docs")
	if got := sb.Docs(); len(got) != 2 || got[0] != "intro" {
		t.Errorf("Docs() = %v, want [intro faq]", got)
	}
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sidebars.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := NewLoader(path)
	if l.Name() != SourceName {
		t.Errorf("Name() = %q, want %q", l.Name(), SourceName)
	}
	if l.Path() != path {
		t.Errorf("Path() = %q, want %q", l.Path(), path)
	}

	cfg, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cfg.Len())
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := l.Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader("sidebars.yaml").Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}
