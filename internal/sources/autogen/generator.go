// Package autogen synthesizes a sidebar by scanning a docs directory.
package autogen

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// Generator builds one sidebar from the layout of a docs tree:
// directories become categories, markdown files become doc references.
type Generator struct {
	fsys        fs.FS
	root        string // on-disk root, empty for in-memory filesystems
	sidebarName string
}

// New creates a generator over any filesystem.
func New(fsys fs.FS, sidebarName string) *Generator {
	return &Generator{fsys: fsys, sidebarName: sidebarName}
}

// NewDir creates a generator over a directory on disk.
func NewDir(dir, sidebarName string) *Generator {
	return &Generator{fsys: os.DirFS(dir), root: dir, sidebarName: sidebarName}
}

func (g *Generator) Name() string { return SourceName }

// Load scans the tree and returns a single-sidebar config.
func (g *Generator) Load(ctx context.Context) (*domain.Config, error) {
	items, err := g.scan(ctx, ".", "")
	if err != nil {
		return nil, err
	}
	return domain.NewConfig(domain.Sidebar{Name: g.sidebarName, Items: items})
}

// Catalog returns every doc id the tree defines, including docs the sidebar
// would reach through categories.
func (g *Generator) Catalog(ctx context.Context) (map[string]bool, error) {
	items, err := g.scan(ctx, ".", "")
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool)
	domain.Sidebar{Items: items}.Walk(func(ref domain.DocRef, _ []string) {
		known[string(ref)] = true
	})
	return known, nil
}

// WatchPaths lists every directory of an on-disk tree; fsnotify watches are
// not recursive.
func (g *Generator) WatchPaths() ([]string, error) {
	if g.root == "" {
		return nil, nil
	}
	var dirs []string
	err := fs.WalkDir(g.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != "." && ignored(d.Name()) {
			return fs.SkipDir
		}
		dirs = append(dirs, filepath.Join(g.root, filepath.FromSlash(p)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list docs directories: %w", err)
	}
	return dirs, nil
}

// node is an entry plus what it sorts by.
type node struct {
	entry    domain.Entry
	position *float64
	name     string
}

func (g *Generator) scan(ctx context.Context, dir, idPrefix string) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := fs.ReadDir(g.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs directory %s: %w", g.display(dir), err)
	}

	var nodes []node
	for _, de := range dirEntries {
		name := de.Name()
		if ignored(name) {
			continue
		}
		p := path.Join(dir, name)

		if de.IsDir() {
			items, err := g.scan(ctx, p, path.Join(idPrefix, stripNumberPrefix(name)))
			if err != nil {
				return nil, err
			}
			// A directory without docs renders nothing.
			if len(items) == 0 {
				continue
			}
			meta, err := g.readCategoryMeta(p)
			if err != nil {
				return nil, err
			}
			label := meta.Label
			if label == "" {
				label = stripNumberPrefix(name)
			}
			nodes = append(nodes, node{
				entry:    &domain.Category{Label: label, Items: items, Collapsed: meta.Collapsed},
				position: meta.Position,
				name:     name,
			})
			continue
		}

		ext := docExtension(name)
		if ext == "" {
			continue
		}
		fm, err := g.readFrontMatter(p)
		if err != nil {
			return nil, err
		}
		base := stripNumberPrefix(strings.TrimSuffix(name, ext))
		if fm.ID != "" {
			base = fm.ID
		}
		nodes = append(nodes, node{
			entry:    domain.DocRef(path.Join(idPrefix, base)),
			position: fm.SidebarPosition,
			name:     name,
		})
	}

	sortNodes(nodes)

	entries := make([]domain.Entry, 0, len(nodes))
	for _, n := range nodes {
		entries = append(entries, n.entry)
	}
	return entries, nil
}

// sortNodes puts positioned nodes first by ascending position, then the rest
// by file name.
func sortNodes(nodes []node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		switch {
		case a.position != nil && b.position != nil:
			if *a.position != *b.position {
				return *a.position < *b.position
			}
			return a.name < b.name
		case a.position != nil:
			return true
		case b.position != nil:
			return false
		default:
			return a.name < b.name
		}
	})
}

func (g *Generator) display(p string) string {
	if g.root == "" {
		return p
	}
	return filepath.Join(g.root, filepath.FromSlash(p))
}

var numberPrefix = regexp.MustCompile(`^\d+\s*[-_.]+\s*`)

// stripNumberPrefix drops ordering prefixes: "01-intro" -> "intro".
// Names that would become empty are kept as-is.
func stripNumberPrefix(name string) string {
	stripped := numberPrefix.ReplaceAllString(name, "")
	if stripped == "" {
		return name
	}
	return stripped
}

func ignored(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

func docExtension(name string) string {
	for _, ext := range docExtensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return ext
		}
	}
	return ""
}
