// Package sources selects how the sidebar configuration is produced.
package sources

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MrSnakeDoc/docnav/internal/config"
	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/sources/autogen"
	"github.com/MrSnakeDoc/docnav/internal/sources/declared"
	"github.com/MrSnakeDoc/docnav/internal/sources/file"
)

// Source produces a validated sidebar configuration. Implementations are
// interchangeable; each Load returns a new immutable value.
type Source interface {
	Name() string
	Load(ctx context.Context) (*domain.Config, error)
}

// Watchable sources expose the filesystem paths whose changes should
// trigger a reload.
type Watchable interface {
	WatchPaths() ([]string, error)
}

// Options selects and parameterizes a Source.
type Options struct {
	Kind        string // declared | file | autogen
	SidebarFile string
	DocsDir     string
	SidebarName string
}

// OptionsFromConfig picks the source settings out of the application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Kind:        cfg.Source,
		SidebarFile: cfg.SidebarFile,
		DocsDir:     cfg.DocsDir,
		SidebarName: cfg.SidebarName,
	}
}

// New builds the Source named by opts.Kind.
func New(opts Options) (Source, error) {
	switch opts.Kind {
	case "", declared.SourceName:
		return declared.NewSource(), nil
	case file.SourceName:
		if opts.SidebarFile == "" {
			return nil, fmt.Errorf("source %q needs a sidebars file", opts.Kind)
		}
		return fileSource{file.NewLoader(opts.SidebarFile)}, nil
	case autogen.SourceName:
		if opts.DocsDir == "" {
			return nil, fmt.Errorf("source %q needs a docs directory", opts.Kind)
		}
		if opts.SidebarName == "" {
			return nil, fmt.Errorf("source %q needs a sidebar name", opts.Kind)
		}
		return autogen.NewDir(opts.DocsDir, opts.SidebarName), nil
	default:
		return nil, fmt.Errorf("unknown source %q (want declared, file or autogen)", opts.Kind)
	}
}

// fileSource adds watch support to the file loader. The parent directory is
// watched so editors that save by rename are still seen.
type fileSource struct {
	*file.Loader
}

func (s fileSource) WatchPaths() ([]string, error) {
	return []string{filepath.Dir(s.Path())}, nil
}
