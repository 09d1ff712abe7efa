// Package cli holds the docnav command tree.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/docnav/internal/config"
	"github.com/MrSnakeDoc/docnav/internal/logger"
)

const (
	flagSource      = "source"
	flagFile        = "file"
	flagDocsDir     = "docs-dir"
	flagSidebarName = "sidebar-name"
	flagLogLevel    = "log-level"
)

// runtime is what every subcommand gets after flags are resolved.
type runtime struct {
	cfg    *config.Config
	logger logger.Logger
}

// Execute runs the CLI; SIGINT/SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Environment variables configure every
// command; persistent flags override them.
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:           "docnav",
		Short:         "Load, validate, render and serve documentation sidebars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String(flagSource, "", "Sidebar source: declared, file or autogen (env DOCNAV_SOURCE)")
	pf.String(flagFile, "", "Sidebars YAML/JSON file for --source=file (env DOCNAV_SIDEBAR_FILE)")
	pf.String(flagDocsDir, "", "Docs directory for --source=autogen (env DOCNAV_DOCS_DIR)")
	pf.String(flagSidebarName, "", "Sidebar name for --source=autogen (env DOCNAV_SIDEBAR_NAME)")
	pf.String(flagLogLevel, "", "Log level: debug, info, warn, error (env DOCNAV_LOG_LEVEL)")

	rootCmd.AddCommand(
		newBuildCmd(rt),
		newCheckCmd(rt),
		newServeCmd(rt),
		newVersionCmd(),
	)
	return rootCmd
}

func (rt *runtime) init(cmd *cobra.Command) error {
	cfg := config.Load()

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override(flagSource, &cfg.Source)
	override(flagFile, &cfg.SidebarFile)
	override(flagDocsDir, &cfg.DocsDir)
	override(flagSidebarName, &cfg.SidebarName)
	override(flagLogLevel, &cfg.LogLevel)

	// A file or docs dir given on the command line implies its source.
	if !flags.Changed(flagSource) {
		switch {
		case flags.Changed(flagFile):
			cfg.Source = config.SourceFile
		case flags.Changed(flagDocsDir):
			cfg.Source = config.SourceAutogen
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	rt.cfg = cfg
	rt.logger = logger.New(cfg.LogLevel, cfg.PrettyLog)
	rt.logger.Debugf("cfg: %+v", cfg.Redacted())
	return nil
}
