package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/render"
	"github.com/MrSnakeDoc/docnav/internal/sources"
)

func newBuildCmd(rt *runtime) *cobra.Command {
	var (
		out    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Load and validate sidebars, then render them for the site generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := resolveFormat(format, out)
			if err != nil {
				return err
			}

			source, err := sources.New(sources.OptionsFromConfig(rt.cfg))
			if err != nil {
				return err
			}
			cfg, err := source.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load sidebars from %s: %w", source.Name(), err)
			}
			rt.logger.Debug("sidebars loaded",
				logger.String("source", source.Name()),
				logger.Strings("sidebars", cfg.Names()))

			data, err := render.Render(cfg, f)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}

			color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(),
				"✓ wrote %s (%s, %d sidebar(s) from %s)\n", out, f, cfg.Len(), source.Name())
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, stdout when empty or -")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json, yaml or js (default from --out extension, else json)")
	return cmd
}

// resolveFormat prefers an explicit format, then the output extension.
func resolveFormat(format, out string) (render.Format, error) {
	if format != "" {
		return render.ParseFormat(format)
	}
	if out != "" && out != "-" {
		return render.FormatFromPath(out), nil
	}
	return render.FormatJSON, nil
}
