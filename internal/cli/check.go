package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/render"
	"github.com/MrSnakeDoc/docnav/internal/sources"
	"github.com/MrSnakeDoc/docnav/internal/sources/autogen"
)

// errCheckFailed is returned after the failures have been printed.
var errCheckFailed = errors.New("check failed")

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)

func newCheckCmd(rt *runtime) *cobra.Command {
	var (
		against    string
		verifyRefs string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate sidebars, optionally verify doc references and detect drift",
		Long: "Loads and validates the configured sidebars. With --verify-refs, every\n" +
			"document id must exist in the given docs directory. With --against, the\n" +
			"loaded sidebars must equal a previously rendered file; a diff is printed\n" +
			"when they do not.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			source, err := sources.New(sources.OptionsFromConfig(rt.cfg))
			if err != nil {
				return err
			}
			cfg, err := source.Load(cmd.Context())
			if err != nil {
				printFailures(w, "load "+source.Name(), err)
				return errCheckFailed
			}
			fmt.Fprintf(w, "%s sidebars valid (%d sidebar(s) from %s)\n", okMark("✓"), cfg.Len(), source.Name())

			failed := false
			if verifyRefs != "" {
				if !checkReferences(cmd.Context(), w, cfg, verifyRefs) {
					failed = true
				}
			}
			if against != "" {
				ok, err := checkDrift(w, cfg, against)
				if err != nil {
					return err
				}
				if !ok {
					failed = true
				}
			}

			if failed {
				return errCheckFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&against, "against", "", "Rendered sidebars file (json, yaml or js) to compare with")
	cmd.Flags().StringVar(&verifyRefs, "verify-refs", "", "Docs directory every document id must exist in")
	return cmd
}

func checkReferences(ctx context.Context, w io.Writer, cfg *domain.Config, docsDir string) bool {
	known, err := autogen.NewDir(docsDir, "").Catalog(ctx)
	if err != nil {
		printFailures(w, "scan "+docsDir, err)
		return false
	}
	if err := domain.VerifyReferences(cfg, known); err != nil {
		printFailures(w, "references", err)
		return false
	}
	fmt.Fprintf(w, "%s all references resolve (%d docs in %s)\n", okMark("✓"), len(known), docsDir)
	return true
}

// checkDrift compares cfg with a rendered file and prints a line diff of the
// JSON renderings when they differ.
func checkDrift(w io.Writer, cfg *domain.Config, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	rendered, err := render.Decode(path, data, render.FormatFromPath(path))
	if err != nil {
		printFailures(w, "parse "+path, err)
		return false, nil
	}
	if cfg.Equal(rendered) {
		fmt.Fprintf(w, "%s %s is up to date\n", okMark("✓"), path)
		return true, nil
	}

	want, err := render.Render(cfg, render.FormatJSON)
	if err != nil {
		return false, err
	}
	have, err := render.Render(rendered, render.FormatJSON)
	if err != nil {
		return false, err
	}

	fmt.Fprintf(w, "%s %s is out of date:\n", failMark("✗"), path)
	fmt.Fprint(w, lineDiff(string(have), string(want)))
	return false, nil
}

// lineDiff renders a line-level diff from a to b.
func lineDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	return dmp.DiffPrettyText(diffs)
}

func printFailures(w io.Writer, what string, err error) {
	errs := multierr.Errors(err)
	fmt.Fprintf(w, "%s %s: %d problem(s)\n", failMark("✗"), what, len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "    %v\n", e)
	}
}
