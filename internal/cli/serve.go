package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/docnav/internal/app"
)

func newServeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve sidebars over HTTP and reload them on change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.New(cmd.Context(), rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
}
