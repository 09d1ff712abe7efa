// Package declared holds the sidebar configuration authored directly in Go.
package declared

import (
	"context"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

// SourceName identifies this strategy in config and logs.
const SourceName = "declared"

// Load builds the declared sidebars. It is a pure function: every call
// returns a fresh, equal value.
func Load() (*domain.Config, error) {
	return domain.NewConfig(
		domain.NewSidebar("tutorialSidebar",
			domain.Doc("getting-started"),
			domain.Doc("installation"),
			domain.Doc("alternatives"),
			domain.Doc("dependencies"),
			domain.NewCategory("Concepts", domain.Docs(
				"concepts/plugins",
				"concepts/scheduler",
				"concepts/telemetry",
			)...),
			domain.NewCategory("Command Line Interface", domain.Docs(
				"cli/server",
				"cli/deploy",
				"cli/destroy",
				"cli/deployment-list",
				"cli/deployment-status",
				"cli/catalog-list",
				"cli/catalog-inspect",
			)...),
			domain.NewCategory("Plugins", domain.Docs(
				"plugins/overview",
				"plugins/besu",
				"plugins/geth",
				"plugins/lighthouse",
				"plugins/nethermind",
				"plugins/prysm",
				"plugins/teku",
			)...),
			domain.NewCategory("Use cases", domain.Docs(
				"use-cases/node-as-a-service",
				"use-cases/validator-stack",
			)...),
			domain.NewCategory("Tutorials", domain.Docs(
				"tutorials/ethereum_mainnet",
			)...),
		),
	)
}

// Source adapts Load to the sources.Source interface.
type Source struct{}

func NewSource() *Source { return &Source{} }

func (*Source) Name() string { return SourceName }

func (*Source) Load(context.Context) (*domain.Config, error) { return Load() }
