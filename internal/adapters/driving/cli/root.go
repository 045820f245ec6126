// Package cli implements the command-line interface using cobra.
// Commands hold no business logic; they parse flags, call driving
// ports and format output.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driven"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driving"
	"github.com/custodia-labs/margin-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose enables debug logging on stderr.
var verbose bool

// Injected services. main wires concrete implementations through the
// setters below before Execute runs.
var (
	annotationService driving.AnnotationService
	searchService     driving.SearchService
	progressStore     driven.ProgressStore
	configStore       driven.ConfigStore
	positionCache     PositionCache
)

// PositionCache reads back locally cached reading positions.
type PositionCache interface {
	Position(ctx context.Context, copyID string) (*domain.ReadingPosition, error)
}

// Services bundles everything the commands need.
type Services struct {
	Annotations driving.AnnotationService
	Search      driving.SearchService
	Progress    driven.ProgressStore
	Config      driven.ConfigStore
	Positions   PositionCache
}

// SetServices injects the service implementations used by the commands.
func SetServices(s Services) {
	annotationService = s.Annotations
	searchService = s.Search
	progressStore = s.Progress
	configStore = s.Config
	positionCache = s.Positions
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "margin",
	Short: "Annotate and search PDF documents from the terminal",
	Long: `Margin is a terminal client for reading PDF documents and anchoring
comments and highlights to exact text spans.

Annotations are persisted on the annotation service and searchable
through the knowledge index. Run 'margin read <file.pdf>' to open the
interactive reader.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
