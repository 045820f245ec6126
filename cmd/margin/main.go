// Command margin is a terminal client for reading and annotating PDF
// documents.
//
// Wiring happens here: the config file selects between the remote
// annotation service and the local cache, and the resulting adapters
// are injected into the CLI before it runs.
package main

import (
	"context"
	"fmt"
	"os"

	configfile "github.com/custodia-labs/margin-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/margin-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/margin-cli/internal/core/services"
	"github.com/custodia-labs/margin-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	cache, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening local cache: %w", err)
	}
	defer cache.Close()

	stores := newSwitchableBackends(buildBackends(configStore, cache))

	// Editing the config from another terminal rewires the remote
	// client without a restart.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := configStore.Watch(ctx, func() {
		stores.swap(buildBackends(configStore, cache))
	}); err != nil {
		logger.Warn("Config watch unavailable: %v", err)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Annotations: services.NewAnnotationService(stores, nil),
		Search:      services.NewSearchService(stores),
		Progress:    stores,
		Config:      configStore,
		Positions:   cache,
	})

	return cli.Execute()
}
