// Command docparse uploads documents to a document processing service
// and browses what it has stored.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driven/files"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driven/metrics"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open config: %v\n", err)
		os.Exit(1)
	}

	// Cobra reports command errors itself.
	if err := run(ctx, store); err != nil {
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, store *file.ConfigStore) error {

	cli.SetVersion(version)
	cli.SetDependencies(cli.Dependencies{
		ConfigStore: store,
		NewAPI: func(s domain.ClientSettings) (driven.DocumentAPI, error) {
			return api.NewClient(s)
		},
		Inspector:  files.NewInspector(),
		NewWatcher: func() driven.DropWatcher { return files.NewWatcher() },
		Metrics:    metrics.NewCollector(),
	})

	return cli.Execute(ctx)
}
