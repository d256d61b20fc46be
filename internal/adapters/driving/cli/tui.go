package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docparse-cli/internal/logger"
)

// runApp runs a TUI application. Replaced in tests.
var runApp = func(app *tui.App) error {
	return app.Run()
}

// runInteractive builds and runs the TUI until the user quits or ctx ends.
func runInteractive(ctx context.Context, ports *tui.Ports, bridge *tui.Bridge, username string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(ports, bridge)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx).WithUsername(username)

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// startDropWatcher queues every accepted file that appears in dir.
// The returned function stops the watcher.
func startDropWatcher(ctx context.Context, dir string, uploads driving.UploadOrchestrator, bridge *tui.Bridge) func() {
	if deps.NewWatcher == nil || deps.Inspector == nil {
		logger.Warn("drop folder %s ignored: watcher not configured", dir)
		return func() {}
	}

	w := deps.NewWatcher()
	onFile := func(path string) {
		f, err := deps.Inspector.Inspect(path)
		if err == nil {
			err = uploads.AddFiles(f)
		}
		if err != nil {
			logger.Warn("drop folder: %s: %v", path, err)
			bridge.Send(messages.QueueChanged{Err: fmt.Errorf("cannot add %s: %w", filepath.Base(path), err)})
			return
		}
		logger.Debug("drop folder: queued %s", path)
		bridge.Send(messages.QueueChanged{Added: []string{f.Name}})
	}

	go func() {
		if err := w.Watch(ctx, dir, onFile); err != nil {
			logger.Warn("drop folder %s: %v", dir, err)
			bridge.Send(messages.ErrorOccurred{Err: fmt.Errorf("watching %s: %w", dir, err)})
		}
	}()

	return func() {
		if err := w.Close(); err != nil {
			logger.Debug("drop folder: close: %v", err)
		}
	}
}
