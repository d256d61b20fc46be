// Package cli provides the docparse command-line interface.
package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driven/config"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docparse-cli/internal/logger"
)

// version is set at build time.
var version = "dev"

// MetricsServer is the telemetry sink that can also expose itself over HTTP.
type MetricsServer interface {
	driven.Telemetry
	Serve(ctx context.Context, addr string) error
}

// Dependencies are the driven adapters the commands run against.
type Dependencies struct {
	// ConfigStore holds the persisted client settings.
	ConfigStore driven.ConfigStore

	// NewAPI builds the document service client from the effective settings.
	NewAPI func(settings domain.ClientSettings) (driven.DocumentAPI, error)

	// Inspector describes local files chosen for upload.
	Inspector driven.FileInspector

	// NewWatcher creates a drop folder watcher. Optional.
	NewWatcher func() driven.DropWatcher

	// Metrics records activity. Optional.
	Metrics MetricsServer
}

var (
	deps     Dependencies
	settings = domain.DefaultClientSettings()

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docparse",
	Short: "Upload documents for OCR and AI analysis",
	Long: `docparse sends resumes and other documents to a document processing
service, shows the extracted analysis and job recommendations, and
manages the documents the service has stored.`,
	SilenceUsage:      true,
	PersistentPreRunE: resolveSettings,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.String("api-url", domain.DefaultBaseURL, "document service base URL")
	flags.Duration("timeout", domain.DefaultTimeout, "per-request timeout")
	flags.StringP("output", "o", string(domain.OutputText), "output format (text, json, yaml)")
}

// SetDependencies injects the driven adapters.
func SetDependencies(d Dependencies) {
	deps = d
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func resolveSettings(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	resolved, err := config.Resolve(deps.ConfigStore, cmd.Flags())
	if err != nil {
		return err
	}
	settings = resolved
	logger.Debug("settings: api=%s timeout=%s poll=%s", settings.BaseURL, settings.Timeout, settings.PollInterval)
	return nil
}

// documentAPI builds a client for the current settings.
func documentAPI() (driven.DocumentAPI, error) {
	if deps.NewAPI == nil {
		return nil, errors.New("document service not configured")
	}
	return deps.NewAPI(settings)
}

// telemetry returns the metrics sink or nil.
func telemetry() driven.Telemetry {
	if deps.Metrics == nil {
		return nil
	}
	return deps.Metrics
}

// commandContext returns the command context bounded by the request timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout+5*time.Second)
}
