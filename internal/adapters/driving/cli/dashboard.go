package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/render"
	"github.com/custodia-labs/docparse-cli/internal/core/services"
	"github.com/custodia-labs/docparse-cli/internal/logger"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"tui"},
	Short:   "Show the live document dashboard",
	Long: `Show service health, document statistics and the stored documents,
refreshed automatically.

Controls:
  ↑/k, ↓/j - Navigate documents
  Enter    - View document
  r        - Refresh now
  d        - Delete document
  u        - Upload files
  Esc      - Back
  q        - Quit

With --once the dashboard is fetched a single time and printed.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

// Flags for the dashboard command.
var (
	dashboardOnce bool
	metricsAddr   string
)

func init() {
	flags := dashboardCmd.Flags()
	flags.Duration("poll-interval", domain.DefaultPollInterval, "auto-refresh interval")
	flags.String("user", "", "only list documents uploaded by this username")
	flags.BoolVar(&dashboardOnce, "once", false, "fetch once, print and exit")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")

	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	api, err := documentAPI()
	if err != nil {
		return err
	}

	// The configured default username is for uploads; the list filters only on request.
	pollSettings := settings
	if !cmd.Flags().Changed("user") {
		pollSettings.Username = ""
	}

	if dashboardOnce {
		poller := services.NewDashboardPoller(api, pollSettings, nil, telemetry())
		defer stopPoller(poller)

		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := poller.RefreshAll(ctx); err != nil {
			return &noticeError{message: services.NoticeFetchFailed + ": " + domain.UserMessage(err), cause: err}
		}
		snap, _ := poller.Snapshot()
		view := render.DashboardView(snap)
		return printStructured(cmd, view, func() { printDashboard(cmd, view) })
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if metricsAddr != "" {
		if err := startMetrics(ctx, metricsAddr); err != nil {
			return err
		}
	}

	bridge := tui.NewBridge()
	poller := services.NewDashboardPoller(api, pollSettings, bridge, telemetry())
	defer stopPoller(poller)

	ports := &tui.Ports{Dashboard: poller}
	if deps.Inspector != nil {
		uploads := services.NewUploadOrchestrator(api, settings, bridge, telemetry())
		ports.Upload = uploads
		ports.Inspect = deps.Inspector.Inspect
		if settings.DropDir != "" {
			stop := startDropWatcher(ctx, settings.DropDir, uploads, bridge)
			defer stop()
		}
	}

	return runInteractive(ctx, ports, bridge, settings.Username)
}

func printDashboard(cmd *cobra.Command, view render.Dashboard) {
	printHealth(cmd, view.Health)
	cmd.Println()
	printStats(cmd, view.Stats)
	cmd.Println()
	printDocumentRows(cmd, view.Documents)
}

func stopPoller(p *services.DashboardPoller) {
	if err := p.Stop(); err != nil {
		logger.Debug("dashboard: stop: %v", err)
	}
}

// startMetrics serves the metrics endpoint until ctx ends.
func startMetrics(ctx context.Context, addr string) error {
	if deps.Metrics == nil {
		return errors.New("metrics not configured")
	}
	go func() {
		if err := deps.Metrics.Serve(ctx, addr); err != nil {
			logger.Error("metrics: %v", err)
		}
	}()
	logger.Info("metrics: serving on %s/metrics", addr)
	return nil
}
