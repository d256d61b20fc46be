package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docparse-cli/internal/core/render"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	api, err := documentAPI()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	s, err := api.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}

	panel := render.Stats(*s)
	return printStructured(cmd, panel, func() { printStats(cmd, panel) })
}
