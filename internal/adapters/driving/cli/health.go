package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docparse-cli/internal/core/render"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show the document service health",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	api, err := documentAPI()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	h, err := api.Health(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch health: %w", err)
	}

	panel := render.Health(*h)
	return printStructured(cmd, panel, func() { printHealth(cmd, panel) })
}
