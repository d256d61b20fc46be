package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driven/config"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/logger"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client settings",
	Long: `Show and change the settings stored in the config file.

Settings are resolved in this order: command-line flags, environment
variables, the config file, built-in defaults.`,
	// Config commands must work while the stored settings are invalid.
	PersistentPreRunE: func(*cobra.Command, []string) error {
		logger.SetVerbose(verbose)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a setting in the config file",
	Example: `  docparse config set api.url https://docs.example.com
  docparse config set upload.max_size 20MB`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Remove a setting so its default applies again",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configEntry is one effective setting.
type configEntry struct {
	Key         string `json:"key" yaml:"key"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	resolved, err := config.Resolve(deps.ConfigStore, cmd.Flags())
	if err != nil {
		return err
	}
	settings = resolved

	entries := make([]configEntry, 0, len(config.Keys))
	for _, k := range config.Keys {
		entries = append(entries, configEntry{
			Key:         k.Name,
			Value:       settingValue(resolved, k.Name),
			Description: k.Description,
		})
	}

	return printStructured(cmd, entries, func() {
		for _, e := range entries {
			value := e.Value
			if value == "" {
				value = "(not set)"
			}
			cmd.Printf("  %-26s %s\n", e.Key, value)
		}
		if deps.ConfigStore != nil {
			cmd.Printf("\nConfig file: %s\n", deps.ConfigStore.Path())
		}
	})
}

func settingValue(s domain.ClientSettings, key string) string {
	switch key {
	case config.KeyBaseURL:
		return s.BaseURL
	case config.KeyTimeout:
		return s.Timeout.String()
	case config.KeyRequestsPerSecond:
		return strconv.FormatFloat(s.RequestsPerSecond, 'f', -1, 64)
	case config.KeyBurst:
		return strconv.Itoa(s.Burst)
	case config.KeyPollInterval:
		return s.PollInterval.String()
	case config.KeyUsername:
		return s.Username
	case config.KeyDropDir:
		return s.DropDir
	case config.KeyMaxUploadSize:
		if s.MaxUploadSize == 0 {
			return "0 (disabled)"
		}
		return units.HumanSize(float64(s.MaxUploadSize))
	case config.KeyOutput:
		return s.Output.String()
	default:
		return ""
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if deps.ConfigStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	if err := config.Check(key, value); err != nil {
		return err
	}
	if err := deps.ConfigStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if deps.ConfigStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	if _, ok := config.LookupKey(key); !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	if err := deps.ConfigStore.Unset(key); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Unset %s\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if deps.ConfigStore == nil {
		return errors.New("config store not configured")
	}
	cmd.Println(deps.ConfigStore.Path())
	return nil
}
