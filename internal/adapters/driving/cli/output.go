package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// noticeError shows a notice's text while keeping the cause for errors.Is.
type noticeError struct {
	message string
	cause   error
}

func (e *noticeError) Error() string { return e.message }
func (e *noticeError) Unwrap() error { return e.cause }

// printStructured writes v in the selected format. text is called for OutputText.
func printStructured(cmd *cobra.Command, v any, text func()) error {
	switch settings.Output {
	case domain.OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Println(string(data))
		return nil

	case domain.OutputYAML:
		var b strings.Builder
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Print(b.String())
		return nil

	default:
		text()
		return nil
	}
}

// printList prints a labelled comma-separated list when non-empty.
func printList(cmd *cobra.Command, indent, label string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Printf("%s%s: %s\n", indent, label, strings.Join(items, ", "))
}
