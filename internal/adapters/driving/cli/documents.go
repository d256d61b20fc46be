package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/render"
	"github.com/custodia-labs/docparse-cli/internal/core/services"
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "Manage stored documents",
	Long:    `List, view, or delete the documents the service has stored.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document with its full analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsGet,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a stored document",
	Long: `Delete a stored document. You are asked to confirm unless --yes is given.
Without a terminal on stdin the command refuses to delete unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentsDelete,
}

// deleteYes is a flag for the delete command.
var deleteYes bool

// stdinIsTerminal and confirmInput are replaced in tests.
var (
	stdinIsTerminal           = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	confirmInput    io.Reader = os.Stdin
)

func init() {
	documentsListCmd.Flags().String("user", "", "only list documents uploaded by this username")
	documentsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsGetCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	api, err := documentAPI()
	if err != nil {
		return err
	}

	// The configured default username is for uploads; listing filters only on request.
	username := ""
	if cmd.Flags().Changed("user") {
		username = settings.Username
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	docs, err := api.ListDocuments(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	rows := render.DocumentRows(docs)
	return printStructured(cmd, rows, func() { printDocumentRows(cmd, rows) })
}

func runDocumentsGet(cmd *cobra.Command, args []string) error {
	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}
	api, err := documentAPI()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	rec, err := api.GetDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	detail := render.Record(*rec)
	return printStructured(cmd, detail, func() { printRecordDetail(cmd, detail) })
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseDocumentID(args[0])
	if err != nil {
		return err
	}
	if !deleteYes && !stdinIsTerminal() {
		return fmt.Errorf("%w: stdin is not a terminal, pass --yes to delete", domain.ErrNotConfirmed)
	}
	if !deleteYes && !askConfirm(cmd, services.DeleteConfirmPrompt) {
		cmd.Println("Cancelled.")
		return nil
	}

	api, err := documentAPI()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	err = api.DeleteDocument(ctx, id)
	if t := telemetry(); t != nil {
		t.DeleteFinished(err)
	}
	if err != nil {
		return &noticeError{message: services.NoticeDeleteFailed + ": " + domain.UserMessage(err), cause: err}
	}

	cmd.Println(services.NoticeDeleteSuccess)
	return nil
}

// askConfirm prints prompt and reads a yes/no answer. Anything but yes is no.
func askConfirm(cmd *cobra.Command, prompt string) bool {
	cmd.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(confirmInput).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func parseDocumentID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: document id must be a positive number, got %q", domain.ErrInvalidInput, arg)
	}
	return id, nil
}
