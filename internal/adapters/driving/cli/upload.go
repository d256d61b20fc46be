package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docparse-cli/internal/core/render"
	"github.com/custodia-labs/docparse-cli/internal/core/services"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload documents for processing",
	Long: `Upload one or more PDF, JPG or PNG files in a single request. The service
runs OCR and AI analysis on each file and replies with the document type,
extracted skills and information, and matching job recommendations.

With --tui an interactive upload screen opens instead. Files given as
arguments are queued first; --drop-dir also queues files copied into a folder.`,
	Example: `  docparse upload --user alice resume.pdf certificate.png
  docparse upload --tui --user alice --drop-dir ~/Incoming`,
	RunE: runUpload,
}

// uploadTUI is a flag for the upload command.
var uploadTUI bool

func init() {
	flags := uploadCmd.Flags()
	flags.String("user", "", "username the documents are uploaded for")
	flags.BoolVar(&uploadTUI, "tui", false, "open the interactive upload screen")
	flags.String("drop-dir", "", "folder watched for files to queue (with --tui)")
	flags.String("max-upload-size", units.HumanSize(float64(domain.DefaultMaxUploadSize)),
		"largest accepted file, 0 to disable")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if deps.Inspector == nil {
		return errors.New("file inspector not configured")
	}
	if !uploadTUI && len(args) == 0 {
		return fmt.Errorf("%w: at least one file is required", domain.ErrQueueEmpty)
	}

	api, err := documentAPI()
	if err != nil {
		return err
	}

	if uploadTUI {
		return runUploadTUI(cmd, api, args)
	}

	orchestrator := services.NewUploadOrchestrator(api, settings, &progressObserver{w: cmd.ErrOrStderr()}, telemetry())
	if err := queueFiles(orchestrator, args); err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	results, err := orchestrator.Submit(ctx, settings.Username)
	if err != nil {
		if domain.IsValidation(err) {
			return err
		}
		return &noticeError{message: services.UploadFailedPrefix + domain.UserMessage(err), cause: err}
	}

	cards := render.Results(results)
	return printStructured(cmd, cards, func() { printResultCards(cmd, cards) })
}

func runUploadTUI(cmd *cobra.Command, api driven.DocumentAPI, args []string) error {
	bridge := tui.NewBridge()
	orchestrator := services.NewUploadOrchestrator(api, settings, bridge, telemetry())
	if err := queueFiles(orchestrator, args); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if settings.DropDir != "" {
		stop := startDropWatcher(ctx, settings.DropDir, orchestrator, bridge)
		defer stop()
	}

	ports := &tui.Ports{Upload: orchestrator, Inspect: deps.Inspector.Inspect}
	return runInteractive(ctx, ports, bridge, settings.Username)
}

// queueFiles inspects each path and queues them in argument order.
func queueFiles(uploads driving.UploadOrchestrator, paths []string) error {
	files := make([]domain.SelectedFile, 0, len(paths))
	for _, path := range paths {
		f, err := deps.Inspector.Inspect(path)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", path, err)
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil
	}
	return uploads.AddFiles(files...)
}

// progressObserver reports submission progress on stderr.
type progressObserver struct {
	w io.Writer
}

func (p *progressObserver) OnStart(batch domain.UploadBatch) {
	fmt.Fprintf(p.w, "Uploading %d file(s) as %s. Processing can take a while...\n", len(batch.Files), batch.Username)
}

func (p *progressObserver) OnComplete(results []domain.ProcessingResult) {
	fmt.Fprintf(p.w, "Received %d result(s).\n\n", len(results))
}

func (p *progressObserver) OnFailure(domain.Notice) {}
