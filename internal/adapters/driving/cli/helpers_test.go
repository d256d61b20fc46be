package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driven/config"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
)

// MockAPI implements driven.DocumentAPI for testing.
type MockAPI struct {
	mu sync.Mutex

	UploadFunc func(ctx context.Context, batch domain.UploadBatch) ([]domain.ProcessingResult, error)
	HealthFunc func(ctx context.Context) (*domain.HealthSnapshot, error)
	ListFunc   func(ctx context.Context, username string) ([]domain.DocumentRecord, error)
	GetFunc    func(ctx context.Context, id int) (*domain.DocumentRecord, error)
	DeleteFunc func(ctx context.Context, id int) error
	StatsFunc  func(ctx context.Context) (*domain.StatsSnapshot, error)

	uploads []domain.UploadBatch
	deleted []int
	listed  []string
}

func (m *MockAPI) Upload(ctx context.Context, batch domain.UploadBatch) ([]domain.ProcessingResult, error) {
	m.mu.Lock()
	m.uploads = append(m.uploads, batch)
	m.mu.Unlock()
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, batch)
	}
	results := make([]domain.ProcessingResult, 0, len(batch.Files))
	for i, f := range batch.Files {
		results = append(results, domain.ProcessingResult{
			Filename:   f.Name,
			Status:     domain.ResultSuccess,
			DocumentID: i + 1,
			Data:       &domain.DocumentAnalysis{DocumentType: "Resume", Skills: []string{"Go"}},
		})
	}
	return results, nil
}

func (m *MockAPI) Health(ctx context.Context) (*domain.HealthSnapshot, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return &domain.HealthSnapshot{
		Status:    domain.StatusHealthy,
		Timestamp: time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local),
		Services: map[string]domain.ServiceState{
			"database": domain.ServiceOnline,
			"ocr":      domain.ServiceOnline,
			"ai":       domain.ServiceOnline,
		},
	}, nil
}

func (m *MockAPI) ListDocuments(ctx context.Context, username string) ([]domain.DocumentRecord, error) {
	m.mu.Lock()
	m.listed = append(m.listed, username)
	m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx, username)
	}
	return []domain.DocumentRecord{
		{ID: 2, Username: "alice", OriginalFilename: "cv.pdf", DocumentType: "Resume"},
		{ID: 1, Username: "bob", OriginalFilename: "cert.png", DocumentType: "Certificate"},
	}, nil
}

func (m *MockAPI) GetDocument(ctx context.Context, id int) (*domain.DocumentRecord, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.DocumentRecord{
		ID:               id,
		Username:         "alice",
		OriginalFilename: "cv.pdf",
		DocumentType:     "Resume",
		Skills:           []string{"Go", "SQL"},
		OCRText:          "Alice Smith",
	}, nil
}

func (m *MockAPI) DeleteDocument(ctx context.Context, id int) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, id)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockAPI) Stats(ctx context.Context) (*domain.StatsSnapshot, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &domain.StatsSnapshot{
		TotalDocuments: 2,
		ByUser:         map[string]int{"alice": 1, "bob": 1},
		ByDocumentType: map[string]int{"Resume": 1, "Certificate": 1},
		Recent24h:      1,
	}, nil
}

// MockInspector implements driven.FileInspector by extension.
type MockInspector struct{}

func (MockInspector) Inspect(path string) (domain.SelectedFile, error) {
	name := filepath.Base(path)
	return domain.SelectedFile{
		Name:      name,
		Path:      path,
		SizeBytes: 1000,
		MimeKind:  domain.KindFromExtension(name),
	}, nil
}

// setupTestDeps installs api and stubs for the terminal and the TUI runner.
func setupTestDeps(t *testing.T, api *MockAPI, store driven.ConfigStore) {
	t.Helper()

	for _, k := range config.Keys {
		for _, env := range k.Env {
			t.Setenv(env, "")
		}
	}

	oldDeps, oldSettings := deps, settings
	oldRunApp, oldTerminal, oldInput := runApp, stdinIsTerminal, confirmInput

	deps = Dependencies{
		ConfigStore: store,
		NewAPI: func(domain.ClientSettings) (driven.DocumentAPI, error) {
			return api, nil
		},
		Inspector: MockInspector{},
	}
	runApp = func(*tui.App) error { return nil }
	stdinIsTerminal = func() bool { return false }

	t.Cleanup(func() {
		deps, settings = oldDeps, oldSettings
		runApp, stdinIsTerminal, confirmInput = oldRunApp, oldTerminal, oldInput
	})
}

// resetFlags restores every flag to its default so runs do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func commandNames(c *cobra.Command) []string {
	names := make([]string, 0, len(c.Commands()))
	for _, sub := range c.Commands() {
		names = append(names, sub.Name())
	}
	return names
}
