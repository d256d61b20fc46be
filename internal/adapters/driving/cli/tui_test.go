package cli

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docparse-cli/internal/core/services"
)

// fakeWatcher hands the test its onFile callback.
type fakeWatcher struct {
	started chan func(string)
	mu      sync.Mutex
	dir     string
	closed  bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{started: make(chan func(string), 1)}
}

func (w *fakeWatcher) Watch(ctx context.Context, dir string, onFile func(path string)) error {
	w.mu.Lock()
	w.dir = dir
	w.mu.Unlock()
	w.started <- onFile
	<-ctx.Done()
	return nil
}

func (w *fakeWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func startFakeDrop(t *testing.T) (*fakeWatcher, *services.UploadOrchestrator, func(string), func()) {
	t.Helper()
	setupTestDeps(t, &MockAPI{}, nil)

	w := newFakeWatcher()
	deps.NewWatcher = func() driven.DropWatcher { return w }

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	uploads := services.NewUploadOrchestrator(&MockAPI{}, domain.DefaultClientSettings(), nil, nil)
	bridge := tui.NewBridge()
	t.Cleanup(bridge.Close)

	stop := startDropWatcher(ctx, "/incoming", uploads, bridge)

	select {
	case onFile := <-w.started:
		return w, uploads, onFile, stop
	case <-time.After(2 * time.Second):
		t.Fatal("watcher not started")
		return nil, nil, nil, nil
	}
}

func TestStartDropWatcher_QueuesAcceptedFiles(t *testing.T) {
	w, uploads, onFile, stop := startFakeDrop(t)

	onFile("/incoming/cv.pdf")
	onFile("/incoming/scan.png")

	queue := uploads.Queue()
	require.Len(t, queue, 2)
	assert.Equal(t, "cv.pdf", queue[0].Name)
	assert.Equal(t, "scan.png", queue[1].Name)

	w.mu.Lock()
	assert.Equal(t, "/incoming", w.dir)
	w.mu.Unlock()

	stop()
	w.mu.Lock()
	assert.True(t, w.closed)
	w.mu.Unlock()
}

func TestStartDropWatcher_SkipsRejectedFiles(t *testing.T) {
	_, uploads, onFile, stop := startFakeDrop(t)
	defer stop()

	onFile("/incoming/notes.txt")

	assert.Empty(t, uploads.Queue())
}

func TestStartDropWatcher_NotConfigured(t *testing.T) {
	setupTestDeps(t, &MockAPI{}, nil)

	stop := startDropWatcher(context.Background(), "/incoming", nil, tui.NewBridge())

	require.NotNil(t, stop)
	stop()
}

func TestRunInteractive_WrapsErrors(t *testing.T) {
	setupTestDeps(t, &MockAPI{}, nil)
	runApp = func(*tui.App) error { return errors.New("terminal gone") }

	uploads := services.NewUploadOrchestrator(&MockAPI{}, domain.DefaultClientSettings(), nil, nil)
	ports := &tui.Ports{Upload: uploads, Inspect: MockInspector{}.Inspect}

	err := runInteractive(context.Background(), ports, tui.NewBridge(), "alice")

	require.Error(t, err)
	assert.Equal(t, "TUI error: terminal gone", err.Error())
}

func TestRunInteractive_RejectsMissingScreens(t *testing.T) {
	setupTestDeps(t, &MockAPI{}, nil)

	err := runInteractive(context.Background(), &tui.Ports{}, tui.NewBridge(), "")

	assert.ErrorIs(t, err, tui.ErrMissingScreens)
}

func TestRunInteractive_RecoversPanics(t *testing.T) {
	setupTestDeps(t, &MockAPI{}, nil)
	runApp = func(*tui.App) error { panic("boom") }

	uploads := services.NewUploadOrchestrator(&MockAPI{}, domain.DefaultClientSettings(), nil, nil)
	ports := &tui.Ports{Upload: uploads, Inspect: MockInspector{}.Inspect}

	err := runInteractive(context.Background(), ports, tui.NewBridge(), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TUI panic: boom")
}
