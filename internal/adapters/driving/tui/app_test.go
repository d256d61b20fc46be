package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docparse-cli/internal/core/services"
)

func newTestApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports, NewBridge())
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app
}

func fullPorts(poller *MockPoller) *Ports {
	return &Ports{Dashboard: poller, Upload: &MockUploads{}, Inspect: inspectStub}
}

func update(app *App, msg tea.Msg) (*App, tea.Cmd) {
	model, cmd := app.Update(msg)
	return model.(*App), cmd
}

func TestNewApp_StartsOnDashboard(t *testing.T) {
	app, err := NewApp(fullPorts(&MockPoller{}), nil)

	require.NoError(t, err)
	assert.Equal(t, messages.ViewDashboard, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_UploadOnly(t *testing.T) {
	app, err := NewApp(&Ports{Upload: &MockUploads{}, Inspect: inspectStub}, nil)

	require.NoError(t, err)
	assert.Equal(t, messages.ViewUpload, app.CurrentView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{}, nil)
	assert.ErrorIs(t, err, ErrMissingScreens)
	assert.Nil(t, app)

	app, err = NewApp(nil, nil)
	assert.ErrorIs(t, err, ErrMissingScreens)
	assert.Nil(t, app)
}

func TestApp_WithContextAndUsername(t *testing.T) {
	app, err := NewApp(fullPorts(&MockPoller{}), nil)
	require.NoError(t, err)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Same(t, app, app.WithUsername("alice"))
	assert.Equal(t, "alice", app.uploadView.Username())
}

func TestApp_Init_StartsPoller(t *testing.T) {
	started := false
	poller := &MockPoller{StartFunc: func(ctx context.Context) error {
		started = true
		return nil
	}}
	app := newTestApp(t, fullPorts(poller))

	assert.NotNil(t, app.Init())
	assert.True(t, app.dashboardView.Refreshing())
	assert.False(t, started, "the poller starts when the command runs")
}

func TestApp_WithContext_ReachesPoller(t *testing.T) {
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	var got context.Context
	poller := &MockPoller{StartFunc: func(ctx context.Context) error {
		got = ctx
		return nil
	}}
	app, err := NewApp(fullPorts(poller), nil)
	require.NoError(t, err)
	app.WithContext(ctx)

	app.dashboardView.Init()()
	require.NotNil(t, got)
	assert.Equal(t, "value", got.Value(contextKey("key")))
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(fullPorts(&MockPoller{}), nil)
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_Dashboard(t *testing.T) {
	app := newTestApp(t, fullPorts(&MockPoller{}))

	assert.Contains(t, app.View(), "Document Dashboard")
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(fullPorts(&MockPoller{}), nil)
	require.NoError(t, err)

	app, cmd := update(app, tea.WindowSizeMsg{Width: 120, Height: 30})

	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.statusBar.Width())
}

func TestApp_Update_CtrlC(t *testing.T) {
	app := newTestApp(t, fullPorts(&MockPoller{}))

	_, cmd := update(app, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_Quit(t *testing.T) {
	app := newTestApp(t, fullPorts(&MockPoller{}))

	_, cmd := update(app, messages.Quit{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_BridgedMessageRelistens(t *testing.T) {
	app := newTestApp(t, fullPorts(&MockPoller{}))

	snap := domain.DashboardSnapshot{
		Documents: []domain.DocumentRecord{{ID: 1, OriginalFilename: "cv.pdf"}},
	}
	app, cmd := update(app, bridged{msg: messages.SnapshotApplied{Snapshot: snap}})

	assert.NotNil(t, cmd)
	assert.True(t, app.dashboardView.HasData())
	assert.Contains(t, app.View(), "cv.pdf")
}

func TestApp_Update_NoticeRaised(t *testing.T) {
	app := newTestApp(t, fullPorts(&MockPoller{}))

	app, _ = update(app, messages.NoticeRaised{Notice: domain.Notice{
		Level:   domain.NoticeError,
		Message: services.NoticeFetchFailed,
	}})

	assert.Equal(t, status.StateError, app.statusBar.State())
	assert.Equal(t, services.NoticeFetchFailed, app.statusBar.Message())
	assert.Contains(t, app.View(), services.NoticeFetchFailed)
}

func TestApp_DetailFlow(t *testing.T) {
	poller := &MockPoller{}
	app := newTestApp(t, fullPorts(poller))

	app, _ = update(app, messages.DetailLoaded{Record: domain.DocumentRecord{ID: 8, Username: "alice"}})
	assert.Equal(t, messages.ViewDocDetail, app.CurrentView())
	assert.Contains(t, app.View(), "Document #8")

	app, cmd := update(app, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app, _ = update(app, cmd())

	assert.Equal(t, messages.ViewDashboard, app.CurrentView())
	assert.Equal(t, 1, poller.closedDetail)
	assert.Equal(t, 0, app.detailView.ID())
}

func TestApp_DocumentRequested(t *testing.T) {
	var gotID int
	poller := &MockPoller{ViewDocumentFunc: func(ctx context.Context, id int) (*domain.DocumentRecord, error) {
		gotID = id
		return &domain.DocumentRecord{ID: id}, nil
	}}
	app := newTestApp(t, fullPorts(poller))

	_, cmd := update(app, messages.DocumentRequested{ID: 5})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ActionFinished{}, cmd())
	assert.Equal(t, 5, gotID)
}

func TestApp_DeleteConfirmed(t *testing.T) {
	var deleted int
	poller := &MockPoller{DeleteFunc: func(ctx context.Context, id int, confirm driving.ConfirmFunc) error {
		if confirm(services.DeleteConfirmPrompt) {
			deleted = id
		}
		return nil
	}}
	app := newTestApp(t, fullPorts(poller))
	app, _ = update(app, messages.DetailLoaded{Record: domain.DocumentRecord{ID: 8}})

	app, _ = update(app, messages.DeleteRequested{ID: 8})
	assert.Equal(t, messages.ViewConfirm, app.CurrentView())
	assert.Equal(t, services.DeleteConfirmPrompt, app.confirmView.Prompt())
	assert.Contains(t, app.View(), services.DeleteConfirmPrompt)

	app, cmd := update(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	app, cmd = update(app, cmd())

	// The detail stays open after a delete.
	assert.Equal(t, messages.ViewDocDetail, app.CurrentView())
	assert.Equal(t, status.StateLoading, app.statusBar.State())
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ActionFinished{}, cmd())
	assert.Equal(t, 8, deleted)
}

func TestApp_DeleteDenied(t *testing.T) {
	poller := &MockPoller{DeleteFunc: func(ctx context.Context, id int, confirm driving.ConfirmFunc) error {
		t.Fatal("delete must not run when denied")
		return nil
	}}
	app := newTestApp(t, fullPorts(poller))

	app, _ = update(app, messages.DeleteRequested{ID: 2})
	app, cmd := update(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	require.NotNil(t, cmd)
	app, cmd = update(app, cmd())

	assert.Nil(t, cmd)
	assert.Equal(t, messages.ViewDashboard, app.CurrentView())
}

func TestApp_DeleteFailureClearsLoading(t *testing.T) {
	app := newTestApp(t, fullPorts(&MockPoller{}))
	app.statusBar.Loading("")

	app, _ = update(app, messages.ActionFinished{Err: errors.New("boom")})

	assert.Equal(t, status.StateReady, app.statusBar.State())
	assert.Error(t, app.Err())
}

func TestApp_UploadNavigation(t *testing.T) {
	app := newTestApp(t, fullPorts(&MockPoller{}))

	app, cmd := update(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	require.NotNil(t, cmd)
	app, _ = update(app, cmd())
	assert.Equal(t, messages.ViewUpload, app.CurrentView())
	assert.Contains(t, app.View(), "Upload Documents")

	app, cmd = update(app, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app, _ = update(app, cmd())
	assert.Equal(t, messages.ViewDashboard, app.CurrentView())
}

func TestApp_UploadOnlyEscQuits(t *testing.T) {
	app := newTestApp(t, &Ports{Upload: &MockUploads{}, Inspect: inspectStub})

	app, cmd := update(app, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, cmd = update(app, cmd())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_UploadMessagesReachUploadView(t *testing.T) {
	uploads := &MockUploads{}
	app := newTestApp(t, &Ports{Dashboard: &MockPoller{}, Upload: uploads, Inspect: inspectStub})

	app, _ = update(app, messages.UploadStarted{})
	assert.True(t, app.uploadView.InFlight())

	notice := domain.Notice{Level: domain.NoticeError, Message: services.UploadFailedPrefix + "timeout"}
	app, _ = update(app, messages.UploadFailed{Notice: notice})
	assert.False(t, app.uploadView.InFlight())
	assert.Equal(t, status.StateError, app.statusBar.State())

	uploads.queue = []domain.SelectedFile{{Name: "drop.pdf", MimeKind: domain.MimeKindPDF}}
	app, _ = update(app, messages.QueueChanged{Added: []string{"drop.pdf"}})
	assert.Contains(t, app.uploadView.View(), "drop.pdf")
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, fullPorts(&MockPoller{}))

	app, _ = update(app, messages.ErrorOccurred{Err: domain.ErrTransport})

	assert.ErrorIs(t, app.Err(), domain.ErrTransport)
	assert.Equal(t, status.StateError, app.statusBar.State())
}
