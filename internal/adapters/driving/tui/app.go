package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/views/confirm"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/views/dashboard"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/views/docdetail"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/services"
)

// statusBarHeight is the number of lines reserved below the active view.
const statusBarHeight = 1

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// bridge delivers service callbacks as messages.
	bridge *Bridge

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	statusBar     *status.Bar
	dashboardView *dashboard.View
	detailView    *docdetail.View
	confirmView   *confirm.View
	uploadView    *upload.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// returnView is where the confirmation dialog goes back to.
	returnView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application. With a dashboard port the app starts
// on the dashboard, otherwise on the upload screen.
func NewApp(ports *Ports, bridge *Bridge) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingScreens)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if bridge == nil {
		bridge = NewBridge()
	}

	s := styles.DefaultStyles()
	a := &App{
		ports:       ports,
		bridge:      bridge,
		ctx:         context.Background(),
		styles:      s,
		statusBar:   status.NewBar(s),
		detailView:  docdetail.NewView(s),
		confirmView: confirm.NewView(s),
		currentView: messages.ViewUpload,
	}

	if ports.Dashboard != nil {
		a.dashboardView = dashboard.NewView(s, ports.Dashboard, ports.Upload != nil)
		a.currentView = messages.ViewDashboard
	}
	a.uploadView = a.newUploadView("")
	a.statusBar.SetHints(a.currentHelp())
	return a, nil
}

func (a *App) newUploadView(username string) *upload.View {
	if a.ports.Upload == nil {
		return nil
	}
	var back *messages.ViewType
	if a.dashboardView != nil {
		v := messages.ViewDashboard
		back = &v
	}
	return upload.NewView(a.styles, a.ports.Upload, a.ports.Inspect, username, back)
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	if a.dashboardView != nil {
		a.dashboardView.WithContext(ctx)
	}
	return a
}

// WithUsername pre-fills the upload screen's username.
func (a *App) WithUsername(username string) *App {
	a.uploadView = a.newUploadView(username)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("docparse"),
		a.bridge.Listen(),
	}
	switch a.currentView {
	case messages.ViewDashboard:
		cmds = append(cmds, a.dashboardView.Init())
	case messages.ViewUpload:
		cmds = append(cmds, a.uploadView.Init())
	case messages.ViewDocDetail, messages.ViewConfirm:
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case bridged:
		_, cmd = a.Update(msg.msg)
		return a, tea.Batch(cmd, a.bridge.Listen())

	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.SnapshotApplied:
		if a.dashboardView != nil {
			a.dashboardView, cmd = a.dashboardView.Update(msg)
		}
		if a.statusBar.State() == status.StateLoading {
			a.statusBar.Clear()
		}
		return a, cmd

	case messages.NoticeRaised:
		a.statusBar.ShowNotice(msg.Notice)
		if a.dashboardView != nil {
			a.dashboardView, cmd = a.dashboardView.Update(msg)
		}
		return a, cmd

	case messages.DetailLoaded:
		a.detailView.SetRecord(msg.Record)
		a.currentView = messages.ViewDocDetail
		a.statusBar.SetHints(a.currentHelp())
		return a, nil

	case messages.DocumentRequested:
		if a.ports.Dashboard == nil {
			return a, nil
		}
		id := msg.ID
		return a, func() tea.Msg {
			_, err := a.ports.Dashboard.ViewDocument(a.ctx, id)
			return messages.ActionFinished{Err: err}
		}

	case messages.DeleteRequested:
		if a.dashboardView == nil {
			return a, nil
		}
		a.returnView = a.currentView
		a.confirmView.Ask(services.DeleteConfirmPrompt, msg.ID)
		a.currentView = messages.ViewConfirm
		a.statusBar.SetHints(a.currentHelp())
		return a, nil

	case messages.ConfirmAnswered:
		a.currentView = a.returnView
		a.statusBar.SetHints(a.currentHelp())
		if !msg.Confirmed {
			return a, nil
		}
		a.statusBar.Loading("Deleting document...")
		return a, a.dashboardView.DeleteDocument(msg.ID)

	case messages.UploadStarted, messages.UploadCompleted, messages.QueueChanged:
		if a.uploadView != nil {
			a.uploadView, cmd = a.uploadView.Update(msg)
		}
		return a, cmd

	case messages.UploadFailed:
		a.statusBar.ShowNotice(msg.Notice)
		if a.uploadView != nil {
			a.uploadView, cmd = a.uploadView.Update(msg)
		}
		return a, cmd

	case messages.ActionFinished:
		a.err = msg.Err
		if msg.Err != nil && a.statusBar.State() == status.StateLoading {
			a.statusBar.Clear()
		}
		return a, a.forward(msg)

	case messages.ErrorOccurred:
		a.err = msg.Err
		if msg.Err != nil {
			a.statusBar.ShowNotice(domain.Notice{Level: domain.NoticeError, Message: domain.UserMessage(msg.Err)})
		}
		return a, nil
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewDashboard:
		if a.dashboardView != nil {
			a.dashboardView, cmd = a.dashboardView.Update(msg)
		}
	case messages.ViewDocDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewConfirm:
		a.confirmView, cmd = a.confirmView.Update(msg)
	case messages.ViewUpload:
		if a.uploadView != nil {
			a.uploadView, cmd = a.uploadView.Update(msg)
		}
	}
	return cmd
}

func (a *App) switchView(view messages.ViewType) tea.Cmd {
	var cmd tea.Cmd
	switch view {
	case messages.ViewDashboard:
		if a.dashboardView == nil {
			return nil
		}
		if a.currentView == messages.ViewDocDetail {
			a.ports.Dashboard.CloseDetail()
			a.detailView.Clear()
		}
	case messages.ViewUpload:
		if a.uploadView == nil {
			return nil
		}
		cmd = a.uploadView.Init()
	case messages.ViewDocDetail, messages.ViewConfirm:
	}
	a.currentView = view
	a.statusBar.SetHints(a.currentHelp())
	return cmd
}

func (a *App) currentHelp() []key.Binding {
	switch a.currentView {
	case messages.ViewDashboard:
		if a.dashboardView != nil {
			return a.dashboardView.Help()
		}
	case messages.ViewDocDetail:
		return a.detailView.Help()
	case messages.ViewConfirm:
		return a.confirmView.Help()
	case messages.ViewUpload:
		if a.uploadView != nil {
			return a.uploadView.Help()
		}
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewDashboard:
		body = a.dashboardView.View()
	case messages.ViewDocDetail:
		body = a.detailView.View()
	case messages.ViewConfirm:
		body = lipgloss.Place(a.width, a.height-statusBarHeight,
			lipgloss.Center, lipgloss.Center, a.confirmView.View())
	case messages.ViewUpload:
		body = a.uploadView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(a.height-statusBarHeight).Render(body),
		a.statusBar.View())
}

// Run starts the TUI application and blocks until it exits or the
// app context is cancelled.
func (a *App) Run() error {
	defer a.bridge.Close()

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	viewHeight := height - statusBarHeight
	a.statusBar.SetWidth(width)
	a.detailView.SetDimensions(width, viewHeight)
	if a.dashboardView != nil {
		a.dashboardView.SetDimensions(width, viewHeight)
	}
	if a.uploadView != nil {
		a.uploadView.SetDimensions(width, viewHeight)
	}
}
