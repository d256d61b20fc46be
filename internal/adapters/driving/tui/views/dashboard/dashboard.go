// Package dashboard provides the dashboard view: service health, document
// statistics and the stored documents table.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docparse-cli/internal/core/render"
)

// maxBreakdown is the number of document types shown in the stats panel.
const maxBreakdown = 5

// View is the dashboard view.
type View struct {
	ctx        context.Context
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	poller     driving.DashboardPoller
	documents  *list.Rows
	canUpload  bool
	dashboard  render.Dashboard
	hasData    bool
	refreshing bool
	width      int
	height     int
}

// NewView creates a new dashboard view. canUpload enables the upload shortcut.
func NewView(s *styles.Styles, poller driving.DashboardPoller, canUpload bool) *View {
	return &View{
		ctx:       context.Background(),
		styles:    s,
		keymap:    keymap.DefaultKeyMap(),
		poller:    poller,
		documents: list.NewRows(s, "Recent Documents", "No documents processed yet"),
		canUpload: canUpload,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context passed to the poller.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts polling. The first refresh runs immediately.
func (v *View) Init() tea.Cmd {
	if v.poller == nil {
		return nil
	}
	v.refreshing = true
	return func() tea.Msg {
		return messages.ActionFinished{Err: v.poller.Start(v.ctx)}
	}
}

// Update handles messages for the dashboard view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SnapshotApplied:
		v.SetSnapshot(msg.Snapshot)
		return v, nil

	case messages.NoticeRaised:
		if msg.Notice.IsError() {
			v.refreshing = false
		}
		return v, nil

	case messages.RefreshRequested:
		return v, v.refresh()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }

	case keymap.Matches(msg.String(), v.keymap.Refresh):
		return v, v.refresh()

	case keymap.Matches(msg.String(), v.keymap.Select):
		if id, ok := v.SelectedID(); ok {
			return v, v.viewDocument(id)
		}

	case keymap.Matches(msg.String(), v.keymap.Delete):
		if id, ok := v.SelectedID(); ok {
			return v, func() tea.Msg { return messages.DeleteRequested{ID: id} }
		}

	case v.canUpload && keymap.Matches(msg.String(), v.keymap.Upload):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewUpload} }

	default:
		v.documents, _ = v.documents.Update(msg)
	}

	return v, nil
}

func (v *View) refresh() tea.Cmd {
	if v.poller == nil {
		return nil
	}
	v.refreshing = true
	return func() tea.Msg {
		return messages.ActionFinished{Err: v.poller.RefreshAll(v.ctx)}
	}
}

func (v *View) viewDocument(id int) tea.Cmd {
	if v.poller == nil {
		return nil
	}
	return func() tea.Msg {
		_, err := v.poller.ViewDocument(v.ctx, id)
		return messages.ActionFinished{Err: err}
	}
}

// DeleteDocument deletes a confirmed document and refreshes.
func (v *View) DeleteDocument(id int) tea.Cmd {
	if v.poller == nil {
		return nil
	}
	return func() tea.Msg {
		confirmed := func(string) bool { return true }
		return messages.ActionFinished{Err: v.poller.DeleteDocument(v.ctx, id, confirmed)}
	}
}

// SetSnapshot replaces every panel from one snapshot.
func (v *View) SetSnapshot(s domain.DashboardSnapshot) {
	v.dashboard = render.DashboardView(s)
	v.hasData = true
	v.refreshing = false

	rows := make([]string, 0, len(v.dashboard.Documents))
	for _, d := range v.dashboard.Documents {
		rows = append(rows, fmt.Sprintf("%-6s %-16s %-30s %-14s %s",
			d.Label, d.Username, d.Filename, d.DocumentType, d.Timestamp))
	}
	v.documents.SetRows(rows)
}

// SelectedID returns the highlighted document's id.
func (v *View) SelectedID() (int, bool) {
	i := v.documents.Selected()
	if !v.hasData || i < 0 || i >= len(v.dashboard.Documents) {
		return 0, false
	}
	return v.dashboard.Documents[i].ID, true
}

// View renders the dashboard.
func (v *View) View() string {
	title := v.styles.Title.Render("Document Dashboard")
	if v.refreshing {
		title += "  " + v.styles.Muted.Render("refreshing...")
	}

	if !v.hasData {
		return title + "\n\n" + v.styles.Muted.Render("Loading dashboard...")
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, v.renderHealth(), v.renderStats())
	return strings.Join([]string{title, "", panels, "", v.documents.View()}, "\n")
}

func (v *View) renderHealth() string {
	h := v.dashboard.Health

	lines := []string{
		v.styles.Subtitle.Render("System Health"),
		"Status: " + v.styles.State(h.Healthy).Render(h.Status),
	}
	for _, s := range h.Services {
		lines = append(lines, fmt.Sprintf("%-12s %s", s.Label+":", v.styles.State(s.Online).Render(s.State)))
	}
	lines = append(lines, v.styles.Muted.Render("Last updated: "+h.LastUpdated))

	return v.styles.Panel.Render(strings.Join(lines, "\n"))
}

func (v *View) renderStats() string {
	s := v.dashboard.Stats

	lines := []string{
		v.styles.Subtitle.Render("Statistics"),
		fmt.Sprintf("Total Documents: %d", s.TotalDocuments),
		fmt.Sprintf("Unique Users:    %d", s.UniqueUsers),
		fmt.Sprintf("Last 24 Hours:   %d", s.Recent24h),
	}
	for i, c := range s.ByDocumentType {
		if i == maxBreakdown {
			break
		}
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("  %-14s %d", c.Name, c.Count)))
	}

	return v.styles.Panel.Render(strings.Join(lines, "\n"))
}

// Help returns the keybindings shown in the status bar.
func (v *View) Help() []key.Binding {
	hints := v.keymap.DashboardHelp()
	if v.canUpload {
		hints = append(hints, v.keymap.Upload)
	}
	return hints
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	// Title, panels and padding take roughly ten lines
	v.documents.SetDimensions(width, height-12)
}

// Dashboard returns the rendered dashboard.
func (v *View) Dashboard() render.Dashboard {
	return v.dashboard
}

// HasData reports whether a snapshot has been applied.
func (v *View) HasData() bool {
	return v.hasData
}

// Refreshing reports whether a refresh is pending.
func (v *View) Refreshing() bool {
	return v.refreshing
}
