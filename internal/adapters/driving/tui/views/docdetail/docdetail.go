// Package docdetail provides the stored document detail view for the TUI.
package docdetail

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/render"
)

// View is the document detail view.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	id           int
	detail       *render.RecordDetail
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new document detail view.
func NewView(s *styles.Styles) *View {
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// SetRecord sets the document to display.
func (v *View) SetRecord(rec domain.DocumentRecord) {
	detail := render.Record(rec)
	v.id = rec.ID
	v.detail = &detail
	v.scrollOffset = 0
}

// Clear removes the current document.
func (v *View) Clear() {
	v.id = 0
	v.detail = nil
	v.scrollOffset = 0
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Up):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case keymap.Matches(msg.String(), v.keymap.Down):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case keymap.Matches(msg.String(), v.keymap.Delete):
		if v.detail != nil {
			id := v.id
			return v, func() tea.Msg { return messages.DeleteRequested{ID: id} }
		}
	case keymap.Matches(msg.String(), v.keymap.Back), msg.String() == "q":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewDashboard}
		}
	}

	return v, nil
}

// visibleLines returns the number of lines that can be displayed.
func (v *View) visibleLines() int {
	// Reserve lines for title, separator and padding
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	maxOffset := len(v.buildContent()) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

func (v *View) buildContent() []string {
	if v.detail == nil {
		return nil
	}
	d := v.detail

	lines := []string{
		v.formatField("Username", d.Username),
		v.formatField("Filename", d.Filename),
		v.formatField("Type", d.DocumentType),
		v.formatField("Processed", d.ProcessedAt),
	}

	if len(d.Skills) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Skills"), "  "+strings.Join(d.Skills, ", "))
	}

	if len(d.Metadata) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Extracted Information"))
		for _, f := range d.Metadata {
			lines = append(lines, "  "+v.formatField(f.Label, f.Value))
		}
	}

	if len(d.Jobs) > 0 {
		lines = append(lines, "", v.styles.Subtitle.Render("Job Recommendations"))
		for _, j := range d.Jobs {
			title := "  " + v.styles.Normal.Render(j.Title+" at "+j.Company)
			if j.MatchBadge != "" {
				title += " " + v.styles.Badge.Render(j.MatchBadge)
			}
			lines = append(lines, title)
			if j.Location != "" {
				lines = append(lines, "    "+v.styles.Muted.Render(j.Location))
			}
			if len(j.Skills) > 0 {
				lines = append(lines, "    "+v.styles.Muted.Render(strings.Join(j.Skills, ", ")))
			}
		}
	}

	if d.OCRText != "" {
		lines = append(lines, "", v.styles.Subtitle.Render("OCR Text"))
		lines = append(lines, strings.Split(d.OCRText, "\n")...)
	}

	return lines
}

func (v *View) formatField(label, value string) string {
	return v.styles.Muted.Render(label+": ") + v.styles.Normal.Render(value)
}

// View renders the detail view.
func (v *View) View() string {
	if v.detail == nil {
		return v.styles.Muted.Render("No document selected")
	}

	lines := v.buildContent()
	end := v.scrollOffset + v.visibleLines()
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Document " + v.detail.ID))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(strings.Repeat("─", v.width/2)))
	b.WriteString("\n")
	b.WriteString(strings.Join(lines[v.scrollOffset:end], "\n"))
	return b.String()
}

// Help returns the keybindings shown in the status bar.
func (v *View) Help() []key.Binding {
	return v.keymap.DetailHelp()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// ID returns the displayed document id, 0 when none.
func (v *View) ID() int {
	return v.id
}

// ScrollOffset returns the current scroll position.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
