// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/styles"
)

// Rows displays pre-formatted lines with one selected row.
type Rows struct {
	title    string
	empty    string
	rows     []string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewRows creates a new row list. empty is shown when there are no rows.
func NewRows(s *styles.Styles, title, empty string) *Rows {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Rows{
		title:  title,
		empty:  empty,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (r *Rows) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *Rows) Update(msg tea.Msg) (*Rows, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the list.
func (r *Rows) View() string {
	header := r.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", r.title, len(r.rows)))
	if len(r.rows) == 0 {
		return header + "\n\n" + r.styles.Muted.Render(r.empty)
	}

	lines := make([]string, 0, len(r.rows)+2)
	lines = append(lines, header, "")

	visibleCount := r.height - 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.rows) {
		end = len(r.rows)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderRow(i))
	}

	return strings.Join(lines, "\n")
}

func (r *Rows) renderRow(index int) string {
	row := r.rows[index]

	maxLen := r.width - 4
	if maxLen < 10 {
		maxLen = 10
	}
	if runes := []rune(row); len(runes) > maxLen {
		row = string(runes[:maxLen-3]) + "..."
	}

	if index == r.selected {
		return r.styles.Selected.Render("> " + row)
	}
	return r.styles.Normal.Render("  " + row)
}

// SetRows replaces the rows, keeping the selection in range.
func (r *Rows) SetRows(rows []string) {
	r.rows = rows
	if r.selected >= len(rows) {
		r.selected = len(rows) - 1
	}
	if r.selected < 0 {
		r.selected = 0
	}
}

// Rows returns the current rows.
func (r *Rows) Rows() []string {
	return r.rows
}

// Selected returns the index of the selected row.
func (r *Rows) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *Rows) SetSelected(index int) {
	if index >= 0 && index < len(r.rows) {
		r.selected = index
	}
}

// MoveUp moves selection up.
func (r *Rows) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *Rows) MoveDown() {
	if r.selected < len(r.rows)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *Rows) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of rows.
func (r *Rows) Count() int {
	return len(r.rows)
}

// IsEmpty returns whether the list is empty.
func (r *Rows) IsEmpty() bool {
	return len(r.rows) == 0
}
