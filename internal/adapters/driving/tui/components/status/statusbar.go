// Package status provides the status bar shown under every view.
package status

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// State is what the left side of the bar reports.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateInfo    State = "info"
)

const hintSeparator = " | "

// Bar displays the latest notice and keybinding hints. It is passive:
// the app sets its content directly instead of routing messages to it.
type Bar struct {
	styles  *styles.Styles
	hints   []key.Binding
	state   State
	message string
	width   int
}

// NewBar creates a status bar.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{
		styles: s,
		state:  StateReady,
		width:  80,
	}
}

// View renders the notice on the left and as many hints as fit on the right.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderHints(s.width - lipgloss.Width(left) - 3)

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render(s.messageOr("Loading..."))
	case StateError:
		return s.styles.Error.Render(s.messageOr("Error"))
	case StateInfo:
		return s.styles.Success.Render(s.message)
	default:
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
		return s.styles.Muted.Render("Ready")
	}
}

func (s *Bar) messageOr(fallback string) string {
	if s.message == "" {
		return fallback
	}
	return s.message
}

// renderHints drops trailing hints until the rest fit in room columns.
func (s *Bar) renderHints(room int) string {
	parts := make([]string, 0, len(s.hints))
	used := 0
	for _, b := range s.hints {
		h := b.Help()
		part := h.Key + ": " + h.Desc
		need := lipgloss.Width(part)
		if len(parts) > 0 {
			need += len(hintSeparator)
		}
		if used+need > room {
			break
		}
		parts = append(parts, part)
		used += need
	}
	return s.styles.Muted.Render(strings.Join(parts, hintSeparator))
}

// ShowNotice displays a notice, coloured by its level.
func (s *Bar) ShowNotice(n domain.Notice) {
	s.message = n.Message
	if n.IsError() {
		s.state = StateError
		return
	}
	s.state = StateInfo
}

// Loading shows message until the next notice or Clear.
func (s *Bar) Loading(message string) {
	s.state = StateLoading
	s.message = message
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetHints sets the keybindings shown on the right.
func (s *Bar) SetHints(hints []key.Binding) {
	s.hints = hints
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the bar to ready.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
