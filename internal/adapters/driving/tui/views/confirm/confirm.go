// Package confirm provides a yes/no confirmation dialog for the TUI.
package confirm

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/styles"
)

// View is the confirmation dialog.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	prompt string
	id     int
}

// NewView creates a new dialog.
func NewView(s *styles.Styles) *View {
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
	}
}

// Ask sets the question and the document it applies to.
func (v *View) Ask(prompt string, id int) {
	v.prompt = prompt
	v.id = id
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update answers on y/enter or n/esc. Other keys are ignored.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch {
	case keymap.Matches(keyMsg.String(), v.keymap.Confirm):
		return v, v.answer(true)
	case keymap.Matches(keyMsg.String(), v.keymap.Deny):
		return v, v.answer(false)
	}
	return v, nil
}

func (v *View) answer(confirmed bool) tea.Cmd {
	id := v.id
	return func() tea.Msg {
		return messages.ConfirmAnswered{ID: id, Confirmed: confirmed}
	}
}

// View renders the dialog.
func (v *View) View() string {
	body := v.styles.Warning.Render(v.prompt) + "\n\n" +
		v.styles.Normal.Render("[y] Yes    [n] No")
	return v.styles.Dialog.Render(body)
}

// Help returns the keybindings shown in the status bar.
func (v *View) Help() []key.Binding {
	return v.keymap.ConfirmHelp()
}

// Prompt returns the current question.
func (v *View) Prompt() string {
	return v.prompt
}
