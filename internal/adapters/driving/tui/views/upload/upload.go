// Package upload provides the upload screen: username, file queue and results.
package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docparse-cli/internal/core/render"
)

// InspectFunc describes a local file chosen for upload.
type InspectFunc func(path string) (domain.SelectedFile, error)

// focus identifies the control receiving keys.
type focus int

const (
	focusUsername focus = iota
	focusPath
	focusQueue
	focusCount
)

// View is the upload screen.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	uploads  driving.UploadOrchestrator
	inspect  InspectFunc
	username *input.Field
	path     *input.Field
	queue    *list.Rows
	focus    focus
	results  []render.ResultCard
	inFlight bool
	err      error
	backView *messages.ViewType
	width    int
	height   int
}

// NewView creates a new upload view. backView is where esc leads; nil quits.
func NewView(
	s *styles.Styles,
	uploads driving.UploadOrchestrator,
	inspect InspectFunc,
	defaultUser string,
	backView *messages.ViewType,
) *View {
	v := &View{
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		uploads:  uploads,
		inspect:  inspect,
		username: input.NewField(s, "Username", "Enter your username"),
		path:     input.NewField(s, "File path", "Path to a PDF, JPG or PNG file"),
		queue:    list.NewRows(s, "Selected Files", "No files selected"),
		backView: backView,
		width:    80,
		height:   24,
	}
	v.username.SetValue(defaultUser)
	v.username.Focus()
	v.syncQueue()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.username.Init()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.UploadStarted:
		v.inFlight = true
		v.err = nil
		return v, nil

	case messages.UploadCompleted:
		v.inFlight = false
		v.results = render.Results(msg.Results)
		v.syncQueue()
		return v, nil

	case messages.UploadFailed:
		v.inFlight = false
		v.err = errors.New(msg.Notice.Message)
		return v, nil

	case messages.QueueChanged:
		v.err = msg.Err
		v.syncQueue()
		return v, nil

	case messages.ActionFinished:
		v.inFlight = v.uploads != nil && v.uploads.InFlight()
		if msg.Err != nil && domain.IsValidation(msg.Err) {
			v.err = msg.Err
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		if v.backView == nil {
			return v, func() tea.Msg { return messages.Quit{} }
		}
		back := *v.backView
		return v, func() tea.Msg { return messages.ViewChanged{View: back} }

	case keymap.Matches(keyStr, v.keymap.NextField):
		return v, v.cycleFocus()

	case keymap.Matches(keyStr, v.keymap.Submit):
		return v, v.submit()
	}

	var cmd tea.Cmd
	switch v.focus {
	case focusUsername:
		v.username, cmd = v.username.Update(msg)
	case focusPath:
		if keymap.Matches(keyStr, v.keymap.Add) {
			v.addPath()
			return v, nil
		}
		v.path, cmd = v.path.Update(msg)
	case focusQueue:
		if keymap.Matches(keyStr, v.keymap.Remove) {
			v.removeSelected()
			return v, nil
		}
		v.queue, cmd = v.queue.Update(msg)
	case focusCount:
	}
	return v, cmd
}

func (v *View) cycleFocus() tea.Cmd {
	v.focus = (v.focus + 1) % focusCount
	v.username.Blur()
	v.path.Blur()

	switch v.focus {
	case focusUsername:
		return v.username.Focus()
	case focusPath:
		return v.path.Focus()
	case focusQueue, focusCount:
	}
	return nil
}

func (v *View) addPath() {
	if v.uploads == nil || v.inspect == nil {
		return
	}
	path := strings.TrimSpace(v.path.Value())
	if path == "" {
		return
	}

	f, err := v.inspect(path)
	if err != nil {
		v.err = fmt.Errorf("cannot add %s: %w", path, err)
		return
	}
	if err := v.uploads.AddFiles(f); err != nil {
		v.err = err
		return
	}
	v.err = nil
	v.path.Reset()
	v.syncQueue()
}

func (v *View) removeSelected() {
	if v.uploads == nil || v.queue.IsEmpty() {
		return
	}
	if err := v.uploads.RemoveFile(v.queue.Selected()); err != nil {
		v.err = err
		return
	}
	v.err = nil
	v.syncQueue()
}

func (v *View) submit() tea.Cmd {
	if v.uploads == nil {
		return nil
	}
	username := v.username.Value()
	if !v.uploads.CanSubmit(username) {
		// Submit reports which precondition failed without sending anything.
		_, err := v.uploads.Submit(context.Background(), username)
		v.err = err
		return nil
	}

	v.inFlight = true
	v.err = nil
	return func() tea.Msg {
		_, err := v.uploads.Submit(context.Background(), username)
		return messages.ActionFinished{Err: err}
	}
}

func (v *View) syncQueue() {
	if v.uploads == nil {
		return
	}
	items := render.QueueItems(v.uploads.Queue())
	rows := make([]string, 0, len(items))
	for _, item := range items {
		row := fmt.Sprintf("%-30s %-6s %s", item.Name, item.Kind, item.Size)
		if item.Pages > 0 {
			row += fmt.Sprintf("  %d pages", item.Pages)
		}
		rows = append(rows, row)
	}
	v.queue.SetRows(rows)
}

// View renders the upload screen.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("Upload Documents"),
		v.styles.Muted.Render("Accepted: " + strings.Join(domain.AcceptedExtensions(), ", ")),
		"",
		v.username.View(),
		v.path.View(),
		"",
		v.queue.View(),
		"",
		v.renderButton(),
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render(v.err.Error()))
	}

	// Results are hidden while a new batch is processing.
	if !v.inFlight && len(v.results) > 0 {
		sections = append(sections, "", v.renderResults())
	}

	return strings.Join(sections, "\n")
}

func (v *View) renderButton() string {
	queued := v.queue.Count()
	label := render.UploadButtonLabel(queued, v.inFlight)
	if v.inFlight || v.uploads == nil || !v.uploads.CanSubmit(v.username.Value()) {
		return v.styles.Muted.Render("[ " + label + " ]")
	}
	return v.styles.Selected.Render("[ " + label + " ]")
}

func (v *View) renderResults() string {
	lines := []string{v.styles.Subtitle.Render("Processing Results")}
	for _, card := range v.results {
		mark := "✓ "
		if !card.Succeeded {
			mark = "✗ "
		}
		outcome := v.styles.Outcome(card.Succeeded)
		lines = append(lines, outcome.Render(mark+card.Filename+" - "+card.Headline))
		if !card.Succeeded {
			lines = append(lines, "    "+outcome.Render(card.Error))
			continue
		}

		lines = append(lines, fmt.Sprintf("    %s  %s",
			v.styles.Muted.Render(render.DocumentID(card.DocumentID)),
			v.styles.Badge.Render(card.DocumentType)))
		if len(card.Skills) > 0 {
			lines = append(lines, "    Skills: "+strings.Join(card.Skills, ", "))
		}
		for _, f := range card.Metadata {
			lines = append(lines, "    "+v.styles.Muted.Render(f.Label+": ")+f.Value)
		}
		for _, j := range card.Jobs {
			job := "    • " + j.Title + " at " + j.Company
			if j.MatchBadge != "" {
				job += " " + v.styles.Badge.Render(j.MatchBadge)
			}
			lines = append(lines, job)
		}
	}
	return strings.Join(lines, "\n")
}

// Help returns the keybindings shown in the status bar.
func (v *View) Help() []key.Binding {
	return v.keymap.UploadHelp()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.username.SetWidth(width)
	v.path.SetWidth(width)
	v.queue.SetDimensions(width, height/3)
}

// Err returns the error currently shown.
func (v *View) Err() error {
	return v.err
}

// InFlight reports whether a batch is processing.
func (v *View) InFlight() bool {
	return v.inFlight
}

// Results returns the rendered results of the last successful submission.
func (v *View) Results() []render.ResultCard {
	return v.results
}

// Username returns the typed username.
func (v *View) Username() string {
	return v.username.Value()
}
