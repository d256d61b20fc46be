package upload

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

// MockUploads implements driving.UploadOrchestrator for testing.
type MockUploads struct {
	queue      []domain.SelectedFile
	inFlight   bool
	AddErr     error
	SubmitFunc func(ctx context.Context, username string) ([]domain.ProcessingResult, error)
}

func (m *MockUploads) AddFiles(files ...domain.SelectedFile) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	m.queue = append(m.queue, files...)
	return nil
}

func (m *MockUploads) RemoveFile(index int) error {
	if index < 0 || index >= len(m.queue) {
		return domain.ErrIndexOutOfRange
	}
	m.queue = append(m.queue[:index], m.queue[index+1:]...)
	return nil
}

func (m *MockUploads) Queue() []domain.SelectedFile {
	return append([]domain.SelectedFile(nil), m.queue...)
}

func (m *MockUploads) Results() []domain.ProcessingResult { return nil }

func (m *MockUploads) InFlight() bool { return m.inFlight }

func (m *MockUploads) CanSubmit(username string) bool {
	return !m.inFlight && domain.UploadBatch{Username: username, Files: m.queue}.Validate() == nil
}

func (m *MockUploads) Submit(ctx context.Context, username string) ([]domain.ProcessingResult, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, username)
	}
	if err := (domain.UploadBatch{Username: username, Files: m.queue}).Validate(); err != nil {
		return nil, err
	}
	return nil, nil
}

func pdfFile(name string) domain.SelectedFile {
	return domain.SelectedFile{Name: name, Path: "/tmp/" + name, SizeBytes: 1024 * 1024, MimeKind: domain.MimeKindPDF, PageCount: 2}
}

func inspectOK(path string) (domain.SelectedFile, error) {
	return pdfFile(path), nil
}

func typeText(t *testing.T, view *View, text string) *View {
	t.Helper()
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return view
}

func tab(view *View) *View {
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyTab})
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &MockUploads{}, inspectOK, "alice", nil)

	require.NotNil(t, view)
	assert.Equal(t, "alice", view.Username())
	assert.False(t, view.InFlight())
	assert.NoError(t, view.Err())
	assert.Contains(t, view.View(), "Upload Documents")
	assert.Contains(t, view.View(), "Upload 0 Files")
}

func TestView_AddPath(t *testing.T) {
	uploads := &MockUploads{}
	view := NewView(styles.DefaultStyles(), uploads, inspectOK, "alice", nil)

	view = tab(view)
	view = typeText(t, view, "cv.pdf")
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, uploads.queue, 1)
	assert.Equal(t, "cv.pdf", uploads.queue[0].Name)
	assert.NoError(t, view.Err())
	assert.Equal(t, 1, view.queue.Count())
	assert.Empty(t, view.path.Value())
	assert.Contains(t, view.View(), "Upload 1 File")
}

func TestView_AddPath_InspectError(t *testing.T) {
	uploads := &MockUploads{}
	inspect := func(path string) (domain.SelectedFile, error) {
		return domain.SelectedFile{}, domain.ErrUnsupportedFile
	}
	view := NewView(styles.DefaultStyles(), uploads, inspect, "alice", nil)

	view = tab(view)
	view = typeText(t, view, "notes.txt")
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, uploads.queue)
	assert.ErrorIs(t, view.Err(), domain.ErrUnsupportedFile)
	assert.Contains(t, view.View(), "notes.txt")
}

func TestView_AddPath_Rejected(t *testing.T) {
	uploads := &MockUploads{AddErr: domain.ErrFileTooLarge}
	view := NewView(styles.DefaultStyles(), uploads, inspectOK, "alice", nil)

	view = tab(view)
	view = typeText(t, view, "big.pdf")
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.ErrorIs(t, view.Err(), domain.ErrFileTooLarge)
	assert.Equal(t, "big.pdf", view.path.Value())
}

func TestView_RemoveSelected(t *testing.T) {
	uploads := &MockUploads{queue: []domain.SelectedFile{pdfFile("a.pdf"), pdfFile("b.pdf")}}
	view := NewView(styles.DefaultStyles(), uploads, inspectOK, "alice", nil)

	view = tab(tab(view))
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	require.Len(t, uploads.queue, 1)
	assert.Equal(t, "a.pdf", uploads.queue[0].Name)
	assert.Equal(t, 1, view.queue.Count())
}

func TestView_FocusCycles(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &MockUploads{}, inspectOK, "", nil)

	assert.Equal(t, focusUsername, view.focus)
	view = tab(view)
	assert.Equal(t, focusPath, view.focus)
	assert.True(t, view.path.Focused())
	assert.False(t, view.username.Focused())
	view = tab(view)
	assert.Equal(t, focusQueue, view.focus)
	assert.False(t, view.path.Focused())
	view = tab(view)
	assert.Equal(t, focusUsername, view.focus)
	assert.True(t, view.username.Focused())
}

func TestView_SubmitValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		queue    []domain.SelectedFile
		wantErr  error
	}{
		{name: "no files", username: "alice", wantErr: domain.ErrQueueEmpty},
		{name: "no username", username: "", queue: []domain.SelectedFile{pdfFile("a.pdf")}, wantErr: domain.ErrUsernameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploads := &MockUploads{queue: tt.queue}
			view := NewView(styles.DefaultStyles(), uploads, inspectOK, tt.username, nil)

			view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

			assert.Nil(t, cmd)
			assert.ErrorIs(t, view.Err(), tt.wantErr)
			assert.False(t, view.InFlight())
		})
	}
}

func TestView_Submit(t *testing.T) {
	var gotUser string
	uploads := &MockUploads{
		queue: []domain.SelectedFile{pdfFile("a.pdf")},
		SubmitFunc: func(ctx context.Context, username string) ([]domain.ProcessingResult, error) {
			gotUser = username
			return nil, nil
		},
	}
	view := NewView(styles.DefaultStyles(), uploads, inspectOK, "alice", nil)

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, view.InFlight())
	assert.Contains(t, view.View(), "Processing...")

	assert.Equal(t, messages.ActionFinished{}, cmd())
	assert.Equal(t, "alice", gotUser)
}

func TestView_UploadLifecycle(t *testing.T) {
	uploads := &MockUploads{queue: []domain.SelectedFile{pdfFile("cv.pdf")}}
	view := NewView(styles.DefaultStyles(), uploads, inspectOK, "alice", nil)

	view, _ = view.Update(messages.UploadStarted{})
	assert.True(t, view.InFlight())

	uploads.queue = nil
	view, _ = view.Update(messages.UploadCompleted{Results: []domain.ProcessingResult{
		{
			Filename:   "cv.pdf",
			Status:     domain.ResultSuccess,
			DocumentID: 5,
			Data:       &domain.DocumentAnalysis{DocumentType: "Resume", Skills: []string{"Go"}},
		},
		{Filename: "bad.png", Status: domain.ResultError, Error: "unreadable"},
	}})

	assert.False(t, view.InFlight())
	require.Len(t, view.Results(), 2)
	assert.Equal(t, 0, view.queue.Count())

	out := view.View()
	assert.Contains(t, out, "Processing Results")
	assert.Contains(t, out, "cv.pdf - Successfully processed")
	assert.Contains(t, out, "#5")
	assert.Contains(t, out, "bad.png - Processing failed")
	assert.Contains(t, out, "unreadable")
}

func TestView_ResultsHiddenWhileInFlight(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &MockUploads{}, inspectOK, "alice", nil)
	view, _ = view.Update(messages.UploadCompleted{Results: []domain.ProcessingResult{
		{Filename: "bad.png", Status: domain.ResultError, Error: "unreadable"},
	}})
	require.Contains(t, view.View(), "Processing Results")

	view, _ = view.Update(messages.UploadStarted{})
	assert.NotContains(t, view.View(), "Processing Results")
	assert.Len(t, view.Results(), 1)
}

func TestView_UploadFailed(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &MockUploads{}, inspectOK, "alice", nil)
	view, _ = view.Update(messages.UploadStarted{})

	view, _ = view.Update(messages.UploadFailed{Notice: domain.Notice{
		Level:   domain.NoticeError,
		Message: "Upload failed: service unavailable",
	}})

	assert.False(t, view.InFlight())
	require.Error(t, view.Err())
	assert.Contains(t, view.View(), "Upload failed: service unavailable")
}

func TestView_QueueChanged(t *testing.T) {
	uploads := &MockUploads{}
	view := NewView(styles.DefaultStyles(), uploads, inspectOK, "alice", nil)

	uploads.queue = []domain.SelectedFile{pdfFile("dropped.pdf")}
	view, _ = view.Update(messages.QueueChanged{Added: []string{"dropped.pdf"}})
	assert.Equal(t, 1, view.queue.Count())

	dropErr := errors.New("cannot add dropped.txt")
	view, _ = view.Update(messages.QueueChanged{Err: dropErr})
	assert.ErrorIs(t, view.Err(), dropErr)
}

func TestView_Back(t *testing.T) {
	t.Run("quits without back view", func(t *testing.T) {
		view := NewView(styles.DefaultStyles(), &MockUploads{}, inspectOK, "", nil)
		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.Equal(t, messages.Quit{}, cmd())
	})

	t.Run("returns to back view", func(t *testing.T) {
		back := messages.ViewDashboard
		view := NewView(styles.DefaultStyles(), &MockUploads{}, inspectOK, "", &back)
		_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.Equal(t, messages.ViewChanged{View: messages.ViewDashboard}, cmd())
	})
}

func TestView_Help(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &MockUploads{}, inspectOK, "", nil)
	assert.Len(t, view.Help(), 5)
}
