package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driving"
)

// Ensure Bridge implements the observer interfaces.
var (
	_ driving.DashboardObserver = (*Bridge)(nil)
	_ driving.UploadObserver    = (*Bridge)(nil)
)

// bridgeBuffer is how many service events may queue before senders block.
const bridgeBuffer = 64

// bridged wraps a message delivered through the bridge.
type bridged struct {
	msg tea.Msg
}

// Bridge turns service callbacks, which arrive on service goroutines,
// into Bubble Tea messages.
type Bridge struct {
	events    chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

// NewBridge creates an open bridge.
func NewBridge() *Bridge {
	return &Bridge{
		events: make(chan tea.Msg, bridgeBuffer),
		done:   make(chan struct{}),
	}
}

// Send delivers msg to the TUI. It blocks while the buffer is full
// and drops msg once the bridge is closed.
func (b *Bridge) Send(msg tea.Msg) {
	select {
	case <-b.done:
		return
	default:
	}

	select {
	case b.events <- msg:
	case <-b.done:
	}
}

// Listen returns a command that waits for the next message.
func (b *Bridge) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-b.events:
			return bridged{msg: msg}
		case <-b.done:
			return nil
		}
	}
}

// Close releases blocked senders and listeners. It is safe to call twice.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

// OnSnapshot implements driving.DashboardObserver.
func (b *Bridge) OnSnapshot(snapshot domain.DashboardSnapshot) {
	b.Send(messages.SnapshotApplied{Snapshot: snapshot})
}

// OnDetail implements driving.DashboardObserver.
func (b *Bridge) OnDetail(record domain.DocumentRecord) {
	b.Send(messages.DetailLoaded{Record: record})
}

// OnNotice implements driving.DashboardObserver.
func (b *Bridge) OnNotice(notice domain.Notice) {
	b.Send(messages.NoticeRaised{Notice: notice})
}

// OnStart implements driving.UploadObserver.
func (b *Bridge) OnStart(batch domain.UploadBatch) {
	b.Send(messages.UploadStarted{Batch: batch})
}

// OnComplete implements driving.UploadObserver.
func (b *Bridge) OnComplete(results []domain.ProcessingResult) {
	b.Send(messages.UploadCompleted{Results: results})
}

// OnFailure implements driving.UploadObserver.
func (b *Bridge) OnFailure(notice domain.Notice) {
	b.Send(messages.UploadFailed{Notice: notice})
}
