package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docparse-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docparse-cli/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
}

func TestStatusBar_ShowNotice(t *testing.T) {
	bar := NewBar(nil)

	bar.ShowNotice(domain.Notice{Level: domain.NoticeError, Message: "Failed to fetch dashboard data"})
	assert.Equal(t, StateError, bar.State())
	assert.Contains(t, bar.View(), "Failed to fetch dashboard data")

	bar.ShowNotice(domain.Notice{Level: domain.NoticeInfo, Message: "Document deleted successfully"})
	assert.Equal(t, StateInfo, bar.State())
	assert.Contains(t, bar.View(), "Document deleted successfully")
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		message  string
		expected string
	}{
		{"ready", StateReady, "", "Ready"},
		{"loading", StateLoading, "", "Loading..."},
		{"loading with message", StateLoading, "Processing...", "Processing..."},
		{"error without message", StateError, "", "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil)
			bar.SetWidth(120)
			switch tt.state {
			case StateLoading:
				bar.Loading(tt.message)
			case StateError:
				bar.ShowNotice(domain.Notice{Level: domain.NoticeError, Message: tt.message})
			}

			assert.Contains(t, bar.View(), tt.expected)
		})
	}
}

func TestStatusBar_Hints(t *testing.T) {
	bar := NewBar(nil)
	bar.SetWidth(200)
	bar.SetHints(keymap.DefaultKeyMap().DashboardHelp())

	view := bar.View()

	assert.Contains(t, view, "r: refresh")
	assert.Contains(t, view, "d: delete")
	assert.Contains(t, view, "q: quit")
}

func TestStatusBar_HintsDropWhenNarrow(t *testing.T) {
	hints := keymap.DefaultKeyMap().ConfirmHelp()

	wide := NewBar(nil)
	wide.SetWidth(30)
	wide.SetHints(hints)
	assert.Contains(t, wide.View(), "y: confirm | n: cancel")

	narrow := NewBar(nil)
	narrow.SetWidth(29)
	narrow.SetHints(hints)
	view := narrow.View()
	assert.Contains(t, view, "y: confirm")
	assert.NotContains(t, view, "n: cancel")
}

func TestStatusBar_Loading(t *testing.T) {
	bar := NewBar(nil)

	bar.Loading("Deleting document...")

	assert.Equal(t, StateLoading, bar.State())
	assert.Equal(t, "Deleting document...", bar.Message())
	assert.Contains(t, bar.View(), "Deleting document...")
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil)
	bar.ShowNotice(domain.Notice{Level: domain.NoticeError, Message: "boom"})

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
}
