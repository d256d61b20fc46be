package tui

import "errors"

// ErrMissingScreens is returned when neither the dashboard nor the upload port is provided.
var ErrMissingScreens = errors.New("tui: a dashboard poller or an upload orchestrator is required")

// ErrMissingInspector is returned when uploads are enabled without a file inspector.
var ErrMissingInspector = errors.New("tui: file inspector is required for uploads")
