// Package driving defines the interfaces the CLI and TUI use to drive
// uploads and the dashboard, plus the observer callbacks through which
// services report back.
//
// Implementations live in internal/core/services.
package driving
