// Package render turns domain values into display structures.
//
// Every function is pure: no I/O and no state beyond its arguments.
// The structures carry json and yaml tags so the CLI can print them directly,
// and the TUI formats the same fields with lipgloss.
//
// Empty skills, empty metadata, missing job recommendations and a zero match
// score are ordinary inputs and produce empty (never nil-panicking) output.
package render
