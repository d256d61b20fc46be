// Package config resolves the effective client settings.
//
// Values come from, highest first: command-line flags, DOCPARSE_* environment
// variables, the TOML config file (see package file) and built-in defaults.
package config
