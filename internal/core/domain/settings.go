package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// OutputFormat selects how CLI commands print results.
type OutputFormat string

// Available output formats.
const (
	// OutputText is the human-readable layout.
	OutputText OutputFormat = "text"

	// OutputJSON prints the rendered structures as JSON.
	OutputJSON OutputFormat = "json"

	// OutputYAML prints the rendered structures as YAML.
	OutputYAML OutputFormat = "yaml"
)

// IsValid returns true if the format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputText, OutputJSON, OutputYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f OutputFormat) Description() string {
	switch f {
	case OutputText:
		return "Text (human readable)"
	case OutputJSON:
		return "JSON"
	case OutputYAML:
		return "YAML"
	default:
		return unknownDescription
	}
}

// Default client settings.
const (
	DefaultBaseURL           = "http://localhost:8000"
	DefaultTimeout           = 120 * time.Second
	DefaultPollInterval      = 30 * time.Second
	DefaultRequestsPerSecond = 10.0
	DefaultBurst             = 10
	DefaultMaxUploadSize     = 50 * 1000 * 1000
)

// ClientSettings is the explicit configuration injected into the API client,
// the upload orchestrator and the dashboard poller.
type ClientSettings struct {
	// BaseURL is the document service endpoint.
	BaseURL string

	// Timeout bounds each HTTP request. Uploads run OCR and AI server-side,
	// so this is generous by default.
	Timeout time.Duration

	// PollInterval is the dashboard auto-refresh period.
	PollInterval time.Duration

	// RequestsPerSecond and Burst throttle outgoing requests.
	RequestsPerSecond float64
	Burst             int

	// Username is the default submitting username, may be empty.
	Username string

	// DropDir is a folder watched for files to queue, may be empty.
	DropDir string

	// MaxUploadSize rejects larger files before submission. Zero disables the check.
	MaxUploadSize int64

	// Output is the default CLI output format.
	Output OutputFormat
}

// DefaultClientSettings returns settings pointing at a local service.
func DefaultClientSettings() ClientSettings {
	return ClientSettings{
		BaseURL:           DefaultBaseURL,
		Timeout:           DefaultTimeout,
		PollInterval:      DefaultPollInterval,
		RequestsPerSecond: DefaultRequestsPerSecond,
		Burst:             DefaultBurst,
		MaxUploadSize:     DefaultMaxUploadSize,
		Output:            OutputText,
	}
}

// Validate checks the settings are usable.
func (s ClientSettings) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: base url %q must be an absolute http(s) url", ErrInvalidInput, s.BaseURL)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidInput)
	}
	if s.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalidInput)
	}
	if s.RequestsPerSecond <= 0 || s.Burst <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidInput)
	}
	if s.MaxUploadSize < 0 {
		return fmt.Errorf("%w: max upload size must not be negative", ErrInvalidInput)
	}
	if !s.Output.IsValid() {
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidInput, s.Output)
	}
	return nil
}

// NormalisedBaseURL returns BaseURL without a trailing slash.
func (s ClientSettings) NormalisedBaseURL() string {
	return strings.TrimRight(s.BaseURL, "/")
}
