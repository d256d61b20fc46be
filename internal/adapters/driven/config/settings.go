package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/custodia-labs/docparse-cli/internal/core/domain"
	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
)

// Config keys as stored in config.toml.
const (
	KeyBaseURL           = "api.url"
	KeyTimeout           = "api.timeout"
	KeyRequestsPerSecond = "api.requests_per_second"
	KeyBurst             = "api.burst"
	KeyPollInterval      = "dashboard.poll_interval"
	KeyUsername          = "upload.username"
	KeyDropDir           = "upload.drop_dir"
	KeyMaxUploadSize     = "upload.max_size"
	KeyOutput            = "output.format"
)

// Key describes one supported setting.
type Key struct {
	Name        string
	Flag        string
	Env         []string
	Description string
}

// Keys lists every supported setting in display order.
var Keys = []Key{
	{KeyBaseURL, "api-url", []string{"DOCPARSE_API_URL", "NEXT_PUBLIC_API_URL"}, "Document service base URL"},
	{KeyTimeout, "timeout", []string{"DOCPARSE_TIMEOUT"}, "Per-request timeout (e.g. 2m)"},
	{KeyRequestsPerSecond, "", []string{"DOCPARSE_REQUESTS_PER_SECOND"}, "Outgoing request rate limit"},
	{KeyBurst, "", []string{"DOCPARSE_BURST"}, "Outgoing request burst"},
	{KeyPollInterval, "poll-interval", []string{"DOCPARSE_POLL_INTERVAL"}, "Dashboard refresh interval (e.g. 30s)"},
	{KeyUsername, "user", []string{"DOCPARSE_USERNAME"}, "Default uploading username"},
	{KeyDropDir, "drop-dir", []string{"DOCPARSE_DROP_DIR"}, "Folder watched for files to queue"},
	{KeyMaxUploadSize, "max-upload-size", []string{"DOCPARSE_MAX_UPLOAD_SIZE"}, "Largest accepted file (e.g. 50MB, 0 to disable)"},
	{KeyOutput, "output", []string{"DOCPARSE_OUTPUT"}, "Output format (text, json, yaml)"},
}

// LookupKey returns the setting with the given name.
func LookupKey(name string) (Key, bool) {
	for _, k := range Keys {
		if k.Name == name {
			return k, true
		}
	}
	return Key{}, false
}

// Resolve builds the effective settings. store and flags may be nil.
// Only flags that were set on the command line override other sources.
func Resolve(store driven.ConfigStore, flags *pflag.FlagSet) (domain.ClientSettings, error) {
	v := newViper()

	if store != nil {
		fileValues := make(map[string]any)
		for _, key := range store.Keys() {
			if _, ok := LookupKey(key); !ok {
				continue
			}
			if val, ok := store.Get(key); ok {
				setNested(fileValues, key, val)
			}
		}
		if err := v.MergeConfigMap(fileValues); err != nil {
			return domain.ClientSettings{}, fmt.Errorf("%w: config file: %w", domain.ErrInvalidInput, err)
		}
	}

	for _, k := range Keys {
		if err := v.BindEnv(append([]string{k.Name}, k.Env...)...); err != nil {
			return domain.ClientSettings{}, err
		}
		if flags == nil || k.Flag == "" {
			continue
		}
		if f := flags.Lookup(k.Flag); f != nil && f.Changed {
			if err := v.BindPFlag(k.Name, f); err != nil {
				return domain.ClientSettings{}, err
			}
		}
	}

	return fromViper(v)
}

// Check reports whether value is acceptable for key, ignoring every other source.
func Check(key, value string) error {
	if _, ok := LookupKey(key); !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	v := newViper()
	v.Set(key, value)
	_, err := fromViper(v)
	return err
}

func newViper() *viper.Viper {
	v := viper.New()

	defaults := domain.DefaultClientSettings()
	v.SetDefault(KeyBaseURL, defaults.BaseURL)
	v.SetDefault(KeyTimeout, defaults.Timeout.String())
	v.SetDefault(KeyRequestsPerSecond, defaults.RequestsPerSecond)
	v.SetDefault(KeyBurst, defaults.Burst)
	v.SetDefault(KeyPollInterval, defaults.PollInterval.String())
	v.SetDefault(KeyUsername, "")
	v.SetDefault(KeyDropDir, "")
	v.SetDefault(KeyMaxUploadSize, defaults.MaxUploadSize)
	v.SetDefault(KeyOutput, defaults.Output.String())
	return v
}

func fromViper(v *viper.Viper) (domain.ClientSettings, error) {
	var err error
	s := domain.ClientSettings{
		BaseURL:  strings.TrimSpace(v.GetString(KeyBaseURL)),
		Username: strings.TrimSpace(v.GetString(KeyUsername)),
		DropDir:  strings.TrimSpace(v.GetString(KeyDropDir)),
		Output:   domain.OutputFormat(strings.ToLower(strings.TrimSpace(v.GetString(KeyOutput)))),
	}

	if s.Timeout, err = ParseDuration(v.Get(KeyTimeout)); err != nil {
		return s, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, KeyTimeout, err)
	}
	if s.PollInterval, err = ParseDuration(v.Get(KeyPollInterval)); err != nil {
		return s, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, KeyPollInterval, err)
	}
	if s.MaxUploadSize, err = ParseSize(v.Get(KeyMaxUploadSize)); err != nil {
		return s, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, KeyMaxUploadSize, err)
	}
	if s.RequestsPerSecond, err = strconv.ParseFloat(v.GetString(KeyRequestsPerSecond), 64); err != nil {
		return s, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, KeyRequestsPerSecond, err)
	}
	if s.Burst, err = strconv.Atoi(v.GetString(KeyBurst)); err != nil {
		return s, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, KeyBurst, err)
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// ParseDuration accepts a Go duration string or a number of seconds.
func ParseDuration(val any) (time.Duration, error) {
	switch v := val.(type) {
	case time.Duration:
		return v, nil
	case int:
		return time.Duration(v) * time.Second, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case string:
		v = strings.TrimSpace(v)
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			return time.Duration(secs * float64(time.Second)), nil
		}
		return time.ParseDuration(v)
	default:
		return 0, fmt.Errorf("unsupported duration %v", val)
	}
}

// ParseSize accepts a byte count or a human size such as "50MB".
func ParseSize(val any) (int64, error) {
	switch v := val.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case string:
		return units.FromHumanSize(strings.TrimSpace(v))
	default:
		return 0, fmt.Errorf("unsupported size %v", val)
	}
}

func setNested(m map[string]any, key string, val any) {
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		child, ok := m[part].(map[string]any)
		if !ok {
			child = make(map[string]any)
			m[part] = child
		}
		m = child
	}
	m[parts[len(parts)-1]] = val
}
