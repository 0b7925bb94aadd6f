package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/nameswap/internal/resolve"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Staging modes
const (
	StagingRandom = "random"
	StagingFixed  = "fixed"
)

// Settings controls how exchanges are resolved and executed.
type Settings struct {
	// BaseDir anchors relative input; empty means the executable's directory
	BaseDir string `yaml:"base_dir" json:"base_dir"`

	// Relative is the relative input mode: basename, join or reject
	Relative string `yaml:"relative" json:"relative"`

	// Staging is "random" (fresh name per exchange) or "fixed" (legacy name)
	Staging string `yaml:"staging" json:"staging"`

	// LegacyCodes folds permission failures into code 2
	LegacyCodes bool `yaml:"legacy_codes" json:"legacy_codes"`

	// Rollback undoes applied renames when a later rename fails
	Rollback bool `yaml:"rollback" json:"rollback"`

	// Journal records every exchange under the journal directory
	Journal bool `yaml:"journal" json:"journal"`

	// Lock serializes exchanges through the lock file
	Lock bool `yaml:"lock" json:"lock"`

	// LockTimeout bounds how long an exchange waits for the lock
	LockTimeout time.Duration `yaml:"lock_timeout" json:"lock_timeout"`

	// NoReplace refuses renames onto existing destinations where supported
	NoReplace bool `yaml:"no_replace" json:"no_replace"`

	// LogLevel is a logrus level name
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat is "text" or "json"
	LogFormat string `yaml:"log_format" json:"log_format"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Relative:    string(resolve.RelativeBasename),
		Staging:     StagingRandom,
		Journal:     true,
		Lock:        true,
		LockTimeout: 5 * time.Second,
		NoReplace:   true,
		LogLevel:    "warn",
		LogFormat:   LogFormatText,
	}
}

// LoadSettings reads settings from path on top of the defaults. A missing
// file is not an error.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return settings, nil
}

// ApplyEnv overrides settings from NAMESWAP_* variables looked up with getenv.
func (s *Settings) ApplyEnv(getenv func(string) string) error {
	if v := getenv("NAMESWAP_BASE_DIR"); v != "" {
		s.BaseDir = v
	}
	if v := getenv("NAMESWAP_RELATIVE"); v != "" {
		s.Relative = v
	}
	if v := getenv("NAMESWAP_STAGING"); v != "" {
		s.Staging = v
	}
	if v := getenv("NAMESWAP_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := getenv("NAMESWAP_LOG_FORMAT"); v != "" {
		s.LogFormat = v
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"NAMESWAP_LEGACY_CODES", &s.LegacyCodes},
		{"NAMESWAP_ROLLBACK", &s.Rollback},
		{"NAMESWAP_JOURNAL", &s.Journal},
		{"NAMESWAP_LOCK", &s.Lock},
		{"NAMESWAP_NO_REPLACE", &s.NoReplace},
	}
	for _, b := range bools {
		v := getenv(b.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", b.key, v, err)
		}
		*b.dst = parsed
	}

	if v := getenv("NAMESWAP_LOCK_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid NAMESWAP_LOCK_TIMEOUT=%q: %w", v, err)
		}
		s.LockTimeout = d
	}

	return s.Validate()
}

// Validate checks enumerated fields.
func (s *Settings) Validate() error {
	if _, err := resolve.ParseRelativeMode(s.Relative); err != nil {
		return err
	}
	switch strings.ToLower(s.Staging) {
	case "", StagingRandom, StagingFixed:
	default:
		return fmt.Errorf("invalid staging mode %q: must be random or fixed", s.Staging)
	}
	switch strings.ToLower(s.LogFormat) {
	case "", LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", s.LogFormat)
	}
	if s.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must not be negative")
	}
	return nil
}

// RelativeMode returns the parsed relative mode.
func (s *Settings) RelativeMode() resolve.RelativeMode {
	mode, err := resolve.ParseRelativeMode(s.Relative)
	if err != nil {
		return resolve.RelativeBasename
	}
	return mode
}

// FixedStaging returns true if the legacy fixed staging name is configured.
func (s *Settings) FixedStaging() bool {
	return strings.EqualFold(s.Staging, StagingFixed)
}

// JSONLogs returns true if logs are written with the JSON formatter.
func (s *Settings) JSONLogs() bool {
	return strings.EqualFold(s.LogFormat, LogFormatJSON)
}

// YAML renders the settings as a config file.
func (s *Settings) YAML() (string, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal settings: %w", err)
	}
	return string(data), nil
}
