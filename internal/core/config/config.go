// Package config handles configuration loading and validation for stale.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DateSource selects the strategy used to resolve a note's last-updated date.
type DateSource string

// Supported date resolution strategies.
const (
	DateSourceModifiedTime DateSource = "modified-time"
	DateSourceFrontMatter  DateSource = "front-matter"
	DateSourceCaptureGroup DateSource = "capture-group"
)

// UpdateTrigger selects which events re-run the staleness evaluation.
type UpdateTrigger string

// Supported evaluation triggers.
const (
	TriggerOnOpen       UpdateTrigger = "on-open"
	TriggerOnOpenOrSave UpdateTrigger = "on-open-or-save"
)

// Config holds the application configuration.
type Config struct {
	Vault     Vault     `yaml:"vault"`
	Freshness Freshness `yaml:"freshness"`
	TUI       TUI       `yaml:"tui"`
}

// Vault describes where notes live and which files count as notes.
type Vault struct {
	// Dir is the vault root. Set by caller (flag), overridable from file.
	Dir string `yaml:"dir"`
	// Include holds doublestar glob patterns, relative to Dir.
	Include []string `yaml:"include"`
	// Exclude holds doublestar glob patterns removed from the include set.
	Exclude []string `yaml:"exclude"`
}

// Freshness is the staleness evaluation configuration. It is treated as an
// immutable snapshot for the duration of a single evaluation run.
type Freshness struct {
	// MessageTemplate supports ${numberOfDays} and ${date} placeholders.
	MessageTemplate string `yaml:"message_template"`
	// DateSource picks the resolution strategy.
	DateSource DateSource `yaml:"date_source"`
	// FrontMatterKey is the key read by the front-matter strategy.
	FrontMatterKey string `yaml:"front_matter_key"`
	// CaptureGroupPattern is a regex with a named group `date`, used by the
	// capture-group strategy.
	CaptureGroupPattern string `yaml:"capture_group_pattern"`
	// MinDaysToWarn is the age threshold in whole calendar days.
	MinDaysToWarn int `yaml:"min_days_to_warn"`
	// WarnOnMissingDate surfaces an error banner when no date resolves.
	WarnOnMissingDate bool `yaml:"warn_on_missing_date"`
	// UpdateTrigger controls whether save events re-run the evaluation.
	UpdateTrigger UpdateTrigger `yaml:"update_trigger"`
}

// TUI holds presentation settings.
type TUI struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Vault: Vault{
			Include: []string{"**/*.md"},
		},
		Freshness: Freshness{
			MessageTemplate: "Last updated ${numberOfDays} days ago (${date})",
			DateSource:      DateSourceModifiedTime,
			FrontMatterKey:  "updated",
			MinDaysToWarn:   180,
			UpdateTrigger:   TriggerOnOpen,
		},
		TUI: TUI{
			Theme: "tokyo-night",
		},
	}
}

// Load reads configuration from the given path and sets the vault directory.
// If configPath is empty or doesn't exist, returns defaults with the provided
// vaultDir. An explicit dir in the config file takes precedence over vaultDir.
func Load(configPath, vaultDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if cfg.Vault.Dir == "" {
		cfg.Vault.Dir = vaultDir
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values that yaml may have cleared.
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Freshness.MessageTemplate == "" {
		c.Freshness.MessageTemplate = def.Freshness.MessageTemplate
	}
	if c.Freshness.DateSource == "" {
		c.Freshness.DateSource = def.Freshness.DateSource
	}
	if c.Freshness.FrontMatterKey == "" {
		c.Freshness.FrontMatterKey = def.Freshness.FrontMatterKey
	}
	if c.Freshness.UpdateTrigger == "" {
		c.Freshness.UpdateTrigger = def.Freshness.UpdateTrigger
	}
	if len(c.Vault.Include) == 0 {
		c.Vault.Include = def.Vault.Include
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = def.TUI.Theme
	}
}

// Save writes the configuration as YAML to the given path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
