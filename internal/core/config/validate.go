package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// dateGroupName is the named capture group the capture-group strategy reads.
const dateGroupName = "date"

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("freshness.date_source", c.Freshness.DateSource, validDateSource),
		criterio.Run("freshness.update_trigger", c.Freshness.UpdateTrigger, validUpdateTrigger),
		criterio.Run("freshness.min_days_to_warn", c.Freshness.MinDaysToWarn, nonNegative),
		criterio.Run("freshness.message_template", c.Freshness.MessageTemplate, nonEmpty),
		c.validateStrategyInputs(),
		c.validateGlobs(),
	)
}

// ValidateDeep runs Validate plus I/O checks against the filesystem.
func (c *Config) ValidateDeep() error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		criterio.Run("vault.dir", c.Vault.Dir, isDirectoryOrNotExist),
	)
}

// validateStrategyInputs checks the fields the selected strategy depends on.
func (c *Config) validateStrategyInputs() error {
	switch c.Freshness.DateSource {
	case DateSourceFrontMatter:
		return criterio.Run("freshness.front_matter_key", c.Freshness.FrontMatterKey, nonEmpty)
	case DateSourceCaptureGroup:
		return criterio.Run("freshness.capture_group_pattern", c.Freshness.CaptureGroupPattern, hasDateGroup)
	default:
		return nil
	}
}

func (c *Config) validateGlobs() error {
	var errs []error
	for _, pattern := range append(append([]string{}, c.Vault.Include...), c.Vault.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, criterio.NewFieldErrors("vault.include", fmt.Errorf("invalid glob pattern: %s", pattern)))
		}
	}
	return criterio.ValidateStruct(errs...)
}

func validDateSource(s DateSource) error {
	switch s {
	case DateSourceModifiedTime, DateSourceFrontMatter, DateSourceCaptureGroup:
		return nil
	}
	return fmt.Errorf("must be one of: %s, %s, %s", DateSourceModifiedTime, DateSourceFrontMatter, DateSourceCaptureGroup)
}

func validUpdateTrigger(s UpdateTrigger) error {
	switch s {
	case TriggerOnOpen, TriggerOnOpenOrSave:
		return nil
	}
	return fmt.Errorf("must be one of: %s, %s", TriggerOnOpen, TriggerOnOpenOrSave)
}

func nonNegative(n int) error {
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func nonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

// hasDateGroup validates the pattern compiles and names a `date` group.
func hasDateGroup(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("is required for the capture-group strategy")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	if re.SubexpIndex(dateGroupName) < 0 {
		return fmt.Errorf("pattern must contain a named group (?P<%s>...)", dateGroupName)
	}
	return nil
}

// isDirectoryOrNotExist allows missing dirs (created later) but rejects files.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return fmt.Errorf("is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is a file, not a directory", path)
	}
	return nil
}
