// Package initcmd implements the interactive first-run wizard.
package initcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/stale/internal/core/config"
	"github.com/colonyops/stale/internal/core/styles"
	"github.com/colonyops/stale/internal/printer"
)

// WizardOptions configures the wizard behavior.
type WizardOptions struct {
	ConfigPath string
	VaultDir   string // pre-specified vault dir ("" = prompt)
	Yes        bool   // skip prompts, use defaults
	Force      bool   // overwrite existing config
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts WizardOptions
}

// NewWizard creates a new init wizard.
func NewWizard(opts WizardOptions) *Wizard {
	return &Wizard{opts: opts}
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	if ConfigExists(w.opts.ConfigPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", w.opts.ConfigPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(w.opts.ConfigPath + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if w.opts.VaultDir != "" {
		cfg.Vault.Dir = expandHome(w.opts.VaultDir)
	} else if cfg.Vault.Dir == "" {
		cfg.Vault.Dir = DefaultVaultDir()
	}

	if !w.opts.Yes {
		if err := w.promptUser(&cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}

	if ConfigExists(w.opts.ConfigPath) {
		backupPath, err := BackupConfig(w.opts.ConfigPath)
		if err != nil {
			return fmt.Errorf("backup config: %w", err)
		}
		if backupPath != "" {
			p.Successf("Backed up config to: %s", backupPath)
		}
	}

	if err := cfg.Save(w.opts.ConfigPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	p.Successf("Wrote config: %s", w.opts.ConfigPath)

	if _, err := os.Stat(cfg.Vault.Dir); os.IsNotExist(err) {
		if err := os.MkdirAll(cfg.Vault.Dir, 0o755); err != nil {
			p.Warnf("Could not create vault directory %s: %v", cfg.Vault.Dir, err)
		} else {
			p.Successf("Created vault directory: %s", cfg.Vault.Dir)
		}
	}

	p.Printf("")
	p.Infof("Run 'stale' to open the vault, or 'stale check' for a one-shot report")
	return nil
}

// promptUser collects the interactive answers into cfg.
func (w *Wizard) promptUser(cfg *config.Config) error {
	var (
		vaultDir   = cfg.Vault.Dir
		dateSource = string(cfg.Freshness.DateSource)
		minDays    = strconv.Itoa(cfg.Freshness.MinDaysToWarn)
		trigger    = string(cfg.Freshness.UpdateTrigger)
		theme      = cfg.TUI.Theme
		warnOnMiss = cfg.Freshness.WarnOnMissingDate
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Vault directory").
				Description("Where your markdown notes live").
				Value(&vaultDir),
			huh.NewSelect[string]().
				Title("Date source").
				Description("How the last-updated date of a note is determined").
				Options(
					huh.NewOption("File modified time", string(config.DateSourceModifiedTime)),
					huh.NewOption("Front matter key", string(config.DateSourceFrontMatter)),
					huh.NewOption("Regex capture group", string(config.DateSourceCaptureGroup)),
				).
				Value(&dateSource),
			huh.NewInput().
				Title("Days before a note counts as stale").
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("enter a non-negative number")
					}
					return nil
				}).
				Value(&minDays),
			huh.NewSelect[string]().
				Title("Re-check notes").
				Options(
					huh.NewOption("When opened", string(config.TriggerOnOpen)),
					huh.NewOption("When opened or saved", string(config.TriggerOnOpenOrSave)),
				).
				Value(&trigger),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions()...).
				Value(&theme),
			huh.NewConfirm().
				Title("Warn when a note has no date?").
				Value(&warnOnMiss),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Vault.Dir = expandHome(strings.TrimSpace(vaultDir))
	cfg.Freshness.DateSource = config.DateSource(dateSource)
	cfg.Freshness.MinDaysToWarn, _ = strconv.Atoi(strings.TrimSpace(minDays))
	cfg.Freshness.UpdateTrigger = config.UpdateTrigger(trigger)
	cfg.Freshness.WarnOnMissingDate = warnOnMiss
	cfg.TUI.Theme = theme
	return nil
}

func themeOptions() []huh.Option[string] {
	names := styles.ThemeNames()
	opts := make([]huh.Option[string], len(names))
	for i, name := range names {
		opts[i] = huh.NewOption(name, name)
	}
	return opts
}

// DefaultVaultDir is the suggested vault location for new setups.
func DefaultVaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "notes")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
