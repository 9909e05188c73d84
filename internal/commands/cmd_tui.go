package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/stale/internal/core/eventbus"
	"github.com/colonyops/stale/internal/core/vault"
	"github.com/colonyops/stale/internal/freshness"
	"github.com/colonyops/stale/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	v := vault.New(cfg.Vault.Dir, cfg.Vault.Include, cfg.Vault.Exclude)
	if !v.Exists() {
		return fmt.Errorf("vault directory does not exist: %s (run 'stale init' to set one up)", cfg.Vault.Dir)
	}

	bus := eventbus.New()
	eventbus.RegisterDebugLogger(bus, log.Logger)

	views := tui.NewViewManager()
	settingsReq := &tui.SettingsRequest{}
	presenter := freshness.NewPresenter(settingsReq)

	ctrl, err := freshness.NewController(views, bus, presenter, cfg.Freshness)
	if err != nil {
		return fmt.Errorf("freshness controller: %w", err)
	}
	ctrl.Load(ctx)
	defer ctrl.Unload()

	watcher, err := tui.NewNoteWatcher(v)
	if err != nil {
		log.Warn().Err(err).Msg("vault watcher unavailable, save events disabled")
		watcher = nil
	} else {
		defer watcher.Close() //nolint:errcheck
	}

	model := tui.New(tui.Deps{
		Config:      cfg,
		ConfigPath:  cmd.flags.ConfigPath,
		Bus:         bus,
		Vault:       v,
		Views:       views,
		Controller:  ctrl,
		SettingsReq: settingsReq,
		Watcher:     watcher,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
