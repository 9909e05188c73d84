package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/stale/internal/core/styles"
	"github.com/colonyops/stale/internal/core/vault"
	"github.com/colonyops/stale/internal/freshness"
	"github.com/colonyops/stale/internal/printer"
)

type CheckCmd struct {
	flags  *Flags
	format string
	all    bool
}

// checkResult is one note's staleness report.
type checkResult struct {
	Path    string `json:"path"`
	Stale   bool   `json:"stale"`
	Days    int    `json:"days"`
	Date    string `json:"date,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewCheckCmd creates a new check command.
func NewCheckCmd(flags *Flags) *CheckCmd {
	return &CheckCmd{flags: flags}
}

// Register adds the check command to the application.
func (cmd *CheckCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "check",
		Usage:     "Report stale notes without opening the TUI",
		UsageText: "stale check [options] [note...]",
		Description: `Scans the vault (or the given vault-relative notes) and reports every
note whose resolved date exceeds the staleness threshold.

Exits with code 1 when at least one stale note is found, which makes the
command usable from scripts and CI.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "all",
				Aliases:     []string{"a"},
				Usage:       "list fresh notes too, not just stale ones",
				Destination: &cmd.all,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *CheckCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config

	v := vault.New(cfg.Vault.Dir, cfg.Vault.Include, cfg.Vault.Exclude)
	if !v.Exists() {
		return fmt.Errorf("vault directory does not exist: %s", cfg.Vault.Dir)
	}

	notes := c.Args().Slice()
	if len(notes) == 0 {
		var err error
		notes, err = v.List()
		if err != nil {
			return fmt.Errorf("list vault: %w", err)
		}
	}

	resolver, err := freshness.NewResolver(cfg.Freshness)
	if err != nil {
		return fmt.Errorf("date resolver: %w", err)
	}

	now := time.Now()
	results := make([]checkResult, 0, len(notes))
	staleCount := 0

	for _, rel := range notes {
		res := cmd.checkNote(ctx, resolver, v, rel, now)
		if res.Stale {
			staleCount++
		}
		results = append(results, res)
	}

	if cmd.format == "json" {
		if err := cmd.outputJSON(c, results); err != nil {
			return err
		}
	} else {
		cmd.outputText(printer.Ctx(ctx), results, staleCount)
	}

	if staleCount > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *CheckCmd) checkNote(ctx context.Context, resolver *freshness.Resolver, v *vault.Vault, rel string, now time.Time) checkResult {
	res := checkResult{Path: rel}

	doc := freshness.NewFileDocument(v.Abs(rel))
	resolved, err := resolver.Resolve(ctx, doc)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	decision := freshness.Evaluate(resolved, cmd.flags.Config.Freshness, now)
	res.Stale = decision.Show
	res.Message = decision.Text
	if resolved.Found {
		res.Days = freshness.DaysBetween(resolved.Time, now)
		res.Date = resolved.Time.Format("2006-01-02")
	}
	return res
}

func (cmd *CheckCmd) outputJSON(c *cli.Command, results []checkResult) error {
	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func (cmd *CheckCmd) outputText(p *printer.Printer, results []checkResult, staleCount int) {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	pathStyle := lipgloss.NewStyle().Foreground(styles.Theme().Foreground)

	for _, res := range results {
		switch {
		case res.Error != "":
			p.Errorf("%s: %s", res.Path, res.Error)
		case res.Stale:
			line := fmt.Sprintf("%s: %s", pathStyle.Render(res.Path), res.Message)
			p.Warnf("%s", truncate(line, width-2))
		case cmd.all:
			p.Successf("%s: up to date", res.Path)
		}
	}

	if staleCount == 0 {
		p.Successf("%d notes checked, none stale", len(results))
	} else {
		p.Printf("")
		p.Warnf("%d of %d notes are stale", staleCount, len(results))
	}
}

// truncate shortens s to the given display width. The line carries ANSI
// styling, so the cut must count cells and keep escape sequences whole.
func truncate(s string, limit int) string {
	if limit <= 3 {
		return s
	}
	return ansi.Truncate(s, limit, "...")
}
