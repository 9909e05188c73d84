// Command docgen generates CLI reference documentation from the stale
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/stale/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "stale",
		Usage:     "Flag notes that have gone stale",
		UsageText: "stale [global options] command [command options]",
		Description: `Stale keeps an eye on the last-updated date of your markdown notes and
flags the ones that have not been touched in too long.

Run 'stale' with no arguments to open the interactive note browser; stale
notes carry a banner above their content. Run 'stale check' for a one-shot
report suitable for scripts.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("STALE_LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "path to log file (empty logs to stderr)",
				Sources: cli.EnvVars("STALE_LOG_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("STALE_CONFIG"),
				Value:   commands.DefaultConfigPath(),
			},
			&cli.StringFlag{
				Name:    "vault",
				Usage:   "path to the notes vault (overrides config)",
				Sources: cli.EnvVars("STALE_VAULT"),
			},
		},
	}

	root = commands.NewCheckCmd(flags).Register(root)
	root = commands.NewInitCmd(flags).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
