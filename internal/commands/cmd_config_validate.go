package commands

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/stale/internal/printer"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "stale config validate [options]",
				Description: "Validates the configuration file, checking strategy inputs, regex patterns, glob patterns, and the vault directory.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})
	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	err := cmd.flags.Config.ValidateDeep()

	var fieldErrs criterio.FieldErrors
	if err != nil && !errors.As(err, &fieldErrs) {
		return err
	}

	if cmd.format == "json" {
		return cmd.outputJSON(c, fieldErrs)
	}
	return cmd.outputText(printer.Ctx(ctx), fieldErrs)
}

func (cmd *ConfigValidateCmd) outputJSON(c *cli.Command, fieldErrs criterio.FieldErrors) error {
	type fieldError struct {
		Field string `json:"field"`
		Error string `json:"error"`
	}

	out := struct {
		Valid  bool         `json:"valid"`
		Errors []fieldError `json:"errors,omitempty"`
	}{Valid: len(fieldErrs) == 0}

	for _, fe := range fieldErrs {
		out.Errors = append(out.Errors, fieldError{Field: fe.Field, Error: fe.Err.Error()})
	}

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if !out.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigValidateCmd) outputText(p *printer.Printer, fieldErrs criterio.FieldErrors) error {
	if len(fieldErrs) == 0 {
		p.Successf("configuration is valid: %s", cmd.flags.ConfigPath)
		return nil
	}

	for _, fe := range fieldErrs {
		p.Errorf("%s: %s", fe.Field, fe.Err)
	}
	return cli.Exit("", 1)
}
