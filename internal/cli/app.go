// Package cli implements the seqkit command-line tool: text pipelines over
// files or stdin, rendered as tables.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/version"
)

type globalOptions struct {
	configFile string
	logLevel   string
	trace      bool
	otel       bool
}

// NewApp builds the seqkit application. Command output goes to out,
// input is read from in when no file argument is given.
func NewApp(in io.Reader, out, errOut io.Writer) *cli.App {
	opts := &globalOptions{}

	return &cli.App{
		Name:                   "seqkit",
		Usage:                  "lazy text pipelines over files and stdin",
		Version:                version.GetShortVersion(),
		Reader:                 in,
		Writer:                 out,
		ErrWriter:              errOut,
		Suggest:                true,
		UseShortOptionHandling: true,
		Metadata:               map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "config file (default: ./.seqkit.yml, ./config.yml, user config dir)",
				Destination: &opts.configFile,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level, one of trace, debug, info, warn, error, disabled",
				Destination: &opts.logLevel,
			},
			&cli.BoolFlag{
				Name:        "trace",
				Usage:       "log every value flowing through the pipeline (implies debug logging)",
				Destination: &opts.trace,
			},
			&cli.BoolFlag{
				Name:        "otel",
				Usage:       "export pipeline spans and metrics over OTLP",
				Destination: &opts.otel,
			},
		},
		Before: func(c *cli.Context) error {
			return setup(c, opts)
		},
		After: func(c *cli.Context) error {
			if rt, ok := lookupRuntime(c); ok {
				return rt.close()
			}
			return nil
		},
		Commands: []*cli.Command{
			wordsCommand(),
			groupCommand(),
			sliceCommand(),
			versionCommand(),
		},
	}
}

// ExitCode maps a command error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return errors.ExitCode(appErr.Code)
	}
	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
