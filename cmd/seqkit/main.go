package main

import (
	"os"

	"github.com/kbukum/seqkit/internal/cli"
	"github.com/kbukum/seqkit/logger"
)

func main() {
	app := cli.NewApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logger.Error("command failed", logger.ErrorFields("seqkit", err))
		os.Exit(cli.ExitCode(err))
	}
}
