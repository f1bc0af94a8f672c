package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/kbukum/seqkit/version"
)

func versionCommand() *cli.Command {
	var deps bool

	return &cli.Command{
		Name:  "version",
		Usage: "show build information",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "deps",
				Usage:       "also list the modules linked into the binary",
				Destination: &deps,
			},
		},
		Action: func(c *cli.Context) error {
			info := version.GetVersionInfo()
			rows := info.Pairs()
			if !info.BuildDate.IsZero() {
				rows = append(rows, []string{"age", humanize.Time(info.BuildDate)})
			}
			if err := renderTable(c.App.Writer, []string{"FIELD", "VALUE"}, rows); err != nil {
				return err
			}
			if !deps || len(info.Deps) == 0 {
				return nil
			}

			if _, err := fmt.Fprintln(c.App.Writer); err != nil {
				return err
			}
			depRows := lo.Map(info.Deps, func(d version.Dependency, _ int) []string {
				return []string{d.Path, d.Version}
			})
			return renderTable(c.App.Writer, []string{"MODULE", "VERSION"}, depRows)
		},
	}
}
