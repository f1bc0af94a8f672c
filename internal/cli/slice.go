package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kbukum/seqkit/pipeline"
	"github.com/kbukum/seqkit/validation"
)

type numberedLine = pipeline.Pair[int, string]

type sliceOptions struct {
	Drop       int
	Take       int
	WhileBlank bool
}

func sliceCommand() *cli.Command {
	opts := &sliceOptions{}

	return &cli.Command{
		Name:      "slice",
		Usage:     "print a range of lines with their line numbers",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "while-blank",
				Usage:       "skip leading blank lines first",
				Destination: &opts.WhileBlank,
			},
			&cli.IntFlag{
				Name:        "drop",
				Usage:       "skip this many lines",
				Destination: &opts.Drop,
			},
			&cli.IntFlag{
				Name:        "take",
				Usage:       "print at most this many lines, 0 for all",
				Destination: &opts.Take,
			},
		},
		Action: func(c *cli.Context) error {
			if err := validation.New().
				Min("drop", opts.Drop, 0).
				Min("take", opts.Take, 0).
				Validate(); err != nil {
				return err
			}

			rt := runtimeOf(c)
			lines, err := openLines(c)
			if err != nil {
				return err
			}
			out := c.App.Writer
			_, err = pipeline.Run(c.Context, sliceLines(instrument[string](rt, "lines")(lines), *opts),
				pipeline.ForEach(func(_ context.Context, l numberedLine) error {
					_, err := fmt.Fprintf(out, "%6d  %s\n", l.Left+1, l.Right)
					return err
				}))
			return err
		},
	}
}

// sliceLines numbers lines from zero, then applies the blank-prefix skip,
// the drop and the take in that order. Output streams, so an unbounded
// input is fine as long as take is set.
func sliceLines(lines pipeline.Iterator[string], opts sliceOptions) pipeline.Iterator[numberedLine] {
	var ops []pipeline.Operator[numberedLine, numberedLine]
	if opts.WhileBlank {
		ops = append(ops, pipeline.DropWhile(func(l numberedLine) bool {
			return strings.TrimSpace(l.Right) == ""
		}))
	}
	ops = append(ops, pipeline.Drop[numberedLine](opts.Drop))
	if opts.Take > 0 {
		ops = append(ops, pipeline.Take[numberedLine](opts.Take))
	}
	return pipeline.Pipe(pipeline.Indexed[string]()(lines), ops...)
}
