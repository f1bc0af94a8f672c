package cli

import (
	"cmp"
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/kbukum/seqkit/pipeline"
	"github.com/kbukum/seqkit/validation"
)

const (
	groupByLength  = "length"
	groupByInitial = "initial"
)

type groupRow struct {
	Key    string
	Count  int
	Sample string
}

func groupCommand() *cli.Command {
	var by string
	var sample int

	return &cli.Command{
		Name:      "group",
		Usage:     "group distinct words by length or initial letter",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "by",
				Value:       groupByLength,
				Usage:       "grouping key, one of length, initial",
				Destination: &by,
			},
			&cli.IntFlag{
				Name:        "sample",
				Value:       3,
				Usage:       "number of example words per group",
				Destination: &sample,
			},
		},
		Action: func(c *cli.Context) error {
			if err := validation.New().
				OneOf("by", by, []string{groupByLength, groupByInitial}).
				Min("sample", sample, 0).
				Validate(); err != nil {
				return err
			}

			rt := runtimeOf(c)
			lines, err := openLines(c)
			if err != nil {
				return err
			}
			words := instrument[string](rt, "words")(wordTokens(instrument[string](rt, "lines")(lines)))

			var groups pipeline.Iterator[groupRow]
			switch by {
			case groupByInitial:
				groups = groupWords(words, initial, sample)
			default:
				groups = groupWords(words, lengthOf, sample)
			}
			result, err := pipeline.Run(c.Context, groups, pipeline.IntoSlice[groupRow])
			if err != nil {
				return err
			}

			rows := lo.Map(result, func(g groupRow, _ int) []string {
				return []string{g.Key, humanize.Comma(int64(g.Count)), g.Sample}
			})
			return renderTable(c.App.Writer, []string{"KEY", "WORDS", "SAMPLE"}, rows)
		},
	}
}

func lengthOf(word string) int { return utf8.RuneCountInString(word) }

func initial(word string) string {
	r, _ := utf8.DecodeRuneInString(word)
	return string(r)
}

// groupWords buckets the distinct words by key, ordered by key. Each row
// carries up to sample words of the bucket joined by ", ".
func groupWords[K cmp.Ordered](words pipeline.Iterator[string], key func(string) K, sample int) pipeline.Iterator[groupRow] {
	return pipeline.Pipe3(pipeline.Distinct[string]()(words),
		pipeline.GroupBy(key),
		pipeline.SortFunc(pipeline.ByLeft[K, []string]),
		pipeline.MapErr(func(ctx context.Context, g pipeline.Pair[K, []string]) (groupRow, error) {
			joined, err := pipeline.PipeTo(ctx, pipeline.FromSlice(g.Right),
				pipeline.Reduce("", func(acc, s string) string { return acc + s }),
				pipeline.Take[string](sample),
				pipeline.Interpose(", "),
			)
			return groupRow{Key: fmt.Sprint(g.Left), Count: len(g.Right), Sample: joined}, err
		}),
	)
}
