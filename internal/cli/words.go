package cli

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/kbukum/seqkit/pipeline"
	"github.com/kbukum/seqkit/validation"
)

type wordCount = pipeline.Pair[string, int]

type wordsOptions struct {
	Top    int
	MinLen int
	Stop   *pipeline.Set[string]
}

// wordStats is filled in while the pipeline runs.
type wordStats struct {
	Words    int
	Distinct int
}

func wordsCommand() *cli.Command {
	var top, minLen int

	return &cli.Command{
		Name:      "words",
		Usage:     "count word frequencies",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "top",
				Aliases:     []string{"n"},
				Usage:       "number of words to show (default from config)",
				Destination: &top,
			},
			&cli.IntFlag{
				Name:        "min-len",
				Usage:       "ignore words shorter than this many letters (default from config)",
				Destination: &minLen,
			},
			&cli.StringSliceFlag{
				Name:  "stop",
				Usage: "comma separated words to ignore, added to the configured stop words",
			},
		},
		Action: func(c *cli.Context) error {
			rt := runtimeOf(c)
			opts := wordsOptions{Top: rt.cfg.Words.Top, MinLen: rt.cfg.Words.MinLen}
			if c.IsSet("top") {
				opts.Top = top
			}
			if c.IsSet("min-len") {
				opts.MinLen = minLen
			}
			if err := validation.New().
				Min("top", opts.Top, 1).
				Min("min-len", opts.MinLen, 0).
				Validate(); err != nil {
				return err
			}
			opts.Stop = pipeline.NewSet(normalizeWords(lo.Union(rt.cfg.Words.StopWords, c.StringSlice("stop")))...)

			lines, err := openLines(c)
			if err != nil {
				return err
			}
			it, stats := topWords(instrument[string](rt, "lines")(lines), opts, instrument[string](rt, "words"))
			counts, err := pipeline.Run(c.Context, it, pipeline.IntoSlice[wordCount])
			if err != nil {
				return err
			}

			rows := lo.Map(counts, func(wc wordCount, i int) []string {
				return []string{
					strconv.Itoa(i + 1),
					wc.Left,
					humanize.Comma(int64(wc.Right)),
					share(wc.Right, stats.Words),
				}
			})
			if err := renderTable(c.App.Writer, []string{"#", "WORD", "COUNT", "SHARE"}, rows); err != nil {
				return err
			}
			return footer(c.App.Writer, "\n%s words, %s distinct\n",
				humanize.Comma(int64(stats.Words)), humanize.Comma(int64(stats.Distinct)))
		},
	}
}

// splitWords breaks a line into runs of letters, digits and apostrophes.
func splitWords(line string) pipeline.Iterator[string] {
	return pipeline.FromSlice(strings.FieldsFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	}))
}

// wordTokens turns lines into lower-cased words.
func wordTokens(lines pipeline.Iterator[string]) pipeline.Iterator[string] {
	return pipeline.Pipe2(lines,
		pipeline.FlatMap(splitWords),
		pipeline.Map(strings.ToLower),
	)
}

// topWords counts the words of lines and yields the most frequent first.
// Words with equal counts keep the order they were first seen in.
func topWords(lines pipeline.Iterator[string], opts wordsOptions, observe pipeline.Operator[string, string]) (pipeline.Iterator[wordCount], *wordStats) {
	stats := &wordStats{}
	stop := opts.Stop
	if stop == nil {
		stop = pipeline.NewSet[string]()
	}

	words := pipeline.Pipe(wordTokens(lines),
		pipeline.Filter(func(w string) bool { return utf8.RuneCountInString(w) >= opts.MinLen }),
		pipeline.Remove(stop.Contains),
		observe,
		pipeline.Tap(func(string) { stats.Words++ }),
	)
	it := pipeline.Pipe4(words,
		pipeline.Frequencies[string](),
		pipeline.Tap(func(wordCount) { stats.Distinct++ }),
		pipeline.SortFunc(func(a, b wordCount) int { return pipeline.ByRight(b, a) }),
		pipeline.Take[wordCount](opts.Top),
	)
	return it, stats
}

func normalizeWords(words []string) []string {
	return lo.Uniq(lo.Compact(lo.Map(words, func(w string, _ int) string {
		return strings.ToLower(strings.TrimSpace(w))
	})))
}

func share(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(n)/float64(total))
}
