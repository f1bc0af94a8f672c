package cli

import (
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/kbukum/seqkit/errors"
)

// renderTable writes a borderless, left-aligned table.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	cell := tw.CellConfig{
		Formatting: tw.CellFormatting{
			AutoWrap:  tw.WrapNormal,
			Alignment: tw.AlignLeft,
		},
		Padding: tw.CellPadding{Global: tw.Padding{Right: "    "}},
	}
	rendition := tw.Rendition{
		Borders: tw.BorderNone,
		Settings: tw.Settings{
			Lines:      tw.LinesNone,
			Separators: tw.SeparatorsNone,
		},
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(rendition)),
		tablewriter.WithConfig(tablewriter.Config{Row: cell, Header: cell}),
	)
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return errors.IO("render", err)
	}
	if err := table.Render(); err != nil {
		return errors.IO("render", err)
	}
	return nil
}

var faint = color.New(color.Faint)

// footer writes a summary line below a table, dimmed on a terminal.
func footer(w io.Writer, format string, args ...any) error {
	_, err := faint.Fprintf(w, format, args...)
	return err
}
