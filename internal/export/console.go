package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"str2table/internal/table"
)

// ConsoleOptions control console rendering.
type ConsoleOptions struct {
	// Color wraps cells in their color escape codes.
	Color bool
	// Debug renders every cell as value<kind><Color>.
	Debug bool
}

// writeBuffered writes to a temporary buffer first, and only writes to out if no error occurs.
func writeBuffered(out io.Writer, build func(out io.Writer) error) error {
	var buf strings.Builder
	if err := build(&buf); err != nil {
		return err
	}
	if buf.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(out, buf.String())
	return err
}

func padded(rows [][]string, width int) [][]string {
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}
		rows[i] = row
	}
	return rows
}

// Console draws the table as an ASCII box.
func Console(w io.Writer, t *table.Table, opts ConsoleOptions) error {
	if opts.Debug {
		return Debug(w, t)
	}
	if t.Len() == 0 {
		return nil
	}
	render := table.Cell.String
	if opts.Color {
		render = table.Cell.Colored
	}
	rows := padded(t.Rows(render), t.Width())

	return writeBuffered(w, func(out io.Writer) error {
		tbl := tablewriter.NewTable(out,
			tablewriter.WithRenderer(
				renderer.NewBlueprint(tw.Rendition{Symbols: tw.NewSymbols(tw.StyleASCII)})),
			tablewriter.WithTrimSpace(tw.Off),
			tablewriter.WithHeaderAutoFormat(tw.Off),
		).Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Formatting.AutoWrap = tw.WrapNone
		})
		for _, row := range rows {
			if err := tbl.Append(row); err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}
		if err := tbl.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		return nil
	})
}

// Debug prints one line per table line with cells padded to their column width.
func Debug(w io.Writer, t *table.Table) error {
	rows := t.Rows(table.Cell.Debug)
	widths := make([]int, t.Width())
	for _, row := range rows {
		for j, s := range row {
			widths[j] = max(widths[j], runewidth.StringWidth(s))
		}
	}
	return writeBuffered(w, func(out io.Writer) error {
		for _, row := range rows {
			cells := make([]string, len(row))
			for j, s := range row {
				cells[j] = runewidth.FillRight(s, widths[j])
			}
			if _, err := fmt.Fprintln(out, strings.TrimRight(strings.Join(cells, " | "), " ")); err != nil {
				return err
			}
		}
		return nil
	})
}
