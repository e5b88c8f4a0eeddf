package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"str2table/internal/version"
)

// errReported means the diagnostics were already printed.
var errReported = errors.New("diagnostics reported")

// newRootCmd wires the conversion command, its flags and subcommands.
func newRootCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "str2table",
		Short: "Convert delimited text into typed tables",
		Long: heredoc.Doc(`
			str2table splits text into lines and cells, infers the type of every cell
			and prints the table, or exports it to txt, csv or xlsx.

			Selections use comma separated tokens: "1-3l,5c" picks lines 1 to 3 and
			column 5. Force-parse tokens add a type (s, i, f) and color tokens a color
			(r, g, b, y, x, w) before the axis letter.
		`),
		Example: heredoc.Doc(`
			str2table -i data.txt -s "," -f "0-1ci"
			str2table -i data.txt -S "1-3l,2-4c" -o out.xlsx
			cat data.txt | str2table -C "0rl,2-3yc"
			str2table -c str2table.toml,conf -d effective.toml
		`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, streams{
				in:  cmd.InOrStdin(),
				out: cmd.OutOrStdout(),
				err: cmd.ErrOrStderr(),
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.flags.Input, "input", "i", "", "input file (default stdin)")
	f.StringVarP(&opts.flags.Separator, "separator", "s", "", `cell separator (default " ")`)
	f.StringVarP(&opts.flags.EndLine, "end-line", "e", "", `line separator (default "\n")`)
	f.StringVarP(&opts.flags.ParseMode, "parse-mode", "p", "", "parse mode: a (auto) or s (string)")
	f.StringVarP(&opts.flags.ForceParse, "force-parse", "f", "", `force cell types, e.g. "1-2li,4lf"`)
	f.StringVarP(&opts.flags.ExportSubtable, "export-subtable", "S", "", `export only these lines/columns, e.g. "1-3l,2-4c"`)
	f.StringVarP(&opts.flags.Export, "output", "o", "", "export to a .txt, .csv, .xls or .xlsx file")
	f.StringVarP(&opts.flags.ExportColor, "export-color", "C", "", `color the console output, e.g. "1rl,2-4yc"`)
	f.StringVarP(&opts.configRef, "config", "c", "", "configuration file and optional section: file[,section]")
	f.StringVarP(&opts.dry, "dry", "d", "", "write the effective settings to a TOML file and exit")
	cmd.MarkFlagsMutuallyExclusive("output", "export-color")

	// Глобальные флаги
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.colorMode, "color", "auto", "colorize output (auto|on|off)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	pf.StringVar(&opts.errorLevel, "error-level", "warning", "lowest diagnostic severity to show (warning|error|fatal)")
	pf.StringVar(&opts.errorFormat, "error-format", "pretty", "diagnostic format (pretty|json|short|yaml)")
	pf.IntVar(&opts.jobs, "jobs", 0, "max parallel workers for line parsing (0=auto)")
	pf.BoolVar(&opts.timings, "timings", false, "show timing information")
	pf.BoolVar(&opts.debug, "debug", false, "print cells as value<type><Color>")
	pf.BoolVar(&opts.normalize, "normalize", false, "apply Unicode NFC normalization to the input")
	pf.StringVar(&opts.cpuProfile, "cpu-profile", "", "write a CPU profile to this file")
	pf.StringVar(&opts.memProfile, "mem-profile", "", "write a heap profile to this file")

	cmd.AddCommand(newVersionCmd(opts))
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func (m colorMode) enabled(w io.Writer) bool {
	switch m {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return isTerminal(w)
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}
