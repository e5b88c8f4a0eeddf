package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"str2table/internal/config"
	"str2table/internal/diag"
	"str2table/internal/diagfmt"
	"str2table/internal/export"
	"str2table/internal/input"
	"str2table/internal/logging"
	"str2table/internal/observ"
	"str2table/internal/prof"
	"str2table/internal/selector"
	"str2table/internal/source"
	"str2table/internal/table"
)

const maxDiagnostics = 100

type runOptions struct {
	flags     config.Settings
	configRef string
	dry       string

	colorMode   string
	logLevel    string
	errorLevel  string
	errorFormat string
	jobs        int
	timings     bool
	debug       bool
	normalize   bool
	cpuProfile  string
	memProfile  string
}

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// escapes lets separators like "\t" be typed on the command line.
var escapes = strings.NewReplacer(`\n`, "\n", `\r`, "\r", `\t`, "\t", `\\`, `\`)

// run converts one input. Diagnostics go to s.err; errReported is returned
// when any of them is an error.
func run(ctx context.Context, opts *runOptions, s streams) error {
	if ctx == nil {
		ctx = context.Background()
	}
	threshold, err := diag.ParseSeverity(opts.errorLevel)
	if err != nil {
		return err
	}
	format, err := diagfmt.ParseFormat(opts.errorFormat)
	if err != nil {
		return err
	}
	mode, err := readColorMode(opts.colorMode)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Options{Level: opts.logLevel, Output: s.err})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	session, err := prof.Start(prof.Options{CPU: opts.cpuProfile, Mem: opts.memProfile})
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Stop(); err != nil {
			logger.Warn("profiling failed", zap.Error(err))
		}
	}()

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	timer := observ.NewTimer()

	p := &pipeline{opts: opts, streams: s, mode: mode, logger: logger, reporter: reporter, timer: timer}
	if err := p.convert(ctx); err != nil {
		d, ok := diag.As(err)
		if !ok {
			v := diag.New(diag.UnknownCode).WithSeverity(diag.SevFatal).WithReason(err.Error())
			d = &v
		}
		reporter.Report(*d)
	}

	visible := bag.Visible(threshold)
	if err := diagfmt.Write(s.err, format, visible, diagfmt.PrettyOpts{
		Color:     mode.enabled(s.err),
		Threshold: threshold,
	}); err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	if opts.timings {
		fmt.Fprint(s.err, timer.Summary())
	}
	logger.Debug("run finished", append(timer.Fields(),
		zap.Int("diagnostics", bag.Len()),
		zap.Int("shown", len(visible)),
	)...)
	if bag.HasErrors() {
		return errReported
	}
	return nil
}

type pipeline struct {
	opts     *runOptions
	streams  streams
	mode     colorMode
	logger   *zap.Logger
	reporter diag.Reporter
	timer    *observ.Timer
}

func (p *pipeline) settings() (config.Settings, error) {
	flags := p.opts.flags
	flags.Separator = escapes.Replace(flags.Separator)
	flags.EndLine = escapes.Replace(flags.EndLine)
	if p.opts.configRef == "" {
		return flags, nil
	}
	path, section, _ := strings.Cut(p.opts.configRef, ",")
	done := p.timer.Track(observ.PhaseConfig)
	defer done(path)
	fromFile, err := config.Load(strings.TrimSpace(path), strings.TrimSpace(section), p.logger)
	if err != nil {
		return config.Settings{}, err
	}
	return fromFile.Merge(flags), nil
}

func (p *pipeline) convert(ctx context.Context) error {
	settings, err := p.settings()
	if err != nil {
		return err
	}
	if p.opts.dry != "" {
		return p.writeDry(settings)
	}
	res, err := settings.Resolve()
	if err != nil {
		return err
	}
	p.logger.Debug("settings resolved",
		zap.Stringer("force", res.Force),
		zap.String("subtable", selector.FormatSubtable(res.Subtable)),
		zap.String("color", selector.FormatColor(res.Color)),
	)
	if res.Export != "" && !res.Color.Empty() {
		d := diag.NewConflicts(settings.ExportColor, source.Whole(settings.ExportColor), "output", "export-color").
			WithHint("Colors are only shown on the console, please drop either the output file or the colors.")
		return &d
	}
	if res.Export != "" {
		if _, err := export.FormatFromPath(res.Export); err != nil {
			return err
		}
	}

	done := p.timer.Track(observ.PhaseRead)
	text, err := input.Read(ctx, res.Input, input.Options{
		NFC:    p.opts.normalize,
		Stdin:  p.streams.in,
		Logger: p.logger,
	})
	done(fmt.Sprintf("%d bytes", len(text.Content)))
	if err != nil {
		return diag.FromError(diag.IOReadFailed, err)
	}

	jobs := p.opts.jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	done = p.timer.Track(observ.PhaseParse)
	tbl, err := table.Parse(ctx, text.Content, table.Options{
		Separator: res.Separator,
		EndLine:   res.EndLine,
		Mode:      res.Mode,
		Force:     res.Force,
		Jobs:      jobs,
		Reporter:  p.reporter,
		Logger:    p.logger,
	})
	if err != nil {
		done("")
		return err
	}
	done(fmt.Sprintf("%d lines", tbl.Len()))
	tbl = tbl.Subtable(res.Subtable).Colorize(res.Color)

	done = p.timer.Track(observ.PhaseRender)
	defer done("")
	if res.Export != "" {
		return export.ToFile(ctx, res.Export, tbl, export.FileOptions{Separator: res.Separator, Logger: p.logger})
	}
	err = export.Console(p.streams.out, tbl, export.ConsoleOptions{
		Color: p.mode != colorOff && !res.Color.Empty(),
		Debug: p.opts.debug,
	})
	if err != nil {
		return diag.FromError(diag.IOWriteFailed, err)
	}
	return nil
}

func (p *pipeline) writeDry(settings config.Settings) error {
	dir := filepath.Dir(p.opts.dry)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return diag.FromError(diag.IOWriteFailed, err)
	}
	// #nosec G304 -- path is provided by the user
	f, err := os.Create(p.opts.dry)
	if err != nil {
		return diag.FromError(diag.IOWriteFailed, err)
	}
	if err := config.Write(f, settings); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return diag.FromError(diag.IOWriteFailed, err)
	}
	p.logger.Debug("settings written", zap.String("path", p.opts.dry))
	return nil
}
