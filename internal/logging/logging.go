// Package logging builds the zap loggers used by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configure New.
type Options struct {
	// Level is debug, info, warn or error. Empty means warn.
	Level string
	// Format is console or json. Empty means console.
	Format string
	// Output defaults to stderr.
	Output io.Writer
}

// New returns a development style logger without caller info.
func New(opts Options) (*zap.Logger, error) {
	levelText := strings.TrimSpace(opts.Level)
	if levelText == "" {
		levelText = "warn"
	}
	level, err := zapcore.ParseLevel(levelText)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	enc := cfg.EncoderConfig
	var encoder zapcore.Encoder
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		encoder = zapcore.NewConsoleEncoder(enc)
	case "json":
		encoder = zapcore.NewJSONEncoder(enc)
	default:
		return nil, fmt.Errorf("invalid log format %q (expected console|json)", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)
	return zap.New(core, zap.AddStacktrace(zapcore.FatalLevel)), nil
}
