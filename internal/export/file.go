package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"str2table/internal/diag"
	"str2table/internal/table"
)

// FileOptions control ToFile.
type FileOptions struct {
	// Separator joins cells in txt output.
	Separator string
	// Fs defaults to the OS filesystem.
	Fs     afero.Fs
	Logger *zap.Logger
}

// Write renders t in the given file format to w.
func Write(w io.Writer, format Format, t *table.Table, sep string) error {
	switch format {
	case FormatTxt:
		return Text(w, t, sep)
	case FormatCSV:
		return CSV(w, t)
	case FormatExcel:
		return Excel(w, t)
	default:
		return Console(w, t, ConsoleOptions{})
	}
}

// ToFile picks the format from the suffix of path and writes the table
// through a temporary file in the same directory.
func ToFile(ctx context.Context, path string, t *table.Table, opts FileOptions) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return ioFailure(path, err)
	}
	tmp, err := afero.TempFile(fs, dir, ".str2table-*")
	if err != nil {
		return ioFailure(path, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = fs.Remove(tmpPath) }()

	bw := bufio.NewWriter(tmp)
	if err := Write(bw, format, t, opts.Separator); err != nil {
		_ = tmp.Close()
		return ioFailure(path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return ioFailure(path, err)
	}
	if err := tmp.Close(); err != nil {
		return ioFailure(path, err)
	}
	// Атомарная замена
	if err := fs.Rename(tmpPath, path); err != nil {
		return ioFailure(path, err)
	}
	logger.Debug("table exported",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.Int("lines", t.Len()),
	)
	return nil
}

func ioFailure(path string, err error) error {
	return diag.FromError(diag.IOWriteFailed, fmt.Errorf("export %s: %w", path, err))
}
