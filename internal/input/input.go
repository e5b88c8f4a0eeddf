// Package input loads the raw text a table is parsed from.
package input

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Flags describe the normalizations applied to the text.
type Flags uint8

const (
	HadBOM Flags = 1 << iota
	NormalizedCRLF
	NormalizedNFC
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Options control reading.
type Options struct {
	// NFC applies Unicode NFC normalization.
	NFC   bool
	Stdin io.Reader
	// Fs defaults to the OS filesystem.
	Fs     afero.Fs
	Logger *zap.Logger
}

// Text is the loaded input.
type Text struct {
	Name    string
	Content string
	Flags   Flags
}

// Read loads path, or standard input when path is "" or "-".
func Read(ctx context.Context, path string, opts Options) (Text, error) {
	if err := ctx.Err(); err != nil {
		return Text{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		content []byte
		err     error
		name    = path
	)
	if path == "" || path == "-" {
		name = "<stdin>"
		r := opts.Stdin
		if r == nil {
			r = os.Stdin
		}
		content, err = io.ReadAll(r)
	} else {
		fs := opts.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		content, err = afero.ReadFile(fs, path)
	}
	if err != nil {
		return Text{}, fmt.Errorf("read %s: %w", name, err)
	}

	text := Normalize(content, opts.NFC)
	text.Name = name
	logger.Debug("input read",
		zap.String("name", name),
		zap.Int("bytes", len(content)),
		zap.Bool("bom", text.Flags.Has(HadBOM)),
		zap.Bool("crlf", text.Flags.Has(NormalizedCRLF)),
	)
	return text, nil
}

// Normalize strips a UTF-8 BOM, turns CRLF into LF and optionally applies NFC.
func Normalize(content []byte, nfc bool) Text {
	var flags Flags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= HadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= NormalizedCRLF
	}
	if nfc && !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= NormalizedNFC
	}
	return Text{Content: string(content), Flags: flags}
}

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}) {
		return content[3:], true
	}
	return content, false
}
