package input

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    []byte
		nfc   bool
		want  string
		flags Flags
	}{
		{name: "plain", in: []byte("a b\nc d"), want: "a b\nc d"},
		{name: "bom", in: []byte("\xEF\xBB\xBFa b"), want: "a b", flags: HadBOM},
		{name: "crlf", in: []byte("a\r\nb\rc"), want: "a\nb\rc", flags: NormalizedCRLF},
		{name: "nfc", in: []byte("e\u0301"), nfc: true, want: "\u00e9", flags: NormalizedNFC},
		{name: "nfc disabled", in: []byte("e\u0301"), want: "e\u0301"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in, tt.nfc)
			if got.Content != tt.want {
				t.Fatalf("content = %q, want %q", got.Content, tt.want)
			}
			if got.Flags != tt.flags {
				t.Fatalf("flags = %b, want %b", got.Flags, tt.flags)
			}
		})
	}
}

func TestReadFileAndStdin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(path, []byte("1 2\r\n3 4\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Read(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Content != "1 2\n3 4\n" || got.Name != path {
		t.Fatalf("unexpected text %+v", got)
	}

	got, err = Read(context.Background(), "-", Options{Stdin: strings.NewReader("x")})
	if err != nil || got.Content != "x" || got.Name != "<stdin>" {
		t.Fatalf("stdin read = %+v, %v", got, err)
	}

	if _, err := Read(context.Background(), filepath.Join(dir, "missing"), Options{}); err == nil {
		t.Fatal("expected error for missing file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Read(ctx, path, Options{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestReadFromMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/in.txt", []byte("\xef\xbb\xbfa b"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Read(context.Background(), "/data/in.txt", Options{Fs: fs})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Content != "a b" || !got.Flags.Has(HadBOM) {
		t.Fatalf("unexpected text %+v", got)
	}
	if _, err := Read(context.Background(), "/data/missing.txt", Options{Fs: fs}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}
