package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"str2table/internal/diag"
	"str2table/internal/table"
)

func sample(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.Parse(context.Background(), "1 2.5 abc\n99999999999999999999 x\ninf", table.DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tbl
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.txt", FormatTxt},
		{"dir/out.CSV", FormatCSV},
		{"out.xls", FormatExcel},
		{"out.xlsx", FormatExcel},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if err != nil || got != tt.want {
				t.Fatalf("FormatFromPath(%q) = %s, %v", tt.path, got, err)
			}
		})
	}
	_, err := FormatFromPath("out.json")
	if d, ok := diag.As(err); !ok || d.Code != diag.ArgFormatError {
		t.Fatalf("err = %v", err)
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sample(t), ";"); err != nil {
		t.Fatal(err)
	}
	want := "1;2.5;abc\n99999999999999999999;x\ninf\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("Text mismatch (-want +got):\n%s", diff)
	}
}

func TestCSV(t *testing.T) {
	tbl, err := table.Parse(context.Background(), `a,b c;"q" d`, table.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := CSV(&buf, tbl); err != nil {
		t.Fatal(err)
	}
	want := "\"a,b\",\"c;\"\"q\"\"\",d\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	if err := Console(&buf, sample(t), ConsoleOptions{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"abc", "99999999999999999999", "inf", "+"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output lacks %q:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for _, l := range lines[1:] {
		if len(l) != len(lines[0]) {
			t.Fatalf("ragged console output:\n%s", out)
		}
	}
}

func TestConsoleEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Console(&buf, table.New(nil), ConsoleOptions{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	if err := Console(&buf, sample(t), ConsoleOptions{Debug: true}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"1<int><Black>                    | 2.5<float><Black> | abc<str><Black>",
		"99999999999999999999<int><Black> | x<str><Black>",
		"inf<float><Black>",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("Debug mismatch (-want +got):\n%s", diff)
	}
}

func TestExcelValues(t *testing.T) {
	f, err := Workbook(sample(t))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	tests := []struct {
		cell string
		want string
	}{
		{"A1", "1"},
		{"B1", "2.5"},
		{"C1", "abc"},
		{"A2", "99999999999999999999"},
		{"A3", "inf"},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, err := f.GetCellValue(sheet, tt.cell)
			if err != nil || got != tt.want {
				t.Fatalf("GetCellValue(%s) = %q, %v", tt.cell, got, err)
			}
		})
	}
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()
	tbl := sample(t)
	for _, name := range []string{"out.txt", "out.csv", "nested/out.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := ToFile(context.Background(), path, tbl, FileOptions{Separator: " "}); err != nil {
				t.Fatalf("ToFile: %v", err)
			}
			info, err := os.Stat(path)
			if err != nil || info.Size() == 0 {
				t.Fatalf("stat %s: %v", path, err)
			}
		})
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".str2table-") {
			t.Fatalf("temporary file %s left behind", e.Name())
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "1 2.5 abc\n") {
		t.Fatalf("txt output = %q", data)
	}
}

func TestToFileRejectsUnknownSuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	err := ToFile(context.Background(), path, sample(t), FileOptions{})
	if d, ok := diag.As(err); !ok || d.Code != diag.ArgFormatError {
		t.Fatalf("err = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file created for rejected suffix: %v", err)
	}
}

func TestExcelValueKinds(t *testing.T) {
	tbl := sample(t)
	tests := []struct {
		i, j int
		want any
	}{
		{0, 0, int64(1)},
		{0, 1, 2.5},
		{0, 2, "abc"},
		{1, 0, "99999999999999999999"},
		{2, 0, "inf"},
	}
	for _, tt := range tests {
		c, ok := tbl.Cell(tt.i, tt.j)
		if !ok {
			t.Fatalf("no cell at %d,%d", tt.i, tt.j)
		}
		if diff := cmp.Diff(tt.want, excelValue(c.Value)); diff != "" {
			t.Errorf("excelValue(%d,%d) mismatch (-want +got):\n%s", tt.i, tt.j, diff)
		}
	}
}

func TestToFileMemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := ToFile(context.Background(), "/out/table.csv", sample(t), FileOptions{Fs: fs}); err != nil {
		t.Fatalf("ToFile: %v", err)
	}
	data, err := afero.ReadFile(fs, "/out/table.csv")
	if err != nil {
		t.Fatal(err)
	}
	want := "1,2.5,abc\n99999999999999999999,x\ninf\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("csv mismatch (-want +got):\n%s", diff)
	}
	entries, err := afero.ReadDir(fs, "/out")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the exported file, got %d entries", len(entries))
	}
}
