package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"str2table/internal/diag"
	"str2table/internal/selector"
	"str2table/internal/table"
	"str2table/internal/testkit"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const mainToml = `
[conf]
input = "input.txt"
separator = "#"
parse_mode = "s"
force_parse.line = [
  [1, 1, 's'],
  [2, 4, 'i'],
]
export = "out.csv"
export_color.line = [[1, 1, 'r'], [2, 4, 'g']]
export_color.column = [[0, 0, 'b']]
export_subtable.line = [1, 3]
export_subtable.column = [0]
`

func TestLoadSection(t *testing.T) {
	path := writeFile(t, t.TempDir(), "str2table.toml", mainToml)
	got, err := Load(path, "conf", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Settings{
		Input:          "input.txt",
		Separator:      "#",
		ParseMode:      "s",
		ForceParse:     "1ls,2-4li",
		Export:         "out.csv",
		ExportColor:    "1rl,2-4gl,0bc",
		ExportSubtable: "1l,3l,0c",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}

	r, err := got.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.EndLine != "\n" || r.Mode != table.ModeString {
		t.Fatalf("defaults not applied: %+v", r)
	}
	if err := testkit.CheckSortedUnique(r.Subtable.Indices(selector.AxisLine)); err != nil {
		t.Fatal(err)
	}
	if ft, ok := r.Force.Lookup(3); !ok || ft != selector.ForceInt {
		t.Fatalf("force lookup = %v, %v", ft, ok)
	}
}

func TestIncludeOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base/common.toml", `
[shared]
separator = ","
end_line = ";"
export = "base.txt"
`)
	path := writeFile(t, dir, "main.toml", `
[default]
export = "main.txt"
configuration = ["base/common.toml", "shared"]

[local]
parse_mode = "s"
configuration = [".", "default"]
`)
	got, err := Load(path, "local", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Settings{Separator: ",", EndLine: ";", ParseMode: "s", Export: "main.txt"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	cycle := writeFile(t, dir, "cycle.toml", `
[a]
configuration = [".", "b"]
[b]
configuration = [".", "a"]
`)
	tests := []struct {
		name    string
		path    string
		section string
		code    diag.Code
	}{
		{"missing section", writeFile(t, dir, "one.toml", "[x]\ninput = \"a\"\n"), "y", diag.CfgSectionMissing},
		{"include cycle", cycle, "a", diag.CfgIncludeCycle},
		{"syntax error", writeFile(t, dir, "bad.toml", "[x\n"), "x", diag.CfgInvalid},
		{"unknown key", writeFile(t, dir, "unknown.toml", "[x]\nseperation = \"#\"\n"), "x", diag.CfgInvalid},
		{"bad range item", writeFile(t, dir, "range.toml", "[x]\nforce_parse.line = [[1, 's']]\n"), "x", diag.CfgInvalid},
		{"missing file", filepath.Join(dir, "nope.toml"), "x", diag.IOReadFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, tt.section, nil)
			d, ok := diag.As(err)
			if !ok {
				t.Fatalf("expected diagnostic, got %v", err)
			}
			if d.Code != tt.code {
				t.Fatalf("code = %s, want %s: %s", d.Code, tt.code, d.Reason)
			}
			if d.Severity != diag.SevFatal {
				t.Fatalf("severity = %s", d.Severity)
			}
		})
	}
}

func TestResolveValidatesSelections(t *testing.T) {
	s := Settings{ForceParse: "1li", ExportColor: "3gl,3rl"}
	_, err := s.Resolve()
	d, ok := diag.As(err)
	if !ok || d.Code != diag.ArgConflicts {
		t.Fatalf("err = %v", err)
	}

	both := writeFile(t, t.TempDir(), "both.toml", `
[default]
force_parse.line = [[0, 1, 'i']]
force_parse.column = [[2, 2, 'f']]
`)
	loaded, err := Load(both, "", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := loaded.Resolve(); err == nil {
		t.Fatal("force_parse on both axes must be rejected")
	}
}

func TestMergeFlagsWin(t *testing.T) {
	file := Settings{Input: "in.txt", Separator: "#", Export: "a.csv"}
	flags := Settings{Separator: ",", ExportColor: "1rl"}
	got := file.Merge(flags)
	want := Settings{Input: "in.txt", Separator: ",", Export: "a.csv", ExportColor: "1rl"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteReloads(t *testing.T) {
	s := Settings{
		Separator:      ";",
		EndLine:        "|",
		ForceParse:     "4cf,1-2ci",
		ExportColor:    "2-3yc,0rl,1rl",
		ExportSubtable: "0-2l,5c",
	}
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "[default]") {
		t.Fatalf("missing [default] section:\n%s", buf.String())
	}
	path := writeFile(t, t.TempDir(), "dry.toml", buf.String())
	loaded, err := Load(path, "", nil)
	if err != nil {
		t.Fatalf("Load(%s): %v\n%s", path, err, buf.String())
	}
	want, err := s.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	got, err := loaded.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("reloaded settings differ (-want +got):\n%s", diff)
	}
}

func TestLoadFSRelativeInclude(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/etc/str2table/main.toml":        "[default]\nconfiguration = [\"shared/base.toml\", \"base\"]\nparse_mode = \"s\"\n",
		"/etc/str2table/shared/base.toml": "[base]\nseparator = \"|\"\n",
	}
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	got, err := LoadFS(fs, "/etc/str2table/main.toml", "", nil)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if diff := cmp.Diff(Settings{Separator: "|", ParseMode: "s"}, got); diff != "" {
		t.Fatalf("LoadFS mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadColorNames(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "[default]\nexport_color.column = [[0, 1, \"Yellow\"], [3, 3, \"gray\"], [4, 4, \"w\"]]\n"
	if err := afero.WriteFile(fs, "/cfg.toml", []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFS(fs, "/cfg.toml", "", nil)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if got.ExportColor != "0-1yc,3xc,4wc" {
		t.Fatalf("ExportColor = %q", got.ExportColor)
	}
	r, err := got.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c, ok := r.Color.Column(3); !ok || c != selector.Grey {
		t.Fatalf("Column(3) = %v, %v", c, ok)
	}
}

func TestLoadUnknownColorName(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "[default]\nexport_color.line = [[0, 0, \"purple\"]]\n"
	if err := afero.WriteFile(fs, "/cfg.toml", []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFS(fs, "/cfg.toml", "", nil)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	_, err = got.Resolve()
	if d, ok := diag.As(err); !ok || d.Code != diag.ArgWrongFormat {
		t.Fatalf("Resolve err = %v, want a WrongFormat diagnostic", err)
	}
}
