package table

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"str2table/internal/diag"
	"str2table/internal/selector"
	"str2table/internal/testkit"
)

func debugRows(t *Table) [][]string {
	return t.Rows(Cell.Debug)
}

func mustParse(t *testing.T, text string, opts Options) *Table {
	t.Helper()
	tbl, err := Parse(context.Background(), text, opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tbl
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts func(*Options)
		want [][]string
	}{
		{
			name: "spaces and empty lines",
			text: "1  2 3\n\n4.5 abc\n   \n",
			want: [][]string{
				{"1<int><Black>", "2<int><Black>", "3<int><Black>"},
				{"4.5<float><Black>", "abc<str><Black>"},
			},
		},
		{
			name: "custom separators drop line feeds",
			text: "1, 2223, 3, ;\n0x10,NaN,;",
			opts: func(o *Options) { o.Separator, o.EndLine = ",", ";" },
			want: [][]string{
				{"1<int><Black>", "2223<int><Black>", "3<int><Black>"},
				{"16<int><Black>", "NaN<float><Black>"},
			},
		},
		{
			name: "string mode",
			text: "1 2.5",
			opts: func(o *Options) { o.Mode = ModeString },
			want: [][]string{{"1<str><Black>", "2.5<str><Black>"}},
		},
		{
			name: "force overrides string mode",
			text: "1 2\n3 4",
			opts: func(o *Options) {
				o.Mode = ModeString
				o.Force = selector.ForceSelection{Axis: selector.AxisColumn, Pairs: []selector.Pair[selector.ForceType]{{Index: 1, Attr: selector.ForceFloat}}}
			},
			want: [][]string{{"1<str><Black>", "2<float><Black>"}, {"3<str><Black>", "4<float><Black>"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			got := debugRows(mustParse(t, tt.text, opts))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseForceFallbackWarns(t *testing.T) {
	force, err := selector.ParseForce("0-1li")
	if err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(16)
	opts := DefaultOptions()
	opts.Force = force
	opts.Reporter = diag.BagReporter{Bag: bag}

	tbl := mustParse(t, "1 abc\n2.5 3\nx y", opts)
	want := [][]string{
		{"1<int><Black>", "abc<str><Black>"},
		{"2.5<float><Black>", "3<int><Black>"},
		{"x<str><Black>", "y<str><Black>"},
	}
	if diff := cmp.Diff(want, debugRows(tbl)); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}
	if bag.Len() != 2 {
		t.Fatalf("got %d warnings, want 2", bag.Len())
	}
	first := bag.Visible(diag.SevWarning)[0]
	if first.Severity != diag.SevWarning || first.Code != diag.CellForceFallback {
		t.Fatalf("unexpected diagnostic %+v", first)
	}
	if !strings.Contains(first.Reason, `"abc"`) || !strings.Contains(first.Reason, "line 0, column 1") {
		t.Fatalf("reason %q does not locate the cell", first.Reason)
	}
}

func TestParseParallelWarningsKeepLineOrder(t *testing.T) {
	force, err := selector.ParseForce("0ci")
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	for range 64 {
		b.WriteString("x 1\n")
	}
	bag := diag.NewBag(0)
	opts := DefaultOptions()
	opts.Force = force
	opts.Jobs = 8
	opts.Reporter = diag.BagReporter{Bag: bag}
	mustParse(t, b.String(), opts)

	got := bag.Visible(diag.SevWarning)
	if len(got) != 64 {
		t.Fatalf("got %d warnings, want 64", len(got))
	}
	for i, d := range got {
		if want := fmt.Sprintf("line %d, column 0", i); !strings.Contains(d.Reason, want) {
			t.Fatalf("warning %d: reason %q does not mention %q", i, d.Reason, want)
		}
	}
}

func TestParseParallelMatchesSequential(t *testing.T) {
	var b strings.Builder
	for i := range 200 {
		b.WriteString(strings.Repeat("7 1.5 x ", i%5+1))
		b.WriteByte('\n')
	}
	seq := mustParse(t, b.String(), DefaultOptions())
	opts := DefaultOptions()
	opts.Jobs = 8
	par := mustParse(t, b.String(), opts)
	if diff := cmp.Diff(seq.Lines(), par.Lines()); diff != "" {
		t.Fatalf("parallel parse differs (-seq +par):\n%s", diff)
	}
}

func TestParseRejectsEmptySeparators(t *testing.T) {
	opts := DefaultOptions()
	opts.Separator = ""
	_, err := Parse(context.Background(), "1 2", opts)
	if d, ok := diag.As(err); !ok || d.Code != diag.ArgWrongFormat {
		t.Fatalf("err = %v", err)
	}
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Parse(ctx, "1 2\n3 4", DefaultOptions()); err == nil {
		t.Fatal("expected context error")
	}
}

func TestSubtable(t *testing.T) {
	tbl := mustParse(t, "a b c\nd e f\ng h i\nj k", DefaultOptions())
	tests := []struct {
		expr string
		want [][]string
	}{
		{expr: "0l,2l", want: [][]string{{"a", "b", "c"}, {"g", "h", "i"}}},
		{expr: "1-2c", want: [][]string{{"b", "c"}, {"e", "f"}, {"h", "i"}, {"k"}}},
		{expr: "3l,2c,9l,9c", want: [][]string{{}}},
		{expr: "0-1l,0c,2c", want: [][]string{{"a", "c"}, {"d", "f"}}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			sel, err := selector.ParseSubtable(tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			got := tbl.Subtable(sel).Rows(Cell.String)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Subtable mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if _, err := testkit.CheckRectangular(tbl.Subtable(selector.Selection[selector.Mark]{}).Rows(Cell.String)[:3]); err != nil {
		t.Fatal(err)
	}
}

func TestColorizeLineWins(t *testing.T) {
	tbl := mustParse(t, "1 2\n3 4", DefaultOptions())
	sel, err := selector.ParseColor("1rc,0gl")
	if err != nil {
		t.Fatal(err)
	}
	got := tbl.Colorize(sel)
	want := [][]string{
		{"1<int><Green>", "2<int><Green>"},
		{"3<int><Black>", "4<int><Red>"},
	}
	if diff := cmp.Diff(want, debugRows(got)); diff != "" {
		t.Fatalf("Colorize mismatch (-want +got):\n%s", diff)
	}
	if c, _ := tbl.Cell(1, 1); c.Color != selector.Black {
		t.Fatal("Colorize modified the source table")
	}
	red, _ := got.Cell(1, 1)
	if s := red.Colored(); !strings.HasPrefix(s, "\x1b[31m4\x1b[") {
		t.Fatalf("Colored() = %q", s)
	}
	black, _ := got.Cell(1, 0)
	if s := black.Colored(); s != "3" {
		t.Fatalf("Colored() of black = %q", s)
	}
}
