package version

import (
	"strings"
	"testing"
)

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		in     string
		plain  string
		suffix string
	}{
		{in: "0.1.0-dev", plain: "0.1.0", suffix: "-dev"},
		{in: "1.2.3", plain: "1.2.3"},
		{in: "2.0.0-rc.1", plain: "2.0.0", suffix: "-rc.1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Colored(tt.in)
			if !strings.Contains(got, "\x1b[") {
				t.Fatalf("Colored(%q) = %q has no escapes", tt.in, got)
			}
			if tt.suffix != "" && !strings.HasSuffix(got, tt.suffix) {
				t.Fatalf("Colored(%q) = %q lost suffix", tt.in, got)
			}
			if stripped := stripANSI(got); stripped != tt.plain+tt.suffix {
				t.Fatalf("stripped = %q", stripped)
			}
		})
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
