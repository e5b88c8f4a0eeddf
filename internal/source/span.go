package source

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Span is a half-open byte range inside a selector expression.
type Span struct {
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// SpanOf returns the span covering s[start:end].
func SpanOf(start, end int) Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return Span{Start: s, End: e}
}

// Whole returns the span of the entire text.
func Whole(text string) Span {
	return SpanOf(0, len(text))
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// In reports whether the span lies within text.
func (s Span) In(text string) bool {
	n, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return false
	}
	return s.Start <= s.End && s.End <= n
}

// Slice returns the covered part of text, or "" when the span is out of bounds.
func (s Span) Slice(text string) string {
	if !s.In(text) {
		return ""
	}
	return text[s.Start:s.End]
}

// Underline renders a marker line that puts carets under the span when printed
// below text. Empty spans get a single caret.
func (s Span) Underline(text string) string {
	if !s.In(text) {
		return ""
	}
	var b strings.Builder
	for _, r := range text[:s.Start] {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteByte(' ')
	}
	width := len([]rune(text[s.Start:s.End]))
	if width == 0 {
		width = 1
	}
	b.WriteString(strings.Repeat("^", width))
	return b.String()
}
