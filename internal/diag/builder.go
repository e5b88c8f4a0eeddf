package diag

import (
	"fmt"
	"strings"

	"str2table/internal/source"
)

// New returns a diagnostic with the code's default description, hint and severity.
func New(code Code) Diagnostic {
	return Diagnostic{
		Severity:    code.DefaultSeverity(),
		Code:        code,
		Description: code.Description(),
		Hint:        code.DefaultHint(),
	}
}

func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}

func (d Diagnostic) WithReason(reason string) Diagnostic {
	d.Reason = reason
	return d
}

func (d Diagnostic) WithAttempt(attempt string) Diagnostic {
	d.Attempt = attempt
	return d
}

// WithHint replaces the default hint. An empty hint keeps the default.
func (d Diagnostic) WithHint(hint string) Diagnostic {
	if hint != "" {
		d.Hint = hint
	}
	return d
}

// At records the expression and the span of the offending fragment inside it.
func (d Diagnostic) At(expr string, span source.Span) Diagnostic {
	d.Expr = expr
	d.Fragment = span.Slice(expr)
	d.Primary = span
	d.HasSpan = true
	return d
}

// NewArgError reports a malformed argument: `Error happens in "<expr>", where "<fragment>" <reason>`.
func NewArgError(code Code, expr string, span source.Span, reason string) *Diagnostic {
	d := New(code).At(expr, span)
	d.Reason = fmt.Sprintf("Error happens in %q, where %q %s", expr, d.Fragment, reason)
	return &d
}

var rangeReason = map[Code]string{
	RangeOutOfRange:   "the number is too large or the range covers too many indices.",
	RangeLeftSide:     "the left side of the range is missing or not a number.",
	RangeRightSide:    "the right side of the range is missing or not a number.",
	RangeBothSides:    "both sides of the range are missing or not numbers.",
	RangeSingleNumber: "the number is missing or not a number.",
}

// NewRangeError reports a bad bound: `Error happens in "<fragment>", where <reason>`.
func NewRangeError(code Code, expr string, span source.Span) *Diagnostic {
	d := New(code).At(expr, span)
	d.Reason = fmt.Sprintf("Error happens in %q, where %s", d.Fragment, rangeReason[code])
	return &d
}

// NewKeywordMissing reports an absent or garbled keyword letter such as the axis.
func NewKeywordMissing(keyword, expr string, span source.Span) *Diagnostic {
	d := New(ArgKeywordMissing).At(expr, span)
	d.Description = fmt.Sprintf("%s is missing or wrong.", upperFirst(keyword))
	d.Reason = fmt.Sprintf("In %q, %s is expected in %q.", expr, keyword, d.Fragment)
	return &d
}

// NewConflicts reports items that can't be used together.
func NewConflicts(expr string, span source.Span, items ...string) *Diagnostic {
	d := New(ArgConflicts).At(expr, span)
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = fmt.Sprintf("%q", it)
	}
	d.Reason = fmt.Sprintf("In %q, [%s] conflict with each other.", expr, strings.Join(quoted, ", "))
	return &d
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
