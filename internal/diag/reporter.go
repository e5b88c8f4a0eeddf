package diag

// Reporter: минимальный контракт получения диагностик.
// Реализации: BagReporter (кладёт в Bag), NopReporter, DedupReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(code).WithSeverity(sev),
	}
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code)
}

func (b *ReportBuilder) WithReason(reason string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithReason(reason)
	return b
}

func (b *ReportBuilder) WithAttempt(attempt string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithAttempt(attempt)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		b.reporter.Report(b.diag)
	}
	b.emitted = true
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
