// Package diag defines the diagnostic model shared by the selector parsers,
// the cell inference engine, table parsing and the CLI.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Warning, Error, Fatal) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go). Every code maps to a
//     fixed description, default hint and default severity.
//   - Reason, Attempt, Hint – optional free text explaining the cause, what
//     the program already tried, and how the user can fix the input.
//   - Expr, Fragment, Primary – the whole selector expression, the offending
//     token and its byte span inside Expr.
//
// Message assembles the human readable text in a fixed order: severity tag,
// description, attempted fixes, hint, reason. A diagnostic below the caller's
// visibility threshold renders as the empty string.
//
// # Emitting diagnostics
//
// Parsers that stop at the first failure return a *Diagnostic as their error.
// Producers that keep going (table parsing reports every advisory fallback)
// use a Reporter; BagReporter collects into a Bag which supports sorting,
// deduplication and threshold filtering.
//
// Rendering lives in internal/diagfmt.
package diag
