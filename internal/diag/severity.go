package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic. Values are totally ordered.
type Severity uint8

const (
	// SevWarning is for diagnostics the program recovered from.
	SevWarning Severity = iota
	// SevError is for invalid input that aborts the current operation.
	SevError
	// SevFatal is for failures that stop the program.
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevFatal:
		return "FATAL"
	}
	return "UNKNOWN"
}

// Tag is the prefix used in assembled messages.
func (s Severity) Tag() string {
	switch s {
	case SevWarning:
		return "[Warning]"
	case SevError:
		return "[Error]"
	case SevFatal:
		return "[Fatal]"
	}
	return "[Unknown]"
}

// ParseSeverity accepts warning|error|fatal in any case.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	case "fatal":
		return SevFatal, nil
	default:
		return SevWarning, fmt.Errorf("unknown severity %q (expected warning|error|fatal)", s)
	}
}
