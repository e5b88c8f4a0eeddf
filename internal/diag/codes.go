package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Аргументы командной строки и селекторы
	ArgNoImplementation Code = 1001
	ArgWrongFormat      Code = 1002
	ArgConflicts        Code = 1003
	ArgFormatError      Code = 1004
	ArgKeywordMissing   Code = 1005

	// Диапазоны
	RangeOutOfRange   Code = 2001
	RangeLeftSide     Code = 2002
	RangeRightSide    Code = 2003
	RangeBothSides    Code = 2004
	RangeSingleNumber Code = 2005

	// Ячейки
	CellNotInteger    Code = 3001
	CellNotFloat      Code = 3002
	CellForceFallback Code = 3003

	// Ввод-вывод
	IOReadFailed  Code = 4001
	IOWriteFailed Code = 4002

	// Конфигурация
	CfgInvalid        Code = 5001
	CfgSectionMissing Code = 5002
	CfgIncludeCycle   Code = 5003
)

type codeInfo struct {
	name        string
	description string
	hint        string
	severity    Severity
}

var codeTable = map[Code]codeInfo{
	UnknownCode: {"Unknown", "Unknown error.", "", SevError},

	ArgNoImplementation: {"NoImplementation", "This argument is not implemented fully.", "Please wait for the next version.", SevWarning},
	ArgWrongFormat:      {"WrongFormat", "The format of this argument is wrong.", "Please check the format of this argument.", SevError},
	ArgConflicts:        {"Conflicts", "This argument causes conflict(s).", "Please check the conflict(s) and try again.", SevError},
	ArgFormatError:      {"FormatError", "This file format is unsupported.", "Please check the format of the file.", SevError},
	ArgKeywordMissing:   {"KeywordMissing", "A keyword is missing or wrong.", "Please check the keyword and try again.", SevError},

	RangeOutOfRange:   {"OutOfRange", "The number is out of range.", "Please check the range again.", SevError},
	RangeLeftSide:     {"LeftSideError", "The left side of the range is wrong.", "Please check the range again.", SevError},
	RangeRightSide:    {"RightSideError", "The right side of the range is wrong.", "Please check the range again.", SevError},
	RangeBothSides:    {"BothSidesError", "Both sides of the range are wrong.", "Please check the range again.", SevError},
	RangeSingleNumber: {"SingleNumberError", "The number is wrong.", "Please check the range again.", SevError},

	CellNotInteger:    {"NotInteger", "The cell can't be parsed as an integer.", "Please check the cell or force another type.", SevError},
	CellNotFloat:      {"NotFloat", "The cell can't be parsed as a float.", "Please check the cell or force another type.", SevError},
	CellForceFallback: {"ForceFallback", "The cell doesn't match the forced type.", "Please check the force-parse selection.", SevWarning},

	IOReadFailed:  {"ReadFailed", "Failed to read the input.", "Please check the path and permissions.", SevFatal},
	IOWriteFailed: {"WriteFailed", "Failed to write the output.", "Please check the path and permissions.", SevFatal},

	CfgInvalid:        {"ConfigInvalid", "The configuration file is invalid.", "Please check the configuration file.", SevFatal},
	CfgSectionMissing: {"SectionMissing", "The configuration section doesn't exist.", "Please check the section name.", SevFatal},
	CfgIncludeCycle:   {"IncludeCycle", "The configuration includes itself.", "Please remove the circular configuration entry.", SevFatal},
}

func (c Code) info() codeInfo {
	info, ok := codeTable[c]
	if !ok {
		return codeTable[UnknownCode]
	}
	return info
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("ARG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RNG%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CEL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

// Name is the short kind name, e.g. "WrongFormat".
func (c Code) Name() string { return c.info().name }

// Description is the fixed one-line description of the code.
func (c Code) Description() string { return c.info().description }

// DefaultHint is the remediation hint used when the producer gives none.
func (c Code) DefaultHint() string { return c.info().hint }

// DefaultSeverity is the severity a diagnostic of this code starts with.
func (c Code) DefaultSeverity() Severity { return c.info().severity }

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Name())
}
