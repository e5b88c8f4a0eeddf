// Package config loads str2table settings from TOML files.
//
// A file holds named sections. A section may pull another section in with
// `configuration = ["path", "name"]`; "." names the file itself. Keys of the
// including section win over the included ones.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"str2table/internal/diag"
)

// DefaultSection is used when no section name is given.
const DefaultSection = "default"

type rangeLists struct {
	Line   [][]any `toml:"line,omitempty"`
	Column [][]any `toml:"column,omitempty"`
}

type indexLists struct {
	Line   []int64 `toml:"line,omitempty"`
	Column []int64 `toml:"column,omitempty"`
}

type section struct {
	Input          string      `toml:"input,omitempty"`
	Separator      string      `toml:"separator,omitempty"`
	EndLine        string      `toml:"end_line,omitempty"`
	ParseMode      string      `toml:"parse_mode,omitempty"`
	ForceParse     *rangeLists `toml:"force_parse,omitempty"`
	Export         string      `toml:"export,omitempty"`
	ExportColor    *rangeLists `toml:"export_color,omitempty"`
	ExportSubtable *indexLists `toml:"export_subtable,omitempty"`
	Configuration  []string    `toml:"configuration,omitempty"`
}

type loader struct {
	fs     afero.Fs
	logger *zap.Logger
	stack  []string
}

// Load reads section from the TOML file at path, following includes.
// An empty section means DefaultSection.
func Load(path, name string, logger *zap.Logger) (Settings, error) {
	return LoadFS(afero.NewOsFs(), path, name, logger)
}

// LoadFS is Load over fs.
func LoadFS(fs afero.Fs, path, name string, logger *zap.Logger) (Settings, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &loader{fs: fs, logger: logger}
	return l.load(path, name)
}

func (l *loader) load(path, name string) (Settings, error) {
	if name == "" {
		name = DefaultSection
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Settings{}, invalid(path, fmt.Errorf("failed to resolve path: %w", err))
	}
	key := abs + "#" + name
	for _, seen := range l.stack {
		if seen == key {
			d := diag.New(diag.CfgIncludeCycle).
				WithReason(fmt.Sprintf("Section [%s] of %s is included again through %s.", name, path, strings.Join(l.stack, " -> ")))
			return Settings{}, &d
		}
	}
	l.stack = append(l.stack, key)
	defer func() { l.stack = l.stack[:len(l.stack)-1] }()

	sec, err := l.readSection(path, name)
	if err != nil {
		return Settings{}, err
	}
	own, err := sec.settings()
	if err != nil {
		return Settings{}, invalid(path, err)
	}
	l.logger.Debug("config section loaded", zap.String("path", path), zap.String("section", name))

	if len(sec.Configuration) == 0 {
		return own, nil
	}
	incPath, incName, err := include(path, sec.Configuration)
	if err != nil {
		return Settings{}, invalid(path, err)
	}
	l.logger.Debug("config include", zap.String("path", incPath), zap.String("section", incName))
	base, err := l.load(incPath, incName)
	if err != nil {
		return Settings{}, err
	}
	return base.Merge(own), nil
}

func (l *loader) readSection(path, name string) (section, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return section{}, diag.FromError(diag.IOReadFailed, fmt.Errorf("%s: %w", path, err))
		}
		return section{}, invalid(path, err)
	}
	var sections map[string]section
	meta, err := toml.Decode(string(data), &sections)
	if err != nil {
		return section{}, invalid(path, fmt.Errorf("failed to parse TOML: %w", err))
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return section{}, invalid(path, fmt.Errorf("unknown keys %s", strings.Join(keys, ", ")))
	}
	if !meta.IsDefined(name) {
		d := diag.New(diag.CfgSectionMissing).
			WithReason(fmt.Sprintf("%s: missing [%s]", path, name))
		return section{}, &d
	}
	return sections[name], nil
}

// include resolves a `configuration` entry relative to the including file.
func include(from string, entry []string) (string, string, error) {
	if len(entry) == 0 || len(entry) > 2 {
		return "", "", fmt.Errorf("configuration must be [path, section], got %d items", len(entry))
	}
	path := strings.TrimSpace(entry[0])
	name := DefaultSection
	if len(entry) == 2 {
		name = strings.TrimSpace(entry[1])
	}
	switch {
	case path == "" || path == ".":
		path = from
	case !filepath.IsAbs(path):
		path = filepath.Join(filepath.Dir(from), filepath.FromSlash(path))
	}
	return path, name, nil
}

func invalid(path string, err error) *diag.Diagnostic {
	d := diag.New(diag.CfgInvalid).WithReason(fmt.Sprintf("%s: %v", path, err))
	return &d
}
