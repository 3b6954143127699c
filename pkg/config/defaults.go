package config

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/unified-scanner/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// DefaultMaxFileSize is the baseline per-file size limit in bytes
const DefaultMaxFileSize int64 = 1024 * 1024

// Overlay adjusts the baseline for projects carrying any of Labels
type Overlay struct {
	Labels         []string `toml:"labels"`
	TargetSubdirs  []string `toml:"target_subdirs"`
	CodeExtensions []string `toml:"code_extensions"`
	IgnoreDirs     []string `toml:"ignore_dirs"`
}

// Tables is the decoded form of the embedded baseline document
type Tables struct {
	MaxFileSize      int64     `toml:"max_file_size"`
	IncludeHidden    bool      `toml:"include_hidden"`
	CodeExtensions   []string  `toml:"code_extensions"`
	ConfigFiles      []string  `toml:"config_files"`
	IgnoreDirs       []string  `toml:"ignore_dirs"`
	IgnoreFiles      []string  `toml:"ignore_files"`
	IgnoreExtensions []string  `toml:"ignore_extensions"`
	Overlays         []Overlay `toml:"overlay"`
}

var loadTables = sync.OnceValues(func() (*Tables, error) {
	return parseTables(defaultConfig)
})

func parseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse baseline tables: %w", err)
	}
	if t.MaxFileSize <= 0 {
		t.MaxFileSize = DefaultMaxFileSize
	}
	return &t, nil
}

func mustTables() *Tables {
	t, err := loadTables()
	if err != nil {
		// The document is compiled into the binary; failing here is a build defect.
		panic(err)
	}
	return t
}

// Baseline returns a fresh copy of the built-in policy with no project
// name, type or overlays applied.
func Baseline() *types.ProjectConfig {
	t := mustTables()
	return &types.ProjectConfig{
		ProjectType:      types.GenericType,
		CodeExtensions:   types.NewStringSet(t.CodeExtensions...),
		ConfigFiles:      types.NewStringSet(t.ConfigFiles...),
		IgnoreDirs:       types.NewStringSet(t.IgnoreDirs...),
		IgnoreFiles:      types.NewStringSet(t.IgnoreFiles...),
		IgnoreExtensions: types.NewStringSet(t.IgnoreExtensions...),
		IgnorePatterns:   []string{},
		TargetSubdirs:    types.NewStringSet(),
		MaxFileSize:      t.MaxFileSize,
		IncludeHidden:    t.IncludeHidden,
	}
}

// Overlays returns the type-specific adjustments in application order
func Overlays() []Overlay {
	src := mustTables().Overlays
	out := make([]Overlay, len(src))
	for i, o := range src {
		out[i] = Overlay{
			Labels:         append([]string(nil), o.Labels...),
			TargetSubdirs:  append([]string(nil), o.TargetSubdirs...),
			CodeExtensions: append([]string(nil), o.CodeExtensions...),
			IgnoreDirs:     append([]string(nil), o.IgnoreDirs...),
		}
	}
	return out
}
