package config

import (
	"strings"

	"github.com/arthur-debert/unified-scanner/pkg/errors"
	"github.com/arthur-debert/unified-scanner/pkg/logging"
	"github.com/arthur-debert/unified-scanner/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/v2"
)

// OverrideFileName is the per-project policy override read from the project root
const OverrideFileName = ".scanner-config.json"

// Override is the decoded form of an override file. Nil fields were absent.
type Override struct {
	CodeExtensions   []string `koanf:"code_extensions"`
	IgnoreDirs       []string `koanf:"ignore_dirs"`
	IgnoreFiles      []string `koanf:"ignore_files"`
	IgnoreExtensions []string `koanf:"ignore_extensions"`
	TargetSubdirs    []string `koanf:"target_subdirs"`
	MaxFileSize      *int64   `koanf:"max_file_size"`
	IncludeHidden    *bool    `koanf:"include_hidden"`
}

// ApplyOverride merges the override file at path into cfg. List keys are
// added to the existing sets; target_subdirs, max_file_size and
// include_hidden replace the existing values. Unknown keys are ignored.
//
// The merge is all-or-nothing: on any read, parse or validation failure
// cfg is returned unchanged together with the error, which callers report
// as a warning.
func ApplyOverride(fsys types.FS, path string, cfg *types.ProjectConfig) (*types.ProjectConfig, error) {
	logger := logging.GetLogger("config").With().Str("file", path).Logger()

	data, err := fsys.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigLoad, "could not read config file %s", path).
			WithDetail("path", path)
	}

	ov, err := ParseOverride(data)
	if err != nil {
		return cfg, errors.Wrapf(err, errors.GetErrorCode(err), "could not load config file %s", path).
			WithDetail("path", path)
	}

	out := cfg.Clone()
	out.CodeExtensions.Add(normaliseExtensions(ov.CodeExtensions)...)
	out.IgnoreDirs.Add(ov.IgnoreDirs...)
	out.IgnoreFiles.Add(ov.IgnoreFiles...)
	out.IgnoreExtensions.Add(normaliseExtensions(ov.IgnoreExtensions)...)
	if ov.TargetSubdirs != nil {
		out.TargetSubdirs = types.NewStringSet(ov.TargetSubdirs...)
	}
	if ov.MaxFileSize != nil {
		out.MaxFileSize = *ov.MaxFileSize
	}
	if ov.IncludeHidden != nil {
		out.IncludeHidden = *ov.IncludeHidden
	}

	logger.Info().
		Int64("max_file_size", out.MaxFileSize).
		Bool("include_hidden", out.IncludeHidden).
		Msg("Applied custom config")
	return out, nil
}

// ParseOverride decodes and validates the JSON body of an override file
func ParseOverride(data []byte) (*Override, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, json.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid JSON")
	}

	var ov Override
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &ov,
			WeaklyTypedInput: false,
		},
	}
	if err := k.UnmarshalWithConf("", &ov, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unexpected value type")
	}

	if ov.MaxFileSize != nil && *ov.MaxFileSize <= 0 {
		return nil, errors.Newf(errors.ErrConfigValid, "max_file_size must be positive, got %d", *ov.MaxFileSize).
			WithDetail("max_file_size", *ov.MaxFileSize)
	}
	return &ov, nil
}

// normaliseExtensions lowercases extensions and adds a missing leading dot.
// Empty values are dropped.
func normaliseExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
