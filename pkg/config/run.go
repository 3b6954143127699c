package config

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/unified-scanner/pkg/errors"
	"github.com/arthur-debert/unified-scanner/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// RunConfigFileName is the optional run configuration file looked up in the
// working directory
const RunConfigFileName = ".unified-scanner.toml"

// Environment variables recognised by LoadRunConfig
const (
	EnvInputDir  = "INPUT_DIR"
	EnvOutputDir = "OUTPUT_DIR"
)

// RunConfig holds the settings of one invocation
type RunConfig struct {
	InputDir  string `koanf:"input_dir"`
	OutputDir string `koanf:"output_dir"`
	Format    string `koanf:"format"`
	Lock      bool   `koanf:"lock"`
}

func runDefaults() map[string]interface{} {
	return map[string]interface{}{
		"input_dir":  "./input",
		"output_dir": "./output",
		"format":     "auto",
		"lock":       true,
	}
}

var envKeys = map[string]string{
	EnvInputDir:  "input_dir",
	EnvOutputDir: "output_dir",
}

// LoadRunConfig layers the built-in defaults, the run config file in
// workDir, the environment and finally flags. Keys in flags are the koanf
// names of RunConfig fields; only flags the user actually set should be
// passed.
func LoadRunConfig(workDir string, flags map[string]interface{}) (*RunConfig, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(runDefaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Run config file if it exists
	path := filepath.Join(workDir, RunConfigFileName)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load run config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded run config file")
	}

	// 3. Environment
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		name, ok := envKeys[key]
		if !ok || value == "" {
			return "", nil
		}
		return name, value
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flags
	if len(flags) > 0 {
		if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flags")
		}
	}

	var cfg RunConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal run configuration")
	}

	logger.Debug().
		Str("input_dir", cfg.InputDir).
		Str("output_dir", cfg.OutputDir).
		Str("format", cfg.Format).
		Bool("lock", cfg.Lock).
		Msg("Run configuration loaded")
	return &cfg, nil
}
