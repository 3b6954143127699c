package config

import (
	"github.com/arthur-debert/unified-scanner/pkg/logging"
	"github.com/arthur-debert/unified-scanner/pkg/types"
)

// Build assembles the policy for a project from the baseline and the
// overlays of every detected label. The first label becomes the project
// type.
func Build(name string, labels []string) *types.ProjectConfig {
	logger := logging.GetLogger("config").With().Str("project", name).Logger()

	cfg := Baseline()
	cfg.Name = name
	if len(labels) > 0 {
		cfg.ProjectType = labels[0]
	}

	detected := types.NewStringSet(labels...)
	for _, o := range mustTables().Overlays {
		if !anyDetected(detected, o.Labels) {
			continue
		}
		if o.TargetSubdirs != nil {
			cfg.TargetSubdirs = types.NewStringSet(o.TargetSubdirs...)
		}
		cfg.CodeExtensions.Add(o.CodeExtensions...)
		cfg.IgnoreDirs.Add(o.IgnoreDirs...)
		logger.Debug().Strs("labels", o.Labels).Msg("Applied type overlay")
	}

	logger.Debug().
		Str("type", cfg.ProjectType).
		Strs("target_subdirs", cfg.TargetSubdirs.Sorted()).
		Int("code_extensions", len(cfg.CodeExtensions)).
		Int("ignore_dirs", len(cfg.IgnoreDirs)).
		Msg("Built project config")
	return cfg
}

func anyDetected(detected types.StringSet, labels []string) bool {
	for _, l := range labels {
		if detected.Has(l) {
			return true
		}
	}
	return false
}
