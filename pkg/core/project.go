package core

import (
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/arthur-debert/unified-scanner/pkg/config"
	"github.com/arthur-debert/unified-scanner/pkg/detect"
	"github.com/arthur-debert/unified-scanner/pkg/errors"
	"github.com/arthur-debert/unified-scanner/pkg/scanner"
	"github.com/arthur-debert/unified-scanner/pkg/types"
	"github.com/rs/zerolog"
)

// OutputSuffix is appended to the project name to form its output file name
const OutputSuffix = "_unified_scan.txt"

// OutputFileName returns the output file name for a project
func OutputFileName(project string) string {
	return project + OutputSuffix
}

func projectName(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(dir)
}

// resolveConfig classifies the project and assembles its policy. A broken
// override file is reported and ignored. The returned override path is
// empty unless an override was applied.
func resolveConfig(fsys types.FS, project types.Project, log zerolog.Logger) (*types.ProjectConfig, []string, string) {
	labels := detect.Classify(fsys, project.Path)
	log.Debug().Str("project", project.Name).Strs("types", labels).Msg("Detected project types")

	cfg := config.Build(project.Name, labels)

	overridePath := project.GetFilePath(config.OverrideFileName)
	if _, err := fsys.Stat(overridePath); err != nil {
		return cfg, labels, ""
	}
	merged, err := config.ApplyOverride(fsys, overridePath, cfg)
	if err != nil {
		log.Warn().
			Err(err).
			Str("project", project.Name).
			Str("file", overridePath).
			Msg("Could not load config file, using defaults")
		return cfg, labels, ""
	}
	return merged, labels, overridePath
}

// scanProject runs the whole pipeline for one project. It never panics;
// failures are reported in the returned result.
func scanProject(fsys types.FS, project types.Project, outputDir string, log zerolog.Logger) (pr types.ProjectResult) {
	log = log.With().Str("project", project.Name).Logger()
	start := time.Now()
	pr = types.ProjectResult{Name: project.Name, Path: project.Path}

	defer func() {
		if r := recover(); r != nil {
			err := errors.Newf(errors.ErrProjectPanic, "panic while scanning %s: %v", project.Name, r).
				WithDetail("project", project.Name)
			log.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("Project scan panicked")
			pr.Success = false
			pr.Err = err
			pr.Error = err.Error()
		}
	}()

	log.Info().Str("path", project.Path).Msg("Processing project")

	cfg, labels, override := resolveConfig(fsys, project, log)
	pr.Labels = labels
	pr.ProjectType = cfg.ProjectType
	pr.CustomConfig = override

	output := filepath.Join(outputDir, OutputFileName(project.Name))
	stats, err := writeScan(fsys, scanner.New(fsys, cfg, project.Path), output)
	if err != nil {
		cause := errors.GetErrorCode(err)
		err = errors.Wrapf(err, errors.ErrProjectScan, "error scanning project %s", project.Name).
			WithDetail("project", project.Name).
			WithDetail("cause", string(cause))
		log.Error().
			Err(err).
			Interface("details", errors.GetErrorDetails(err)).
			Msg("Project scan failed")
		pr.Err = err
		pr.Error = err.Error()
		return pr
	}

	pr.Stats = stats
	pr.OutputPath = output
	pr.Success = true
	log.Info().
		Str("output", output).
		Int("processed", stats.FilesProcessed).
		Int("skipped", stats.FilesSkipped).
		Str("size", scanner.FormatSize(stats.TotalSize)).
		Int("errors", stats.Errors).
		Dur("duration", time.Since(start)).
		Msg("Project scanned")
	return pr
}

// writeScan runs s into a temporary file next to target and renames it into
// place on success. The temporary file is removed on any failure, including
// a panic inside the scan.
func writeScan(fsys types.FS, s *scanner.Scanner, target string) (types.ScanStats, error) {
	tmp := target + ".tmp"

	w, err := fsys.Create(tmp)
	if err != nil {
		return types.ScanStats{}, errors.Wrapf(err, errors.ErrFileCreate, "cannot create %s", tmp).
			WithDetail("path", tmp)
	}

	closed, committed := false, false
	defer func() {
		if !closed {
			_ = w.Close()
		}
		if !committed {
			_ = fsys.Remove(tmp)
		}
	}()

	stats, err := s.Scan(w)
	closed = true
	if closeErr := w.Close(); err == nil && closeErr != nil {
		err = errors.Wrapf(closeErr, errors.ErrFileWrite, "cannot finish writing %s", tmp).
			WithDetail("path", tmp)
	}
	if err != nil {
		return stats, err
	}

	if err := fsys.Rename(tmp, target); err != nil {
		return stats, errors.Wrapf(err, errors.ErrFileWrite, "cannot move output into place at %s", target).
			WithDetail("path", target)
	}
	committed = true
	return stats, nil
}
