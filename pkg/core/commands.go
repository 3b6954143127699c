package core

import (
	stderrors "errors"
	"io/fs"
	"time"

	"github.com/arthur-debert/unified-scanner/pkg/detect"
	"github.com/arthur-debert/unified-scanner/pkg/errors"
	"github.com/arthur-debert/unified-scanner/pkg/filesystem"
	"github.com/arthur-debert/unified-scanner/pkg/logging"
	"github.com/arthur-debert/unified-scanner/pkg/projects"
	"github.com/arthur-debert/unified-scanner/pkg/types"
	"github.com/google/uuid"
)

// ScanProjectsOptions defines the options for the ScanProjects command.
type ScanProjectsOptions struct {
	// InputDir holds one subdirectory per project.
	InputDir string
	// OutputDir receives one <name>_unified_scan.txt per scanned project.
	OutputDir string
	// FS is the filesystem to scan and write through. Defaults to the OS.
	FS types.FS
	// LockPath is the run lock file. Empty disables locking.
	LockPath string
	// OnProject, if set, is called after each project finishes.
	OnProject func(types.ProjectResult)
}

// DetectProjectOptions defines the options for the DetectProject command.
type DetectProjectOptions struct {
	// Dir is the project directory to classify.
	Dir string
	// FS defaults to the OS filesystem.
	FS types.FS
}

// ScanProjects scans every project under the input directory. The returned
// result is non-nil whenever at least one project was attempted, even if
// the error is also non-nil.
func ScanProjects(opts ScanProjectsOptions) (*types.RunResult, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	runID := uuid.NewString()
	log := logging.GetLogger("core.commands").With().Str("run_id", runID).Logger()
	done := logging.LogOperationStart(log, "ScanProjects")
	defer done()

	release, err := acquireLock(opts.LockPath)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := ensureInputDir(fsys, opts.InputDir); err != nil {
		return nil, err
	}

	found, err := projects.Discover(fsys, opts.InputDir)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, errors.Newf(errors.ErrNoProjects,
			"no project directories found in %s; add project directories to scan", opts.InputDir).
			WithDetail("input", opts.InputDir)
	}

	if err := fsys.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create output directory %s", opts.OutputDir).
			WithDetail("output", opts.OutputDir)
	}

	result := &types.RunResult{
		RunID:     runID,
		InputDir:  opts.InputDir,
		OutputDir: opts.OutputDir,
		StartedAt: time.Now(),
	}

	for _, project := range found {
		pr := scanProject(fsys, project, opts.OutputDir, log)
		result.Projects = append(result.Projects, pr)
		if pr.Success {
			result.Totals.Add(pr.Stats)
			result.SuccessCount++
		}
		if opts.OnProject != nil {
			opts.OnProject(pr)
		}
	}
	result.Duration = time.Since(result.StartedAt)

	log.Info().
		Int("projects", len(result.Projects)).
		Int("succeeded", result.SuccessCount).
		Int("files", result.Totals.FilesProcessed).
		Msg("Command finished")

	if result.SuccessCount == 0 {
		return result, errors.Newf(errors.ErrNoProjectsScanned,
			"none of the %d projects could be scanned", len(result.Projects)).
			WithDetail("projects", len(result.Projects))
	}
	return result, nil
}

// ensureInputDir creates a missing input directory and reports it, since a
// freshly created root cannot contain any project yet.
func ensureInputDir(fsys types.FS, dir string) error {
	_, err := fsys.Stat(dir)
	if err == nil {
		return nil
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot access input directory %s", dir).
			WithDetail("input", dir)
	}

	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "input directory %s not found and could not be created", dir).
			WithDetail("input", dir)
	}
	return errors.Newf(errors.ErrInputCreated,
		"input directory %s not found; created it, add projects to scan and run again", dir).
		WithDetail("input", dir)
}

// DetectProject classifies a single directory and reports the policy that
// a scan would use for it.
func DetectProject(opts DetectProjectOptions) (*types.DetectResult, error) {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "DetectProject").Str("dir", opts.Dir).Msg("Executing command")

	info, err := fsys.Stat(opts.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot access %s", opts.Dir).
			WithDetail("path", opts.Dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not a directory", opts.Dir).
			WithDetail("path", opts.Dir)
	}

	project := types.Project{Name: projectName(opts.Dir), Path: opts.Dir}
	cfg, labels, override := resolveConfig(fsys, project, log)

	detections := detect.Matches(fsys, opts.Dir)
	if detections == nil {
		detections = []types.Detection{}
	}
	return &types.DetectResult{
		Dir:           opts.Dir,
		Labels:        labels,
		Detections:    detections,
		ProjectType:   cfg.ProjectType,
		TargetSubdirs: cfg.TargetSubdirs.Sorted(),
		CustomConfig:  override,
	}, nil
}
