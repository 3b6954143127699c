// Package projects finds the project directories under an input root.
package projects

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/unified-scanner/pkg/errors"
	"github.com/arthur-debert/unified-scanner/pkg/logging"
	"github.com/arthur-debert/unified-scanner/pkg/types"
)

// Discover returns one Project per directory directly under root, sorted by
// name. Symbolic links to directories count as projects; regular files
// are ignored.
func Discover(fsys types.FS, root string) ([]types.Project, error) {
	logger := logging.GetLogger("projects.discovery")
	logger.Trace().Str("root", root).Msg("Discovering projects")

	info, err := fsys.Stat(root)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "input directory does not exist").
				WithDetail("path", root)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot access input directory").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrInvalidInput, "input path is not a directory").
			WithDetail("path", root)
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDirRead, "cannot read input directory").
			WithDetail("path", root)
	}

	var projects []types.Project
	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(root, name)

		isDir := entry.IsDir()
		if !isDir && entry.Type()&fs.ModeSymlink != 0 {
			if target, err := fsys.Stat(full); err == nil && target.IsDir() {
				isDir = true
			}
		}
		if !isDir {
			logger.Trace().Str("name", name).Msg("Skipping non-directory entry")
			continue
		}

		projects = append(projects, types.Project{Name: name, Path: full})
		logger.Trace().Str("path", full).Msg("Found project")
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})

	logger.Info().Int("count", len(projects)).Msg("Found projects")
	return projects, nil
}
