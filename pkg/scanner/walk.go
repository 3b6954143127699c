package scanner

import (
	"io/fs"
	"path"
	"path/filepath"

	"github.com/arthur-debert/unified-scanner/pkg/errors"
)

type entry struct {
	name  string
	isDir bool
	// isLink marks symbolic links; linked directories are listed but never
	// descended into.
	isLink bool
}

func (s *Scanner) readDir(abs string) ([]entry, error) {
	des, err := s.fs.ReadDir(abs)
	if err != nil {
		return nil, err
	}
	out := make([]entry, 0, len(des))
	for _, de := range des {
		e := entry{name: de.Name(), isDir: de.IsDir(), isLink: de.Type()&fs.ModeSymlink != 0}
		if e.isLink {
			if info, err := s.fs.Stat(filepath.Join(abs, e.name)); err == nil && info.IsDir() {
				e.isDir = true
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// walk fills the queue in pre-order, pruning ignored directories before
// descending and counting ignored files as skipped.
func (s *Scanner) walk() error {
	entries, err := s.readDir(s.root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirRead, "cannot read project directory %s", s.root).
			WithDetail("path", s.root)
	}
	s.walkEntries(s.root, "", entries)
	return nil
}

func (s *Scanner) walkDir(abs, rel string) {
	entries, err := s.readDir(abs)
	if err != nil {
		s.logger.Warn().Err(err).Str("dir", rel).Msg("Cannot read directory, skipping")
		return
	}
	s.walkEntries(abs, rel, entries)
}

func (s *Scanner) walkEntries(abs, rel string, entries []entry) {
	var subdirs []entry
	for _, e := range entries {
		childRel := path.Join(rel, e.name)

		if e.isDir {
			if ignored, reason := s.ShouldIgnoreDir(childRel, e.name); ignored {
				s.logger.Trace().Str("dir", childRel).Str("reason", reason).Msg("Directory pruned")
				continue
			}
			if e.isLink {
				s.logger.Trace().Str("dir", childRel).Msg("Not following symlinked directory")
				continue
			}
			subdirs = append(subdirs, e)
			continue
		}

		if ignored, reason := s.ShouldIgnoreFile(childRel, e.name); ignored {
			s.stats.FilesSkipped++
			s.logger.Trace().Str("file", childRel).Str("reason", reason).Msg("File skipped")
			continue
		}
		if s.ShouldIncludeFile(e.name) {
			s.queue = append(s.queue, childRel)
		}
	}

	for _, d := range subdirs {
		s.walkDir(filepath.Join(abs, d.name), path.Join(rel, d.name))
	}
}
