package scanner

import (
	"bufio"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/arthur-debert/unified-scanner/pkg/errors"
	"github.com/arthur-debert/unified-scanner/pkg/ignore"
	"github.com/arthur-debert/unified-scanner/pkg/logging"
	"github.com/arthur-debert/unified-scanner/pkg/types"
	"github.com/rs/zerolog"
)

// State is the lifecycle position of a Scanner
type State int

const (
	StateInit State = iota
	StateWalking
	StateRenderingTree
	StateDumpingContents
	StateSummarized
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateWalking:
		return "WALKING"
	case StateRenderingTree:
		return "RENDERING_TREE"
	case StateDumpingContents:
		return "DUMPING_CONTENTS"
	case StateSummarized:
		return "SUMMARIZED"
	default:
		return "UNKNOWN"
	}
}

// Scanner produces the text bundle for a single project directory
type Scanner struct {
	fs   types.FS
	cfg  *types.ProjectConfig
	root string

	ignore      *ignore.Matcher
	ignoreFiles []ignore.Glob

	state State
	stats types.ScanStats
	// queue holds slash separated paths relative to root
	queue []string

	logger zerolog.Logger
}

// New creates a scanner for dir. The project's .gitignore is loaded if
// present; a file that cannot be read is reported and treated as empty.
// cfg must not be modified afterwards.
func New(fsys types.FS, cfg *types.ProjectConfig, dir string) *Scanner {
	s := &Scanner{
		fs:     fsys,
		cfg:    cfg,
		root:   dir,
		logger: logging.GetLogger("scanner").With().Str("project", cfg.Name).Logger(),
	}

	for _, pattern := range cfg.IgnoreFiles.Sorted() {
		s.ignoreFiles = append(s.ignoreFiles, ignore.CompileGlob(pattern))
	}

	ignorePath := filepath.Join(dir, ignore.FileName)
	if _, err := fsys.Stat(ignorePath); err == nil {
		m, err := ignore.Load(fsys, ignorePath)
		if err != nil {
			s.logger.Warn().Err(err).Str("file", ignorePath).Msg("Could not load .gitignore")
		}
		s.ignore = m
	} else {
		s.ignore = ignore.NewMatcher(nil)
	}
	s.logger.Debug().Int("rules", s.ignore.Len()).Msg("Ignore rules loaded")

	return s
}

// State returns the current lifecycle state
func (s *Scanner) State() State {
	return s.state
}

// Stats returns a copy of the counters accumulated so far
func (s *Scanner) Stats() types.ScanStats {
	return s.stats
}

// Queue returns the files selected for the dump, in output order. It is
// empty until the walk has run.
func (s *Scanner) Queue() []string {
	return append([]string(nil), s.queue...)
}

func (s *Scanner) setState(next State) {
	s.logger.Trace().Stringer("from", s.state).Stringer("to", next).Msg("Scanner state change")
	s.state = next
}

// Scan walks the project and writes the complete bundle to w. It returns
// the final counters. A Scanner can only scan once.
func (s *Scanner) Scan(w io.Writer) (types.ScanStats, error) {
	if s.state != StateInit {
		return s.stats, errors.Newf(errors.ErrInvalidState, "scanner for %s already used (state %s)", s.cfg.Name, s.state).
			WithDetail("state", s.state.String())
	}

	s.setState(StateWalking)
	if err := s.walk(); err != nil {
		return s.stats, err
	}
	slices.SortFunc(s.queue, comparePaths)
	s.logger.Debug().
		Int("queued", len(s.queue)).
		Int("skipped", s.stats.FilesSkipped).
		Msg("Walk complete")

	bw := bufio.NewWriter(w)
	s.writeHeader(bw)

	s.setState(StateRenderingTree)
	writeBanner(bw, "Project Structure")
	bw.WriteString("\n")
	s.writeTree(bw, s.root, "", "")
	bw.WriteString("\n\n")

	s.setState(StateDumpingContents)
	writeBanner(bw, "File Contents")
	bw.WriteString("\n")
	s.writeContents(bw)

	s.setState(StateSummarized)
	s.writeSummary(bw)

	if err := bw.Flush(); err != nil {
		return s.stats, errors.Wrapf(err, errors.ErrFileWrite, "failed to write scan output for %s", s.cfg.Name)
	}

	s.logger.Info().
		Int("processed", s.stats.FilesProcessed).
		Int("skipped", s.stats.FilesSkipped).
		Int64("size", s.stats.TotalSize).
		Int("errors", s.stats.Errors).
		Msg("Scan complete")
	return s.stats, nil
}

// comparePaths orders slash separated paths component by component
func comparePaths(a, b string) int {
	return slices.Compare(strings.Split(a, "/"), strings.Split(b, "/"))
}
