package types

import "path/filepath"

// GenericType is the project type used when no detector matches
const GenericType = "generic"

// Project represents one top-level subdirectory of the input root
type Project struct {
	// Name is the directory name, also used to name the output file
	Name string

	// Path is the path to the project directory
	Path string
}

// GetFilePath returns the full path to a file within the project
func (p Project) GetFilePath(filename string) string {
	return filepath.Join(p.Path, filename)
}

// ProjectConfig drives the ignore and include policy for one project scan.
// It is built fresh for every project and must not be modified once a scan
// has started.
type ProjectConfig struct {
	Name        string
	ProjectType string

	// CodeExtensions and IgnoreExtensions hold lowercase, dot-prefixed
	// extensions.
	CodeExtensions   StringSet
	ConfigFiles      StringSet
	IgnoreDirs       StringSet
	IgnoreFiles      StringSet
	IgnoreExtensions StringSet

	// IgnorePatterns is reserved and not consulted by any filter.
	IgnorePatterns []string

	// TargetSubdirs is advisory: it is reported but never used to filter.
	TargetSubdirs StringSet

	MaxFileSize   int64
	IncludeHidden bool
}

// Clone returns a deep copy of the configuration
func (c *ProjectConfig) Clone() *ProjectConfig {
	out := *c
	out.CodeExtensions = c.CodeExtensions.Clone()
	out.ConfigFiles = c.ConfigFiles.Clone()
	out.IgnoreDirs = c.IgnoreDirs.Clone()
	out.IgnoreFiles = c.IgnoreFiles.Clone()
	out.IgnoreExtensions = c.IgnoreExtensions.Clone()
	out.TargetSubdirs = c.TargetSubdirs.Clone()
	out.IgnorePatterns = append([]string(nil), c.IgnorePatterns...)
	return &out
}

// ScanStats holds the counters produced by one project scan
type ScanStats struct {
	FilesProcessed int   `json:"files_processed"`
	FilesSkipped   int   `json:"files_skipped"`
	TotalSize      int64 `json:"total_size"`
	Errors         int   `json:"errors"`
}

// Add folds other into s
func (s *ScanStats) Add(other ScanStats) {
	s.FilesProcessed += other.FilesProcessed
	s.FilesSkipped += other.FilesSkipped
	s.TotalSize += other.TotalSize
	s.Errors += other.Errors
}
