package scanner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Reasons reported by the ignore predicates
const (
	ReasonHiddenDir  = "hidden directory"
	ReasonHiddenFile = "hidden file"
	ReasonGitignore  = "in .gitignore"
	ReasonCannotStat = "cannot stat file"
)

// ShouldIgnoreDir reports whether the directory at rel (relative to the
// project root, slash separated) with base name name is pruned, and why.
func (s *Scanner) ShouldIgnoreDir(rel, name string) (bool, string) {
	if !s.cfg.IncludeHidden && strings.HasPrefix(name, ".") {
		return true, ReasonHiddenDir
	}
	if s.ignore.ShouldIgnore(rel) {
		return true, ReasonGitignore
	}
	if s.cfg.IgnoreDirs.Has(name) {
		return true, fmt.Sprintf("in ignore list: %s", name)
	}
	return false, ""
}

// ShouldIgnoreFile reports whether the file at rel is skipped, and why.
// Files that cannot be stat'ed are skipped.
func (s *Scanner) ShouldIgnoreFile(rel, name string) (bool, string) {
	if !s.cfg.IncludeHidden && strings.HasPrefix(name, ".") {
		return true, ReasonHiddenFile
	}
	if s.ignore.ShouldIgnore(rel) {
		return true, ReasonGitignore
	}
	for _, g := range s.ignoreFiles {
		if g.Match(name) {
			return true, fmt.Sprintf("matches ignore pattern: %s", g)
		}
	}
	ext := strings.ToLower(Ext(name))
	if ext != "" && s.cfg.IgnoreExtensions.Has(ext) {
		return true, fmt.Sprintf("ignored extension: %s", ext)
	}

	info, err := s.fs.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return true, ReasonCannotStat
	}
	if info.Size() > s.cfg.MaxFileSize {
		return true, fmt.Sprintf("file too large (>%d bytes)", s.cfg.MaxFileSize)
	}
	return false, ""
}

// ShouldIncludeFile reports whether a non-ignored file's content belongs in
// the dump: known config files, code extensions, and extensionless names
// that are not hidden.
func (s *Scanner) ShouldIncludeFile(name string) bool {
	if s.cfg.ConfigFiles.Has(name) {
		return true
	}
	ext := strings.ToLower(Ext(name))
	if ext != "" && s.cfg.CodeExtensions.Has(ext) {
		return true
	}
	return ext == "" && !strings.HasPrefix(name, ".")
}

// Ext returns the extension of a base name including the dot. A leading
// dot alone does not start an extension and a name ending in a dot has
// none, so ".bashrc" and "notes." both return "".
func Ext(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}
