package ignore

import (
	"bufio"
	"bytes"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/unified-scanner/pkg/errors"
	"github.com/arthur-debert/unified-scanner/pkg/types"
)

// FileName is the ignore file looked up at the root of every project
const FileName = ".gitignore"

// Rule is one pattern line of an ignore file
type Rule struct {
	Pattern string
	Negate  bool
	glob    Glob
}

// Matcher evaluates relative paths against an ordered list of rules
type Matcher struct {
	rules []Rule
}

// NewMatcher builds a matcher from ignore file lines
func NewMatcher(lines []string) *Matcher {
	m := &Matcher{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		negate := strings.HasPrefix(line, "!")
		if negate {
			line = line[1:]
		}

		m.rules = append(m.rules, Rule{
			Pattern: line,
			Negate:  negate,
			glob:    CompileGlob(line),
		})
	}
	return m
}

// Load reads an ignore file. On failure it returns an empty matcher, which
// ignores nothing, together with the error so the caller can report it.
func Load(fsys types.FS, file string) (*Matcher, error) {
	data, err := fsys.ReadFile(file)
	if err != nil {
		return &Matcher{}, errors.Wrap(err, errors.ErrIgnoreLoad, "could not load ignore file").
			WithDetail("path", file)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return &Matcher{}, errors.Wrap(err, errors.ErrIgnoreLoad, "could not read ignore file").
			WithDetail("path", file)
	}

	return NewMatcher(lines), nil
}

// Rules returns the loaded rules in file order
func (m *Matcher) Rules() []Rule {
	return append([]Rule(nil), m.rules...)
}

// Len returns the number of loaded rules
func (m *Matcher) Len() int {
	return len(m.rules)
}

// ShouldIgnore reports whether relPath is ignored. The last matching rule
// decides; with no rules nothing is ignored.
func (m *Matcher) ShouldIgnore(relPath string) bool {
	if m == nil || len(m.rules) == 0 {
		return false
	}

	relPath = filepath.ToSlash(relPath)
	base := path.Base(relPath)

	ignored := false
	for _, rule := range m.rules {
		if rule.glob.Match(relPath) || rule.glob.Match(base) {
			ignored = !rule.Negate
		}
	}
	return ignored
}
