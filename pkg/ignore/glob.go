package ignore

import (
	"regexp"
	"strings"
)

// Glob is a compiled shell-style pattern. Unlike filepath.Match, "*" and
// "?" also match the path separator, and a malformed bracket expression is
// matched literally instead of being an error.
type Glob struct {
	pattern string
	re      *regexp.Regexp
}

// CompileGlob compiles pattern. It never fails: a pattern whose translation
// is not a valid expression falls back to exact comparison.
func CompileGlob(pattern string) Glob {
	re, err := regexp.Compile(translate(pattern))
	if err != nil {
		return Glob{pattern: pattern}
	}
	return Glob{pattern: pattern, re: re}
}

// MatchGlob reports whether name matches pattern
func MatchGlob(pattern, name string) bool {
	return CompileGlob(pattern).Match(name)
}

// Match reports whether name matches the glob
func (g Glob) Match(name string) bool {
	if g.re == nil {
		return name == g.pattern
	}
	return g.re.MatchString(name)
}

// String returns the source pattern
func (g Glob) String() string {
	return g.pattern
}

func translate(pat string) string {
	var b strings.Builder
	b.WriteString(`^(?s:`)

	n := len(pat)
	for i := 0; i < n; {
		c := pat[i]
		i++
		switch c {
		case '*':
			// collapse runs of stars
			for i < n && pat[i] == '*' {
				i++
			}
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		case '[':
			j := i
			if j < n && pat[j] == '!' {
				j++
			}
			if j < n && pat[j] == ']' {
				j++
			}
			for j < n && pat[j] != ']' {
				j++
			}
			if j >= n {
				b.WriteString(`\[`)
				continue
			}
			stuff := strings.ReplaceAll(pat[i:j], `\`, `\\`)
			i = j + 1
			switch {
			case stuff[0] == '!':
				stuff = "^" + stuff[1:]
			case stuff[0] == '^' || stuff[0] == '[':
				stuff = `\` + stuff
			}
			b.WriteString("[" + stuff + "]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString(`)$`)
	return b.String()
}
