package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{"star suffix", "*.log", "debug.log", true},
		{"star suffix miss", "*.log", "debug.txt", false},
		{"star crosses separator", "*.log", "logs/debug.log", true},
		{"prefix star crosses separator", "build*", "build/out/app.js", true},
		{"question mark", "file?.txt", "file1.txt", true},
		{"question mark needs one char", "file?.txt", "file.txt", false},
		{"exact", "Thumbs.db", "Thumbs.db", true},
		{"case sensitive", "Thumbs.db", "thumbs.db", false},
		{"bracket class", "[abc].py", "b.py", true},
		{"bracket class miss", "[abc].py", "d.py", false},
		{"bracket range", "v[0-9].txt", "v7.txt", true},
		{"negated class", "[!abc].py", "d.py", true},
		{"negated class miss", "[!abc].py", "a.py", false},
		{"unclosed bracket is literal", "[abc", "[abc", true},
		{"unclosed bracket no wildcard", "[abc", "a", false},
		{"regexp metacharacters are literal", "a+b(c).txt", "a+b(c).txt", true},
		{"dot is literal", "a.b", "axb", false},
		{"whole string anchored", "*.py", "main.pyc", false},
		{"empty pattern matches empty", "", "", true},
		{"empty pattern misses name", "", "a", false},
		{"env file", ".env", ".env", true},
		{"env prefix not matched", ".env", ".env.local", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchGlob(tt.pattern, tt.input))
		})
	}
}

func TestCompileGlob_String(t *testing.T) {
	assert.Equal(t, "*.lock", CompileGlob("*.lock").String())
}
