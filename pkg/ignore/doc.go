// Package ignore implements the project ignore file (".gitignore") layer of
// the ignore policy, plus the shell-style glob matching shared with the
// scanner's ignore-file patterns.
//
// Patterns are evaluated in file order against both the full relative path
// and its base name; every matching pattern overwrites the decision, so the
// last match wins and a "!" pattern re-includes what an earlier one ignored.
//
// This is deliberately a subset of the real format: there are no "**"
// segments, no anchoring with a leading "/", and no directory-only
// patterns with a trailing "/".
package ignore
