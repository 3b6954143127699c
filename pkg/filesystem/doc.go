// Package filesystem provides filesystem implementations for the scanner.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem used by the CLI and afero-backed filesystems,
// including an in-memory one used by tests.
package filesystem
