// Package types defines the core types and interfaces shared by the scanner
// packages: the filesystem abstraction, the per-project configuration that
// drives the ignore and include policy, and the counters a scan produces.
package types
