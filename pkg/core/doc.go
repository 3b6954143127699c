// Package core implements the scan pipeline: discovering the projects under
// an input root and running each one through
//
//	classify -> build config -> apply override -> scan -> write output
//
// Projects are processed one at a time in name order. A project that fails,
// whether by returning an error or by panicking, is recorded and logged and
// the run moves on to the next one. The run itself fails only when the
// input root is missing or empty, when another run holds the lock, or when
// no project could be scanned.
//
// Each output file is written under a temporary name and renamed into
// place once the scan completes, so an interrupted or failed scan never
// leaves a partial <name>_unified_scan.txt behind.
package core
