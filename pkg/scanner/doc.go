// Package scanner walks one project directory and writes its text bundle:
// a header, an ASCII tree of the visible entries, the contents of every
// included file and a summary of the counters.
//
// A Scanner is single use. Its states only move forward:
//
//	INIT -> WALKING -> RENDERING_TREE -> DUMPING_CONTENTS -> SUMMARIZED
//
// Directories and files are filtered with the same predicates during the
// walk and while rendering the tree, so the tree never shows an entry the
// walk pruned.
package scanner
