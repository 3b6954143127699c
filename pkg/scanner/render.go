package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	bannerWidth = 80
	endWidth    = 40

	// sniffSize is how much of a file is inspected for NUL bytes
	sniffSize = 1024

	branchConnector = "├── "
	lastConnector   = "└── "
	branchIndent    = "│   "
	lastIndent      = "    "
)

var (
	bannerRule = strings.Repeat("=", bannerWidth)
	endRule    = strings.Repeat("=", endWidth)
)

func writeBanner(w *bufio.Writer, title string) {
	fmt.Fprintf(w, "%s\n %s\n%s\n", bannerRule, title, bannerRule)
}

func (s *Scanner) writeHeader(w *bufio.Writer) {
	abs, err := filepath.Abs(s.root)
	if err != nil {
		abs = s.root
	}
	fmt.Fprintf(w, "%s\n", bannerRule)
	fmt.Fprintf(w, " Project: %s\n", s.cfg.Name)
	fmt.Fprintf(w, " Type: %s\n", s.cfg.ProjectType)
	fmt.Fprintf(w, " Path: %s\n", abs)
	fmt.Fprintf(w, " Files to process: %d\n", len(s.queue))
	fmt.Fprintf(w, "%s\n\n", bannerRule)
}

// writeTree renders the non-ignored entries under abs, directories first
// and then by name. Connectors are chosen by position among all entries,
// so an entry followed only by ignored siblings keeps "├── ".
func (s *Scanner) writeTree(w *bufio.Writer, abs, rel, prefix string) {
	entries, err := s.readDir(abs)
	if err != nil {
		return
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir != entries[j].isDir {
			return entries[i].isDir
		}
		return entries[i].name < entries[j].name
	})

	for i, e := range entries {
		childRel := path.Join(rel, e.name)
		var ignored bool
		if e.isDir {
			ignored, _ = s.ShouldIgnoreDir(childRel, e.name)
		} else {
			ignored, _ = s.ShouldIgnoreFile(childRel, e.name)
		}
		if ignored {
			continue
		}

		last := i == len(entries)-1
		connector, indent := branchConnector, branchIndent
		if last {
			connector, indent = lastConnector, lastIndent
		}

		suffix := ""
		if e.isDir {
			suffix = "/"
		}
		fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, e.name, suffix)

		if e.isDir && !e.isLink {
			s.writeTree(w, filepath.Join(abs, e.name), childRel, prefix+indent)
		}
	}
}

func (s *Scanner) writeContents(w *bufio.Writer) {
	for _, rel := range s.queue {
		abs := filepath.Join(s.root, filepath.FromSlash(rel))

		if s.isBinary(abs) {
			fmt.Fprintf(w, "--- %s (BINARY - SKIPPED) ---\n\n", rel)
			s.stats.FilesSkipped++
			s.logger.Trace().Str("file", rel).Msg("Binary file skipped")
			continue
		}

		data, err := s.fs.ReadFile(abs)
		if err != nil {
			fmt.Fprintf(w, "--- %s (ERROR) ---\n", rel)
			fmt.Fprintf(w, "Error reading file: %v\n\n", err)
			s.stats.Errors++
			s.logger.Warn().Err(err).Str("file", rel).Msg("Cannot read file")
			continue
		}

		content := normaliseText(data)
		fmt.Fprintf(w, "--- %s ---\n\n", rel)
		w.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			w.WriteString("\n")
		}
		fmt.Fprintf(w, "\n%s End of %s %s\n\n", endRule, rel, endRule)

		s.stats.FilesProcessed++
		s.stats.TotalSize += int64(utf8.RuneCountInString(content))
	}
}

func (s *Scanner) writeSummary(w *bufio.Writer) {
	fmt.Fprintf(w, "\n%s\n", bannerRule)
	fmt.Fprintf(w, " Summary\n")
	fmt.Fprintf(w, "%s\n", bannerRule)
	fmt.Fprintf(w, "Files processed: %d\n", s.stats.FilesProcessed)
	fmt.Fprintf(w, "Files skipped: %d\n", s.stats.FilesSkipped)
	fmt.Fprintf(w, "Total size: %s\n", FormatSize(s.stats.TotalSize))
	fmt.Fprintf(w, "Errors: %d\n", s.stats.Errors)
	fmt.Fprintf(w, "%s\n", bannerRule)
}

// isBinary reports whether the first sniffSize bytes of the file contain a
// NUL byte. Files that cannot be opened or read count as binary.
func (s *Scanner) isBinary(abs string) bool {
	f, err := s.fs.Open(abs)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, sniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return true
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}

// normaliseText drops invalid UTF-8 sequences and converts CRLF and lone
// CR line endings to LF.
func normaliseText(data []byte) string {
	text := strings.ToValidUTF8(string(data), "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
