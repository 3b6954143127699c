// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/unified-scanner/pkg/scanner"
	"github.com/arthur-debert/unified-scanner/pkg/types"
)

var rule = strings.Repeat("=", 80)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.RunResult:
		return r.renderRun(v)
	case *types.DetectResult:
		return r.renderDetect(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderProject renders the outcome of one project
func (r *Renderer) RenderProject(p types.ProjectResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nProcessing: %s\n%s\n", rule, p.Name, rule)
	if len(p.Labels) > 0 {
		fmt.Fprintf(&b, "Detected types: %s\n", strings.Join(p.Labels, ", "))
	}
	if p.CustomConfig != "" {
		fmt.Fprintf(&b, "Found custom config: %s\n", p.CustomConfig)
	}

	if !p.Success {
		fmt.Fprintf(&b, "✗ Error scanning project: %s\n", p.Error)
	} else {
		b.WriteString("✓ Successfully scanned!\n")
		writeStats(&b, "  ", projectStatNames, p.Stats)
		fmt.Fprintf(&b, "  Output: %s\n", p.OutputPath)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderRun(res *types.RunResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nCOMPLETED!\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Projects processed: %d/%d\n", res.SuccessCount, len(res.Projects))
	writeStats(&b, "", runStatNames, res.Totals)
	fmt.Fprintf(&b, "Output directory: %s\n", res.OutputDir)
	fmt.Fprintf(&b, "%s\n", rule)

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderDetect(res *types.DetectResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Directory: %s\n", res.Dir)
	fmt.Fprintf(&b, "Type: %s\n", res.ProjectType)
	fmt.Fprintf(&b, "Detected types: %s\n", strings.Join(res.Labels, ", "))
	for _, d := range res.Detections {
		fmt.Fprintf(&b, "  %s: %s\n", d.Label, strings.Join(d.Markers, ", "))
	}
	if len(res.TargetSubdirs) > 0 {
		fmt.Fprintf(&b, "Target subdirs: %s\n", strings.Join(res.TargetSubdirs, ", "))
	}
	if res.CustomConfig != "" {
		fmt.Fprintf(&b, "Custom config: %s\n", res.CustomConfig)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

var (
	projectStatNames = [4]string{"Files processed", "Files skipped", "Total size", "Errors"}
	runStatNames     = [4]string{"Total files processed", "Total files skipped", "Total size", "Total errors"}
)

// writeStats writes the four counters, each line indented by prefix
func writeStats(b *strings.Builder, prefix string, names [4]string, s types.ScanStats) {
	fmt.Fprintf(b, "%s%s: %d\n", prefix, names[0], s.FilesProcessed)
	fmt.Fprintf(b, "%s%s: %d\n", prefix, names[1], s.FilesSkipped)
	fmt.Fprintf(b, "%s%s: %s\n", prefix, names[2], scanner.FormatSize(s.TotalSize))
	fmt.Fprintf(b, "%s%s: %d\n", prefix, names[3], s.Errors)
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, writeErr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return writeErr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
