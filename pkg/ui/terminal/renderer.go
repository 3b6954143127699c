// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/unified-scanner/pkg/errors"
	"github.com/arthur-debert/unified-scanner/pkg/scanner"
	"github.com/arthur-debert/unified-scanner/pkg/types"
	"github.com/arthur-debert/unified-scanner/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using lipgloss styles and pterm tables
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
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

// RenderProject renders a one-project status line followed by its counters
func (r *Renderer) RenderProject(p types.ProjectResult) error {
	var b strings.Builder

	name := styles.Render("ProjectName", p.Name)
	kind := styles.Render("ProjectType", strings.Join(p.Labels, ", "))
	if p.Success {
		fmt.Fprintf(&b, "%s %s %s\n", styles.Render("Success", "✓"), name, kind)
		fmt.Fprintf(&b, "  %s\n", styles.Render("Muted", fmt.Sprintf(
			"%d processed · %d skipped · %s · %d errors",
			p.Stats.FilesProcessed, p.Stats.FilesSkipped,
			scanner.FormatSize(p.Stats.TotalSize), p.Stats.Errors)))
		if p.CustomConfig != "" {
			fmt.Fprintf(&b, "  %s %s\n", styles.Render("Muted", "config"), styles.Render("FilePath", p.CustomConfig))
		}
		fmt.Fprintf(&b, "  %s %s\n", styles.Render("Muted", "→"), styles.Render("FilePath", p.OutputPath))
	} else {
		fmt.Fprintf(&b, "%s %s %s\n", styles.Render("Error", "✗"), name, kind)
		fmt.Fprintf(&b, "  %s\n", styles.Render("Error", p.Error))
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderRun(res *types.RunResult) error {
	var b strings.Builder

	status := fmt.Sprintf("%d/%d projects scanned", res.SuccessCount, len(res.Projects))
	switch res.Status() {
	case "success":
		status = styles.Render("Success", status)
	case "partial":
		status = styles.Render("Warning", status)
	default:
		status = styles.Render("Error", status)
	}
	fmt.Fprintf(&b, "%s\n", styles.Render("Header", "Completed"))
	fmt.Fprintf(&b, "%s\n\n", status)

	data := [][]string{{"Project", "Type", "Processed", "Skipped", "Size", "Errors"}}
	for _, p := range res.Projects {
		if !p.Success {
			data = append(data, []string{p.Name, p.ProjectType, "-", "-", "-", "failed"})
			continue
		}
		data = append(data, statsRow(p.Name, p.ProjectType, p.Stats))
	}
	data = append(data, statsRow("Total", "", res.Totals))

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	b.WriteString(table)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s\n", styles.Render("Label", "Output directory"), styles.Render("FilePath", res.OutputDir))
	fmt.Fprintf(&b, "%s %s\n", styles.Render("Label", "Run"), styles.Render("Muted", res.RunID))

	_, err = io.WriteString(r.output, b.String())
	return err
}

func statsRow(name, kind string, s types.ScanStats) []string {
	return []string{
		name,
		kind,
		strconv.Itoa(s.FilesProcessed),
		strconv.Itoa(s.FilesSkipped),
		scanner.FormatSize(s.TotalSize),
		strconv.Itoa(s.Errors),
	}
}

func (r *Renderer) renderDetect(res *types.DetectResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", styles.Render("ProjectName", res.Dir), styles.Render("ProjectType", res.ProjectType))
	if len(res.Detections) == 0 {
		fmt.Fprintf(&b, "  %s\n", styles.Render("Muted", "no markers found"))
	}
	for _, d := range res.Detections {
		fmt.Fprintf(&b, "  %s %s\n",
			styles.Render("Label", d.Label),
			styles.Render("Muted", strings.Join(d.Markers, ", ")))
	}
	if len(res.TargetSubdirs) > 0 {
		fmt.Fprintf(&b, "%s %s\n", styles.Render("SubHeader", "Target subdirs"), strings.Join(res.TargetSubdirs, ", "))
	}
	if res.CustomConfig != "" {
		fmt.Fprintf(&b, "%s %s\n", styles.Render("SubHeader", "Custom config"), styles.Render("FilePath", res.CustomConfig))
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error with its code as a badge
func (r *Renderer) RenderError(err error) error {
	code := errors.GetErrorCode(err)
	var line string
	if code != errors.ErrUnknown {
		line = fmt.Sprintf("%s %s", styles.Render("ErrorBadge", string(code)), styles.Render("Error", err.Error()))
	} else {
		line = styles.Render("Error", "Error: "+err.Error())
	}
	_, writeErr := fmt.Fprintln(r.output, line)
	return writeErr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.Render("Info", msg))
	return err
}
