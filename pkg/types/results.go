package types

import "time"

// Detection is a detected project type together with the markers that matched
type Detection struct {
	Label   string   `json:"label"`
	Markers []string `json:"markers"`
}

// DetectResult holds the result of the 'detect' command.
type DetectResult struct {
	Dir           string      `json:"dir"`
	Labels        []string    `json:"labels"`
	Detections    []Detection `json:"detections"`
	ProjectType   string      `json:"projectType"`
	TargetSubdirs []string    `json:"targetSubdirs"`
	CustomConfig  string      `json:"customConfig,omitempty"`
}

// ProjectResult is the outcome of scanning one project directory.
type ProjectResult struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Labels       []string  `json:"labels"`
	ProjectType  string    `json:"projectType"`
	CustomConfig string    `json:"customConfig,omitempty"` // override file applied, if any
	OutputPath   string    `json:"outputPath,omitempty"`
	Stats        ScanStats `json:"stats"`
	Success      bool      `json:"success"`
	Error        string    `json:"error,omitempty"`

	Err error `json:"-"`
}

// Status returns "success" or "error"
func (p ProjectResult) Status() string {
	if p.Success {
		return "success"
	}
	return "error"
}

// RunResult holds the result of the 'scan' command.
type RunResult struct {
	RunID        string          `json:"runId"`
	InputDir     string          `json:"inputDir"`
	OutputDir    string          `json:"outputDir"`
	Projects     []ProjectResult `json:"projects"`
	Totals       ScanStats       `json:"totals"`
	SuccessCount int             `json:"successCount"`
	StartedAt    time.Time       `json:"startedAt"`
	Duration     time.Duration   `json:"duration"`
}

// Status aggregates the project outcomes:
// - no project succeeded → "failed"
// - every project succeeded → "success"
// - otherwise → "partial"
func (r *RunResult) Status() string {
	switch {
	case r.SuccessCount == 0:
		return "failed"
	case r.SuccessCount == len(r.Projects):
		return "success"
	default:
		return "partial"
	}
}

// Failed returns the projects that could not be scanned
func (r *RunResult) Failed() []ProjectResult {
	var out []ProjectResult
	for _, p := range r.Projects {
		if !p.Success {
			out = append(out, p)
		}
	}
	return out
}
