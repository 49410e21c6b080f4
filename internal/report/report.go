package report

import "time"

// Test statuses.
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// TestResult captures the outcome of a single descriptor run.
type TestResult struct {
	Name       string        `json:"name"`
	Descriptor string        `json:"descriptor"`
	Target     string        `json:"target,omitempty"`
	Status     string        `json:"status"`
	ExitCode   int           `json:"exit_code"`
	Output     string        `json:"output,omitempty"`
	Diff       string        `json:"diff,omitempty"`
	Report     string        `json:"report"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
}

// Passed reports whether the test passed.
func (r TestResult) Passed() bool {
	return r.Status == StatusPassed
}

// TestSummary aggregates a tester run.
type TestSummary struct {
	Total      int           `json:"total"`
	Passed     int           `json:"passed"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
}

// Add folds one result into the summary.
func (s *TestSummary) Add(r TestResult) {
	s.Total++
	if r.Passed() {
		s.Passed++
	} else {
		s.Failed++
	}
	s.Duration += r.Duration
	s.DurationMS = s.Duration.Milliseconds()
}

// SampleResult captures one batch-runner invocation.
type SampleResult struct {
	Path       string        `json:"path"`
	ExitCode   int           `json:"exit_code"`
	Output     string        `json:"output,omitempty"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
}

// RunSummary counts batch-runner invocations by exit status.
type RunSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Add folds one sample result into the summary.
func (s *RunSummary) Add(r SampleResult) {
	s.Total++
	if r.ExitCode == 0 {
		s.Succeeded++
	} else {
		s.Failed++
	}
}

// Rewrite records one dependency path rewrite in a binary.
type Rewrite struct {
	File string `json:"file"`
	Old  string `json:"old,omitempty"`
	New  string `json:"new"`
	// ID marks a self-identifying path rewrite rather than a dependency link.
	ID bool `json:"id,omitempty"`
}

// BundleFailure records a dependency the bundler could not handle.
type BundleFailure struct {
	File       string `json:"file"`
	Dependency string `json:"dependency"`
	Error      string `json:"error"`
}

// BundleReport summarises a bundler run.
type BundleReport struct {
	Target    string          `json:"target"`
	BundleDir string          `json:"bundle_dir"`
	Copied    []string        `json:"copied"`
	Rewrites  []Rewrite       `json:"rewrites"`
	Failures  []BundleFailure `json:"failures,omitempty"`
}
