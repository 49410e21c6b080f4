package output

import (
	"encoding/json"
	"io"

	"github.com/bgricker/swfkit/internal/report"
)

// JSONRenderer emits structured execution data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// TestReport is the JSON schema for `test`.
type TestReport struct {
	Results []report.TestResult `json:"results"`
	Summary report.TestSummary  `json:"summary"`
}

// RunReport is the JSON schema for `run`.
type RunReport struct {
	Samples []report.SampleResult `json:"samples"`
	Summary report.RunSummary     `json:"summary"`
}

// RenderTests encodes test results and their summary.
func (j *JSONRenderer) RenderTests(results []report.TestResult, summary report.TestSummary) error {
	if results == nil {
		results = []report.TestResult{}
	}
	return j.encode(TestReport{Results: results, Summary: summary})
}

// RenderRun encodes sample results and their summary.
func (j *JSONRenderer) RenderRun(results []report.SampleResult, summary report.RunSummary) error {
	if results == nil {
		results = []report.SampleResult{}
	}
	return j.encode(RunReport{Samples: results, Summary: summary})
}

// RenderBundle encodes the bundle report.
func (j *JSONRenderer) RenderBundle(rep report.BundleReport) error {
	if rep.Copied == nil {
		rep.Copied = []string{}
	}
	if rep.Rewrites == nil {
		rep.Rewrites = []report.Rewrite{}
	}
	return j.encode(rep)
}

// RenderList encodes the listing.
func (j *JSONRenderer) RenderList(list Listing) error {
	if list.Samples == nil {
		list.Samples = []string{}
	}
	if list.Tests == nil {
		list.Tests = []string{}
	}
	return j.encode(list)
}

func (j *JSONRenderer) encode(v any) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
