package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/bgricker/swfkit/internal/report"
)

func TestJSONRenderTests(t *testing.T) {
	results := []report.TestResult{
		{Name: "hello", Descriptor: "tests/hello.txt", Status: report.StatusPassed, Duration: 5 * time.Millisecond, DurationMS: 5},
	}
	summary := report.TestSummary{Total: 1, Passed: 1, DurationMS: 5}

	buf := &bytes.Buffer{}
	if err := NewJSON(buf).RenderTests(results, summary); err != nil {
		t.Fatalf("render json: %v", err)
	}

	var decoded TestReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded.Results) != 1 || decoded.Results[0].Descriptor != "tests/hello.txt" {
		t.Fatalf("results mismatch: %+v", decoded.Results)
	}
	if decoded.Summary.Passed != 1 || decoded.Summary.DurationMS != 5 {
		t.Fatalf("summary mismatch: %+v", decoded.Summary)
	}
}

func TestJSONRenderRunEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewJSON(buf).RenderRun(nil, report.RunSummary{}); err != nil {
		t.Fatalf("render json: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if string(raw["samples"]) != "[]" {
		t.Fatalf("expected empty samples array, got %s", raw["samples"])
	}
}

func TestJSONRenderBundle(t *testing.T) {
	buf := &bytes.Buffer{}
	rep := report.BundleReport{Target: "bin/player", BundleDir: "libs"}
	if err := NewJSON(buf).RenderBundle(rep); err != nil {
		t.Fatalf("render json: %v", err)
	}
	var decoded report.BundleReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.Target != "bin/player" || decoded.Copied == nil || decoded.Rewrites == nil {
		t.Fatalf("bundle mismatch: %+v", decoded)
	}
}

func TestJSONRenderList(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := NewJSON(buf).RenderList(Listing{Tests: []string{"tests/a.txt"}}); err != nil {
		t.Fatalf("render json: %v", err)
	}
	var decoded Listing
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.Samples == nil || len(decoded.Tests) != 1 {
		t.Fatalf("listing mismatch: %+v", decoded)
	}
}
