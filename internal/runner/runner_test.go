package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/bgricker/swfkit/internal/player"
)

// scriptedPlayer echoes canned output to echo the way player.Player does.
type scriptedPlayer struct {
	results map[string]player.Invocation
	failOn  string
	echo    io.Writer
	seen    []string
}

func (s *scriptedPlayer) Run(_ context.Context, _ []string, target string) (player.Invocation, error) {
	s.seen = append(s.seen, target)
	if target == s.failOn {
		return player.Invocation{}, errors.New("exec format error")
	}
	inv := s.results[target]
	if s.echo != nil {
		io.WriteString(s.echo, inv.Output)
		if inv.Terminated {
			io.WriteString(s.echo, "\n")
		}
	}
	return inv, nil
}

func (s *scriptedPlayer) CommandLine(args []string, target string) string {
	return strings.Join(append(append([]string{"player"}, args...), target), " ")
}

func TestRunnerPrintsEachSample(t *testing.T) {
	out := &bytes.Buffer{}
	sp := &scriptedPlayer{echo: out, results: map[string]player.Invocation{
		"samples/a.swf": {Output: "frame 1", Terminated: true},
		"samples/b.swf": {Output: "crashed", ExitCode: 139},
		"samples/c.swf": {},
	}}
	r := New(Options{Player: sp, Stdout: out})

	results, summary, err := r.Run(context.Background(), []string{"samples/a.swf", "samples/b.swf", "samples/c.swf"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := "Running: samples/a.swf\nframe 1\nRunning: samples/b.swf\ncrashed\nRunning: samples/c.swf\n\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n--- want\n%s\n--- got\n%s", want, out.String())
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if summary.Total != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if results[1].ExitCode != 139 {
		t.Fatalf("expected exit code recorded, got %+v", results[1])
	}
}

func TestRunnerAbortsWhenPlayerCannotStart(t *testing.T) {
	sp := &scriptedPlayer{failOn: "samples/b.swf"}
	r := New(Options{Player: sp})

	results, _, err := r.Run(context.Background(), []string{"samples/a.swf", "samples/b.swf", "samples/c.swf"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "samples/b.swf") {
		t.Fatalf("expected sample named in error, got %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected results gathered before the failure, got %d", len(results))
	}
	if len(sp.seen) != 2 {
		t.Fatalf("expected run to stop after failing sample, saw %v", sp.seen)
	}
}

func TestRunnerExecSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake player requires a POSIX shell")
	}
	root := t.TempDir()
	script := filepath.Join(root, "player")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho \"played $*\"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}

	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	r := New(Options{
		Player: player.New(player.Options{Path: script, Dir: root, Echo: out}),
		Args:   []string{"-v"},
		Stdout: out,
		Logger: hclog.New(&hclog.LoggerOptions{Level: hclog.Debug, Output: logs}),
	})

	_, summary, err := r.Run(context.Background(), []string{"samples/x.swf"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if out.String() != "Running: samples/x.swf\nplayed -v samples/x.swf\n" {
		t.Fatalf("expected streamed player output, got %q", out.String())
	}
	if !strings.Contains(logs.String(), script+" -v samples/x.swf") {
		t.Fatalf("expected command line logged, got %q", logs.String())
	}
}
