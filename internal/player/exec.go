package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrStart wraps failures to launch the player process at all.
var ErrStart = errors.New("start player")

// Options configure how the player is invoked.
type Options struct {
	// Path is the player executable. Relative paths containing a separator
	// are resolved against Dir; bare names go through PATH.
	Path string
	Dir  string
	// Env overlays the inherited environment.
	Env map[string]string
	// Echo, when set, receives the combined output as it is produced.
	Echo io.Writer
	Now  func() time.Time
}

// Player runs the player executable against input files.
type Player struct {
	opts Options
}

// Invocation is the outcome of one player run.
type Invocation struct {
	Args []string
	// Output is the combined output without its final newline.
	Output string
	// Terminated reports whether the raw output ended with a newline.
	Terminated bool
	ExitCode   int
	Duration   time.Duration
}

// Success reports whether the player exited with status 0.
func (i Invocation) Success() bool {
	return i.ExitCode == 0
}

// New creates a Player with the supplied options.
func New(opts Options) *Player {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Player{opts: opts}
}

// Path returns the executable the player resolves to.
func (p *Player) Path() string {
	return resolveExecutable(p.opts.Dir, p.opts.Path)
}

// Run invokes `<player> <args...> <target>` and captures combined output.
// A non-zero exit is reported through Invocation.ExitCode, not as an error;
// the error is non-nil only when the process could not be started.
func (p *Player) Run(ctx context.Context, args []string, target string) (Invocation, error) {
	argv := append(append([]string{}, args...), target)
	inv := Invocation{Args: argv}

	cmd := exec.CommandContext(ctx, p.Path(), argv...)
	cmd.Dir = p.opts.Dir
	cmd.Env = mergeEnv(os.Environ(), p.opts.Env)

	var buf strings.Builder
	var out io.Writer = &buf
	if p.opts.Echo != nil {
		out = io.MultiWriter(p.opts.Echo, &buf)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	start := p.opts.Now()
	err := cmd.Run()
	inv.Duration = p.opts.Now().Sub(start)
	raw := buf.String()
	inv.Terminated = strings.HasSuffix(raw, "\n")
	inv.Output = strings.TrimSuffix(raw, "\n")

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return inv, fmt.Errorf("%w %q: %w", ErrStart, p.opts.Path, err)
		}
	}
	inv.ExitCode = exitCode(err)
	return inv, nil
}

// CommandLine renders the invocation for display.
func (p *Player) CommandLine(args []string, target string) string {
	parts := append([]string{p.opts.Path}, args...)
	parts = append(parts, target)
	return strings.Join(parts, " ")
}

func resolveExecutable(dir, path string) string {
	if path == "" || filepath.IsAbs(path) || dir == "" {
		return path
	}
	if !strings.ContainsRune(path, filepath.Separator) && !strings.ContainsRune(path, '/') {
		return path
	}
	return filepath.Join(dir, path)
}

func mergeEnv(base []string, overlays ...map[string]string) []string {
	envMap := make(map[string]string, len(base)+len(overlays)*4)
	for _, kv := range base {
		if idx := strings.Index(kv, "="); idx != -1 {
			key := kv[:idx]
			envMap[key] = kv[idx+1:]
		}
	}
	for _, overlay := range overlays {
		for k, v := range overlay {
			envMap[k] = v
		}
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s=%s", k, envMap[k]))
	}
	return out
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(interface{ ExitStatus() int }); ok {
			return status.ExitStatus()
		}
		return exitErr.ExitCode()
	}
	return 1
}
