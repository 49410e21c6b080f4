package bundle

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Lister returns the raw dependency lines recorded in a binary.
type Lister interface {
	List(ctx context.Context, file string) ([]string, error)
}

// Rewriter edits the link paths recorded in a binary.
type Rewriter interface {
	Change(ctx context.Context, file, oldPath, newPath string) error
	SetID(ctx context.Context, file, id string) error
}

// Otool lists dependencies with `otool -XL`.
type Otool struct {
	Path   string
	Logger hclog.Logger
}

// List runs `otool -XL file` and returns its output lines.
func (o Otool) List(ctx context.Context, file string) ([]string, error) {
	out, err := run(ctx, o.Logger, o.Path, "-XL", file)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// InstallNameTool rewrites link paths with `install_name_tool`.
type InstallNameTool struct {
	Path   string
	Logger hclog.Logger
}

// Change replaces oldPath with newPath in file's dependency list. The tool
// leaves the file alone when oldPath is not present.
func (t InstallNameTool) Change(ctx context.Context, file, oldPath, newPath string) error {
	_, err := run(ctx, t.Logger, t.Path, "-change", oldPath, newPath, file)
	return err
}

// SetID sets file's own install name.
func (t InstallNameTool) SetID(ctx context.Context, file, id string) error {
	_, err := run(ctx, t.Logger, t.Path, "-id", id, file)
	return err
}

func run(ctx context.Context, logger hclog.Logger, name string, args ...string) (string, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger.Info(name + " " + strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", name, args[0], err, msg)
		}
		return "", fmt.Errorf("%s %s: %w", name, args[0], err)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}
