// Package toolchain names the Mach-O inspection tools, honouring a
// cross-compilation prefix, and checks that they can be invoked.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Base tool names.
const (
	Otool           = "otool"
	InstallNameTool = "install_name_tool"
)

// ErrToolMissing is returned by Check when a tool cannot be invoked.
var ErrToolMissing = errors.New("tool not available")

// Tools holds the resolved names of the listing and rewriting tools.
type Tools struct {
	Otool           string
	InstallNameTool string
}

// Resolve applies a toolchain prefix: "x86_64-apple-darwin15" yields
// "x86_64-apple-darwin15-otool". An empty prefix leaves the plain names.
func Resolve(prefix string) Tools {
	prefix = strings.TrimSpace(prefix)
	if prefix != "" && !strings.HasSuffix(prefix, "-") {
		prefix += "-"
	}
	return Tools{
		Otool:           prefix + Otool,
		InstallNameTool: prefix + InstallNameTool,
	}
}

// Prober decides whether a command name can be invoked.
type Prober interface {
	Exists(ctx context.Context, name string) bool
}

// ShellProber asks the shell, via `type`, whether a command exists. This
// finds builtins, functions and aliases as well as files on PATH.
type ShellProber struct {
	Shell string
}

// Exists reports whether `type name` succeeds.
func (p ShellProber) Exists(ctx context.Context, name string) bool {
	shell := p.Shell
	if shell == "" {
		shell = "sh"
	}
	_, err := runCommand(ctx, shell, "-c", "type "+shellQuote(name))
	return err == nil
}

// Check verifies that every tool in t is invocable.
func (t Tools) Check(ctx context.Context, prober Prober) error {
	for _, name := range []string{t.Otool, t.InstallNameTool} {
		if !prober.Exists(ctx, name) {
			return fmt.Errorf("unable to execute %s: %w", name, ErrToolMissing)
		}
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
