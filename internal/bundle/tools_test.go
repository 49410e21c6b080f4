package bundle

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTool(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestOtoolList(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tool requires a POSIX shell")
	}
	dir := t.TempDir()
	tool := writeTool(t, dir, "otool", `printf '\t/usr/local/lib/libfoo.dylib (compatibility version 1.0.0)\n\t/usr/lib/libSystem.B.dylib (compatibility version 1.0.0)\n'`)

	logBuf := &bytes.Buffer{}
	logger := hclog.New(&hclog.LoggerOptions{Output: logBuf, Level: hclog.Info})

	lines, err := Otool{Path: tool, Logger: logger}.List(context.Background(), "bin/player")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	dep, ok := ParseLine(lines[0])
	require.True(t, ok)
	assert.Equal(t, "/usr/local/lib/libfoo.dylib", dep.Recorded)
	assert.Contains(t, logBuf.String(), tool+" -XL bin/player")
}

func TestInstallNameToolArgs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tool requires a POSIX shell")
	}
	dir := t.TempDir()
	record := filepath.Join(dir, "args")
	tool := writeTool(t, dir, "install_name_tool", `echo "$@" >> "`+record+`"`+"\n")

	nt := InstallNameTool{Path: tool}
	require.NoError(t, nt.SetID(context.Background(), "libs/libfoo.dylib", "@loader_path/../libs/libfoo.dylib"))
	require.NoError(t, nt.Change(context.Background(), "bin/player", "/usr/local/lib/libfoo.dylib", "@loader_path/../libs/libfoo.dylib"))

	data, err := os.ReadFile(record)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"-id @loader_path/../libs/libfoo.dylib libs/libfoo.dylib",
		"-change /usr/local/lib/libfoo.dylib @loader_path/../libs/libfoo.dylib bin/player",
	}, strings.Split(strings.TrimSpace(string(data)), "\n"))
}

func TestToolFailureIncludesStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake tool requires a POSIX shell")
	}
	tool := writeTool(t, t.TempDir(), "install_name_tool", "echo 'not a Mach-O file' >&2\nexit 1\n")

	err := InstallNameTool{Path: tool}.Change(context.Background(), "x", "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a Mach-O file")
}
