package bundle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/bgricker/swfkit/internal/report"
	"github.com/bgricker/swfkit/internal/toolchain"
)

// Errors returned by Validate.
var (
	ErrTargetMissing  = errors.New("file does not exist")
	ErrTargetNotFile  = errors.New("not a regular file")
	ErrTargetReadOnly = errors.New("unable to write to file")
)

// Mode given to every copied library: rwx for the owner, read for others.
const libraryMode os.FileMode = 0o744

// Options configure a Bundler.
type Options struct {
	// BundleDir receives copied libraries. Empty means <dir(target)>/../libs.
	BundleDir string
	// LibBasePath is prepended to recorded paths before they are resolved.
	LibBasePath string
	// LocalLibDir, relative to LibBasePath, is searched for @rpath libraries.
	LocalLibDir string

	Lister   Lister
	Rewriter Rewriter
	// Tools and Prober are used by Validate. A nil Prober skips the check.
	Tools  toolchain.Tools
	Prober toolchain.Prober
	Logger hclog.Logger
}

// Bundler walks a binary's dependencies. One Bundler serves one Bundle call.
type Bundler struct {
	opts    Options
	visited map[string]bool
	rep     report.BundleReport
}

// New creates a bundler with the supplied options.
func New(opts Options) *Bundler {
	if opts.LibBasePath == "" {
		opts.LibBasePath = "/"
	}
	if opts.LocalLibDir == "" {
		opts.LocalLibDir = "usr/local/lib"
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	return &Bundler{opts: opts}
}

// DefaultBundleDir is the libs directory beside target's parent, matching
// the @loader_path/../libs token.
func DefaultBundleDir(target string) string {
	return filepath.Join(filepath.Dir(target), "..", "libs")
}

// Validate checks the tools and the target before anything is modified.
func (b *Bundler) Validate(ctx context.Context, target string) error {
	if b.opts.Prober != nil {
		if err := b.opts.Tools.Check(ctx, b.opts.Prober); err != nil {
			return err
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTargetMissing, target)
		}
		return fmt.Errorf("stat %q: %w", target, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrTargetNotFile, target)
	}

	f, err := os.OpenFile(target, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrTargetReadOnly, target)
	}
	return f.Close()
}

// Bundle validates target, creates the bundle directory and processes
// target's dependencies recursively. Per-dependency problems are recorded in
// the report rather than returned.
func (b *Bundler) Bundle(ctx context.Context, target string) (report.BundleReport, error) {
	if err := b.Validate(ctx, target); err != nil {
		return report.BundleReport{}, err
	}

	dir := b.opts.BundleDir
	if dir == "" {
		dir = DefaultBundleDir(target)
	}
	b.opts.BundleDir = filepath.Clean(dir)
	if err := os.MkdirAll(b.opts.BundleDir, 0o755); err != nil {
		return report.BundleReport{}, fmt.Errorf("create bundle dir %q: %w", b.opts.BundleDir, err)
	}

	b.visited = make(map[string]bool)
	b.rep = report.BundleReport{Target: target, BundleDir: b.opts.BundleDir}

	if err := b.process(ctx, target); err != nil {
		return b.rep, err
	}
	return b.rep, nil
}

func (b *Bundler) process(ctx context.Context, file string) error {
	lines, err := b.opts.Lister.List(ctx, file)
	if err != nil {
		return fmt.Errorf("list dependencies of %q: %w", file, err)
	}

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		dep, ok := ParseLine(line)
		if !ok {
			continue
		}
		dep.Referrer = file
		b.opts.Logger.Debug("found dependency", "file", file, "dependency", dep.Recorded, "kind", dep.Kind.String())

		switch dep.Kind {
		case KindLocal:
			b.bundleLocal(ctx, dep)
		case KindRPath:
			b.relinkRPath(ctx, dep)
		}
	}
	return nil
}

// bundleLocal copies a /usr/local or /opt/local library into the bundle,
// then points the referrer at the copy. A copy whose own dependencies cannot
// be listed is removed again and the referrer is left alone, so a later run
// retries it.
func (b *Bundler) bundleLocal(ctx context.Context, dep Dependency) {
	resolved := resolve(filepath.Join(b.opts.LibBasePath, dep.Component))
	name := filepath.Base(resolved)
	dest := filepath.Join(b.opts.BundleDir, name)

	if !b.visited[name] && !isFile(dest) {
		b.visited[name] = true
		if err := copyLibrary(resolved, dest); err != nil {
			delete(b.visited, name)
			b.fail(dep, err)
			return
		}
		b.rep.Copied = append(b.rep.Copied, dest)
		b.setID(ctx, dest, LoaderPath(name))

		if err := b.process(ctx, dest); err != nil {
			b.discard(name, dest)
			b.fail(dep, err)
			return
		}
	}

	b.change(ctx, dep, LoaderPath(name))
}

// relinkRPath resolves an @rpath reference against the local library
// directory and rewrites the link. The library itself is not copied.
func (b *Bundler) relinkRPath(ctx context.Context, dep Dependency) {
	dir := filepath.Join(b.opts.LibBasePath, b.opts.LocalLibDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		b.fail(dep, fmt.Errorf("read library dir: %w", err))
		return
	}

	base := strings.TrimPrefix(dep.Component, "/")
	token := RPathToken(dep.Component)
	for _, e := range entries {
		if strings.Contains(e.Name(), token) {
			base = e.Name()
			break
		}
	}

	resolved := resolve(filepath.Join(dir, base))
	b.opts.Logger.Info("resolved rpath dependency", "recorded", dep.Recorded, "path", resolved)
	b.change(ctx, dep, LoaderPath(filepath.Base(resolved)))
}

// discard undoes a copy made by bundleLocal.
func (b *Bundler) discard(name, dest string) {
	delete(b.visited, name)
	if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		b.opts.Logger.Warn("remove copied library failed", "file", dest, "error", err)
	}

	copied := b.rep.Copied[:0]
	for _, c := range b.rep.Copied {
		if c != dest {
			copied = append(copied, c)
		}
	}
	b.rep.Copied = copied

	rewrites := b.rep.Rewrites[:0]
	for _, rw := range b.rep.Rewrites {
		if rw.File != dest {
			rewrites = append(rewrites, rw)
		}
	}
	b.rep.Rewrites = rewrites
}

func (b *Bundler) setID(ctx context.Context, file, id string) {
	if err := b.opts.Rewriter.SetID(ctx, file, id); err != nil {
		b.opts.Logger.Warn("set install name failed", "file", file, "error", err)
		b.rep.Failures = append(b.rep.Failures, report.BundleFailure{File: file, Dependency: id, Error: err.Error()})
		return
	}
	b.rep.Rewrites = append(b.rep.Rewrites, report.Rewrite{File: file, New: id, ID: true})
}

func (b *Bundler) change(ctx context.Context, dep Dependency, newPath string) {
	if err := b.opts.Rewriter.Change(ctx, dep.Referrer, dep.Recorded, newPath); err != nil {
		b.fail(dep, err)
		return
	}
	b.rep.Rewrites = append(b.rep.Rewrites, report.Rewrite{File: dep.Referrer, Old: dep.Recorded, New: newPath})
}

func (b *Bundler) fail(dep Dependency, err error) {
	b.opts.Logger.Warn("skipping dependency", "file", dep.Referrer, "dependency", dep.Recorded, "error", err)
	b.rep.Failures = append(b.rep.Failures, report.BundleFailure{
		File:       dep.Referrer,
		Dependency: dep.Recorded,
		Error:      err.Error(),
	})
}

// resolve follows symlinks, falling back to the cleaned path when the file
// cannot be resolved.
func resolve(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// copyLibrary copies src to dest, keeps src's timestamps and sets
// libraryMode.
func copyLibrary(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, libraryMode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("copy %q: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}

	if err := os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return err
	}
	return os.Chmod(dest, libraryMode)
}
