// Package vcs wraps the external git binary. The migration engine only
// ever needs "is the tree clean", "stash what is there", and "stage and
// commit these paths with this message"; everything else stays opaque.
package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Runner executes a git subcommand in dir and returns its stdout. It is
// injectable so tests can run without a git binary or a repository.
type Runner func(ctx context.Context, dir string, args ...string) (string, error)

// Git runs version-control operations for a single working tree.
type Git struct {
	dir string
	run Runner
}

// New creates a Git for the working tree at dir, using the real binary.
func New(dir string) *Git {
	return &Git{dir: dir, run: execGit}
}

// NewWithRunner creates a Git with a custom runner.
func NewWithRunner(dir string, run Runner) *Git {
	return &Git{dir: dir, run: run}
}

// IsRepo reports whether dir is inside a git working tree.
func (g *Git) IsRepo(ctx context.Context) bool {
	out, err := g.run(ctx, g.dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// IsClean reports whether the working tree has no uncommitted changes,
// including untracked files.
func (g *Git) IsClean(ctx context.Context) (bool, error) {
	out, err := g.run(ctx, g.dir, "status", "--porcelain")
	if err != nil {
		return false, errors.Errorf("checking working tree status: %w", err)
	}
	return strings.TrimSpace(out) == "", nil
}

// Stash saves the current working tree state, untracked files included.
func (g *Git) Stash(ctx context.Context, message string) error {
	if _, err := g.run(ctx, g.dir, "stash", "push", "--include-untracked", "-m", message); err != nil {
		return errors.Errorf("stashing working tree: %w", err)
	}
	return nil
}

// Commit stages the given paths (relative to the working tree) and
// commits them with the given message. Nothing outside paths is staged.
func (g *Git) Commit(ctx context.Context, message string, paths []string) error {
	if len(paths) == 0 {
		return errors.Errorf("no paths to commit")
	}

	addArgs := append([]string{"add", "--"}, paths...)
	if _, err := g.run(ctx, g.dir, addArgs...); err != nil {
		return errors.Errorf("staging %d path(s): %w", len(paths), err)
	}

	if _, err := g.run(ctx, g.dir, "commit", "-m", message); err != nil {
		return errors.Errorf("committing: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("message", message).Int("paths", len(paths)).Msg("committed")
	return nil
}

// execGit is the default runner. A non-zero exit comes back with stderr
// attached so the operator sees what git said.
func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", errors.Errorf("git %s: %w", strings.Join(args, " "), err)
		}
		return "", errors.Errorf("git %s: %s: %w", strings.Join(args, " "), msg, err)
	}
	return stdout.String(), nil
}
