// Copyright 2025 the primeshift authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package engine walks a project tree and applies migration rules to the
// files they match. Scanning and write-back are separate phases so the
// caller can present a change summary and ask for approval in between.
package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/primeshift/primeshift/pkg/rules"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultIgnorePatterns are always skipped in addition to any configured
// patterns. Build output and dependency trees are never migration targets.
var DefaultIgnorePatterns = []string{
	"node_modules/**",
	".git/**",
	".angular/**",
	"dist/**",
	"coverage/**",
}

// pruneDirs are whole subtrees the walker never descends into. The
// DefaultIgnorePatterns still catch their files if one shows up nested.
var pruneDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".angular":     true,
	"dist":         true,
	"coverage":     true,
}

// 🔧 Options configures a scan.
type Options struct {
	// IncludePatterns are doublestar globs matched against the path
	// relative to the scan root. When non-empty, only matching files
	// are considered.
	IncludePatterns []string

	// IgnorePatterns are doublestar globs matched against the path
	// relative to the scan root. DefaultIgnorePatterns always apply.
	IgnorePatterns []string
}

// FileChange is one file's pending rewrite: its content before and after
// the rule, and how many matches the rule replaced.
type FileChange struct {
	Path    string // relative to the scan root
	AbsPath string
	Before  []byte
	After   []byte
	Count   int
}

// SkippedFile records a file that could not be read or written. Skips
// never abort the surrounding scan or apply.
type SkippedFile struct {
	Path string
	Err  error
}

// ChangeSet is the set of files a single rule would rewrite. It is
// transient: applied once, or discarded when the operator declines.
type ChangeSet struct {
	Rule        rules.Rule
	Root        string
	Files       []FileChange
	Skipped     []SkippedFile
	Diagnostics []string
}

// TotalMatches sums the match counts across all files.
func (cs *ChangeSet) TotalMatches() int {
	n := 0
	for _, f := range cs.Files {
		n += f.Count
	}
	return n
}

// Scan walks the tree under root and collects the files the rule would
// change. An unreadable file is recorded and skipped; an unreadable root
// is the only fatal condition.
func Scan(ctx context.Context, root string, rule rules.Rule, opts Options) (*ChangeSet, error) {
	logger := zerolog.Ctx(ctx)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Errorf("resolving root %s: %w", root, err)
	}
	if _, err := os.ReadDir(absRoot); err != nil {
		return nil, errors.Errorf("reading root directory: %w", err)
	}

	ignore := append([]string{}, DefaultIgnorePatterns...)
	ignore = append(ignore, opts.IgnorePatterns...)

	cs := &ChangeSet{Rule: rule, Root: absRoot}

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			rel := relativeTo(absRoot, path)
			cs.Skipped = append(cs.Skipped, SkippedFile{Path: rel, Err: err})
			logger.Warn().Str("path", rel).Err(err).Msg("skipping unreadable entry")
			return nil
		}

		rel := relativeTo(absRoot, path)

		if d.IsDir() {
			if pruneDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if len(opts.IncludePatterns) > 0 && !matchesAny(ctx, rel, opts.IncludePatterns) {
			return nil
		}
		if matchesAny(ctx, rel, ignore) || !rule.AppliesTo(path) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			cs.Skipped = append(cs.Skipped, SkippedFile{Path: rel, Err: err})
			logger.Warn().Str("path", rel).Err(err).Msg("skipping unreadable file")
			return nil
		}

		after, count, diags := rule.Apply(rel, string(content))
		cs.Diagnostics = append(cs.Diagnostics, diags...)
		if count == 0 && after == string(content) {
			return nil
		}

		cs.Files = append(cs.Files, FileChange{
			Path:    rel,
			AbsPath: path,
			Before:  content,
			After:   []byte(after),
			Count:   count,
		})
		return nil
	})
	if walkErr != nil {
		return nil, errors.Errorf("walking %s: %w", absRoot, walkErr)
	}

	logger.Debug().
		Str("rule", rule.Name).
		Int("files", len(cs.Files)).
		Int("matches", cs.TotalMatches()).
		Msg("scan complete")

	return cs, nil
}

// Apply writes every pending change back to disk atomically. Write
// failures are collected as skips; the applied paths are returned so the
// caller can stage exactly what changed.
func (cs *ChangeSet) Apply(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	applied := make([]string, 0, len(cs.Files))
	for _, f := range cs.Files {
		if err := writeFileAtomic(f.AbsPath, f.After); err != nil {
			cs.Skipped = append(cs.Skipped, SkippedFile{Path: f.Path, Err: err})
			logger.Warn().Str("path", f.Path).Err(err).Msg("write failed, skipping file")
			continue
		}
		applied = append(applied, f.Path)
	}

	logger.Debug().Str("rule", cs.Rule.Name).Int("applied", len(applied)).Msg("apply complete")
	return applied, nil
}

func matchesAny(ctx context.Context, rel string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Err(err).Msg("bad glob pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// relativeTo reports path relative to root in slash form, falling back
// to the input when it does not sit under root.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// writeFileAtomic replaces path via a temp file rename, keeping the
// original file's permission bits.
func writeFileAtomic(path string, content []byte) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}
