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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/primeshift/primeshift/pkg/rules"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// ApprovalMode selects how each migration step gets approved. It is an
// explicit configuration value, not a process-wide toggle, so tests and
// embedders can run the engine without touching global state.
type ApprovalMode string

const (
	ApprovalInteractive ApprovalMode = "interactive" // ask before each rule
	ApprovalYes         ApprovalMode = "yes"         // apply everything
	ApprovalDryRun      ApprovalMode = "dry-run"     // scan and report only
)

// 🔧 GitConfig controls the version-control wrapper around each step
type GitConfig struct {
	Enabled       bool   `json:"enabled" yaml:"enabled" hcl:"enabled,optional"`
	RequireClean  bool   `json:"require_clean" yaml:"require_clean" hcl:"require_clean,optional"`
	Stash         bool   `json:"stash,omitempty" yaml:"stash,omitempty" hcl:"stash,optional"`
	MessagePrefix string `json:"message_prefix,omitempty" yaml:"message_prefix,omitempty" hcl:"message_prefix,optional"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Root            string       `json:"root" yaml:"root" hcl:"root,optional"`
	IncludePatterns []string     `json:"include_patterns,omitempty" yaml:"include_patterns,omitempty" hcl:"include_patterns,optional"`
	IgnorePatterns  []string     `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" hcl:"ignore_patterns,optional"`
	Only            []string     `json:"only,omitempty" yaml:"only,omitempty" hcl:"only,optional"`
	Skip            []string     `json:"skip,omitempty" yaml:"skip,omitempty" hcl:"skip,optional"`
	Approval        ApprovalMode `json:"approval,omitempty" yaml:"approval,omitempty" hcl:"approval,optional"`
	Git             *GitConfig   `json:"git,omitempty" yaml:"git,omitempty" hcl:"git,block"`
}

// Default returns the configuration used when no config file exists:
// migrate the current directory, ask before every step, commit each one.
func Default() *Config {
	cfg := &Config{Root: "."}
	cfg.applyDefaults()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	cfg.applyDefaults()

	switch cfg.Approval {
	case ApprovalInteractive, ApprovalYes, ApprovalDryRun:
	default:
		return errors.Errorf("approval must be one of interactive, yes, dry-run; got %q", cfg.Approval)
	}

	for _, pattern := range append(append([]string{}, cfg.IncludePatterns...), cfg.IgnorePatterns...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid glob pattern %q", pattern)
		}
	}

	if len(cfg.Only) > 0 && len(cfg.Skip) > 0 {
		return errors.Errorf("only and skip are mutually exclusive")
	}
	for _, name := range append(append([]string{}, cfg.Only...), cfg.Skip...) {
		if _, ok := rules.Lookup(name); !ok {
			return errors.Errorf("unknown rule name %q in rule filter", name)
		}
	}

	cfg.Root = filepath.Clean(cfg.Root)
	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Approval == "" {
		cfg.Approval = ApprovalInteractive
	}
	if cfg.Git == nil {
		cfg.Git = &GitConfig{Enabled: true, RequireClean: true}
	}
	if cfg.Git.MessagePrefix == "" {
		cfg.Git.MessagePrefix = "chore(primeng)"
	}
}

// SelectRules resolves the only/skip filters against the canonical table,
// preserving table order.
func (cfg *Config) SelectRules() []rules.Rule {
	table := rules.Table()
	if len(cfg.Only) == 0 && len(cfg.Skip) == 0 {
		return table
	}

	selected := make([]rules.Rule, 0, len(table))
	for _, r := range table {
		if len(cfg.Only) > 0 && !containsName(cfg.Only, r.Name) {
			continue
		}
		if containsName(cfg.Skip, r.Name) {
			continue
		}
		selected = append(selected, r)
	}
	return selected
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s (approval=%s, git=%t)", cfg.Root, cfg.Approval, cfg.Git != nil && cfg.Git.Enabled)
}
