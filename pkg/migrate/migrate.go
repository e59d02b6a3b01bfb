// Package migrate orchestrates a migration run: for each rule in table
// order it scans, reports, confirms, applies, and optionally commits.
// Rules run strictly one after another; a declined or failed step never
// stops the rest of the run.
package migrate

import (
	"context"
	"fmt"

	"github.com/primeshift/primeshift/pkg/config"
	"github.com/primeshift/primeshift/pkg/engine"
	"github.com/primeshift/primeshift/pkg/prompt"
	"github.com/primeshift/primeshift/pkg/report"
	"github.com/primeshift/primeshift/pkg/rules"
	"github.com/primeshift/primeshift/pkg/vcs"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the run configuration.
	Config *config.Config
	// Rules is the rule list to run, normally Config.SelectRules().
	Rules []rules.Rule
	// Confirmer approves or declines each step.
	Confirmer prompt.Confirmer
	// Printer writes operator-facing output.
	Printer *report.Printer
	// Git wraps version control; nil disables committing entirely.
	Git *vcs.Git
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (*Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if len(opts.Rules) == 0 {
		return nil, errors.Errorf("at least one rule is required")
	}
	if opts.Confirmer == nil {
		return nil, errors.Errorf("confirmer is required")
	}
	if opts.Printer == nil {
		return nil, errors.Errorf("printer is required")
	}
	return &Operator{
		cfg:       opts.Config,
		rules:     opts.Rules,
		confirmer: opts.Confirmer,
		printer:   opts.Printer,
		git:       opts.Git,
	}, nil
}

// 🎮 Operator runs the rule table against a project tree
type Operator struct {
	cfg       *config.Config
	rules     []rules.Rule
	confirmer prompt.Confirmer
	printer   *report.Printer
	git       *vcs.Git
}

// Run executes every rule sequentially and returns the run summary. The
// returned error covers only catastrophic conditions (unreadable root,
// refused dirty tree); per-step failures land in the summary instead.
func (o *Operator) Run(ctx context.Context) (*report.Summary, error) {
	logger := zerolog.Ctx(ctx)

	dryRun := o.cfg.Approval == config.ApprovalDryRun
	summary := &report.Summary{DryRun: dryRun}

	if !dryRun {
		if err := o.ensureCleanTree(ctx); err != nil {
			return nil, err
		}
	}

	for i, rule := range o.rules {
		o.printer.RuleHeader(i+1, len(o.rules), rule.Name, rule.Description)

		result := o.runStep(ctx, rule, dryRun)
		summary.Record(result)
		o.printer.StepResult(result)

		if result.Err != nil {
			logger.Warn().Str("rule", rule.Name).Err(result.Err).Msg("step failed, continuing")
		}
	}

	o.printer.FinalSummary(summary)
	return summary, nil
}

// runStep walks one rule through scanned → (approved → applied →
// committed) | (declined → skipped).
func (o *Operator) runStep(ctx context.Context, rule rules.Rule, dryRun bool) report.StepResult {
	result := report.StepResult{Rule: rule.Name}

	cs, err := engine.Scan(ctx, o.cfg.Root, rule, engine.Options{
		IncludePatterns: o.cfg.IncludePatterns,
		IgnorePatterns:  o.cfg.IgnorePatterns,
	})
	if err != nil {
		result.Outcome = report.OutcomeFailed
		result.Err = errors.Errorf("scanning: %w", err)
		return result
	}

	result.Diagnostics = cs.Diagnostics

	if len(cs.Files) == 0 {
		result.Outcome = report.OutcomeNoop
		return result
	}

	o.printer.MatchList(cs)
	o.printer.DiffPreview(cs)
	result.Matches = cs.TotalMatches()

	if dryRun {
		// Matched but deliberately not applied; pending keeps it out of
		// the applied/declined/noop tallies.
		result.Outcome = report.OutcomePending
		return result
	}

	approved, err := o.confirmer.Confirm(ctx, fmt.Sprintf("Apply %q to %d file(s)?", rule.Name, len(cs.Files)))
	if err != nil {
		result.Outcome = report.OutcomeFailed
		result.Err = errors.Errorf("confirming: %w", err)
		return result
	}
	if !approved {
		result.Outcome = report.OutcomeDeclined
		return result
	}

	applied, err := cs.Apply(ctx)
	if err != nil {
		result.Outcome = report.OutcomeFailed
		result.Err = errors.Errorf("applying: %w", err)
		return result
	}

	result.Outcome = report.OutcomeApplied
	result.FilesChanged = len(applied)

	if o.git != nil && o.cfg.Git.Enabled && len(applied) > 0 {
		message := fmt.Sprintf("%s: %s", o.cfg.Git.MessagePrefix, rule.Description)
		if err := o.git.Commit(ctx, message, applied); err != nil {
			// The files are already rewritten; losing the commit is a
			// step-level failure, not a run-level one.
			result.Err = errors.Errorf("committing: %w", err)
			return result
		}
		result.Committed = true
	}

	return result
}

// ensureCleanTree enforces the require-clean policy before any file is
// touched, stashing first when configured to.
func (o *Operator) ensureCleanTree(ctx context.Context) error {
	if o.git == nil || !o.cfg.Git.Enabled || !o.cfg.Git.RequireClean {
		return nil
	}

	if !o.git.IsRepo(ctx) {
		return errors.Errorf("%s is not inside a git working tree; rerun with git disabled to continue", o.cfg.Root)
	}

	clean, err := o.git.IsClean(ctx)
	if err != nil {
		return errors.Errorf("checking working tree: %w", err)
	}
	if clean {
		return nil
	}

	if o.cfg.Git.Stash {
		if err := o.git.Stash(ctx, "primeshift: pre-migration stash"); err != nil {
			return errors.Errorf("stashing dirty tree: %w", err)
		}
		zerolog.Ctx(ctx).Info().Msg("stashed uncommitted changes")
		return nil
	}

	return errors.Errorf("working tree has uncommitted changes; commit, stash, or set git.require_clean=false")
}
