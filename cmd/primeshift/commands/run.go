package commands

import (
	"github.com/primeshift/primeshift/cmd/primeshift/opts"
	"github.com/primeshift/primeshift/pkg/config"
	"github.com/primeshift/primeshift/pkg/migrate"
	"github.com/primeshift/primeshift/pkg/prompt"
	"github.com/primeshift/primeshift/pkg/vcs"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		yes    bool
		dryRun bool
		noGit  bool
		root   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full migration against a project tree",
		Long: `Run walks the project tree and applies every migration rule in order.
For each rule it will:
1. Scan for files the rule would change
2. Show the file list and a diff preview
3. Ask for confirmation
4. Rewrite the files and commit the change set`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := opts.Config

			if root != "" {
				cfg.Root = root
			}
			if yes {
				cfg.Approval = config.ApprovalYes
			}
			if dryRun {
				cfg.Approval = config.ApprovalDryRun
			}
			if noGit {
				cfg.Git.Enabled = false
			}
			if err := cfg.Validate(); err != nil {
				return errors.Errorf("validating config: %w", err)
			}

			var git *vcs.Git
			if cfg.Git.Enabled {
				git = vcs.New(cfg.Root)
			}

			op, err := migrate.New(migrate.Options{
				Config:    cfg,
				Rules:     cfg.SelectRules(),
				Confirmer: confirmerFor(cfg.Approval),
				Printer:   opts.Printer,
				Git:       git,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			if _, err := op.Run(ctx); err != nil {
				return errors.Errorf("running migration: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "apply every rule without asking")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "scan and report without writing files")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip the version-control wrapper")
	cmd.Flags().StringVar(&root, "root", "", "project root to migrate (overrides config)")

	return cmd
}

func confirmerFor(mode config.ApprovalMode) prompt.Confirmer {
	switch mode {
	case config.ApprovalYes:
		return prompt.Auto(true)
	case config.ApprovalDryRun:
		return prompt.Auto(false)
	default:
		return prompt.Interactive{}
	}
}
