package commands

import (
	"github.com/primeshift/primeshift/cmd/primeshift/opts"
	"github.com/primeshift/primeshift/pkg/config"
	"github.com/primeshift/primeshift/pkg/migrate"
	"github.com/primeshift/primeshift/pkg/prompt"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewScanCmd creates a new scan command
func NewScanCmd(opts *opts.RootOpts) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Report what the migration would change, without writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := opts.Config

			if root != "" {
				cfg.Root = root
			}
			cfg.Approval = config.ApprovalDryRun
			if err := cfg.Validate(); err != nil {
				return errors.Errorf("validating config: %w", err)
			}

			op, err := migrate.New(migrate.Options{
				Config:    cfg,
				Rules:     cfg.SelectRules(),
				Confirmer: prompt.Auto(false),
				Printer:   opts.Printer,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			if _, err := op.Run(ctx); err != nil {
				return errors.Errorf("scanning: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "project root to scan (overrides config)")

	return cmd
}
