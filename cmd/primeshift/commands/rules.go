package commands

import (
	"github.com/primeshift/primeshift/cmd/primeshift/opts"
	"github.com/primeshift/primeshift/pkg/rules"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the migration rule table in application order",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"NAME", "CATEGORY", "DESCRIPTION"}}
			for _, r := range rules.Table() {
				data = append(data, []string{r.Name, string(r.Category), r.Description})
			}

			err := pterm.DefaultTable.
				WithHasHeader().
				WithData(data).
				WithWriter(cmd.OutOrStdout()).
				Render()
			if err != nil {
				return errors.Errorf("rendering rule table: %w", err)
			}
			return nil
		},
	}

	return cmd
}
