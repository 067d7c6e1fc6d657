package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accountant-dev/accountant/internal/model"
)

func newStatsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the ledger per flow type",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(opts)
			if err != nil {
				return err
			}

			sum, err := st.Stats()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "entries: %d\n", sum.Count)
			for _, ft := range []model.FlowType{model.FlowCredit, model.FlowDebit, model.FlowSavings} {
				fmt.Fprintf(out, "%-8s %s\n", ft, sum.Total(ft).String())
			}
			return nil
		},
	}
	return cmd
}
