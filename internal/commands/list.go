package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/accountant-dev/accountant/internal/model"
	"github.com/accountant-dev/accountant/internal/store"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every ledger entry in file order",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(opts)
			if err != nil {
				return err
			}

			entries, err := st.ReadAll()
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no ledger file yet, run `accountant add` first: %w", err)
			}
			if err != nil {
				return err
			}

			printEntries(cmd, entries)
			return nil
		},
	}
	return cmd
}

func printEntries(cmd *cobra.Command, entries []model.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "ledger is empty")
		return
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tNAME\tAMOUNT\tFLOW\tTAG\tREASON\tID")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.DateTime.Format(model.DateTimeFormat), e.Name, e.Amount.String(),
			e.FlowType, e.Tag, e.Reason, e.ID)
	}
	tw.Flush()
}
