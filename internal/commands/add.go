package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/accountant-dev/accountant/internal/model"
)

func newAddCommand(opts *rootOptions) *cobra.Command {
	var (
		name   string
		amount string
		reason string
		tag    string
		flow   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a transaction to the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(opts)
			if err != nil {
				return err
			}

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			var entryOpts []model.Option
			if tag != "" {
				entryOpts = append(entryOpts, model.WithTag(tag))
			}
			if flow != "" {
				ft, err := model.ParseFlowType(flow)
				if err != nil {
					return err
				}
				entryOpts = append(entryOpts, model.WithFlowType(ft))
			}

			e := model.New(name, amt, reason, entryOpts...)
			if res := st.Write([]model.Entry{e}); !res.OK {
				return fmt.Errorf("writing entry: %w", res.Err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "party or category label (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&amount, "amount", "", "decimal amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&reason, "reason", "", "description (required)")
	_ = cmd.MarkFlagRequired("reason")
	cmd.Flags().StringVar(&tag, "tag", "", "optional classification tag")
	cmd.Flags().StringVar(&flow, "flow", "", "flow type: credit, debit or savings")

	return cmd
}
