package commands

import (
	"github.com/spf13/cobra"

	"github.com/accountant-dev/accountant/internal/model"
)

func newFindCommand(opts *rootOptions) *cobra.Command {
	var (
		where string
		value string
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Print entries where a field equals a value",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(opts)
			if err != nil {
				return err
			}

			entries, err := st.GetBy(model.Query{Where: where, Value: value})
			if err != nil {
				return err
			}

			printEntries(cmd, entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "field name to match (required)")
	_ = cmd.MarkFlagRequired("where")
	cmd.Flags().StringVar(&value, "value", "", "expected field value (required)")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}
