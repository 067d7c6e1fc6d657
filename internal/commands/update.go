package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accountant-dev/accountant/internal/model"
)

func newUpdateCommand(opts *rootOptions) *cobra.Command {
	var (
		where    string
		value    string
		newValue string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace a field value on every matching entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(opts)
			if err != nil {
				return err
			}

			res := st.Update(model.UpdateCondition{Where: where, Value: value, WithNewValue: newValue})
			if !res.OK {
				if res.Err != nil {
					return fmt.Errorf("update failed: %w", res.Err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to update")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated %d entries\n", res.Matched)
			return nil
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "field name to match (required)")
	_ = cmd.MarkFlagRequired("where")
	cmd.Flags().StringVar(&value, "value", "", "expected current value (required)")
	_ = cmd.MarkFlagRequired("value")
	cmd.Flags().StringVar(&newValue, "set", "", "replacement value (required)")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}
