package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/accountant-dev/accountant/internal/model"
	"github.com/accountant-dev/accountant/internal/store"
)

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	var (
		where string
		value string
		id    string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove entries by field match or by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (id == "") == (where == "") {
				return fmt.Errorf("exactly one of --id or --where/--value is required")
			}

			st, err := openStore(opts)
			if err != nil {
				return err
			}

			var res store.Result
			if id != "" {
				res = st.DeleteEntry(model.Entry{ID: id})
			} else {
				res = st.Delete(model.Query{Where: where, Value: value})
			}
			if !res.OK {
				return fmt.Errorf("delete failed: %w", res.Err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d entries\n", res.Matched)
			return nil
		},
	}

	cmd.Flags().StringVar(&where, "where", "", "field name to match")
	cmd.Flags().StringVar(&value, "value", "", "expected field value")
	cmd.Flags().StringVar(&id, "id", "", "delete the single entry with this id")
	cmd.MarkFlagsRequiredTogether("where", "value")

	return cmd
}
