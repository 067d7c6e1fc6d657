package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/accountant-dev/accountant/internal/importer"
	"github.com/accountant-dev/accountant/internal/store"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file-or-directory>",
		Short: "Import bank statement CSVs into the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown statement format %q", format)
			}

			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("stat %s: %w", args[0], err)
			}

			st, err := openStore(opts)
			if err != nil {
				return err
			}

			if info.IsDir() {
				return importDir(cmd, st, parser, args[0])
			}

			dir, name := filepath.Split(args[0])
			if dir == "" {
				dir = "."
			}
			return importFile(cmd, st, parser, filepath.Clean(dir), name)
		},
	}

	cmd.Flags().StringVar(&format, "format", "bank", "statement format")

	return cmd
}

// importDir scans dir for statement CSVs and imports every one of them.
func importDir(cmd *cobra.Command, st *store.Store, parser importer.Parser, dir string) error {
	files, err := importer.Scan(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no statement CSVs in %s\n", dir)
		return nil
	}

	for _, fi := range files {
		if err := importFile(cmd, st, parser, dir, fi.Name); err != nil {
			return err
		}
	}
	return nil
}

// importFile parses one statement, appends its entries to the ledger, and
// moves the statement to processed/.
func importFile(cmd *cobra.Command, st *store.Store, parser importer.Parser, dir, name string) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	entries, err := parser.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}

	if len(entries) > 0 {
		if res := st.Write(entries); !res.OK {
			return fmt.Errorf("writing entries: %w", res.Err)
		}
	}
	if err := importer.MarkProcessed(dir, name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries from %s\n", len(entries), name)
	return nil
}
