package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sprout-dev/sprout/internal/importer"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import expenses from CSV files",
	}
	importCmd.AddCommand(newImportScanCommand(opts))
	importCmd.AddCommand(newImportRunCommand(opts))
	return importCmd
}

func newImportScanCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List CSV files waiting in the import directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			files, err := importer.Scan(e.cfg.Storage.DataDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "No files to import")
				return nil
			}
			for _, f := range files {
				fmt.Fprintf(out, "%s\t%d bytes\n", f.Name, f.Size)
			}
			return nil
		},
	}
	return cmd
}

func newImportRunCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Import a staged CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q", format)
			}

			fileName := args[0]
			f, err := os.Open(filepath.Join(e.cfg.Storage.DataDir, "import", fileName))
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			drafts, err := parser.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", fileName, err)
			}
			if len(drafts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
				return nil
			}

			categories, err := e.store.Categories(opts.userID)
			if err != nil {
				return err
			}
			expenses := importer.ResolveCategories(drafts, categories)

			n, err := e.svc.ImportExpenses(opts.userID, expenses)
			if err != nil {
				return err
			}

			if err := importer.MarkProcessed(e.cfg.Storage.DataDir, fileName); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses from %s\n", n, fileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "ledger", "source format (ledger, bank)")

	return cmd
}
