package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suhruthkrishna/bookpal/internal/dataset"
	"github.com/suhruthkrishna/bookpal/internal/models"
)

func newImportCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "import <dataset>",
		Short: "Bulk-add favorites from a Parquet or JSONL dataset",
		Long: `Imports book records from a dataset file into your favorites.

Each record needs at least a title or description to embed; records that
duplicate an existing favorite are skipped. Genres missing from the
dataset are detected from the record's categories.`,
		Example: `  bookpal import books.parquet
  bookpal import books.jsonl --limit 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := serviceFrom(cmd)
			if err != nil {
				return err
			}

			loader := dataset.NewLoader(args[0])
			records, err := loader.Load()
			if err != nil {
				return err
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			books := make([]models.BookRecord, len(records))
			for i, record := range records {
				books[i] = record.ToBookRecord()
			}

			added, err := service.Import(cmd.Context(), books)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d of %d records into favorites\n", added, len(records))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Import at most this many records (0 = all)")

	return cmd
}
