package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suhruthkrishna/bookpal/internal/config"
	"github.com/suhruthkrishna/bookpal/internal/library"
	"github.com/suhruthkrishna/bookpal/internal/models"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <isbn>",
		Short: "Check whether a book matches your taste",
		Long: `Fetches a book's metadata by ISBN and scores it against the taste
profiles built from your favorites. Prints the verdict and, for weak
matches, the favorites most similar to the candidate.`,
		Example: `  bookpal check 9780547928227
  bookpal check 978-0-547-92822-7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPathFrom(cmd))
			if err != nil {
				return err
			}

			service, err := library.NewService(cfg)
			if err != nil {
				return err
			}

			book, verdict, err := service.Check(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s by %s\n", book.Title, firstOr(book.Authors, "Unknown Author"))
			fmt.Printf("Best genre:  %s\n", verdict.Genre)
			fmt.Printf("Similarity:  %.3f\n", verdict.Score)
			fmt.Printf("Verdict:     %s\n", verdictLabel(verdict.Tier))

			if len(verdict.Suggestions) > 0 {
				fmt.Println("\nYou might like these favorites better:")
				for i, suggestion := range verdict.Suggestions {
					fmt.Printf("  %d. %s (%.3f)\n", i+1, suggestion.Book.Title, suggestion.Score)
				}
			}
			return nil
		},
	}

	return cmd
}

func verdictLabel(tier models.Tier) string {
	switch tier {
	case models.TierStrong:
		return "Strong match"
	case models.TierPartial:
		return "Partial match"
	default:
		return "Not a match"
	}
}

func firstOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return values[0]
}
