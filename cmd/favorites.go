package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/suhruthkrishna/bookpal/internal/config"
	"github.com/suhruthkrishna/bookpal/internal/library"
)

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage your favorites library",
	}

	cmd.AddCommand(newFavoritesAddCmd())
	cmd.AddCommand(newFavoritesRemoveCmd())
	cmd.AddCommand(newFavoritesListCmd())
	cmd.AddCommand(newFavoritesResetCmd())

	return cmd
}

func serviceFrom(cmd *cobra.Command) (*library.Service, error) {
	cfg, err := config.Load(configPathFrom(cmd))
	if err != nil {
		return nil, err
	}
	return library.NewService(cfg)
}

func newFavoritesAddCmd() *cobra.Command {
	var genre string

	cmd := &cobra.Command{
		Use:   "add <isbn>",
		Short: "Add a book to your favorites",
		Example: `  bookpal favorites add 9780547928227
  bookpal favorites add 9780547928227 --genre Fantasy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := serviceFrom(cmd)
			if err != nil {
				return err
			}

			entry, err := service.AddFavoriteByISBN(cmd.Context(), args[0], genre)
			if err != nil {
				return err
			}

			fmt.Printf("Added %q to favorites under %s\n", entry.Book.Title, entry.Book.Genre)
			return nil
		},
	}

	cmd.Flags().StringVarP(&genre, "genre", "g", "", "Override the detected genre")

	return cmd
}

func newFavoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <isbn>",
		Short:   "Remove a book from your favorites",
		Example: `  bookpal favorites remove 9780547928227`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := serviceFrom(cmd)
			if err != nil {
				return err
			}

			if err := service.RemoveFavorite(args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed %s from favorites\n", args[0])
			return nil
		},
	}
}

func newFavoritesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your favorites by genre",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := serviceFrom(cmd)
			if err != nil {
				return err
			}

			byGenre, err := service.FavoritesByGenre()
			if err != nil {
				return err
			}
			if len(byGenre) == 0 {
				fmt.Println("No favorites yet. Add one with: bookpal favorites add <isbn>")
				return nil
			}

			genres := make([]string, 0, len(byGenre))
			for genre := range byGenre {
				genres = append(genres, genre)
			}
			sort.Strings(genres)

			for _, genre := range genres {
				fmt.Printf("%s:\n", genre)
				for _, entry := range byGenre[genre] {
					fmt.Printf("  %s by %s (%s)\n", entry.Book.Title, firstOr(entry.Book.Authors, "Unknown Author"), entry.Book.ISBN)
				}
			}
			return nil
		},
	}
}

func newFavoritesResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all favorites",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := serviceFrom(cmd)
			if err != nil {
				return err
			}
			if err := service.Reset(); err != nil {
				return err
			}
			fmt.Println("Favorites cleared")
			return nil
		},
	}
}
