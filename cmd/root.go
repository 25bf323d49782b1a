package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "bookpal",
		Short: "Personal book recommendation assistant",
		Long: `BookPal decides whether a candidate book matches your reading taste.

It learns per-genre taste profiles from the books you mark as favorites,
then scores new books against those profiles with embedding similarity.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "bookpal.yaml", "Path to config file")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newFavoritesCmd())
	cmd.AddCommand(newImportCmd())

	return cmd
}

// configPathFrom reads the persistent --config flag from any subcommand
func configPathFrom(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return "bookpal.yaml"
	}
	return path
}
