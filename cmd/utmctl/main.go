package main

import (
	"fmt"
	"os"

	"utm-som/internal/observability"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool

	logger = observability.NewNopLogger()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "utmctl",
	Short: "Build UTM-tagged campaign links",
	Long: `utmctl tags a base URL with utm_source, utm_medium, utm_campaign and an
optional utm_content, following the festival's channel catalog.

Generated links are logged to the configured record sinks (sheet logger,
Sheets API, Postgres ledger, Kafka) exactly as the web form does.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = observability.NewConsoleLogger(verbose)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	buildCmd.Flags().StringVarP(&buildBase, "base", "b", "", "Base URL, must end in .com or .es (required)")
	buildCmd.Flags().StringVarP(&buildChannel, "channel", "c", "", "Channel name (default: first channel)")
	buildCmd.Flags().StringVarP(&buildSource, "source", "s", "", "Predefined source value (default: channel's first source)")
	buildCmd.Flags().StringVar(&buildCustomSource, "custom-source", "", "Free-text source for partner, influencer and referral channels")
	buildCmd.Flags().StringVar(&buildCity, "city", "", "City (default: first city)")
	buildCmd.Flags().StringVar(&buildAlias, "alias", "", "Link alias (default: first alias)")
	buildCmd.Flags().StringVar(&buildUser, "user", "", "Festival the link is logged for (default: first user)")
	buildCmd.Flags().StringVar(&buildContent, "content", "", "Optional utm_content")
	buildCmd.Flags().BoolVar(&buildCopy, "copy", false, "Copy the final URL to the clipboard")
	buildCmd.Flags().BoolVar(&buildNoLog, "no-log", false, "Only print the link, do not log it")
	_ = buildCmd.MarkFlagRequired("base")

	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print the catalog as JSON")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
