package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag  string
	userFlag string
	rootCmd  = &cobra.Command{
		Use:   "stashctl",
		Short: "CLI client for the stash-sync REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Sync service base URL")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User ID (required)")

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Trigger a platform sync for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			token, _ := cmd.Flags().GetString("token")
			if userFlag == "" {
				return fmt.Errorf("--user required")
			}
			return runSync(apiFlag, userFlag, kind, token, os.Stdout)
		},
	}
	syncCmd.Flags().StringP("kind", "k", "bookmarks", "Sync kind: bookmarks or likes")
	syncCmd.Flags().StringP("token", "t", "", "Bearer token (omit to use the stored credential)")
	rootCmd.AddCommand(syncCmd)

	savesCmd := &cobra.Command{
		Use:   "saves",
		Short: "List synced saves for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			if userFlag == "" {
				return fmt.Errorf("--user required")
			}
			return runSaves(apiFlag, userFlag, source, os.Stdout)
		},
	}
	savesCmd.Flags().StringP("source", "s", "", "Filter by source tag (e.g. twitter_sync)")
	rootCmd.AddCommand(savesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
