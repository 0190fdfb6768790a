package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blogctl",
	Short: "Admin CLI for the Go-Blog platform",
	Long: `blogctl is the command-line admin client for the Go-Blog platform.

It talks to the blog REST API with the same session and error handling the
web admin uses: a bearer token stored between invocations, centralized
failure notifications, and a forced re-login when the session expires.

Quick Start:
  blogctl auth login -u admin        # log in and store the session token

Examples:
  # Browse content
  blogctl articles list --page 2 --title golang
  blogctl categories list

  # Manage content
  blogctl articles create --title "Hello" --cid 1 --desc "First" --content "..."
  blogctl users delete 7 --yes

  # Session
  blogctl auth status
  blogctl auth logout`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(articlesCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(uploadCmd)

	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("base-url", "", "API base URL (overrides config)")
}
