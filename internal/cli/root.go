// Package cli implements the supportctl command line client for the
// support agent service.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "supportctl",
	Short: "Command line client for the support agent service",
	Long: `supportctl talks to a running support agent server. It can seed the
knowledge base data folder, build the index, run searches, manage
tickets, and hold an interactive support chat.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s",
		"http://localhost:8080", "base URL of the support agent server")
}
