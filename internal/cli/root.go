// Package cli implements the localecli commands: a terminal client for the
// relay that keeps a short local history of submissions.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "localecli",
	Short: "Terminal client for the locale relay",
	Long: `localecli talks to a running relay server to translate text and
transcribe audio files. Successful translations are kept in a small local
history, newest first.

Use "localecli translate --help" for translation options.`,
}

func init() {
	defaultServer := os.Getenv("LOCALE_RELAY_URL")
	if defaultServer == "" {
		defaultServer = "http://localhost:5000"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "relay server base URL")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
