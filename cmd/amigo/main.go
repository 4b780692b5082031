// Command amigo is a small CLI for the Amigo API, useful for trying
// out credentials and talking to a service from a terminal.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "amigo",
	Short:         "amigo is a command line client for the Amigo conversational AI platform",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	cfgFile string
	envFile string
	baseURL string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default $HOME/.amigo.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL override")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(orgCmd)
	rootCmd.AddCommand(chatCmd)
}
