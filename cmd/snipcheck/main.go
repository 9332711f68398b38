package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jonwraymond/snipcheck/gateway/mcpserver"
)

var rootCmd = &cobra.Command{
	Use:   "snipcheck",
	Short: "Validate code snippets embedded in assistant responses",
	Long: `snipcheck extracts delimited code blocks from a response, executes
each one in isolation, and composes a validation report with captured
output, fault summaries, and exported figures.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = mcpserver.Version

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().String("base", "", "base directory for session output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
