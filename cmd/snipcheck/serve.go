package main

import (
	"github.com/spf13/cobra"

	"github.com/jonwraymond/snipcheck"
	"github.com/jonwraymond/snipcheck/gateway/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run_checks tool over MCP stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout exposing the
run_checks tool, so MCP clients can validate responses through this
pipeline.`,
	Args: cobra.NoArgs,
	RunE: serve,
}

func serve(cmd *cobra.Command, _ []string) error {
	opts, err := serveOptions(cmd)
	if err != nil {
		return err
	}
	return mcpserver.New(opts).Run(cmd.Context())
}

// serveOptions assembles pipeline options from the config file and
// persistent flags, wiring the engine and display for the configured
// language exactly as the run command does.
func serveOptions(cmd *cobra.Command) (snipcheck.Options, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return snipcheck.Options{}, err
	}
	opts, err := pipelineOptions(cmd, cfg)
	if err != nil {
		return snipcheck.Options{}, err
	}
	lang := cfg.Language
	if lang == "" {
		lang = "python"
	}
	if err := wireCapabilities(cfg, lang, &opts); err != nil {
		return snipcheck.Options{}, err
	}
	return opts, nil
}
