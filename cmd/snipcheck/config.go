package main

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/snipcheck"
	"github.com/jonwraymond/snipcheck/extract"
)

// fileConfig is the TOML configuration surface of the CLI. Every field
// is optional; flags override file values.
type fileConfig struct {
	BasePath     string              `toml:"base_path"`
	Language     string              `toml:"language"`
	Extension    string              `toml:"extension"`
	UnitTimeout  duration            `toml:"unit_timeout"`
	ArtifactWarn bool                `toml:"artifact_warn"`
	Delimiters   delimiterConfig     `toml:"delimiters"`
	Interpreters map[string][]string `toml:"interpreters"`
}

type delimiterConfig struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// duration decodes TOML strings like "30s" into a time.Duration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return nil
	}
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// loadConfig reads the config file named by the --config flag, if any.
func loadConfig(cmd *cobra.Command) (fileConfig, error) {
	var cfg fileConfig
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// pipelineOptions maps file config plus flags onto snipcheck.Options.
// Engine and Display stay nil here; run/serve wire them per language.
func pipelineOptions(cmd *cobra.Command, cfg fileConfig) (snipcheck.Options, error) {
	opts := snipcheck.Options{
		BasePath:     cfg.BasePath,
		Extension:    cfg.Extension,
		UnitTimeout:  cfg.UnitTimeout.Duration,
		ArtifactWarn: cfg.ArtifactWarn,
	}
	if cfg.Delimiters.Start != "" && cfg.Delimiters.End != "" {
		opts.Delims = extract.Delimiters{Start: cfg.Delimiters.Start, End: cfg.Delimiters.End}
	}

	base, err := cmd.Flags().GetString("base")
	if err != nil {
		return opts, err
	}
	if base != "" {
		opts.BasePath = base
	}
	return opts, nil
}
