package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/snipcheck"
	"github.com/jonwraymond/snipcheck/check"
	"github.com/jonwraymond/snipcheck/display/spool"
	"github.com/jonwraymond/snipcheck/engine"
	"github.com/jonwraymond/snipcheck/engine/subprocess"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [response-file]",
	Short: "Validate the code blocks in a response",
	Long: `Read a response from a file (or stdin when omitted or "-"), execute
every delimited code block, and print the validation report. Fault
summaries are listed on stderr; a faulted unit does not change the
exit status.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChecks,
}

// langExtensions maps engine kinds to their default unit extension.
var langExtensions = map[string]string{
	"python": ".py",
	"octave": ".m",
}

func init() {
	runCmd.Flags().String("lang", "python", "engine kind used to execute units")
	runCmd.Flags().String("out", "", "write the report to a file instead of stdout")
	runCmd.Flags().Duration("timeout", 0, "per-unit execution timeout (0 = unbounded)")
	runCmd.Flags().Bool("artifact-warn", false, "log and skip failed figure exports instead of aborting")
	runCmd.Flags().Bool("verbose", false, "log per-unit progress to stderr")
}

func runChecks(cmd *cobra.Command, args []string) error {
	response, err := readResponse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := pipelineOptions(cmd, cfg)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, cfg, &opts); err != nil {
		return err
	}

	p, err := snipcheck.New(opts)
	if err != nil {
		return err
	}
	report, faults, err := p.RunChecks(cmd.Context(), response)
	if err != nil {
		return err
	}

	if err := writeReport(cmd, report); err != nil {
		return err
	}
	printSummary(report, faults)
	return nil
}

// applyRunFlags resolves the engine, display, and remaining run flags
// onto the pipeline options.
func applyRunFlags(cmd *cobra.Command, cfg fileConfig, opts *snipcheck.Options) error {
	lang, err := cmd.Flags().GetString("lang")
	if err != nil {
		return err
	}
	if lang == "python" && cfg.Language != "" && !cmd.Flags().Changed("lang") {
		lang = cfg.Language
	}

	if timeout, err := cmd.Flags().GetDuration("timeout"); err != nil {
		return err
	} else if timeout > 0 {
		opts.UnitTimeout = timeout
	}
	if warn, err := cmd.Flags().GetBool("artifact-warn"); err != nil {
		return err
	} else if warn {
		opts.ArtifactWarn = true
	}
	if verbose, err := cmd.Flags().GetBool("verbose"); err != nil {
		return err
	} else if verbose {
		opts.Logger = stderrLogger{}
	}

	return wireCapabilities(cfg, lang, opts)
}

// wireCapabilities builds the spool display and the engine for lang
// onto the pipeline options, defaulting the unit extension by kind.
// Shared by run and serve so a configured language always selects the
// matching engine, never just the file extension.
func wireCapabilities(cfg fileConfig, lang string, opts *snipcheck.Options) error {
	base := opts.BasePath
	if base == "" {
		base = snipcheck.DefaultBasePath
	}
	figDir := filepath.Join(base, "contents", "GeneratedCode", "FigureSpool")
	d, err := spool.New(figDir)
	if err != nil {
		return err
	}
	opts.Display = d

	eng, err := buildRegistry(cfg, figDir).New(lang)
	if err != nil {
		return err
	}
	opts.Engine = eng

	if opts.Extension == "" {
		opts.Extension = langExtensions[lang]
	}
	return nil
}

// buildRegistry assembles the engine registry: interpreters from the
// config file first, then the built-in kinds for anything not
// overridden.
func buildRegistry(cfg fileConfig, figDir string) *engine.Registry {
	reg := engine.NewRegistry()
	for kind, argv := range cfg.Interpreters {
		command := append([]string(nil), argv...)
		_ = reg.Register(kind, func() (check.Engine, error) {
			return subprocess.New(subprocess.Options{Command: command, FigureDir: figDir})
		})
	}
	builtin := map[string]subprocess.Options{
		"python": subprocess.Python(),
		"octave": subprocess.Octave(),
	}
	for kind, o := range builtin {
		o.FigureDir = figDir
		opts := o
		_ = reg.Register(kind, func() (check.Engine, error) {
			return subprocess.New(opts)
		})
	}
	return reg
}

// readResponse reads the response text from the file argument, or from
// stdin when the argument is absent or "-".
func readResponse(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(data), nil
}

// writeReport sends the report to --out or stdout.
func writeReport(cmd *cobra.Command, report string) error {
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Println(report)
		return nil
	}
	if err := os.WriteFile(out, []byte(report+"\n"), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// printSummary writes a one-line pass/fault summary to stderr.
func printSummary(report string, faults []string) {
	if !isTerminal(os.Stderr) {
		color.NoColor = true
	}
	total := strings.Count(report, "--------------- Test: ")
	passed := total - len(faults)

	var parts []string
	parts = append(parts, color.GreenString("%d passed", passed))
	if len(faults) > 0 {
		parts = append(parts, color.RedString("%d faulted", len(faults)))
	}
	fmt.Fprintf(os.Stderr, "%s (%d unit(s))\n", strings.Join(parts, ", "), total)
	for _, f := range faults {
		fmt.Fprintln(os.Stderr, color.RedString("  %s", f))
	}
}

// stderrLogger implements check.Logger on stderr.
type stderrLogger struct{}

func (stderrLogger) Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
