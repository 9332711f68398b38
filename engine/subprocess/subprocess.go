// Package subprocess implements the production code-execution engine:
// each unit file is handed to an interpreter process and the combined
// console output is captured.
//
// Units that render figures are expected to write them into the
// directory named by the SNIPCHECK_FIGDIR environment variable, which
// the engine sets from Options.FigureDir. The display/spool package
// watches that same directory and turns the files into capturable
// surfaces.
package subprocess

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/jonwraymond/snipcheck/check"
	"github.com/jonwraymond/snipcheck/workspace"
)

// ErrCommandRequired is returned when Options.Command is empty.
var ErrCommandRequired = errors.New("subprocess: interpreter command is required")

// Options configures a subprocess engine.
type Options struct {
	// Command is the interpreter argv prefix; the unit file path is
	// appended as the final argument.
	// Required.
	Command []string

	// Env lists extra KEY=VALUE pairs appended to the inherited
	// environment.
	Env []string

	// FigureDir, when set, is exported to the unit as
	// SNIPCHECK_FIGDIR so rendered figures land where the spool
	// display can see them.
	FigureDir string
}

// Python returns options for running units through CPython with
// unbuffered output and no bytecode cache files.
func Python() Options {
	return Options{Command: []string{"python3", "-u", "-B"}}
}

// Octave returns options for running units through GNU Octave without
// a GUI.
func Octave() Options {
	return Options{Command: []string{"octave", "--no-gui", "--quiet"}}
}

// Engine runs units as interpreter subprocesses.
type Engine struct {
	opts Options
}

// New creates a subprocess engine.
// Returns ErrCommandRequired if no interpreter command is configured.
func New(opts Options) (*Engine, error) {
	if len(opts.Command) == 0 {
		return nil, ErrCommandRequired
	}
	return &Engine{opts: opts}, nil
}

// Run executes the unit file and returns its combined stdout/stderr.
// The process runs with the unit's directory as working directory, so
// the session directory is the resolvable execution location for
// anything the unit writes or reads by relative path.
//
// A non-zero exit is returned as a *check.FaultError whose detail is
// the last non-empty output line; for interpreter tracebacks that is
// the most specific message. Context cancellation kills the process
// and returns ctx.Err().
func (e *Engine) Run(ctx context.Context, unit workspace.Unit) (string, error) {
	cmd := exec.CommandContext(ctx, e.opts.Command[0], append(e.opts.Command[1:], unit.Path)...)
	cmd.Dir = filepath.Dir(unit.Path)
	cmd.Env = append(os.Environ(), e.opts.Env...)
	if e.opts.FigureDir != "" {
		cmd.Env = append(cmd.Env, "SNIPCHECK_FIGDIR="+e.opts.FigureDir)
	}

	out, err := cmd.CombinedOutput()
	text := string(out)
	if ctx.Err() != nil {
		return text, ctx.Err()
	}
	if err != nil {
		return text, &check.FaultError{
			Unit:   unit.Name,
			Detail: faultDetail(text, err),
			Err:    err,
		}
	}
	return text, nil
}

// faultDetail prefers the last non-empty output line over the bare
// process exit status.
func faultDetail(output string, err error) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if t := strings.TrimSpace(lines[i]); t != "" {
			return t
		}
	}
	return err.Error()
}
