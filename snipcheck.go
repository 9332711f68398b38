// Package snipcheck validates machine-generated code snippets embedded
// in a free-text assistant response. It extracts each delimited code
// block, executes it in isolation, captures console output, runtime
// faults, and graphical artifacts, and assembles a human-readable
// validation report plus the ordered list of fault messages.
//
// It judges only whether code runs, never whether it is correct, and it
// provides no sandboxing: snippets execute with the caller's
// privileges.
//
// The facade wires the pipeline stages (extract, workspace, check,
// report) with production defaults (a python3 subprocess engine and a
// figure-spool display). Both capabilities are injectable through
// Options for other interpreters or for tests.
//
//	reportText, faults, err := snipcheck.RunChecks(ctx, response, "")
package snipcheck

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jonwraymond/snipcheck/check"
	"github.com/jonwraymond/snipcheck/display/spool"
	"github.com/jonwraymond/snipcheck/engine/subprocess"
	"github.com/jonwraymond/snipcheck/extract"
	"github.com/jonwraymond/snipcheck/report"
	"github.com/jonwraymond/snipcheck/workspace"
)

// Pipeline is a configured extract → execute → capture → report
// pipeline. A single Pipeline may serve many invocations; each
// invocation gets its own Session.
type Pipeline struct {
	opts   Options
	runner *check.Runner
}

// New creates a Pipeline with the given options, filling in production
// defaults for any capability not supplied.
func New(opts Options) (*Pipeline, error) {
	opts.applyDefaults()

	if opts.Display == nil {
		d, err := spool.New(opts.spoolDir())
		if err != nil {
			return nil, fmt.Errorf("default display: %w", err)
		}
		opts.Display = d
		if opts.Engine == nil {
			po := subprocess.Python()
			po.FigureDir = d.Dir()
			e, err := subprocess.New(po)
			if err != nil {
				return nil, fmt.Errorf("default engine: %w", err)
			}
			opts.Engine = e
		}
	}
	if opts.Engine == nil {
		e, err := subprocess.New(subprocess.Python())
		if err != nil {
			return nil, fmt.Errorf("default engine: %w", err)
		}
		opts.Engine = e
	}

	runner, err := check.NewRunner(check.Config{
		Engine:       opts.Engine,
		Display:      opts.Display,
		UnitTimeout:  opts.UnitTimeout,
		ArtifactWarn: opts.ArtifactWarn,
		Logger:       opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Pipeline{opts: opts, runner: runner}, nil
}

// RunChecks runs the full pipeline over one response: extraction,
// session creation, materialization, sequential execution with
// artifact capture, and report composition. It returns the composed
// report text and the fault messages of every faulted unit, in unit
// order.
//
// A response with no delimited blocks yields an empty report and an
// empty fault list. Per-unit faults never surface as an error; only
// workspace and artifact I/O failures (and caller cancellation) do.
func (p *Pipeline) RunChecks(ctx context.Context, response string) (string, []string, error) {
	blocks := extract.Blocks(response, p.opts.Delims)

	session, err := workspace.NewSession(p.opts.BasePath)
	if err != nil {
		return "", nil, err
	}
	units, err := session.Materialize(blocks, p.opts.Extension)
	if err != nil {
		return "", nil, err
	}

	results, err := p.runner.Run(ctx, units, session.Dir)
	if err != nil {
		return "", nil, err
	}

	asm := &report.Assembler{
		SessionDir:  session.Dir,
		DisplayRoot: p.displayRoot(session),
	}
	return asm.Compose(results)
}

// displayRoot resolves the directory image references are computed
// against: the configured one, or the directory two levels above the
// session's GeneratedCode folder (the resolved base path).
func (p *Pipeline) displayRoot(session *workspace.Session) string {
	if p.opts.DisplayRoot != "" {
		return p.opts.DisplayRoot
	}
	return filepath.Dir(filepath.Dir(filepath.Dir(session.Dir)))
}

// RunChecks is the package-level convenience entry point with
// production defaults. basePath may be empty, meaning the current
// directory.
func RunChecks(ctx context.Context, response, basePath string) (string, []string, error) {
	p, err := New(Options{BasePath: basePath})
	if err != nil {
		return "", nil, err
	}
	return p.RunChecks(ctx, response)
}
