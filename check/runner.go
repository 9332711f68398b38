package check

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jonwraymond/snipcheck/extract"
	"github.com/jonwraymond/snipcheck/workspace"
)

// Runner executes code units strictly sequentially, one at a time.
// Sequential execution is a hard requirement, not a simplification: the
// surface list is global ambient state, so overlapping units would make
// artifact attribution non-deterministic.
type Runner struct {
	cfg Config
}

// NewRunner creates a Runner with the given configuration.
// Returns ErrConfiguration if any required field is missing.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg}, nil
}

// Run executes the ordered units and returns exactly one Result per
// unit, in the same order. artifactDir is where exported figure files
// are written, normally the session directory.
//
// Per-unit faults are contained: they are recorded on the Result as a
// formatted summary and never abort the run. Artifact I/O failures
// abort the run (or are logged and skipped when ArtifactWarn is set).
// Surfaces that existed before the run are hidden for its duration and
// restored unconditionally before Run returns, even on a fatal error.
func (r *Runner) Run(ctx context.Context, units []workspace.Unit, artifactDir string) ([]Result, error) {
	pre, err := r.cfg.Display.ListSurfaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pre-run surfaces: %w", err)
	}
	if err := r.cfg.Display.Hide(ctx, pre); err != nil {
		return nil, fmt.Errorf("hide pre-run surfaces: %w", err)
	}
	defer func() {
		// Restore ambient state no matter how the run ended. Best
		// effort: the show error must not mask the run's outcome.
		if err := r.cfg.Display.Show(context.WithoutCancel(ctx), pre); err != nil {
			r.cfg.logf("restore %d pre-run surfaces: %v", len(pre), err)
		}
	}()

	results := make([]Result, 0, len(units))
	for _, unit := range units {
		res, err := r.runUnit(ctx, unit, artifactDir)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// runUnit executes one unit and captures its output and artifacts.
// The returned error is always run-fatal; unit faults land on the Result.
func (r *Runner) runUnit(ctx context.Context, unit workspace.Unit, artifactDir string) (Result, error) {
	unitCtx := ctx
	cancel := context.CancelFunc(func() {})
	if r.cfg.UnitTimeout > 0 {
		unitCtx, cancel = context.WithTimeout(ctx, r.cfg.UnitTimeout)
	}
	output, runErr := r.cfg.Engine.Run(unitCtx, unit)
	cancel()

	// Caller cancellation is run-level, not a unit fault.
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	res := Result{Unit: unit, Output: output}
	if runErr != nil {
		res.Faulted = true
		res.Output = extract.FormatFault(unit.Name, faultDetail(runErr, r.cfg))
	}

	figures, err := r.captureArtifacts(ctx, unit, artifactDir)
	if err != nil {
		return Result{}, err
	}
	res.Figures = figures

	r.cfg.logf("unit %s: faulted=%v figures=%d", unit.Name, res.Faulted, len(res.Figures))
	return res, nil
}

// captureArtifacts exports every capturable surface the unit left
// behind, in enumeration order, then closes them so the next unit
// starts from a clean slate.
func (r *Runner) captureArtifacts(ctx context.Context, unit workspace.Unit, artifactDir string) ([]string, error) {
	surfaces, err := r.cfg.Display.ListSurfaces(ctx)
	if err != nil {
		if r.cfg.ArtifactWarn {
			r.cfg.logf("unit %s: list surfaces: %v (skipping artifact capture)", unit.Name, err)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: list surfaces after %s: %v", ErrArtifact, unit.Name, err)
	}

	var figures []string
	for j, s := range surfaces {
		path := filepath.Join(artifactDir, fmt.Sprintf("%s_Figure%d.png", unit.Name, j+1))
		if err := r.cfg.Display.Export(ctx, s, path); err != nil {
			if r.cfg.ArtifactWarn {
				r.cfg.logf("unit %s: export figure %d: %v (skipped)", unit.Name, j+1, err)
				continue
			}
			return nil, fmt.Errorf("%w: export figure %d of %s: %v", ErrArtifact, j+1, unit.Name, err)
		}
		figures = append(figures, path)
	}

	if err := r.cfg.Display.Close(ctx, surfaces); err != nil {
		if r.cfg.ArtifactWarn {
			r.cfg.logf("unit %s: close surfaces: %v", unit.Name, err)
			return figures, nil
		}
		return nil, fmt.Errorf("%w: close surfaces of %s: %v", ErrArtifact, unit.Name, err)
	}
	return figures, nil
}

// faultDetail picks the most specific one-line detail for a unit fault.
func faultDetail(runErr error, cfg Config) string {
	if errors.Is(runErr, context.DeadlineExceeded) && cfg.UnitTimeout > 0 {
		return fmt.Sprintf("execution timed out after %s", cfg.UnitTimeout)
	}
	var fe *FaultError
	if errors.As(runErr, &fe) && fe.Detail != "" {
		return fe.Detail
	}
	return runErr.Error()
}
