package check

import (
	"context"

	"github.com/jonwraymond/snipcheck/workspace"
)

// Engine is the pluggable code-execution capability. Production
// implementations invoke a real interpreter; test implementations
// script outputs and faults.
//
// Contract:
// - Context: must honor cancellation/deadlines and return ctx.Err() when canceled.
// - Errors: a fault raised by the unit's code should be returned as a
//   *FaultError carrying the most specific detail line available; the
//   caller treats any error as a unit-local fault, never run-fatal.
// - Ownership: the unit is read-only; the returned text is caller-owned.
type Engine interface {
	// Run executes the named unit and returns all console text it
	// produced. On fault the returned text may be empty; the error
	// carries the fault detail.
	Run(ctx context.Context, unit workspace.Unit) (string, error)
}

// Surface is an opaque handle to one graphical surface (a figure
// window, or whatever the Display implementation maps onto one).
type Surface string

// Display is the explicit stand-in for the ambient, global graphical
// window list. All surface bookkeeping during a run goes through it.
//
// Contract:
// - Concurrency: the Runner calls Display from a single goroutine;
//   implementations need not be safe for concurrent use.
// - ListSurfaces returns only capturable surfaces (hidden ones are
//   excluded) in creation/enumeration order.
// - Hide/Show are idempotent and must tolerate empty sets.
// - Export writes an image rendition of the surface to path.
// - Close removes the surfaces; closed surfaces never reappear in
//   ListSurfaces.
type Display interface {
	ListSurfaces(ctx context.Context) ([]Surface, error)
	Hide(ctx context.Context, surfaces []Surface) error
	Show(ctx context.Context, surfaces []Surface) error
	Export(ctx context.Context, surface Surface, path string) error
	Close(ctx context.Context, surfaces []Surface) error
}

// Result is the outcome of one unit's execution. Exactly one Result is
// produced per unit, in unit order; results are append-only and never
// revisited within a run.
type Result struct {
	// Unit is the code unit this result belongs to.
	Unit workspace.Unit

	// Output holds the captured console text, or the formatted fault
	// summary when Faulted is true.
	Output string

	// Faulted reports whether the unit raised during execution.
	Faulted bool

	// Figures lists the exported artifact files produced by this
	// unit, in enumeration order at capture time.
	Figures []string
}
