// Package check is the core of the snippet validation pipeline: it runs
// materialized code units strictly one at a time, captures console
// output or a contained fault summary per unit, and captures the
// graphical artifacts each unit produced.
//
// # Architecture
//
// The package defines two capability interfaces that turn the ambient
// collaborators into explicit, fakeable dependencies:
//
//   - [Engine]: the opaque code-execution facility: "run this unit,
//     return its console text, error on fault".
//
//   - [Display]: the global graphical-surface list, with operations to
//     enumerate, hide, show, export, and close surfaces.
//
// [Runner] orchestrates a run inside two isolation brackets. Before the
// first unit it hides every pre-existing surface so ambient figures are
// never attributed to a unit or closed by the run; after the last unit
// (or a fatal error) it unconditionally restores them. Between those
// brackets each unit moves through
// Pending → Running → Succeeded|Faulted → ArtifactsCaptured, with the
// surfaces it created exported in enumeration order and closed before
// the next unit starts.
//
// # Fault containment
//
// A fault raised by a unit is unit-local: it is recorded on the
// [Result] as a short formatted summary standing in place of output and
// never aborts the run. Workspace and artifact I/O failures are
// run-level and do abort (artifact failures can be downgraded to logged
// warnings via Config.ArtifactWarn).
//
// # Known limitations
//
// There is no sandboxing and, by default, no timeout: a unit that never
// returns blocks the run indefinitely. Config.UnitTimeout is an
// explicit opt-in hardening knob, not default behavior.
package check
