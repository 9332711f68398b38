// Package engine provides the registry for code-execution engine
// implementations. Engines are registered under a kind ("python",
// "octave", ...) via factories; callers select one per run.
//
// The registry only manages construction. The execution contract
// itself is the check.Engine interface; see the subprocess subpackage
// for the production implementation.
package engine
