package check

import "errors"

// Sentinel errors for error classification.
var (
	// ErrConfiguration indicates an invalid or incomplete Config.
	ErrConfiguration = errors.New("configuration error")

	// ErrArtifact indicates that exporting or relocating a graphical
	// artifact failed. Fatal to the run unless Config.ArtifactWarn
	// downgrades it to a logged warning.
	ErrArtifact = errors.New("artifact I/O error")
)

// FaultError carries the detail of a fault raised by a unit's code.
// Engines return it so the runner can build a one-line summary from the
// most specific message instead of a generic exit status.
type FaultError struct {
	// Unit is the name of the unit that faulted.
	Unit string

	// Detail is the most specific fault message available, e.g. the
	// final line of an interpreter traceback.
	Detail string

	// Err is the underlying error, if any.
	Err error
}

// Error returns the fault detail, falling back to the underlying error.
func (e *FaultError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "fault"
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *FaultError) Unwrap() error {
	return e.Err
}
