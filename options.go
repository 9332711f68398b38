package snipcheck

import (
	"path/filepath"
	"time"

	"github.com/jonwraymond/snipcheck/check"
	"github.com/jonwraymond/snipcheck/extract"
)

// Default configuration values.
const (
	DefaultBasePath  = "."
	DefaultExtension = ".py"
	spoolSubdir      = "contents/GeneratedCode/FigureSpool"
)

// Options configures a Pipeline.
type Options struct {
	// BasePath is the directory under which session output is
	// written (<BasePath>/contents/GeneratedCode/Test-<timestamp>/).
	// Default: ".".
	BasePath string

	// Delims are the code-block markers to extract.
	// Default: triple-backtick fences.
	Delims extract.Delimiters

	// Extension is the unit file extension.
	// Default: ".py".
	Extension string

	// Engine executes units. Optional; if nil, a subprocess engine
	// running python3 is used, wired to the spool display's figure
	// directory.
	Engine check.Engine

	// Display manages figure surfaces. Optional; if nil, a spool
	// display over <BasePath>/contents/GeneratedCode/FigureSpool is
	// used.
	Display check.Display

	// DisplayRoot is the directory the report is rendered from;
	// image references are relative to it. Optional; if empty, the
	// session's base path is used, which reproduces the original
	// two-levels-above-GeneratedCode layout.
	DisplayRoot string

	// UnitTimeout bounds each unit's execution. Zero (the default)
	// means unbounded.
	UnitTimeout time.Duration

	// ArtifactWarn downgrades artifact export failures to logged
	// warnings instead of aborting the run.
	ArtifactWarn bool

	// Logger is an optional logger for observability.
	Logger check.Logger
}

// applyDefaults sets default values for unset optional fields.
// Engine and Display defaults need I/O and are resolved in New.
func (o *Options) applyDefaults() {
	if o.BasePath == "" {
		o.BasePath = DefaultBasePath
	}
	if o.Delims == (extract.Delimiters{}) {
		o.Delims = extract.Markdown
	}
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
}

// spoolDir returns the default figure spool directory for this base
// path.
func (o *Options) spoolDir() string {
	return filepath.Join(o.BasePath, filepath.FromSlash(spoolSubdir))
}
