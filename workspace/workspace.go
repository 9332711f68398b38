// Package workspace manages the on-disk session for one validation run:
// a unique, timestamped output directory plus the materialized code
// units written into it.
//
// A Session owns its directory and every file written under it. The
// directory is created exactly once; its name combines a second-level
// timestamp with a random disambiguator so that two runs started within
// the same clock tick still get distinct directories.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ErrWorkspace indicates a workspace I/O failure: the output directory
// could not be created or a unit file could not be written. Workspace
// failures are fatal to the whole run, never per-unit.
var ErrWorkspace = errors.New("workspace I/O error")

// generatedSubdir is the fixed path under the base directory that holds
// all session directories.
const generatedSubdir = "contents/GeneratedCode"

// Session is one pipeline invocation's unique identity and output
// directory. Immutable after creation.
type Session struct {
	// Timestamp is the unique session identifier, embedded in the
	// directory name and in every unit name.
	Timestamp string

	// Dir is the absolute path of the session's output directory.
	Dir string
}

// Unit is one extracted code block materialized on disk, plus its
// assigned identity. Index is 1-based and positional; Name is derived
// deterministically from the index and the session timestamp.
type Unit struct {
	Index  int
	Name   string
	Source string
	Path   string
}

// NewSession creates the session directory under basePath and returns
// the Session. The layout is
// <basePath>/contents/GeneratedCode/Test-<timestamp>/.
// Returns an error wrapping ErrWorkspace if the directory cannot be
// created; that error is fatal to the run.
func NewSession(basePath string) (*Session, error) {
	ts := newTimestamp()
	dir := filepath.Join(basePath, filepath.FromSlash(generatedSubdir), "Test-"+ts)
	abs, err := filepath.Abs(dir)
	if err == nil {
		dir = abs
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create session dir %s: %v", ErrWorkspace, dir, err)
	}
	return &Session{Timestamp: ts, Dir: dir}, nil
}

// newTimestamp returns a unique, monotonic-enough session identifier:
// wall-clock seconds plus a random 8-hex disambiguator. Uniqueness does
// not depend on clock granularity.
func newTimestamp() string {
	return time.Now().Format("20060102T150405") + "-" + uuid.NewString()[:8]
}

// UnitName returns the deterministic name for the unit at the given
// 1-based index within this session.
func (s *Session) UnitName(index int) string {
	return "Test" + strconv.Itoa(index) + "_" + s.Timestamp
}

// Materialize writes each code block verbatim to a unit file under the
// session directory, using ext (e.g. ".py") as the file extension, and
// returns the ordered Units. The code text is not transformed in any
// way. A write failure wraps ErrWorkspace and aborts materialization.
func (s *Session) Materialize(blocks []string, ext string) ([]Unit, error) {
	units := make([]Unit, 0, len(blocks))
	for i, src := range blocks {
		name := s.UnitName(i + 1)
		path := filepath.Join(s.Dir, name+ext)
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			return nil, fmt.Errorf("%w: write unit %s: %v", ErrWorkspace, name, err)
		}
		units = append(units, Unit{
			Index:  i + 1,
			Name:   name,
			Source: src,
			Path:   path,
		})
	}
	return units, nil
}
