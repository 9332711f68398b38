// Package report composes the final validation report from the ordered
// execution results: one section per unit embedding its code, captured
// output, and image references for every exported artifact. It also
// collects the ordered fault-message list.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonwraymond/snipcheck/check"
)

// Assembler turns ordered execution results into report text. It owns
// the final relocation step: any artifact file still outside the
// session directory is moved into it before being referenced.
type Assembler struct {
	// SessionDir is the session's output directory; artifacts are
	// relocated here.
	SessionDir string

	// DisplayRoot is the directory the report is expected to be
	// rendered from. Image src attributes are computed relative to
	// it. This replaces the original fixed two-levels-up assumption
	// with an explicit caller-supplied mapping.
	DisplayRoot string
}

// Compose walks the ordered results and returns the composed report
// text plus the fault messages of every faulted result, in original
// order. Zero results yield an empty report and an empty fault list.
// An artifact that cannot be relocated aborts composition with an
// error wrapping check.ErrArtifact.
func (a *Assembler) Compose(results []check.Result) (string, []string, error) {
	var b strings.Builder
	var faults []string

	for _, res := range results {
		fmt.Fprintf(&b, "--------------- Test: %s ---------------\n\n", res.Unit.Name)
		b.WriteString("%% Code:\n")
		b.WriteString(res.Unit.Source)
		b.WriteString("\n\n")
		b.WriteString("%% Output:\n")
		b.WriteString(res.Output)
		b.WriteString("\n\n")

		for _, fig := range res.Figures {
			path, err := a.relocate(fig)
			if err != nil {
				return "", nil, err
			}
			fmt.Fprintf(&b, "Image saved to: %s\n\n", path)
			fmt.Fprintf(&b, "<img src=%q class=\"ml-figure\"/>\n\n", a.imageSrc(path))
		}

		if res.Faulted {
			faults = append(faults, res.Output)
		}
	}

	return strings.TrimRight(b.String(), " \t\r\n"), faults, nil
}

// relocate moves an artifact into the session directory if it is not
// already there, returning its final path.
func (a *Assembler) relocate(path string) (string, error) {
	if filepath.Dir(path) == a.SessionDir {
		return path, nil
	}
	dst := filepath.Join(a.SessionDir, filepath.Base(path))
	if err := os.Rename(path, dst); err != nil {
		return "", fmt.Errorf("%w: relocate %s: %v", check.ErrArtifact, filepath.Base(path), err)
	}
	return dst, nil
}

// imageSrc computes the path embedded in the img tag, relative to the
// configured display root. Falls back to the slashed absolute path when
// no relative form exists (e.g. different volumes).
func (a *Assembler) imageSrc(path string) string {
	if a.DisplayRoot != "" {
		if rel, err := filepath.Rel(a.DisplayRoot, path); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}
