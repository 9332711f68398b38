// Package spool realizes the graphical-surface capability over a spool
// directory. Units render figures as image files into the spool (see
// the SNIPCHECK_FIGDIR convention in engine/subprocess); each file is
// one surface.
//
// Hiding a surface removes it from enumeration without touching the
// file, so figures that existed before a run survive it untouched.
// Closing a surface deletes its file.
package spool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonwraymond/snipcheck/check"
)

// imageExts are the file extensions treated as figure surfaces.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
}

// Display implements check.Display over a spool directory.
type Display struct {
	dir string

	mu     sync.Mutex
	hidden map[check.Surface]bool
}

// New creates a spool display over dir, creating the directory if
// needed.
func New(dir string) (*Display, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create spool dir %s: %w", dir, err)
	}
	return &Display{dir: dir, hidden: make(map[check.Surface]bool)}, nil
}

// Dir returns the spool directory path.
func (d *Display) Dir() string {
	return d.dir
}

// ListSurfaces enumerates capturable figure files in creation order,
// excluding hidden surfaces. Creation order is approximated by
// modification time; files sharing one timestamp tick are ordered by
// name with digit runs compared numerically, so Figure2 stays ahead of
// Figure10.
func (d *Display) ListSurfaces(_ context.Context) ([]check.Surface, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("read spool dir: %w", err)
	}

	type surfaceEntry struct {
		name string
		mod  time.Time
	}
	var found []surfaceEntry
	d.mu.Lock()
	for _, entry := range entries {
		if entry.IsDir() || !imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		if d.hidden[check.Surface(entry.Name())] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, surfaceEntry{name: entry.Name(), mod: info.ModTime()})
	}
	d.mu.Unlock()

	sort.Slice(found, func(i, j int) bool {
		if found[i].mod.Equal(found[j].mod) {
			return naturalLess(found[i].name, found[j].name)
		}
		return found[i].mod.Before(found[j].mod)
	})

	surfaces := make([]check.Surface, 0, len(found))
	for _, f := range found {
		surfaces = append(surfaces, check.Surface(f.name))
	}
	return surfaces, nil
}

// naturalLess orders names byte-wise except that runs of digits are
// compared by numeric value.
func naturalLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			an, aRest := splitDigits(a)
			bn, bRest := splitDigits(b)
			if c := compareDigits(an, bn); c != 0 {
				return c < 0
			}
			a, b = aRest, bRest
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// splitDigits returns the leading digit run of s and the remainder.
func splitDigits(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// compareDigits compares two digit runs by numeric value.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// Hide removes the surfaces from enumeration; their files are left
// untouched.
func (d *Display) Hide(_ context.Context, surfaces []check.Surface) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range surfaces {
		d.hidden[s] = true
	}
	return nil
}

// Show restores hidden surfaces to enumeration.
func (d *Display) Show(_ context.Context, surfaces []check.Surface) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range surfaces {
		delete(d.hidden, s)
	}
	return nil
}

// Export copies the surface's file to path.
func (d *Display) Export(_ context.Context, surface check.Surface, path string) error {
	data, err := os.ReadFile(filepath.Join(d.dir, string(surface)))
	if err != nil {
		return fmt.Errorf("read surface %s: %w", surface, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export surface %s: %w", surface, err)
	}
	return nil
}

// Close deletes the surfaces' files. A surface already gone is not an
// error.
func (d *Display) Close(_ context.Context, surfaces []check.Surface) error {
	for _, s := range surfaces {
		if err := os.Remove(filepath.Join(d.dir, string(s))); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("close surface %s: %w", s, err)
		}
	}
	return nil
}
