package spool

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonwraymond/snipcheck/check"
)

var _ check.Display = (*Display)(nil)

func writeFigure(t *testing.T, dir, name string, mod time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("img:"+name), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}
}

func TestListSurfaces_CreationOrder(t *testing.T) {
	dir := t.TempDir()
	d, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base := time.Now().Add(-time.Hour)
	writeFigure(t, dir, "late.png", base.Add(2*time.Minute))
	writeFigure(t, dir, "early.png", base)
	writeFigure(t, dir, "middle.jpg", base.Add(time.Minute))
	// Non-image files are not surfaces.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	surfaces, err := d.ListSurfaces(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []check.Surface{"early.png", "middle.jpg", "late.png"}
	if len(surfaces) != len(want) {
		t.Fatalf("surfaces = %v, want %v", surfaces, want)
	}
	for i := range want {
		if surfaces[i] != want[i] {
			t.Errorf("surface %d = %q, want %q", i, surfaces[i], want[i])
		}
	}
}

func TestListSurfaces_NumericNameTiebreak(t *testing.T) {
	dir := t.TempDir()
	d, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// One mtime tick for all three, so only the names order them.
	mod := time.Now().Add(-time.Hour).Truncate(time.Second)
	writeFigure(t, dir, "Figure10.png", mod)
	writeFigure(t, dir, "Figure2.png", mod)
	writeFigure(t, dir, "Figure1.png", mod)

	surfaces, err := d.ListSurfaces(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []check.Surface{"Figure1.png", "Figure2.png", "Figure10.png"}
	if len(surfaces) != len(want) {
		t.Fatalf("surfaces = %v, want %v", surfaces, want)
	}
	for i := range want {
		if surfaces[i] != want[i] {
			t.Errorf("surface %d = %q, want %q", i, surfaces[i], want[i])
		}
	}
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Figure2.png", "Figure10.png", true},
		{"Figure10.png", "Figure2.png", false},
		{"Figure2.png", "Figure2.png", false},
		{"a1b2", "a1b10", true},
		{"fig02.png", "fig10.png", true},
		{"alpha.png", "beta.png", true},
		{"fig.png", "fig1.png", true},
	}
	for _, tt := range tests {
		if got := naturalLess(tt.a, tt.b); got != tt.want {
			t.Errorf("naturalLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestHideShow(t *testing.T) {
	dir := t.TempDir()
	d, _ := New(dir)
	writeFigure(t, dir, "fig.png", time.Now())

	ctx := context.Background()
	if err := d.Hide(ctx, []check.Surface{"fig.png"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	surfaces, _ := d.ListSurfaces(ctx)
	if len(surfaces) != 0 {
		t.Errorf("hidden surface still enumerated: %v", surfaces)
	}
	// The file itself must be untouched.
	if _, err := os.Stat(filepath.Join(dir, "fig.png")); err != nil {
		t.Errorf("hidden surface file modified: %v", err)
	}

	if err := d.Show(ctx, []check.Surface{"fig.png"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	surfaces, _ = d.ListSurfaces(ctx)
	if len(surfaces) != 1 {
		t.Errorf("shown surface not enumerated: %v", surfaces)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	d, _ := New(dir)
	writeFigure(t, dir, "fig.png", time.Now())

	dst := filepath.Join(t.TempDir(), "Test1_ts_Figure1.png")
	if err := d.Export(context.Background(), "fig.png", dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if string(data) != "img:fig.png" {
		t.Errorf("exported content = %q", data)
	}
}

func TestExport_MissingSurface(t *testing.T) {
	d, _ := New(t.TempDir())
	err := d.Export(context.Background(), "gone.png", filepath.Join(t.TempDir(), "out.png"))
	if err == nil {
		t.Fatal("expected error for missing surface")
	}
}

func TestClose(t *testing.T) {
	dir := t.TempDir()
	d, _ := New(dir)
	writeFigure(t, dir, "fig.png", time.Now())

	ctx := context.Background()
	if err := d.Close(ctx, []check.Surface{"fig.png"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fig.png")); !os.IsNotExist(err) {
		t.Error("closed surface file still exists")
	}
	// Closing again is not an error.
	if err := d.Close(ctx, []check.Surface{"fig.png"}); err != nil {
		t.Errorf("re-close errored: %v", err)
	}
	surfaces, _ := d.ListSurfaces(ctx)
	if len(surfaces) != 0 {
		t.Errorf("closed surface reappeared: %v", surfaces)
	}
}
