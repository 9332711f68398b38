package check

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonwraymond/snipcheck/workspace"
)

// fakeDisplay implements Display with an in-memory surface list so
// tests can observe the isolation bracket and artifact bookkeeping.
type fakeDisplay struct {
	live    []Surface
	hidden  map[Surface]bool
	exports map[string]Surface // path -> exported surface
	closed  []Surface

	hideCalls [][]Surface
	showCalls [][]Surface

	listErr   error
	exportErr error
	closeErr  error
}

func newFakeDisplay(ambient ...Surface) *fakeDisplay {
	return &fakeDisplay{
		live:    append([]Surface(nil), ambient...),
		hidden:  make(map[Surface]bool),
		exports: make(map[string]Surface),
	}
}

// spawn adds surfaces as if a unit had just created them.
func (d *fakeDisplay) spawn(surfaces ...Surface) {
	d.live = append(d.live, surfaces...)
}

func (d *fakeDisplay) ListSurfaces(_ context.Context) ([]Surface, error) {
	if d.listErr != nil {
		return nil, d.listErr
	}
	var out []Surface
	for _, s := range d.live {
		if !d.hidden[s] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (d *fakeDisplay) Hide(_ context.Context, surfaces []Surface) error {
	d.hideCalls = append(d.hideCalls, surfaces)
	for _, s := range surfaces {
		d.hidden[s] = true
	}
	return nil
}

func (d *fakeDisplay) Show(_ context.Context, surfaces []Surface) error {
	d.showCalls = append(d.showCalls, surfaces)
	for _, s := range surfaces {
		delete(d.hidden, s)
	}
	return nil
}

func (d *fakeDisplay) Export(_ context.Context, surface Surface, path string) error {
	if d.exportErr != nil {
		return d.exportErr
	}
	d.exports[path] = surface
	return nil
}

func (d *fakeDisplay) Close(_ context.Context, surfaces []Surface) error {
	if d.closeErr != nil {
		return d.closeErr
	}
	for _, s := range surfaces {
		d.closed = append(d.closed, s)
		for i, l := range d.live {
			if l == s {
				d.live = append(d.live[:i], d.live[i+1:]...)
				break
			}
		}
	}
	return nil
}

// scriptedEngine implements Engine from per-unit scripts: canned output,
// a fault detail, and surfaces to spawn on the shared fakeDisplay.
type scriptedEngine struct {
	display *fakeDisplay

	mu      sync.Mutex
	calls   []string
	outputs map[string]string
	faults  map[string]string   // unit name -> fault detail
	spawns  map[string][]Surface

	// block makes Run wait for ctx cancellation, simulating a unit
	// that never returns.
	block bool
}

func newScriptedEngine(display *fakeDisplay) *scriptedEngine {
	return &scriptedEngine{
		display: display,
		outputs: make(map[string]string),
		faults:  make(map[string]string),
		spawns:  make(map[string][]Surface),
	}
}

func (e *scriptedEngine) Run(ctx context.Context, unit workspace.Unit) (string, error) {
	e.mu.Lock()
	e.calls = append(e.calls, unit.Name)
	e.mu.Unlock()

	if e.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	e.display.spawn(e.spawns[unit.Name]...)
	if detail, ok := e.faults[unit.Name]; ok {
		return "", &FaultError{Unit: unit.Name, Detail: detail}
	}
	return e.outputs[unit.Name], nil
}

// testUnits fabricates n ordered units the way a session would.
func testUnits(n int) []workspace.Unit {
	units := make([]workspace.Unit, 0, n)
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("Test%d_20260831T120000-ab12cd34", i)
		units = append(units, workspace.Unit{
			Index:  i,
			Name:   name,
			Source: fmt.Sprintf("x = %d", i),
			Path:   "/tmp/" + name + ".py",
		})
	}
	return units
}
