// Package brick_simulator provides an in-memory stand-in for a V5 brick.
// It implements both the device-query and operator-feedback interfaces so
// the supervisor and the checks can run without hardware.
package brick_simulator

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/Adam-Salem-Codes/Safety-PROS/pkg/v5"
)

// PrintCall records one Print invocation on the simulated controller.
type PrintCall struct {
	Row, Col int
	Line     string
}

type flip struct {
	after int // remaining queries before the flip takes effect
	kind  v5.DeviceKind
}

// Brick simulates the brick's device bus and the handheld controller.
// Empty and out-of-range ports read as KindNone, like the real bus.
type Brick struct {
	mu      sync.Mutex
	ports   map[v5.Port]v5.DeviceKind
	flips   map[v5.Port]*flip
	queries int

	rumbles []string
	prints  []PrintCall

	logger log.FieldLogger
}

func New() *Brick {
	return &Brick{
		ports:  make(map[v5.Port]v5.DeviceKind),
		flips:  make(map[v5.Port]*flip),
		logger: log.WithField("component", "brick_simulator"),
	}
}

// Plug attaches a device of the given kind to a port.
func (b *Brick) Plug(port v5.Port, kind v5.DeviceKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ports[port] = kind
}

// Unplug removes whatever is on the port.
func (b *Brick) Unplug(port v5.Port) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.ports, port)
}

// FlipAfter schedules the port to start reading as kind once it has been
// queried a further n times. Used to script unplug events deterministically.
func (b *Brick) FlipAfter(port v5.Port, n int, kind v5.DeviceKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flips[port] = &flip{after: n, kind: kind}
}

// PluggedKind implements v5.Host.
func (b *Brick) PluggedKind(port v5.Port) v5.DeviceKind {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.queries++
	if f, ok := b.flips[port]; ok {
		if f.after <= 0 {
			if f.kind == v5.KindNone {
				delete(b.ports, port)
			} else {
				b.ports[port] = f.kind
			}
			delete(b.flips, port)
		} else {
			f.after--
		}
	}

	kind, ok := b.ports[port]
	if !ok {
		return v5.KindNone
	}
	return kind
}

// Queries returns the total number of device-bus queries observed.
func (b *Brick) Queries() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queries
}

// Rumble implements v5.Feedback by recording the pattern.
func (b *Brick) Rumble(pattern string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger.Debugf("rumble %q", pattern)
	b.rumbles = append(b.rumbles, pattern)
}

// Print implements v5.Feedback by recording the call.
func (b *Brick) Print(row, col int, line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger.Debugf("print (%d,%d) %q", row, col, line)
	b.prints = append(b.prints, PrintCall{Row: row, Col: col, Line: line})
}

// Rumbles returns a copy of the recorded rumble patterns.
func (b *Brick) Rumbles() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.rumbles))
	copy(out, b.rumbles)
	return out
}

// Prints returns a copy of the recorded print calls.
func (b *Brick) Prints() []PrintCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]PrintCall, len(b.prints))
	copy(out, b.prints)
	return out
}
