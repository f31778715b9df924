// Package gate turns a string's raw pointer and touch events into a two-state
// machine with a single edge-triggered side effect.
package gate

// State is the engagement state of a string.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Event is an interaction event scoped to a string's hit region.
type Event int

const (
	PointerEnter Event = iota
	PointerLeave
	TouchStart
	TouchEnd
)

func (e Event) String() string {
	switch e {
	case PointerEnter:
		return "pointer-enter"
	case PointerLeave:
		return "pointer-leave"
	case TouchStart:
		return "touch-start"
	case TouchEnd:
		return "touch-end"
	default:
		return "unknown"
	}
}

// engages reports whether e drives the gate toward Active.
func (e Event) engages() bool {
	return e == PointerEnter || e == TouchStart
}

// Gate is the per-string interaction state machine. It is not safe for
// concurrent use; the frame loop owns it.
type Gate struct {
	state      State
	onActivate func()
}

// New returns an Idle gate. onActivate runs once per Idle→Active edge and
// may be nil.
func New(onActivate func()) *Gate {
	return &Gate{onActivate: onActivate}
}

// Handle applies ev and reports whether it produced an activation edge.
func (g *Gate) Handle(ev Event) bool {
	if !ev.engages() {
		g.state = Idle
		return false
	}
	if g.state == Active {
		return false
	}
	g.state = Active
	if g.onActivate != nil {
		g.onActivate()
	}
	return true
}

// Reset forces the gate Idle without side effects.
func (g *Gate) Reset() { g.state = Idle }

func (g *Gate) State() State { return g.state }

func (g *Gate) Active() bool { return g.state == Active }
