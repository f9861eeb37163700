package state

// Candidate is anything the stepper can move the active item onto.
type Candidate interface {
	EventKey() string
	Disabled() bool
}

// Direction is the keyboard stepping direction.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// StepResult distinguishes "no candidate at all" from "leave the active item
// where it is".
type StepResult int

const (
	// StepNoCandidate means there is no enabled item to move to.
	StepNoCandidate StepResult = iota
	// StepHold means the caller must not move the active item.
	StepHold
	// StepMoved means the returned handle is the new active item.
	StepMoved
)

func (r StepResult) String() string {
	switch r {
	case StepHold:
		return "hold"
	case StepMoved:
		return "moved"
	default:
		return "none"
	}
}

// Step finds the item to activate when moving from currentKey in direction.
//
// The scan is circular and skips disabled handles. Without defaultActiveFirst
// it does not wrap past the end when every handle after the active one is
// disabled (or the active one is last); that case yields StepHold.
func Step[H Candidate](direction Direction, handles []H, currentKey string, defaultActiveFirst bool) (H, StepResult) {
	var zero H
	n := len(handles)
	if n == 0 {
		return zero, StepNoCandidate
	}
	ordered := handles
	if direction < 0 {
		ordered = make([]H, n)
		for i, h := range handles {
			ordered[n-1-i] = h
		}
	}

	active := -1
	for i, h := range ordered {
		if h.EventKey() == currentKey {
			active = i
			break
		}
	}

	if !defaultActiveFirst && active != -1 && allDisabled(ordered[active+1:]) {
		return zero, StepHold
	}

	start := (active + 1) % n
	i := start
	for {
		if h := ordered[i]; !h.Disabled() {
			return h, StepMoved
		}
		i = (i + 1) % n
		if i == start {
			return zero, StepNoCandidate
		}
	}
}

// allDisabled is true for an empty slice.
func allDisabled[H Candidate](handles []H) bool {
	for _, h := range handles {
		if !h.Disabled() {
			return false
		}
	}
	return true
}
