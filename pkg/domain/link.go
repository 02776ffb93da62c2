package domain

// TransitionState is the lifecycle phase a link is in while the chain is being edited.
type TransitionState string

const (
	// TransitionIdle means the link is settled.
	TransitionIdle TransitionState = "idle"
	// TransitionEntering means the link was just appended and plays an insertion transition.
	TransitionEntering TransitionState = "entering"
	// TransitionExiting means the link is scheduled for removal and plays a removal transition.
	TransitionExiting TransitionState = "exiting"
	// TransitionResetting means a filled link is reverting to empty in place.
	TransitionResetting TransitionState = "resetting"
)

// Link is one position in a chain.
type Link struct {
	// Unit is the selected unit, or nil for an empty link.
	Unit *Unit `json:"unit,omitempty"`

	State TransitionState `json:"state"`

	// Epoch identifies the transition currently playing on this link.
	// Completion signals carrying a different epoch are stale.
	Epoch uint64 `json:"epoch,omitempty"`
}

// Filled reports whether the link holds a unit.
func (l Link) Filled() bool {
	return l.Unit != nil
}

// Settled reports whether the link has no transition in flight.
func (l Link) Settled() bool {
	return l.State == TransitionIdle || l.State == ""
}

// Ticket identifies a single transition so its completion can be reported back.
type Ticket struct {
	Position int    `json:"position"`
	Epoch    uint64 `json:"epoch"`
}

// Units flattens the filled links of a chain, in order.
func Units(links []Link) []Unit {
	units := make([]Unit, 0, len(links))
	for _, l := range links {
		if l.Unit != nil {
			units = append(units, *l.Unit)
		}
	}
	return units
}
