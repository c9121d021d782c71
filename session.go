package dnd

// Phase is the drag state machine's current state.
type Phase int

const (
	PhaseIdle        Phase = iota // No drag session exists
	PhasePending                  // Gesture detected, not yet confirmed as a drag
	PhaseDragging                 // A drag session is live
	PhaseDropPending              // Drop committed, consumer still re-integrating
	PhaseCancelled                // Transient: reverting to the pre-gesture state
)

// String returns the phase name for logs and tests.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseDragging:
		return "dragging"
	case PhaseDropPending:
		return "dropPending"
	case PhaseCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// pendingAttempt is the Pending-phase bookkeeping: a pointer went down on a
// draggable item and the engine is waiting for the drag delay to elapse.
// There is no session yet; a quick swipe past the movement threshold before
// the delay elapses discards the attempt entirely.
type pendingAttempt struct {
	item       ItemID
	container  ContainerID
	startPos   Vec2
	pointer    Vec2
	armedAt    float32 // engine clock when the delay elapses
	armed      bool
}

// session is the complete transient state of one in-progress drag. Exactly
// one may exist engine-wide at a time.
type session struct {
	item        ItemID
	source      ContainerID
	sourceIndex int

	active      ContainerID // "" when the pointer is over no eligible container
	placeholder int         // noIndex when no target

	pointer    Vec2
	startPos   Vec2
	grabOffset Vec2

	phase    Phase
	keyboard bool
	cursor   int // keyboard cursor index, valid when keyboard
}

// Snapshot is the outward-facing view of the drag session, consumed by the
// rendering layer to draw the drag preview and placeholder.
type Snapshot struct {
	Phase       Phase
	Item        ItemID
	Source      ContainerID
	SourceIndex int

	// Active is the container currently under the pointer; empty means "no
	// drop target", which is a valid state, not an error.
	Active ContainerID

	// Placeholder is the resolved drop index within Active, in
	// [0, itemCount] inclusive (itemCount means append at end). noIndex (-1)
	// when there is no target.
	Placeholder int

	Pointer Vec2

	// PreviewOrigin is where the dragged element's top-left should be drawn
	// so the preview tracks the cursor instead of snapping its origin to it.
	PreviewOrigin Vec2
}

func (s *session) snapshot() Snapshot {
	return Snapshot{
		Phase:         s.phase,
		Item:          s.item,
		Source:        s.source,
		SourceIndex:   s.sourceIndex,
		Active:        s.active,
		Placeholder:   s.placeholder,
		Pointer:       s.pointer,
		PreviewOrigin: s.pointer.Sub(s.grabOffset),
	}
}
