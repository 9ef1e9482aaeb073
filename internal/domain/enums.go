package domain

// MinutesPerDay is 24 hours * 60 minutes.
const MinutesPerDay = 1440

// RelationToNow places an item relative to the live clock.
type RelationToNow string

const (
	RelationPast    RelationToNow = "past"
	RelationPresent RelationToNow = "present"
	RelationFuture  RelationToNow = "future"
)

// InteractionState is the pointer interaction an item is currently in.
// An item is in exactly one state at a time.
type InteractionState string

const (
	StateIdle     InteractionState = "idle"
	StateDragging InteractionState = "dragging"
	StateResizing InteractionState = "resizing"
)

// ItemColor is styling data attached to an item by colour enrichment.
// Values are hex colours; empty means "use the default".
type ItemColor struct {
	Background string
	Foreground string
}
