package interaction

import (
	"errors"
	"sync"

	"github.com/alexanderramin/dayplan/internal/domain"
)

var (
	// ErrBusy is returned when an item already has an interaction or a
	// commit in progress.
	ErrBusy        = errors.New("item has an interaction in progress")
	ErrNotDragging = errors.New("item is not being dragged")
	ErrNotResizing = errors.New("item is not being resized")
	ErrNoCursor    = errors.New("no pointer position available")
)

// interactionState is the per-item state shared by the drag and resize
// controllers. Dragging and resizing are mutually exclusive, and no new
// interaction starts while a commit is in flight.
type interactionState struct {
	mu         sync.Mutex
	state      domain.InteractionState
	committing bool

	// released is set on pointer-up. The tracked offset or height is frozen
	// from then until the commit finishes.
	released bool

	// drag arming: pointer is down on the body but has not moved yet
	armed   bool
	originY float64

	offset    float64
	hasOffset bool
	height    float64
	hasHeight bool
}

func newInteractionState() *interactionState {
	return &interactionState{state: domain.StateIdle}
}

func (s *interactionState) current() domain.InteractionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// beginCommit freezes the state until finish is called.
func (s *interactionState) beginCommit(want domain.InteractionState, notIn error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committing {
		return ErrBusy
	}
	if s.state != want {
		return notIn
	}
	s.committing = true
	return nil
}

// finish returns to Idle and clears tracked values.
func (s *interactionState) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.StateIdle
	s.committing = false
	s.released = false
	s.armed = false
	s.hasOffset = false
	s.hasHeight = false
}

// abort drops an interaction that cannot be committed. It leaves an
// in-flight commit alone.
func (s *interactionState) abort() {
	s.mu.Lock()
	committing := s.committing
	s.mu.Unlock()
	if !committing {
		s.finish()
	}
}

// release freezes an active drag or resize at its last tracked value.
func (s *interactionState) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateDragging || s.state == domain.StateResizing {
		s.released = true
	}
}

// frozen reports whether pointer-up has been seen for the active interaction.
func (s *interactionState) frozen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.released || s.committing
}
