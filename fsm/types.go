package fsm

import (
	"time"

	"github.com/lixenwraith/super-spinner/event"
)

// StateID is a unique identifier for a state node
type StateID int

const StateNone StateID = 0

// Machine is a generic finite state machine runtime
// T is the context type passed to actions and guards
type Machine[T any] struct {
	// Graph data, immutable after Init
	nodes map[StateID]*Node[T]

	// InitialStateID is stored during Init for Reset
	InitialStateID StateID

	// Runtime state
	activeStateID StateID
	timeInState   time.Duration
	transitions   uint64
}

// Node represents a state
type Node[T any] struct {
	ID   StateID
	Name string

	// Lifecycle actions
	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Transitions in evaluation priority order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // event.EventTick = evaluated on Update
	Guard    GuardFunc[T]    // nil = always true
}

// Action represents a side effect
type Action[T any] struct {
	Name string
	Func ActionFunc[T]
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
