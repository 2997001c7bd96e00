package fsm

import (
	"fmt"
	"time"

	"github.com/lixenwraith/super-spinner/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// AddState adds a node to the machine
func (m *Machine[T]) AddState(id StateID, name string) *Node[T] {
	node := &Node[T]{
		ID:          id,
		Name:        name,
		Transitions: make([]Transition[T], 0),
	}
	m.nodes[id] = node
	return node
}

// AddTransition appends a transition to a source node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) error {
	node, ok := m.nodes[sourceID]
	if !ok {
		return fmt.Errorf("transition from unknown state %d", sourceID)
	}
	if _, ok := m.nodes[t.TargetID]; !ok {
		return fmt.Errorf("transition from %q to unknown state %d", node.Name, t.TargetID)
	}
	node.Transitions = append(node.Transitions, t)
	return nil
}

// OnEnter registers an action run when the state is entered
func (m *Machine[T]) OnEnter(id StateID, name string, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnEnter = append(node.OnEnter, Action[T]{Name: name, Func: fn})
	}
}

// OnUpdate registers an action run on every Update while the state is active
func (m *Machine[T]) OnUpdate(id StateID, name string, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnUpdate = append(node.OnUpdate, Action[T]{Name: name, Func: fn})
	}
}

// OnExit registers an action run when the state is left
func (m *Machine[T]) OnExit(id StateID, name string, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnExit = append(node.OnExit, Action[T]{Name: name, Func: fn})
	}
}

// Init enters the initial state, running its OnEnter actions
func (m *Machine[T]) Init(ctx T, initialID StateID) error {
	node, ok := m.nodes[initialID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initialID)
	}

	m.InitialStateID = initialID
	m.activeStateID = initialID
	m.timeInState = 0

	for _, action := range node.OnEnter {
		action.Func(ctx)
	}
	return nil
}

// Update advances the FSM by dt, running OnUpdate actions and tick transitions
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	if m.activeStateID == StateNone {
		return
	}

	m.timeInState += dt

	node := m.nodes[m.activeStateID]
	for _, action := range node.OnUpdate {
		action.Func(ctx)
	}

	m.fire(ctx, event.EventTick)
}

// HandleEvent routes an external event through the active state
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone {
		return false
	}
	return m.fire(ctx, eventType)
}

// fire takes the first transition matching eventType whose guard passes
func (m *Machine[T]) fire(ctx T, eventType event.EventType) bool {
	node := m.nodes[m.activeStateID]
	for _, trans := range node.Transitions {
		if trans.Event != eventType {
			continue
		}
		if trans.Guard == nil || trans.Guard(ctx) {
			m.transition(ctx, trans.TargetID)
			return true
		}
	}
	return false
}

// transition performs the state change: exit current, enter target
// Self-transitions re-run exit and enter actions
func (m *Machine[T]) transition(ctx T, targetID StateID) {
	current := m.nodes[m.activeStateID]
	target := m.nodes[targetID]

	for _, action := range current.OnExit {
		action.Func(ctx)
	}

	m.activeStateID = targetID
	m.timeInState = 0
	m.transitions++

	for _, action := range target.OnEnter {
		action.Func(ctx)
	}
}

// Reset exits the active state and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	if node, ok := m.nodes[m.activeStateID]; ok {
		for _, action := range node.OnExit {
			action.Func(ctx)
		}
	}
	m.activeStateID = StateNone
	return m.Init(ctx, m.InitialStateID)
}

// State returns the active StateID
func (m *Machine[T]) State() StateID {
	return m.activeStateID
}

// StateName returns the active state name
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns time spent in the active state
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// Transitions returns the number of transitions taken since creation
func (m *Machine[T]) Transitions() uint64 {
	return m.transitions
}
