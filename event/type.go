package event

import "time"

// EventType represents the type of spinner event
type EventType int

const (
	// EventTick is reserved for automatic (tick-evaluated) FSM transitions
	EventTick EventType = iota

	// === Input Event ===

	// EventTap signals the player tapped the spinner or the win overlay
	// Trigger: view input reader | Consumer: Orchestrator | Payload: nil
	EventTap

	// EventQuit requests loop shutdown
	// Trigger: view input reader (q, Esc, Ctrl-C) | Consumer: engine.Loop | Payload: nil
	EventQuit

	// EventMuteToggle flips audio mute state
	// Trigger: view input reader (m) | Consumer: cmd/spinner loop handler (audio.Manager.ToggleMute, view.View.SetMuted) | Payload: nil
	EventMuteToggle

	// EventResize signals terminal dimensions changed
	// Trigger: view input reader | Consumer: view.View | Payload: nil
	EventResize

	// === Network Event ===

	// EventSpinResolved delivers a server-chosen spin result
	// Trigger: spin fetch goroutine | Consumer: Orchestrator | Payload: *SpinResultPayload
	EventSpinResolved

	// EventSpinFailed delivers a spin fetch failure after retries
	// Trigger: spin fetch goroutine | Consumer: Orchestrator | Payload: *SpinResultPayload
	EventSpinFailed

	// EventValuesLoaded delivers the prize value set
	// Trigger: value fetch goroutine | Consumer: Bootstrap | Payload: *ValuesPayload
	EventValuesLoaded

	// EventValuesFailed delivers a value set fetch failure after retries
	// Trigger: value fetch goroutine | Consumer: Bootstrap | Payload: *ValuesPayload
	EventValuesFailed
)

// GameEvent is a single queued event
type GameEvent struct {
	Type      EventType
	Payload   any
	Timestamp time.Time
}
