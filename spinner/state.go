package spinner

import "github.com/lixenwraith/super-spinner/fsm"

// State is the orchestrator's flow state
type State fsm.StateID

const (
	StateIdle State = iota + 1
	StateSpinning
	StateShowingResult
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSpinning:
		return "Spinning"
	case StateShowingResult:
		return "ShowingResult"
	default:
		return "None"
	}
}

func (s State) id() fsm.StateID { return fsm.StateID(s) }
