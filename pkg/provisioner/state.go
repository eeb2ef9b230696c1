package provisioner

// The state model separates deciding what to do with the box from doing it.
// State is read from docker-machine, and NextStep maps a current and desired state
// onto a single Action without touching any tool.

// =============================================================================
// Types
// =============================================================================

// State is the lifecycle state of the box
type State int

const (
	StateAbsent State = iota
	StateStopped
	StateRunning
	StateOther
)

// Action is the single step needed to move the box towards a desired state
type Action int

const (
	ActionNone Action = iota
	ActionProvision
	ActionStart
	ActionStop
	ActionRemove
	ActionMissing
)

// =============================================================================
// Public Methods
// =============================================================================

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	default:
		return "other"
	}
}

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionProvision:
		return "provision"
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	case ActionRemove:
		return "remove"
	case ActionMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// =============================================================================
// Public Functions
// =============================================================================

// ParseState maps docker-machine state text onto a State. Only "Running" and
// "Stopped" are distinguished; saved, paused, starting and error states are StateOther.
func ParseState(status string) State {
	switch status {
	case "Running":
		return StateRunning
	case "Stopped":
		return StateStopped
	default:
		return StateOther
	}
}

// NextStep returns the action that moves a box in the current state towards desired.
// Stopping a box that does not exist yields ActionMissing.
func NextStep(current, desired State) Action {
	switch desired {
	case StateRunning:
		switch current {
		case StateAbsent:
			return ActionProvision
		case StateRunning:
			return ActionNone
		default:
			return ActionStart
		}
	case StateStopped:
		switch current {
		case StateAbsent:
			return ActionMissing
		case StateStopped:
			return ActionNone
		default:
			return ActionStop
		}
	case StateAbsent:
		if current == StateAbsent {
			return ActionNone
		}
		return ActionRemove
	default:
		return ActionNone
	}
}
