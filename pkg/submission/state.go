package submission

// State is the lifecycle position of a form submission.
type State int

const (
	Idle State = iota
	Submitting
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// CanTransition reports whether moving from s to next is legal.
func (s State) CanTransition(next State) bool {
	switch s {
	case Idle:
		return next == Submitting
	case Submitting:
		return next == Success || next == Error
	case Success, Error:
		return next == Idle || next == Submitting
	}
	return false
}
