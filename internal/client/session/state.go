package session

import "github.com/openticket/openticket/internal/client/models"

// State is the UI branch the gate currently mounts.
type State int

const (
	StateLoading State = iota
	StateSetupRequired
	StateLoginRequired
	StateAuthenticated
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSetupRequired:
		return "setup_required"
	case StateLoginRequired:
		return "login_required"
	case StateAuthenticated:
		return "authenticated"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Outcome is the progress of the gate's single status fetch.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

// Resolve maps the fetch outcome and the cached status to a state. It has
// no side effects; status is ignored unless the fetch succeeded.
func Resolve(outcome Outcome, status *models.Status) State {
	switch outcome {
	case OutcomePending:
		return StateLoading
	case OutcomeFailed:
		return StateError
	}
	if status == nil {
		return StateError
	}
	switch {
	case !status.SetupComplete:
		return StateSetupRequired
	case status.User == nil:
		return StateLoginRequired
	default:
		return StateAuthenticated
	}
}
