package sessionkeeper

// State is the position of a session in its lifecycle.
type State int

const (
	// StateActive means the session is live and no warning is shown.
	StateActive State = iota
	// StateWarningShown means the expiry countdown is visible.
	StateWarningShown
	// StateExpired is terminal: the session ended and a login redirect is pending or done.
	StateExpired
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateWarningShown:
		return "warning_shown"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Reason explains why a session ended. It is sent to the login page as the
// "reason" query parameter.
type Reason string

const (
	// ReasonNone is the reason of a session that has not ended.
	ReasonNone Reason = ""
	// ReasonTimeout marks idle timeout and manual logout.
	ReasonTimeout Reason = "timeout"
	// ReasonExpired marks server-declared invalidation and failed renewals.
	ReasonExpired Reason = "expired"
)
