package sessionkeeper

import "errors"

var (
	// ErrInvalidConfig is returned when the configuration violates a timing invariant
	// or an endpoint URL cannot be used.
	ErrInvalidConfig = errors.New("invalid session keeper configuration")
	// ErrAlreadyStarted is returned by Start on a running manager.
	ErrAlreadyStarted = errors.New("session keeper already started")
	// ErrClosed is returned by Start after Close.
	ErrClosed = errors.New("session keeper closed")
	// ErrSessionExpired is returned when renewing a session that has already ended.
	ErrSessionExpired = errors.New("session has expired")
	// ErrNetwork wraps transport failures of extend and keep-alive calls.
	ErrNetwork = errors.New("session renewal request failed")
	// ErrRejected is returned when the server answers but does not renew the session:
	// non-2xx status, success=false or an unreadable payload.
	ErrRejected = errors.New("session renewal rejected")
)
