package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
)

// ErrorKind classifies failures surfaced from backend calls.
type ErrorKind string

const (
	// KindNetwork: the request never reached the backend.
	KindNetwork ErrorKind = "network"
	// KindAuth: 401/403, invalid credentials or expired token.
	KindAuth ErrorKind = "auth"
	// KindValidation: 400, bad input shown inline by the view.
	KindValidation ErrorKind = "validation"
	// KindConflict: e.g. checkout stock conflict; state preserved for retry.
	KindConflict ErrorKind = "conflict"
	// KindUnknown: anything else.
	KindUnknown ErrorKind = "unknown"
)

// Error is a backend failure carrying the user-visible message. Message is
// taken verbatim from the backend's JSON body when present.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds an Error of the given kind.
func NewError(kind ErrorKind, status int, message string) *Error {
	return &Error{Kind: kind, Message: message, Status: status}
}

func kindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsNetwork reports whether err is a connectivity failure.
func IsNetwork(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindNetwork
}

// IsAuth reports whether err means the session is no longer valid.
func IsAuth(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindAuth
}

// IsValidation reports whether err is a rejected-input failure.
func IsValidation(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindValidation
}

// IsConflict reports whether err is a conflict such as a stock shortage
// detected by the backend at checkout time.
func IsConflict(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindConflict
}
