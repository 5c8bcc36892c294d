package lifecycle

import "errors"

// Kind classifies an engine error so callers can render a specific message
// or map it to a transport status code.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindPermission     Kind = "permission"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindIncompleteData Kind = "incomplete_data"
	KindInternal       Kind = "internal"
)

// Error is the engine's typed error: a kind, a human-readable message, and
// an optional list of offending fields or blockers.
type Error struct {
	Kind   Kind     `json:"kind"`
	Msg    string   `json:"message"`
	Fields []string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	return e.Msg
}

// KindOf extracts the Kind from an error chain, defaulting to KindInternal
// for wrapped storage errors and the like.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func validationErr(msg string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Msg: msg, Fields: fields}
}

func permissionErr(msg string) *Error {
	return &Error{Kind: KindPermission, Msg: msg}
}

func notFoundErr(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func conflictErr(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

func incompleteErr(msg string, fields ...string) *Error {
	return &Error{Kind: KindIncompleteData, Msg: msg, Fields: fields}
}
