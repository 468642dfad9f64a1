package analytics

import (
	"errors"
	"fmt"
)

// Kind classifies analytics failures.
type Kind int

const (
	KindUserInput Kind = iota + 1
	KindTransport
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindUserInput:
		return "user_input"
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed_response"
	}
	return "unknown"
}

// Error wraps an operation, a kind, a short reason, and the underlying error.
type Error struct {
	Kind       Kind
	Op         string
	Msg        string
	StatusCode int // set for non-2xx responses
	Err        error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrNoFile is returned when a submit happens with nothing staged.
var ErrNoFile = &Error{Kind: KindUserInput, Op: "submit", Msg: "no CSV file selected"}

func transportError(op, msg string, status int, err error) error {
	return &Error{Kind: KindTransport, Op: op, Msg: msg, StatusCode: status, Err: err}
}

func malformedError(msg string, err error) error {
	return &Error{Kind: KindMalformed, Op: "decode", Msg: msg, Err: err}
}

// KindOf reports the kind of err, or 0 when err is not an analytics error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err is an analytics error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
