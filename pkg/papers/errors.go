package papers

import (
	"errors"
	"fmt"
)

// Sentinel errors for paper lookups.
var (
	ErrNotFound          = errors.New("paper not found")
	ErrInvalidJSON       = errors.New("paper data is not valid JSON")
	ErrInvalidIdentifier = errors.New("invalid paper identifier")
	ErrIO                = errors.New("error reading paper data")
)

// Kind classifies a lookup failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidJSON
	KindInvalidIdentifier
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidJSON:
		return "invalid_json"
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is returned by Store operations.
type Error struct {
	// Op is the store operation that failed, e.g. "Get".
	Op string

	// ID is the identifier the caller asked for.
	ID string

	// Err is one of the sentinel errors of this package.
	Err error

	// Cause is the underlying error, if any.
	Cause error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %q: %v", e.Op, e.ID, e.Err)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is and
// errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// Kind returns the failure kind of e.
func (e *Error) Kind() Kind {
	return kindOfSentinel(e.Err)
}

// KindOf returns the failure kind of err, or KindUnknown if err did not come
// from this package.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind()
	}
	return kindOfSentinel(err)
}

func kindOfSentinel(err error) Kind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidJSON):
		return KindInvalidJSON
	case errors.Is(err, ErrInvalidIdentifier):
		return KindInvalidIdentifier
	case errors.Is(err, ErrIO):
		return KindIO
	default:
		return KindUnknown
	}
}

func newError(op, id string, sentinel, cause error) *Error {
	return &Error{Op: op, ID: id, Err: sentinel, Cause: cause}
}
