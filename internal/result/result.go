// Package result defines the closed outcome enumeration shared by every
// public entry point in the interpreter core. Callers compare against the
// exported Code constants with errors.Is; internal code builds *Error via
// New, or Newf when a human-readable detail string is available.
package result

import "fmt"

// Code is a tagged outcome. The zero value is Ok.
type Code int

const (
	Ok Code = iota
	PosixAPIError
	NoMemory
	NotFound
	AlreadyExists
	NotOperational
	InvalidArgs
	NotOwner
	NotStarted
	Timedout
	IterationHalted
	OutOfRange
	NotANumber
	AlreadyHalted
	InvalidObject
	InvalidStateTransition
	Busy
	Stopped
	Unsupported
	QuoteNotClosed
	NotAllowed
	TooManyObjects
	Eof
	Interrupted
	AnyFailures
)

var names = map[Code]string{
	Ok:                     "Ok",
	PosixAPIError:          "PosixApiError",
	NoMemory:               "NoMemory",
	NotFound:               "NotFound",
	AlreadyExists:          "AlreadyExists",
	NotOperational:         "NotOperational",
	InvalidArgs:            "InvalidArgs",
	NotOwner:               "NotOwner",
	NotStarted:             "NotStarted",
	Timedout:               "Timedout",
	IterationHalted:        "IterationHalted",
	OutOfRange:             "OutOfRange",
	NotANumber:             "NotANumber",
	AlreadyHalted:          "AlreadyHalted",
	InvalidObject:          "InvalidObject",
	InvalidStateTransition: "InvalidStateTransition",
	Busy:                   "Busy",
	Stopped:                "Stopped",
	Unsupported:            "Unsupported",
	QuoteNotClosed:         "QuoteNotClosed",
	NotAllowed:             "NotAllowed",
	TooManyObjects:         "TooManyObjects",
	Eof:                    "Eof",
	Interrupted:            "Interrupted",
	AnyFailures:            "AnyFailures",
}

func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error wraps a Code with an optional detail string, e.g. the first error
// string captured during a failed commit.
type Error struct {
	Code   Code
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Is lets errors.Is(err, SomeCode) work directly against a *Error, by
// allowing comparison against a bare Code value wrapped as an error via New.
func (e *Error) Is(target error) bool {
	var other *Error
	switch t := target.(type) {
	case *Error:
		other = t
	default:
		return false
	}
	return e.Code == other.Code
}

// New builds a detail-less *Error for the given code. Ok should not be
// wrapped; callers should return a nil error instead.
func New(c Code) *Error { return &Error{Code: c} }

// Newf builds a *Error with a formatted detail string.
func Newf(c Code, format string, args ...any) *Error {
	return &Error{Code: c, Detail: fmt.Sprintf(format, args...)}
}

// Of extracts the Code from an error produced by this package, returning
// AnyFailures for any other non-nil error and Ok for nil.
func Of(err error) Code {
	if err == nil {
		return Ok
	}
	var e *Error
	if as, ok := err.(*Error); ok {
		e = as
		return e.Code
	}
	return AnyFailures
}
