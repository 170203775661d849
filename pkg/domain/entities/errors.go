package entities

import "errors"

// ErrorKind classifies catalog and aggregation failures
type ErrorKind int

const (
	InvalidInput ErrorKind = iota + 1
	InvalidQuantity
	InvalidReference
	UnknownPart
	Overflow
	NotFound
	Conflict
)

// String method for ErrorKind enum
func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case InvalidQuantity:
		return "InvalidQuantity"
	case InvalidReference:
		return "InvalidReference"
	case UnknownPart:
		return "UnknownPart"
	case Overflow:
		return "Overflow"
	case NotFound:
		return "NotFound"
	case Conflict:
		return "Conflict"
	default:
		return "Unknown"
	}
}

// Code returns the snake_case identifier used in API error envelopes
func (k ErrorKind) Code() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case InvalidQuantity:
		return "invalid_quantity"
	case InvalidReference:
		return "invalid_reference"
	case UnknownPart:
		return "unknown_part"
	case Overflow:
		return "overflow"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified domain error
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches any *Error of the same kind, so sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// NewError creates a classified error
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Sentinels for errors.Is checks
var (
	ErrInvalidInput     = &Error{Kind: InvalidInput}
	ErrInvalidQuantity  = &Error{Kind: InvalidQuantity}
	ErrInvalidReference = &Error{Kind: InvalidReference}
	ErrUnknownPart      = &Error{Kind: UnknownPart}
	ErrOverflow         = &Error{Kind: Overflow}
	ErrNotFound         = &Error{Kind: NotFound}
	ErrConflict         = &Error{Kind: Conflict}
)

// KindOf returns the kind of the first *Error in err's chain, or 0
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
