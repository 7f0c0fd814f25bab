package mcconfig

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	KindUnterminatedCategory ErrorKind = iota + 1
	KindUnterminatedList
	KindMalformedEntry
	KindUnknownType
	KindDuplicateEntry
)

var (
	ErrUnterminatedCategory = errors.New("unterminated category")
	ErrUnterminatedList     = errors.New("unterminated list")
	ErrMalformedEntry       = errors.New("malformed entry")
	ErrUnknownType          = errors.New("unknown type tag")
	ErrDuplicateEntry       = errors.New("duplicate entry")
)

var kindErrors = map[ErrorKind]error{
	KindUnterminatedCategory: ErrUnterminatedCategory,
	KindUnterminatedList:     ErrUnterminatedList,
	KindMalformedEntry:       ErrMalformedEntry,
	KindUnknownType:          ErrUnknownType,
	KindDuplicateEntry:       ErrDuplicateEntry,
}

func (k ErrorKind) String() string {
	switch k {
	case KindUnterminatedCategory:
		return "UnterminatedCategory"
	case KindUnterminatedList:
		return "UnterminatedList"
	case KindMalformedEntry:
		return "MalformedEntry"
	case KindUnknownType:
		return "UnknownType"
	case KindDuplicateEntry:
		return "DuplicateEntry"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Fatal reports whether errors of this kind abort parsing. The other kinds
// only skip the offending entry.
func (k ErrorKind) Fatal() bool {
	return k == KindUnterminatedCategory || k == KindUnterminatedList
}

// ParseError describes a problem on one line of the input. For the
// unterminated kinds Line is the line that opened the block.
type ParseError struct {
	Kind   ErrorKind
	Line   int
	Text   string
	Detail string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("line %d: %s", e.Line, kindErrors[e.Kind])
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Text != "" {
		msg += fmt.Sprintf(" (%q)", e.Text)
	}
	return msg
}

// Unwrap returns the sentinel for the error kind, so callers can use
// errors.Is(err, ErrUnterminatedList) and friends.
func (e *ParseError) Unwrap() error {
	return kindErrors[e.Kind]
}
