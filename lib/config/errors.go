package config

import (
	"errors"
	"fmt"

	"github.com/Dawn-MC/ServerSync/lib/mcconfig"
)

var (
	// ErrUnknownEntry is returned by Get and the Set methods for names the
	// role's schema does not define.
	ErrUnknownEntry = errors.New("unknown config entry")
	// ErrNotLoaded is returned by Flush and Set when the file on disk could
	// not be parsed. The facade serves defaults but will not overwrite it.
	ErrNotLoaded = errors.New("config file not loaded")
	// ErrPortOutOfRange rejects SERVER_PORT values outside 1..49151.
	ErrPortOutOfRange = errors.New("port out of range")
	// ErrInvalidText rejects strings and list items that cannot be stored on
	// a single line, and list items the list syntax would misread.
	ErrInvalidText = errors.New("value cannot be stored")
	// ErrWatchUnsupported is returned by Watch on non-OS filesystems.
	ErrWatchUnsupported = errors.New("watch requires the OS filesystem")
)

// CoercionError reports an entry whose value does not fit its schema field.
type CoercionError struct {
	Entry string
	Want  mcconfig.Type
	Value mcconfig.Value
	Err   error
}

func (e *CoercionError) Error() string {
	got := "<nil>"
	if e.Value != nil {
		got = e.Value.String()
	}
	return fmt.Sprintf("%s: cannot use %q as %s: %v", e.Entry, got, e.Want, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }
