package mcconfig

import (
	"errors"
	"strconv"
	"strings"

	"github.com/samber/oops"
)

var (
	// ErrTypeMismatch is returned by the As* accessors when a value holds a
	// different variant than requested.
	ErrTypeMismatch = errors.New("value type mismatch")
	// ErrInvalidBool is carried by InvalidValue for B entries that are not
	// true or false.
	ErrInvalidBool = errors.New("not a boolean")
	// ErrInvalidInt is carried by InvalidValue for I entries that are not a
	// base 10 integer.
	ErrInvalidInt = errors.New("not a base 10 integer")
)

// Value is the typed payload of an Entry. It is one of BoolValue, IntValue,
// StringValue, ListValue or InvalidValue.
type Value interface {
	// Type returns the variant's declared type.
	Type() Type
	// String returns a human readable rendering of the value.
	String() string
	isValue()
}

type BoolValue bool

type IntValue int64

type StringValue string

// ListValue is an ordered list of strings. A nil ListValue and an empty one
// are equal.
type ListValue []string

// InvalidValue keeps the literal text of a scalar entry that could not be
// coerced to its tag, so it can be written back unchanged.
type InvalidValue struct {
	Tag Type
	Raw string
	Err error
}

func (BoolValue) Type() Type { return TypeBool }
func (IntValue) Type() Type { return TypeInt }
func (StringValue) Type() Type { return TypeString }
func (ListValue) Type() Type { return TypeStringList }
func (v InvalidValue) Type() Type { return v.Tag }

func (v BoolValue) String() string { return strconv.FormatBool(bool(v)) }
func (v IntValue) String() string { return strconv.FormatInt(int64(v), 10) }
func (v StringValue) String() string { return string(v) }
func (v ListValue) String() string { return "[" + strings.Join(v, ", ") + "]" }
func (v InvalidValue) String() string { return v.Raw }

func (BoolValue) isValue() {}
func (IntValue) isValue() {}
func (StringValue) isValue() {}
func (ListValue) isValue() {}
func (InvalidValue) isValue() {}

// ParseScalar converts the text after `=` into a value of type t. Text that
// does not fit the type yields an InvalidValue instead of an error.
func ParseScalar(t Type, raw string) Value {
	raw = strings.TrimSpace(raw)
	switch t {
	case TypeBool:
		switch {
		case strings.EqualFold(raw, "true"):
			return BoolValue(true)
		case strings.EqualFold(raw, "false"):
			return BoolValue(false)
		}
		return InvalidValue{Tag: t, Raw: raw, Err: oops.Wrapf(ErrInvalidBool, "%q", raw)}
	case TypeInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return InvalidValue{Tag: t, Raw: raw, Err: oops.Wrapf(ErrInvalidInt, "%q", raw)}
		}
		return IntValue(n)
	case TypeString:
		return StringValue(raw)
	default:
		return InvalidValue{Tag: t, Raw: raw, Err: oops.Wrapf(ErrTypeMismatch, "%s is not a scalar type", t)}
	}
}

// AsBool returns the boolean held by v.
func AsBool(v Value) (bool, error) {
	switch b := v.(type) {
	case BoolValue:
		return bool(b), nil
	case InvalidValue:
		return false, b.Err
	}
	return false, mismatch(TypeBool, v)
}

// AsInt returns the integer held by v.
func AsInt(v Value) (int64, error) {
	switch n := v.(type) {
	case IntValue:
		return int64(n), nil
	case InvalidValue:
		return 0, n.Err
	}
	return 0, mismatch(TypeInt, v)
}

// AsString returns the string held by v.
func AsString(v Value) (string, error) {
	switch s := v.(type) {
	case StringValue:
		return string(s), nil
	case InvalidValue:
		return "", s.Err
	}
	return "", mismatch(TypeString, v)
}

// AsStringList returns a copy of the list held by v.
func AsStringList(v Value) ([]string, error) {
	if l, ok := v.(ListValue); ok {
		return append([]string{}, l...), nil
	}
	return nil, mismatch(TypeStringList, v)
}

func mismatch(want Type, got Value) error {
	if got == nil {
		return oops.Wrapf(ErrTypeMismatch, "want %s, got no value", want)
	}
	return oops.Wrapf(ErrTypeMismatch, "want %s, got %s", want, got.Type())
}

// Native unwraps v into a plain Go value (bool, int64, string or []string).
// InvalidValue unwraps to its raw text.
func Native(v Value) any {
	switch x := v.(type) {
	case BoolValue:
		return bool(x)
	case IntValue:
		return int64(x)
	case StringValue:
		return string(x)
	case ListValue:
		return append([]string{}, x...)
	case InvalidValue:
		return x.Raw
	}
	return nil
}

// CloneValue returns a copy of v that shares no memory with it.
func CloneValue(v Value) Value {
	if l, ok := v.(ListValue); ok {
		return append(ListValue{}, l...)
	}
	return v
}

// ValuesEqual compares two values by variant and content. Invalid values are
// equal when tag and raw text match.
func ValuesEqual(a, b Value) bool {
	switch x := a.(type) {
	case ListValue:
		y, ok := b.(ListValue)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case InvalidValue:
		y, ok := b.(InvalidValue)
		return ok && x.Tag == y.Tag && x.Raw == y.Raw
	case nil:
		return b == nil
	default:
		return a == b
	}
}
