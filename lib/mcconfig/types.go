package mcconfig

import "fmt"

// Type is the declared type of an entry.
type Type int

const (
	TypeBool Type = iota + 1
	TypeInt
	TypeString
	// TypeStringList is written with the S tag and the list syntax.
	TypeStringList
)

// Tag returns the single character written before the colon on disk.
func (t Type) Tag() byte {
	switch t {
	case TypeBool:
		return 'B'
	case TypeInt:
		return 'I'
	case TypeString, TypeStringList:
		return 'S'
	default:
		return '?'
	}
}

// IsList reports whether entries of this type use the list syntax.
func (t Type) IsList() bool {
	return t == TypeStringList
}

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "Bool"
	case TypeInt:
		return "Int"
	case TypeString:
		return "String"
	case TypeStringList:
		return "StringList"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// typeForTag maps an on-disk tag to a Type. The list flag selects between
// TypeString and TypeStringList for the S tag; B and I lists are not valid.
func typeForTag(tag byte, list bool) (Type, bool) {
	switch tag {
	case 'B':
		return TypeBool, !list
	case 'I':
		return TypeInt, !list
	case 'S':
		if list {
			return TypeStringList, true
		}
		return TypeString, true
	default:
		return 0, false
	}
}

// knownTag reports whether tag is one of B, I or S.
func knownTag(tag byte) bool {
	return tag == 'B' || tag == 'I' || tag == 'S'
}
