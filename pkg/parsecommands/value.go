package parsecommands

import (
	"fmt"
	"strings"
)

// ValueType is the type a flag's value token is coerced to.
type ValueType int

// The supported value types. The zero ValueType is unsupported.
const (
	Boolean ValueType = iota + 1
	String
	Integer
	Double
	Float
	Character
)

var valueTypeNames = map[ValueType]string{
	Boolean:   "boolean",
	String:    "string",
	Integer:   "integer",
	Double:    "double",
	Float:     "float",
	Character: "character",
}

func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unsupported(%d)", int(t))
}

// Supported reports whether t is one of the known value types. Parsing
// does not require this; a flag with an unsupported type still takes a
// value token but never resolves.
func (t ValueType) Supported() bool {
	_, ok := valueTypeNames[t]
	return ok
}

// ParseValueType maps a type name to a ValueType. Names are matched
// case-insensitively and the common short forms (bool, int, char) are
// accepted.
func ParseValueType(name string) (ValueType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "boolean", "bool":
		return Boolean, true
	case "string", "str":
		return String, true
	case "integer", "int":
		return Integer, true
	case "double", "float64":
		return Double, true
	case "float", "float32":
		return Float, true
	case "character", "char", "rune":
		return Character, true
	}
	return 0, false
}

// Value is a resolved flag value. The concrete type is always one of
// BooleanValue, StringValue, IntegerValue, DoubleValue, FloatValue or
// CharacterValue. An unset flag has no Value at all.
type Value interface {
	Type() ValueType
	Interface() any
	isValue()
}

// BooleanValue is set to true by the presence of a boolean flag.
type BooleanValue bool

func (BooleanValue) Type() ValueType  { return Boolean }
func (v BooleanValue) Interface() any { return bool(v) }
func (BooleanValue) isValue()         {}

// StringValue is a value token taken verbatim, after "__" expansion.
type StringValue string

func (StringValue) Type() ValueType  { return String }
func (v StringValue) Interface() any { return string(v) }
func (StringValue) isValue()         {}

// IntegerValue holds a signed decimal that fits in 32 bits.
type IntegerValue int

func (IntegerValue) Type() ValueType  { return Integer }
func (v IntegerValue) Interface() any { return int(v) }
func (IntegerValue) isValue()         {}

// DoubleValue is a 64 bit floating point value.
type DoubleValue float64

func (DoubleValue) Type() ValueType  { return Double }
func (v DoubleValue) Interface() any { return float64(v) }
func (DoubleValue) isValue()         {}

// FloatValue is a 32 bit floating point value.
type FloatValue float32

func (FloatValue) Type() ValueType  { return Float }
func (v FloatValue) Interface() any { return float32(v) }
func (FloatValue) isValue()         {}

// CharacterValue is the first character of a value token. It renders as
// a one character string through Interface so encoders don't print the
// code point.
type CharacterValue rune

func (CharacterValue) Type() ValueType  { return Character }
func (v CharacterValue) Interface() any { return string(rune(v)) }
func (CharacterValue) isValue()         {}
