package parsecommands

import "strings"

// Declaration describes one recognized flag. It is immutable once
// constructed; the value a parse resolves for it lives in Results.
type Declaration struct {
	name      string
	valueType ValueType
	required  bool
}

// NewDeclaration returns a declaration for the flag token name (for
// example "-x"). valueType is not validated.
func NewDeclaration(name string, valueType ValueType, required bool) Declaration {
	return Declaration{
		name:      name,
		valueType: valueType,
		required:  required,
	}
}

func (d Declaration) Name() string { return d.name }

func (d Declaration) Type() ValueType { return d.valueType }

func (d Declaration) Required() bool { return d.required }

// Equal reports whether both declarations introduce the same flag. Type
// and required are ignored; the name is the identity.
func (d Declaration) Equal(other Declaration) bool {
	return d.name == other.name
}

// Compare orders declarations by name.
func (d Declaration) Compare(other Declaration) int {
	return strings.Compare(d.name, other.name)
}

func (d Declaration) String() string {
	if d.required {
		return d.name + " (" + d.valueType.String() + ", required)"
	}
	return d.name + " (" + d.valueType.String() + ")"
}
