package parsecommands

// Results is the outcome of a parse: the value resolved for each declared
// flag plus the positional commands in input order.
type Results struct {
	order    []string
	flags    map[string]*flagEntry
	commands []string
	warnings []error
}

type flagEntry struct {
	decl  Declaration
	value Value
}

func newResults(decls []Declaration) *Results {
	r := &Results{
		flags: make(map[string]*flagEntry, len(decls)),
	}
	for _, d := range decls {
		// a later declaration with the same name replaces the earlier one
		if _, ok := r.flags[d.name]; !ok {
			r.order = append(r.order, d.name)
		}
		r.flags[d.name] = &flagEntry{decl: d}
	}
	return r
}

func (r *Results) isFlag(token string) bool {
	_, ok := r.flags[token]
	return ok
}

func (r *Results) set(name string, v Value) {
	r.flags[name].value = v
}

func (r *Results) addCommand(command string) {
	r.commands = append(r.commands, command)
}

func (r *Results) value(name string, want ValueType) (Value, bool) {
	entry, ok := r.flags[name]
	if !ok || entry.decl.valueType != want || entry.value == nil {
		return nil, false
	}
	return entry.value, true
}

// GetBoolean returns true only if name is a declared Boolean flag that
// appeared in the arguments. Absent, undeclared and mistyped flags are
// all false.
func (r *Results) GetBoolean(name string) bool {
	v, ok := r.value(name, Boolean)
	if !ok {
		return false
	}
	b, _ := v.(BooleanValue)
	return bool(b)
}

func (r *Results) GetString(name string) (string, bool) {
	v, ok := r.value(name, String)
	if !ok {
		return "", false
	}
	s, ok := v.(StringValue)
	return string(s), ok
}

func (r *Results) GetInteger(name string) (int, bool) {
	v, ok := r.value(name, Integer)
	if !ok {
		return 0, false
	}
	i, ok := v.(IntegerValue)
	return int(i), ok
}

func (r *Results) GetDouble(name string) (float64, bool) {
	v, ok := r.value(name, Double)
	if !ok {
		return 0, false
	}
	d, ok := v.(DoubleValue)
	return float64(d), ok
}

func (r *Results) GetFloat(name string) (float32, bool) {
	v, ok := r.value(name, Float)
	if !ok {
		return 0, false
	}
	f, ok := v.(FloatValue)
	return float32(f), ok
}

func (r *Results) GetCharacter(name string) (rune, bool) {
	v, ok := r.value(name, Character)
	if !ok {
		return 0, false
	}
	c, ok := v.(CharacterValue)
	return rune(c), ok
}

// Value returns the resolved value for name regardless of its type. The
// second return is false if name is undeclared or unset.
func (r *Results) Value(name string) (Value, bool) {
	entry, ok := r.flags[name]
	if !ok || entry.value == nil {
		return nil, false
	}
	return entry.value, true
}

// Commands returns the positional arguments in the order they appeared.
func (r *Results) Commands() []string {
	commands := make([]string, len(r.commands))
	copy(commands, r.commands)
	return commands
}

// Declarations returns the declarations the parse ran against, in the
// order they were given, with duplicates collapsed.
func (r *Results) Declarations() []Declaration {
	decls := make([]Declaration, 0, len(r.order))
	for _, name := range r.order {
		decls = append(decls, r.flags[name].decl)
	}
	return decls
}

// Warnings returns the non-fatal problems found while parsing. Each is a
// *CoercionError.
func (r *Results) Warnings() []error {
	warnings := make([]error, len(r.warnings))
	copy(warnings, r.warnings)
	return warnings
}
