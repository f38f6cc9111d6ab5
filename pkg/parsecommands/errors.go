package parsecommands

import (
	"errors"
	"fmt"
	"strings"
)

// HelpRequested is returned when -h or --help appears anywhere in the
// arguments. It is not a failure: the caller should print the help text
// and stop.
type HelpRequested struct {
	msg string
}

func NewHelpRequested(token string) HelpRequested {
	return HelpRequested{
		msg: fmt.Sprintf("help requested with %s", token),
	}
}

func (e HelpRequested) Error() string {
	return e.msg
}

func (e HelpRequested) Is(target error) bool {
	if _, ok := target.(HelpRequested); ok {
		return true
	}
	return false
}

func IsHelpRequested(err error) bool {
	return errors.Is(err, HelpRequested{})
}

// MissingValueError is returned when a value-taking flag is the last
// token, or is directly followed by another declared flag.
type MissingValueError struct {
	Flag string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("argument expected after flag %s", e.Flag)
}

// MissingRequiredError lists every required flag left unset after the
// whole argument list was scanned, in declaration order.
type MissingRequiredError struct {
	Flags []string
}

func (e *MissingRequiredError) Error() string {
	if len(e.Flags) == 1 {
		return fmt.Sprintf("flag '%s' is required, but not present", e.Flags[0])
	}
	return fmt.Sprintf("flags '%s' are required, but not present", strings.Join(e.Flags, "', '"))
}

// CoercionError records a value token that could not be converted to its
// flag's type. These are warnings; the flag is left unset and parsing
// continues.
type CoercionError struct {
	Flag  string
	Token string
	Type  ValueType
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("parsing %q as %s for flag %s: %v", e.Token, e.Type, e.Flag, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// ExitCode maps the outcome of Parse to a process exit code: 0 for
// success or a help request, 1 for anything else.
func ExitCode(err error) int {
	if err == nil || IsHelpRequested(err) {
		return 0
	}
	return 1
}
