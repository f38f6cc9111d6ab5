// Package parsecommands parses Unix style command line arguments against
// a set of typed flag declarations.
//
// Each declaration names a flag token (for example "-n"), the type its
// value is coerced to, and whether it must be present. Tokens that are
// not declared flags are collected, in order, as commands. Boolean flags
// take no value; every other flag consumes the token that follows it.
//
// Two underscores in any token are replaced by a space before parsing,
// for launchers that cannot pass a literal space. A "-h" or "--help"
// token anywhere stops parsing with a HelpRequested error.
package parsecommands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/kolide/kit/logutil"
	"github.com/pkg/errors"
)

const spaceEscape = "__"

var errEmptyToken = errors.New("empty value")

type parser struct {
	logger log.Logger
	stdout io.Writer
	stderr io.Writer
	exit   func(int)
}

type Option func(*parser)

// WithLogger sets the logger diagnostics are written to. Parse is silent
// by default; ParseOrExit logs to stderr.
func WithLogger(logger log.Logger) Option {
	return func(p *parser) {
		p.logger = logger
	}
}

// WithOutput sets where ParseOrExit prints the help text.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(p *parser) {
		p.stdout = stdout
		p.stderr = stderr
	}
}

// WithExitFunc replaces os.Exit in ParseOrExit.
func WithExitFunc(exit func(int)) Option {
	return func(p *parser) {
		p.exit = exit
	}
}

func newParser(opts ...Option) *parser {
	p := &parser{
		stdout: os.Stdout,
		stderr: os.Stderr,
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.NewNopLogger()
	}
	p.logger = log.With(p.logger, "caller", log.DefaultCaller)
	return p
}

// Parse scans args against decls. help is not printed by Parse; it is
// only carried for ParseOrExit. The returned error is one of
// HelpRequested, *MissingValueError or *MissingRequiredError, and
// Results is nil whenever the error is not. args is not modified.
func Parse(args []string, help string, decls []Declaration, opts ...Option) (*Results, error) {
	return newParser(opts...).parse(args, decls)
}

// ParseOrExit behaves like Parse, but handles its errors the way a
// command line program would: on a help request the help text goes to
// stdout and the process exits 0, on any other error the help text goes
// to stderr and the process exits 1.
func ParseOrExit(args []string, help string, decls []Declaration, opts ...Option) *Results {
	opts = append([]Option{WithLogger(logutil.NewCLILogger(false))}, opts...)
	p := newParser(opts...)

	results, err := p.parse(args, decls)
	if err == nil {
		return results
	}

	if IsHelpRequested(err) {
		fmt.Fprintln(p.stdout, help)
	} else {
		fmt.Fprintln(p.stderr, help)
	}
	p.exit(ExitCode(err))

	// only reached when the exit func returns
	return results
}

func (p *parser) parse(args []string, decls []Declaration) (*Results, error) {
	results := newResults(decls)

	tokens := make([]string, len(args))
	for i, arg := range args {
		tokens[i] = strings.ReplaceAll(arg, spaceEscape, " ")

		if tokens[i] == "-h" || tokens[i] == "--help" {
			level.Debug(p.logger).Log("msg", "help requested", "token", tokens[i])
			return nil, NewHelpRequested(tokens[i])
		}
	}

	for i := 0; i < len(tokens); {
		token := tokens[i]

		if !results.isFlag(token) {
			level.Debug(p.logger).Log("msg", "found command", "command", token)
			results.addCommand(token)
			i++
			continue
		}

		decl := results.flags[token].decl

		// Only a boolean flag may end the argument list.
		if decl.valueType == Boolean {
			results.set(decl.name, BooleanValue(true))
			i++
			continue
		}

		if i+1 >= len(tokens) || results.isFlag(tokens[i+1]) {
			level.Warn(p.logger).Log("msg", "argument expected after flag", "flag", token)
			return nil, &MissingValueError{Flag: token}
		}

		raw := tokens[i+1]
		value, err := coerce(decl.valueType, raw)
		if err != nil {
			coercionErr := &CoercionError{
				Flag:  decl.name,
				Token: raw,
				Type:  decl.valueType,
				Err:   err,
			}
			level.Warn(p.logger).Log("msg", "problem parsing flag value", "flag", decl.name, "err", coercionErr)
			results.warnings = append(results.warnings, coercionErr)
		}
		results.set(decl.name, value)

		i += 2
	}

	var missing []string
	for _, name := range results.order {
		entry := results.flags[name]
		if entry.decl.required && entry.value == nil {
			level.Warn(p.logger).Log("msg", "flag is required, but not present", "flag", name)
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingRequiredError{Flags: missing}
	}

	return results, nil
}

// coerce converts raw to t. An unsupported type yields no value and no
// error. Integers are 32 bit. Out of range doubles and floats become
// infinities rather than failing.
func coerce(t ValueType, raw string) (Value, error) {
	switch t {
	case String:
		return StringValue(raw), nil
	case Integer:
		i, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, err
		}
		return IntegerValue(i), nil
	case Double:
		d, err := parseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		return DoubleValue(d), nil
	case Float:
		f, err := parseFloat(raw, 32)
		if err != nil {
			return nil, err
		}
		return FloatValue(f), nil
	case Character:
		r, size := utf8.DecodeRuneInString(raw)
		if size == 0 {
			return nil, errEmptyToken
		}
		return CharacterValue(r), nil
	}
	return nil, nil
}

// parseFloat also accepts a number with a trailing f or d type suffix,
// as in "1.5f".
func parseFloat(raw string, bitSize int) (float64, error) {
	raw = strings.TrimSpace(raw)

	v, err := strconv.ParseFloat(raw, bitSize)
	if errors.Is(err, strconv.ErrSyntax) {
		if trimmed, ok := trimTypeSuffix(raw); ok {
			v, err = strconv.ParseFloat(trimmed, bitSize)
		}
	}
	if errors.Is(err, strconv.ErrRange) {
		// v is ±Inf
		return v, nil
	}
	return v, err
}

func trimTypeSuffix(raw string) (string, bool) {
	if len(raw) < 2 || !strings.ContainsRune("fFdD", rune(raw[len(raw)-1])) {
		return "", false
	}
	trimmed := raw[:len(raw)-1]
	// the suffix only follows digits, never inf or nan
	last := trimmed[len(trimmed)-1]
	if last != '.' && (last < '0' || last > '9') {
		return "", false
	}
	return trimmed, true
}
