package engine

import "fmt"

// ArgError reports a conversion failure at one argument position. Position 1
// is the bottom of the conversion window; an arity underflow reports the
// first position past the values present.
type ArgError struct {
	Fn  string // function name, empty outside a named conversion
	Pos int
	msg string
}

func (e *ArgError) Error() string { return e.msg }

func missingArg(fn string, pos int, want string) *ArgError {
	if fn == "" {
		return &ArgError{fn, pos, fmt.Sprintf("missing argument #%d (%s expected)", pos, want)}
	}
	return &ArgError{fn, pos, fmt.Sprintf("missing argument #%d to '%s' (%s expected)", pos, fn, want)}
}

func invalidArg(fn string, pos int, want, got string) *ArgError {
	if fn == "" {
		return &ArgError{fn, pos, fmt.Sprintf("invalid argument #%d (%s expected, got %s)", pos, want, got)}
	}
	return &ArgError{fn, pos, fmt.Sprintf("invalid argument #%d to '%s' (%s expected, got %s)", pos, fn, want, got)}
}

func extraArgs(fn string, want, got int) *ArgError {
	if fn == "" {
		return &ArgError{fn, got, fmt.Sprintf("too many arguments (%d expected, got %d)", want, got)}
	}
	return &ArgError{fn, got, fmt.Sprintf("too many arguments to '%s' (%d expected, got %d)", fn, want, got)}
}

func badArg(fn string, pos int, msg string) *ArgError {
	if fn == "" {
		return &ArgError{fn, pos, fmt.Sprintf("invalid argument #%d (%s)", pos, msg)}
	}
	return &ArgError{fn, pos, fmt.Sprintf("invalid argument #%d to '%s' (%s)", pos, fn, msg)}
}
