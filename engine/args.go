package engine

import "github.com/corposant/stevedore/types"

// Selector describes one slot of a conversion window: the engine type it
// asks for and how the slot becomes a host value.
type Selector struct {
	want string
	read func(s *State, idx int) (types.Val, bool)
	skip bool
}

// NewSelector builds a selector from a type name, used in diagnostics, and a
// reader.
func NewSelector(want string, read func(s *State, idx int) (types.Val, bool)) Selector {
	return Selector{want: want, read: read}
}

func readAs[T any](s *State, idx int) (types.Val, bool) {
	v, ok := As[T](s, idx)
	return v, ok
}

func readRaw(s *State, idx int) (types.Val, bool) {
	return s.At(idx), true
}

// Selectors for the engine types. Integer reads integral numbers as host
// ints, Any accepts every value, and Skip consumes a slot without producing
// a tuple entry.
var (
	Number  = Selector{want: "number", read: readAs[float64]}
	Integer = Selector{want: "number", read: readAs[int]}
	String  = Selector{want: "string", read: readAs[string]}
	Boolean = Selector{want: "boolean", read: readAs[bool]}
	Table   = Selector{want: "table", read: readAs[*types.Table]}
	Buffer  = Selector{want: "buffer", read: readAs[*types.Buffer]}
	Vector  = Selector{want: "vector", read: readAs[types.Vector]}
	Func    = Selector{want: "function", read: readAs[Function]}
	Any     = Selector{want: "value", read: readRaw}
	Skip    = Selector{want: "value", read: readRaw, skip: true}
)

// Convert maps the topmost len(sels) stack slots onto host values, one per
// selector in order, the first selector reading the bottom of the window.
// The stack is restored before returning. The tuple holds one value per
// non-wildcard selector.
//
// With fewer values on the stack than selectors, conversion fails at the
// first position past the values present. In strict mode any values below
// the window fail the conversion at the position of the topmost of them;
// permissive mode ignores them. A selector that cannot read its slot fails
// at that slot's position, lowest position first. Every failure carries its
// position as an *ArgError.
func Convert(s *State, fn string, strict bool, sels ...Selector) ([]types.Val, error) {
	return Scoped(s, func() ([]types.Val, error) {
		quantity := len(sels)
		top := s.Top()
		base := top - quantity
		if base < 0 {
			return nil, missingArg(fn, top+1, sels[top].want)
		}
		if strict && base > 0 {
			return nil, extraArgs(fn, quantity, top)
		}

		out := make([]types.Val, 0, quantity)
		for p := 1; p <= quantity; p++ {
			sel := sels[p-1]
			v, ok := sel.read(s, base+p)
			if !ok {
				return nil, invalidArg(fn, p, sel.want, s.TypeAt(base+p))
			}
			if !sel.skip {
				out = append(out, v)
			}
		}
		return out, nil
	})
}

// Check1 converts the topmost stack slot to A under the Convert window
// rules. The stack is left untouched.
func Check1[A any](s *State, fn string, strict bool) (a A, err error) {
	top := s.Top()
	base := top - 1
	if base < 0 {
		return a, missingArg(fn, top+1, wantName[A]())
	}
	if strict && base > 0 {
		return a, extraArgs(fn, 1, top)
	}

	var ok bool
	if a, ok = As[A](s, base+1); !ok {
		return a, invalidArg(fn, 1, wantName[A](), s.TypeAt(base+1))
	}
	return a, nil
}

// Check2 converts the topmost two stack slots to A and B under the Convert
// window rules, A reading the lower slot. The stack is left untouched.
func Check2[A, B any](s *State, fn string, strict bool) (a A, b B, err error) {
	top := s.Top()
	base := top - 2
	if base < 0 {
		wants := [...]string{wantName[A](), wantName[B]()}
		return a, b, missingArg(fn, top+1, wants[top])
	}
	if strict && base > 0 {
		return a, b, extraArgs(fn, 2, top)
	}

	var ok bool
	if a, ok = As[A](s, base+1); !ok {
		return a, b, invalidArg(fn, 1, wantName[A](), s.TypeAt(base+1))
	}
	if b, ok = As[B](s, base+2); !ok {
		return a, b, invalidArg(fn, 2, wantName[B](), s.TypeAt(base+2))
	}
	return a, b, nil
}

// Check3 converts the topmost three stack slots under the Convert window
// rules. The stack is left untouched.
func Check3[A, B, C any](s *State, fn string, strict bool) (a A, b B, c C, err error) {
	top := s.Top()
	base := top - 3
	if base < 0 {
		wants := [...]string{wantName[A](), wantName[B](), wantName[C]()}
		return a, b, c, missingArg(fn, top+1, wants[top])
	}
	if strict && base > 0 {
		return a, b, c, extraArgs(fn, 3, top)
	}

	var ok bool
	if a, ok = As[A](s, base+1); !ok {
		return a, b, c, invalidArg(fn, 1, wantName[A](), s.TypeAt(base+1))
	}
	if b, ok = As[B](s, base+2); !ok {
		return a, b, c, invalidArg(fn, 2, wantName[B](), s.TypeAt(base+2))
	}
	if c, ok = As[C](s, base+3); !ok {
		return a, b, c, invalidArg(fn, 3, wantName[C](), s.TypeAt(base+3))
	}
	return a, b, c, nil
}

// Check4 converts the topmost four stack slots under the Convert window
// rules. The stack is left untouched.
func Check4[A, B, C, D any](s *State, fn string, strict bool) (a A, b B, c C, d D, err error) {
	top := s.Top()
	base := top - 4
	if base < 0 {
		wants := [...]string{wantName[A](), wantName[B](), wantName[C](), wantName[D]()}
		return a, b, c, d, missingArg(fn, top+1, wants[top])
	}
	if strict && base > 0 {
		return a, b, c, d, extraArgs(fn, 4, top)
	}

	var ok bool
	if a, ok = As[A](s, base+1); !ok {
		return a, b, c, d, invalidArg(fn, 1, wantName[A](), s.TypeAt(base+1))
	}
	if b, ok = As[B](s, base+2); !ok {
		return a, b, c, d, invalidArg(fn, 2, wantName[B](), s.TypeAt(base+2))
	}
	if c, ok = As[C](s, base+3); !ok {
		return a, b, c, d, invalidArg(fn, 3, wantName[C](), s.TypeAt(base+3))
	}
	if d, ok = As[D](s, base+4); !ok {
		return a, b, c, d, invalidArg(fn, 4, wantName[D](), s.TypeAt(base+4))
	}
	return a, b, c, d, nil
}
