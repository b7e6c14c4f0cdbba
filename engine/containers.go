package engine

import (
	"fmt"

	"github.com/corposant/stevedore/types"
)

// MapOf builds a host map from the table at a stack index, converting every
// key to K and every value to V with the window rules of Convert. One entry
// that does not convert and the map yields nothing. The table is not
// modified and the stack is restored on the way out.
func MapOf[K comparable, V any](s *State, idx int) (map[K]V, error) {
	return Scoped(s, func() (map[K]V, error) {
		t := s.AbsIndex(idx)
		if !s.IsTable(t) {
			return nil, invalidArg("", t, "table", s.TypeAt(t))
		}

		m := map[K]V{}
		s.PushNil()
		for s.Next(t) {
			k, v, err := Check2[K, V](s, "", false)
			if err != nil {
				return nil, fmt.Errorf("bad table entry: %w", err)
			}
			m[k] = v
			s.Pop(1)
		}
		return m, nil
	})
}

// SeqOf builds a host slice from the sequence part of the table at a stack
// index: the values at integer keys from 1 up to the first gap, each
// converted to T. One value that does not convert and the slice yields
// nothing. The stack is restored on the way out.
func SeqOf[T any](s *State, idx int) ([]T, error) {
	return Scoped(s, func() ([]T, error) {
		t := s.AbsIndex(idx)
		if !s.IsTable(t) {
			return nil, invalidArg("", t, "table", s.TypeAt(t))
		}

		var out []T
		for i := 1; ; i++ {
			s.GetIndexed(t, i)
			if s.At(-1) == nil {
				return out, nil
			}

			v, err := Check1[T](s, "", false)
			if err != nil {
				return nil, fmt.Errorf("bad sequence value at index %d: %w", i, err)
			}
			out = append(out, v)
			s.Pop(1)
		}
	})
}

// PushSeq builds a dense table from a host slice, values at integer keys 1
// through len(vals), pushes it and returns it. conv renders one element as
// an engine value.
func PushSeq[T any](s *State, vals []T, conv func(T) types.Val) *types.Table {
	t := s.PushTable()
	ti := s.AbsIndex(-1)
	for i, v := range vals {
		s.Push(conv(v))
		s.SetIndexed(ti, i+1)
	}
	return t
}

// Engine renderings of common host scalars, for use with PushSeq.

func NumVal(f float64) types.Val { return f }

func IntVal(i int) types.Val { return float64(i) }

func StrVal(v string) types.Val { return v }

func BoolVal(v bool) types.Val { return v }

// MapAs returns a selector that reads a table slot as a host map through
// MapOf.
func MapAs[K comparable, V any]() Selector {
	return Selector{want: "table", read: func(s *State, idx int) (types.Val, bool) {
		m, err := MapOf[K, V](s, idx)
		return m, err == nil
	}}
}

// SeqAs returns a selector that reads a table slot as a host slice through
// SeqOf.
func SeqAs[T any]() Selector {
	return Selector{want: "table", read: func(s *State, idx int) (types.Val, bool) {
		v, err := SeqOf[T](s, idx)
		return v, err == nil
	}}
}

// EachIndexed visits the sequence part of the table at a stack index in
// order, stopping at the first gap or the first error. Each value sits on
// top of the stack for the duration of its visit, which runs in its own
// scope.
func EachIndexed(s *State, idx int, visit func(i int) error) error {
	return Protect(s, func() error {
		t := s.AbsIndex(idx)
		if !s.IsTable(t) {
			return invalidArg("", t, "table", s.TypeAt(t))
		}

		for i := 1; ; i++ {
			s.GetIndexed(t, i)
			if s.At(-1) == nil {
				return nil
			}
			if err := Protect(s, func() error { return visit(i) }); err != nil {
				return err
			}
			s.Pop(1)
		}
	})
}

// FieldSel names one table entry for Unpack: the key it lives at and the
// selector its value converts through.
type FieldSel struct {
	key types.Val
	sel Selector
}

// ByField selects the entry at a string key.
func ByField(name string, sel Selector) FieldSel {
	return FieldSel{key: name, sel: sel}
}

// ByIndex selects the entry at an integer key.
func ByIndex(i int, sel Selector) FieldSel {
	return FieldSel{key: float64(i), sel: sel}
}

// Unpack plucks the named entries out of the table at a stack index and
// converts them as one permissive window, in selection order. A missing or
// nil entry fails at its 1-based position among fields, as does an entry its
// selector cannot read. The stack is restored on the way out.
func Unpack(s *State, fn string, idx int, fields ...FieldSel) ([]types.Val, error) {
	return Scoped(s, func() ([]types.Val, error) {
		t := s.AbsIndex(idx)
		if !s.IsTable(t) {
			return nil, invalidArg(fn, t, "table", s.TypeAt(t))
		}

		tab := s.table(t)
		sels := make([]Selector, len(fields))
		for p, f := range fields {
			v := tab.Get(f.key)
			if v == nil {
				return nil, badArg(fn, p+1, fmt.Sprintf("nil or missing entry at key '%v'", f.key))
			}
			s.Push(v)
			sels[p] = f.sel
		}
		return Convert(s, fn, false, sels...)
	})
}
