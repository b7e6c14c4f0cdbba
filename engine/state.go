// package engine implements a value stack shared with dynamically typed
// guest code and the marshalling protocols that move values between it and
// statically typed host code.
package engine

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/corposant/stevedore/types"
)

// Function represents a native function bound to an engine instance.
type Function = types.Function[*State]

// DefaultCeiling is the stack slot limit for a new instance.
const DefaultCeiling = 8000

// State is one engine instance: a value stack, a global table and the
// instance's type tag registry. Instances are independent; values created by
// one are not valid in another. A State serves one call chain at a time and
// does no locking.
type State struct {
	id      string
	stack   []types.Val
	base    int // current frame floor; slot 1 of the frame is stack[base]
	ceiling int
	globals *types.Table
	tags    map[string]*TypeTag
}

// New creates a fresh engine instance with an empty stack.
func New() *State {
	return &State{
		id:      uuid.NewString(),
		ceiling: DefaultCeiling,
		globals: &types.Table{},
		tags:    map[string]*TypeTag{},
	}
}

// ID returns the identity of this instance. Cells created by the instance
// are stamped with it.
func (s *State) ID() string { return s.id }

// SetCeiling changes the stack slot limit.
func (s *State) SetCeiling(n int) {
	if n < 1 {
		panic("stack ceiling must be positive")
	}
	s.ceiling = n
}

// Top returns the stack height of the current frame.
func (s *State) Top() int { return len(s.stack) - s.base }

// AbsIndex converts a top-relative (negative) stack index into an absolute
// 1-based one. Absolute indices stay valid while values are pushed and
// popped above them.
func (s *State) AbsIndex(idx int) int {
	if idx < 0 {
		return s.Top() + idx + 1
	}
	return idx
}

// slot returns the storage offset for a stack index, or -1 when the index
// lies outside the current frame.
func (s *State) slot(idx int) int {
	i := s.AbsIndex(idx)
	if i < 1 || i > s.Top() {
		return -1
	}
	return s.base + i - 1
}

// At returns the value at a stack index without disturbing the stack. Slots
// outside the stack read as nil.
func (s *State) At(idx int) types.Val {
	if o := s.slot(idx); o >= 0 {
		return s.stack[o]
	}
	return nil
}

// TypeAt returns the engine type name of the value at a stack index.
func (s *State) TypeAt(idx int) string {
	return TypeName(s.At(idx))
}

// IsTable reports whether the value at a stack index is a table.
func (s *State) IsTable(idx int) bool {
	_, ok := s.At(idx).(*types.Table)
	return ok
}

// Push puts a value on top of the stack.
func (s *State) Push(v types.Val) {
	if len(s.stack) >= s.ceiling {
		panic(fmt.Sprintf("stack overflow (limit %d)", s.ceiling))
	}
	s.stack = append(s.stack, v)
}

// PushNil pushes a nil slot.
func (s *State) PushNil() { s.Push(nil) }

// PushTable creates an empty table, pushes it and returns it.
func (s *State) PushTable() *types.Table {
	t := &types.Table{}
	s.Push(t)
	return t
}

// Pop removes the top n values.
func (s *State) Pop(n int) {
	s.SetTop(max(s.Top()-n, 0))
}

// SetTop sets the stack height of the current frame, discarding slots above
// n or filling with nils up to it.
func (s *State) SetTop(n int) {
	if n < 0 {
		panic("negative stack height")
	}
	o := s.base + n
	if o > s.ceiling {
		panic(fmt.Sprintf("stack overflow (limit %d)", s.ceiling))
	}
	for len(s.stack) < o {
		s.stack = append(s.stack, nil)
	}
	if o < len(s.stack) {
		clear(s.stack[o:])
		s.stack = s.stack[:o]
	}
}

// table returns the table at a stack index. Passing an index that does not
// hold a table is a programming error.
func (s *State) table(tidx int) *types.Table {
	t, ok := s.At(tidx).(*types.Table)
	if !ok {
		panic(fmt.Sprintf("no table at stack index %d (%s)", tidx, s.TypeAt(tidx)))
	}
	return t
}

// Next steps table traversal at tidx. The top of the stack holds the
// previous key, nil to start. When a following pair exists it replaces the
// key with the next key, pushes its value above and returns true; once the
// table is exhausted it pops the key and returns false.
func (s *State) Next(tidx int) bool {
	t := s.table(tidx)
	if s.Top() == 0 {
		panic("no key on the stack for next")
	}

	nk, nv, ok := t.Next(s.At(-1))
	if !ok {
		s.Pop(1)
		return false
	}
	s.stack[len(s.stack)-1] = nk
	s.Push(nv)
	return true
}

// GetIndexed pushes the value at integer key n of the table at tidx, nil
// when absent.
func (s *State) GetIndexed(tidx, n int) {
	t := s.table(tidx)
	s.Push(t.GetInt(n))
}

// GetField pushes the value at string key k of the table at tidx, nil when
// absent.
func (s *State) GetField(tidx int, k string) {
	t := s.table(tidx)
	s.Push(t.Get(k))
}

// SetIndexed pops the top value and stores it at integer key n of the table
// at tidx. This is a raw write; callers enforce the readonly flag.
func (s *State) SetIndexed(tidx, n int) {
	t := s.table(tidx)
	v := s.At(-1)
	s.Pop(1)
	t.SetInt(n, v)
}

// SetGlobal stores a value in the instance's global table.
func (s *State) SetGlobal(k string, v types.Val) {
	s.globals.Set(k, v)
}

// Global returns a value from the instance's global table, nil when absent.
func (s *State) Global(k string) types.Val {
	return s.globals.Get(k)
}

// Globals returns the instance's global table.
func (s *State) Globals() *types.Table {
	return s.globals
}

// TypeName returns the engine type name of a value. Cells report the tag
// they were created under.
func TypeName(v types.Val) string {
	switch c := v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *types.Table:
		return "table"
	case *types.Buffer:
		return "buffer"
	case types.Vector:
		return "vector"
	case Function:
		return "function"
	case *types.Cell:
		return c.Tag
	}
	return "userdata"
}

// ToString renders a value for display.
func ToString(v types.Val) string {
	switch c := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(c)
	case float64:
		return strconv.FormatFloat(c, 'g', -1, 64)
	case string:
		return c
	case types.Vector:
		if c[3] != 0 {
			return fmt.Sprintf("%v, %v, %v, %v", c[0], c[1], c[2], c[3])
		}
		return fmt.Sprintf("%v, %v, %v", c[0], c[1], c[2])
	case *types.Table:
		return fmt.Sprintf("table: %p", c)
	case *types.Buffer:
		return fmt.Sprintf("buffer: %p", c)
	case Function:
		return fmt.Sprintf("function: %s", c.Name)
	case *types.Cell:
		return fmt.Sprintf("%s: %p", c.Tag, c)
	}
	return fmt.Sprint(v)
}
