package engine

import (
	"fmt"

	"github.com/corposant/stevedore/types"
)

// MakeFn creates a native function. The body receives the instance with the
// function's arguments as its only visible stack slots and returns how many
// results it left on top.
func MakeFn(name string, body func(s *State) (int, error)) Function {
	return Function{Run: &body, Name: name}
}

// NewLib creates a library table from native functions, with any other
// values attached alongside them. Library tables are readonly.
func NewLib(fns []Function, other ...map[string]types.Val) *types.Table {
	hash := make(map[types.Val]types.Val, len(fns))
	for _, f := range fns {
		hash[f.Name] = f
	}
	for _, m := range other {
		for k, v := range m {
			hash[k] = v
		}
	}
	return &types.Table{Hash: hash, Readonly: true}
}

// CallFn invokes a native function with the top nargs slots as its
// arguments. The body runs in its own stack frame: slot 1 is its first
// argument and slots below the frame are out of reach. The frame is torn
// down before returning, however the body exits, with the declared results
// copied out first.
func (s *State) CallFn(f Function, nargs int) ([]types.Val, error) {
	if f.Run == nil {
		return nil, fmt.Errorf("attempt to call a nil function '%s'", f.Name)
	}
	if nargs < 0 || nargs > s.Top() {
		panic(fmt.Sprintf("call with %d arguments, %d on the stack", nargs, s.Top()))
	}

	floor := len(s.stack) - nargs
	base := s.base
	s.base = floor
	defer func() {
		s.base = base
		clear(s.stack[floor:])
		s.stack = s.stack[:floor]
	}()

	n, err := (*f.Run)(s)
	if err != nil {
		return nil, err
	}
	if n < 0 || n > s.Top() {
		return nil, fmt.Errorf("function '%s' declared %d results with %d values on the stack", f.Name, n, s.Top())
	}

	r := make([]types.Val, n)
	copy(r, s.stack[len(s.stack)-n:])
	return r, nil
}
