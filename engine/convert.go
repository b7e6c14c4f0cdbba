package engine

import "github.com/corposant/stevedore/types"

// As reads the value at a stack index as host type T without disturbing the
// stack. The value's dynamic type must match T exactly; no coercion happens
// here. An int target accepts integral numbers only, and a types.Val target
// accepts every value, nil included.
//
// Tables become host containers through MapOf and SeqOf, and cells give up
// their payloads through LoadCell; As hands both back unconverted.
func As[T any](s *State, idx int) (T, bool) {
	v := s.At(idx)
	if c, ok := v.(T); ok {
		return c, true
	}

	var zero T
	switch any(zero).(type) {
	case int:
		f, ok := v.(float64)
		if i := int(f); ok && float64(i) == f {
			return any(i).(T), true
		}
	case nil:
		// T is an interface type, so a nil slot satisfies it
		return zero, v == nil
	}
	return zero, false
}

// wantName is the engine type name a conversion target type asks for.
func wantName[T any]() string {
	var zero T
	switch any(zero).(type) {
	case float64, int:
		return "number"
	case string:
		return "string"
	case bool:
		return "boolean"
	case *types.Table:
		return "table"
	case *types.Buffer:
		return "buffer"
	case types.Vector:
		return "vector"
	case Function:
		return "function"
	case *types.Cell:
		return "cell"
	}
	return "value"
}
