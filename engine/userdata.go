package engine

import (
	"fmt"

	"github.com/corposant/stevedore/types"
)

// TypeTag identifies one registered host type within one engine instance.
// Tags are created by RegisterType and compared by identity; two instances
// registering the same name still hold distinct tags.
type TypeTag struct {
	name    string
	owner   string
	methods *types.Table
}

// Name returns the tag's registered name.
func (t *TypeTag) Name() string { return t.name }

// Methods returns the tag's method table.
func (t *TypeTag) Methods() *types.Table { return t.methods }

// RegisterType creates the type tag for a host type, at most once per
// instance and name. Registering a name twice on the same instance is a
// configuration error and panics. The given methods become the tag's
// method table.
func RegisterType(s *State, name string, methods ...Function) *TypeTag {
	if _, dup := s.tags[name]; dup {
		panic(fmt.Sprintf("type '%s' registered twice on instance %s", name, s.id))
	}

	t := &TypeTag{name: name, owner: s.id, methods: NewLib(methods)}
	s.tags[name] = t
	return t
}

// TagOf returns the instance's tag for a registered name, nil when absent.
func (s *State) TagOf(name string) *TypeTag {
	return s.tags[name]
}

// Install adds a method to the tag's method table after registration.
// Colliding with an existing method is a configuration error and panics.
func (t *TypeTag) Install(f Function) {
	if t.methods.GetHash(f.Name) != nil {
		panic(fmt.Sprintf("method '%s' installed twice on type '%s'", f.Name, t.name))
	}
	t.methods.Hash[f.Name] = f
}

// Store wraps a host value in a fresh cell under this tag and pushes it.
// The cell is only meaningful to the instance that created it.
func (t *TypeTag) Store(s *State, v any) *types.Cell {
	if t.owner != s.id {
		panic(fmt.Sprintf("type '%s' belongs to another instance", t.name))
	}

	c := &types.Cell{Tag: t.name, Owner: t.owner, Value: v}
	s.Push(c)
	return c
}

// LoadCell reads the slot at a stack index as a cell of the given tag and
// returns a copy of its payload. It yields nothing when the slot is not a
// cell, when the cell carries another tag or belongs to another instance,
// or when the payload is not a T.
func LoadCell[T any](s *State, idx int, tag *TypeTag) (T, bool) {
	var zero T
	c, ok := s.At(idx).(*types.Cell)
	if !ok || c.Tag != tag.name || c.Owner != s.id {
		return zero, false
	}

	v, ok := c.Value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Tagged returns a selector that reads cells of the given tag, converting
// to the cell's payload.
func Tagged(tag *TypeTag) Selector {
	return Selector{want: tag.name, read: func(s *State, idx int) (types.Val, bool) {
		c, ok := s.At(idx).(*types.Cell)
		if !ok || c.Tag != tag.name || c.Owner != s.id {
			return nil, false
		}
		return c.Value, true
	}}
}
