// package types holds the value types shared across the stevedore engine.
package types

type (
	// Val represents any possible engine value. Engine type `any`
	Val any

	// Function represents a native function callable by an engine instance.
	// The type parameter is the instance type the function runs against; it
	// lives here so packages defining instances don't import themselves.
	//
	// As functions are compared by reference, the body is held behind a
	// pointer.
	Function[S any] struct {
		// Run is the native body. It receives the instance with the
		// function's arguments as the topmost stack slots and returns the
		// number of results it pushed.
		Run  *func(s S) (int, error)
		Name string
	}

	// Buffer represents a fixed-size byte buffer. Engine type `buffer`
	//
	// As buffers are compared by reference, this type must always be used as
	// a pointer.
	Buffer []byte

	// Vector represents a 3-wide or 4-wide float vector. Engine type `vector`
	Vector [4]float32
)

// Cell is engine-managed opaque storage for one host value. A cell remembers
// the type tag it was created under and the identity of the instance that
// created it; downcasts check both. Engine type `cell`
//
// As cells are compared by reference, this type must always be used as a
// pointer.
type Cell struct {
	Tag   string
	Owner string
	Value any
}
