package engine

// Scoped runs op and restores the stack to its entry height on every exit
// path, normal return, error return or panic alike. Slots op left above the
// entry height are discarded; slots it consumed below are refilled with
// nils. Scopes nest freely.
func Scoped[T any](s *State, op func() (T, error)) (T, error) {
	top := s.Top()
	defer func() { s.SetTop(top) }()
	return op()
}

// Protect is Scoped for operations that produce no value.
func Protect(s *State, op func() error) error {
	top := s.Top()
	defer func() { s.SetTop(top) }()
	return op()
}
