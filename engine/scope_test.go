package engine

import (
	"errors"
	"testing"
)

func TestScopedRestores(t *testing.T) {
	s := New()
	s.Push("below")

	v, err := Scoped(s, func() (float64, error) {
		s.Push(float64(1))
		s.Push(float64(2))
		return s.At(-1).(float64) + s.At(-2).(float64), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if v != 3 {
		t.Fatal("expected 3, got", v)
	}
	if top := s.Top(); top != 1 {
		t.Fatal("expected height 1 after the scope, got", top)
	}
	if v := s.At(1); v != "below" {
		t.Fatal("expected the slot below the scope untouched, got", v)
	}
}

func TestScopedRestoresOnError(t *testing.T) {
	s := New()

	broke := errors.New("broke")
	_, err := Scoped(s, func() (int, error) {
		s.Push("junk")
		s.Push("more junk")
		return 0, broke
	})
	if !errors.Is(err, broke) {
		t.Fatal("expected the error through, got", err)
	}
	if top := s.Top(); top != 0 {
		t.Fatal("expected an empty stack after the failed scope, got height", top)
	}
}

func TestScopedRestoresOnPanic(t *testing.T) {
	s := New()
	s.Push("below")

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected the panic through")
			}
		}()
		_ = Protect(s, func() error {
			s.Push("junk")
			panic("boom")
		})
	}()

	if top := s.Top(); top != 1 {
		t.Fatal("expected height 1 after the panicked scope, got", top)
	}
}

func TestScopedRefillsConsumed(t *testing.T) {
	s := New()
	s.Push("a")
	s.Push("b")

	err := Protect(s, func() error {
		s.Pop(2)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// consumed slots come back as nils, not as the old values
	if top := s.Top(); top != 2 {
		t.Fatal("expected height 2 after the scope, got", top)
	}
	for _, i := range []int{1, 2} {
		if v := s.At(i); v != nil {
			t.Fatalf("expected nil at slot %d, got %v", i, v)
		}
	}
}

func TestScopedNests(t *testing.T) {
	s := New()

	err := Protect(s, func() error {
		s.Push(float64(1))

		if err := Protect(s, func() error {
			s.Push(float64(2))
			s.Push(float64(3))
			return nil
		}); err != nil {
			return err
		}

		if top := s.Top(); top != 1 {
			t.Fatal("expected the inner scope to restore to 1, got", top)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if top := s.Top(); top != 0 {
		t.Fatal("expected the outer scope to restore to 0, got", top)
	}
}

func BenchmarkScoped(b *testing.B) {
	s := New()
	for b.Loop() {
		_, _ = Scoped(s, func() (int, error) {
			s.Push(float64(1))
			return 0, nil
		})
	}
}
