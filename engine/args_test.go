package engine

import (
	"errors"
	"testing"

	"github.com/corposant/stevedore/types"
)

func argErr(t *testing.T, err error) *ArgError {
	t.Helper()
	if err == nil {
		t.Fatal("expected a conversion error")
	}
	var ae *ArgError
	if !errors.As(err, &ae) {
		t.Fatal("expected an ArgError, got", err)
	}
	return ae
}

func TestConvertStrictExact(t *testing.T) {
	s := New()
	s.Push(float64(5))
	s.Push("x")

	vals, err := Convert(s, "f", true, Integer, String)
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 2 || vals[0] != 5 || vals[1] != "x" {
		t.Fatalf("expected (5, x) bottom first, got %v", vals)
	}
	if top := s.Top(); top != 2 {
		t.Fatal("expected the stack unchanged, got height", top)
	}
}

func TestConvertUnderflow(t *testing.T) {
	s := New()
	s.Push(float64(1))

	_, err := Convert(s, "f", true, Number, Number, Number)
	ae := argErr(t, err)
	if ae.Pos != 2 {
		t.Fatal("expected failure one past the values present, got position", ae.Pos)
	}
	if want := "missing argument #2 to 'f' (number expected)"; ae.Error() != want {
		t.Fatalf("expected %q, got %q", want, ae.Error())
	}

	// an empty stack fails at position 1
	_, err = Convert(New(), "f", true, String)
	if ae := argErr(t, err); ae.Pos != 1 {
		t.Fatal("expected position 1 on an empty stack, got", ae.Pos)
	}
}

func TestConvertStrictOverflow(t *testing.T) {
	s := New()
	for i := range 4 {
		s.Push(float64(i))
	}

	_, err := Convert(s, "f", true, Number, Number)
	ae := argErr(t, err)
	if ae.Pos != 4 {
		t.Fatal("expected failure at the stack top, got position", ae.Pos)
	}
	if want := "too many arguments to 'f' (2 expected, got 4)"; ae.Error() != want {
		t.Fatalf("expected %q, got %q", want, ae.Error())
	}
}

func TestConvertPermissiveWindow(t *testing.T) {
	s := New()
	s.Push("ignored")
	s.Push(true)
	s.Push(float64(7))
	s.Push("tail")

	vals, err := Convert(s, "f", false, Number, String)
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 2 || vals[0] != float64(7) || vals[1] != "tail" {
		t.Fatalf("expected the topmost window (7, tail), got %v", vals)
	}
	if top := s.Top(); top != 4 {
		t.Fatal("expected the stack unchanged, got height", top)
	}
}

func TestConvertMismatchPosition(t *testing.T) {
	s := New()
	s.Push(float64(1))
	s.Push("two")
	s.Push(false)

	// the lowest failing position wins
	_, err := Convert(s, "f", true, Number, Number, Number)
	ae := argErr(t, err)
	if ae.Pos != 2 {
		t.Fatal("expected position 2, got", ae.Pos)
	}
	if want := "invalid argument #2 to 'f' (number expected, got string)"; ae.Error() != want {
		t.Fatalf("expected %q, got %q", want, ae.Error())
	}

	_, err = Convert(s, "f", true, Number, String, Number)
	if ae := argErr(t, err); ae.Pos != 3 {
		t.Fatal("expected position 3, got", ae.Pos)
	}
}

func TestConvertWildcard(t *testing.T) {
	s := New()
	s.Push(float64(1))
	s.Push("anything")
	s.Push(float64(3))

	vals, err := Convert(s, "f", true, Number, Skip, Number)
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 2 || vals[0] != float64(1) || vals[1] != float64(3) {
		t.Fatalf("expected the wildcard slot dropped from the tuple, got %v", vals)
	}

	// a wildcard consumes its slot even when nil
	s.SetTop(0)
	s.PushNil()
	vals, err = Convert(s, "f", true, Any)
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 1 || vals[0] != nil {
		t.Fatalf("expected a raw nil, got %v", vals)
	}
}

func TestConvertZeroSelectors(t *testing.T) {
	s := New()

	if _, err := Convert(s, "f", true); err != nil {
		t.Fatal("expected an empty strict conversion of an empty stack to pass, got", err)
	}

	s.Push(float64(1))
	_, err := Convert(s, "f", true)
	ae := argErr(t, err)
	if ae.Pos != 1 {
		t.Fatal("expected position 1, got", ae.Pos)
	}

	vals, err := Convert(s, "f", false)
	if err != nil {
		t.Fatal("expected an empty permissive conversion to pass, got", err)
	}
	if len(vals) != 0 {
		t.Fatal("expected an empty tuple, got", vals)
	}
}

func TestConvertRestoresOnFailure(t *testing.T) {
	s := New()
	s.Push("x")

	if _, err := Convert(s, "f", true, Number); err == nil {
		t.Fatal("expected a failure")
	}
	if top := s.Top(); top != 1 || s.At(1) != "x" {
		t.Fatal("expected the stack unchanged after the failure")
	}
}

func TestCheckArities(t *testing.T) {
	s := New()
	s.Push(float64(1))
	s.Push("b")
	s.Push(true)
	s.Push(float64(4))

	a, b, c, d, err := Check4[float64, string, bool, int](s, "f", true)
	if err != nil {
		t.Fatal(err)
	}
	if a != 1 || b != "b" || c != true || d != 4 {
		t.Fatalf("expected (1, b, true, 4), got (%v, %v, %v, %v)", a, b, c, d)
	}

	// permissive checks read the trailing window
	q, w, e, err := Check3[string, bool, int](s, "f", false)
	if err != nil {
		t.Fatal(err)
	}
	if q != "b" || w != true || e != 4 {
		t.Fatalf("expected (b, true, 4), got (%v, %v, %v)", q, w, e)
	}

	x, y, err := Check2[bool, int](s, "f", false)
	if err != nil {
		t.Fatal(err)
	}
	if x != true || y != 4 {
		t.Fatalf("expected (true, 4), got (%v, %v)", x, y)
	}

	v, err := Check1[int](s, "f", false)
	if err != nil {
		t.Fatal(err)
	}
	if v != 4 {
		t.Fatal("expected 4, got", v)
	}

	if top := s.Top(); top != 4 {
		t.Fatal("expected the stack unchanged, got height", top)
	}
}

func TestCheckPositions(t *testing.T) {
	s := New()
	s.Push(float64(1))

	_, _, err := Check2[float64, string](s, "pair", true)
	ae := argErr(t, err)
	if ae.Pos != 2 {
		t.Fatal("expected underflow at position 2, got", ae.Pos)
	}
	if want := "missing argument #2 to 'pair' (string expected)"; ae.Error() != want {
		t.Fatalf("expected %q, got %q", want, ae.Error())
	}

	s.Push(float64(2))
	s.Push(float64(3))
	_, _, err = Check2[float64, float64](s, "pair", true)
	if ae := argErr(t, err); ae.Pos != 3 {
		t.Fatal("expected strict overflow at position 3, got", ae.Pos)
	}

	_, err = Check1[string](s, "one", false)
	ae = argErr(t, err)
	if ae.Pos != 1 {
		t.Fatal("expected mismatch at position 1, got", ae.Pos)
	}
	if want := "invalid argument #1 to 'one' (string expected, got number)"; ae.Error() != want {
		t.Fatalf("expected %q, got %q", want, ae.Error())
	}
}

func TestCheckWildcardTarget(t *testing.T) {
	s := New()
	s.PushNil()
	s.Push("v")

	a, b, err := Check2[types.Val, string](s, "f", true)
	if err != nil {
		t.Fatal(err)
	}
	if a != nil || b != "v" {
		t.Fatalf("expected (nil, v), got (%v, %v)", a, b)
	}
}

func BenchmarkConvert(b *testing.B) {
	s := New()
	s.Push(float64(1))
	s.Push("x")

	for b.Loop() {
		_, _ = Convert(s, "f", true, Number, String)
	}
}

func BenchmarkCheck2(b *testing.B) {
	s := New()
	s.Push(float64(1))
	s.Push("x")

	for b.Loop() {
		_, _, _ = Check2[float64, string](s, "f", true)
	}
}
