package std

import (
	"slices"

	. "github.com/corposant/stevedore/types"

	"github.com/corposant/stevedore/engine"
)

func seq_len(s *engine.State) (int, error) {
	t, err := engine.Check1[*Table](s, "len", false)
	if err != nil {
		return 0, err
	}

	s.Push(float64(t.Len()))
	return 1, nil
}

func seq_reverse(s *engine.State) (int, error) {
	vals, err := engine.SeqOf[Val](s, 1)
	if err != nil {
		return 0, err
	}

	slices.Reverse(vals)
	engine.PushSeq(s, vals, func(v Val) Val { return v })
	return 1, nil
}

func seq_sum(s *engine.State) (int, error) {
	vals, err := engine.SeqOf[float64](s, 1)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, v := range vals {
		sum += v
	}
	s.Push(sum)
	return 1, nil
}

func seq_sorted(s *engine.State) (int, error) {
	vals, err := engine.SeqOf[float64](s, 1)
	if err != nil {
		return 0, err
	}

	slices.Sort(vals)
	engine.PushSeq(s, vals, engine.NumVal)
	return 1, nil
}

// string keys of the table, sorted for determinism
func seq_keys(s *engine.State) (int, error) {
	m, err := engine.MapOf[string, Val](s, 1)
	if err != nil {
		return 0, err
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	engine.PushSeq(s, keys, engine.StrVal)
	return 1, nil
}

var Libseq = engine.NewLib([]engine.Function{
	engine.MakeFn("len", seq_len),
	engine.MakeFn("reverse", seq_reverse),
	engine.MakeFn("sum", seq_sum),
	engine.MakeFn("sorted", seq_sorted),
	engine.MakeFn("keys", seq_keys),
})
