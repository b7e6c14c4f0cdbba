// package std provides the native libraries shipped with the engine.
package std

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/corposant/stevedore/engine"
)

func text_nfc(s *engine.State) (int, error) {
	str, err := engine.Check1[string](s, "nfc", false)
	if err != nil {
		return 0, err
	}

	s.Push(norm.NFC.String(str))
	return 1, nil
}

func text_nfd(s *engine.State) (int, error) {
	str, err := engine.Check1[string](s, "nfd", false)
	if err != nil {
		return 0, err
	}

	s.Push(norm.NFD.String(str))
	return 1, nil
}

func text_lower(s *engine.State) (int, error) {
	str, err := engine.Check1[string](s, "lower", false)
	if err != nil {
		return 0, err
	}

	s.Push(strings.ToLower(str))
	return 1, nil
}

func text_upper(s *engine.State) (int, error) {
	str, err := engine.Check1[string](s, "upper", false)
	if err != nil {
		return 0, err
	}

	s.Push(strings.ToUpper(str))
	return 1, nil
}

func text_trim(s *engine.State) (int, error) {
	str, err := engine.Check1[string](s, "trim", false)
	if err != nil {
		return 0, err
	}

	s.Push(strings.TrimSpace(str))
	return 1, nil
}

func text_split(s *engine.State) (int, error) {
	str, sep, err := engine.Check2[string, string](s, "split", false)
	if err != nil {
		return 0, err
	}

	engine.PushSeq(s, strings.Split(str, sep), engine.StrVal)
	return 1, nil
}

func text_join(s *engine.State) (int, error) {
	var sep string
	if s.Top() > 1 {
		v, err := engine.Check1[string](s, "join", false)
		if err != nil {
			return 0, err
		}
		sep = v
	}

	parts, err := engine.SeqOf[string](s, 1)
	if err != nil {
		return 0, err
	}

	s.Push(strings.Join(parts, sep))
	return 1, nil
}

var Libtext = engine.NewLib([]engine.Function{
	engine.MakeFn("nfc", text_nfc),
	engine.MakeFn("nfd", text_nfd),
	engine.MakeFn("lower", text_lower),
	engine.MakeFn("upper", text_upper),
	engine.MakeFn("trim", text_trim),
	engine.MakeFn("split", text_split),
	engine.MakeFn("join", text_join),
})
