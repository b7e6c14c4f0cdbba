package std

import (
	"encoding/binary"
	"errors"
	"math"

	. "github.com/corposant/stevedore/types"

	"github.com/corposant/stevedore/engine"
)

var errOOB = errors.New("buffer access out of bounds")

func buffer_create(s *engine.State) (int, error) {
	size, err := engine.Check1[int](s, "create", false)
	if err != nil {
		return 0, err
	}
	if size < 0 {
		return 0, errors.New("buffer size out of range")
	}

	b := make(Buffer, size)
	s.Push(&b)
	return 1, nil
}

func buffer_fromstring(s *engine.State) (int, error) {
	str, err := engine.Check1[string](s, "fromstring", false)
	if err != nil {
		return 0, err
	}

	b := Buffer(str)
	s.Push(&b)
	return 1, nil
}

func buffer_tostring(s *engine.State) (int, error) {
	b, err := engine.Check1[*Buffer](s, "tostring", false)
	if err != nil {
		return 0, err
	}

	s.Push(string(*b))
	return 1, nil
}

func buffer_len(s *engine.State) (int, error) {
	b, err := engine.Check1[*Buffer](s, "len", false)
	if err != nil {
		return 0, err
	}

	s.Push(float64(len(*b)))
	return 1, nil
}

func readArgs(s *engine.State, fn string) (Buffer, int, error) {
	b, offset, err := engine.Check2[*Buffer, int](s, fn, false)
	if err != nil {
		return nil, 0, err
	}
	return *b, offset, nil
}

func buffer_readi8(s *engine.State) (int, error) {
	b, offset, err := readArgs(s, "readi8")
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+1 > len(b) {
		return 0, errOOB
	}

	s.Push(float64(int8(b[offset])))
	return 1, nil
}

func buffer_readu8(s *engine.State) (int, error) {
	b, offset, err := readArgs(s, "readu8")
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+1 > len(b) {
		return 0, errOOB
	}

	s.Push(float64(b[offset]))
	return 1, nil
}

func buffer_readu16(s *engine.State) (int, error) {
	b, offset, err := readArgs(s, "readu16")
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+2 > len(b) {
		return 0, errOOB
	}

	s.Push(float64(binary.LittleEndian.Uint16(b[offset : offset+2])))
	return 1, nil
}

func buffer_readu32(s *engine.State) (int, error) {
	b, offset, err := readArgs(s, "readu32")
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+4 > len(b) {
		return 0, errOOB
	}

	s.Push(float64(binary.LittleEndian.Uint32(b[offset : offset+4])))
	return 1, nil
}

func buffer_readf32(s *engine.State) (int, error) {
	b, offset, err := readArgs(s, "readf32")
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+4 > len(b) {
		return 0, errOOB
	}

	s.Push(float64(math.Float32frombits(binary.LittleEndian.Uint32(b[offset : offset+4]))))
	return 1, nil
}

func buffer_readf64(s *engine.State) (int, error) {
	b, offset, err := readArgs(s, "readf64")
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+8 > len(b) {
		return 0, errOOB
	}

	s.Push(math.Float64frombits(binary.LittleEndian.Uint64(b[offset : offset+8])))
	return 1, nil
}

type num interface {
	int8 | int16 | int32 | uint8 | uint16 | uint32 | float32 | float64
}

func writeArgs[V num](s *engine.State, fn string) (Buffer, int, V, error) {
	b, offset, value, err := engine.Check3[*Buffer, int, float64](s, fn, false)
	if err != nil {
		return nil, 0, 0, err
	}
	return *b, offset, V(value), nil
}

func buffer_writeu8(s *engine.State) (int, error) {
	b, offset, value, err := writeArgs[uint8](s, "writeu8")
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+1 > len(b) {
		return 0, errOOB
	}

	b[offset] = value
	return 0, nil
}

func buffer_writeu16(s *engine.State) (int, error) {
	b, offset, value, err := writeArgs[uint16](s, "writeu16")
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+2 > len(b) {
		return 0, errOOB
	}

	binary.LittleEndian.PutUint16(b[offset:offset+2], value)
	return 0, nil
}

func buffer_writeu32(s *engine.State) (int, error) {
	b, offset, value, err := writeArgs[uint32](s, "writeu32")
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+4 > len(b) {
		return 0, errOOB
	}

	binary.LittleEndian.PutUint32(b[offset:offset+4], value)
	return 0, nil
}

func buffer_writef32(s *engine.State) (int, error) {
	b, offset, value, err := writeArgs[float32](s, "writef32")
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+4 > len(b) {
		return 0, errOOB
	}

	binary.LittleEndian.PutUint32(b[offset:offset+4], math.Float32bits(value))
	return 0, nil
}

func buffer_writef64(s *engine.State) (int, error) {
	b, offset, value, err := writeArgs[float64](s, "writef64")
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+8 > len(b) {
		return 0, errOOB
	}

	binary.LittleEndian.PutUint64(b[offset:offset+8], math.Float64bits(value))
	return 0, nil
}

func buffer_readstring(s *engine.State) (int, error) {
	b, offset, count, err := engine.Check3[*Buffer, int, int](s, "readstring", false)
	if err != nil {
		return 0, err
	}
	if offset < 0 || count < 0 || offset+count > len(*b) {
		return 0, errOOB
	}

	s.Push(string((*b)[offset : offset+count]))
	return 1, nil
}

func buffer_writestring(s *engine.State) (int, error) {
	b, offset, value, err := engine.Check3[*Buffer, int, string](s, "writestring", false)
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset+len(value) > len(*b) {
		return 0, errOOB
	}

	copy((*b)[offset:offset+len(value)], value)
	return 0, nil
}

func buffer_fill(s *engine.State) (int, error) {
	// the optional count comes off the top before the fixed window converts
	count := -1
	if s.Top() > 3 {
		c, err := engine.Check1[int](s, "fill", false)
		if err != nil {
			return 0, err
		}
		count = c
		s.Pop(1)
	}

	b, offset, value, err := writeArgs[uint8](s, "fill")
	if err != nil {
		return 0, err
	}
	if count < 0 {
		count = len(b) - offset
	}
	if offset < 0 || count < 0 || offset+count > len(b) {
		return 0, errOOB
	}

	for i := range count {
		b[offset+i] = value
	}
	return 0, nil
}

var Libbuffer = engine.NewLib([]engine.Function{
	engine.MakeFn("create", buffer_create),
	engine.MakeFn("fromstring", buffer_fromstring),
	engine.MakeFn("tostring", buffer_tostring),
	engine.MakeFn("len", buffer_len),
	engine.MakeFn("readi8", buffer_readi8),
	engine.MakeFn("readu8", buffer_readu8),
	engine.MakeFn("readu16", buffer_readu16),
	engine.MakeFn("readu32", buffer_readu32),
	engine.MakeFn("readf32", buffer_readf32),
	engine.MakeFn("readf64", buffer_readf64),
	engine.MakeFn("writeu8", buffer_writeu8),
	engine.MakeFn("writeu16", buffer_writeu16),
	engine.MakeFn("writeu32", buffer_writeu32),
	engine.MakeFn("writef32", buffer_writef32),
	engine.MakeFn("writef64", buffer_writef64),
	engine.MakeFn("readstring", buffer_readstring),
	engine.MakeFn("writestring", buffer_writestring),
	engine.MakeFn("fill", buffer_fill),
})
