package types

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// seqKey reports whether k addresses the list part: an integral number >= 1.
func seqKey(k Val) (int, bool) {
	f, ok := k.(float64)
	if !ok {
		return 0, false
	}

	i := int(f)
	return i, 1 <= i && float64(i) == f
}

// Ordering for hash keys during iteration. It doesn't have to be pretty, it
// has to be stable.
func hashKeySort(a, b Val) int {
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// Table represents an engine table, with resizeable list and hash parts.
// Engine type `table`
// As tables are compared by reference, this type must always be used as a
// pointer.
//
// The list part holds the values at consecutive integer keys from 1 up to
// the first gap; it never contains nil. Everything else lives in the hash
// part. Writes migrate values between the two parts to preserve that split.
type Table struct {
	List     []Val
	Hash     map[Val]Val
	Readonly bool
}

// Len returns the border of the table: the number of values stored at
// consecutive integer keys from 1 up to the first gap.
func (t *Table) Len() int {
	return len(t.List)
}

// putHash updates or deletes a key-value pair in the hash part. Storing nil
// deletes the key.
func (t *Table) putHash(k, v Val) {
	if t.Hash == nil {
		if v == nil {
			return
		}
		t.Hash = map[Val]Val{k: v}
	} else if v == nil {
		delete(t.Hash, k)
	} else {
		t.Hash[k] = v
	}
}

// drainHash moves hash entries at keys l+2, l+3, ... into the list part
// after an append at l+1 closed the gap below them.
func (t *Table) drainHash(l int) {
	if t.Hash == nil {
		return
	}

	for k := float64(l + 2); ; k++ {
		v, ok := t.Hash[k]
		if !ok {
			return
		}
		t.List = append(t.List, v)
		delete(t.Hash, k)
	}
}

// SetInt stores v at integer key i, growing, cutting or migrating between
// the list and hash parts as needed. Storing nil deletes the key. Writes do
// not consult the readonly flag; callers enforce it.
func (t *Table) SetInt(i int, v Val) {
	if t.List == nil {
		if i == 1 && v != nil {
			t.List = []Val{v}

			t.drainHash(0)
			return
		}
	} else if l := len(t.List); i < l+1 {
		if 1 <= i {
			if v != nil {
				t.List[i-1] = v
				return
			}

			// cut the list at the new gap
			after := t.List[i:]
			t.List = t.List[:i-1]

			// keys above the gap move to the hash part
			for j, av := range after {
				t.putHash(float64(i+j+1), av)
			}
			return
		}
	} else if i == l+1 && v != nil {
		// append at the border
		t.List = append(t.List, v)

		t.drainHash(l)
		return
	}

	t.putHash(float64(i), v)
}

// Set stores v at any key, routing integral number keys >= 1 into the list
// part. Writes do not consult the readonly flag; callers enforce it.
func (t *Table) Set(k, v Val) {
	if i, ok := seqKey(k); ok {
		t.SetInt(i, v)
		return
	}
	t.putHash(k, v)
}

// GetInt returns the value at integer key i, or nil when absent.
func (t *Table) GetInt(i int) Val {
	if 1 <= i && i <= len(t.List) {
		return t.List[i-1]
	}
	return t.GetHash(float64(i))
}

// GetHash returns the value at a key, searching only the hash part.
func (t *Table) GetHash(k Val) Val {
	if t.Hash == nil {
		return nil
	}
	return t.Hash[k]
}

// Get returns the value at a key, or nil when absent.
func (t *Table) Get(k Val) Val {
	if i, ok := seqKey(k); ok {
		return t.GetInt(i)
	}
	return t.GetHash(k)
}

// Iter returns an iterator over the table, yielding key-value pairs in a
// deterministic order: the list part first, then hash entries sorted by key.
func (t *Table) Iter() iter.Seq2[Val, Val] {
	return func(y func(Val, Val) bool) {
		for i, v := range t.List {
			if !y(float64(i+1), v) {
				return
			}
		}
		if t.Hash == nil {
			return
		}

		keys := make([]Val, 0, len(t.Hash))
		for k := range t.Hash {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, hashKeySort)
		for _, k := range keys {
			if !y(k, t.Hash[k]) {
				return
			}
		}
	}
}

// Next returns the key-value pair following k in iteration order. A nil k
// asks for the first pair; ok reports false once the table is exhausted or
// when k is not present.
func (t *Table) Next(k Val) (nk, nv Val, ok bool) {
	next, stop := iter.Pull2(t.Iter())
	defer stop()

	if k == nil {
		nk, nv, ok = next()
		return
	}
	for {
		ck, _, cok := next()
		if !cok {
			return nil, nil, false
		}
		if ck == k {
			nk, nv, ok = next()
			return
		}
	}
}
