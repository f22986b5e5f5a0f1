//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"github.com/markkurossi/abb/share"
)

// Triples holds shares of multiplication triples c = a AND b, one
// triple per bit position.
type Triples struct {
	A share.BinaryString
	B share.BinaryString
	C share.BinaryString
}

// Len returns the number of triples.
func (t Triples) Len() int {
	return t.A.Length
}

// Append appends the triples o to t. The length of t must be byte
// aligned.
func (t *Triples) Append(o Triples) {
	t.A.Append(o.A)
	t.B.Append(o.B)
	t.C.Append(o.C)
}

// Split splits the triples at the byte aligned index idx.
func (t Triples) Split(idx int) (Triples, Triples) {
	a0, a1 := t.A.Split(idx)
	b0, b1 := t.B.Split(idx)
	c0, c1 := t.C.Split(idx)
	return Triples{A: a0, B: b0, C: c0}, Triples{A: a1, B: b1, C: c1}
}

// Pad pads the triples to a byte boundary with shares of zero.
func (t *Triples) Pad() {
	for t.A.Length%8 != 0 {
		t.A.Push(share.Binary{})
		t.B.Push(share.Binary{})
		t.C.Push(share.Binary{})
	}
}

func (t *Triples) push(a, b, c share.Binary) {
	t.A.Push(a)
	t.B.Push(b)
	t.C.Push(c)
}

func (t Triples) get(idx int) (a, b, c share.Binary) {
	return t.A.Get(idx), t.B.Get(idx), t.C.Get(idx)
}
