//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/share"
)

// FullAdderInput holds the operands of one full adder instance.
type FullAdderInput struct {
	A     share.BinaryString
	B     share.BinaryString
	Carry share.BinaryString
}

// FullAdder computes the bitwise full adder of a, b, and carry. It
// returns the carry and sum bit vectors. The carry is not shifted.
func (s *Session) FullAdder(a, b, carry share.BinaryString) (
	share.BinaryString, share.BinaryString, error) {

	carries, sums, err := s.BatchFullAdder([]FullAdderInput{
		{
			A:     a,
			B:     b,
			Carry: carry,
		},
	})
	if err != nil {
		return share.BinaryString{}, share.BinaryString{}, err
	}
	return carries[0], sums[0], nil
}

// BatchFullAdder computes the full adders of all inputs in one
// round.
func (s *Session) BatchFullAdder(inputs []FullAdderInput) (
	carries, sums []share.BinaryString, err error) {

	as := make([]share.BinaryString, 0, 2*len(inputs))
	bs := make([]share.BinaryString, 0, 2*len(inputs))
	sums = make([]share.BinaryString, len(inputs))
	for i, in := range inputs {
		temp := in.A.XOR(in.B)
		sums[i] = temp.XOR(in.Carry)
		as = append(as, in.A, temp)
		bs = append(bs, in.B, in.Carry)
	}
	products, err := s.BatchAND(as, bs)
	if err != nil {
		return nil, nil, err
	}
	carries = make([]share.BinaryString, len(inputs))
	for i := range inputs {
		carries[i] = products[2*i].XOR(products[2*i+1])
	}
	return carries, sums, nil
}

// PPA adds x and y with the parallel prefix adder. The length of the
// operands must be a power of two. PPA returns the sum and the carry
// out bit.
func (s *Session) PPA(x, y share.BinaryString) (
	share.BinaryString, share.Binary, error) {

	sums, gs, err := s.ppa([]share.BinaryString{x}, []share.BinaryString{y})
	if err != nil {
		return share.BinaryString{}, share.Binary{}, err
	}
	return sums[0], gs[0].Get(gs[0].Length - 1), nil
}

// BatchPPA adds xs[i] and ys[i] for all i. All operands must have the
// same power of two length.
func (s *Session) BatchPPA(xs, ys []share.BinaryString) (
	[]share.BinaryString, error) {

	sums, _, err := s.ppa(xs, ys)
	return sums, err
}

func (s *Session) ppa(xs, ys []share.BinaryString) (
	sums, gs []share.BinaryString, err error) {

	if len(xs) != len(ys) {
		return nil, nil, errors.Newf("PPA: operand count mismatch: %d != %d",
			len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, nil, nil
	}
	n := xs[0].Length
	if n == 0 || bits.OnesCount(uint(n)) != 1 {
		return nil, nil, errors.Newf("PPA: length %d is not a power of two",
			n)
	}
	for i := range xs {
		if xs[i].Length != n || ys[i].Length != n {
			return nil, nil, errors.Newf("PPA: operand %d length mismatch", i)
		}
	}

	count := len(xs)
	ps := make([]share.BinaryString, count)
	p0 := make([]share.BinaryString, count)
	for i := range xs {
		ps[i] = xs[i].XOR(ys[i])
		p0[i] = ps[i].Clone()
	}
	gs, err = s.BatchAND(xs, ys)
	if err != nil {
		return nil, nil, err
	}

	as := make([]share.BinaryString, 2*count)
	bs := make([]share.BinaryString, 2*count)
	gHigh := make([]share.BinaryString, count)

	for d := 1; d < n; d <<= 1 {
		for i := 0; i < count; i++ {
			pHigh := ps[i].Slice(d, n)
			as[2*i] = gs[i].Slice(0, n-d)
			bs[2*i] = pHigh
			as[2*i+1] = ps[i].Slice(0, n-d)
			bs[2*i+1] = pHigh
			gHigh[i] = gs[i].Slice(d, n)
		}
		products, err := s.BatchAND(as, bs)
		if err != nil {
			return nil, nil, err
		}
		gLow := make([]share.BinaryString, count)
		for i := range gLow {
			gLow[i] = products[2*i]
		}
		ors, err := s.BatchOR(gLow, gHigh)
		if err != nil {
			return nil, nil, err
		}
		for i := 0; i < count; i++ {
			pNew := products[2*i+1]
			for j := d; j < n; j++ {
				ps[i].Set(j, pNew.Get(j-d))
				gs[i].Set(j, ors[i].Get(j-d))
			}
		}
	}

	sums = make([]share.BinaryString, count)
	for i := range sums {
		sums[i] = p0[i].XOR(shiftLeft(gs[i], 1))
	}
	return sums, gs, nil
}

// shiftLeft shifts the bit vector toward the higher indices by n bits
// and truncates it to its length.
func shiftLeft(x share.BinaryString, n int) share.BinaryString {
	result := share.NewBinaryString(x.Length)
	for i := n; i < x.Length; i++ {
		result.Set(i, x.Get(i-n))
	}
	return result
}
