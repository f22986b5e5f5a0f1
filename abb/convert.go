//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"github.com/markkurossi/abb/prg"
	"github.com/markkurossi/abb/share"
)

// A2B converts the arithmetic share into a boolean share of the same
// ring element.
func (s *Session) A2B(x share.Arithmetic) (share.BinaryArithmetic, error) {
	result, err := s.BatchA2B([]share.Arithmetic{x})
	if err != nil {
		return share.BinaryArithmetic{}, err
	}
	return result[0], nil
}

// BatchA2B converts the arithmetic shares into boolean shares. The
// additive components s0, s1, and s2 of each element are shared as
// bit vectors and added with a full adder and a parallel prefix
// adder.
func (s *Session) BatchA2B(xs []share.Arithmetic) (
	[]share.BinaryArithmetic, error) {

	inputs := make([]FullAdderInput, len(xs))
	for i, x := range xs {
		inputs[i] = a2bInput(x, s.setup.Party)
	}
	carries, sums, err := s.BatchFullAdder(inputs)
	if err != nil {
		return nil, err
	}
	for i := range carries {
		carries[i] = shiftLeft(carries[i], 1)
	}
	added, err := s.BatchPPA(carries, sums)
	if err != nil {
		return nil, err
	}
	result := make([]share.BinaryArithmetic, len(added))
	for i, a := range added {
		result[i] = share.BinaryArithFromBinaryString(a)
	}
	return result, nil
}

// a2bInput assigns the party's additive components to the full adder
// operands. Operand A carries s0, B carries s1, and Carry carries s2.
func a2bInput(x share.Arithmetic, p share.Party) FullAdderInput {
	own := uint64(x.Value2)
	x1 := share.BinaryArithmetic{
		Value1: own,
		Value2: own,
	}.BinaryString()
	x2 := share.NewBinaryString(share.ElementBits)
	x3 := share.BinaryArithmetic{
		Value1: uint64(x.Value1 - x.Value2),
	}.BinaryString()

	switch p {
	case share.Party0:
		return FullAdderInput{A: x1, B: x2, Carry: x3}
	case share.Party1:
		return FullAdderInput{A: x3, B: x1, Carry: x2}
	default:
		return FullAdderInput{A: x2, B: x3, Carry: x1}
	}
}

// B2A converts the boolean share into an arithmetic share of the same
// ring element.
func (s *Session) B2A(x share.BinaryArithmetic) (share.Arithmetic, error) {
	result, err := s.BatchB2A([]share.BinaryArithmetic{x})
	if err != nil {
		return share.Arithmetic{}, err
	}
	return result[0], nil
}

// BatchB2A converts the boolean shares into arithmetic shares. The
// parties add two random masks x2 and x3 to each element in the
// boolean domain and open the masked sum x1 to parties 0 and 1. The
// value of x2 is known to parties 1 and 2, and the value of x3 to
// parties 0 and 2, so x = x1 - x2 - x3 is a replicated additive
// sharing.
func (s *Session) BatchB2A(xs []share.BinaryArithmetic) (
	[]share.Arithmetic, error) {

	masks := s.b2aMasks(len(xs))

	inputs := make([]FullAdderInput, len(xs))
	for i, x := range xs {
		inputs[i] = FullAdderInput{
			A:     x.BinaryString(),
			B:     masks[i].x2.BinaryString(),
			Carry: masks[i].x3.BinaryString(),
		}
	}
	carries, sums, err := s.BatchFullAdder(inputs)
	if err != nil {
		return nil, err
	}
	for i := range carries {
		carries[i] = shiftLeft(carries[i], 1)
	}
	added, err := s.BatchPPA(carries, sums)
	if err != nil {
		return nil, err
	}
	masked := make([]share.BinaryArithmetic, len(added))
	for i, a := range added {
		masked[i] = share.BinaryArithFromBinaryString(a)
	}
	x1, err := s.OpenToParties01(masked)
	if err != nil {
		return nil, err
	}

	result := make([]share.Arithmetic, len(xs))
	for i, m := range masks {
		negX2 := share.Element(m.x2Value).Neg()
		negX3 := share.Element(m.x3Value).Neg()
		switch s.setup.Party {
		case share.Party0:
			result[i] = share.ArithFromOwnAndOther(share.Element(x1[i]), negX3)
		case share.Party1:
			result[i] = share.ArithFromOwnAndOther(negX2, share.Element(x1[i]))
		default:
			result[i] = share.ArithFromOwnAndOther(negX3, negX2)
		}
	}
	return result, nil
}

type b2aMask struct {
	x2      share.BinaryArithmetic
	x3      share.BinaryArithmetic
	x2Value uint64
	x3Value uint64
}

// b2aMasks creates the boolean shares of the masks. Each mask is the
// XOR of three components. Two of them come from a public stream and
// the third from the pairwise stream of the parties that learn the
// mask. The mask values are zero for the party that does not know
// them.
func (s *Session) b2aMasks(n int) []b2aMask {
	public := prg.NewStream(prg.Key{})
	cr := s.state.cr

	result := make([]b2aMask, n)
	for i := range result {
		x2s1 := public.Uint64()
		x2s3 := public.Uint64()
		x3s1 := public.Uint64()
		x3s2 := public.Uint64()

		m := &result[i]
		switch s.setup.Party {
		case share.Party0:
			x3s3 := cr.PrevUint64()
			m.x2 = share.BinaryArithmetic{Value1: x2s3 ^ x2s1, Value2: x2s1}
			m.x3 = share.BinaryArithmetic{Value1: x3s3 ^ x3s1, Value2: x3s1}
			m.x3Value = x3s1 ^ x3s2 ^ x3s3

		case share.Party1:
			x2s2 := cr.NextUint64()
			m.x2 = share.BinaryArithmetic{Value1: x2s2 ^ x2s1, Value2: x2s2}
			m.x3 = share.BinaryArithmetic{Value1: x3s1 ^ x3s2, Value2: x3s2}
			m.x2Value = x2s1 ^ x2s2 ^ x2s3

		default:
			x2s2 := cr.PrevUint64()
			x3s3 := cr.NextUint64()
			m.x2 = share.BinaryArithmetic{Value1: x2s2 ^ x2s3, Value2: x2s3}
			m.x3 = share.BinaryArithmetic{Value1: x3s3 ^ x3s2, Value2: x3s3}
			m.x2Value = x2s1 ^ x2s2 ^ x2s3
			m.x3Value = x3s1 ^ x3s2 ^ x3s3
		}
	}
	return result
}
