//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package share

import (
	"encoding/binary"
	"fmt"
)

// ElementBits defines the bit width of ring elements.
const ElementBits = 64

// BinaryArithmetic implements a boolean replicated share of a ring
// element. Bit i of the element is bit i of the values.
type BinaryArithmetic struct {
	Value1 uint64
	Value2 uint64
}

func (s BinaryArithmetic) String() string {
	return fmt.Sprintf("(%016x,%016x)", s.Value1, s.Value2)
}

// BinaryArithFromConstant returns party p's boolean share of the fixed
// point constant v.
func BinaryArithFromConstant(v uint64, p Party) BinaryArithmetic {
	return BinaryArithFromRaw(uint64(Fixed(v)), p)
}

// BinaryArithFromRaw returns party p's boolean share of the raw ring
// element v.
func BinaryArithFromRaw(v uint64, p Party) BinaryArithmetic {
	switch p {
	case Party0:
		return BinaryArithmetic{
			Value1: v,
			Value2: v,
		}
	case Party1:
		return BinaryArithmetic{
			Value1: v,
		}
	default:
		return BinaryArithmetic{}
	}
}

// BinaryArithFromOwnAndOther creates a share from the party's own XOR
// component and the component it shares with the previous party.
func BinaryArithFromOwnAndOther(own, other uint64) BinaryArithmetic {
	return BinaryArithmetic{
		Value1: own ^ other,
		Value2: own,
	}
}

// BinaryArithFromBinary creates the fixed point share of the bit
// share b, that is, a share of 0 or 1.0.
func BinaryArithFromBinary(b Binary) BinaryArithmetic {
	var result BinaryArithmetic
	result.SetBit(FractionLength, b)
	return result
}

// BinaryArithFromChoice creates a share that has all bits set to the
// bit share c.
func BinaryArithFromChoice(c Binary) BinaryArithmetic {
	var result BinaryArithmetic
	if c.Value1 {
		result.Value1 = ^uint64(0)
	}
	if c.Value2 {
		result.Value2 = ^uint64(0)
	}
	return result
}

// BinaryArithFromBinaryString converts a 64 bit share vector into a
// BinaryArithmetic share.
func BinaryArithFromBinaryString(s BinaryString) BinaryArithmetic {
	if s.Length != ElementBits {
		panic(fmt.Sprintf("invalid share length %d", s.Length))
	}
	return BinaryArithmetic{
		Value1: binary.LittleEndian.Uint64(s.Value1),
		Value2: binary.LittleEndian.Uint64(s.Value2),
	}
}

// BinaryString converts the share into a 64 bit share vector.
func (s BinaryArithmetic) BinaryString() BinaryString {
	result := NewBinaryString(ElementBits)
	binary.LittleEndian.PutUint64(result.Value1, s.Value1)
	binary.LittleEndian.PutUint64(result.Value2, s.Value2)
	return result
}

// Bit returns the share of bit idx.
func (s BinaryArithmetic) Bit(idx int) Binary {
	return Binary{
		Value1: s.Value1&(1<<idx) != 0,
		Value2: s.Value2&(1<<idx) != 0,
	}
}

// SetBit sets the share of bit idx.
func (s *BinaryArithmetic) SetBit(idx int, b Binary) {
	s.Value1 &^= 1 << idx
	s.Value2 &^= 1 << idx
	if b.Value1 {
		s.Value1 |= 1 << idx
	}
	if b.Value2 {
		s.Value2 |= 1 << idx
	}
}

// XOR returns s^o.
func (s BinaryArithmetic) XOR(o BinaryArithmetic) BinaryArithmetic {
	return BinaryArithmetic{
		Value1: s.Value1 ^ o.Value1,
		Value2: s.Value2 ^ o.Value2,
	}
}

// Not returns the bitwise negation of s.
func (s BinaryArithmetic) Not() BinaryArithmetic {
	return BinaryArithmetic{
		Value1: s.Value1,
		Value2: ^s.Value2,
	}
}

// LeftShift shifts the shared element left by n bits.
func (s BinaryArithmetic) LeftShift(n int) BinaryArithmetic {
	return BinaryArithmetic{
		Value1: s.Value1 << n,
		Value2: s.Value2 << n,
	}
}

// Reconstruct reconstructs the element from the share and the Value1
// of the previous party.
func (s BinaryArithmetic) Reconstruct(prevValue1 uint64) uint64 {
	return s.Value2 ^ prevValue1
}

// BinaryArithSize defines the external size of a BinaryArithmetic
// share.
const BinaryArithSize = 16

// ExternalSize returns the encoded size of the share.
func (s BinaryArithmetic) ExternalSize() int {
	return BinaryArithSize
}
