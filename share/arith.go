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

// FractionLength specifies the number of fractional bits in fixed
// point elements.
const FractionLength = 10

// Element is a plaintext value in the ring Z/2^64. All arithmetic
// wraps around.
type Element uint64

// FixedOne is the fixed point representation of 1.
const FixedOne Element = 1 << FractionLength

// Fixed returns the fixed point encoding of the integer v.
func Fixed(v uint64) Element {
	return Element(v) * FixedOne
}

// Neg returns the additive inverse of e.
func (e Element) Neg() Element {
	return 0 - e
}

// Unfixed drops the fractional bits of the fixed point value e.
func (e Element) Unfixed() Element {
	return e / FixedOne
}

// Float returns the fixed point value e as a float64.
func (e Element) Float() float64 {
	return float64(e) / float64(FixedOne)
}

// Arithmetic implements an additive replicated share of an Element.
type Arithmetic struct {
	Value1 Element
	Value2 Element
}

func (s Arithmetic) String() string {
	return fmt.Sprintf("(%d,%d)", s.Value1, s.Value2)
}

// ArithFromOwnAndOther creates a share from the party's own additive
// component and the component it shares with the previous party.
func ArithFromOwnAndOther(own, other Element) Arithmetic {
	return Arithmetic{
		Value1: own + other,
		Value2: own,
	}
}

// ArithFromConstant returns party p's share of the fixed point
// constant v. Only parties 0 and 1 embed the constant.
func ArithFromConstant(v uint64, p Party) Arithmetic {
	return ArithFromRaw(Fixed(v), p)
}

// ArithFromRaw returns party p's share of the ring element v.
func ArithFromRaw(v Element, p Party) Arithmetic {
	switch p {
	case Party0:
		return Arithmetic{
			Value1: v,
			Value2: v,
		}
	case Party1:
		return Arithmetic{
			Value1: v,
		}
	default:
		return Arithmetic{}
	}
}

// Add returns s+o.
func (s Arithmetic) Add(o Arithmetic) Arithmetic {
	return Arithmetic{
		Value1: s.Value1 + o.Value1,
		Value2: s.Value2 + o.Value2,
	}
}

// Sub returns s-o.
func (s Arithmetic) Sub(o Arithmetic) Arithmetic {
	return Arithmetic{
		Value1: s.Value1 - o.Value1,
		Value2: s.Value2 - o.Value2,
	}
}

// Neg returns -s.
func (s Arithmetic) Neg() Arithmetic {
	return Arithmetic{
		Value1: s.Value1.Neg(),
		Value2: s.Value2.Neg(),
	}
}

// MulConst returns c*s. The result carries the combined scale of c
// and s.
func (s Arithmetic) MulConst(c Element) Arithmetic {
	return Arithmetic{
		Value1: s.Value1 * c,
		Value2: s.Value2 * c,
	}
}

// AddConst returns s+c for party p's share.
func (s Arithmetic) AddConst(c Element, p Party) Arithmetic {
	return s.Add(ArithFromRaw(c, p))
}

// Reconstruct reconstructs the ring element from the share and the
// Value1 of the previous party.
func (s Arithmetic) Reconstruct(prevValue1 Element) Element {
	return s.Value2 + prevValue1
}

// ReconstructFixed reconstructs the share as a fixed point value and
// drops the fractional bits.
func (s Arithmetic) ReconstructFixed(prevValue1 Element) Element {
	return s.Reconstruct(prevValue1).Unfixed()
}

// ArithSize defines the external size of an Arithmetic share.
const ArithSize = 16

// ExternalSize returns the encoded size of the share.
func (s Arithmetic) ExternalSize() int {
	return ArithSize
}

// AppendBytes appends the share encoding to buf.
func (s Arithmetic) AppendBytes(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Value1))
	return binary.LittleEndian.AppendUint64(buf, uint64(s.Value2))
}
