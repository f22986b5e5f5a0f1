//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package prg

import (
	"github.com/markkurossi/abb/share"
)

// CommonRandomness implements the correlated randomness of a party.
// The party shares the key of the prev stream with the previous party
// and the key of the next stream with the next party. The previous
// party's next stream is therefore this party's prev stream.
//
// Every draw advances both streams (except the one-sided draws) so
// that all parties stay in sync as long as they issue the same draws
// in the same order.
type CommonRandomness struct {
	prev *Stream
	next *Stream
}

// NewCommonRandomness creates the common randomness from the key
// shared with the previous party and the key shared with the next
// party.
func NewCommonRandomness(keyPrev, keyNext Key) *CommonRandomness {
	return &CommonRandomness{
		prev: NewStream(keyPrev),
		next: NewStream(keyNext),
	}
}

// RandomZeroBit returns this party's share of a three-way XOR sharing
// of zero.
func (cr *CommonRandomness) RandomZeroBit() bool {
	return (cr.next.Byte()^cr.prev.Byte())&1 != 0
}

// RandomZero returns n bytes of this party's three-way XOR sharing of
// zero.
func (cr *CommonRandomness) RandomZero(n int) []byte {
	b := cr.next.Bytes(n)
	a := cr.prev.Bytes(n)
	for i := range b {
		b[i] ^= a[i]
	}
	return b
}

// RandomZeroElement returns this party's share of a three-way additive
// sharing of zero.
func (cr *CommonRandomness) RandomZeroElement() share.Element {
	b := cr.next.Uint64()
	a := cr.prev.Uint64()
	return share.Element(b - a)
}

// RandomBit returns a replicated share of a random bit.
func (cr *CommonRandomness) RandomBit() share.Binary {
	b := cr.next.Byte()&1 != 0
	a := cr.prev.Byte()&1 != 0
	return share.Binary{
		Value1: a != b,
		Value2: b,
	}
}

// RandomByte returns a replicated share of a random byte.
func (cr *CommonRandomness) RandomByte() share.Byte {
	b := cr.next.Byte()
	a := cr.prev.Byte()
	return share.Byte{
		Value1: a ^ b,
		Value2: b,
	}
}

// RandomBinaryString returns a replicated share of l random bits.
func (cr *CommonRandomness) RandomBinaryString(l int) share.BinaryString {
	n := (l + 7) / 8
	value2 := cr.next.Bytes(n)
	value1 := cr.prev.Bytes(n)
	for i := range value1 {
		value1[i] ^= value2[i]
	}
	if l%8 != 0 {
		mask := byte(1<<(l%8)) - 1
		value1[n-1] &= mask
		value2[n-1] &= mask
	}
	return share.BinaryString{
		Length: l,
		Value1: value1,
		Value2: value2,
	}
}

// RandomBits returns a replicated share of n random bits.
func (cr *CommonRandomness) RandomBits(n int) share.BinaryString {
	return cr.RandomBinaryString(n)
}

// RandomBytes returns replicated shares of n random bytes.
func (cr *CommonRandomness) RandomBytes(n int) []share.Byte {
	next := cr.next.Bytes(n)
	prev := cr.prev.Bytes(n)
	result := make([]share.Byte, n)
	for i := range result {
		result[i] = share.Byte{
			Value1: prev[i] ^ next[i],
			Value2: next[i],
		}
	}
	return result
}

// RandomArith returns a replicated share of a random ring element.
func (cr *CommonRandomness) RandomArith() share.Arithmetic {
	b := share.Element(cr.next.Uint64())
	a := share.Element(cr.prev.Uint64())
	return share.ArithFromOwnAndOther(b, a)
}

// PrevBytes draws n bytes known only to this party and the previous
// party.
func (cr *CommonRandomness) PrevBytes(n int) []byte {
	return cr.prev.Bytes(n)
}

// NextBytes draws n bytes known only to this party and the next party.
func (cr *CommonRandomness) NextBytes(n int) []byte {
	return cr.next.Bytes(n)
}

// PrevUint64 draws an uint64 known only to this party and the previous
// party.
func (cr *CommonRandomness) PrevUint64() uint64 {
	return cr.prev.Uint64()
}

// NextUint64 draws an uint64 known only to this party and the next
// party.
func (cr *CommonRandomness) NextUint64() uint64 {
	return cr.next.Uint64()
}

// Deal derives the common randomness of all three parties from a
// single seed. It is used in tests and in single-process deployments
// where one trusted process hosts all parties.
func Deal(seed Key) [share.NumParties]*CommonRandomness {
	s := NewStream(seed)
	var keys [share.NumParties]Key
	for i := range keys {
		s.Read(keys[i][:])
	}
	var result [share.NumParties]*CommonRandomness
	for _, p := range share.Parties {
		result[p] = NewCommonRandomness(keys[p.Prev()], keys[p])
	}
	return result
}
