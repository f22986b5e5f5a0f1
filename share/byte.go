//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package share

import (
	"fmt"
	"math/big"
)

// Byte implements a boolean replicated share of a byte.
type Byte struct {
	Value1 byte
	Value2 byte
}

// ByteFromConstant returns party p's share of the constant byte c.
func ByteFromConstant(c byte, p Party) Byte {
	switch p {
	case Party0:
		return Byte{
			Value1: c,
			Value2: c,
		}
	case Party1:
		return Byte{
			Value1: c,
		}
	default:
		return Byte{}
	}
}

// ByteFromBinaryString converts the first 8 bits of s into a byte
// share.
func ByteFromBinaryString(s BinaryString) Byte {
	return Byte{
		Value1: s.Value1[0],
		Value2: s.Value2[0],
	}
}

// BinaryString converts the byte share into an 8 bit share vector.
func (s Byte) BinaryString() BinaryString {
	return BinaryString{
		Length: 8,
		Value1: []byte{s.Value1},
		Value2: []byte{s.Value2},
	}
}

// XOR returns s^o.
func (s Byte) XOR(o Byte) Byte {
	return Byte{
		Value1: s.Value1 ^ o.Value1,
		Value2: s.Value2 ^ o.Value2,
	}
}

// Bit returns the share of bit idx.
func (s Byte) Bit(idx int) Binary {
	return Binary{
		Value1: s.Value1&(1<<idx) != 0,
		Value2: s.Value2&(1<<idx) != 0,
	}
}

// Reconstruct reconstructs the byte from the share and the Value1 of
// the previous party.
func (s Byte) Reconstruct(prevValue1 byte) byte {
	return s.Value2 ^ prevValue1
}

// ECPrime is the field prime 2^255-19 of the EC shares.
var ECPrime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 255)
	return p.Sub(p, big.NewInt(19))
}()

// ECSize defines the external size of an EC share.
const ECSize = 64

// EC implements an additive replicated share of an element of the
// field GF(2^255-19).
type EC struct {
	Value1 *big.Int
	Value2 *big.Int
}

// ECFromConstant returns party p's share of the field element c.
func ECFromConstant(c *big.Int, p Party) EC {
	v := new(big.Int).Mod(c, ECPrime)
	switch p {
	case Party0:
		return EC{
			Value1: v,
			Value2: new(big.Int).Set(v),
		}
	case Party1:
		return EC{
			Value1: v,
			Value2: new(big.Int),
		}
	default:
		return EC{
			Value1: new(big.Int),
			Value2: new(big.Int),
		}
	}
}

// ECFromOwnAndOther creates a share from the party's own additive
// component and the component it shares with the previous party.
func ECFromOwnAndOther(own, other *big.Int) EC {
	v1 := new(big.Int).Add(own, other)
	return EC{
		Value1: v1.Mod(v1, ECPrime),
		Value2: new(big.Int).Mod(own, ECPrime),
	}
}

// Add returns s+o.
func (s EC) Add(o EC) EC {
	v1 := new(big.Int).Add(s.Value1, o.Value1)
	v2 := new(big.Int).Add(s.Value2, o.Value2)
	return EC{
		Value1: v1.Mod(v1, ECPrime),
		Value2: v2.Mod(v2, ECPrime),
	}
}

// Sub returns s-o.
func (s EC) Sub(o EC) EC {
	v1 := new(big.Int).Sub(s.Value1, o.Value1)
	v2 := new(big.Int).Sub(s.Value2, o.Value2)
	return EC{
		Value1: v1.Mod(v1, ECPrime),
		Value2: v2.Mod(v2, ECPrime),
	}
}

// Reconstruct reconstructs the field element from the share and the
// Value1 of the previous party.
func (s EC) Reconstruct(prevValue1 *big.Int) *big.Int {
	v := new(big.Int).Add(s.Value2, prevValue1)
	return v.Mod(v, ECPrime)
}

func (s EC) String() string {
	return fmt.Sprintf("(%x,%x)", s.Value1, s.Value2)
}
