//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package share

import (
	"encoding/binary"
	"io"
)

// The dealer functions create all three parties' shares of a plaintext
// value from a trusted source of randomness. They are used for input
// provisioning and testing; in a protocol run each party receives
// only its own share.

// DealArith splits x into three arithmetic shares.
func DealArith(x Element, r io.Reader) ([NumParties]Arithmetic, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return [NumParties]Arithmetic{}, err
	}
	s0 := Element(binary.LittleEndian.Uint64(buf[0:]))
	s1 := Element(binary.LittleEndian.Uint64(buf[8:]))
	s2 := x - s0 - s1

	return [NumParties]Arithmetic{
		ArithFromOwnAndOther(s0, s2),
		ArithFromOwnAndOther(s1, s0),
		ArithFromOwnAndOther(s2, s1),
	}, nil
}

// DealBinaryArith splits x into three boolean shares.
func DealBinaryArith(x uint64, r io.Reader) (
	[NumParties]BinaryArithmetic, error) {

	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return [NumParties]BinaryArithmetic{}, err
	}
	s0 := binary.LittleEndian.Uint64(buf[0:])
	s1 := binary.LittleEndian.Uint64(buf[8:])
	s2 := x ^ s0 ^ s1

	return [NumParties]BinaryArithmetic{
		BinaryArithFromOwnAndOther(s0, s2),
		BinaryArithFromOwnAndOther(s1, s0),
		BinaryArithFromOwnAndOther(s2, s1),
	}, nil
}

// DealBinaryString splits x into three boolean share vectors.
func DealBinaryString(x BitString, r io.Reader) (
	[NumParties]BinaryString, error) {

	var result [NumParties]BinaryString
	n := bytesFor(x.Length)

	var own [NumParties][]byte
	own[0] = make([]byte, n)
	own[1] = make([]byte, n)
	own[2] = make([]byte, n)
	if _, err := io.ReadFull(r, own[0]); err != nil {
		return result, err
	}
	if _, err := io.ReadFull(r, own[1]); err != nil {
		return result, err
	}
	for i := 0; i < n; i++ {
		own[2][i] = x.Value[i] ^ own[0][i] ^ own[1][i]
	}
	for p := 0; p < NumParties; p++ {
		prev := own[(p+NumParties-1)%NumParties]
		result[p] = NewBinaryString(x.Length)
		for i := 0; i < n; i++ {
			result[p].Value1[i] = own[p][i] ^ prev[i]
			result[p].Value2[i] = own[p][i]
		}
		clearTail(result[p].Value1, x.Length)
		clearTail(result[p].Value2, x.Length)
	}
	return result, nil
}

// ReconstructArith reconstructs the ring element from all parties'
// shares.
func ReconstructArith(s [NumParties]Arithmetic) Element {
	return s[Party0].Reconstruct(s[Party2].Value1)
}

// ReconstructBinary reconstructs the bit from all parties' shares.
func ReconstructBinary(s [NumParties]Binary) bool {
	return s[Party0].Reconstruct(s[Party2].Value1)
}

// ReconstructBinaryArith reconstructs the element from all parties'
// boolean shares.
func ReconstructBinaryArith(s [NumParties]BinaryArithmetic) uint64 {
	return s[Party0].Reconstruct(s[Party2].Value1)
}

// ReconstructBinaryString reconstructs the bit string from all
// parties' shares.
func ReconstructBinaryString(s [NumParties]BinaryString) BitString {
	return s[Party0].Reconstruct(s[Party2].Value1)
}

// Consistent tests that the three parties' boolean shares reconstruct
// to the same value for every party.
func Consistent(s [NumParties]BinaryString) bool {
	ref := ReconstructBinaryString(s)
	for p := Party1; p <= Party2; p++ {
		if !s[p].Reconstruct(s[p.Prev()].Value1).Equal(ref) {
			return false
		}
	}
	return true
}
