//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package prg

import (
	"testing"

	"github.com/markkurossi/abb/share"
	"github.com/stretchr/testify/require"
)

func TestStreamDeterministic(t *testing.T) {
	var key Key
	key[0] = 42

	a := NewStream(key)
	b := NewStream(key)
	require.Equal(t, a.Bytes(100), b.Bytes(100))
	require.Equal(t, a.Uint64(), b.Uint64())

	key[0] = 43
	c := NewStream(key)
	require.NotEqual(t, a.Bytes(32), c.Bytes(32))
}

func TestIntn(t *testing.T) {
	s := NewStream(Key{})
	for i := 0; i < 1000; i++ {
		v := s.Intn(7)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 7)
	}
	require.Equal(t, 0, s.Intn(1))
	require.Panics(t, func() {
		s.Intn(0)
	})
}

func TestPerm(t *testing.T) {
	perm := NewStream(Key{1}).Perm(100)
	seen := make(map[int]bool)
	for _, v := range perm {
		require.False(t, seen[v], "duplicate %d", v)
		seen[v] = true
	}
	require.Len(t, seen, 100)
	require.Equal(t, perm, NewStream(Key{1}).Perm(100))
}

func TestRandomZero(t *testing.T) {
	cr := Deal(Key{})

	var zeros [share.NumParties][]byte
	for _, p := range share.Parties {
		zeros[p] = cr[p].RandomZero(64)
	}
	for i := 0; i < 64; i++ {
		require.Equal(t, byte(0), zeros[0][i]^zeros[1][i]^zeros[2][i])
	}

	var sum share.Element
	for _, p := range share.Parties {
		sum += cr[p].RandomZeroElement()
	}
	require.Equal(t, share.Element(0), sum)

	var bit bool
	for _, p := range share.Parties {
		bit = bit != cr[p].RandomZeroBit()
	}
	require.False(t, bit)
}

func TestRandomShares(t *testing.T) {
	cr := Deal(Key{7})

	var bits [share.NumParties]share.BinaryString
	var ariths [share.NumParties]share.Arithmetic
	var bytes [share.NumParties]share.Byte
	for _, p := range share.Parties {
		bits[p] = cr[p].RandomBinaryString(61)
		ariths[p] = cr[p].RandomArith()
		bytes[p] = cr[p].RandomByte()
	}
	require.True(t, share.Consistent(bits))

	ref := share.ReconstructArith(ariths)
	for _, p := range share.Parties {
		require.Equal(t, ref,
			ariths[p].Reconstruct(ariths[p.Prev()].Value1))
	}
	ref8 := bytes[0].Reconstruct(bytes[2].Value1)
	require.Equal(t, ref8, bytes[1].Reconstruct(bytes[0].Value1))
	require.Equal(t, ref8, bytes[2].Reconstruct(bytes[1].Value1))
}

func TestPairwise(t *testing.T) {
	cr := Deal(Key{9})

	// Party 1's next stream is party 2's prev stream.
	require.Equal(t, cr[1].NextBytes(16), cr[2].PrevBytes(16))
	require.Equal(t, cr[2].NextUint64(), cr[0].PrevUint64())
	require.Equal(t, cr[0].NextBytes(8), cr[1].PrevBytes(8))
}

func TestRandomBitAndBytes(t *testing.T) {
	cr := Deal(Key{11})

	var bits [share.NumParties]share.Binary
	var bytes [share.NumParties][]share.Byte
	for _, p := range share.Parties {
		bits[p] = cr[p].RandomBit()
		bytes[p] = cr[p].RandomBytes(33)
	}
	ref := share.ReconstructBinary(bits)
	for _, p := range share.Parties {
		require.Equal(t, ref, bits[p].Reconstruct(bits[p.Prev()].Value1))
	}
	var nonzero bool
	for i := 0; i < 33; i++ {
		ref8 := bytes[0][i].Reconstruct(bytes[2][i].Value1)
		for _, p := range share.Parties {
			require.Equal(t, ref8,
				bytes[p][i].Reconstruct(bytes[p.Prev()][i].Value1), "byte %d", i)
		}
		nonzero = nonzero || ref8 != 0
	}
	require.True(t, nonzero)
}

func TestRandomBinaryStringTail(t *testing.T) {
	cr := Deal(Key{13})

	var bits [share.NumParties]share.BinaryString
	for _, p := range share.Parties {
		bits[p] = cr[p].RandomBinaryString(13)
	}
	require.True(t, share.Consistent(bits))
	for _, p := range share.Parties {
		require.Len(t, bits[p].Value1, 2)
		require.Zero(t, bits[p].Value1[1]&^0x1f)
		require.Zero(t, bits[p].Value2[1]&^0x1f)
	}
	require.Less(t, share.ReconstructBinaryString(bits).Uint64(), uint64(1<<13))
}
