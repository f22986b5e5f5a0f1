//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"testing"

	"github.com/markkurossi/abb/share"
	"github.com/stretchr/testify/require"
)

// a2bFixture holds a sharing of 65536.
var a2bFixture = [share.NumParties]share.Arithmetic{
	{Value1: 38829, Value2: 12123},
	{Value1: 38830, Value2: 26707},
	{Value1: 53413, Value2: 26706},
}

func TestA2B(t *testing.T) {
	ss, _ := newSessions(t)
	var result [share.NumParties]share.BinaryArithmetic
	ss.runOK(t, func(s *Session) error {
		var err error
		result[s.Party()], err = s.A2B(a2bFixture[s.Party()])
		if err != nil {
			return err
		}
		return s.Verify()
	})
	require.Equal(t, uint64(65536), share.ReconstructBinaryArith(result))
	for _, p := range share.Parties {
		require.Equal(t, uint64(65536),
			result[p].Reconstruct(result[p.Prev()].Value1))
	}
}

func TestBatchA2B(t *testing.T) {
	ss, _ := newSessions(t)
	r := testRand(15)
	values := []share.Element{0, 1, 1 << 63, share.Element(0).Neg(), 123456789}
	shares := make([][share.NumParties]share.Arithmetic, len(values))
	for i, v := range values {
		var err error
		shares[i], err = share.DealArith(v, r)
		require.NoError(t, err)
	}

	var result [share.NumParties][]share.BinaryArithmetic
	ss.runOK(t, func(s *Session) error {
		mine := make([]share.Arithmetic, len(shares))
		for i := range shares {
			mine[i] = shares[i][s.Party()]
		}
		var err error
		result[s.Party()], err = s.BatchA2B(mine)
		if err != nil {
			return err
		}
		return s.Verify()
	})
	for i, v := range values {
		got := share.ReconstructBinaryArith([share.NumParties]share.BinaryArithmetic{
			result[0][i], result[1][i], result[2][i],
		})
		require.Equal(t, uint64(v), got, "value %d", i)
	}
}

func TestB2A(t *testing.T) {
	ss, _ := newSessions(t)
	var result [share.NumParties]share.Arithmetic
	ss.runOK(t, func(s *Session) error {
		var err error
		result[s.Party()], err = s.B2A(
			share.BinaryArithFromConstant(1234, s.Party()))
		if err != nil {
			return err
		}
		return s.Verify()
	})
	v := share.ReconstructArith(result)
	require.Equal(t, share.Fixed(1234), v)
	require.Equal(t, share.Element(1234), v.Unfixed())
	for _, p := range share.Parties {
		require.Equal(t, share.Fixed(1234),
			result[p].Reconstruct(result[p.Prev()].Value1))
	}
}

func TestA2BB2A(t *testing.T) {
	ss, _ := newSessions(t)
	r := testRand(16)
	values := []share.Element{7, share.Element(0).Neg() - 1000, 1 << 40}
	shares := make([][share.NumParties]share.Arithmetic, len(values))
	for i, v := range values {
		var err error
		shares[i], err = share.DealArith(v, r)
		require.NoError(t, err)
	}

	var opened [share.NumParties][]share.Element
	ss.runOK(t, func(s *Session) error {
		mine := make([]share.Arithmetic, len(shares))
		for i := range shares {
			mine[i] = shares[i][s.Party()]
		}
		bin, err := s.BatchA2B(mine)
		if err != nil {
			return err
		}
		arith, err := s.BatchB2A(bin)
		if err != nil {
			return err
		}
		opened[s.Party()], err = s.OpenArith(arith)
		return err
	})
	for _, o := range opened {
		require.Equal(t, values, o)
	}
}

func TestFullAdder(t *testing.T) {
	ss, _ := newSessions(t)
	r := testRand(17)
	a, as := dealBits(t, r, 24)
	b, bs := dealBits(t, r, 24)
	c, cs := dealBits(t, r, 24)

	var carries, sums [share.NumParties]share.BinaryString
	ss.runOK(t, func(s *Session) error {
		p := s.Party()
		var err error
		carries[p], sums[p], err = s.FullAdder(as[p], bs[p], cs[p])
		if err != nil {
			return err
		}
		return s.Verify()
	})
	carry := share.ReconstructBinaryString(carries)
	sum := share.ReconstructBinaryString(sums)
	for i := 0; i < 24; i++ {
		n := b2i(a.Get(i)) + b2i(b.Get(i)) + b2i(c.Get(i))
		require.Equal(t, n&1 != 0, sum.Get(i), "sum bit %d", i)
		require.Equal(t, n >= 2, carry.Get(i), "carry bit %d", i)
	}
}

func TestPPA(t *testing.T) {
	ss, _ := newSessions(t)
	tests := []struct {
		x, y  uint64
		sum   uint64
		carry bool
	}{
		{200, 100, 44, true},
		{1, 2, 3, false},
		{255, 1, 0, true},
		{0, 0, 0, false},
	}
	for _, test := range tests {
		var sums [share.NumParties]share.BinaryString
		var carries [share.NumParties]share.Binary
		ss.runOK(t, func(s *Session) error {
			x := share.BinaryStringFromConstant(
				share.BitStringFromUint64(test.x, 8), s.Party())
			y := share.BinaryStringFromConstant(
				share.BitStringFromUint64(test.y, 8), s.Party())
			var err error
			sums[s.Party()], carries[s.Party()], err = s.PPA(x, y)
			if err != nil {
				return err
			}
			return s.Verify()
		})
		require.Equal(t, test.sum,
			share.ReconstructBinaryString(sums).Uint64(),
			"%d+%d", test.x, test.y)
		require.Equal(t, test.carry, share.ReconstructBinary(carries),
			"%d+%d carry", test.x, test.y)
	}

	_, _, err := ss[0].PPA(share.NewBinaryString(12), share.NewBinaryString(12))
	require.Error(t, err)
}

func TestEqual(t *testing.T) {
	ss, _ := newSessions(t)
	r := testRand(18)
	pairs := [][2]uint64{
		{0, 0},
		{42, 42},
		{42, 43},
		{1 << 63, 0},
		{0xffffffffffffffff, 0xffffffffffffffff},
	}
	xs := make([][share.NumParties]share.BinaryArithmetic, len(pairs))
	ys := make([][share.NumParties]share.BinaryArithmetic, len(pairs))
	for i, pair := range pairs {
		var err error
		xs[i], err = share.DealBinaryArith(pair[0], r)
		require.NoError(t, err)
		ys[i], err = share.DealBinaryArith(pair[1], r)
		require.NoError(t, err)
	}

	var result [share.NumParties][]bool
	var single [share.NumParties]bool
	ss.runOK(t, func(s *Session) error {
		p := s.Party()
		var x, y []share.BinaryArithmetic
		for i := range pairs {
			x = append(x, xs[i][p])
			y = append(y, ys[i][p])
		}
		eq, err := s.BatchEqual(x, y)
		if err != nil {
			return err
		}
		result[p], err = s.OpenBits(eq)
		if err != nil {
			return err
		}
		one, err := s.Equal(x[2], y[2])
		if err != nil {
			return err
		}
		opened, err := s.OpenBits([]share.Binary{one})
		if err != nil {
			return err
		}
		single[p] = opened[0]
		return nil
	})
	for _, res := range result {
		for i, pair := range pairs {
			require.Equal(t, pair[0] == pair[1], res[i], "%x == %x",
				pair[0], pair[1])
		}
	}
	require.Equal(t, [share.NumParties]bool{}, single)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
