//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package share

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// fixture holds a sharing of 65536.
var fixture = [NumParties]Arithmetic{
	{Value1: 38829, Value2: 12123},
	{Value1: 38830, Value2: 26707},
	{Value1: 53413, Value2: 26706},
}

func TestParty(t *testing.T) {
	require.Equal(t, Party1, Party0.Next())
	require.Equal(t, Party2, Party0.Prev())
	require.Equal(t, Party0, Party2.Next())
	require.Equal(t, Party1, Party2.Prev())
	require.Equal(t, "P¹", Party1.String())

	_, err := PartyFromIndex(3)
	require.Error(t, err)
}

func TestArithFixture(t *testing.T) {
	for _, p := range Parties {
		v := fixture[p].Reconstruct(fixture[p.Prev()].Value1)
		require.Equal(t, Element(65536), v, "party %v", p)
	}
	require.Equal(t, Element(64), fixture[0].ReconstructFixed(fixture[2].Value1))
}

func TestArithFromConstant(t *testing.T) {
	var shares [NumParties]Arithmetic
	for _, p := range Parties {
		shares[p] = ArithFromConstant(1234, p)
	}
	require.Equal(t, Element(0), shares[Party2].Value1)
	require.Equal(t, Element(0), shares[Party2].Value2)
	require.Equal(t, Fixed(1234), ReconstructArith(shares))
	require.Equal(t, Element(1234), ReconstructArith(shares).Unfixed())
	require.Equal(t, 1234.0, ReconstructArith(shares).Float())
}

func TestArithLinear(t *testing.T) {
	x, err := DealArith(1000, rand.Reader)
	require.NoError(t, err)
	y, err := DealArith(Element(0).Neg()-41, rand.Reader)
	require.NoError(t, err)

	var sum, diff, neg, scaled, plus [NumParties]Arithmetic
	for _, p := range Parties {
		sum[p] = x[p].Add(y[p])
		diff[p] = x[p].Sub(y[p])
		neg[p] = x[p].Neg()
		scaled[p] = x[p].MulConst(3)
		plus[p] = x[p].AddConst(24, p)
	}
	require.Equal(t, Element(959), ReconstructArith(sum))
	require.Equal(t, Element(1041), ReconstructArith(diff))
	require.Equal(t, Element(1000).Neg(), ReconstructArith(neg))
	require.Equal(t, Element(3000), ReconstructArith(scaled))
	require.Equal(t, Element(1024), ReconstructArith(plus))

	// Every party reconstructs the same value.
	for _, p := range Parties {
		require.Equal(t, Element(959), sum[p].Reconstruct(sum[p.Prev()].Value1))
	}
}

func TestBinaryString(t *testing.T) {
	a := BitStringFromUint64(0xa5c3, 16)
	b := BitStringFromUint64(0x0ff0, 16)

	as, err := DealBinaryString(a, rand.Reader)
	require.NoError(t, err)
	bs, err := DealBinaryString(b, rand.Reader)
	require.NoError(t, err)
	require.True(t, Consistent(as))

	var xor, and, not, xs [NumParties]BinaryString
	for _, p := range Parties {
		xor[p] = as[p].XOR(bs[p])
		and[p] = as[p].ANDScalar(b)
		not[p] = as[p].Not()
		xs[p] = as[p].XORScalar(b)
	}
	require.Equal(t, uint64(0xa5c3^0x0ff0), ReconstructBinaryString(xor).Uint64())
	require.Equal(t, uint64(0xa5c3&0x0ff0), ReconstructBinaryString(and).Uint64())
	require.Equal(t, uint64(^uint16(0xa5c3)), ReconstructBinaryString(not).Uint64())
	require.Equal(t, uint64(0xa5c3^0x0ff0), ReconstructBinaryString(xs).Uint64())
	require.True(t, Consistent(xs))
}

func TestBinaryStringSlicing(t *testing.T) {
	c := BitStringFromUint64(0xdeadbeef, 32)
	var shares [NumParties]BinaryString
	for _, p := range Parties {
		shares[p] = BinaryStringFromConstant(c, p)
	}

	var head, tail, mid [NumParties]BinaryString
	for _, p := range Parties {
		head[p], tail[p] = shares[p].Split(16)
		mid[p] = shares[p].Slice(4, 12)
	}
	require.Equal(t, uint64(0xbeef), ReconstructBinaryString(head).Uint64())
	require.Equal(t, uint64(0xdead), ReconstructBinaryString(tail).Uint64())
	require.Equal(t, uint64(0xee), ReconstructBinaryString(mid).Uint64())

	require.Panics(t, func() {
		shares[0].Split(5)
	})

	odd := NewBinaryString(3)
	odd.AppendPadded(shares[0])
	require.Equal(t, 8+32, odd.Length)
	require.Panics(t, func() {
		o := NewBinaryString(3)
		o.Append(shares[0])
	})
}

func TestBinaryStringPush(t *testing.T) {
	var s BinaryString
	for i := 0; i < 11; i++ {
		s.Push(Binary{Value1: i%2 == 0, Value2: i%3 == 0})
	}
	require.Equal(t, 11, s.Length)
	require.Equal(t, 2, s.NumBytes())
	require.Equal(t, Binary{Value1: true, Value2: true}, s.Get(6))
	require.Equal(t, Binary{Value1: false, Value2: false}, s.Get(7))
	require.Equal(t, 8+4, s.ExternalSize())
}

func TestBinaryStringMarshal(t *testing.T) {
	s := BinaryString{
		Length: 12,
		Value1: []byte{0x12, 0x03},
		Value2: []byte{0xff, 0x0f},
	}
	data, err := s.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, s.ExternalSize())

	var d BinaryString
	require.NoError(t, d.UnmarshalBinary(data))
	if diff := cmp.Diff(s, d); diff != "" {
		t.Errorf("unmarshal mismatch (-want +got):\n%s", diff)
	}
	require.Error(t, d.UnmarshalBinary(data[:5]))
}

func TestBinaryArith(t *testing.T) {
	x, err := DealBinaryArith(0x8000000000000001, rand.Reader)
	require.NoError(t, err)

	var shifted, not, bs [NumParties]BinaryArithmetic
	for _, p := range Parties {
		shifted[p] = x[p].LeftShift(1)
		not[p] = x[p].Not()
		bs[p] = BinaryArithFromBinaryString(x[p].BinaryString())
	}
	require.Equal(t, uint64(2), ReconstructBinaryArith(shifted))
	require.Equal(t, uint64(0x7ffffffffffffffe), ReconstructBinaryArith(not))
	require.Equal(t, uint64(0x8000000000000001), ReconstructBinaryArith(bs))

	var bits [NumParties]Binary
	for _, p := range Parties {
		bits[p] = x[p].Bit(63)
	}
	require.True(t, ReconstructBinary(bits))

	var one, all [NumParties]BinaryArithmetic
	for _, p := range Parties {
		b := BinaryFromConstant(true, p)
		one[p] = BinaryArithFromBinary(b)
		all[p] = BinaryArithFromChoice(b)
	}
	require.Equal(t, uint64(FixedOne), ReconstructBinaryArith(one))
	require.Equal(t, ^uint64(0), ReconstructBinaryArith(all))
}

func TestEC(t *testing.T) {
	c := new(big.Int).Sub(ECPrime, big.NewInt(5))

	var x, y, sum [NumParties]EC
	for _, p := range Parties {
		x[p] = ECFromConstant(c, p)
		y[p] = ECFromConstant(big.NewInt(7), p)
		sum[p] = x[p].Add(y[p])
	}
	require.Equal(t, int64(2), sum[0].Reconstruct(sum[2].Value1).Int64())

	enc := EncodeECField(nil, c)
	require.Len(t, enc, ECFieldSize)
	require.Equal(t, 0, c.Cmp(DecodeECField(enc)))
}

func TestElementsCodec(t *testing.T) {
	in := []Element{0, 1, Element(0).Neg(), 65536}
	out, err := DecodeElements(EncodeElements(in))
	require.NoError(t, err)
	require.Equal(t, in, out)

	_, err = DecodeElements([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestBinaryStringRedeal(t *testing.T) {
	a := BitStringFromUint64(0x3c5a96e1, 32)

	as, err := DealBinaryString(a, rand.Reader)
	require.NoError(t, err)
	bs, err := DealBinaryString(a, rand.Reader)
	require.NoError(t, err)

	var xor [NumParties]BinaryString
	for _, p := range Parties {
		xor[p] = as[p].XOR(bs[p])
	}
	require.True(t, Consistent(xor))
	require.Equal(t, uint64(0), ReconstructBinaryString(xor).Uint64())
}

func TestBinaryStringFromChoice(t *testing.T) {
	for _, bit := range []uint64{0, 1} {
		cs, err := DealBinaryString(BitStringFromUint64(bit, 1), rand.Reader)
		require.NoError(t, err)

		var choice [NumParties]BinaryString
		for _, p := range Parties {
			choice[p] = BinaryStringFromChoice(cs[p].Get(0), 11)
			require.Equal(t, 11, choice[p].Length)
		}
		require.True(t, Consistent(choice))
		require.Equal(t, bit*0x7ff, ReconstructBinaryString(choice).Uint64())
	}
}

func TestConcatBinaryStrings(t *testing.T) {
	as, err := DealBinaryString(BitStringFromUint64(0x15, 5), rand.Reader)
	require.NoError(t, err)
	bs, err := DealBinaryString(BitStringFromUint64(0xabcd, 16), rand.Reader)
	require.NoError(t, err)

	var all [NumParties]BinaryString
	for _, p := range Parties {
		all[p] = ConcatBinaryStrings([]BinaryString{as[p], bs[p]})
		require.Equal(t, 8+16, all[p].Length)
	}
	require.True(t, Consistent(all))
	require.Equal(t, uint64(0xabcd<<8|0x15),
		ReconstructBinaryString(all).Uint64())
}
