//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/share"
)

// Equal computes the bit share of x == y.
func (s *Session) Equal(x, y share.BinaryArithmetic) (share.Binary, error) {
	result, err := s.BatchEqual([]share.BinaryArithmetic{x},
		[]share.BinaryArithmetic{y})
	if err != nil {
		return share.Binary{}, err
	}
	return result[0], nil
}

// BatchEqual computes the bit shares of xs[i] == ys[i]. The bits of
// NOT(x XOR y) are folded with a tree of AND gates of depth log2(64).
func (s *Session) BatchEqual(xs, ys []share.BinaryArithmetic) (
	[]share.Binary, error) {

	if len(xs) != len(ys) {
		return nil, errors.Newf("Equal: operand count mismatch: %d != %d",
			len(xs), len(ys))
	}
	count := len(xs)
	bits := make([][]share.Binary, count)
	for i := range xs {
		eq := xs[i].XOR(ys[i]).Not()
		bits[i] = make([]share.Binary, share.ElementBits)
		for j := range bits[i] {
			bits[i][j] = eq.Bit(j)
		}
	}

	for width := share.ElementBits; width > 1; width /= 2 {
		half := width / 2
		as := make([]share.Binary, 0, count*half)
		bs := make([]share.Binary, 0, count*half)
		for i := range bits {
			for j := 0; j < half; j++ {
				as = append(as, bits[i][2*j])
				bs = append(bs, bits[i][2*j+1])
			}
		}
		products, err := s.ANDBits(as, bs)
		if err != nil {
			return nil, err
		}
		for i := range bits {
			bits[i] = products[i*half : (i+1)*half]
		}
	}

	result := make([]share.Binary, count)
	for i := range bits {
		result[i] = bits[i][0]
	}
	return result, nil
}
