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

// CompareGE computes the bit share of x >= y for unsigned x and y.
func (s *Session) CompareGE(x, y share.BinaryArithmetic) (share.Binary, error) {
	result, err := s.BatchCompareGE([]share.BinaryArithmetic{x},
		[]share.BinaryArithmetic{y})
	if err != nil {
		return share.Binary{}, err
	}
	return result[0], nil
}

// BatchCompareGE computes the bit shares of xs[i] >= ys[i]. Bit i of
// the per-bit result is NOT(y AND (x XOR y)). Adjacent bit pairs are
// then merged with a tree: the merged result takes the high result if
// the high bits differ and the low result otherwise. Each tree level
// is one AND round.
func (s *Session) BatchCompareGE(xs, ys []share.BinaryArithmetic) (
	[]share.Binary, error) {

	if len(xs) != len(ys) {
		return nil, errors.Newf("CompareGE: operand count mismatch: %d != %d",
			len(xs), len(ys))
	}
	count := len(xs)
	diffs := make([]share.BinaryArithmetic, count)
	as := make([]share.BinaryString, count)
	bs := make([]share.BinaryString, count)
	for i := range xs {
		diffs[i] = xs[i].XOR(ys[i])
		as[i] = ys[i].BinaryString()
		bs[i] = diffs[i].BinaryString()
	}
	ts, err := s.BatchAND(as, bs)
	if err != nil {
		return nil, err
	}

	results := make([][]share.Binary, count)
	diff := make([][]share.Binary, count)
	for i := range ts {
		t := share.BinaryArithFromBinaryString(ts[i]).Not()
		results[i] = make([]share.Binary, share.ElementBits)
		diff[i] = make([]share.Binary, share.ElementBits)
		for j := 0; j < share.ElementBits; j++ {
			results[i][j] = t.Bit(j)
			diff[i][j] = diffs[i].Bit(j)
		}
	}

	for width := share.ElementBits; width > 1; width /= 2 {
		half := width / 2
		x := make([]share.Binary, 0, 2*count*half)
		y := make([]share.Binary, 0, 2*count*half)
		for i := range results {
			for j := 0; j < half; j++ {
				lo, hi := 2*j, 2*j+1
				x = append(x, diff[i][hi], diff[i][lo])
				y = append(y, results[i][hi].XOR(results[i][lo]), diff[i][hi])
			}
		}
		products, err := s.ANDBits(x, y)
		if err != nil {
			return nil, err
		}
		for i := range results {
			for j := 0; j < half; j++ {
				lo, hi := 2*j, 2*j+1
				k := 2 * (i*half + j)
				results[i][j] = products[k].XOR(results[i][lo])
				diff[i][j] = products[k+1].XOR(diff[i][lo]).XOR(diff[i][hi])
			}
			results[i] = results[i][:half]
			diff[i] = diff[i][:half]
		}
	}

	result := make([]share.Binary, count)
	for i := range results {
		result[i] = results[i][0]
	}
	return result, nil
}
