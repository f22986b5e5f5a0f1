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

// Mux selects x if the choice bit c is set and y otherwise. The result
// is ((x XOR y) AND c) XOR y.
func (s *Session) Mux(c share.Binary, x, y share.BinaryArithmetic) (
	share.BinaryArithmetic, error) {

	result, err := s.BatchMux([]share.Binary{c},
		[]share.BinaryArithmetic{x}, []share.BinaryArithmetic{y})
	if err != nil {
		return share.BinaryArithmetic{}, err
	}
	return result[0], nil
}

// BatchMux selects xs[i] or ys[i] by cs[i] for all i in one round.
func (s *Session) BatchMux(cs []share.Binary, xs, ys []share.BinaryArithmetic) (
	[]share.BinaryArithmetic, error) {

	if len(cs) != len(xs) || len(xs) != len(ys) {
		return nil, errors.Newf("Mux: operand count mismatch: %d, %d, %d",
			len(cs), len(xs), len(ys))
	}
	zs := make([]share.BinaryString, len(xs))
	choices := make([]share.BinaryString, len(xs))
	for i := range xs {
		zs[i] = xs[i].XOR(ys[i]).BinaryString()
		choices[i] = share.BinaryArithFromChoice(cs[i]).BinaryString()
	}
	ds, err := s.BatchAND(zs, choices)
	if err != nil {
		return nil, err
	}
	result := make([]share.BinaryArithmetic, len(xs))
	for i, d := range ds {
		result[i] = share.BinaryArithFromBinaryString(d).XOR(ys[i])
	}
	return result, nil
}

// MuxString selects the bit string x if c is set and y otherwise. The
// operands must have the same length.
func (s *Session) MuxString(c share.Binary, x, y share.BinaryString) (
	share.BinaryString, error) {

	if x.Length != y.Length {
		return share.BinaryString{}, errors.Newf(
			"Mux: operand length mismatch: %d != %d", x.Length, y.Length)
	}
	d, err := s.AND(x.XOR(y), share.BinaryStringFromChoice(c, x.Length))
	if err != nil {
		return share.BinaryString{}, err
	}
	return d.XOR(y), nil
}

// MuxBits selects xs[i] or ys[i] by cs[i] for the bit shares in one
// round.
func (s *Session) MuxBits(cs, xs, ys []share.Binary) ([]share.Binary, error) {
	if len(cs) != len(xs) || len(xs) != len(ys) {
		return nil, errors.Newf("Mux: operand count mismatch: %d, %d, %d",
			len(cs), len(xs), len(ys))
	}
	zs := make([]share.Binary, len(xs))
	for i := range xs {
		zs[i] = xs[i].XOR(ys[i])
	}
	ds, err := s.ANDBits(zs, cs)
	if err != nil {
		return nil, err
	}
	for i := range ds {
		ds[i] = ds[i].XOR(ys[i])
	}
	return ds, nil
}
