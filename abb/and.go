//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/share"
	"github.com/markkurossi/abb/transport"
)

// AND computes a AND b. The multiplication triple is recorded for the
// next Verify.
func (s *Session) AND(a, b share.BinaryString) (share.BinaryString, error) {
	result, err := s.andRound([]share.BinaryString{a},
		[]share.BinaryString{b}, true)
	if err != nil {
		return share.BinaryString{}, err
	}
	return result[0], nil
}

// BatchAND computes as[i] AND bs[i] for all i in one round.
func (s *Session) BatchAND(as, bs []share.BinaryString) (
	[]share.BinaryString, error) {
	return s.andRound(as, bs, true)
}

// ANDBits computes a[i] AND b[i] for the bit shares in one round.
func (s *Session) ANDBits(a, b []share.Binary) ([]share.Binary, error) {
	if len(a) != len(b) {
		return nil, errors.Newf("ANDBits: operand count mismatch: %d != %d",
			len(a), len(b))
	}
	var x, y share.BinaryString
	for i := range a {
		x.Push(a[i])
		y.Push(b[i])
	}
	z, err := s.AND(x, y)
	if err != nil {
		return nil, err
	}
	result := make([]share.Binary, len(a))
	for i := range result {
		result[i] = z.Get(i)
	}
	return result, nil
}

// OR computes a OR b.
func (s *Session) OR(a, b share.BinaryString) (share.BinaryString, error) {
	and, err := s.AND(a, b)
	if err != nil {
		return share.BinaryString{}, err
	}
	return a.XOR(b).XOR(and), nil
}

// BatchOR computes as[i] OR bs[i] for all i in one round.
func (s *Session) BatchOR(as, bs []share.BinaryString) (
	[]share.BinaryString, error) {

	and, err := s.BatchAND(as, bs)
	if err != nil {
		return nil, err
	}
	for i := range and {
		and[i] = as[i].XOR(bs[i]).XOR(and[i])
	}
	return and, nil
}

// ORBits computes a[i] OR b[i] for the bit shares in one round.
func (s *Session) ORBits(a, b []share.Binary) ([]share.Binary, error) {
	and, err := s.ANDBits(a, b)
	if err != nil {
		return nil, err
	}
	for i := range and {
		and[i] = a[i].XOR(b[i]).XOR(and[i])
	}
	return and, nil
}

// andUnchecked computes a AND b without recording the triple. It is
// used only for generating the triples that are verified by opening
// or sacrificing.
func (s *Session) andUnchecked(a, b share.BinaryString) (
	share.BinaryString, error) {

	result, err := s.andRound([]share.BinaryString{a},
		[]share.BinaryString{b}, false)
	if err != nil {
		return share.BinaryString{}, err
	}
	return result[0], nil
}

// andRound runs one multiplication round for all operand pairs. Each
// party computes a three-out-of-three share of the products, sends it
// to the next party, and recombines it into a replicated share with
// the share of the previous party.
func (s *Session) andRound(as, bs []share.BinaryString, record bool) (
	[]share.BinaryString, error) {

	if len(as) != len(bs) {
		return nil, errors.Newf("AND: operand count mismatch: %d != %d",
			len(as), len(bs))
	}
	for i := range as {
		if as[i].Length != bs[i].Length {
			return nil, errors.Newf("AND: operand %d length mismatch: %d != %d",
				i, as[i].Length, bs[i].Length)
		}
	}

	tag := s.tags.Tag(transport.ProtoAND)
	if err := s.relay.AskMessages(tag, s.setup.Prev()); err != nil {
		return nil, err
	}

	var msg []byte
	offsets := make([]int, len(as))
	for i := range as {
		if record {
			s.state.triples.A.AppendPadded(as[i])
			s.state.triples.B.AppendPadded(bs[i])
		}
		offsets[i] = len(msg)
		msg = append(msg, s.andLocal(as[i], bs[i])...)
	}
	s.Debugf("%s: AND %v: %d operands, %d bytes\n",
		s.IDString(), tag, len(as), len(msg))

	if err := s.relay.Send(tag, s.setup.Next(), msg); err != nil {
		return nil, err
	}
	prev, err := s.relay.Receive(tag, s.setup.Prev(), len(msg))
	if err != nil {
		return nil, errors.Wrap(err, "AND")
	}

	result := make([]share.BinaryString, len(as))
	for i := range as {
		n := as[i].NumBytes()
		z := msg[offsets[i] : offsets[i]+n]
		zPrev := prev[offsets[i] : offsets[i]+n]

		r := share.NewBinaryString(as[i].Length)
		for j := 0; j < n; j++ {
			r.Value1[j] = z[j] ^ zPrev[j]
			r.Value2[j] = z[j]
		}
		result[i] = r
		if record {
			s.state.triples.C.AppendPadded(r)
		}
	}
	return result, nil
}

// andLocal computes the party's additive share of a AND b, masked with
// a sharing of zero.
func (s *Session) andLocal(a, b share.BinaryString) []byte {
	n := a.NumBytes()
	z := s.state.cr.RandomZero(n)
	for i := 0; i < n; i++ {
		z[i] ^= a.Value1[i]&b.Value1[i] ^ a.Value2[i]&b.Value2[i]
	}
	if a.Length%8 != 0 {
		z[n-1] &= byte(1<<(a.Length%8)) - 1
	}
	return z
}
