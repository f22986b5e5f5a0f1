//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"math/big"
	"math/bits"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/share"
	"github.com/markkurossi/abb/transport"
)

// exchangeOpen sends the party's Value1 to the next party and returns
// the Value1 of the previous party.
func (s *Session) exchangeOpen(value1 []byte) ([]byte, error) {
	tag := s.tags.Tag(transport.ProtoOpen)
	data, err := transport.SendToNextReceiveFromPrev(s.setup, s.relay, tag,
		value1, len(value1))
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	return data, nil
}

// openRaw reveals x without registering the result. The caller must
// check the opening itself.
func (s *Session) openRaw(x share.BinaryString) (share.BitString, error) {
	prev, err := s.exchangeOpen(x.Value1)
	if err != nil {
		return share.BitString{}, err
	}
	return x.Reconstruct(prev), nil
}

// OpenWithoutVerification reveals x and registers the opened value for
// the next Verify. The result must not be acted on before Verify
// succeeds.
func (s *Session) OpenWithoutVerification(x share.BinaryString) (
	share.BitString, error) {

	result, err := s.openRaw(x)
	if err != nil {
		return share.BitString{}, err
	}
	s.state.unverified.AppendPadded(result.Bytes())
	return result, nil
}

// Open reveals x and verifies all pending work before returning.
func (s *Session) Open(x share.BinaryString) (share.BitString, error) {
	result, err := s.OpenWithoutVerification(x)
	if err != nil {
		return share.BitString{}, err
	}
	if err := s.Verify(); err != nil {
		return share.BitString{}, err
	}
	return result, nil
}

// OpenBits reveals the bit shares.
func (s *Session) OpenBits(x []share.Binary) ([]bool, error) {
	var str share.BinaryString
	for _, b := range x {
		str.Push(b)
	}
	opened, err := s.OpenWithoutVerification(str)
	if err != nil {
		return nil, err
	}
	result := make([]bool, len(x))
	for i := range result {
		result[i] = opened.Get(i)
	}
	if err := s.Verify(); err != nil {
		return nil, err
	}
	return result, nil
}

// OpenBytes reveals the byte shares. The bits of the opened bytes are
// returned in the MSB-first order.
func (s *Session) OpenBytes(x []share.Byte) ([]byte, error) {
	value1 := make([]byte, len(x))
	for i, b := range x {
		value1[i] = b.Value1
	}
	prev, err := s.exchangeOpen(value1)
	if err != nil {
		return nil, err
	}
	result := make([]byte, len(x))
	for i, b := range x {
		result[i] = b.Reconstruct(prev[i])
	}
	s.state.unverified.AppendPadded(result)
	if err := s.Verify(); err != nil {
		return nil, err
	}
	for i, b := range result {
		result[i] = bits.Reverse8(b)
	}
	return result, nil
}

func (s *Session) openElements(x []share.Arithmetic) ([]share.Element, error) {
	value1 := make([]share.Element, len(x))
	for i, e := range x {
		value1[i] = e.Value1
	}
	data, err := s.exchangeOpen(share.EncodeElements(value1))
	if err != nil {
		return nil, err
	}
	prev, err := share.DecodeElements(data)
	if err != nil {
		return nil, errors.Mark(err, transport.ErrInvalidMessage)
	}
	result := make([]share.Element, len(x))
	for i, e := range x {
		result[i] = e.Reconstruct(prev[i])
	}
	s.state.unverified.AppendPadded(share.EncodeElements(result))
	if err := s.Verify(); err != nil {
		return nil, err
	}
	return result, nil
}

// OpenArith reveals the arithmetic shares as raw ring elements.
func (s *Session) OpenArith(x []share.Arithmetic) ([]share.Element, error) {
	return s.openElements(x)
}

// OpenFixed reveals the fixed point arithmetic shares.
func (s *Session) OpenFixed(x []share.Arithmetic) ([]float64, error) {
	values, err := s.openElements(x)
	if err != nil {
		return nil, err
	}
	result := make([]float64, len(values))
	for i, v := range values {
		result[i] = v.Float()
	}
	return result, nil
}

// OpenEC reveals the field element shares.
func (s *Session) OpenEC(x []share.EC) ([]*big.Int, error) {
	var value1 []byte
	for _, e := range x {
		value1 = share.EncodeECField(value1, e.Value1)
	}
	data, err := s.exchangeOpen(value1)
	if err != nil {
		return nil, err
	}
	result := make([]*big.Int, len(x))
	var opened []byte
	for i, e := range x {
		prev := share.DecodeECField(
			data[i*share.ECFieldSize : (i+1)*share.ECFieldSize])
		result[i] = e.Reconstruct(prev)
		opened = share.EncodeECField(opened, result[i])
	}
	s.state.unverified.AppendPadded(opened)
	if err := s.Verify(); err != nil {
		return nil, err
	}
	return result, nil
}

// OpenToParties01 reveals the shares to the parties 0 and 1. Party 2
// learns nothing and its result values are zero. Both receiving
// parties get the missing component from the two other parties and
// check that they agree.
func (s *Session) OpenToParties01(x []share.BinaryArithmetic) (
	[]uint64, error) {

	if err := s.Verify(); err != nil {
		return nil, err
	}
	tag := s.tags.Tag(transport.ProtoOpenTo)

	value1 := make([]uint64, len(x))
	for i, e := range x {
		value1[i] = e.Value1
	}
	payload := share.EncodeUint64s(value1)
	result := make([]uint64, len(x))

	var other share.Party
	switch s.setup.Party {
	case share.Party0:
		other = share.Party1
	case share.Party1:
		other = share.Party0
	default:
		err := transport.SendToParties(s.relay, tag, payload,
			share.Party0, share.Party1)
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := s.relay.AskMessages(tag, other, share.Party2); err != nil {
		return nil, err
	}
	if err := s.relay.Send(tag, other, payload); err != nil {
		return nil, err
	}
	values, err := transport.ReceiveFromParties(s.relay, tag, len(payload),
		other, share.Party2)
	if err != nil {
		return nil, errors.Wrap(err, "open to parties 0 and 1")
	}
	fromOther, err := share.DecodeUint64s(values[0])
	if err != nil {
		return nil, errors.Mark(err, transport.ErrInvalidMessage)
	}
	from2, err := share.DecodeUint64s(values[1])
	if err != nil {
		return nil, errors.Mark(err, transport.ErrInvalidMessage)
	}

	// P0 reconstructs with P2's Value1 and P1 with P0's Value1. The
	// Value1s of the other two parties XOR to our own Value1.
	for i, e := range x {
		if fromOther[i]^from2[i] != e.Value1 {
			return nil, s.fail(transport.Verificationf(
				"%v: open to parties 0 and 1: element %d mismatch",
				s.setup.Party, i))
		}
		if s.setup.Party == share.Party0 {
			result[i] = e.Reconstruct(from2[i])
		} else {
			result[i] = e.Reconstruct(fromOther[i])
		}
	}
	return result, nil
}

// openForTriples opens x for the triple generation and verifies the
// opening immediately.
func (s *Session) openForTriples(x share.BinaryString) (
	share.BitString, error) {

	result, err := s.OpenWithoutVerification(x)
	if err != nil {
		return share.BitString{}, err
	}
	if err := s.VerifyArrayOfBits(s.state.unverified); err != nil {
		return share.BitString{}, err
	}
	s.state.unverified = share.BitString{}
	return result, nil
}
