//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package share

import (
	"encoding/binary"
	"math/big"

	"github.com/cockroachdb/errors"
)

// MarshalBinary encodes the share as the little-endian bit length
// followed by Value1 and Value2.
func (s BinaryString) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, s.ExternalSize())
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Length))
	buf = append(buf, s.Value1...)
	return append(buf, s.Value2...), nil
}

// UnmarshalBinary decodes the share from data.
func (s *BinaryString) UnmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return errors.Newf("truncated share: %d bytes", len(data))
	}
	length := binary.LittleEndian.Uint64(data)
	n := bytesFor(int(length))
	if len(data) != 8+2*n {
		return errors.Newf("invalid share size %d for length %d",
			len(data), length)
	}
	s.Length = int(length)
	s.Value1 = append([]byte(nil), data[8:8+n]...)
	s.Value2 = append([]byte(nil), data[8+n:]...)
	return nil
}

// EncodeElements encodes the elements as little-endian uint64 values.
func EncodeElements(elements []Element) []byte {
	buf := make([]byte, 0, len(elements)*8)
	for _, e := range elements {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e))
	}
	return buf
}

// DecodeElements decodes little-endian uint64 values.
func DecodeElements(data []byte) ([]Element, error) {
	if len(data)%8 != 0 {
		return nil, errors.Newf("invalid element data length %d", len(data))
	}
	result := make([]Element, len(data)/8)
	for i := range result {
		result[i] = Element(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return result, nil
}

// EncodeUint64s encodes the values as little-endian uint64 values.
func EncodeUint64s(values []uint64) []byte {
	buf := make([]byte, 0, len(values)*8)
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint64(buf, v)
	}
	return buf
}

// DecodeUint64s decodes little-endian uint64 values.
func DecodeUint64s(data []byte) ([]uint64, error) {
	if len(data)%8 != 0 {
		return nil, errors.Newf("invalid uint64 data length %d", len(data))
	}
	result := make([]uint64, len(data)/8)
	for i := range result {
		result[i] = binary.LittleEndian.Uint64(data[i*8:])
	}
	return result, nil
}

// ECFieldSize defines the encoded size of an EC field element.
const ECFieldSize = 32

// EncodeECField encodes the field element as 32 little-endian bytes.
func EncodeECField(buf []byte, v *big.Int) []byte {
	var be [ECFieldSize]byte
	v.FillBytes(be[:])
	for i := ECFieldSize - 1; i >= 0; i-- {
		buf = append(buf, be[i])
	}
	return buf
}

// DecodeECField decodes a 32 byte little-endian field element.
func DecodeECField(data []byte) *big.Int {
	var be [ECFieldSize]byte
	for i := 0; i < ECFieldSize; i++ {
		be[ECFieldSize-1-i] = data[i]
	}
	return new(big.Int).SetBytes(be[:])
}
