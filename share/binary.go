//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package share

import (
	"fmt"
)

// Binary implements a replicated share of a bit.
type Binary struct {
	Value1 bool
	Value2 bool
}

// BinaryFromConstant returns party p's share of the constant bit v.
func BinaryFromConstant(v bool, p Party) Binary {
	switch p {
	case Party0:
		return Binary{
			Value1: v,
			Value2: v,
		}
	case Party1:
		return Binary{
			Value1: v,
		}
	default:
		return Binary{}
	}
}

// XOR returns s^o.
func (s Binary) XOR(o Binary) Binary {
	return Binary{
		Value1: s.Value1 != o.Value1,
		Value2: s.Value2 != o.Value2,
	}
}

// Not returns the negation of s.
func (s Binary) Not() Binary {
	return Binary{
		Value1: s.Value1,
		Value2: !s.Value2,
	}
}

// Reconstruct reconstructs the bit from the share and the Value1 of
// the previous party.
func (s Binary) Reconstruct(prevValue1 bool) bool {
	return s.Value2 != prevValue1
}

func (s Binary) String() string {
	return fmt.Sprintf("(%v,%v)", b2i(s.Value1), b2i(s.Value2))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func bytesFor(bits int) int {
	return (bits + 7) / 8
}

func getBit(buf []byte, idx int) bool {
	return buf[idx/8]&(1<<(idx%8)) != 0
}

func setBit(buf []byte, idx int, v bool) {
	if v {
		buf[idx/8] |= 1 << (idx % 8)
	} else {
		buf[idx/8] &^= 1 << (idx % 8)
	}
}

// clearTail clears the padding bits after length bits.
func clearTail(buf []byte, length int) {
	if length%8 != 0 && len(buf) > 0 {
		buf[len(buf)-1] &= byte(1<<(length%8)) - 1
	}
}

// BitString implements a plaintext bit vector. The bits are packed 8
// bits per byte, the least significant bit first.
type BitString struct {
	Length int
	Value  []byte
}

// NewBitString creates an all-zero bit string of length bits.
func NewBitString(length int) BitString {
	return BitString{
		Length: length,
		Value:  make([]byte, bytesFor(length)),
	}
}

// BitStringFromBytes creates a bit string from the argument bytes.
func BitStringFromBytes(data []byte) BitString {
	v := make([]byte, len(data))
	copy(v, data)
	return BitString{
		Length: len(data) * 8,
		Value:  v,
	}
}

// BitStringFromUint64 creates a bits-wide bit string from the low
// bits of v.
func BitStringFromUint64(v uint64, bits int) BitString {
	result := NewBitString(bits)
	for i := 0; i < bits && i < 64; i++ {
		result.Set(i, v&(1<<i) != 0)
	}
	return result
}

// Uint64 returns the first 64 bits of the string as an integer.
func (b BitString) Uint64() uint64 {
	var result uint64
	for i := 0; i < b.Length && i < 64; i++ {
		if b.Get(i) {
			result |= 1 << i
		}
	}
	return result
}

// Get returns the bit at index idx.
func (b BitString) Get(idx int) bool {
	return getBit(b.Value, idx)
}

// Set sets the bit at index idx.
func (b *BitString) Set(idx int, v bool) {
	setBit(b.Value, idx, v)
}

// Push appends a bit to the string.
func (b *BitString) Push(v bool) {
	if b.Length%8 == 0 {
		b.Value = append(b.Value, 0)
	}
	b.Length++
	b.Set(b.Length-1, v)
}

// XOR returns b^o.
func (b BitString) XOR(o BitString) BitString {
	result := NewBitString(b.Length)
	for i := range result.Value {
		result.Value[i] = b.Value[i] ^ o.Value[i]
	}
	return result
}

// AND returns b&o.
func (b BitString) AND(o BitString) BitString {
	result := NewBitString(b.Length)
	for i := range result.Value {
		result.Value[i] = b.Value[i] & o.Value[i]
	}
	return result
}

// Equal tests if the bit strings have equal length and bits.
func (b BitString) Equal(o BitString) bool {
	if b.Length != o.Length {
		return false
	}
	for i := 0; i < b.Length; i++ {
		if b.Get(i) != o.Get(i) {
			return false
		}
	}
	return true
}

// Split splits the string at the byte aligned bit index idx.
func (b BitString) Split(idx int) (BitString, BitString) {
	if idx%8 != 0 || idx > b.Length {
		panic(fmt.Sprintf("unaligned split at %d of %d", idx, b.Length))
	}
	head := BitString{
		Length: idx,
		Value:  append([]byte(nil), b.Value[:idx/8]...),
	}
	tail := BitString{
		Length: b.Length - idx,
		Value:  append([]byte(nil), b.Value[idx/8:]...),
	}
	return head, tail
}

// AppendPadded pads the string to a byte boundary and appends the
// argument bytes.
func (b *BitString) AppendPadded(data []byte) {
	b.Length = bytesFor(b.Length)*8 + len(data)*8
	b.Value = append(b.Value, data...)
}

// Bytes returns the byte padded bits of the string.
func (b BitString) Bytes() []byte {
	return b.Value
}

func (b BitString) String() string {
	var str []byte
	for i := 0; i < b.Length; i++ {
		if b.Get(i) {
			str = append(str, '1')
		} else {
			str = append(str, '0')
		}
	}
	return string(str)
}

// BinaryString implements a replicated share of a bit vector. The
// bits are packed as in BitString.
type BinaryString struct {
	Length int
	Value1 []byte
	Value2 []byte
}

// NewBinaryString creates a length bits long share of zero.
func NewBinaryString(length int) BinaryString {
	n := bytesFor(length)
	return BinaryString{
		Length: length,
		Value1: make([]byte, n),
		Value2: make([]byte, n),
	}
}

// BinaryStringFromConstant returns party p's share of the constant c.
func BinaryStringFromConstant(c BitString, p Party) BinaryString {
	result := NewBinaryString(c.Length)
	switch p {
	case Party0:
		copy(result.Value1, c.Value)
		copy(result.Value2, c.Value)
	case Party1:
		copy(result.Value1, c.Value)
	}
	return result
}

// BinaryStringFromChoice creates a length bits long share where every
// bit is the bit share c.
func BinaryStringFromChoice(c Binary, length int) BinaryString {
	result := NewBinaryString(length)
	for i := 0; i < length; i++ {
		result.Set(i, c)
	}
	return result
}

// NumBytes returns the number of bytes the share values occupy.
func (s BinaryString) NumBytes() int {
	return bytesFor(s.Length)
}

// Get returns the bit share at index idx.
func (s BinaryString) Get(idx int) Binary {
	return Binary{
		Value1: getBit(s.Value1, idx),
		Value2: getBit(s.Value2, idx),
	}
}

// Set sets the bit share at index idx.
func (s *BinaryString) Set(idx int, v Binary) {
	setBit(s.Value1, idx, v.Value1)
	setBit(s.Value2, idx, v.Value2)
}

// Push appends the bit share v.
func (s *BinaryString) Push(v Binary) {
	if s.Length%8 == 0 {
		s.Value1 = append(s.Value1, 0)
		s.Value2 = append(s.Value2, 0)
	}
	s.Length++
	s.Set(s.Length-1, v)
}

// Clone returns a deep copy of s.
func (s BinaryString) Clone() BinaryString {
	return BinaryString{
		Length: s.Length,
		Value1: append([]byte(nil), s.Value1...),
		Value2: append([]byte(nil), s.Value2...),
	}
}

// XOR returns s^o.
func (s BinaryString) XOR(o BinaryString) BinaryString {
	result := NewBinaryString(s.Length)
	for i := range result.Value1 {
		result.Value1[i] = s.Value1[i] ^ o.Value1[i]
		result.Value2[i] = s.Value2[i] ^ o.Value2[i]
	}
	return result
}

// XORScalar returns s^c for the public constant c.
func (s BinaryString) XORScalar(c BitString) BinaryString {
	result := s.Clone()
	for i := range result.Value2 {
		result.Value2[i] ^= c.Value[i]
	}
	return result
}

// ANDScalar returns s&c for the public constant c.
func (s BinaryString) ANDScalar(c BitString) BinaryString {
	result := s.Clone()
	for i := range result.Value1 {
		result.Value1[i] &= c.Value[i]
		result.Value2[i] &= c.Value[i]
	}
	return result
}

// Not returns the bitwise negation of s.
func (s BinaryString) Not() BinaryString {
	result := s.Clone()
	for i := range result.Value2 {
		result.Value2[i] ^= 0xff
	}
	clearTail(result.Value2, result.Length)
	return result
}

// Slice returns the bits [from, to) of s.
func (s BinaryString) Slice(from, to int) BinaryString {
	result := NewBinaryString(to - from)
	if from%8 == 0 {
		copy(result.Value1, s.Value1[from/8:])
		copy(result.Value2, s.Value2[from/8:])
		clearTail(result.Value1, result.Length)
		clearTail(result.Value2, result.Length)
		return result
	}
	for i := from; i < to; i++ {
		result.Set(i-from, s.Get(i))
	}
	return result
}

// Split splits s at the byte aligned bit index idx.
func (s BinaryString) Split(idx int) (BinaryString, BinaryString) {
	if idx%8 != 0 || idx > s.Length {
		panic(fmt.Sprintf("unaligned split at %d of %d", idx, s.Length))
	}
	head := BinaryString{
		Length: idx,
		Value1: append([]byte(nil), s.Value1[:idx/8]...),
		Value2: append([]byte(nil), s.Value2[:idx/8]...),
	}
	tail := BinaryString{
		Length: s.Length - idx,
		Value1: append([]byte(nil), s.Value1[idx/8:]...),
		Value2: append([]byte(nil), s.Value2[idx/8:]...),
	}
	return head, tail
}

// Append appends o to s. The length of s must be byte aligned.
func (s *BinaryString) Append(o BinaryString) {
	if s.Length%8 != 0 {
		panic(fmt.Sprintf("append to unaligned share of length %d", s.Length))
	}
	s.Length += o.Length
	s.Value1 = append(s.Value1, o.Value1...)
	s.Value2 = append(s.Value2, o.Value2...)
}

// AppendPadded pads s to a byte boundary and appends the bytes of o.
func (s *BinaryString) AppendPadded(o BinaryString) {
	s.Length = s.NumBytes()*8 + o.NumBytes()*8
	s.Value1 = append(s.Value1, o.Value1...)
	s.Value2 = append(s.Value2, o.Value2...)
}

// Reconstruct reconstructs the bit string from the share and the
// Value1 of the previous party.
func (s BinaryString) Reconstruct(prevValue1 []byte) BitString {
	result := NewBitString(s.Length)
	for i := range result.Value {
		result.Value[i] = s.Value2[i] ^ prevValue1[i]
	}
	clearTail(result.Value, result.Length)
	return result
}

// ExternalSize returns the encoded size of the share.
func (s BinaryString) ExternalSize() int {
	return 8 + 2*s.NumBytes()
}

// ConcatBinaryStrings concatenates the shares, padding each to a byte
// boundary.
func ConcatBinaryStrings(shares []BinaryString) BinaryString {
	var result BinaryString
	for _, s := range shares {
		result.AppendPadded(s)
	}
	return result
}
