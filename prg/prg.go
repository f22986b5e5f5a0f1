//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package prg implements deterministic pseudorandom streams and the
// pairwise common randomness of the three parties.
package prg

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// KeySize defines the stream key size in bytes.
const KeySize = chacha20.KeySize

// Key defines a stream key.
type Key [KeySize]byte

// Stream implements a ChaCha20 keystream generator.
type Stream struct {
	cipher *chacha20.Cipher
}

// NewStream creates a new keystream for the argument key.
func NewStream(key Key) *Stream {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Key and nonce sizes are fixed.
		panic(err)
	}
	return &Stream{
		cipher: c,
	}
}

// Read fills data with keystream bytes. It never fails.
func (s *Stream) Read(data []byte) (int, error) {
	for i := range data {
		data[i] = 0
	}
	s.cipher.XORKeyStream(data, data)
	return len(data), nil
}

// Bytes returns the next n keystream bytes.
func (s *Stream) Bytes(n int) []byte {
	buf := make([]byte, n)
	s.Read(buf)
	return buf
}

// Byte returns the next keystream byte.
func (s *Stream) Byte() byte {
	var buf [1]byte
	s.Read(buf[:])
	return buf[0]
}

// Uint64 returns the next 8 keystream bytes as a little-endian uint64.
func (s *Stream) Uint64() uint64 {
	var buf [8]byte
	s.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// Intn returns a uniformly distributed integer in [0, n). It panics
// if n <= 0.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		panic("prg: invalid argument to Intn")
	}
	bound := uint64(n)
	limit := ^uint64(0) - (^uint64(0)%bound+1)%bound
	for {
		v := s.Uint64()
		if v <= limit {
			return int(v % bound)
		}
	}
}

// Perm returns a random permutation of [0, m) by the Fisher-Yates
// shuffle.
func (s *Stream) Perm(m int) []int {
	perm := make([]int, m)
	for i := range perm {
		perm[i] = i
	}
	for j := 0; j < m; j++ {
		k := j + s.Intn(m-j)
		perm[j], perm[k] = perm[k], perm[j]
	}
	return perm
}
