//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements global environment for the ABB engine.
package env

import (
	"crypto/rand"
	"io"

	"github.com/cockroachdb/errors"
)

// Config defines the per-session configuration for the ABB engine.
// Config must not be modified after being passed to a session. It is
// safe for concurrent use by multiple sessions as they do not modify
// it.
type Config struct {
	Rand    io.Reader
	Verbose bool
	Triples TripleParams
}

// GetRandom returns the source of entropy for session seeds.
func (config *Config) GetRandom() io.Reader {
	if config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// GetTriples returns the triple generation parameters. The zero value
// selects DefaultTripleParams.
func (config *Config) GetTriples() TripleParams {
	if config.Triples.N == 0 {
		return DefaultTripleParams()
	}
	return config.Triples
}

// TripleParams define the cut-and-choose parameters of the triple
// generation. Each generation produces N verified triples by opening
// C triples out of each of the L buckets and sacrificing B-1 triples
// for each output triple.
type TripleParams struct {
	N int
	L int
	B int
	C int
}

// DefaultTripleParams returns the production triple parameters.
func DefaultTripleParams() TripleParams {
	return TripleParams{
		N: 1 << 20,
		L: 1 << 9,
		B: 2,
		C: 1,
	}
}

// X returns the bucket size.
func (p TripleParams) X() int {
	return p.N/p.L + p.C
}

// M returns the number of raw triples consumed by one generation.
func (p TripleParams) M() int {
	return (p.N+p.C*p.L)*(p.B-1) + p.N
}

// Validate checks that the parameters describe a valid bucket layout.
func (p TripleParams) Validate() error {
	if p.N <= 0 || p.N%8 != 0 {
		return errors.Newf("invalid N=%d: must be a positive multiple of 8",
			p.N)
	}
	if p.L <= 0 || p.N%p.L != 0 {
		return errors.Newf("invalid L=%d: must divide N=%d", p.L, p.N)
	}
	if p.B < 2 {
		return errors.Newf("invalid B=%d: must be at least 2", p.B)
	}
	if p.C < 1 {
		return errors.Newf("invalid C=%d: must be at least 1", p.C)
	}
	return nil
}
