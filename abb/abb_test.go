//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"io"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/env"
	"github.com/markkurossi/abb/prg"
	"github.com/markkurossi/abb/share"
	"github.com/markkurossi/abb/transport"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var testParams = env.TripleParams{
	N: 256,
	L: 16,
	B: 2,
	C: 1,
}

type sessions [share.NumParties]*Session

func newSessions(t *testing.T) (sessions, *transport.LocalNetwork) {
	nw := transport.NewLocalNetwork()

	var seed prg.Key
	seed[0] = 42
	crs := prg.Deal(seed)

	cfg := &env.Config{
		Triples: testParams,
	}
	var result sessions
	for _, p := range share.Parties {
		setup := transport.Setup{
			Party:     p,
			SessionID: []byte("test session"),
		}
		s, err := NewSession(cfg, setup, nw.Relay(p), crs[p])
		require.NoError(t, err)
		result[p] = s
	}
	return result, nw
}

// run runs f for all parties concurrently and returns the parties'
// errors. A failing party aborts the session so that the other
// parties do not block.
func (ss sessions) run(f func(s *Session) error) [share.NumParties]error {
	var errs [share.NumParties]error
	var g errgroup.Group
	for _, s := range ss {
		g.Go(func() error {
			err := f(s)
			if err != nil {
				s.Abort()
			}
			errs[s.Party()] = err
			return nil
		})
	}
	g.Wait()
	return errs
}

func (ss sessions) runOK(t *testing.T, f func(s *Session) error) {
	for p, err := range ss.run(f) {
		require.NoError(t, err, "party %d", p)
	}
}

func testRand(seed byte) io.Reader {
	var key prg.Key
	key[0] = seed
	key[1] = 0xab
	return prg.NewStream(key)
}

func dealBits(t *testing.T, r io.Reader, bits int) (
	share.BitString, [share.NumParties]share.BinaryString) {

	value := share.NewBitString(bits)
	buf := make([]byte, len(value.Value))
	_, err := io.ReadFull(r, buf)
	require.NoError(t, err)
	for i := 0; i < bits; i++ {
		value.Set(i, buf[i/8]&(1<<(i%8)) != 0)
	}
	shares, err := share.DealBinaryString(value, r)
	require.NoError(t, err)
	return value, shares
}

func TestNewSessionParams(t *testing.T) {
	nw := transport.NewLocalNetwork()
	cfg := &env.Config{
		Triples: env.TripleParams{N: 100, L: 16, B: 2, C: 1},
	}
	_, err := NewSession(cfg, transport.Setup{}, nw.Relay(share.Party0),
		nil)
	require.Error(t, err)
}

func TestRunCommonRandomness(t *testing.T) {
	nw := transport.NewLocalNetwork()
	var crs [share.NumParties]*prg.CommonRandomness

	var g errgroup.Group
	for _, p := range share.Parties {
		g.Go(func() error {
			var seed prg.Key
			seed[0] = byte(p) + 1
			setup := transport.Setup{
				Party:     p,
				SessionID: []byte("cr"),
			}
			cr, err := RunCommonRandomness(setup, nw.Relay(p), seed)
			crs[p] = cr
			return err
		})
	}
	require.NoError(t, g.Wait())

	var zero [16]byte
	sum := make([]byte, len(zero))
	var elem share.Element
	for _, cr := range crs {
		for i, b := range cr.RandomZero(len(zero)) {
			sum[i] ^= b
		}
		elem += cr.RandomZeroElement()
	}
	require.Equal(t, zero[:], sum)
	require.Equal(t, share.Element(0), elem)

	var shares [share.NumParties]share.BinaryString
	for p, cr := range crs {
		shares[p] = cr.RandomBits(77)
	}
	require.True(t, share.Consistent(shares))
}

func TestRunCommonRandomnessSameSeed(t *testing.T) {
	nw := transport.NewLocalNetwork()
	var errs [share.NumParties]error

	var g errgroup.Group
	for _, p := range share.Parties {
		g.Go(func() error {
			var seed prg.Key
			setup := transport.Setup{
				Party:     p,
				SessionID: []byte("cr"),
			}
			_, errs[p] = RunCommonRandomness(setup, nw.Relay(p), seed)
			return nil
		})
	}
	g.Wait()
	for _, err := range errs {
		require.True(t, errors.Is(err, ErrVerification), "got %v", err)
	}
}

func TestBootstrap(t *testing.T) {
	nw := transport.NewLocalNetwork()
	cfg := &env.Config{
		Triples: testParams,
	}
	var ss sessions

	var g errgroup.Group
	for _, p := range share.Parties {
		g.Go(func() error {
			s, err := Bootstrap(cfg, p, nw.Relay(p))
			ss[p] = s
			return err
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, ss[0].Setup().SessionID, ss[1].Setup().SessionID)
	require.Equal(t, ss[0].Setup().SessionID, ss[2].Setup().SessionID)
	require.Len(t, ss[0].Setup().SessionID, 32)

	value, shares := dealBits(t, testRand(1), 40)
	var opened [share.NumParties]share.BitString
	ss.runOK(t, func(s *Session) error {
		ones := share.BinaryStringFromConstant(allOnes(40), s.Party())
		and, err := s.AND(shares[s.Party()], ones)
		if err != nil {
			return err
		}
		opened[s.Party()], err = s.Open(and)
		return err
	})
	for _, o := range opened {
		require.True(t, value.Equal(o))
	}
}

func TestAbort(t *testing.T) {
	ss, _ := newSessions(t)
	_, shares := dealBits(t, testRand(2), 16)

	errs := ss.run(func(s *Session) error {
		if s.Party() == share.Party0 {
			return s.Abort()
		}
		_, err := s.Open(shares[s.Party()])
		return err
	})
	require.NoError(t, errs[share.Party0])
	for _, err := range errs[1:] {
		_, ok := transport.IsAbort(err)
		require.True(t, ok, "expected abort, got %v", err)
	}
}

func allOnes(bits int) share.BitString {
	result := share.NewBitString(bits)
	for i := 0; i < bits; i++ {
		result.Set(i, true)
	}
	return result
}
