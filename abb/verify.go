//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/prg"
	"github.com/markkurossi/abb/share"
	"github.com/markkurossi/abb/transport"
)

// Verify verifies all openings and multiplications since the previous
// Verify. All parties must call Verify at the same point of the
// computation.
func (s *Session) Verify() error {
	if s.state.unverified.Length > 0 {
		err := s.VerifyArrayOfBits(s.state.unverified)
		if err != nil {
			return err
		}
		s.state.unverified = share.BitString{}
	}
	if s.state.triples.Len() > 0 {
		s.state.triples.Pad()
		triples := s.state.triples
		s.state.triples = Triples{}

		s.Debugf("%s: verify %d triples\n", s.IDString(), triples.Len())
		return s.batchVerification(triples)
	}
	return nil
}

// VerifyArrayOfBits checks that all parties opened the same values.
// Each party sends the hash of its opened values to the next party and
// compares the hash from the previous party with its own.
func (s *Session) VerifyArrayOfBits(x share.BitString) error {
	tag := s.tags.Tag(transport.ProtoVerifyArray)
	digest := sha256.Sum256(x.Bytes())

	prev, err := transport.SendToNextReceiveFromPrev(s.setup, s.relay, tag,
		digest[:], sha256.Size)
	if err != nil {
		return errors.Wrap(err, "verify opened values")
	}
	if subtle.ConstantTimeCompare(digest[:], prev) != 1 {
		return s.fail(transport.Verificationf(
			"%v: opened values differ from %v's", s.setup.Party,
			s.setup.Prev()))
	}
	return nil
}

// Coin returns a common random bit string of the argument length.
func (s *Session) Coin(bits int) (share.BitString, error) {
	r := s.state.cr.RandomBits(bits)
	result, err := s.openRaw(r)
	if err != nil {
		return share.BitString{}, err
	}
	if err := s.VerifyArrayOfBits(result); err != nil {
		return share.BitString{}, err
	}
	return result, nil
}

// GenValidTriples generates N verified random triples. It generates
// M raw triples, opens C triples from each of the L buckets of every
// sacrifice block, and verifies the N output triples by sacrificing
// one triple from each of the B-1 blocks.
func (s *Session) GenValidTriples() (Triples, error) {
	p := s.params
	n, l, b, c := p.N, p.L, p.B, p.C
	x := p.X()
	m := p.M()

	s.Debugf("%s: generate %d triples from %d\n", s.IDString(), n, m)

	var raw Triples
	raw.A = s.state.cr.RandomBits(m)
	raw.B = s.state.cr.RandomBits(m)
	var err error
	raw.C, err = s.andUnchecked(raw.A, raw.B)
	if err != nil {
		return Triples{}, err
	}

	coin, err := s.Coin(8 * prg.KeySize)
	if err != nil {
		return Triples{}, err
	}
	var key prg.Key
	copy(key[:], coin.Bytes())
	stream := prg.NewStream(key)

	bucketPerms := make([][]int, (b-1)*l)
	for i := range bucketPerms {
		bucketPerms[i] = stream.Perm(x)
	}
	blockPerms := make([][]int, b-1)
	for k := range blockPerms {
		blockPerms[k] = stream.Perm(l)
	}

	var opened Triples
	for k := 0; k < b-1; k++ {
		for _, j := range blockPerms[k] {
			offset := (k+1)*n + k*l*c + x*j
			for i := 0; i < c; i++ {
				opened.push(raw.get(offset + bucketPerms[k*l+j][i]))
			}
		}
	}
	if err := s.TripleVerificationWithOpening(opened); err != nil {
		return Triples{}, err
	}

	result, rest := raw.Split(n)
	for k := 0; k < b-1; k++ {
		var sacrifice Triples
		for _, j := range blockPerms[k] {
			offset := k*(n+l*c) + x*j
			for i := c; i < x; i++ {
				sacrifice.push(rest.get(offset + bucketPerms[k*l+j][i]))
			}
		}
		err := s.TripleVerificationWithoutOpening(result, sacrifice)
		if err != nil {
			return Triples{}, err
		}
	}
	return result, nil
}

// TripleVerificationWithOpening opens the triples and checks that
// C = A AND B.
func (s *Session) TripleVerificationWithOpening(t Triples) error {
	length := t.Len()
	padded := t.A.NumBytes() * 8

	all := share.ConcatBinaryStrings([]share.BinaryString{t.A, t.B, t.C})

	opened, err := s.openForTriples(all)
	if err != nil {
		return err
	}
	a, rest := opened.Split(padded)
	b, c := rest.Split(padded)
	if !c.Equal(a.AND(b)) {
		return s.fail(transport.Verificationf(
			"%v: %d opened triples are not valid", s.setup.Party, length))
	}
	return nil
}

// TripleVerificationWithoutOpening verifies the triples xyz by
// sacrificing the triples abc. Both must have the same byte aligned
// length.
func (s *Session) TripleVerificationWithoutOpening(xyz, abc Triples) error {
	length := xyz.Len()
	if length%8 != 0 || abc.Len() != length ||
		xyz.B.Length != length || xyz.C.Length != length ||
		abc.B.Length != length || abc.C.Length != length {
		return errors.Newf("sacrifice: invalid triple lengths %d and %d",
			length, abc.Len())
	}
	tag := s.tags.Tag(transport.ProtoSacrifice)

	rho := abc.A.XOR(xyz.A)
	sigma := abc.B.XOR(xyz.B)
	rs := rho.Clone()
	rs.Append(sigma)

	opened, err := s.openForTriples(rs)
	if err != nil {
		return err
	}
	rhoOpen, sigmaOpen := opened.Split(length)

	sh := abc.C.XOR(xyz.C).
		XOR(xyz.A.ANDScalar(sigmaOpen)).
		XOR(xyz.B.ANDScalar(rhoOpen)).
		XORScalar(rhoOpen.AND(sigmaOpen))

	tau := hashShare(length, sh.Value1)
	gamma := hashShare(length, sh.Value2)

	prev, err := transport.SendToNextReceiveFromPrev(s.setup, s.relay, tag,
		tau[:], sha256.Size)
	if err != nil {
		return errors.Wrap(err, "sacrifice")
	}
	if subtle.ConstantTimeCompare(prev, gamma[:]) != 1 {
		return s.fail(transport.Verificationf(
			"%v: sacrifice of %d triples failed", s.setup.Party, length))
	}
	return nil
}

func hashShare(length int, value []byte) [sha256.Size]byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(length))

	h := sha256.New()
	h.Write(buf[:])
	h.Write(value)

	var result [sha256.Size]byte
	h.Sum(result[:0])
	return result
}

// batchVerification verifies the triples against verified triples.
// Short batches are served from the ver and rep pools so that each
// generation is amortized over many verifications.
func (s *Session) batchVerification(t Triples) error {
	l := t.Len()
	n := s.params.N

	if l > n {
		var valid Triples
		for valid.Len() < l {
			gen, err := s.GenValidTriples()
			if err != nil {
				return err
			}
			valid.Append(gen)
		}
		valid, _ = valid.Split(l)
		return s.TripleVerificationWithoutOpening(t, valid)
	}

	st := s.state
	if st.ver.Len() == 0 {
		ver, err := s.GenValidTriples()
		if err != nil {
			return err
		}
		rep, err := s.GenValidTriples()
		if err != nil {
			return err
		}
		st.ver, st.rep = ver, rep
	}

	valid, ver := st.ver.Split(l)
	if st.rep.Len() < l {
		missing := l - st.rep.Len()
		ver.Append(st.rep)
		rep, err := s.GenValidTriples()
		if err != nil {
			return err
		}
		head, tail := rep.Split(missing)
		ver.Append(head)
		st.ver, st.rep = ver, tail
	} else {
		head, tail := st.rep.Split(l)
		ver.Append(head)
		st.ver, st.rep = ver, tail
	}
	return s.TripleVerificationWithoutOpening(t, valid)
}
