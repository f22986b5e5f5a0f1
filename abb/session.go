//
// Copyright (c) 2022-2026 Markku Rossi
//
// All rights reserved.
//

// Package abb implements the arithmetic black box of three parties
// over replicated secret sharing. All multiplications and openings
// are recorded and verified lazily in batches by Verify.
package abb

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/env"
	"github.com/markkurossi/abb/prg"
	"github.com/markkurossi/abb/share"
	"github.com/markkurossi/abb/transport"
	"github.com/markkurossi/text/superscript"
	"golang.org/x/crypto/hkdf"
)

// Session implements one party of the three-party engine.
type Session struct {
	Verbose bool
	cfg     *env.Config
	params  env.TripleParams
	setup   transport.Setup
	relay   transport.Relay
	tags    transport.TagCounter
	state   *State
}

// State holds the party's correlated randomness and the pending
// verification work.
type State struct {
	cr         *prg.CommonRandomness
	triples    Triples
	unverified share.BitString
	ver        Triples
	rep        Triples
}

// NewSession creates a session for the party setup.Party. The relay
// and the common randomness must be dedicated to this session.
func NewSession(cfg *env.Config, setup transport.Setup,
	relay transport.Relay, cr *prg.CommonRandomness) (*Session, error) {

	if cfg == nil {
		cfg = new(env.Config)
	}
	params := cfg.GetTriples()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		Verbose: cfg.Verbose,
		cfg:     cfg,
		params:  params,
		setup:   setup,
		relay:   relay,
		state: &State{
			cr: cr,
		},
	}, nil
}

// Bootstrap agrees on a session ID, runs the common randomness setup
// with a fresh seed from cfg, and creates the session.
func Bootstrap(cfg *env.Config, party share.Party,
	relay transport.Relay) (*Session, error) {

	if cfg == nil {
		cfg = new(env.Config)
	}
	sessionID, err := RunInit(party, relay, cfg.GetRandom())
	if err != nil {
		return nil, err
	}
	setup := transport.Setup{
		Party:     party,
		SessionID: sessionID,
	}
	var seed prg.Key
	if _, err := io.ReadFull(cfg.GetRandom(), seed[:]); err != nil {
		return nil, err
	}
	cr, err := RunCommonRandomness(setup, relay, seed)
	if err != nil {
		return nil, err
	}
	return NewSession(cfg, setup, relay, cr)
}

// RunInit agrees on a session ID. Each party contributes 32 random
// bytes and the session ID is the SHA-256 digest of all contributions
// in party order.
func RunInit(party share.Party, relay transport.Relay,
	r io.Reader) ([]byte, error) {

	var contrib [sha256.Size]byte
	if _, err := io.ReadFull(r, contrib[:]); err != nil {
		return nil, err
	}
	tag := transport.MakeTag(transport.ProtoInit, 0)
	others := []share.Party{party.Next(), party.Prev()}

	if err := relay.AskMessages(tag, others...); err != nil {
		return nil, err
	}
	if err := transport.SendToParties(relay, tag, contrib[:],
		others...); err != nil {
		return nil, err
	}
	values, err := transport.ReceiveFromParties(relay, tag, sha256.Size,
		others...)
	if err != nil {
		return nil, err
	}
	var all [share.NumParties][]byte
	all[party] = contrib[:]
	for i, p := range others {
		all[p] = values[i]
	}
	h := sha256.New()
	for _, c := range all {
		h.Write(c)
	}
	return h.Sum(nil), nil
}

// RunCommonRandomness establishes the pairwise streams of the party.
// The party derives the key it shares with the next party from seed
// and the session ID, sends it to the next party, and receives the key
// it shares with the previous party.
func RunCommonRandomness(setup transport.Setup, relay transport.Relay,
	seed prg.Key) (*prg.CommonRandomness, error) {

	var keyNext prg.Key
	kdf := hkdf.New(sha256.New, seed[:], setup.SessionID,
		[]byte("abb common randomness"))
	if _, err := io.ReadFull(kdf, keyNext[:]); err != nil {
		return nil, err
	}

	tag := transport.MakeTag(transport.ProtoCommonRand, 0)
	data, err := transport.SendToNextReceiveFromPrev(setup, relay, tag,
		keyNext[:], prg.KeySize)
	if err != nil {
		return nil, errors.Wrap(err, "common randomness")
	}
	var keyPrev prg.Key
	copy(keyPrev[:], data)
	if keyPrev == keyNext {
		return nil, transport.Verificationf("%v: %v sent our own key",
			setup.Party, setup.Prev())
	}
	return prg.NewCommonRandomness(keyPrev, keyNext), nil
}

// Debugf prints debugging message if Verbose debugging is enabled for
// this Session.
func (s *Session) Debugf(format string, a ...interface{}) {
	if !s.Verbose {
		return
	}
	fmt.Printf(format, a...)
}

// IDString returns the party ID as string.
func (s *Session) IDString() string {
	return superscript.Itoa(s.setup.Index())
}

// Party returns the session's party.
func (s *Session) Party() share.Party {
	return s.setup.Party
}

// Setup returns the session setup.
func (s *Session) Setup() transport.Setup {
	return s.setup
}

// Randomness returns the party's common randomness.
func (s *Session) Randomness() *prg.CommonRandomness {
	return s.state.cr
}

// PendingTriples returns the number of recorded triples not yet
// verified.
func (s *Session) PendingTriples() int {
	return s.state.triples.Len()
}

// PendingOpens returns the number of opened bits not yet verified.
func (s *Session) PendingOpens() int {
	return s.state.unverified.Length
}

// Abort notifies the other parties that this party gives up the
// session.
func (s *Session) Abort() error {
	return s.relay.Abort()
}

// fail aborts the session and returns err.
func (s *Session) fail(err error) error {
	s.Debugf("%s: abort: %v\n", s.IDString(), err)
	s.relay.Abort()
	return err
}
