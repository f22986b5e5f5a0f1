//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package transport

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/p2p"
	"github.com/markkurossi/abb/share"
)

// TamperFunc can modify a message in transit. It is used to simulate
// a cheating party.
type TamperFunc func(from, to share.Party, tag Tag, payload []byte)

// LocalNetwork implements an in-memory relay network for the three
// parties of one process.
type LocalNetwork struct {
	m         sync.Mutex
	mailboxes [share.NumParties]*Mailbox
	closed    [share.NumParties]bool
	stats     [share.NumParties]p2p.IOStats
	tamper    TamperFunc
}

// NewLocalNetwork creates a new in-memory relay network.
func NewLocalNetwork() *LocalNetwork {
	nw := new(LocalNetwork)
	for _, p := range share.Parties {
		nw.mailboxes[p] = NewMailbox(p)
		nw.stats[p] = p2p.NewIOStats()
	}
	return nw
}

// SetTamper sets the message tamper function.
func (nw *LocalNetwork) SetTamper(f TamperFunc) {
	nw.m.Lock()
	nw.tamper = f
	nw.m.Unlock()
}

// Relay returns the relay of the party p.
func (nw *LocalNetwork) Relay(p share.Party) Relay {
	return &localRelay{
		nw:   nw,
		self: p,
	}
}

// Stats returns the party's I/O statistics.
func (nw *LocalNetwork) Stats(p share.Party) p2p.IOStats {
	return nw.stats[p]
}

func (nw *LocalNetwork) send(from, to share.Party, tag Tag,
	payload []byte) error {

	nw.m.Lock()
	closed := nw.closed[from] || nw.closed[to]
	tamper := nw.tamper
	nw.m.Unlock()

	if closed {
		return errors.Mark(
			errors.Newf("%v: send %v to %v: relay closed", from, tag, to),
			ErrSendMessage)
	}

	data := make([]byte, len(payload))
	copy(data, payload)
	if tamper != nil {
		tamper(from, to, tag, data)
	}
	nw.stats[from].Sent.Add(uint64(len(data)))
	nw.stats[to].Recvd.Add(uint64(len(data)))
	nw.stats[from].Flushed.Add(1)

	return nw.mailboxes[to].Deliver(from, tag, data)
}

type localRelay struct {
	nw   *LocalNetwork
	self share.Party
}

func (r *localRelay) AskMessages(tag Tag, from ...share.Party) error {
	return r.nw.mailboxes[r.self].Ask(tag, from...)
}

func (r *localRelay) Send(tag Tag, to share.Party, payload []byte) error {
	if to == r.self {
		return invalidf("%v: send %v to self", r.self, tag)
	}
	return r.nw.send(r.self, to, tag, payload)
}

func (r *localRelay) Receive(tag Tag, from share.Party, size int) (
	[]byte, error) {
	return r.nw.mailboxes[r.self].Wait(tag, from, size)
}

func (r *localRelay) Abort() error {
	for _, p := range share.Parties {
		if p != r.self {
			r.nw.mailboxes[p].Deliver(r.self, AbortTag, nil)
		}
	}
	return nil
}

func (r *localRelay) Close() error {
	r.nw.m.Lock()
	r.nw.closed[r.self] = true
	r.nw.m.Unlock()

	r.nw.mailboxes[r.self].Fail(
		errors.Mark(errors.New("relay closed"), ErrMissingMessage))
	return nil
}
