//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package transport

import (
	"encoding/binary"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/p2p"
	"github.com/markkurossi/abb/share"
	"golang.org/x/sync/errgroup"
)

// Link implements a framed point-to-point connection. Both p2p.Conn
// and p2p.SecureConn implement it.
type Link interface {
	SendFrame(data []byte) error
	ReceiveFrame() ([]byte, error)
	IOStats() p2p.IOStats
	Close() error
}

// ConnRelay implements Relay over point-to-point links. Each link has
// a reader goroutine that delivers the frames to the party's mailbox.
type ConnRelay struct {
	self    share.Party
	mailbox *Mailbox
	links   map[share.Party]Link
	locks   map[share.Party]*sync.Mutex
	readers errgroup.Group
}

// NewConnRelay creates a relay for the party self over the links to
// the other two parties.
func NewConnRelay(self share.Party, links map[share.Party]Link) (
	*ConnRelay, error) {

	for _, p := range share.Parties {
		if p == self {
			continue
		}
		if _, ok := links[p]; !ok {
			return nil, errors.Newf("%v: no link to %v", self, p)
		}
	}

	r := &ConnRelay{
		self:    self,
		mailbox: NewMailbox(self),
		links:   links,
		locks:   make(map[share.Party]*sync.Mutex),
	}
	for p, link := range links {
		r.locks[p] = new(sync.Mutex)
		p, link := p, link
		r.readers.Go(func() error {
			return r.reader(p, link)
		})
	}
	return r, nil
}

func (r *ConnRelay) reader(from share.Party, link Link) error {
	for {
		frame, err := link.ReceiveFrame()
		if err != nil {
			r.mailbox.Fail(errors.Mark(
				errors.Wrapf(err, "%v: link to %v", r.self, from),
				ErrMissingMessage))
			return err
		}
		if len(frame) < 8 {
			err = invalidf("%v: short frame from %v", r.self, from)
			r.mailbox.Fail(err)
			return err
		}
		tag := Tag(binary.BigEndian.Uint64(frame))
		if err := r.mailbox.Deliver(from, tag, frame[8:]); err != nil {
			r.mailbox.Fail(err)
			return err
		}
	}
}

// AskMessages implements Relay.AskMessages.
func (r *ConnRelay) AskMessages(tag Tag, from ...share.Party) error {
	return r.mailbox.Ask(tag, from...)
}

// Send implements Relay.Send.
func (r *ConnRelay) Send(tag Tag, to share.Party, payload []byte) error {
	link, ok := r.links[to]
	if !ok {
		return errors.Mark(errors.Newf("%v: no link to %v", r.self, to),
			ErrSendMessage)
	}
	frame := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint64(frame, uint64(tag))
	copy(frame[8:], payload)

	lock := r.locks[to]
	lock.Lock()
	err := link.SendFrame(frame)
	lock.Unlock()
	if err != nil {
		return errors.Mark(
			errors.Wrapf(err, "%v: send %v to %v", r.self, tag, to),
			ErrSendMessage)
	}
	return nil
}

// Receive implements Relay.Receive.
func (r *ConnRelay) Receive(tag Tag, from share.Party, size int) (
	[]byte, error) {
	return r.mailbox.Wait(tag, from, size)
}

// Abort implements Relay.Abort.
func (r *ConnRelay) Abort() error {
	var result error
	for p := range r.links {
		if err := r.Send(AbortTag, p, nil); err != nil && result == nil {
			result = err
		}
	}
	return result
}

// Close implements Relay.Close. It closes all links and waits for the
// reader goroutines to terminate.
func (r *ConnRelay) Close() error {
	var result error
	for p, link := range r.links {
		lock := r.locks[p]
		lock.Lock()
		err := link.Close()
		lock.Unlock()
		if err != nil && result == nil {
			result = err
		}
	}
	r.readers.Wait()
	r.mailbox.Fail(errors.Mark(errors.New("relay closed"), ErrMissingMessage))
	return result
}

// Stats returns the sum of the links' I/O statistics.
func (r *ConnRelay) Stats() p2p.IOStats {
	var result p2p.IOStats
	for _, link := range r.links {
		result = result.Add(link.IOStats())
	}
	return result
}
