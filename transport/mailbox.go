//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package transport

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/share"
)

type mailKey struct {
	from share.Party
	tag  Tag
}

// Mailbox buffers the received messages of a party until they are
// received by tag.
type Mailbox struct {
	self   share.Party
	m      sync.Mutex
	c      *sync.Cond
	asked  map[mailKey]bool
	frames map[mailKey][]byte
	err    error
}

// NewMailbox creates a new mailbox for the party.
func NewMailbox(self share.Party) *Mailbox {
	mb := &Mailbox{
		self:   self,
		asked:  make(map[mailKey]bool),
		frames: make(map[mailKey][]byte),
	}
	mb.c = sync.NewCond(&mb.m)
	return mb
}

// Ask registers the tag as expected from the parties.
func (mb *Mailbox) Ask(tag Tag, from ...share.Party) error {
	mb.m.Lock()
	defer mb.m.Unlock()

	for _, p := range from {
		if p == mb.self {
			return invalidf("%v: ask %v from self", mb.self, tag)
		}
		mb.asked[mailKey{from: p, tag: tag}] = true
	}
	return nil
}

// Deliver stores the message from the party.
func (mb *Mailbox) Deliver(from share.Party, tag Tag, payload []byte) error {
	mb.m.Lock()
	defer mb.m.Unlock()

	if tag == AbortTag {
		mb.fail(&AbortError{Party: from})
		return nil
	}

	key := mailKey{from: from, tag: tag}
	if _, ok := mb.frames[key]; ok {
		return invalidf("%v: duplicate message %v from %v", mb.self, tag, from)
	}
	mb.frames[key] = payload
	mb.c.Broadcast()
	return nil
}

// Wait waits for the message tag from the party.
func (mb *Mailbox) Wait(tag Tag, from share.Party, size int) ([]byte, error) {
	mb.m.Lock()
	defer mb.m.Unlock()

	key := mailKey{from: from, tag: tag}
	if !mb.asked[key] {
		return nil, invalidf("%v: message %v from %v not asked",
			mb.self, tag, from)
	}
	for {
		data, ok := mb.frames[key]
		if ok {
			delete(mb.frames, key)
			delete(mb.asked, key)
			if err := checkSize(tag, from, data, size); err != nil {
				return nil, err
			}
			return data, nil
		}
		if mb.err != nil {
			return nil, errors.Wrapf(mb.err, "%v: receive %v from %v",
				mb.self, tag, from)
		}
		mb.c.Wait()
	}
}

// Fail fails all pending and future waits with err.
func (mb *Mailbox) Fail(err error) {
	mb.m.Lock()
	defer mb.m.Unlock()
	mb.fail(err)
}

func (mb *Mailbox) fail(err error) {
	if mb.err == nil {
		mb.err = err
	}
	mb.c.Broadcast()
}

// Pending returns the number of buffered messages.
func (mb *Mailbox) Pending() int {
	mb.m.Lock()
	defer mb.m.Unlock()
	return len(mb.frames)
}
