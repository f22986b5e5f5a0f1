//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package transport

import (
	"fmt"

	"github.com/markkurossi/abb/share"
)

// Protocol identifies the protocol of a message tag.
type Protocol uint32

// Protocol identifiers.
const (
	ProtoCommonRand  Protocol = 2
	ProtoOpen        Protocol = 3
	ProtoOpenTo      Protocol = 4
	ProtoAND         Protocol = 5
	ProtoVerifyArray Protocol = 6
	ProtoSacrifice   Protocol = 7
	ProtoInit        Protocol = 8
	ProtoAbort       Protocol = 0xffffffff
)

var protoNames = map[Protocol]string{
	ProtoCommonRand:  "CommonRand",
	ProtoOpen:        "Open",
	ProtoOpenTo:      "OpenTo",
	ProtoAND:         "AND",
	ProtoVerifyArray: "VerifyArray",
	ProtoSacrifice:   "Sacrifice",
	ProtoInit:        "Init",
	ProtoAbort:       "Abort",
}

func (p Protocol) String() string {
	name, ok := protoNames[p]
	if ok {
		return name
	}
	return fmt.Sprintf("{Protocol %d}", uint32(p))
}

// Tag identifies a message. The protocol identifier is in the upper
// 32 bits and the session tag offset in the lower 32 bits.
type Tag uint64

// MakeTag creates a tag from the protocol and offset.
func MakeTag(proto Protocol, offset uint32) Tag {
	return Tag(uint64(proto)<<32 | uint64(offset))
}

// Protocol returns the tag's protocol.
func (t Tag) Protocol() Protocol {
	return Protocol(t >> 32)
}

// Offset returns the tag's offset.
func (t Tag) Offset() uint32 {
	return uint32(t)
}

func (t Tag) String() string {
	return fmt.Sprintf("%v/%d", t.Protocol(), t.Offset())
}

// AbortTag is the tag of abort notifications.
var AbortTag = MakeTag(ProtoAbort, 0)

// TagCounter allocates session unique tag offsets.
type TagCounter struct {
	offset uint32
}

// Next increments the counter and returns the new offset.
func (c *TagCounter) Next() uint32 {
	c.offset++
	return c.offset
}

// Tag allocates a fresh tag for the protocol.
func (c *TagCounter) Tag(proto Protocol) Tag {
	return MakeTag(proto, c.Next())
}

// Setup defines a party's position in the ring.
type Setup struct {
	Party     share.Party
	SessionID []byte
}

// Index returns the participant index.
func (s Setup) Index() int {
	return s.Party.Index()
}

// Prev returns the previous party.
func (s Setup) Prev() share.Party {
	return s.Party.Prev()
}

// Next returns the next party.
func (s Setup) Next() share.Party {
	return s.Party.Next()
}
