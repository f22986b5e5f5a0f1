//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package transport

import (
	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/share"
)

// AnySize disables the received message size check.
const AnySize = -1

// Relay delivers tagged messages between the parties. Messages are
// matched by the sender and tag so they may arrive in any order.
type Relay interface {
	// AskMessages registers the tag as expected from the argument
	// parties. A message can be received only after it was asked.
	AskMessages(tag Tag, from ...share.Party) error

	// Send sends the payload to the party to.
	Send(tag Tag, to share.Party, payload []byte) error

	// Receive receives the message tag from the party from. If size
	// is not AnySize, the message must have exactly size bytes.
	Receive(tag Tag, from share.Party, size int) ([]byte, error)

	// Abort notifies all other parties that this party aborts the
	// session.
	Abort() error

	// Close closes the relay.
	Close() error
}

// SendToNextReceiveFromPrev sends the payload to the next party and
// receives the message of the same tag from the previous party.
func SendToNextReceiveFromPrev(setup Setup, relay Relay, tag Tag,
	payload []byte, size int) ([]byte, error) {

	if err := relay.AskMessages(tag, setup.Prev()); err != nil {
		return nil, err
	}
	if err := relay.Send(tag, setup.Next(), payload); err != nil {
		return nil, err
	}
	return relay.Receive(tag, setup.Prev(), size)
}

// SendToParties sends the payload to all argument parties.
func SendToParties(relay Relay, tag Tag, payload []byte,
	to ...share.Party) error {

	for _, p := range to {
		if err := relay.Send(tag, p, payload); err != nil {
			return err
		}
	}
	return nil
}

// ReceiveFromParties receives the message tag from all argument
// parties. The messages must have been asked.
func ReceiveFromParties(relay Relay, tag Tag, size int,
	from ...share.Party) ([][]byte, error) {

	result := make([][]byte, len(from))
	for i, p := range from {
		data, err := relay.Receive(tag, p, size)
		if err != nil {
			return nil, err
		}
		result[i] = data
	}
	return result, nil
}

func checkSize(tag Tag, from share.Party, data []byte, size int) error {
	if size != AnySize && len(data) != size {
		return errors.Mark(
			errors.Newf("message %v from %v: got %d bytes, expected %d",
				tag, from, len(data), size),
			ErrInvalidMessage)
	}
	return nil
}
