//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package share implements the replicated secret sharing data model
// of the three-party ABB engine.
//
// Every share type holds a pair (Value1, Value2). For the shared
// secret X and the party P with the previous party P-1 in the ring
// 0->1->2->0, the values satisfy
//
//	P.Value2 op (P-1).Value1 == X
//
// where op is addition modulo 2^64 for arithmetic shares and XOR for
// boolean shares.
package share

import (
	"github.com/cockroachdb/errors"
	"github.com/markkurossi/text/superscript"
)

// Party identifies one of the three parties.
type Party int

// The three parties of the ring.
const (
	Party0 Party = iota
	Party1
	Party2
)

// NumParties defines the number of parties in the ring.
const NumParties = 3

// Parties lists all parties in index order.
var Parties = [NumParties]Party{Party0, Party1, Party2}

// PartyFromIndex converts the argument index to a Party.
func PartyFromIndex(idx int) (Party, error) {
	if idx < 0 || idx >= NumParties {
		return 0, errors.Newf("invalid party index %d", idx)
	}
	return Party(idx), nil
}

// Next returns the next party in the ring.
func (p Party) Next() Party {
	return (p + 1) % NumParties
}

// Prev returns the previous party in the ring.
func (p Party) Prev() Party {
	return (p + NumParties - 1) % NumParties
}

// Index returns the party index.
func (p Party) Index() int {
	return int(p)
}

func (p Party) String() string {
	return "P" + superscript.Itoa(int(p))
}
