//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package abb

import (
	"github.com/markkurossi/abb/transport"
)

// Protocol errors. Test errors with errors.Is.
var (
	ErrInvalidMessage = transport.ErrInvalidMessage
	ErrMissingMessage = transport.ErrMissingMessage
	ErrSendMessage    = transport.ErrSendMessage
	ErrVerification   = transport.ErrVerification
)

// AbortError reports that a party aborted the protocol.
type AbortError = transport.AbortError
