//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package transport implements the tagged message relay between the
// three parties.
package transport

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/markkurossi/abb/share"
)

// Protocol errors. All errors returned by the relay and the protocols
// built on it are marked with one of these, or are AbortErrors.
var (
	ErrInvalidMessage = errors.New("invalid message")
	ErrMissingMessage = errors.New("missing message")
	ErrSendMessage    = errors.New("send message failed")
	ErrVerification   = errors.New("verification failed")
)

// AbortError reports that a party aborted the protocol.
type AbortError struct {
	Party share.Party
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("protocol aborted by %v", e.Party)
}

// IsAbort tests if err is an AbortError and returns the aborting
// party.
func IsAbort(err error) (share.Party, bool) {
	var abort *AbortError
	if errors.As(err, &abort) {
		return abort.Party, true
	}
	return 0, false
}

// Verificationf creates a verification error with the formatted
// context.
func Verificationf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrVerification)
}

func invalidf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidMessage)
}
