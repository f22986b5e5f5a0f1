//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

// SecureConn seals all frames of a Conn with ChaCha20-Poly1305. Each
// direction has its own key and a frame counter nonce so replayed,
// reordered, or modified frames fail to open.
type SecureConn struct {
	*Conn
	send    cipher.AEAD
	recv    cipher.AEAD
	sendSeq uint64
	recvSeq uint64
}

// Handshake runs an ephemeral X25519 key agreement over conn and
// derives the frame keys bound to sessionID. The client and server
// sides must pass opposite client values.
func Handshake(conn *Conn, client bool, sessionID []byte,
	r io.Reader) (*SecureConn, error) {

	if r == nil {
		r = rand.Reader
	}
	var priv [curve25519.ScalarSize]byte
	if _, err := io.ReadFull(r, priv[:]); err != nil {
		return nil, err
	}
	pub, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return nil, err
	}
	if err := conn.SendData(pub); err != nil {
		return nil, err
	}
	if err := conn.Flush(); err != nil {
		return nil, err
	}
	peerPub, err := conn.ReceiveData()
	if err != nil {
		return nil, err
	}
	shared, err := curve25519.X25519(priv[:], peerPub)
	if err != nil {
		return nil, errors.Wrap(err, "key agreement failed")
	}

	var clientPub, serverPub []byte
	if client {
		clientPub, serverPub = pub, peerPub
	} else {
		clientPub, serverPub = peerPub, pub
	}
	salt := make([]byte, 0, len(sessionID)+2*curve25519.PointSize)
	salt = append(salt, sessionID...)
	salt = append(salt, clientPub...)
	salt = append(salt, serverPub...)

	kdf := hkdf.New(sha256.New, shared, salt, []byte("abb p2p frame keys"))
	var c2s, s2c [chacha20poly1305.KeySize]byte
	if _, err := io.ReadFull(kdf, c2s[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(kdf, s2c[:]); err != nil {
		return nil, err
	}

	c2sAEAD, err := chacha20poly1305.New(c2s[:])
	if err != nil {
		return nil, err
	}
	s2cAEAD, err := chacha20poly1305.New(s2c[:])
	if err != nil {
		return nil, err
	}

	sc := &SecureConn{
		Conn: conn,
	}
	if client {
		sc.send, sc.recv = c2sAEAD, s2cAEAD
	} else {
		sc.send, sc.recv = s2cAEAD, c2sAEAD
	}
	return sc, nil
}

func nonce(seq uint64) []byte {
	var n [chacha20poly1305.NonceSize]byte
	binary.LittleEndian.PutUint64(n[:], seq)
	return n[:]
}

// SendFrame seals and sends one frame.
func (sc *SecureConn) SendFrame(data []byte) error {
	sealed := sc.send.Seal(nil, nonce(sc.sendSeq), data, nil)
	sc.sendSeq++
	return sc.Conn.SendFrame(sealed)
}

// ReceiveFrame receives and opens one frame.
func (sc *SecureConn) ReceiveFrame() ([]byte, error) {
	sealed, err := sc.Conn.ReceiveFrame()
	if err != nil {
		return nil, err
	}
	data, err := sc.recv.Open(nil, nonce(sc.recvSeq), sealed, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "frame %d", sc.recvSeq)
	}
	sc.recvSeq++
	return data, nil
}
