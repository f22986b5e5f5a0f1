//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"context"
	"log"
	"net"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

// RetryDelay specifies the delay between peer connection attempts.
var RetryDelay = 2 * time.Second

// Network implements peer-to-peer network of the parties. Each peer
// link is sealed with a SecureConn.
type Network struct {
	ID        int
	m         sync.Mutex
	Peers     map[int]*Peer
	addr      string
	listener  net.Listener
	sessionID []byte
}

// NewNetwork creats a new peer-to-peer network listening at addr.
func NewNetwork(addr string, id int, sessionID []byte) (*Network, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	nw := &Network{
		ID:        id,
		Peers:     make(map[int]*Peer),
		addr:      listener.Addr().String(),
		listener:  listener,
		sessionID: sessionID,
	}
	go nw.acceptLoop()
	return nw, nil
}

// Addr returns the network's listener address.
func (nw *Network) Addr() string {
	return nw.addr
}

// Close closes the network listener and all peer connections.
func (nw *Network) Close() error {
	err := nw.listener.Close()
	nw.m.Lock()
	defer nw.m.Unlock()
	for _, peer := range nw.Peers {
		peer.Close()
	}
	return err
}

// AddPeer connects to the peer id at addr. The function retries until
// the connection succeeds, the peer connects to us, or ctx is done.
func (nw *Network) AddPeer(ctx context.Context, addr string, id int) error {
	var dialer net.Dialer
	for {
		// Check if we have already accepted peer `id`.
		nw.m.Lock()
		_, ok := nw.Peers[id]
		nw.m.Unlock()
		if ok {
			return nil
		}

		log.Printf("NW %d: Connecting to peer %d...\n", nw.ID, id)
		nc, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			log.Printf("NW %d: Connect to %s failed, retrying in %s\n",
				nw.ID, addr, RetryDelay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(RetryDelay):
			}
			continue
		}
		log.Printf("NW %d: Connected to %s\n", nw.ID, addr)
		conn := NewConn(nc)

		if err := conn.SendUint32(nw.ID); err != nil {
			conn.Close()
			return err
		}
		if err := conn.Flush(); err != nil {
			conn.Close()
			return err
		}
		return nw.newPeer(true, conn, id)
	}
}

// Wait waits until the network has count peers.
func (nw *Network) Wait(ctx context.Context, count int) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		nw.m.Lock()
		n := len(nw.Peers)
		nw.m.Unlock()
		if n >= count {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Link returns the sealed connection to the peer id.
func (nw *Network) Link(id int) (*SecureConn, error) {
	nw.m.Lock()
	defer nw.m.Unlock()
	peer, ok := nw.Peers[id]
	if !ok {
		return nil, errors.Newf("peer %d not connected", id)
	}
	return peer.conn, nil
}

// Stats returns the I/O stats from the network.
func (nw *Network) Stats() IOStats {
	nw.m.Lock()
	defer nw.m.Unlock()
	var result IOStats
	for _, peer := range nw.Peers {
		result = result.Add(peer.conn.IOStats())
	}
	return result
}

func (nw *Network) acceptLoop() {
	for {
		nc, err := nw.listener.Accept()
		if err != nil {
			log.Printf("NW %d: accept failed: %s\n", nw.ID, err)
			return
		}
		conn := NewConn(nc)

		// Read peer ID.
		id, err := conn.ReceiveUint32()
		if err != nil {
			log.Printf("NW %d: I/O error: %s\n", nw.ID, err)
			conn.Close()
			continue
		}

		err = nw.newPeer(false, conn, id)
		if err != nil {
			log.Printf("NW %d: inbound connection error: %s\n", nw.ID, err)
		}
	}
}

func (nw *Network) newPeer(client bool, conn *Conn, id int) error {
	nw.m.Lock()
	_, ok := nw.Peers[id]
	nw.m.Unlock()
	if ok {
		log.Printf("NW %d: peer %d already connected\n", nw.ID, id)
		return conn.Close()
	}

	sc, err := Handshake(conn, client, nw.sessionID, nil)
	if err != nil {
		conn.Close()
		return err
	}

	nw.m.Lock()
	defer nw.m.Unlock()
	if _, ok := nw.Peers[id]; ok {
		log.Printf("NW %d: peer %d already connected\n", nw.ID, id)
		return conn.Close()
	}
	nw.Peers[id] = &Peer{
		id:     id,
		conn:   sc,
		client: client,
	}
	return nil
}

// Peer implements a peer in the peer-to-peer network.
type Peer struct {
	id     int
	conn   *SecureConn
	client bool
}

// Close closes the peer connection.
func (peer *Peer) Close() error {
	return peer.conn.Close()
}
