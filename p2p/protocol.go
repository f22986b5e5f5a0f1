//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package p2p implements the framed point-to-point connections between
// the three parties.
package p2p

import (
	"encoding/binary"
	"io"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

const (
	numBuffers   = 3
	writeBufSize = 64 * 1024
	readBufSize  = 1024 * 1024

	// MaxDataSize limits the size of a single data item.
	MaxDataSize = 1 << 30
)

// Conn implements a buffered connection that carries length prefixed
// data items. The writes are handed to a writer goroutine so that the
// sender can fill the next buffer while the previous one is written.
type Conn struct {
	conn   io.ReadWriter
	stats  IOStats
	wbuf   []byte
	wpos   int
	rbuf   []byte
	rstart int
	rend   int

	free    chan []byte
	pending chan []byte
	closed  bool
	m       sync.Mutex
	werr    error
}

// IOStats implements I/O statistics.
type IOStats struct {
	Sent    *atomic.Uint64
	Recvd   *atomic.Uint64
	Flushed *atomic.Uint64
}

// NewIOStats creates a new I/O statistics object.
func NewIOStats() IOStats {
	return IOStats{
		Sent:    new(atomic.Uint64),
		Recvd:   new(atomic.Uint64),
		Flushed: new(atomic.Uint64),
	}
}

// Add adds the argument stats to this IOStats and returns the sum.
// The zero IOStats is a valid argument and receiver.
func (stats IOStats) Add(o IOStats) IOStats {
	result := NewIOStats()
	result.Sent.Store(load(stats.Sent) + load(o.Sent))
	result.Recvd.Store(load(stats.Recvd) + load(o.Recvd))
	result.Flushed.Store(load(stats.Flushed) + load(o.Flushed))
	return result
}

func load(v *atomic.Uint64) uint64 {
	if v == nil {
		return 0
	}
	return v.Load()
}

// Sum returns sum of sent and received bytes.
func (stats IOStats) Sum() uint64 {
	return load(stats.Sent) + load(stats.Recvd)
}

// NewConn creates a new connection around the argument connection.
func NewConn(conn io.ReadWriter) *Conn {
	c := &Conn{
		conn:    conn,
		stats:   NewIOStats(),
		rbuf:    make([]byte, readBufSize),
		free:    make(chan []byte, numBuffers),
		pending: make(chan []byte, numBuffers),
	}
	for i := 0; i < numBuffers; i++ {
		c.free <- make([]byte, writeBufSize)
	}
	go c.writer()
	c.wbuf = <-c.free

	return c
}

func (c *Conn) writer() {
	for buf := range c.pending {
		if _, err := c.conn.Write(buf); err != nil {
			c.m.Lock()
			if c.werr == nil {
				c.werr = err
			}
			c.m.Unlock()
		}
		c.free <- buf[:cap(buf)]
	}
	close(c.free)
}

// IOStats returns the connection I/O statistics.
func (c *Conn) IOStats() IOStats {
	return c.stats
}

// Flush hands any buffered data to the writer.
func (c *Conn) Flush() error {
	if c.closed {
		return io.ErrClosedPipe
	}
	if c.wpos == 0 {
		return nil
	}
	c.stats.Sent.Add(uint64(c.wpos))
	c.pending <- c.wbuf[:c.wpos]

	c.wbuf = <-c.free
	c.wpos = 0
	c.stats.Flushed.Add(1)

	return c.writeError()
}

func (c *Conn) writeError() error {
	c.m.Lock()
	defer c.m.Unlock()
	return c.werr
}

// Close flushes any pending data, waits for the writer, and closes the
// underlying connection if it is an io.Closer.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	err := c.Flush()
	c.closed = true
	close(c.pending)
	for range c.free {
	}
	if err == nil {
		err = c.writeError()
	}
	if closer, ok := c.conn.(io.Closer); ok {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (c *Conn) write(data []byte) error {
	for len(data) > 0 {
		if c.wpos == len(c.wbuf) {
			if err := c.Flush(); err != nil {
				return err
			}
		}
		n := copy(c.wbuf[c.wpos:], data)
		c.wpos += n
		data = data[n:]
	}
	return nil
}

// fill reads from the connection until the read buffer holds at least
// n unread bytes.
func (c *Conn) fill(n int) error {
	unread := c.rend - c.rstart
	if n > len(c.rbuf) {
		buf := make([]byte, n)
		copy(buf, c.rbuf[c.rstart:c.rend])
		c.rbuf = buf
	} else {
		copy(c.rbuf, c.rbuf[c.rstart:c.rend])
	}
	c.rstart = 0
	c.rend = unread

	for c.rend < n {
		got, err := c.conn.Read(c.rbuf[c.rend:])
		if err != nil {
			return err
		}
		c.stats.Recvd.Add(uint64(got))
		c.rend += got
	}
	return nil
}

func (c *Conn) read(n int) ([]byte, error) {
	if c.rend-c.rstart < n {
		if err := c.fill(n); err != nil {
			return nil, err
		}
	}
	data := c.rbuf[c.rstart : c.rstart+n]
	c.rstart += n
	return data, nil
}

// SendUint32 sends an uint32 value.
func (c *Conn) SendUint32(val int) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(val))
	return c.write(buf[:])
}

// ReceiveUint32 receives an uint32 value.
func (c *Conn) ReceiveUint32() (int, error) {
	data, err := c.read(4)
	if err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint32(data)), nil
}

// SendData sends a length prefixed data item.
func (c *Conn) SendData(val []byte) error {
	if len(val) > MaxDataSize {
		return errors.Newf("data item too large: %d", len(val))
	}
	if err := c.SendUint32(len(val)); err != nil {
		return err
	}
	return c.write(val)
}

// ReceiveData receives a length prefixed data item.
func (c *Conn) ReceiveData() ([]byte, error) {
	n, err := c.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	if n > MaxDataSize {
		return nil, errors.Newf("data item too large: %d", n)
	}
	data, err := c.read(n)
	if err != nil {
		return nil, err
	}
	result := make([]byte, n)
	copy(result, data)
	return result, nil
}

// SendFrame sends the data as one frame and flushes the connection.
func (c *Conn) SendFrame(data []byte) error {
	if err := c.SendData(data); err != nil {
		return err
	}
	return c.Flush()
}

// ReceiveFrame receives one frame.
func (c *Conn) ReceiveFrame() ([]byte, error) {
	return c.ReceiveData()
}
