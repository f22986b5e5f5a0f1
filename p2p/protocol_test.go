//
// protocol_test.go
//
// Copyright (c) 2023-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

var frames = [][]byte{
	[]byte("Hello, world!"),
	{},
	{0x00, 0x01, 0x02, 0xff},
	bytes.Repeat([]byte{0x5a}, writeBufSize+17),
}

func TestFrames(t *testing.T) {
	c0, c1 := Pipe()
	defer c1.Close()

	done := make(chan error, 1)
	go func() {
		defer c0.Close()
		for _, f := range frames {
			if err := c0.SendFrame(f); err != nil {
				done <- err
				return
			}
		}
		if err := c0.SendUint32(0xdeadbeef); err != nil {
			done <- err
			return
		}
		done <- c0.Flush()
	}()

	for idx, f := range frames {
		got, err := c1.ReceiveFrame()
		require.NoError(t, err, "frame %d", idx)
		require.Equal(t, f, got, "frame %d", idx)
	}
	v, err := c1.ReceiveUint32()
	require.NoError(t, err)
	require.Equal(t, 0xdeadbeef, v)
	require.NoError(t, <-done)

	stats := c1.IOStats()
	require.Equal(t, stats.Recvd.Load(), c0.IOStats().Sent.Load())
	require.NotZero(t, c0.IOStats().Flushed.Load())
}

func TestLargeFrame(t *testing.T) {
	c0, c1 := Pipe()
	defer c1.Close()

	data := make([]byte, 2*readBufSize+3)
	for i := range data {
		data[i] = byte(i * 7)
	}
	go func() {
		c0.SendFrame(data)
		c0.Close()
	}()

	got, err := c1.ReceiveFrame()
	require.NoError(t, err)
	require.True(t, bytes.Equal(data, got))

	_, err = c1.ReceiveFrame()
	require.ErrorIs(t, err, io.EOF)
}

func TestFrameOrder(t *testing.T) {
	c0, c1 := Pipe()
	defer c1.Close()

	const count = 1000
	done := make(chan error, 1)
	go func() {
		for i := 0; i < count; i++ {
			if err := c0.SendData([]byte{byte(i), byte(i >> 8)}); err != nil {
				done <- err
				return
			}
		}
		done <- c0.Flush()
	}()
	for i := 0; i < count; i++ {
		got, err := c1.ReceiveData()
		require.NoError(t, err)
		require.Equal(t, []byte{byte(i), byte(i >> 8)}, got)
	}
	require.NoError(t, <-done)
	require.NoError(t, c0.Close())
}

func TestEmptyFrame(t *testing.T) {
	c0, c1 := Pipe()
	defer c1.Close()

	go func() {
		c0.SendFrame(nil)
		c0.Close()
	}()
	got, err := c1.ReceiveFrame()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestClose(t *testing.T) {
	c0, c1 := Pipe()
	require.NoError(t, c1.Close())
	require.NoError(t, c1.Close())

	require.NoError(t, c0.SendData([]byte("lost")))
	c0.Close()
	require.Error(t, c0.SendFrame([]byte("closed")))
}

func TestIOStatsAdd(t *testing.T) {
	a := NewIOStats()
	a.Sent.Store(1000)
	a.Recvd.Store(500)
	a.Flushed.Store(2)

	b := NewIOStats()
	b.Sent.Store(24)
	b.Flushed.Store(1)

	sum := a.Add(b)
	require.Equal(t, uint64(1024), sum.Sent.Load())
	require.Equal(t, uint64(500), sum.Recvd.Load())
	require.Equal(t, uint64(3), sum.Flushed.Load())
	require.Equal(t, uint64(1524), sum.Sum())

	var zero IOStats
	require.Equal(t, uint64(1524), zero.Add(sum).Sum())
	require.Equal(t, "1kB", FileSize(sum.Sum()).String())
}
