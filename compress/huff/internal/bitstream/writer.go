// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package bitstream

import (
	"errors"
	"io"

	"github.com/icza/bitio"
)

// ErrClosed is returned when writing to a closed Writer.
var ErrClosed = errors.New("bitstream: write to closed writer")

// Writer buffers bits across byte boundaries, most-significant-bit first.
// Write errors are sticky.
type Writer struct {
	bw     *bitio.Writer
	bits   int64
	err    error
	closed bool
}

// NewWriter returns a Writer appending to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bitio.NewWriter(w)}
}

// WriteBits appends the low n bits (n <= 64) of v.
func (w *Writer) WriteBits(v uint64, n uint8) error {
	if w.closed {
		return ErrClosed
	}
	if w.err != nil {
		return w.err
	}
	if n == 0 {
		return nil
	}
	if n < 64 {
		v &= 1<<n - 1
	}
	if w.err = w.bw.WriteBits(v, n); w.err != nil {
		return w.err
	}
	w.bits += int64(n)
	return nil
}

// BitsWritten reports how many bits have been appended, padding excluded.
func (w *Writer) BitsWritten() int64 {
	return w.bits
}

// Close zero-pads the final partial byte and flushes everything buffered.
// The underlying io.Writer is not closed. Close is idempotent.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true
	if w.err != nil {
		return w.err
	}
	w.err = w.bw.Close()
	return w.err
}
