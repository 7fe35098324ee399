// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"bytes"
	"errors"
	"io"
)

var errWriterClosed = errors.New("huff: write to closed Writer")

// Writer compresses everything written to it. Building the code needs the
// whole input, so data is held in memory until Close.
type Writer struct {
	under  io.Writer
	p      *Processor
	buf    bytes.Buffer
	closed bool
	err    error
	stats  Stats
}

// NewWriter returns a Writer whose compressed output goes to w on Close.
func NewWriter(w io.Writer) *Writer {
	return &Writer{under: w, p: &defaultProcessor}
}

// NewWriter is the Processor form of the package level NewWriter.
func (p *Processor) NewWriter(w io.Writer) *Writer {
	return &Writer{under: w, p: p}
}

func (w *Writer) Write(b []byte) (int, error) {
	if w.closed {
		return 0, errWriterClosed
	}
	return w.buf.Write(b)
}

// Close compresses the buffered data into the underlying writer. It does
// not close the underlying writer. Later calls return the first result.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true
	w.stats, w.err = w.p.Compress(w.under, bytes.NewReader(w.buf.Bytes()))
	w.buf.Reset()
	return w.err
}

// Stats returns the counters of the compression run by Close.
func (w *Writer) Stats() Stats {
	return w.stats
}

// Reset discards buffered data and makes w write to under.
func (w *Writer) Reset(under io.Writer) {
	w.under = under
	w.buf.Reset()
	w.closed = false
	w.err = nil
	w.stats = Stats{}
}
