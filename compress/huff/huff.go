// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huff implements a self-describing Huffman compressed format.
//
// A stream is a 32-bit magic number, the pre-order serialized code tree,
// the code of every input byte and finally the code of a pseudo-EOF
// symbol, zero padded to a whole byte. All fields are most significant bit
// first. Equal weights are merged in symbol order, so compressing the same
// input always produces the same bytes.
package huff

import (
	"io"
	"log"

	"github.com/intel/fasthuff/compress/huff/internal/huffman"
)

// Magic is the leading 32-bit value of every stream.
const Magic = huffman.MagicTree

type (
	HeaderError             = huffman.HeaderError
	TruncatedStreamError    = huffman.TruncatedStreamError
	MalformedStructureError = huffman.MalformedStructureError
	Phase                   = huffman.Phase
)

const (
	PhaseMagic   = huffman.PhaseMagic
	PhaseTree    = huffman.PhaseTree
	PhasePayload = huffman.PhasePayload
)

// Debug levels for WithDebug.
const (
	DebugOff  = 0
	DebugLow  = 1
	DebugHigh = 4
)

// Stats reports the traffic through the bit streams of one operation.
// BitsRead covers the second pass over the input when compressing.
// BitsWritten excludes the final padding.
type Stats struct {
	BitsRead    int64
	BitsWritten int64
}

// Processor compresses and decompresses streams. The zero value is silent.
// A Processor holds no per-stream state and may be shared.
type Processor struct {
	debug  int
	logger *log.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithDebug sets the trace level. DebugLow logs one line per phase,
// DebugHigh also logs every code assigned.
func WithDebug(level int) Option {
	return func(p *Processor) {
		p.debug = level
	}
}

// WithLogger directs traces to l instead of log.Default().
func WithLogger(l *log.Logger) Option {
	return func(p *Processor) {
		p.logger = l
	}
}

// NewProcessor returns a Processor configured by opts.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Processor) logf(level int, format string, args ...any) {
	if p.debug < level {
		return
	}
	l := p.logger
	if l == nil {
		l = log.Default()
	}
	l.Printf(format, args...)
}

var defaultProcessor Processor

// Compress reads src from its start twice, once to count byte frequencies
// and once to encode, and writes the compressed stream to dst.
func Compress(dst io.Writer, src io.ReadSeeker) error {
	_, err := defaultProcessor.Compress(dst, src)
	return err
}

// Decompress reads one compressed stream from src and writes the original
// bytes to dst. Bytes after the pseudo-EOF code are not interpreted.
func Decompress(dst io.Writer, src io.Reader) error {
	_, err := defaultProcessor.Decompress(dst, src)
	return err
}
