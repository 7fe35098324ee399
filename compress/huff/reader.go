// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"io"

	"github.com/intel/fasthuff/compress/huff/internal/bitstream"
)

// Resetter resets a ReadCloser returned by NewReader to read a new stream.
type Resetter interface {
	Reset(r io.Reader) error
}

// NewReader returns an io.ReadCloser that decompresses the stream in r on
// demand. The header is parsed by the first Read. If r is an
// io.ByteReader, such as a *bufio.Reader, no byte past the end of the
// stream is consumed from it.
func NewReader(r io.Reader) io.ReadCloser {
	f := &decompressor{}
	f.Reset(r)
	return f
}

type decompressor struct {
	in     *bitstream.Reader
	dec    decoder
	header bool
	err    error
}

func (f *decompressor) Reset(r io.Reader) error {
	f.in = bitstream.NewReader(r)
	f.dec = decoder{}
	f.header = false
	f.err = nil
	return nil
}

func (f *decompressor) Read(b []byte) (n int, err error) {
	if f.err != nil {
		return 0, f.err
	}
	if !f.header {
		root, err := readHeader(f.in)
		if err != nil {
			f.err = err
			return 0, err
		}
		f.dec = newDecoder(root, f.in)
		f.header = true
	}
	for n < len(b) {
		c, err := f.dec.next()
		if err != nil {
			f.err = err
			return n, err
		}
		b[n] = c
		n++
	}
	return n, nil
}

func (f *decompressor) Close() error {
	return nil
}
