// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package bitstream provides the MSB-first bit reader and writer used by the
// huff codec. Both count every bit that passes through them.
package bitstream

import (
	"errors"
	"io"

	"github.com/icza/bitio"
)

// ErrNotRewindable is returned by Reset when the source can not seek.
var ErrNotRewindable = errors.New("bitstream: source does not support rewinding")

// Reader reads bits most-significant-bit first.
type Reader struct {
	src  io.Reader
	br   *bitio.Reader
	bits int64
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{src: r, br: bitio.NewReader(r)}
}

// ReadBits returns the next n bits (n <= 64) as an unsigned integer.
// io.EOF is returned once the underlying source is exhausted, including
// when fewer than n bits remain.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	v, err := r.br.ReadBits(n)
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}
	r.bits += int64(n)
	return v, nil
}

// ReadBit returns the next single bit.
func (r *Reader) ReadBit() (uint, error) {
	b, err := r.br.ReadBool()
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}
	r.bits++
	if b {
		return 1, nil
	}
	return 0, nil
}

// BitsRead reports how many bits have been consumed since the last Reset.
func (r *Reader) BitsRead() int64 {
	return r.bits
}

// Reset rewinds the source to its start. Buffered bits are dropped.
func (r *Reader) Reset() error {
	s, ok := r.src.(io.Seeker)
	if !ok {
		return ErrNotRewindable
	}
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return err
	}
	r.br = bitio.NewReader(r.src)
	r.bits = 0
	return nil
}
