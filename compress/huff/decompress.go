// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/intel/fasthuff/compress/huff/internal/bitstream"
	"github.com/intel/fasthuff/compress/huff/internal/huffman"
)

// Decompress is the Processor form of the package level Decompress.
func (p *Processor) Decompress(dst io.Writer, src io.Reader) (Stats, error) {
	in := bitstream.NewReader(src)
	root, err := readHeader(in)
	if err != nil {
		return Stats{}, err
	}
	p.logf(DebugLow, "huff: header is %d bits", in.BitsRead())

	out := bitstream.NewWriter(dst)
	d := newDecoder(root, in)
	for {
		sym, err := d.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Stats{}, err
		}
		if err := out.WriteBits(uint64(sym), huffman.BitsPerWord); err != nil {
			return Stats{}, fmt.Errorf("huff: writing output: %w", err)
		}
	}
	if err := out.Close(); err != nil {
		return Stats{}, fmt.Errorf("huff: flushing output: %w", err)
	}

	stats := Stats{BitsRead: in.BitsRead(), BitsWritten: out.BitsWritten()}
	p.logf(DebugLow, "huff: read %d bits, wrote %d bits", stats.BitsRead, stats.BitsWritten)
	return stats, nil
}

// readHeader validates the magic number and rebuilds the code tree.
func readHeader(in *bitstream.Reader) (*huffman.Node, error) {
	magic, err := in.ReadBits(huffman.BitsPerInt)
	if err == io.EOF {
		return nil, &HeaderError{Short: true}
	}
	if err != nil {
		return nil, fmt.Errorf("huff: %v: %w", PhaseMagic, err)
	}
	if uint32(magic) != huffman.MagicTree {
		return nil, &HeaderError{Got: uint32(magic)}
	}
	return huffman.ReadTree(in)
}

// decoder walks the tree one bit at a time. It stops at the pseudo-EOF
// leaf and never reads past it.
type decoder struct {
	root *huffman.Node
	cur  *huffman.Node
	in   *bitstream.Reader
}

func newDecoder(root *huffman.Node, in *bitstream.Reader) decoder {
	return decoder{root: root, cur: root, in: in}
}

// next returns the next decoded byte, or io.EOF once pseudo-EOF is reached.
func (d *decoder) next() (byte, error) {
	for {
		bit, err := d.in.ReadBit()
		if err != nil {
			return 0, huffman.Truncated(d.in, PhasePayload, err)
		}
		n := d.cur.Left
		if bit == 1 {
			n = d.cur.Right
		}
		if n == nil {
			return 0, d.malformed("step into a missing child")
		}
		if !n.IsLeaf() {
			d.cur = n
			continue
		}
		d.cur = d.root
		switch {
		case n.Symbol == huffman.PseudoEOF:
			return 0, io.EOF
		case n.Symbol < huffman.AlphabetSize:
			return byte(n.Symbol), nil
		default:
			return 0, d.malformed(fmt.Sprintf("leaf symbol %d is not a byte", n.Symbol))
		}
	}
}

func (d *decoder) malformed(reason string) error {
	return &MalformedStructureError{Phase: PhasePayload, Offset: d.in.BitsRead(), Reason: reason}
}

// DecompressBytes returns the original bytes of the compressed data.
func DecompressBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Decompress(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
