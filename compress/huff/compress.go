// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huff

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/intel/fasthuff/compress/huff/internal/bitstream"
	"github.com/intel/fasthuff/compress/huff/internal/huffman"
)

var errInputChanged = errors.New("huff: input changed between passes")

// Compress is the Processor form of the package level Compress.
func (p *Processor) Compress(dst io.Writer, src io.ReadSeeker) (Stats, error) {
	in := bitstream.NewReader(src)
	if err := in.Reset(); err != nil {
		return Stats{}, fmt.Errorf("huff: rewinding input: %w", err)
	}
	counts, err := huffman.CountFrequencies(in)
	if err != nil {
		return Stats{}, fmt.Errorf("huff: counting frequencies: %w", err)
	}
	root := huffman.BuildTree(counts)
	codes := huffman.GenerateCodes(root)
	p.logf(DebugLow, "huff: %d input bits, %d distinct symbols", in.BitsRead(), distinct(counts))
	if p.debug >= DebugHigh {
		for sym, c := range codes {
			if c.Len != 0 {
				p.logf(DebugHigh, "huff: symbol %d weight %d code %s", sym, weight(counts, sym), c)
			}
		}
	}

	out := bitstream.NewWriter(dst)
	if err := out.WriteBits(uint64(huffman.MagicTree), huffman.BitsPerInt); err != nil {
		return Stats{}, fmt.Errorf("huff: writing magic: %w", err)
	}
	if err := huffman.WriteTree(out, root); err != nil {
		return Stats{}, fmt.Errorf("huff: writing tree: %w", err)
	}
	headerBits := out.BitsWritten()

	if err := in.Reset(); err != nil {
		return Stats{}, fmt.Errorf("huff: rewinding input: %w", err)
	}
	if err := encode(codes, in, out); err != nil {
		return Stats{}, fmt.Errorf("huff: encoding: %w", err)
	}
	if err := out.Close(); err != nil {
		return Stats{}, fmt.Errorf("huff: flushing output: %w", err)
	}

	stats := Stats{BitsRead: in.BitsRead(), BitsWritten: out.BitsWritten()}
	p.logf(DebugLow, "huff: wrote %d bits (%d header, %d payload)",
		stats.BitsWritten, headerBits, stats.BitsWritten-headerBits)
	return stats, nil
}

// encode writes the code of every word of in, then the pseudo-EOF code.
func encode(codes *huffman.CodeTable, in *bitstream.Reader, out *bitstream.Writer) error {
	for {
		v, err := in.ReadBits(huffman.BitsPerWord)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		c := codes[v]
		if c.Len == 0 {
			return errInputChanged
		}
		if err := c.WriteTo(out); err != nil {
			return err
		}
	}
	return codes[huffman.PseudoEOF].WriteTo(out)
}

func distinct(f *huffman.Frequencies) int {
	n := 0
	for _, c := range f {
		if c != 0 {
			n++
		}
	}
	return n
}

func weight(f *huffman.Frequencies, sym int) uint64 {
	if sym < len(f) {
		return f[sym]
	}
	return 0
}

// CompressBytes returns the compressed form of data.
func CompressBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Compress(&buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
