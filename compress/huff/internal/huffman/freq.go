// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "io"

// BitReader is the read side of the bit I/O collaborator. ReadBits returns
// io.EOF once the source is exhausted.
type BitReader interface {
	ReadBits(n uint8) (uint64, error)
}

// Frequencies counts occurrences of every symbol.
type Frequencies [NumSymbols]uint64

// CountFrequencies consumes r word by word until end of data. PseudoEOF is
// always given exactly one occurrence, even for empty input.
func CountFrequencies(r BitReader) (*Frequencies, error) {
	var f Frequencies
	for {
		v, err := r.ReadBits(BitsPerWord)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		f[v]++
	}
	f[PseudoEOF] = 1
	return &f, nil
}
