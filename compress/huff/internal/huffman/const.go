// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package huffman builds the prefix tree used by the huff format and moves it
// to and from its bit-level header representation.
package huffman

// Symbol is a tree leaf value. 0..255 are literal bytes, PseudoEOF ends a
// stream and Placeholder only ever pads a single-leaf tree.
type Symbol = uint16

const (
	BitsPerWord   = 8
	BitsPerInt    = 32
	AlphabetSize  = 1 << BitsPerWord
	LeafValueBits = BitsPerWord + 1

	PseudoEOF   Symbol = AlphabetSize
	Placeholder Symbol = PseudoEOF + 1

	// NumSymbols is the size of a frequency table: every literal plus PseudoEOF.
	NumSymbols = AlphabetSize + 1
)

const (
	Magic     uint32 = 0xface8200
	MagicTree        = Magic | 1
)
