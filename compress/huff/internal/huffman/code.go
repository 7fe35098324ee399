// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

// MaxCodeLen is the deepest a leaf can sit in a tree of NumSymbols+1 leaves.
const MaxCodeLen = NumSymbols

const codeWords = (MaxCodeLen + 63) / 64

// Code is a variable length bit string stored most significant bit first.
type Code struct {
	Len   int
	words [codeWords]uint64
}

// Bit returns the i-th bit of c, counted from the first bit written.
func (c Code) Bit(i int) uint {
	return uint(c.words[i/64]>>(63-i%64)) & 1
}

func (c Code) append(bit uint) Code {
	if bit != 0 {
		c.words[c.Len/64] |= 1 << (63 - c.Len%64)
	}
	c.Len++
	return c
}

// String renders c as a string of '0' and '1' for diagnostics.
func (c Code) String() string {
	b := make([]byte, c.Len)
	for i := range b {
		b[i] = '0' + byte(c.Bit(i))
	}
	return string(b)
}

// BitWriter is the write side of the bit I/O collaborator.
type BitWriter interface {
	WriteBits(v uint64, n uint8) error
}

// WriteTo appends c to w in chunks of at most 64 bits.
func (c Code) WriteTo(w BitWriter) error {
	for i, rest := 0, c.Len; rest > 0; i++ {
		n := rest
		if n > 64 {
			n = 64
		}
		if err := w.WriteBits(c.words[i]>>(64-n), uint8(n)); err != nil {
			return err
		}
		rest -= n
	}
	return nil
}

// CodeTable maps a symbol to its code. Entries for symbols that are not
// leaves have Len 0.
type CodeTable [Placeholder + 1]Code

// GenerateCodes walks the tree depth first, appending 0 for a left edge and
// 1 for a right edge. Internal nodes get no entry.
func GenerateCodes(root *Node) *CodeTable {
	type frame struct {
		n    *Node
		path Code
	}
	var t CodeTable
	stack := []frame{{n: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.n == nil {
			continue
		}
		if top.n.IsLeaf() {
			if int(top.n.Symbol) < len(t) {
				t[top.n.Symbol] = top.path
			}
			continue
		}
		stack = append(stack,
			frame{n: top.n.Right, path: top.path.append(1)},
			frame{n: top.n.Left, path: top.path.append(0)})
	}
	return &t
}
