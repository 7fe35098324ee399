// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"fmt"
	"io"
)

// WriteTree serializes the tree in pre-order: a 0 bit for an internal node
// followed by its left and right subtrees, or a 1 bit and a LeafValueBits
// wide symbol for a leaf.
func WriteTree(w BitWriter, root *Node) error {
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			return &MalformedStructureError{Phase: PhaseTree, Reason: "internal node with a missing child"}
		}
		if n.IsLeaf() {
			if err := w.WriteBits(1, 1); err != nil {
				return err
			}
			if err := w.WriteBits(uint64(n.Symbol), LeafValueBits); err != nil {
				return err
			}
			continue
		}
		if err := w.WriteBits(0, 1); err != nil {
			return err
		}
		stack = append(stack, n.Right, n.Left)
	}
	return nil
}

// ReadTree rebuilds a tree written by WriteTree. Weights are left at zero.
// Running out of bits before the structure closes is a TruncatedStreamError.
func ReadTree(r BitReader) (*Node, error) {
	var root *Node
	// internal nodes still waiting for a child, innermost last
	var open []*Node
	for {
		bit, err := r.ReadBits(1)
		if err != nil {
			return nil, Truncated(r, PhaseTree, err)
		}
		n := &Node{}
		if bit == 1 {
			v, err := r.ReadBits(LeafValueBits)
			if err != nil {
				return nil, Truncated(r, PhaseTree, err)
			}
			n.Symbol = Symbol(v)
		}

		if root == nil {
			root = n
		} else {
			p := open[len(open)-1]
			if p.Left == nil {
				p.Left = n
			} else {
				p.Right = n
				open = open[:len(open)-1]
			}
		}
		if bit == 0 {
			open = append(open, n)
		}
		if len(open) == 0 {
			return root, nil
		}
	}
}

type bitsReader interface {
	BitsRead() int64
}

// Truncated turns end of data from r into a TruncatedStreamError for phase
// p. Other read errors are wrapped with the phase.
func Truncated(r BitReader, p Phase, err error) error {
	if err != io.EOF {
		return fmt.Errorf("huff: %v: %w", p, err)
	}
	e := &TruncatedStreamError{Phase: p}
	if c, ok := r.(bitsReader); ok {
		e.Offset = c.BitsRead()
	}
	return e
}
