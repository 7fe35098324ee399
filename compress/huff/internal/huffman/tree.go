// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "container/heap"

// Node is a prefix tree node. A leaf has no children and carries Symbol;
// an internal node owns both children. Weight is zero on trees read back
// from a header.
type Node struct {
	Weight uint64
	Symbol Symbol
	Left   *Node
	Right  *Node

	seq int
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// nodeQueue is a min-heap on (Weight, seq). Leaves are numbered in symbol
// order and internal nodes after them in creation order, which makes the
// merge order and therefore the header bits reproducible.
type nodeQueue []*Node

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].Weight != q[j].Weight {
		return q[i].Weight < q[j].Weight
	}
	return q[i].seq < q[j].seq
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(*Node)) }

func (q *nodeQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// BuildTree merges the two lightest nodes until one remains. The node
// removed first becomes the left child.
//
// With fewer than two nonzero counts (empty input leaves only PseudoEOF) a
// zero-weight Placeholder leaf is added, so every real leaf sits at depth
// one or more. The Placeholder is serialized like any other leaf, so the
// decoder rebuilds the same shape without knowing this happened.
func BuildTree(f *Frequencies) *Node {
	q := make(nodeQueue, 0, NumSymbols+1)
	seq := 0
	for sym, count := range f {
		if count == 0 {
			continue
		}
		q = append(q, &Node{Weight: count, Symbol: Symbol(sym), seq: seq})
		seq++
	}
	if len(q) < 2 {
		q = append(q, &Node{Symbol: Placeholder, seq: seq})
		seq++
	}
	heap.Init(&q)

	for q.Len() > 1 {
		a := heap.Pop(&q).(*Node)
		b := heap.Pop(&q).(*Node)
		heap.Push(&q, &Node{Weight: a.Weight + b.Weight, Left: a, Right: b, seq: seq})
		seq++
	}
	return q[0]
}
