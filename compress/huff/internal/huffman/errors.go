// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import "fmt"

// Phase identifies where in a compressed stream decoding failed.
type Phase int

const (
	PhaseMagic Phase = iota
	PhaseTree
	PhasePayload
)

func (p Phase) String() string {
	switch p {
	case PhaseMagic:
		return "header validation"
	case PhaseTree:
		return "tree parse"
	case PhasePayload:
		return "payload decode"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// HeaderError reports a stream whose leading 32 bits are not MagicTree.
// Short is set when the stream ends before 32 bits.
type HeaderError struct {
	Got   uint32
	Short bool
}

func (e *HeaderError) Error() string {
	if e.Short {
		return "huff: stream too short for magic number"
	}
	return fmt.Sprintf("huff: illegal header starts with %#08x", e.Got)
}

// TruncatedStreamError reports end of input while more bits were required.
// Offset is the number of bits successfully read before the failure.
type TruncatedStreamError struct {
	Phase  Phase
	Offset int64
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("huff: stream truncated during %v at bit offset %d", e.Phase, e.Offset)
}

// MalformedStructureError reports a tree that can not be walked: a missing
// child, a single-leaf root, or a leaf that no encoder could have produced.
type MalformedStructureError struct {
	Phase  Phase
	Offset int64
	Reason string
}

func (e *MalformedStructureError) Error() string {
	return fmt.Sprintf("huff: malformed structure during %v at bit offset %d: %s", e.Phase, e.Offset, e.Reason)
}
