// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

package huffman

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/intel/fasthuff/compress/huff/internal/bitstream"
)

func count(t testing.TB, data []byte) *Frequencies {
	f, err := CountFrequencies(bitstream.NewReader(bytes.NewReader(data)))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func fibonacciFrequencies(n int) *Frequencies {
	var f Frequencies
	a, b := uint64(1), uint64(1)
	for i := 0; i < n; i++ {
		f[i] = a
		a, b = b, a+b
	}
	return &f
}

func checkWeights(t *testing.T, n *Node) uint64 {
	if n.IsLeaf() {
		return n.Weight
	}
	sum := checkWeights(t, n.Left) + checkWeights(t, n.Right)
	if n.Weight != sum {
		t.Fatalf("internal weight %d, children sum %d", n.Weight, sum)
	}
	return sum
}

func checkPrefixFree(t *testing.T, table *CodeTable) {
	var codes []string
	for _, c := range table {
		if c.Len > 0 {
			codes = append(codes, c.String())
		}
	}
	for i, a := range codes {
		for j, b := range codes {
			if i != j && strings.HasPrefix(b, a) {
				t.Fatalf("code %s is a prefix of %s", a, b)
			}
		}
	}
}

func sameShape(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsLeaf() != b.IsLeaf() {
		return false
	}
	if a.IsLeaf() {
		return a.Symbol == b.Symbol
	}
	return sameShape(a.Left, b.Left) && sameShape(a.Right, b.Right)
}

func TestCountFrequencies(t *testing.T) {
	f := count(t, []byte{65, 65, 65, 66})
	for sym, c := range f {
		want := uint64(0)
		switch sym {
		case 65:
			want = 3
		case 66, int(PseudoEOF):
			want = 1
		}
		if c != want {
			t.Fatalf("symbol %d: expected %d got %d", sym, want, c)
		}
	}

	f = count(t, nil)
	if f[PseudoEOF] != 1 {
		t.Fatal("pseudo-EOF must always be counted once")
	}
	for sym := 0; sym < AlphabetSize; sym++ {
		if f[sym] != 0 {
			t.Fatalf("unexpected count for %d", sym)
		}
	}
}

func TestBuildTreeScenario(t *testing.T) {
	root := BuildTree(count(t, []byte{65, 65, 65, 66}))
	if root.Weight != 5 {
		t.Fatalf("root weight %d", root.Weight)
	}
	checkWeights(t, root)

	table := GenerateCodes(root)
	want := map[Symbol]string{66: "00", PseudoEOF: "01", 65: "1"}
	for sym, code := range want {
		if got := table[sym].String(); got != code {
			t.Fatalf("symbol %d: expected %q got %q", sym, code, got)
		}
	}
}

func TestBuildTreeSingleLeaf(t *testing.T) {
	root := BuildTree(count(t, nil))
	if root.IsLeaf() {
		t.Fatal("a lone leaf must get a sibling")
	}
	if root.Left.Symbol != Placeholder || root.Right.Symbol != PseudoEOF {
		t.Fatalf("unexpected children %d %d", root.Left.Symbol, root.Right.Symbol)
	}
	table := GenerateCodes(root)
	if table[PseudoEOF].String() != "1" {
		t.Fatalf("pseudo-EOF code %q", table[PseudoEOF])
	}

	root = BuildTree(count(t, bytes.Repeat([]byte{'x'}, 100)))
	table = GenerateCodes(root)
	if table['x'].Len != 1 || table[PseudoEOF].Len != 1 {
		t.Fatal("two leaves must both get one-bit codes")
	}
	if table[Placeholder].Len != 0 {
		t.Fatal("no placeholder expected with two real leaves")
	}
}

func TestGenerateCodesAllSymbols(t *testing.T) {
	data := make([]byte, 0, 4096)
	for i := 0; i < 4096; i++ {
		data = append(data, byte(i*i+i/3))
	}
	f := count(t, data)
	root := BuildTree(f)
	checkWeights(t, root)
	table := GenerateCodes(root)
	for sym, c := range f {
		if (c != 0) != (table[sym].Len != 0) {
			t.Fatalf("symbol %d: count %d code length %d", sym, c, table[sym].Len)
		}
	}
	checkPrefixFree(t, table)
}

func TestDeepTreeCodes(t *testing.T) {
	root := BuildTree(fibonacciFrequencies(80))
	table := GenerateCodes(root)
	maxLen := 0
	for _, c := range table {
		if c.Len > maxLen {
			maxLen = c.Len
		}
	}
	if maxLen <= 64 {
		t.Fatalf("expected codes longer than 64 bits, got %d", maxLen)
	}
	checkPrefixFree(t, table)

	for sym, c := range table {
		if c.Len == 0 {
			continue
		}
		var buf bytes.Buffer
		w := bitstream.NewWriter(&buf)
		if err := c.WriteTo(w); err != nil {
			t.Fatal(err)
		}
		w.Close()
		r := bitstream.NewReader(&buf)
		for i := 0; i < c.Len; i++ {
			b, err := r.ReadBit()
			if err != nil {
				t.Fatal(err)
			}
			if b != c.Bit(i) {
				t.Fatalf("symbol %d bit %d mismatch", sym, i)
			}
		}
	}
}

func serialize(t *testing.T, root *Node) []byte {
	var buf bytes.Buffer
	w := bitstream.NewWriter(&buf)
	if err := WriteTree(w, root); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestHeaderRoundTrip(t *testing.T) {
	trees := map[string]*Node{
		"scenario": BuildTree(count(t, []byte{65, 65, 65, 66})),
		"empty":    BuildTree(count(t, nil)),
		"text":     BuildTree(count(t, []byte("the quick brown fox jumps over the lazy dog"))),
		"deep":     BuildTree(fibonacciFrequencies(80)),
	}
	for name, root := range trees {
		decoded, err := ReadTree(bitstream.NewReader(bytes.NewReader(serialize(t, root))))
		if err != nil {
			t.Fatal(name, err)
		}
		if !sameShape(root, decoded) {
			t.Fatalf("%s: decoded tree differs", name)
		}
		if *GenerateCodes(root) != *GenerateCodes(decoded) {
			t.Fatalf("%s: code tables differ", name)
		}
	}
}

func TestHeaderBits(t *testing.T) {
	// 0 | 0 | 1 066 | 1 256 | 1 065
	root := BuildTree(count(t, []byte{65, 65, 65, 66}))
	var buf bytes.Buffer
	w := bitstream.NewWriter(&buf)
	WriteTree(w, root)
	if w.BitsWritten() != 2+3*(1+LeafValueBits) {
		t.Fatalf("unexpected header size %d", w.BitsWritten())
	}
	w.Close()

	r := bitstream.NewReader(&buf)
	want := []struct {
		v uint64
		n uint8
	}{{0, 1}, {0, 1}, {1, 1}, {66, 9}, {1, 1}, {256, 9}, {1, 1}, {65, 9}}
	for i, f := range want {
		v, _ := r.ReadBits(f.n)
		if v != f.v {
			t.Fatalf("field %d: expected %d got %d", i, f.v, v)
		}
	}
}

func TestHeaderReproducible(t *testing.T) {
	data := []byte("abracadabra, abracadabra, mississippi")
	a := serialize(t, BuildTree(count(t, data)))
	b := serialize(t, BuildTree(count(t, data)))
	if !bytes.Equal(a, b) {
		t.Fatal("header bits differ between runs")
	}
}

func TestReadTreeTruncated(t *testing.T) {
	header := serialize(t, BuildTree(count(t, []byte("hello, world"))))
	for cut := 0; cut < len(header)-1; cut++ {
		_, err := ReadTree(bitstream.NewReader(bytes.NewReader(header[:cut])))
		var te *TruncatedStreamError
		if !errors.As(err, &te) {
			t.Fatalf("cut %d: expected TruncatedStreamError, got %v", cut, err)
		}
		if te.Phase != PhaseTree {
			t.Fatalf("cut %d: phase %v", cut, te.Phase)
		}
	}

	// a lone 1 bit announces a leaf whose value field is missing
	_, err := ReadTree(bitstream.NewReader(bytes.NewReader([]byte{0x80})))
	var te *TruncatedStreamError
	if !errors.As(err, &te) {
		t.Fatalf("expected TruncatedStreamError, got %v", err)
	}
}

func TestWriteTreeMissingChild(t *testing.T) {
	broken := &Node{Left: &Node{Symbol: 1}}
	err := WriteTree(bitstream.NewWriter(&bytes.Buffer{}), &Node{Left: broken, Right: &Node{Symbol: 2}})
	var me *MalformedStructureError
	if !errors.As(err, &me) {
		t.Fatalf("expected MalformedStructureError, got %v", err)
	}
}

func TestReadErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	src := func() *bitstream.Reader {
		return bitstream.NewReader(io.MultiReader(bytes.NewReader([]byte{1, 2, 3}), iotest.ErrReader(boom)))
	}

	if _, err := CountFrequencies(src()); !errors.Is(err, boom) {
		t.Fatalf("CountFrequencies: expected boom, got %v", err)
	}

	_, err := ReadTree(bitstream.NewReader(iotest.ErrReader(boom)))
	var te *TruncatedStreamError
	if !errors.Is(err, boom) || errors.As(err, &te) {
		t.Fatalf("ReadTree: expected wrapped boom, got %v", err)
	}
	if !strings.Contains(err.Error(), PhaseTree.String()) {
		t.Fatalf("ReadTree: phase missing from %q", err)
	}
}
