package trie

import (
	"bytes"
	"testing"

	"github.com/trieforge/trieforge/core/types"
	"github.com/trieforge/trieforge/rlp"
)

func TestEncodeLeaf_Manual(t *testing.T) {
	// Leaf with empty remaining key: [0x20, "v"].
	got := encodeLeaf(nil, []byte("v"))
	want := []byte{0xc2, 0x20, 'v'}
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeLeaf(nil, v) = %x, want %x", got, want)
	}

	// Odd nibble key [7]: compact 0x37.
	got = encodeLeaf([]byte{0x7}, []byte("ab"))
	want = []byte{0xc4, 0x37, 0x82, 'a', 'b'}
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeLeaf([7], ab) = %x, want %x", got, want)
	}
}

func TestEncodeExtension_Manual(t *testing.T) {
	// Extension with nibbles [1,2] over an inline child [0xc2, 0x20, 'v'].
	child := []byte{0xc2, 0x20, 'v'}
	got := encodeExtension([]byte{0x1, 0x2}, child)
	// compact([1,2]) = 0x00 0x12, encoded as 0x82 0x00 0x12.
	want := append([]byte{0xc6, 0x82, 0x00, 0x12}, child...)
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeExtension = %x, want %x", got, want)
	}
}

func TestEncodeBranch_Manual(t *testing.T) {
	// Branch with a single inline child at nibble 3 and no value.
	var refs [16][]byte
	refs[3] = []byte{0xc2, 0x20, 'v'}
	got := encodeBranch(&refs, nil)

	var payload []byte
	for i := 0; i < 16; i++ {
		if i == 3 {
			payload = append(payload, refs[3]...)
		} else {
			payload = append(payload, 0x80)
		}
	}
	payload = append(payload, 0x80) // empty value slot
	want := rlp.EncodeList(payload)
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeBranch = %x, want %x", got, want)
	}
}

func TestEncodeBranch_ValueSlot(t *testing.T) {
	var refs [16][]byte
	got := encodeBranch(&refs, []byte("val"))
	if !bytes.Contains(got, append([]byte{0x83}, "val"...)) {
		t.Fatalf("branch encoding %x missing value slot", got)
	}
}

// TestEncodeNode_HashKindDispatch checks that a grafted subtree below a
// non-empty path encodes as an extension wrapping the hash reference.
func TestEncodeNode_HashKindDispatch(t *testing.T) {
	h := types.HexToHash("0x5555555555555555555555555555555555555555555555555555555555555555")

	n := newBuilderNode()
	n.typ = ntValue
	n.key = []byte{0x3, 0x4}
	n.value.SetFromRef(HashRef(&h))

	hb := NewHashBuilder(nil)
	got := hb.encodeNode(n)
	want := encodeExtension([]byte{0x3, 0x4}, rlp.EncodeString(h[:]))
	if !bytes.Equal(got, want) {
		t.Fatalf("hash-kind node encoding = %x, want %x", got, want)
	}

	// The same slot holding raw bytes encodes as a leaf instead.
	n.value.SetFromRef(BytesRef([]byte("leafval")))
	got = hb.encodeNode(n)
	want = encodeLeaf([]byte{0x3, 0x4}, []byte("leafval"))
	if !bytes.Equal(got, want) {
		t.Fatalf("bytes-kind node encoding = %x, want %x", got, want)
	}
}
