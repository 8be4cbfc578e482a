package trie

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/trieforge/trieforge/core/types"
)

// valueKind tags the interpretation of a HashBuilderValue's buffer.
type valueKind byte

const (
	// kindBytes marks a raw leaf or extension payload. Zero value, so a
	// fresh or cleared holder always reads as empty bytes.
	kindBytes valueKind = iota
	// kindHash marks the 32-byte hash of an already-hashed subtree.
	kindHash
)

func (k valueKind) String() string {
	if k == kindHash {
		return "hash"
	}
	return "bytes"
}

// initialValueCap is the buffer capacity reserved on construction, sized so
// typical leaf payloads fit without growing.
const initialValueCap = 128

// HashBuilderValue is the reusable value slot of the hash builder. One slot
// holds either the raw payload bytes of a leaf/extension node or the 32-byte
// hash of a child subtree, switching between the two repeatedly as the
// builder walks the trie. The buffer is reused across transitions rather
// than reallocated.
//
// When the kind is hash, the buffer always has length 32 and its bytes
// mirror the cached hash; every mutator maintains this. A slot belongs to
// exactly one builder pass at a time and is not safe for concurrent use.
type HashBuilderValue struct {
	// buf stores the bytes of either the leaf node value or the hash of
	// adjacent nodes.
	buf  []byte
	kind valueKind
	hash types.Hash
}

// NewHashBuilderValue creates a new empty value with its buffer capacity
// pre-reserved.
func NewHashBuilderValue() *HashBuilderValue {
	return &HashBuilderValue{buf: make([]byte, 0, initialValueCap)}
}

// AsRef returns a borrowed, kind-tagged view of the current value without
// copying. The view must not be retained across a subsequent mutation of
// the holder. For hash values the view references the cached fixed-size
// hash rather than the buffer, so callers needing a 32-byte reference get
// one directly.
func (v *HashBuilderValue) AsRef() ValueRef {
	if v.kind == kindHash {
		if len(v.buf) != types.HashLength {
			panic(fmt.Sprintf("trie: hash value with buffer length %d", len(v.buf)))
		}
		return HashRef(&v.hash)
	}
	return BytesRef(v.buf)
}

// AsSlice returns the raw underlying buffer regardless of kind.
func (v *HashBuilderValue) AsSlice() []byte {
	return v.buf
}

// SetBytesOwned replaces the buffer with the given slice, taking ownership
// of it, and marks the value as raw bytes. The caller must not mutate the
// slice afterwards.
func (v *HashBuilderValue) SetBytesOwned(b []byte) {
	v.buf = b
	v.kind = kindBytes
}

// SetFromRef copies the referenced value into the holder, reusing the
// existing buffer allocation. This is the single entry point that keeps
// buffer, kind, and cached hash synchronized when promoting a value from
// another slot.
func (v *HashBuilderValue) SetFromRef(ref ValueRef) {
	v.buf = append(v.buf[:0], ref.AsSlice()...)
	v.kind = ref.kind()
	if ref.hash != nil {
		v.hash = *ref.hash
	} else {
		v.hash = types.Hash{}
	}
}

// Clear empties the buffer without releasing its capacity and resets the
// holder to an empty bytes value, ready for reuse at another trie position.
func (v *HashBuilderValue) Clear() {
	v.buf = v.buf[:0]
	v.kind = kindBytes
	v.hash = types.Hash{}
}

// Equal reports structural equality: buffers, kinds, and cached hashes all
// match. Kind is part of identity, so a 32-byte raw value never equals the
// same bytes held as a hash.
func (v *HashBuilderValue) Equal(other *HashBuilderValue) bool {
	return v.kind == other.kind &&
		bytes.Equal(v.buf, other.buf) &&
		v.hash == other.hash
}

// String renders the effective view, never the raw internal fields, so a
// stale inert hash cache is not visible in diagnostics.
func (v *HashBuilderValue) String() string {
	return v.AsRef().String()
}

// ValueRef is a non-owning, kind-tagged view over either a byte slice or a
// 32-byte hash. It is a short-lived borrow: valid only until the holder it
// came from is next mutated.
type ValueRef struct {
	bytes []byte
	hash  *types.Hash
}

// BytesRef returns a view over raw payload bytes.
func BytesRef(b []byte) ValueRef {
	return ValueRef{bytes: b}
}

// HashRef returns a view over a 32-byte subtree hash.
func HashRef(h *types.Hash) ValueRef {
	return ValueRef{hash: h}
}

// AsSlice returns the viewed bytes regardless of variant. For a hash view
// this is the 32-byte hash as a slice.
func (r ValueRef) AsSlice() []byte {
	if r.hash != nil {
		return r.hash[:]
	}
	return r.bytes
}

// kind returns the variant tag, used by SetFromRef to dispatch.
func (r ValueRef) kind() valueKind {
	if r.hash != nil {
		return kindHash
	}
	return kindBytes
}

// String renders the view as "Bytes(0x...)" or "Hash(0x...)".
func (r ValueRef) String() string {
	name := "Bytes"
	if r.hash != nil {
		name = "Hash"
	}
	return fmt.Sprintf("%s(%s)", name, hexutil.Encode(r.AsSlice()))
}
