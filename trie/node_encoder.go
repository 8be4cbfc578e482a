package trie

import "github.com/trieforge/trieforge/rlp"

// Node encodings follow the Yellow Paper: a leaf or extension is a
// 2-element list [compactKey, value], a branch is a 17-element list of
// child references plus a value slot. Child references are the raw node
// encoding when shorter than 32 bytes (inline) and the RLP string of the
// node's keccak hash otherwise; the hash builder applies that rule, this
// file only assembles lists.

// encodeLeaf encodes a leaf node. key is the remaining nibble key without
// terminator; value is the raw payload.
func encodeLeaf(key, value []byte) []byte {
	withTerm := make([]byte, len(key)+1)
	copy(withTerm, key)
	withTerm[len(key)] = terminatorByte

	payload := rlp.EncodeString(hexToCompact(withTerm))
	payload = rlp.AppendString(payload, value)
	return rlp.EncodeList(payload)
}

// encodeExtension encodes an extension node. key is the shared nibble
// prefix without terminator; childRef is the already-encoded reference to
// the child (inline encoding or RLP-wrapped hash).
func encodeExtension(key, childRef []byte) []byte {
	payload := rlp.EncodeString(hexToCompact(key))
	payload = append(payload, childRef...)
	return rlp.EncodeList(payload)
}

// encodeBranch encodes a 17-element branch node. childRefs holds the
// encoded reference for each of the 16 children, nil for empty slots;
// value is the payload of a key terminating at this branch, nil if none.
func encodeBranch(childRefs *[16][]byte, value []byte) []byte {
	var payload []byte
	for i := 0; i < 16; i++ {
		if childRefs[i] == nil {
			payload = append(payload, rlp.EmptyString)
			continue
		}
		payload = append(payload, childRefs[i]...)
	}
	if len(value) > 0 {
		payload = rlp.AppendString(payload, value)
	} else {
		payload = append(payload, rlp.EmptyString)
	}
	return rlp.EncodeList(payload)
}

// emptyNodeRLP is the encoding of the absent node, the RLP empty string.
var emptyNodeRLP = []byte{rlp.EmptyString}
