// pairs.go provides the flat-pairs convenience entry point: compute an MPT
// root from an unordered list of key-value pairs, the way transaction and
// receipt trie roots are derived from an index-keyed list.
package trie

import (
	"bytes"
	"sort"

	"github.com/trieforge/trieforge/core/types"
)

// KeyValuePair is one entry of a trie to be hashed.
type KeyValuePair struct {
	Key   []byte
	Value []byte
}

// RootFromPairs computes the MPT root hash of the given pairs. The input
// is sorted by key before hashing; duplicate keys keep the last value in
// the sorted order. An empty input yields the empty trie root. If writer
// is non-nil, hashed nodes are persisted through it.
func RootFromPairs(pairs []KeyValuePair, writer NodeWriter) types.Hash {
	if len(pairs) == 0 {
		return types.EmptyRootHash
	}

	sorted := make([]KeyValuePair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key, sorted[j].Key) < 0
	})

	hb := NewHashBuilder(writer)
	for i, p := range sorted {
		if i+1 < len(sorted) && bytes.Equal(p.Key, sorted[i+1].Key) {
			continue // later duplicate wins
		}
		// Keys are sorted and deduplicated, so AddLeaf cannot fail.
		_ = hb.AddLeaf(p.Key, p.Value)
	}
	return hb.Root()
}
