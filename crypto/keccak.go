// Package crypto provides the Keccak-256 hashing used for trie node
// references and root hashes.
package crypto

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/trieforge/trieforge/core/types"
)

// keccakPool recycles keccak state between hashing calls. Trie hashing
// computes one hash per node, so the state churn is worth avoiding.
var keccakPool = sync.Pool{
	New: func() any { return sha3.NewLegacyKeccak256() },
}

// Keccak256 calculates the Keccak-256 hash of the given data.
func Keccak256(data ...[]byte) []byte {
	d := keccakPool.Get().(hash.Hash)
	defer keccakPool.Put(d)
	d.Reset()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates Keccak-256 and returns it as a types.Hash.
func Keccak256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(Keccak256(data...))
}
