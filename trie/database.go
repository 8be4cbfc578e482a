package trie

import (
	"errors"
	"sync"

	"github.com/trieforge/trieforge/core/types"
)

// ErrNodeNotFound is returned when a node hash has no stored encoding.
var ErrNodeNotFound = errors.New("trie: node not found in database")

// NodeReader retrieves RLP-encoded trie nodes by hash.
type NodeReader interface {
	Node(hash types.Hash) ([]byte, error)
}

// NodeWriter stores RLP-encoded trie nodes keyed by their hash.
type NodeWriter interface {
	Put(hash types.Hash, data []byte) error
}

// NodeDatabase buffers trie nodes in memory ahead of a backing store:
// writes land in a dirty cache, reads check the cache before falling back
// to the optional disk reader, and Commit flushes the cache to a writer.
type NodeDatabase struct {
	mu    sync.RWMutex
	dirty map[types.Hash][]byte
	disk  NodeReader // nil for memory-only operation
	size  int        // total byte size of dirty data
}

// NewNodeDatabase creates a node database backed by the given reader. A
// nil reader gives a purely in-memory database.
func NewNodeDatabase(disk NodeReader) *NodeDatabase {
	return &NodeDatabase{
		dirty: make(map[types.Hash][]byte),
		disk:  disk,
	}
}

// Put stores a node in the dirty cache. It implements NodeWriter, so a
// NodeDatabase can sit directly behind a HashBuilder.
func (db *NodeDatabase) Put(hash types.Hash, data []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.dirty[hash]; !ok {
		db.size += len(data)
	}
	db.dirty[hash] = data
	return nil
}

// Node retrieves a node by hash, checking the dirty cache first.
func (db *NodeDatabase) Node(hash types.Hash) ([]byte, error) {
	if hash.IsZero() {
		return nil, ErrNodeNotFound
	}

	db.mu.RLock()
	if data, ok := db.dirty[hash]; ok {
		db.mu.RUnlock()
		return data, nil
	}
	db.mu.RUnlock()

	if db.disk != nil {
		return db.disk.Node(hash)
	}
	return nil, ErrNodeNotFound
}

// DirtySize returns the total byte size of uncommitted nodes.
func (db *NodeDatabase) DirtySize() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.size
}

// DirtyCount returns the number of uncommitted nodes.
func (db *NodeDatabase) DirtyCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.dirty)
}

// Commit writes all dirty nodes to the given writer and clears the cache.
func (db *NodeDatabase) Commit(writer NodeWriter) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for hash, data := range db.dirty {
		if err := writer.Put(hash, data); err != nil {
			return err
		}
	}
	db.dirty = make(map[types.Hash][]byte)
	db.size = 0
	return nil
}
