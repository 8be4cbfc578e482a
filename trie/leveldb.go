package trie

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/trieforge/trieforge/core/types"
)

// nodeKeyPrefix namespaces trie nodes inside the key-value store.
var nodeKeyPrefix = []byte("t")

// LevelDBStore persists trie nodes in a LevelDB database. It implements
// both NodeReader and NodeWriter, so it can back a NodeDatabase or sit
// directly behind a HashBuilder.
type LevelDBStore struct {
	db *leveldb.DB
}

// OpenLevelDBStore opens (or creates) a LevelDB database at path.
func OpenLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

// Put stores a node encoding keyed by its hash.
func (s *LevelDBStore) Put(hash types.Hash, data []byte) error {
	return s.db.Put(nodeKey(hash), data, nil)
}

// Node retrieves a node encoding by hash.
func (s *LevelDBStore) Node(hash types.Hash) ([]byte, error) {
	data, err := s.db.Get(nodeKey(hash), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, ErrNodeNotFound
		}
		return nil, err
	}
	return data, nil
}

// Close closes the underlying database.
func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

func nodeKey(hash types.Hash) []byte {
	key := make([]byte, 0, len(nodeKeyPrefix)+types.HashLength)
	key = append(key, nodeKeyPrefix...)
	return append(key, hash[:]...)
}
