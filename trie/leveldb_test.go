package trie

import (
	"bytes"
	"testing"

	"github.com/trieforge/trieforge/core/types"
	"github.com/trieforge/trieforge/crypto"
)

func TestLevelDBStore_PutAndNode(t *testing.T) {
	store, err := OpenLevelDBStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	data := []byte("persisted node")
	hash := crypto.Keccak256Hash(data)
	if err := store.Put(hash, data); err != nil {
		t.Fatal(err)
	}
	got, err := store.Node(hash)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("Node = %x, want %x", got, data)
	}
}

func TestLevelDBStore_MissingNode(t *testing.T) {
	store, err := OpenLevelDBStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.Node(types.HexToHash("0xabcd")); err != ErrNodeNotFound {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}

// TestLevelDBStore_BehindBuilder persists a small trie through the store
// and checks the root node round-trips.
func TestLevelDBStore_BehindBuilder(t *testing.T) {
	store, err := OpenLevelDBStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	pairs := []KeyValuePair{
		{Key: []byte("doe"), Value: bytes.Repeat([]byte{0x01}, 40)},
		{Key: []byte("dog"), Value: bytes.Repeat([]byte{0x02}, 40)},
	}
	root := builderRoot(t, pairs, store)

	enc, err := store.Node(root)
	if err != nil {
		t.Fatalf("root node not persisted: %v", err)
	}
	if crypto.Keccak256Hash(enc) != root {
		t.Fatalf("persisted root hashes to %s, want %s", crypto.Keccak256Hash(enc).Hex(), root.Hex())
	}

	// A NodeDatabase layered over the store reads through to it.
	db := NewNodeDatabase(store)
	if got, err := db.Node(root); err != nil || !bytes.Equal(got, enc) {
		t.Fatalf("read-through failed: %x, %v", got, err)
	}
}
