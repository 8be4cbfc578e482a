// hash_builder.go computes Merkle-Patricia-Trie root hashes from key-value
// pairs supplied in strictly ascending key order. Already-hashed subtrees
// can be grafted in by path, so unchanged parts of a trie are never
// re-encoded. Payloads move through reusable HashBuilderValue slots: raw
// leaf bytes and child hashes share one representation and the node encoder
// dispatches on the slot's view kind.
package trie

import (
	"errors"
	"fmt"

	"github.com/trieforge/trieforge/core/types"
	"github.com/trieforge/trieforge/crypto"
	"github.com/trieforge/trieforge/log"
	"github.com/trieforge/trieforge/rlp"
)

var (
	// ErrOutOfOrder is returned when keys are added out of order.
	ErrOutOfOrder = errors.New("trie: keys must be added in strictly ascending order")

	// ErrFinalized is returned when an add is attempted after Root.
	ErrFinalized = errors.New("trie: hash builder already finalized")
)

// builderNodeType distinguishes node states in the builder's working tree.
type builderNodeType byte

const (
	ntEmpty     builderNodeType = iota // unused slot
	ntValue                            // terminal: leaf payload or hashed subtree, per slot kind
	ntExtension                        // shared nibble prefix over a branch
	ntBranch                           // 16 children plus a value slot
)

// builderNode is a node in the working tree. Terminal state lives in the
// value slot; a node transitions empty -> value -> branch (via split) as
// keys arrive.
type builderNode struct {
	typ      builderNodeType
	key      []byte // nibbles: remaining key (value) or shared prefix (extension)
	value    *HashBuilderValue
	children [16]*builderNode
}

func newBuilderNode() *builderNode {
	return &builderNode{typ: ntEmpty, value: NewHashBuilderValue()}
}

// HashBuilder assembles an MPT root from sorted adds. It holds one staging
// value slot that is cleared and refilled for every add, then promoted into
// the working tree; O(n) node slots hold the tree until Root encodes and
// hashes it.
//
// Not safe for concurrent use; a parallelized caller runs one builder per
// subtrie.
type HashBuilder struct {
	root      *builderNode
	value     *HashBuilderValue // staging slot for the payload being added
	lastKey   []byte            // last added key in nibble form
	added     int
	finalized bool

	writer NodeWriter // optional, persists >=32-byte nodes by hash
	logger *log.Logger
}

// NewHashBuilder creates an empty builder. writer may be nil; when set,
// every node that is referenced by hash (and the root) is persisted
// through it.
func NewHashBuilder(writer NodeWriter) *HashBuilder {
	return &HashBuilder{
		root:   newBuilderNode(),
		value:  NewHashBuilderValue(),
		writer: writer,
		logger: log.Default().Module("trie"),
	}
}

// AddLeaf adds a key with its raw payload bytes. Keys must arrive in
// strictly ascending byte order; empty payloads are skipped.
func (hb *HashBuilder) AddLeaf(key, payload []byte) error {
	if hb.finalized {
		return ErrFinalized
	}
	if len(payload) == 0 {
		return nil
	}
	nibbles := keybytesToHex(key)
	nibbles = nibbles[:len(nibbles)-1] // terminator is re-added at encode time

	if err := hb.checkOrder(nibbles); err != nil {
		return err
	}
	hb.value.Clear()
	hb.value.SetBytesOwned(append([]byte(nil), payload...))
	hb.added++
	hb.insert(hb.root, nibbles)
	return nil
}

// AddBranch grafts an already-hashed subtree at the given nibble path.
// The path uses one byte per nibble (values 0-15) and sorts into the same
// ascending order as leaf keys; no later add may descend into the grafted
// subtree.
func (hb *HashBuilder) AddBranch(path []byte, hash types.Hash) error {
	if hb.finalized {
		return ErrFinalized
	}
	for _, n := range path {
		if n > 0xf {
			return fmt.Errorf("trie: invalid nibble %#x in branch path", n)
		}
	}
	if err := hb.checkOrder(path); err != nil {
		return err
	}
	hb.value.Clear()
	hb.value.SetFromRef(HashRef(&hash))
	hb.added++
	hb.insert(hb.root, path)
	return nil
}

// checkOrder enforces strictly ascending nibble keys.
func (hb *HashBuilder) checkOrder(nibbles []byte) error {
	if hb.added > 0 && !nibblesLess(hb.lastKey, nibbles) {
		return ErrOutOfOrder
	}
	hb.lastKey = append(hb.lastKey[:0], nibbles...)
	return nil
}

// insert places the staging value into the working tree at the given
// nibble key, splitting terminal nodes into branches as needed. Every
// payload transfer goes through SetFromRef so the slots stay consistent.
func (hb *HashBuilder) insert(n *builderNode, key []byte) {
	switch n.typ {
	case ntEmpty:
		n.typ = ntValue
		n.key = append([]byte(nil), key...)
		n.value.SetFromRef(hb.value.AsRef())

	case ntValue:
		match := prefixLen(n.key, key)
		if match == len(n.key) && match == len(key) {
			// Same key: replace the payload.
			n.value.SetFromRef(hb.value.AsRef())
			return
		}

		// Split the terminal into a branch, possibly under an extension.
		branch := newBuilderNode()
		branch.typ = ntBranch

		if match == len(n.key) {
			// Existing key terminates at the branch point; its payload
			// moves into the branch's value slot.
			branch.value.SetFromRef(n.value.AsRef())
		} else {
			oldChild := newBuilderNode()
			oldChild.typ = ntValue
			oldChild.key = append([]byte(nil), n.key[match+1:]...)
			oldChild.value.SetFromRef(n.value.AsRef())
			branch.children[n.key[match]] = oldChild
		}

		if match == len(key) {
			branch.value.SetFromRef(hb.value.AsRef())
		} else {
			newChild := newBuilderNode()
			newChild.typ = ntValue
			newChild.key = append([]byte(nil), key[match+1:]...)
			newChild.value.SetFromRef(hb.value.AsRef())
			branch.children[key[match]] = newChild
		}

		if match > 0 {
			n.typ = ntExtension
			n.key = append([]byte(nil), n.key[:match]...)
			n.value.Clear()
			for i := range n.children {
				n.children[i] = nil
			}
			n.children[0] = branch
		} else {
			*n = *branch
		}

	case ntExtension:
		match := prefixLen(n.key, key)
		if match == len(n.key) {
			hb.insert(n.children[0], key[match:])
			return
		}

		// Split the extension.
		oldKey := n.key
		child := n.children[0]

		branch := newBuilderNode()
		branch.typ = ntBranch

		if len(oldKey)-match-1 > 0 {
			ext := newBuilderNode()
			ext.typ = ntExtension
			ext.key = append([]byte(nil), oldKey[match+1:]...)
			ext.children[0] = child
			branch.children[oldKey[match]] = ext
		} else {
			branch.children[oldKey[match]] = child
		}

		if match == len(key) {
			branch.value.SetFromRef(hb.value.AsRef())
		} else {
			newChild := newBuilderNode()
			newChild.typ = ntValue
			newChild.key = append([]byte(nil), key[match+1:]...)
			newChild.value.SetFromRef(hb.value.AsRef())
			branch.children[key[match]] = newChild
		}

		if match > 0 {
			n.key = append([]byte(nil), oldKey[:match]...)
			n.children[0] = branch
		} else {
			*n = *branch
		}

	case ntBranch:
		if len(key) == 0 {
			n.value.SetFromRef(hb.value.AsRef())
			return
		}
		idx := key[0]
		if n.children[idx] == nil {
			n.children[idx] = newBuilderNode()
		}
		hb.insert(n.children[idx], key[1:])
	}
}

// Root finalizes the builder and returns the trie root hash. After Root,
// adds fail until Reset.
func (hb *HashBuilder) Root() types.Hash {
	hb.finalized = true
	if hb.added == 0 {
		return types.EmptyRootHash
	}

	// A single grafted subtree covering the whole trie is its own root.
	if hb.root.typ == ntValue && len(hb.root.key) == 0 {
		if ref := hb.root.value.AsRef(); ref.hash != nil {
			return *ref.hash
		}
	}

	enc := hb.encodeNode(hb.root)
	root := crypto.Keccak256Hash(enc)
	hb.persist(root, enc)
	hb.logger.Debug("computed trie root", "added", hb.added, "root", root.Hex())
	return root
}

// Count returns the number of leaves and grafted subtrees added.
func (hb *HashBuilder) Count() int {
	return hb.added
}

// Reset clears the builder for reuse, keeping the staging slot's buffer.
func (hb *HashBuilder) Reset() {
	hb.root = newBuilderNode()
	hb.value.Clear()
	hb.lastKey = hb.lastKey[:0]
	hb.added = 0
	hb.finalized = false
}

// encodeNode returns the RLP encoding of a working-tree node.
func (hb *HashBuilder) encodeNode(n *builderNode) []byte {
	switch n.typ {
	case ntValue:
		ref := n.value.AsRef()
		if ref.hash != nil {
			// Hashed subtree below a non-empty path encodes as an
			// extension pointing at the hash. The empty-path case never
			// reaches here; childRef and Root handle it.
			return encodeExtension(n.key, rlp.EncodeString(ref.AsSlice()))
		}
		return encodeLeaf(n.key, ref.AsSlice())

	case ntExtension:
		return encodeExtension(n.key, hb.childRef(n.children[0]))

	case ntBranch:
		var refs [16][]byte
		for i := 0; i < 16; i++ {
			if n.children[i] != nil {
				refs[i] = hb.childRef(n.children[i])
			}
		}
		return encodeBranch(&refs, n.value.AsSlice())
	}
	return emptyNodeRLP
}

// childRef returns the reference a parent embeds for n: the raw encoding
// when shorter than 32 bytes, otherwise the RLP string of the node's hash.
// Hashed nodes persist through the writer at the point they collapse into
// a reference.
func (hb *HashBuilder) childRef(n *builderNode) []byte {
	if n.typ == ntValue && len(n.key) == 0 {
		if ref := n.value.AsRef(); ref.hash != nil {
			// Grafted subtree directly below the parent: the stored hash
			// is the reference.
			return rlp.EncodeString(ref.AsSlice())
		}
	}
	enc := hb.encodeNode(n)
	if len(enc) < 32 {
		return enc
	}
	h := crypto.Keccak256Hash(enc)
	hb.persist(h, enc)
	return rlp.EncodeString(h[:])
}

func (hb *HashBuilder) persist(hash types.Hash, enc []byte) {
	if hb.writer == nil {
		return
	}
	if err := hb.writer.Put(hash, enc); err != nil {
		hb.logger.Warn("failed to persist trie node", "hash", hash.Hex(), "err", err)
	}
}
