package trie

import (
	"github.com/holiman/uint256"

	"github.com/trieforge/trieforge/core/types"
	"github.com/trieforge/trieforge/rlp"
)

// StateAccount is the state-trie leaf payload of an account: the four
// fields whose RLP list, keyed by the keccak of the address, forms the
// leaf value handed to the hash builder.
type StateAccount struct {
	Nonce    uint64
	Balance  *uint256.Int
	Root     types.Hash // storage trie root
	CodeHash []byte     // keccak256 of the account's code
}

// NewStateAccount returns an empty account: zero balance, no storage, no
// code.
func NewStateAccount() *StateAccount {
	return &StateAccount{
		Balance:  new(uint256.Int),
		Root:     types.EmptyRootHash,
		CodeHash: types.EmptyCodeHash.Bytes(),
	}
}

// EncodeRLP returns the account's RLP encoding, the canonical leaf payload
// for state tries.
func (a *StateAccount) EncodeRLP() []byte {
	payload := rlp.AppendUint64(nil, a.Nonce)
	payload = rlp.AppendUint256(payload, a.Balance)
	payload = rlp.AppendString(payload, a.Root[:])
	payload = rlp.AppendString(payload, a.CodeHash)
	return rlp.EncodeList(payload)
}
