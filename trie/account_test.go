package trie

import (
	"bytes"
	"testing"

	gethcommon "github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	gethrlp "github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/trieforge/trieforge/core/types"
)

func TestStateAccount_EncodeMatchesGeth(t *testing.T) {
	accounts := []*StateAccount{
		NewStateAccount(),
		{
			Nonce:    1,
			Balance:  uint256.NewInt(1_000_000_000),
			Root:     types.EmptyRootHash,
			CodeHash: types.EmptyCodeHash.Bytes(),
		},
		{
			Nonce:    1 << 40,
			Balance:  new(uint256.Int).Lsh(uint256.NewInt(3), 130),
			Root:     types.HexToHash("0x0102030405060708010203040506070801020304050607080102030405060708"),
			CodeHash: types.HexToHash("0xf00df00df00df00df00df00df00df00df00df00df00df00df00df00df00df00d").Bytes(),
		},
	}

	for i, a := range accounts {
		ref := &gethtypes.StateAccount{
			Nonce:    a.Nonce,
			Balance:  a.Balance,
			Root:     gethcommon.Hash(a.Root),
			CodeHash: a.CodeHash,
		}
		want, err := gethrlp.EncodeToBytes(ref)
		if err != nil {
			t.Fatal(err)
		}
		if got := a.EncodeRLP(); !bytes.Equal(got, want) {
			t.Fatalf("account %d: EncodeRLP = %x, geth says %x", i, got, want)
		}
	}
}

func TestNewStateAccount_Defaults(t *testing.T) {
	a := NewStateAccount()
	if a.Nonce != 0 || !a.Balance.IsZero() {
		t.Fatalf("fresh account not zeroed: nonce %d balance %s", a.Nonce, a.Balance)
	}
	if a.Root != types.EmptyRootHash {
		t.Fatalf("fresh account root = %s, want empty trie root", a.Root.Hex())
	}
	if !bytes.Equal(a.CodeHash, types.EmptyCodeHash.Bytes()) {
		t.Fatalf("fresh account code hash = %x", a.CodeHash)
	}
}

// TestStateAccount_LeafPayload feeds account encodings through the hash
// builder as leaf payloads, the way a state root is derived.
func TestStateAccount_LeafPayload(t *testing.T) {
	a := NewStateAccount()
	a.Nonce = 7
	a.Balance = uint256.NewInt(42)

	b := NewStateAccount()
	b.Nonce = 1

	pairs := []KeyValuePair{
		{Key: bytes.Repeat([]byte{0x11}, 32), Value: a.EncodeRLP()},
		{Key: bytes.Repeat([]byte{0x22}, 32), Value: b.EncodeRLP()},
	}
	got := builderRoot(t, pairs, nil)
	want := gethRoot(t, pairs)
	if got != want {
		t.Fatalf("state root = %s, want %s", got.Hex(), want.Hex())
	}
}
