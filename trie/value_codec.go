package trie

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/trieforge/trieforge/core/types"
)

// valueRecord is the interchange form of a HashBuilderValue: the buffer as
// 0x-prefixed hex plus the kind tag. The cached hash is never persisted; it
// is recomputed from the buffer on decode.
type valueRecord struct {
	Buf  string `json:"buf"`
	Kind string `json:"kind"`
}

// MarshalJSON encodes the value as a {"buf": "0x...", "kind": ...} record.
func (v *HashBuilderValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(valueRecord{
		Buf:  hexutil.Encode(v.buf),
		Kind: v.kind.String(),
	})
}

// UnmarshalJSON decodes a value record, restoring the kind/buffer/hash
// invariant. A hash-kind record whose buffer is not exactly 32 bytes is
// rejected.
func (v *HashBuilderValue) UnmarshalJSON(data []byte) error {
	var rec valueRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	buf, err := hexutil.Decode(rec.Buf)
	if err != nil {
		return fmt.Errorf("trie: invalid value buffer: %w", err)
	}
	switch rec.Kind {
	case "bytes":
		v.buf = buf
		v.kind = kindBytes
		v.hash = types.Hash{}
	case "hash":
		if len(buf) != types.HashLength {
			return fmt.Errorf("trie: hash value record with %d-byte buffer", len(buf))
		}
		v.buf = buf
		v.kind = kindHash
		copy(v.hash[:], buf)
	default:
		return fmt.Errorf("trie: unknown value kind %q", rec.Kind)
	}
	return nil
}
