// Package rlp implements the subset of Recursive Length Prefix encoding
// needed to serialize trie nodes and leaf payloads: byte strings, unsigned
// integers, and lists. Decoding is not provided; the hash builder only ever
// produces encodings.
package rlp

import "github.com/holiman/uint256"

const (
	// EmptyString is the RLP encoding of the empty byte string.
	EmptyString = 0x80
	// EmptyList is the RLP encoding header of the empty list.
	EmptyList = 0xc0
)

// AppendString appends the RLP encoding of b as a byte string to dst.
func AppendString(dst, b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return append(dst, b[0])
	}
	dst = appendLength(dst, uint64(len(b)), 0x80)
	return append(dst, b...)
}

// EncodeString returns the RLP encoding of b as a byte string.
func EncodeString(b []byte) []byte {
	return AppendString(nil, b)
}

// AppendUint64 appends the RLP encoding of u to dst. Integers encode as
// byte strings of their minimal big-endian representation; zero encodes as
// the empty string.
func AppendUint64(dst []byte, u uint64) []byte {
	switch {
	case u == 0:
		return append(dst, EmptyString)
	case u < 0x80:
		return append(dst, byte(u))
	default:
		return AppendString(dst, intBytes(u))
	}
}

// EncodeUint64 returns the RLP encoding of u.
func EncodeUint64(u uint64) []byte {
	return AppendUint64(nil, u)
}

// AppendUint256 appends the RLP encoding of z to dst. A nil or zero value
// encodes as the empty string.
func AppendUint256(dst []byte, z *uint256.Int) []byte {
	if z == nil || z.IsZero() {
		return append(dst, EmptyString)
	}
	return AppendString(dst, z.Bytes())
}

// EncodeList wraps an already-encoded payload in an RLP list header.
func EncodeList(payload []byte) []byte {
	return AppendList(nil, payload)
}

// AppendList appends a list header for payload to dst, followed by the
// payload itself.
func AppendList(dst, payload []byte) []byte {
	dst = appendLength(dst, uint64(len(payload)), 0xc0)
	return append(dst, payload...)
}

// appendLength appends a string or list header with the given length.
// offset is 0x80 for strings and 0xc0 for lists.
func appendLength(dst []byte, length uint64, offset byte) []byte {
	if length <= 55 {
		return append(dst, offset+byte(length))
	}
	lenBytes := intBytes(length)
	dst = append(dst, offset+55+byte(len(lenBytes)))
	return append(dst, lenBytes...)
}

// intBytes returns the minimal big-endian representation of u, without
// leading zeros. u must be non-zero.
func intBytes(u uint64) []byte {
	switch {
	case u < (1 << 8):
		return []byte{byte(u)}
	case u < (1 << 16):
		return []byte{byte(u >> 8), byte(u)}
	case u < (1 << 24):
		return []byte{byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 32):
		return []byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 40):
		return []byte{byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 48):
		return []byte{byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < (1 << 56):
		return []byte{byte(u >> 48), byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	default:
		return []byte{byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	}
}
