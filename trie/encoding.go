package trie

// Hex-prefix (HP) encoding per the Ethereum Yellow Paper, Appendix C.
//
// Keys travel through three forms: raw keybytes, hex nibbles (values 0x0-0xf
// with an optional 0x10 terminator marking a leaf), and the compact form
// stored in node encodings, which packs the parity of the nibble count and
// the leaf flag into the first byte.

const terminatorByte = 16

// hexToCompact converts a hex nibble sequence (with possible terminator) to
// compact encoding. The high nibble of the first byte carries the flags:
// 0x20 if the key is a leaf, 0x10 if the nibble count is odd. An odd-length
// key stores its first nibble in the low nibble of the flag byte.
func hexToCompact(hex []byte) []byte {
	terminator := byte(0)
	if hasTerm(hex) {
		terminator = 1
		hex = hex[:len(hex)-1]
	}
	buf := make([]byte, len(hex)/2+1)
	buf[0] = terminator << 5
	if len(hex)&1 == 1 {
		buf[0] |= 1 << 4
		buf[0] |= hex[0]
		hex = hex[1:]
	}
	decodeNibbles(hex, buf[1:])
	return buf
}

// compactToHex converts compact-encoded bytes back to hex nibbles. Leaf
// encodings get their terminator nibble restored.
func compactToHex(compact []byte) []byte {
	if len(compact) == 0 {
		return compact
	}
	base := keybytesToHex(compact)
	base = base[:len(base)-1] // keybytesToHex appends a terminator; HP already encodes it
	// An even-length key has a padding nibble after the flags: chop 2.
	chop := 2 - base[0]&1
	if base[0]&2 != 0 {
		// Leaf flag set.
		result := make([]byte, len(base)-int(chop)+1)
		copy(result, base[chop:])
		result[len(result)-1] = terminatorByte
		return result
	}
	return base[chop:]
}

// keybytesToHex converts a raw byte key to hex nibbles, appending the
// terminator.
func keybytesToHex(str []byte) []byte {
	l := len(str)*2 + 1
	nibbles := make([]byte, l)
	for i, b := range str {
		nibbles[i*2] = b / 16
		nibbles[i*2+1] = b % 16
	}
	nibbles[l-1] = terminatorByte
	return nibbles
}

// hexToKeybytes converts hex nibbles (terminator allowed) back to the raw
// byte key. The data nibble count must be even.
func hexToKeybytes(hex []byte) []byte {
	if hasTerm(hex) {
		hex = hex[:len(hex)-1]
	}
	if len(hex)&1 != 0 {
		panic("trie: odd length nibble key")
	}
	key := make([]byte, len(hex)/2)
	decodeNibbles(hex, key)
	return key
}

// decodeNibbles packs pairs of nibbles into bytes.
func decodeNibbles(nibbles []byte, bytes []byte) {
	for bi, ni := 0, 0; ni < len(nibbles); bi, ni = bi+1, ni+2 {
		bytes[bi] = nibbles[ni]<<4 | nibbles[ni+1]
	}
}

// prefixLen returns the length of the common prefix of a and b.
func prefixLen(a, b []byte) int {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	for i := 0; i < length; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return length
}

// hasTerm reports whether the nibble sequence ends with the terminator.
func hasTerm(s []byte) bool {
	return len(s) > 0 && s[len(s)-1] == terminatorByte
}

// nibblesLess reports whether a sorts strictly before b, nibble-wise.
func nibblesLess(a, b []byte) bool {
	length := len(a)
	if len(b) < length {
		length = len(b)
	}
	for i := 0; i < length; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
