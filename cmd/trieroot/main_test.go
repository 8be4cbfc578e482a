package main

import (
	"bytes"
	"testing"
)

func TestParsePairs(t *testing.T) {
	input := []byte(`[
		{"key": "0x646f67", "value": "0x7075707079"},
		{"key": "0x", "value": "0x01"}
	]`)
	pairs, err := parsePairs(input)
	if err != nil {
		t.Fatalf("parsePairs: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if !bytes.Equal(pairs[0].Key, []byte("dog")) {
		t.Errorf("key = %x, want %x", pairs[0].Key, "dog")
	}
	if !bytes.Equal(pairs[0].Value, []byte("puppy")) {
		t.Errorf("value = %x, want %x", pairs[0].Value, "puppy")
	}
	if len(pairs[1].Key) != 0 {
		t.Errorf("empty key decoded to %x", pairs[1].Key)
	}
}

func TestParsePairs_BadHex(t *testing.T) {
	cases := [][]byte{
		[]byte(`[{"key": "646f67", "value": "0x01"}]`),
		[]byte(`[{"key": "0x646f67", "value": "zz"}]`),
		[]byte(`{"key": "0x646f67"}`),
	}
	for _, in := range cases {
		if _, err := parsePairs(in); err == nil {
			t.Errorf("parsePairs(%s) accepted bad input", in)
		}
	}
}
