package crypto

import (
	"strings"
	"testing"
)

func TestCommandHash_Deterministic(t *testing.T) {
	data := []byte(`{"nonce":"2026-01-01","payload":{"exec":{"code":"(+ 1 2)","data":{}}}}`)
	h1 := CommandHash(data)
	h2 := CommandHash(data)
	if h1 != h2 {
		t.Error("same input produced different hashes")
	}
}

func TestCommandHash_Distinct(t *testing.T) {
	h1 := CommandHash([]byte("a"))
	h2 := CommandHash([]byte("b"))
	if h1 == h2 {
		t.Error("different inputs produced identical hashes")
	}
}

func TestCommandHash_EmptyInput(t *testing.T) {
	var zero Hash
	if CommandHash(nil) == zero {
		t.Error("hash of empty input should not be the zero hash")
	}
}

func TestHash_HexRoundTrip(t *testing.T) {
	h := CommandHash([]byte("round trip"))
	s := h.String()
	if len(s) != HashSize*2 {
		t.Fatalf("hex length = %d, want %d", len(s), HashSize*2)
	}
	if s != strings.ToLower(s) {
		t.Error("hex encoding should be lowercase")
	}

	parsed, err := HashFromHex(s)
	if err != nil {
		t.Fatalf("HashFromHex() error: %v", err)
	}
	if parsed != h {
		t.Error("hex round trip changed the hash")
	}
}

func TestHashFromHex_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not hex", "zz"},
		{"too short", "abcd"},
		{"too long", strings.Repeat("ab", 33)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := HashFromHex(tt.in); err == nil {
				t.Errorf("HashFromHex(%q) should fail", tt.in)
			}
		})
	}
}
