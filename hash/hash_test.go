// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hash

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex fixture %q: %v", s, err)
	}
	return b
}

// TestSha256Vectors checks the FIPS 180-4 short test vectors.
func TestSha256Vectors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Sum256([]byte(tc.in))
			want := mustHex(t, tc.want)
			if !bytes.Equal(got[:], want) {
				t.Errorf("Sum256(%q) = %x, want %x", tc.in, got, want)
			}
		})
	}
}

// TestSha256Streaming checks that hash(a||b) == update(a); update(b); finalize(),
// the equivalence property required by spec.md §4.1.
func TestSha256Streaming(t *testing.T) {
	a := []byte("the quick brown fox ")
	b := []byte("jumps over the lazy dog")

	oneShot := Sum256(append(append([]byte{}, a...), b...))

	s := NewSha256()
	s.Write(a)
	s.Write(b)
	streamed := s.Digest()

	if oneShot != streamed {
		t.Errorf("streaming mismatch: one-shot %x, streamed %x", oneShot, streamed)
	}

	// Arbitrary re-chunking must agree too.
	s2 := NewSha256()
	full := append(append([]byte{}, a...), b...)
	for _, chunk := range splitChunks(full, 7) {
		s2.Write(chunk)
	}
	rechunked := s2.Digest()
	if oneShot != rechunked {
		t.Errorf("rechunked streaming mismatch: one-shot %x, rechunked %x", oneShot, rechunked)
	}
}

func splitChunks(b []byte, n int) [][]byte {
	var out [][]byte
	for len(b) > 0 {
		if n > len(b) {
			n = len(b)
		}
		out = append(out, b[:n])
		b = b[n:]
	}
	return out
}

func TestSha1Vectors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Sum1([]byte(tc.in))
			want := mustHex(t, tc.want)
			if !bytes.Equal(got[:], want) {
				t.Errorf("Sum1(%q) = %x, want %x", tc.in, got, want)
			}
		})
	}
}

func TestSha512Vector(t *testing.T) {
	got := Sum512([]byte("abc"))
	want := mustHex(t, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39"+
		"a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f")
	if !bytes.Equal(got[:], want) {
		t.Errorf("Sum512(abc) = %x, want %x", got, want)
	}
}

func TestRipemd160Vectors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "9c1185a5c5e9fc54612808977ee8f548b2258d31"},
		{"abc", "abc", "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Sum160([]byte(tc.in))
			want := mustHex(t, tc.want)
			if !bytes.Equal(got[:], want) {
				t.Errorf("Sum160(%q) = %x, want %x", tc.in, got, want)
			}
		})
	}
}

func TestHash160(t *testing.T) {
	// hash160("") = ripemd160(sha256("")).
	sha := Sum256(nil)
	want := Sum160(sha[:])
	got := Hash160(nil)
	if got != want {
		t.Errorf("Hash160(nil) = %x, want %x", got, want)
	}
}

func TestDoubleSha256(t *testing.T) {
	first := Sum256([]byte("x"))
	want := Sum256(first[:])
	got := DoubleSha256([]byte("x"))
	if got != want {
		t.Errorf("DoubleSha256 = %x, want %x", got, want)
	}
}

func TestMerkleRootEmpty(t *testing.T) {
	got := MerkleRoot(nil)
	var want [Size256]byte
	if got != want {
		t.Errorf("MerkleRoot(nil) = %x, want all-zero", got)
	}
}

func TestMerkleRootSingle(t *testing.T) {
	leaf := Sum256([]byte("leaf"))
	got := MerkleRoot([][Size256]byte{leaf})
	if got != leaf {
		t.Errorf("MerkleRoot single = %x, want %x", got, leaf)
	}
}

func TestMerkleRootOddDuplicatesLast(t *testing.T) {
	a := Sum256([]byte("a"))
	b := Sum256([]byte("b"))
	c := Sum256([]byte("c"))

	got := MerkleRoot([][Size256]byte{a, b, c})

	// Level 1: pair(a,b), pair(c,c). Level 2: pair(level1[0], level1[1]).
	var buf [64]byte
	copy(buf[:32], a[:])
	copy(buf[32:], b[:])
	ab := DoubleSha256(buf[:])
	copy(buf[:32], c[:])
	copy(buf[32:], c[:])
	cc := DoubleSha256(buf[:])
	copy(buf[:32], ab[:])
	copy(buf[32:], cc[:])
	want := DoubleSha256(buf[:])

	if got != want {
		t.Errorf("MerkleRoot odd = %x, want %x", got, want)
	}
}

func TestHmacSha256Rfc4231Case1(t *testing.T) {
	key := bytes.Repeat([]byte{0x0b}, 20)
	data := []byte("Hi There")
	want := mustHex(t, "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7")
	got := HmacSha256(key, data)
	if !bytes.Equal(got, want) {
		t.Errorf("HmacSha256 = %x, want %x", got, want)
	}
}
