// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash is the fixed-size, display-reversed hash type used
// throughout the chain for transaction, block, and merkle identities. It
// wraps the raw double-SHA-256 digest produced by package hash with the
// hex-encoding convention Bitcoin uses for block explorers and RPC: bytes
// are stored internal (little-endian, matching the wire), but String
// prints them byte-reversed (big-endian, matching how block and
// transaction hashes are conventionally displayed).
package chainhash

import (
	"encoding/hex"

	"github.com/libbitcoin-go/core/hash"
)

// HashSize is the size of a chain hash in bytes.
const HashSize = 32

// Hash is a 32-byte chain identity hash (txid, wtxid, block hash, or
// merkle root), stored in internal (wire) byte order.
type Hash [HashSize]byte

// String returns the hash as reversed (display/big-endian) hex, matching
// the convention used by block explorers and JSON-RPC.
func (h Hash) String() string {
	var reversed Hash
	for i := 0; i < HashSize; i++ {
		reversed[i] = h[HashSize-1-i]
	}
	return hex.EncodeToString(reversed[:])
}

// IsEqual reports whether h and other hold the same bytes. A nil other
// compares unequal to every Hash, including the zero hash.
func (h *Hash) IsEqual(other *Hash) bool {
	if other == nil {
		return false
	}
	return *h == *other
}

// SetBytes copies b into h. b must be exactly HashSize bytes long.
func (h *Hash) SetBytes(b []byte) error {
	if len(b) != HashSize {
		return errInvalidLength(len(b))
	}
	copy(h[:], b)
	return nil
}

// NewHash constructs a Hash from a HashSize-byte slice in internal order.
func NewHash(b []byte) (*Hash, error) {
	var h Hash
	if err := h.SetBytes(b); err != nil {
		return nil, err
	}
	return &h, nil
}

// NewHashFromStr parses s as reversed (display) hex and returns the
// corresponding internal-order Hash.
func NewHashFromStr(s string) (*Hash, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(raw) != HashSize {
		return nil, errInvalidLength(len(raw))
	}
	var h Hash
	for i := 0; i < HashSize; i++ {
		h[i] = raw[HashSize-1-i]
	}
	return &h, nil
}

type errInvalidLength int

func (e errInvalidLength) Error() string {
	return "chainhash: invalid hash length " + itoa(int(e))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// HashB returns the double-SHA-256 digest of b as a byte slice.
func HashB(b []byte) []byte {
	sum := hash.DoubleSha256(b)
	return sum[:]
}

// HashH returns the double-SHA-256 digest of b as a Hash.
func HashH(b []byte) Hash {
	return Hash(hash.DoubleSha256(b))
}
