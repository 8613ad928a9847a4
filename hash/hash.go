// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hash

// DoubleSha256 is "bitcoin_hash": SHA-256(SHA-256(x)). Used for txid/wtxid,
// the legacy and BIP143 sighash preimages, and the Merkle fold below.
func DoubleSha256(data []byte) [Size256]byte {
	first := Sum256(data)
	return Sum256(first[:])
}

// Hash160 is ripemd160(sha256(x)), the digest behind P2PKH/P2WPKH/OP_HASH160.
func Hash160(data []byte) [Size160]byte {
	first := Sum256(data)
	return Sum160(first[:])
}

// MerkleRoot iteratively replaces adjacent pairs with
// DoubleSha256(d[i] || d[i+1]), duplicating the final element at each level
// with an odd count, per spec.md §4.1. An empty input returns the all-zero
// hash; a single-element input returns that element unchanged.
func MerkleRoot(leaves [][Size256]byte) [Size256]byte {
	if len(leaves) == 0 {
		return [Size256]byte{}
	}
	level := make([][Size256]byte, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([][Size256]byte, len(level)/2)
		var buf [Size256 * 2]byte
		for i := 0; i < len(next); i++ {
			copy(buf[:Size256], level[2*i][:])
			copy(buf[Size256:], level[2*i+1][:])
			next[i] = DoubleSha256(buf[:])
		}
		level = next
	}
	return level[0]
}
