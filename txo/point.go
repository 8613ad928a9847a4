// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txo implements the Point / Input / Output component: the
// previous-output reference a transaction input spends, and the two
// serializable halves (Input, Output) of a transaction's edges, plus the
// non-serialized per-input validation metadata a caller supplies.
package txo

import "github.com/libbitcoin-go/core/bytesio"

// Outpoint identifies a previous transaction output: a 32-byte hash plus
// the index of the output within that transaction.
type Outpoint struct {
	Hash  [32]byte
	Index uint32
}

// NullIndex is the index value a coinbase input's null outpoint carries.
const NullIndex = 0xffffffff

// IsNull reports whether this is a coinbase input's null point: an
// all-zero hash with index == NullIndex.
func (p Outpoint) IsNull() bool {
	if p.Index != NullIndex {
		return false
	}
	for _, b := range p.Hash {
		if b != 0 {
			return false
		}
	}
	return true
}

// ReadOutpoint decodes an Outpoint from r.
func ReadOutpoint(r *bytesio.Reader) Outpoint {
	var p Outpoint
	copy(p.Hash[:], r.ReadBytes(32))
	p.Index = r.ReadUint32LE()
	return p
}

// Write serializes p to w.
func (p Outpoint) Write(w *bytesio.Writer) {
	w.WriteBytes(p.Hash[:])
	w.WriteUint32LE(p.Index)
}
