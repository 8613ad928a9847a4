// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction implements the Transaction component: the container
// of version, inputs, outputs, and locktime, with both the legacy and
// BIP144 segwit wire forms, txid/wtxid, and weight.
package transaction

import (
	"github.com/libbitcoin-go/core/bytesio"
	"github.com/libbitcoin-go/core/hash"
	"github.com/libbitcoin-go/core/script"
	"github.com/libbitcoin-go/core/txo"
	"github.com/libbitcoin-go/core/witness"
)

// MaxBlockWeight is the consensus ceiling a transaction's weight must not
// exceed to be non-"overweight" (BIP141).
const MaxBlockWeight = 4_000_000

const (
	baseSizeContribution = 3
	totalSizeContribution = 1
)

// Transaction is the container of version, inputs, outputs, and locktime.
type Transaction struct {
	Version  uint32
	Inputs   []txo.Input
	Outputs  []txo.Output
	LockTime uint32
}

// IsSegregated reports whether any input carries a non-empty witness.
func (t Transaction) IsSegregated() bool {
	for _, in := range t.Inputs {
		if !in.Witness.IsEmpty() {
			return true
		}
	}
	return false
}

// IsCoinbase reports whether this transaction has exactly one input and it
// spends the null outpoint.
func (t Transaction) IsCoinbase() bool {
	return len(t.Inputs) == 1 && t.Inputs[0].IsCoinbase()
}

// Parse decodes a Transaction, auto-detecting the legacy vs BIP144 segwit
// wire form: a segwit transaction is distinguished by a zero-length input
// count immediately followed by a flag byte of 0x01 (a legacy transaction
// with zero inputs is invalid, so this pair is unambiguous).
func Parse(r *bytesio.Reader) Transaction {
	var t Transaction
	t.Version = r.ReadUint32LE()

	numInputs := r.ReadSize()
	segwit := false
	if numInputs == 0 {
		flag := r.ReadByte()
		if flag == 0x01 {
			segwit = true
			numInputs = r.ReadSize()
		}
		// Any other flag: numInputs stays 0, the flag byte has been
		// consumed, and parsing continues with the output count read
		// from the byte after it.
	}

	t.Inputs = make([]txo.Input, numInputs)
	for i := range t.Inputs {
		t.Inputs[i] = txo.ReadInputLegacy(r)
	}

	numOutputs := r.ReadSize()
	t.Outputs = make([]txo.Output, numOutputs)
	for i := range t.Outputs {
		t.Outputs[i] = txo.ReadOutput(r)
	}

	if segwit {
		for i := range t.Inputs {
			t.Inputs[i].Witness = witness.Parse(r)
		}
	}

	t.LockTime = r.ReadUint32LE()
	return t
}

// SerializeLegacy writes the non-witness wire form.
func (t Transaction) SerializeLegacy(w *bytesio.Writer) {
	w.WriteUint32LE(t.Version)
	w.WriteSize(uint64(len(t.Inputs)))
	for _, in := range t.Inputs {
		in.WriteLegacy(w)
	}
	w.WriteSize(uint64(len(t.Outputs)))
	for _, out := range t.Outputs {
		out.Write(w)
	}
	w.WriteUint32LE(t.LockTime)
}

// SerializeSegwit writes the BIP144 wire form unconditionally (a
// non-segregated transaction may still be written this way; witnesses are
// simply empty).
func (t Transaction) SerializeSegwit(w *bytesio.Writer) {
	w.WriteUint32LE(t.Version)
	w.WriteByte(0x00)
	w.WriteByte(0x01)
	w.WriteSize(uint64(len(t.Inputs)))
	for _, in := range t.Inputs {
		in.WriteLegacy(w)
	}
	w.WriteSize(uint64(len(t.Outputs)))
	for _, out := range t.Outputs {
		out.Write(w)
	}
	for _, in := range t.Inputs {
		in.Witness.WriteWithCount(w)
	}
	w.WriteUint32LE(t.LockTime)
}

// Serialize writes whichever wire form matches IsSegregated, matching how
// a node re-broadcasts transactions it received.
func (t Transaction) Serialize(w *bytesio.Writer) {
	if t.IsSegregated() {
		t.SerializeSegwit(w)
	} else {
		t.SerializeLegacy(w)
	}
}

// legacySize/segwitSize back the weight formula without forcing two
// separate buffer allocations at call sites that only need the sizes.
func (t Transaction) legacySize() int {
	w := bytesio.NewWriter(0)
	t.SerializeLegacy(w)
	return w.Len()
}

func (t Transaction) segwitSize() int {
	w := bytesio.NewWriter(0)
	t.SerializeSegwit(w)
	return w.Len()
}

// LegacySerializeSize is the non-witness wire size, the basis for
// is_oversized (src/chain/transaction.cpp's serialized_size(false)).
func (t Transaction) LegacySerializeSize() int {
	return t.legacySize()
}

// Weight is 3*legacy_size + 1*segwit_size (BIP141). A non-segregated
// transaction's legacy and segwit serializations carry the same inputs and
// outputs, so segwit_size only adds the (empty) witness markers.
func (t Transaction) Weight() int {
	return baseSizeContribution*t.legacySize() + totalSizeContribution*t.segwitSize()
}

// IsOverweight reports whether Weight exceeds MaxBlockWeight.
func (t Transaction) IsOverweight() bool {
	return t.Weight() > MaxBlockWeight
}

// TxID is the double-SHA-256 of the legacy serialization.
func (t Transaction) TxID() [32]byte {
	w := bytesio.NewWriter(0)
	t.SerializeLegacy(w)
	return hash.DoubleSha256(w.Bytes())
}

// WTxID is the double-SHA-256 of the segwit serialization, except for a
// coinbase transaction, whose wtxid is defined to be the all-zero hash
// (BIP141).
func (t Transaction) WTxID() [32]byte {
	if t.IsCoinbase() {
		return [32]byte{}
	}
	w := bytesio.NewWriter(0)
	t.SerializeSegwit(w)
	return hash.DoubleSha256(w.Bytes())
}

// Value is the sum of this transaction's output values.
func (t Transaction) Value() int64 {
	var total int64
	for _, out := range t.Outputs {
		total += out.Value
	}
	return total
}

// Claim is the sum of the values of the previous outputs this
// transaction's inputs reference, per each input's supplied Metadata.
func (t Transaction) Claim(metadata []txo.Metadata) int64 {
	var total int64
	for _, m := range metadata {
		total += m.PreviousOutput.Value
	}
	return total
}

// Fee is Claim - Value, floored at zero on underflow (an overspending
// transaction's "fee" is not meaningful and is caught by validation
// elsewhere, not by this accessor).
func (t Transaction) Fee(metadata []txo.Metadata) int64 {
	fee := t.Claim(metadata) - t.Value()
	if fee < 0 {
		return 0
	}
	return fee
}

// SignatureOperations sums sigop weight across every input and output, per
// transaction::signature_operations (src/chain/transaction.cpp). metadata
// supplies each input's previous output for P2SH/witness-program
// classification, aligned by index with t.Inputs; a coinbase transaction
// has no metadata to supply, so its input counts only the legacy sigops of
// its own script.
func (t Transaction) SignatureOperations(metadata []txo.Metadata, bip16, bip141 bool) int {
	n := 0
	for i, in := range t.Inputs {
		var prevScript script.Script
		if i < len(metadata) {
			prevScript = metadata[i].PreviousOutput.Script
		}
		n += in.SignatureOperations(prevScript, bip16, bip141)
	}
	for _, out := range t.Outputs {
		n += out.SignatureOperations(bip141)
	}
	return n
}
