// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txo

import (
	"github.com/libbitcoin-go/core/bytesio"
	"github.com/libbitcoin-go/core/script"
	"github.com/libbitcoin-go/core/witness"
)

// Input is a transaction input: the outpoint it spends, its unlocking
// script, witness data, and sequence number.
type Input struct {
	PreviousOutpoint Outpoint
	Script           script.Script
	Witness          witness.Witness
	Sequence         uint32
}

// Metadata carries per-input validation context supplied by the caller; it
// is not part of an input's serialized form. Mirrors spec.md §3's
// description of libbitcoin's chain::input::metadata.
type Metadata struct {
	PreviousOutput             Output
	ConfirmationHeight         uint32
	ConfirmationMedianTimePast uint32
	CoinbaseProduced           bool
	SpentElsewhere             bool
	// Missing is true when the input's previous output could not be
	// located at all (spends an output that was never created, or one
	// already pruned), per is_missing_prevouts. It is distinct from
	// Confirmed: a prevout can be found yet unconfirmed.
	Missing bool
	// Confirmed is false for a prevout still sitting unconfirmed in the
	// pool; validate.Accept's unconfirmed-spend check consults it the same way
	// spec.md §4.9's Accept stage consults "confirmation state".
	Confirmed bool
}

// IsMature reports whether a coinbase-produced output referenced by this
// metadata has cleared the coinbase maturity rule at targetHeight.
func (m Metadata) IsMature(targetHeight uint32, coinbaseMaturity uint32) bool {
	if !m.CoinbaseProduced {
		return true
	}
	if targetHeight < m.ConfirmationHeight {
		return false
	}
	return targetHeight-m.ConfirmationHeight >= coinbaseMaturity
}

// ConfirmedAfter reports whether the referenced output was confirmed at or
// after height, e.g. for BIP68 relative-locktime evaluation.
func (m Metadata) ConfirmedAfter(height uint32) bool {
	return m.ConfirmationHeight >= height
}

// IsCoinbase reports whether the input spends the null outpoint.
func (in Input) IsCoinbase() bool { return in.PreviousOutpoint.IsNull() }

// IsFinal reports whether this input's sequence number is the terminal
// value, which disables both the transaction's absolute locktime (BIP65)
// and this input's relative locktime (BIP68).
func (in Input) IsFinal() bool { return in.Sequence == MaxSequence }

// MaxSequence is the terminal sequence value: a transaction whose every
// input carries it ignores locktime entirely.
const MaxSequence = 0xffffffff

// BIP68 relative-locktime sequence bit layout.
const (
	RelativeLocktimeDisableBit = 1 << 31
	RelativeLocktimeTypeFlag   = 1 << 22
	RelativeLocktimeMask       = 0x0000ffff
)

// IsLocked reports whether this input's BIP68 relative locktime has not
// yet been satisfied. height/medianTimePast describe the block under
// evaluation; confirmationHeight/confirmationMedianTimePast describe when
// the referenced output was confirmed.
func (in Input) IsLocked(height, medianTimePast, confirmationHeight, confirmationMedianTimePast uint32) bool {
	if in.Sequence&RelativeLocktimeDisableBit != 0 {
		return false
	}
	value := in.Sequence & RelativeLocktimeMask
	if in.Sequence&RelativeLocktimeTypeFlag != 0 {
		// Time-based: value counts 512-second units relative to the
		// median time past of the block that confirmed the prevout.
		required := confirmationMedianTimePast + value<<9
		return medianTimePast < required
	}
	required := confirmationHeight + value
	return height < required
}

// SignatureOperations counts this input's sigop weight given the previous
// output it spends and the active P2SH/segwit forks, per
// transaction::signature_operations (src/chain/transaction.cpp).
func (in Input) SignatureOperations(prevoutScript script.Script, bip16, bip141 bool) int {
	n := in.Script.SigOpCount(false)
	isP2SH := bip16 && prevoutScript.ClassifyOutput() == script.PayScriptHash
	if isP2SH {
		n += script.P2SHSigOpCount(in.Script)
	}
	if !bip141 {
		return n
	}
	if version, program, ok := prevoutScript.ExtractWitnessProgram(); ok {
		n += witnessSigOps(in.Witness, version, program)
	} else if isP2SH {
		if redeem, ok := p2shRedeemScript(in.Script); ok {
			if version, program, ok := redeem.ExtractWitnessProgram(); ok {
				n += witnessSigOps(in.Witness, version, program)
			}
		}
	}
	return n
}

func witnessSigOps(wit witness.Witness, version int, program []byte) int {
	s, counted := witness.SigOpScript(wit, version, program)
	if !counted {
		return 0
	}
	return s.SigOpCount(true)
}

func p2shRedeemScript(sigScript script.Script) (script.Script, bool) {
	if !sigScript.IsPushOnly() || len(sigScript.Ops) == 0 {
		return script.Script{}, false
	}
	last := sigScript.Ops[len(sigScript.Ops)-1]
	if !last.IsPush() {
		return script.Script{}, false
	}
	return script.Parse(last.Data), true
}

// SerializeSize returns the number of bytes WriteLegacy would produce (the
// witness, if any, is not part of the legacy form).
func (in Input) SerializeSize() int {
	return 36 + varSize(uint64(in.Script.SerializeSize())) + in.Script.SerializeSize() + 4
}

// WriteLegacy serializes in's legacy fields: outpoint, script, sequence.
func (in Input) WriteLegacy(w *bytesio.Writer) {
	in.PreviousOutpoint.Write(w)
	in.Script.WriteWithPrefix(w)
	w.WriteUint32LE(in.Sequence)
}

// ReadInputLegacy decodes an Input's legacy fields from r. The witness
// field is left empty; a segwit transaction reader fills it in separately
// once all inputs have been read, per BIP144's wire layout.
func ReadInputLegacy(r *bytesio.Reader) Input {
	in := Input{PreviousOutpoint: ReadOutpoint(r)}
	in.Script = script.ParseWithPrefix(r)
	in.Sequence = r.ReadUint32LE()
	return in
}
