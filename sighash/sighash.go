// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sighash builds the signature-hash preimages signed and verified
// by the script machine's CHECKSIG family: the legacy preimage, the BIP143
// segwit-v0 preimage with its lazily-cached midstate hashes, and partial
// version-1 (taproot) hash-type validation.
package sighash

import (
	"github.com/libbitcoin-go/core/bytesio"
	"github.com/libbitcoin-go/core/hash"
	"github.com/libbitcoin-go/core/opcode"
	"github.com/libbitcoin-go/core/script"
	"github.com/libbitcoin-go/core/transaction"
	"github.com/libbitcoin-go/core/txo"
)

// Type is the hash-type byte appended to a DER signature.
type Type uint32

const (
	Old          Type = 0x0
	All          Type = 0x1
	None         Type = 0x2
	Single       Type = 0x3
	AnyOneCanPay Type = 0x80

	// Mask isolates the base hash type, discarding AnyOneCanPay.
	Mask Type = 0x1f
)

func doubleSha(b []byte) [32]byte {
	return hash.DoubleSha256(b)
}

// Cache lazily computes and memoizes the three BIP143 midstate hashes for a
// transaction. Callers promise the transaction's inputs/outputs/sequences
// do not mutate while a Cache for it is in use.
type Cache struct {
	tx *transaction.Transaction

	havePrevOuts bool
	prevOuts     [32]byte
	haveSequence bool
	sequence     [32]byte
	haveOutputs  bool
	outputs      [32]byte
}

// NewCache returns a Cache bound to tx. Nothing is computed eagerly.
func NewCache(tx *transaction.Transaction) *Cache {
	return &Cache{tx: tx}
}

// HashPrevOuts returns SHA256^2 of the concatenated outpoints of every
// input, computing and caching it on first use.
func (c *Cache) HashPrevOuts() [32]byte {
	if !c.havePrevOuts {
		w := bytesio.NewWriter(0)
		for _, in := range c.tx.Inputs {
			in.PreviousOutpoint.Write(w)
		}
		c.prevOuts = doubleSha(w.Bytes())
		c.havePrevOuts = true
	}
	return c.prevOuts
}

// HashSequence returns SHA256^2 of the concatenated little-endian sequence
// numbers of every input, computing and caching it on first use.
func (c *Cache) HashSequence() [32]byte {
	if !c.haveSequence {
		w := bytesio.NewWriter(0)
		for _, in := range c.tx.Inputs {
			w.WriteUint32LE(in.Sequence)
		}
		c.sequence = doubleSha(w.Bytes())
		c.haveSequence = true
	}
	return c.sequence
}

// HashOutputs returns SHA256^2 of every serialized output, computing and
// caching it on first use.
func (c *Cache) HashOutputs() [32]byte {
	if !c.haveOutputs {
		w := bytesio.NewWriter(0)
		for _, out := range c.tx.Outputs {
			out.Write(w)
		}
		c.outputs = doubleSha(w.Bytes())
		c.haveOutputs = true
	}
	return c.outputs
}

var zeroHash [32]byte

// Legacy computes the unversioned (pre-BIP143) signature hash for input
// idx of tx, signing over subscript (the referenced output's script, with
// OP_CODESEPARATOR already stripped by the caller up to the most recent
// execution point).
//
// The SigHashSingle out-of-range case returns the historical "hash of 1"
// bug value; this is now part of consensus and must never be fixed.
func Legacy(tx transaction.Transaction, subscript script.Script, idx int, hashType Type) [32]byte {
	if hashType&Mask == Single && idx >= len(tx.Outputs) {
		var h [32]byte
		h[0] = 0x01
		return h
	}

	cleaned := subscript.RemoveOpcode(opcode.OP_CODESEPARATOR)

	inputs := make([]txo.Input, len(tx.Inputs))
	for i, in := range tx.Inputs {
		cp := in
		if i == idx {
			cp.Script = cleaned
		} else {
			cp.Script = script.Script{}
		}
		inputs[i] = cp
	}

	outputs := make([]txo.Output, len(tx.Outputs))
	copy(outputs, tx.Outputs)

	switch hashType & Mask {
	case None:
		outputs = outputs[:0]
		for i := range inputs {
			if i != idx {
				inputs[i].Sequence = 0
			}
		}
	case Single:
		outputs = outputs[:idx+1]
		for i := 0; i < idx; i++ {
			outputs[i] = txo.Output{Value: -1, Script: script.Script{}}
		}
		for i := range inputs {
			if i != idx {
				inputs[i].Sequence = 0
			}
		}
	default:
		// Old and All (and any undefined type) hash every input and
		// output unmodified, matching consensus's treatment of
		// undefined hash types as SigHashAll.
	}

	if hashType&AnyOneCanPay != 0 {
		inputs = inputs[idx : idx+1]
	}

	shallow := transaction.Transaction{
		Version:  tx.Version,
		Inputs:   inputs,
		Outputs:  outputs,
		LockTime: tx.LockTime,
	}

	w := bytesio.NewWriter(0)
	shallow.SerializeLegacy(w)
	w.WriteUint32LE(uint32(hashType))
	return doubleSha(w.Bytes())
}

// SegwitV0 computes the BIP143 signature hash for input idx of tx. value
// is the satoshi value of the output being spent, and subscript is the
// script code: for a P2WPKH program it is the synthesized legacy p2pkh
// script; for P2WSH and future programs it is the witness script itself
// (code-separator handling, if any, already applied by the caller).
func SegwitV0(c *Cache, tx transaction.Transaction, subscript script.Script, idx int, value int64, hashType Type) [32]byte {
	w := bytesio.NewWriter(0)
	w.WriteUint32LE(tx.Version)

	if hashType&AnyOneCanPay == 0 {
		h := c.HashPrevOuts()
		w.WriteBytes(h[:])
	} else {
		w.WriteBytes(zeroHash[:])
	}

	if hashType&AnyOneCanPay == 0 && hashType&Mask != Single && hashType&Mask != None {
		h := c.HashSequence()
		w.WriteBytes(h[:])
	} else {
		w.WriteBytes(zeroHash[:])
	}

	in := tx.Inputs[idx]
	in.PreviousOutpoint.Write(w)
	subscript.WriteWithPrefix(w)
	w.WriteInt64LE(value)
	w.WriteUint32LE(in.Sequence)

	if hashType&Mask != Single && hashType&Mask != None {
		h := c.HashOutputs()
		w.WriteBytes(h[:])
	} else if hashType&Mask == Single && idx < len(tx.Outputs) {
		ow := bytesio.NewWriter(0)
		tx.Outputs[idx].Write(ow)
		h := doubleSha(ow.Bytes())
		w.WriteBytes(h[:])
	} else {
		w.WriteBytes(zeroHash[:])
	}

	w.WriteUint32LE(tx.LockTime)
	w.WriteUint32LE(uint32(hashType))
	return doubleSha(w.Bytes())
}

// ScriptCodeForWitnessProgram returns the script code SegwitV0 should sign
// over for a P2WPKH program: the re-created legacy p2pkh locking script.
// The caller is responsible for recognizing that the output is a P2WPKH
// program (program length 20) before calling this.
func ScriptCodeForWitnessProgram(pubKeyHash []byte) script.Script {
	raw := make([]byte, 0, 25)
	raw = append(raw, 0x76, 0xa9, byte(len(pubKeyHash)))
	raw = append(raw, pubKeyHash...)
	raw = append(raw, 0x88, 0xac)
	return script.Parse(raw)
}

// definedTypesV1 is the set of hash types a version-1 (taproot) signature
// is permitted to use; anything else fails before any Schnorr verification
// is attempted.
var definedTypesV1 = map[Type]bool{
	0:                  true, // SIGHASH_DEFAULT
	All:                true,
	None:               true,
	Single:             true,
	All | AnyOneCanPay: true,
	None | AnyOneCanPay:   true,
	Single | AnyOneCanPay: true,
}

// ValidTaprootHashType reports whether hashType is one of the seven
// defined version-1 hash types. Full taproot preimage construction and
// Schnorr verification are not implemented; this predicate is the extent
// of version-1 support.
func ValidTaprootHashType(hashType Type) bool {
	return definedTypesV1[hashType]
}
