// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"bytes"

	"github.com/libbitcoin-go/core/number"
	"github.com/libbitcoin-go/core/opcode"
)

// Pattern identifies the shape a script matches, for standardness and
// signature-hash subscript purposes.
type Pattern int

const (
	NonStandard Pattern = iota
	PayKeyHash
	PayScriptHash
	PayNullData
	PayPublicKey
	PayMultisig
	SignKeyHash
	SignScriptHash
	SignPublicKey
	SignMultisig
	WitnessProgram
)

// witnessCommitmentHeader is the fixed 4-byte prefix identifying a witness
// commitment inside an OP_RETURN output (BIP141).
var witnessCommitmentHeader = []byte{0xaa, 0x21, 0xa9, 0xed}

// ClassifyOutput returns the Pattern a locking script matches.
func (s Script) ClassifyOutput() Pattern {
	switch {
	case s.isPayScriptHashPattern():
		return PayScriptHash
	case s.isWitnessProgramPattern():
		return WitnessProgram
	case s.isPayKeyHashPattern():
		return PayKeyHash
	case s.isPayPublicKeyPattern():
		return PayPublicKey
	case s.isPayMultisigPattern():
		return PayMultisig
	case s.IsCommitmentPattern():
		return PayNullData
	case len(s.Ops) > 0 && s.Ops[0].Opcode == opcode.OP_RETURN:
		return PayNullData
	default:
		return NonStandard
	}
}

// ClassifyInput returns the Pattern an unlocking script matches, given the
// previous output's Pattern (needed to distinguish sign_key_hash from
// sign_script_hash, which share a push-only shape).
func (s Script) ClassifyInput(prev Pattern) Pattern {
	switch prev {
	case PayKeyHash:
		if len(s.Ops) == 2 && s.Ops[0].IsPush() && s.Ops[1].IsPush() {
			return SignKeyHash
		}
	case PayScriptHash:
		if len(s.Ops) >= 1 && s.IsPushOnly() {
			return SignScriptHash
		}
	case PayPublicKey:
		if len(s.Ops) == 1 && s.Ops[0].IsPush() {
			return SignPublicKey
		}
	case PayMultisig:
		if len(s.Ops) >= 1 && s.IsPushOnly() {
			return SignMultisig
		}
	}
	return NonStandard
}

// isPayScriptHashPattern: hash160, push_size_20, equal.
func (s Script) isPayScriptHashPattern() bool {
	return len(s.Ops) == 3 &&
		s.Ops[0].Opcode == opcode.OP_HASH160 &&
		s.Ops[1].Opcode == opcode.OP_DATA_1+19 &&
		s.Ops[2].Opcode == opcode.OP_EQUAL
}

// isWitnessProgramPattern: a version opcode (push_size_0 or
// push_positive_1..16) followed by a push of 2..40 bytes.
func (s Script) isWitnessProgramPattern() bool {
	if len(s.Ops) != 2 {
		return false
	}
	if !opcode.IsSmallInt(s.Ops[0].Opcode) {
		return false
	}
	op := s.Ops[1]
	return op.canonicalPush() && len(op.Data) >= 2 && len(op.Data) <= 40
}

// ExtractWitnessProgram returns (version, program, true) if the script
// matches isWitnessProgramPattern.
func (s Script) ExtractWitnessProgram() (version int, program []byte, ok bool) {
	if !s.isWitnessProgramPattern() {
		return 0, nil, false
	}
	v, _ := opcode.AsSmallInt(s.Ops[0].Opcode)
	return v, s.Ops[1].Data, true
}

// IsPayWitnessKeyHash: push_size_0, push_size_20.
func (s Script) IsPayWitnessKeyHash() bool {
	return len(s.Ops) == 2 && s.Ops[0].Opcode == opcode.OP_0 && s.Ops[1].Opcode == opcode.OP_DATA_1+19
}

// IsPayWitnessScriptHash: push_size_0, push_size_32.
func (s Script) IsPayWitnessScriptHash() bool {
	return len(s.Ops) == 2 && s.Ops[0].Opcode == opcode.OP_0 && s.Ops[1].Opcode == opcode.OP_DATA_1+31
}

// isPayKeyHashPattern: dup, hash160, push_size_20, equalverify, checksig.
func (s Script) isPayKeyHashPattern() bool {
	return len(s.Ops) == 5 &&
		s.Ops[0].Opcode == opcode.OP_DUP &&
		s.Ops[1].Opcode == opcode.OP_HASH160 &&
		s.Ops[2].Opcode == opcode.OP_DATA_1+19 &&
		s.Ops[3].Opcode == opcode.OP_EQUALVERIFY &&
		s.Ops[4].Opcode == opcode.OP_CHECKSIG
}

// isPayPublicKeyPattern: a single compressed/uncompressed pubkey push
// followed by checksig.
func (s Script) isPayPublicKeyPattern() bool {
	if len(s.Ops) != 2 || s.Ops[1].Opcode != opcode.OP_CHECKSIG {
		return false
	}
	n := len(s.Ops[0].Data)
	return s.Ops[0].IsPush() && (n == 33 || n == 65)
}

// isPayMultisigPattern: first op push_positive_M, last checkmultisig,
// second-to-last push_positive_N, M<=N, and N distinct pushes between.
func (s Script) isPayMultisigPattern() bool {
	if len(s.Ops) < 4 {
		return false
	}
	last := len(s.Ops) - 1
	if s.Ops[last].Opcode != opcode.OP_CHECKMULTISIG {
		return false
	}
	m, ok := opcode.AsSmallInt(s.Ops[0].Opcode)
	if !ok || m == 0 {
		return false
	}
	n, ok := opcode.AsSmallInt(s.Ops[last-1].Opcode)
	if !ok || n == 0 || m > n {
		return false
	}
	if last-1-1 != n {
		return false
	}
	for i := 1; i <= n; i++ {
		if !s.Ops[i].IsPush() {
			return false
		}
	}
	return true
}

// MultisigParams returns (required, keys) for a pay_multisig pattern.
func (s Script) MultisigParams() (required int, keys [][]byte, ok bool) {
	if !s.isPayMultisigPattern() {
		return 0, nil, false
	}
	m, _ := opcode.AsSmallInt(s.Ops[0].Opcode)
	n, _ := opcode.AsSmallInt(s.Ops[len(s.Ops)-2].Opcode)
	keys = make([][]byte, 0, n)
	for i := 1; i <= n; i++ {
		keys = append(keys, s.Ops[i].Data)
	}
	return m, keys, true
}

// IsCoinbasePattern reports whether the script's first operation minimally
// encodes height as a script number, per BIP34.
func (s Script) IsCoinbasePattern(height int64) bool {
	if len(s.Ops) == 0 || !s.Ops[0].IsPush() {
		return false
	}
	want := number.ScriptNumBytes(height)
	return bytes.Equal(s.Ops[0].Data, want)
}

// IsCommitmentPattern: >=2 ops, op_return, push_size_36 whose payload is
// prefixed by the fixed witness-commitment header.
func (s Script) IsCommitmentPattern() bool {
	if len(s.Ops) < 2 || s.Ops[0].Opcode != opcode.OP_RETURN {
		return false
	}
	op := s.Ops[1]
	if op.Opcode != opcode.OP_DATA_1+35 || len(op.Data) != 36 {
		return false
	}
	return bytes.Equal(op.Data[:4], witnessCommitmentHeader)
}
