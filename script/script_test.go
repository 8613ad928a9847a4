// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"bytes"
	"testing"

	"github.com/libbitcoin-go/core/opcode"
)

func TestParseRoundTrip(t *testing.T) {
	raw := []byte{opcode.OP_DUP, opcode.OP_HASH160, 20,
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
		opcode.OP_EQUALVERIFY, opcode.OP_CHECKSIG}
	s := Parse(raw)
	if !s.ValidParse {
		t.Fatalf("expected valid parse")
	}
	if !bytes.Equal(s.Bytes(), raw) {
		t.Fatalf("round trip mismatch: got %x want %x", s.Bytes(), raw)
	}
	if s.ClassifyOutput() != PayKeyHash {
		t.Fatalf("expected PayKeyHash, got %v", s.ClassifyOutput())
	}
}

func TestParseUnderflowPreservesBytes(t *testing.T) {
	raw := []byte{opcode.OP_DATA_1 + 9, 1, 2, 3} // claims 10 bytes, has 3
	s := Parse(raw)
	if s.ValidParse {
		t.Fatalf("expected invalid parse")
	}
	if len(s.Ops) != 1 || !s.Ops[0].Underflow {
		t.Fatalf("expected single underflow operation")
	}
	if !bytes.Equal(s.Bytes(), raw) {
		t.Fatalf("underflow re-serialization mismatch: got %x want %x", s.Bytes(), raw)
	}
}

func TestParseUnderflowPushData2(t *testing.T) {
	raw := []byte{opcode.OP_PUSHDATA2, 0xff, 0xff, 1, 2} // claims 65535 bytes, has 2
	s := Parse(raw)
	if s.ValidParse {
		t.Fatalf("expected invalid parse")
	}
	if !bytes.Equal(s.Bytes(), raw) {
		t.Fatalf("underflow re-serialization mismatch: got %x want %x", s.Bytes(), raw)
	}
}

func TestClassifyOutputPayScriptHash(t *testing.T) {
	raw := append([]byte{opcode.OP_HASH160, 20}, make([]byte, 20)...)
	raw = append(raw, opcode.OP_EQUAL)
	s := Parse(raw)
	if s.ClassifyOutput() != PayScriptHash {
		t.Fatalf("expected PayScriptHash, got %v", s.ClassifyOutput())
	}
}

func TestClassifyOutputWitnessProgram(t *testing.T) {
	raw := append([]byte{opcode.OP_0, 20}, make([]byte, 20)...)
	s := Parse(raw)
	if s.ClassifyOutput() != WitnessProgram {
		t.Fatalf("expected WitnessProgram, got %v", s.ClassifyOutput())
	}
	if !s.IsPayWitnessKeyHash() {
		t.Fatalf("expected IsPayWitnessKeyHash")
	}
	version, program, ok := s.ExtractWitnessProgram()
	if !ok || version != 0 || len(program) != 20 {
		t.Fatalf("ExtractWitnessProgram = (%d, %x, %v)", version, program, ok)
	}
}

func TestClassifyOutputPayMultisig(t *testing.T) {
	key := make([]byte, 33)
	raw := []byte{opcode.OP_1, opcode.OP_DATA_1 + 32}
	raw = append(raw, key...)
	raw = append(raw, opcode.OP_1, opcode.OP_CHECKMULTISIG)
	s := Parse(raw)
	if s.ClassifyOutput() != PayMultisig {
		t.Fatalf("expected PayMultisig, got %v", s.ClassifyOutput())
	}
	required, keys, ok := s.MultisigParams()
	if !ok || required != 1 || len(keys) != 1 {
		t.Fatalf("MultisigParams = (%d, %d keys, %v)", required, len(keys), ok)
	}
}

func TestIsCommitmentPattern(t *testing.T) {
	payload := append([]byte{0xaa, 0x21, 0xa9, 0xed}, make([]byte, 32)...)
	raw := []byte{opcode.OP_RETURN, opcode.OP_DATA_1 + 35}
	raw = append(raw, payload...)
	s := Parse(raw)
	if !s.IsCommitmentPattern() {
		t.Fatalf("expected commitment pattern to match")
	}
	if s.ClassifyOutput() != PayNullData {
		t.Fatalf("expected PayNullData, got %v", s.ClassifyOutput())
	}
}

func TestIsCoinbasePattern(t *testing.T) {
	s := Parse([]byte{opcode.OP_DATA_1 + 1, 0x10, 0x27}) // height 10000 = 0x2710, minimal LE = 10 27
	if !s.IsCoinbasePattern(10000) {
		t.Fatalf("expected height 10000 to match")
	}
	if s.IsCoinbasePattern(10001) {
		t.Fatalf("height 10001 must not match")
	}
}

func TestSigOpCountPrecise(t *testing.T) {
	raw := []byte{opcode.OP_1 + 1, opcode.OP_CHECKMULTISIG, opcode.OP_CHECKSIG}
	s := Parse(raw)
	if got := s.SigOpCount(true); got != 3 {
		t.Fatalf("precise sigop count = %d, want 3", got)
	}
	if got := s.SigOpCount(false); got != MaxPubKeysPerMultiSig+1 {
		t.Fatalf("non-precise sigop count = %d, want %d", got, MaxPubKeysPerMultiSig+1)
	}
}

func TestP2SHSigOpCount(t *testing.T) {
	redeem := Parse([]byte{opcode.OP_1 + 1, opcode.OP_CHECKMULTISIG}).Bytes()
	sigScript := FromOperations([]Operation{{Opcode: byte(len(redeem)), Data: redeem}})
	if got := P2SHSigOpCount(sigScript); got != 2 {
		t.Fatalf("P2SH sigop count = %d, want 2", got)
	}
}

func TestDisassemble(t *testing.T) {
	s := Parse([]byte{opcode.OP_DUP, opcode.OP_1, opcode.OP_HASH160})
	got := s.Disassemble()
	want := "OP_DUP 1 OP_HASH160"
	if got != want {
		t.Fatalf("Disassemble() = %q, want %q", got, want)
	}
}

func TestIsPushOnlyAdmitsReserved(t *testing.T) {
	s := Parse([]byte{opcode.OP_RESERVED, opcode.OP_1})
	if !s.IsPushOnly() {
		t.Fatalf("OP_RESERVED must count as a relaxed push for IsPushOnly")
	}
}
