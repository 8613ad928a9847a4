// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package witness implements the Witness component: an ordered stack of
// byte strings carried alongside a segwit input, plus extraction of the
// effective input script and initial execution stack for a v0 witness
// program.
package witness

import (
	"github.com/libbitcoin-go/core/bytesio"
	"github.com/libbitcoin-go/core/hash"
	"github.com/libbitcoin-go/core/opcode"
	"github.com/libbitcoin-go/core/script"
)

// Witness is an ordered stack of byte strings.
type Witness struct {
	Stack [][]byte
}

// Parse reads an element-count-prefixed witness (BIP144 form used inside a
// transaction's segwit serialization).
func Parse(r *bytesio.Reader) Witness {
	n := r.ReadSize()
	w := Witness{Stack: make([][]byte, 0, n)}
	for i := uint64(0); i < n; i++ {
		elemLen := r.ReadSize()
		w.Stack = append(w.Stack, r.ReadBytes(int(elemLen)))
	}
	return w
}

// WriteWithCount serializes the witness to w, prefixed by its element
// count -- the form used within a transaction. This differs from a script's
// length prefix, which counts bytes rather than elements.
func (w Witness) WriteWithCount(out *bytesio.Writer) {
	out.WriteSize(uint64(len(w.Stack)))
	for _, elem := range w.Stack {
		out.WriteVarBytes(elem)
	}
}

// SerializedSize returns the byte length WriteWithCount would produce.
func (w Witness) SerializedSize() int {
	size := sizeOfVarInt(uint64(len(w.Stack)))
	for _, elem := range w.Stack {
		size += sizeOfVarInt(uint64(len(elem))) + len(elem)
	}
	return size
}

func sizeOfVarInt(v uint64) int {
	switch {
	case v < 0xfd:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// IsEmpty reports whether the witness carries no elements -- the marker a
// transaction uses to decide whether it is "segregated".
func (w Witness) IsEmpty() bool { return len(w.Stack) == 0 }

// IsCoinbaseReserved reports whether this witness matches the one shape a
// coinbase input's witness is allowed to take: exactly one 32-byte element
// (BIP141's witness commitment nonce).
func (w Witness) IsCoinbaseReserved() bool {
	return len(w.Stack) == 1 && len(w.Stack[0]) == 32
}

// ExtractResult holds the input script and initial stack a witness program
// expands to, per spec.md §4.5.
type ExtractResult struct {
	// Script is the synthesized or popped input script to evaluate.
	Script script.Script
	// InitialStack seeds the machine's primary stack: the whole witness
	// stack for p2wkh, and the witness stack minus the popped witness
	// script for p2wsh.
	InitialStack [][]byte
	// AnyVersionSucceeds is true when the program version is something
	// other than 0: the soft fork is forward-compatible and evaluation
	// trivially succeeds without running anything.
	AnyVersionSucceeds bool
}

// Extract computes the effective script and stack a witness expands to when
// spending an output whose locking script matched a witness-program
// pattern, per spec.md §4.5.
func Extract(w Witness, programVersion int, program []byte) (ExtractResult, bool) {
	if programVersion != 0 {
		return ExtractResult{AnyVersionSucceeds: true}, true
	}

	switch len(program) {
	case 20: // p2wkh
		if len(w.Stack) != 2 {
			return ExtractResult{}, false
		}
		sigScript := script.FromOperations([]script.Operation{
			{Opcode: opcode.OP_DUP},
			{Opcode: opcode.OP_HASH160},
			{Opcode: byte(len(program)), Data: program},
			{Opcode: opcode.OP_EQUALVERIFY},
			{Opcode: opcode.OP_CHECKSIG},
		})
		return ExtractResult{Script: sigScript, InitialStack: w.Stack}, true

	case 32: // p2wsh
		if len(w.Stack) == 0 {
			return ExtractResult{}, false
		}
		witnessScript := w.Stack[len(w.Stack)-1]
		remaining := w.Stack[:len(w.Stack)-1]
		sum := hash.Sum256(witnessScript)
		if !bytesEqual(sum[:], program) {
			return ExtractResult{}, false
		}
		return ExtractResult{Script: script.Parse(witnessScript), InitialStack: remaining}, true

	default:
		// A version-0 program of any other length fails validation
		// outright (spec.md §4.5).
		return ExtractResult{}, false
	}
}

// SigOpScript returns a script suitable only for sigop counting purposes
// (not execution), mirroring the heuristic extract_sigop_script applies:
// p2wkh counts as a single checksig, p2wsh counts the popped witness
// script, anything else contributes nothing.
func SigOpScript(w Witness, programVersion int, program []byte) (script.Script, bool) {
	if programVersion != 0 {
		return script.Script{}, true
	}
	switch len(program) {
	case 20:
		return script.FromOperations([]script.Operation{{Opcode: opcode.OP_CHECKSIG}}), true
	case 32:
		if len(w.Stack) == 0 {
			return script.Script{}, true
		}
		return script.Parse(w.Stack[len(w.Stack)-1]), true
	default:
		return script.Script{}, true
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
