// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txo

import (
	"github.com/libbitcoin-go/core/bytesio"
	"github.com/libbitcoin-go/core/script"
)

// Output is a transaction output: a value in satoshis and its locking
// script. Negative values are structurally representable but
// consensus-invalid; validation, not this type, rejects them.
type Output struct {
	Value  int64
	Script script.Script
}

// SerializeSize returns the number of bytes Write would produce.
func (o Output) SerializeSize() int {
	return 8 + varSize(uint64(o.Script.SerializeSize())) + o.Script.SerializeSize()
}

// Write serializes o to w: value, then the locking script with its varint
// length prefix.
func (o Output) Write(w *bytesio.Writer) {
	w.WriteInt64LE(o.Value)
	o.Script.WriteWithPrefix(w)
}

// ReadOutput decodes an Output from r.
func ReadOutput(r *bytesio.Reader) Output {
	value := r.ReadInt64LE()
	return Output{Value: value, Script: script.ParseWithPrefix(r)}
}

// SignatureOperations counts this output's locking-script sigop weight,
// per transaction::signature_operations (src/chain/transaction.cpp). A
// witness-program output carries only push opcodes, so bip141 does not
// change the count; the parameter is kept for symmetry with the
// reference's signature.
func (o Output) SignatureOperations(bip141 bool) int {
	return o.Script.SigOpCount(false)
}

func varSize(v uint64) int {
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
