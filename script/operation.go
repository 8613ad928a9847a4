// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package script implements the Script component: an ordered sequence of
// operations, parsed tolerant of truncation (an operation whose declared
// payload runs past the end of the script becomes an "underflow" operation
// rather than a parse error), plus pattern recognition and sigop counting
// over that sequence.
//
// This diverges deliberately from the teacher's txscript/parsescript
// package, which returns a hard error and the opcodes parsed so far. Here
// every byte string is a valid script; the last, truncated operation is
// preserved so re-serialization reproduces the original bytes exactly.
package script

import "github.com/libbitcoin-go/core/opcode"

// Operation is a single (opcode, payload) pair as it appears in a script,
// plus the underflow marker described in the package doc.
type Operation struct {
	Opcode    byte
	Data      []byte
	Underflow bool
}

// IsPush reports whether this operation is a data-pushing opcode.
func (op Operation) IsPush() bool { return opcode.IsPush(op.Opcode) }

// SmallInt returns the integer value of a small-int push opcode (OP_0,
// OP_1NEGATE, OP_1..OP_16) and true, or (0, false) otherwise.
func (op Operation) SmallInt() (int, bool) {
	if op.Opcode == opcode.OP_1NEGATE {
		return -1, true
	}
	return opcode.AsSmallInt(op.Opcode)
}

// serializedSize returns the number of bytes this operation occupies in its
// script's serialization.
func (op Operation) serializedSize() int {
	if op.Underflow {
		return 1 + len(op.Data)
	}
	switch {
	case op.Opcode >= opcode.OP_DATA_1 && op.Opcode <= opcode.OP_DATA_75:
		return 1 + len(op.Data)
	case op.Opcode == opcode.OP_PUSHDATA1:
		return 1 + 1 + len(op.Data)
	case op.Opcode == opcode.OP_PUSHDATA2:
		return 1 + 2 + len(op.Data)
	case op.Opcode == opcode.OP_PUSHDATA4:
		return 1 + 4 + len(op.Data)
	default:
		return 1
	}
}

// appendBytes appends the wire encoding of op to buf and returns the result.
func (op Operation) appendBytes(buf []byte) []byte {
	if op.Underflow {
		buf = append(buf, op.Opcode)
		return append(buf, op.Data...)
	}
	buf = append(buf, op.Opcode)
	switch {
	case op.Opcode >= opcode.OP_DATA_1 && op.Opcode <= opcode.OP_DATA_75:
		buf = append(buf, op.Data...)
	case op.Opcode == opcode.OP_PUSHDATA1:
		buf = append(buf, byte(len(op.Data)))
		buf = append(buf, op.Data...)
	case op.Opcode == opcode.OP_PUSHDATA2:
		n := len(op.Data)
		buf = append(buf, byte(n), byte(n>>8))
		buf = append(buf, op.Data...)
	case op.Opcode == opcode.OP_PUSHDATA4:
		n := len(op.Data)
		buf = append(buf, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
		buf = append(buf, op.Data...)
	}
	return buf
}

// IsMinimalPush reports whether a push operation uses the smallest opcode
// capable of encoding its payload, the rule the minimal-data script flag
// enforces.
func (op Operation) IsMinimalPush() bool { return op.canonicalPush() }

// canonicalPush reports whether a push operation uses the smallest opcode
// capable of encoding its payload (the same-effect rule minimal-push
// policies enforce).
func (op Operation) canonicalPush() bool {
	if op.Opcode > opcode.OP_16 {
		return true
	}
	data := op.Data
	dataLen := len(data)
	if op.Opcode < opcode.OP_PUSHDATA1 && op.Opcode > opcode.OP_0 && dataLen == 1 && data[0] <= 16 {
		return false
	}
	if op.Opcode == opcode.OP_PUSHDATA1 && dataLen < opcode.OP_PUSHDATA1 {
		return false
	}
	if op.Opcode == opcode.OP_PUSHDATA2 && dataLen <= 0xff {
		return false
	}
	if op.Opcode == opcode.OP_PUSHDATA4 && dataLen <= 0xffff {
		return false
	}
	return true
}
