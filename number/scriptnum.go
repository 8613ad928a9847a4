// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package number

import (
	"github.com/libbitcoin-go/core/internal/er"
)

// Err is this package's error type: malformed or out-of-range script
// numbers. Two failure modes are raised at this layer: an encoding longer
// than the caller's maximum length (ErrScriptNumOverflow) and, when the
// caller asks for minimal encoding, a non-minimal one
// (ErrScriptNumNotMinimal). The rest of the taxonomy, such as oversized
// stack items, belongs to the machine/script packages that call into this
// one.
var Err = er.NewErrorType("number.Err")

var ErrScriptNumOverflow = Err.Code("script number exceeds the maximum allowed length")
var ErrScriptNumNotMinimal = Err.Code("script number is not minimally encoded")

// DefaultScriptNumLen is the ordinary 4-byte maximum script-number length
// used by arithmetic opcodes.
const DefaultScriptNumLen = 4

// MaxLockTimeScriptNumLen is the 5-byte maximum accepted by
// OP_CHECKLOCKTIMEVERIFY / OP_CHECKSEQUENCEVERIFY, per spec.md §4.2.
const MaxLockTimeScriptNumLen = 5

// ScriptNumBytes returns the minimal little-endian sign-magnitude encoding
// of n. Zero encodes as the empty byte string.
func ScriptNumBytes(n int64) []byte {
	if n == 0 {
		return nil
	}

	negative := n < 0
	absVal := n
	if negative {
		absVal = -n
	}

	var result []byte
	for absVal > 0 {
		result = append(result, byte(absVal&0xff))
		absVal >>= 8
	}

	// If the most significant byte already has the sign bit set, another
	// byte must be appended to hold just the sign; this is the same
	// structural rule as the 4-byte script-number encoding everywhere
	// else in the reference implementation.
	if result[len(result)-1]&0x80 != 0 {
		if negative {
			result = append(result, 0x80)
		} else {
			result = append(result, 0x00)
		}
	} else if negative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// ParseScriptNum decodes a script number from b. maxLen bounds the accepted
// byte length (DefaultScriptNumLen or MaxLockTimeScriptNumLen); requireMinimal,
// when true, rejects any encoding carrying a removable trailing 0x00/0x80
// byte, per the minimal-data policy spec.md §4.2 describes as opcode-gated
// rather than universal.
func ParseScriptNum(b []byte, requireMinimal bool, maxLen int) (int64, er.R) {
	if len(b) > maxLen {
		return 0, ErrScriptNumOverflow.Default()
	}
	if requireMinimal && len(b) > 0 {
		// The minimal-encoding rule: the most significant byte must not be
		// 0x00 (or 0x80, when a second byte's absence would make it
		// redundant) unless that byte alone distinguishes sign from an
		// otherwise all-zero magnitude.
		last := b[len(b)-1]
		if last&0x7f == 0 {
			if len(b) == 1 || b[len(b)-2]&0x80 == 0 {
				return 0, ErrScriptNumNotMinimal.Default()
			}
		}
	}
	if len(b) == 0 {
		return 0, nil
	}

	var result int64
	for i, c := range b {
		result |= int64(c) << uint(8*i)
	}

	if b[len(b)-1]&0x80 != 0 {
		result &= ^(int64(0x80) << uint(8*(len(b)-1)))
		return -result, nil
	}
	return result, nil
}
