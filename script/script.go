// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import (
	"github.com/libbitcoin-go/core/bytesio"
	"github.com/libbitcoin-go/core/opcode"
)

// Script is an ordered sequence of operations together with a flag
// recording whether every operation parsed cleanly.
type Script struct {
	Ops        []Operation
	ValidParse bool
}

// Parse decodes raw into a Script. It never fails: truncated trailing data
// becomes a single underflow Operation, and ValidParse is set to false.
func Parse(raw []byte) Script {
	s := Script{ValidParse: true}
	i := 0
	for i < len(raw) {
		tag := raw[i]
		switch {
		case tag >= opcode.OP_DATA_1 && tag <= opcode.OP_DATA_75:
			need := int(tag)
			if len(raw)-(i+1) < need {
				s.Ops = append(s.Ops, Operation{Opcode: tag, Data: raw[i+1:], Underflow: true})
				s.ValidParse = false
				return s
			}
			s.Ops = append(s.Ops, Operation{Opcode: tag, Data: raw[i+1 : i+1+need]})
			i += 1 + need

		case tag == opcode.OP_PUSHDATA1 || tag == opcode.OP_PUSHDATA2 || tag == opcode.OP_PUSHDATA4:
			lenBytes := 1
			if tag == opcode.OP_PUSHDATA2 {
				lenBytes = 2
			} else if tag == opcode.OP_PUSHDATA4 {
				lenBytes = 4
			}
			if len(raw)-(i+1) < lenBytes {
				s.Ops = append(s.Ops, Operation{Opcode: tag, Data: raw[i+1:], Underflow: true})
				s.ValidParse = false
				return s
			}
			var need int
			switch lenBytes {
			case 1:
				need = int(raw[i+1])
			case 2:
				need = int(raw[i+1]) | int(raw[i+2])<<8
			case 4:
				need = int(raw[i+1]) | int(raw[i+2])<<8 | int(raw[i+3])<<16 | int(raw[i+4])<<24
			}
			off := i + 1 + lenBytes
			if need < 0 || len(raw)-off < need {
				s.Ops = append(s.Ops, Operation{Opcode: tag, Data: raw[i+1:], Underflow: true})
				s.ValidParse = false
				return s
			}
			s.Ops = append(s.Ops, Operation{Opcode: tag, Data: raw[off : off+need]})
			i = off + need

		default:
			s.Ops = append(s.Ops, Operation{Opcode: tag})
			i++
		}
	}
	return s
}

// FromOperations builds a Script directly from a slice of operations.
func FromOperations(ops []Operation) Script {
	return Script{Ops: ops, ValidParse: true}
}

// Bytes serializes the script without a length prefix.
func (s Script) Bytes() []byte {
	size := 0
	for _, op := range s.Ops {
		size += op.serializedSize()
	}
	buf := make([]byte, 0, size)
	for _, op := range s.Ops {
		buf = op.appendBytes(buf)
	}
	return buf
}

// WriteWithPrefix serializes the script to w with a varint length prefix.
func (s Script) WriteWithPrefix(w *bytesio.Writer) {
	w.WriteVarBytes(s.Bytes())
}

// ParseWithPrefix reads a varint-length-prefixed script from r.
func ParseWithPrefix(r *bytesio.Reader) Script {
	n := r.ReadSize()
	return Parse(r.ReadBytes(int(n)))
}

// SerializeSize returns len(s.Bytes()) without allocating.
func (s Script) SerializeSize() int {
	size := 0
	for _, op := range s.Ops {
		size += op.serializedSize()
	}
	return size
}

// IsPushOnly reports whether every operation in the script pushes data.
// OP_RESERVED and the OP_1..OP_16/OP_1NEGATE family all count as pushes
// here, matching the relaxed-push definition used by P2SH sigScript
// validation.
func (s Script) IsPushOnly() bool {
	for _, op := range s.Ops {
		if !opcode.IsRelaxedPush(op.Opcode) {
			return false
		}
	}
	return true
}

// RemoveOpcode returns a copy of the script with every operation matching
// target removed. Used to strip OP_CODESEPARATOR before legacy signature
// hashing.
func (s Script) RemoveOpcode(target byte) Script {
	out := make([]Operation, 0, len(s.Ops))
	for _, op := range s.Ops {
		if op.Opcode != target {
			out = append(out, op)
		}
	}
	return Script{Ops: out, ValidParse: s.ValidParse}
}

// Disassemble renders the script in mnemonic form, per spec.md §4.3: small
// integer pushes render as decimals, single printable-ASCII byte pushes
// render quoted, other pushes render as hex with a size-class indicator for
// non-minimal pushes, and every other opcode renders by symbolic name.
func (s Script) Disassemble() string {
	var out []byte
	for i, op := range s.Ops {
		if i > 0 {
			out = append(out, ' ')
		}
		out = appendMnemonic(out, op)
	}
	return string(out)
}

func appendMnemonic(out []byte, op Operation) []byte {
	if v, ok := op.SmallInt(); ok {
		return append(out, []byte(itoaSigned(v))...)
	}
	if op.IsPush() {
		if len(op.Data) == 1 && op.Data[0] >= 0x20 && op.Data[0] < 0x7f {
			out = append(out, '\'')
			out = append(out, op.Data[0])
			return append(out, '\'')
		}
		out = append(out, '[')
		if !op.canonicalPush() {
			switch op.Opcode {
			case opcode.OP_PUSHDATA1:
				out = append(out, '1', '.')
			case opcode.OP_PUSHDATA2:
				out = append(out, '2', '.')
			case opcode.OP_PUSHDATA4:
				out = append(out, '4', '.')
			default:
				out = append(out, '0', '.')
			}
		}
		out = appendHex(out, op.Data)
		return append(out, ']')
	}
	return append(out, []byte(opcode.OpcodeName(op.Opcode))...)
}

func itoaSigned(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func appendHex(out []byte, b []byte) []byte {
	const hexDigits = "0123456789abcdef"
	for _, c := range b {
		out = append(out, hexDigits[c>>4], hexDigits[c&0xf])
	}
	return out
}
