// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hash

// RIPEMD-160, the second half of OP_HASH160 (ripemd160(sha256(x))) and the
// standalone OP_RIPEMD160 opcode. Little-endian I/O throughout, unlike the
// SHA family. Two 80-step parallel lines (left/right) whose terminal states
// are combined with the initial state; see spec.md §4.1.

const Size160 = 20
const BlockSize160 = 64

var iv160 = [5]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476, 0xc3d2e1f0}

var ripemdNLeft = [80]uint{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	7, 4, 13, 1, 10, 6, 15, 3, 12, 0, 9, 5, 2, 14, 11, 8,
	3, 10, 14, 4, 9, 15, 8, 1, 2, 7, 0, 6, 13, 11, 5, 12,
	1, 9, 11, 10, 0, 8, 12, 4, 13, 3, 7, 15, 14, 5, 6, 2,
	4, 0, 5, 9, 7, 12, 2, 10, 14, 1, 3, 8, 11, 6, 15, 13,
}

var ripemdSLeft = [80]uint{
	11, 14, 15, 12, 5, 8, 7, 9, 11, 13, 14, 15, 6, 7, 9, 8,
	7, 6, 8, 13, 11, 9, 7, 15, 7, 12, 15, 9, 11, 7, 13, 12,
	11, 13, 6, 7, 14, 9, 13, 15, 14, 8, 13, 6, 5, 12, 7, 5,
	11, 12, 14, 15, 14, 15, 9, 8, 9, 14, 5, 6, 8, 6, 5, 12,
	9, 15, 5, 11, 6, 8, 13, 12, 5, 12, 13, 14, 11, 8, 5, 6,
}

var ripemdNRight = [80]uint{
	5, 14, 7, 0, 9, 2, 11, 4, 13, 6, 15, 8, 1, 10, 3, 12,
	6, 11, 3, 7, 0, 13, 5, 10, 14, 15, 8, 12, 4, 9, 1, 2,
	15, 5, 1, 3, 7, 14, 6, 9, 11, 8, 12, 2, 10, 0, 4, 13,
	8, 6, 4, 1, 3, 11, 15, 0, 5, 12, 2, 13, 9, 7, 10, 14,
	12, 15, 10, 4, 1, 5, 8, 7, 6, 2, 13, 14, 0, 3, 9, 11,
}

var ripemdSRight = [80]uint{
	8, 9, 9, 11, 13, 15, 15, 5, 7, 7, 8, 11, 14, 14, 12, 6,
	9, 13, 15, 7, 12, 8, 9, 11, 7, 7, 12, 7, 6, 15, 13, 11,
	9, 7, 15, 11, 8, 6, 6, 14, 12, 13, 5, 14, 13, 13, 7, 5,
	15, 5, 8, 11, 14, 14, 6, 14, 6, 9, 12, 9, 12, 5, 15, 8,
	8, 5, 12, 9, 12, 5, 14, 6, 8, 13, 6, 5, 15, 13, 11, 11,
}

var ripemdKLeft = [5]uint32{0x00000000, 0x5a827999, 0x6ed9eba1, 0x8f1bbcdc, 0xa953fd4e}
var ripemdKRight = [5]uint32{0x50a28be6, 0x5c4dd124, 0x6d703ef3, 0x7a6d76e9, 0x00000000}

func ripemdF1(x, y, z uint32) uint32 { return x ^ y ^ z }
func ripemdF2(x, y, z uint32) uint32 { return (x & y) | (^x & z) }
func ripemdF3(x, y, z uint32) uint32 { return (x | ^y) ^ z }
func ripemdF4(x, y, z uint32) uint32 { return (x & z) | (y &^ z) }
func ripemdF5(x, y, z uint32) uint32 { return x ^ (y | ^z) }

// Ripemd160 is a streaming RIPEMD-160 accumulator.
type Ripemd160 struct {
	h      [5]uint32
	buf    [BlockSize160]byte
	buflen int
	length uint64
}

func NewRipemd160() *Ripemd160 {
	r := &Ripemd160{}
	r.Reset()
	return r
}

func (r *Ripemd160) Reset() {
	r.h = iv160
	r.buflen = 0
	r.length = 0
}

func (r *Ripemd160) Write(p []byte) (int, error) {
	n := len(p)
	r.length += uint64(n)
	if r.buflen > 0 {
		need := BlockSize160 - r.buflen
		if need > len(p) {
			need = len(p)
		}
		copy(r.buf[r.buflen:], p[:need])
		r.buflen += need
		p = p[need:]
		if r.buflen == BlockSize160 {
			ripemd160Block(&r.h, r.buf[:])
			r.buflen = 0
		}
	}
	for len(p) >= BlockSize160 {
		ripemd160Block(&r.h, p[:BlockSize160])
		p = p[BlockSize160:]
	}
	if len(p) > 0 {
		copy(r.buf[:], p)
		r.buflen = len(p)
	}
	return n, nil
}

func (r *Ripemd160) Digest() [Size160]byte {
	cp := *r
	return cp.finalize()
}

func (r *Ripemd160) finalize() [Size160]byte {
	bitLen := r.length * 8
	r.Write([]byte{0x80})
	for r.buflen != 56 {
		r.Write([]byte{0x00})
	}
	var lenBuf [8]byte
	putLE32(lenBuf[:4], uint32(bitLen))
	putLE32(lenBuf[4:], uint32(bitLen>>32))
	copy(r.buf[56:], lenBuf[:])
	ripemd160Block(&r.h, r.buf[:])

	var out [Size160]byte
	for i, w := range r.h {
		putLE32(out[i*4:], w)
	}
	return out
}

func ripemd160Block(h *[5]uint32, block []byte) {
	var x [16]uint32
	for i := 0; i < 16; i++ {
		x[i] = getLE32(block[i*4:])
	}

	a1, b1, c1, d1, e1 := h[0], h[1], h[2], h[3], h[4]
	a2, b2, c2, d2, e2 := h[0], h[1], h[2], h[3], h[4]

	for i := 0; i < 80; i++ {
		round := i / 16
		var f1, f2 uint32
		switch round {
		case 0:
			f1 = ripemdF1(b1, c1, d1)
			f2 = ripemdF5(b2, c2, d2)
		case 1:
			f1 = ripemdF2(b1, c1, d1)
			f2 = ripemdF4(b2, c2, d2)
		case 2:
			f1 = ripemdF3(b1, c1, d1)
			f2 = ripemdF3(b2, c2, d2)
		case 3:
			f1 = ripemdF4(b1, c1, d1)
			f2 = ripemdF2(b2, c2, d2)
		case 4:
			f1 = ripemdF5(b1, c1, d1)
			f2 = ripemdF1(b2, c2, d2)
		}

		t1 := rotl32(a1+f1+x[ripemdNLeft[i]]+ripemdKLeft[round], ripemdSLeft[i]) + e1
		a1, b1, c1, d1, e1 = e1, t1, b1, rotl32(c1, 10), d1

		t2 := rotl32(a2+f2+x[ripemdNRight[i]]+ripemdKRight[round], ripemdSRight[i]) + e2
		a2, b2, c2, d2, e2 = e2, t2, b2, rotl32(c2, 10), d2
	}

	t := h[1] + c1 + d2
	h[1] = h[2] + d1 + e2
	h[2] = h[3] + e1 + a2
	h[3] = h[4] + a1 + b2
	h[4] = h[0] + b1 + c2
	h[0] = t
}

// Sum160 is the single-shot RIPEMD-160 digest of data.
func Sum160(data []byte) [Size160]byte {
	r := NewRipemd160()
	r.Write(data)
	return r.finalize()
}
