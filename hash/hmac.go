// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hash

// HMAC per FIPS 198-1 / RFC 2104, generic over any accumulator in this
// package via the accumulator interface below. Nothing in consensus script
// evaluation calls HMAC directly (no opcode invokes it), but spec.md §4.1
// lists it as one of the Hash Kernel's public operations alongside
// single-shot and streaming hashing, so it is provided for completeness and
// for use by callers outside the consensus path (e.g. test-vector fixtures).
type accumulator interface {
	Write(p []byte) (int, error)
	Sum() []byte
	Reset()
	BlockSize() int
	Size() int
}

func (s *Sha256) Sum() []byte {
	var arr [Size256]byte
	cp := *s
	arr = cp.finalize()
	return arr[:]
}
func (s *Sha256) BlockSize() int { return BlockSize256 }
func (s *Sha256) Size() int      { return Size256 }

func (s *Sha1) Sum() []byte {
	var arr [Size1]byte
	cp := *s
	arr = cp.finalize()
	return arr[:]
}
func (s *Sha1) BlockSize() int { return BlockSize1 }
func (s *Sha1) Size() int      { return Size1 }

func (s *Sha512) Sum() []byte {
	var arr [Size512]byte
	cp := *s
	arr = cp.finalize()
	return arr[:]
}
func (s *Sha512) BlockSize() int { return BlockSize512 }
func (s *Sha512) Size() int      { return Size512 }

func (r *Ripemd160) Sum() []byte {
	var arr [Size160]byte
	cp := *r
	arr = cp.finalize()
	return arr[:]
}
func (r *Ripemd160) BlockSize() int { return BlockSize160 }
func (r *Ripemd160) Size() int      { return Size160 }

// Hmac computes HMAC(key, data) using newHash as the underlying accumulator
// constructor, e.g. hash.Hmac(hash.NewSha256, key, data).
func Hmac(newHash func() accumulator, key, data []byte) []byte {
	h := newHash()
	blockSize := h.BlockSize()

	if len(key) > blockSize {
		h.Write(key)
		key = h.Sum()
		h.Reset()
	}
	padded := make([]byte, blockSize)
	copy(padded, key)

	ipad := make([]byte, blockSize)
	opad := make([]byte, blockSize)
	for i := 0; i < blockSize; i++ {
		ipad[i] = padded[i] ^ 0x36
		opad[i] = padded[i] ^ 0x5c
	}

	h.Reset()
	h.Write(ipad)
	h.Write(data)
	inner := h.Sum()

	h.Reset()
	h.Write(opad)
	h.Write(inner)
	return h.Sum()
}

// HmacSha256 and HmacSha512 are the two HMAC instantiations callers outside
// this package are expected to need.
func HmacSha256(key, data []byte) []byte {
	return Hmac(func() accumulator { return NewSha256() }, key, data)
}

func HmacSha512(key, data []byte) []byte {
	return Hmac(func() accumulator { return NewSha512() }, key, data)
}
