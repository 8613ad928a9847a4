// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bytesio

import "testing"

func TestReadWriteRoundTrip(t *testing.T) {
	w := NewWriter(0)
	w.WriteByte(0x01)
	w.WriteUint32LE(0xdeadbeef)
	w.WriteVarBytes([]byte("hello"))
	w.WriteSize(0x123456)

	r := NewReader(w.Bytes())
	if got := r.ReadByte(); got != 0x01 {
		t.Fatalf("byte = %x", got)
	}
	if got := r.ReadUint32LE(); got != 0xdeadbeef {
		t.Fatalf("uint32 = %x", got)
	}
	n := r.ReadSize()
	if n != 5 {
		t.Fatalf("varbytes len = %d", n)
	}
	if string(r.ReadBytes(int(n))) != "hello" {
		t.Fatalf("varbytes payload mismatch")
	}
	if got := r.ReadSize(); got != 0x123456 {
		t.Fatalf("size = %x", got)
	}
	if r.Failed() {
		t.Fatalf("unexpected failure")
	}
}

func TestVarintSizeClasses(t *testing.T) {
	tests := []uint64{0, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, 1 << 40}
	for _, v := range tests {
		w := NewWriter(0)
		w.WriteSize(v)
		r := NewReader(w.Bytes())
		got := r.ReadSize()
		if got != v || r.Failed() {
			t.Errorf("WriteSize/ReadSize(%d) round-trip = %d, failed=%v", v, got, r.Failed())
		}
	}
}

func TestReadBytesUnderflowSetsFailed(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if r.ReadBytes(5) != nil {
		t.Fatalf("expected nil on underflow")
	}
	if !r.Failed() {
		t.Fatalf("expected Failed() after underflow")
	}
	// Once failed, further reads stay zero-valued.
	if r.ReadByte() != 0 {
		t.Fatalf("expected 0 after failure")
	}
}

func TestSetLimit(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5})
	r.SetLimit(2)
	if r.ReadBytes(3) != nil {
		t.Fatalf("expected limited read to fail")
	}
}

func TestPeekByteDoesNotAdvance(t *testing.T) {
	r := NewReader([]byte{0xaa, 0xbb})
	if r.PeekByte() != 0xaa {
		t.Fatalf("peek mismatch")
	}
	if r.Position() != 0 {
		t.Fatalf("peek should not advance position")
	}
	if r.ReadByte() != 0xaa {
		t.Fatalf("read after peek mismatch")
	}
}
