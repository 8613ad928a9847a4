// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sighash

import (
	"testing"

	"github.com/libbitcoin-go/core/script"
	"github.com/libbitcoin-go/core/transaction"
	"github.com/libbitcoin-go/core/txo"
)

func sampleTx() transaction.Transaction {
	return transaction.Transaction{
		Version: 1,
		Inputs: []txo.Input{
			{PreviousOutpoint: txo.Outpoint{Index: 0}, Sequence: 0xffffffff},
			{PreviousOutpoint: txo.Outpoint{Index: 1}, Sequence: 0xffffffff},
		},
		Outputs: []txo.Output{
			{Value: 100, Script: script.Parse([]byte{0x51})},
			{Value: 200, Script: script.Parse([]byte{0x52})},
		},
	}
}

func TestLegacySingleOutOfRangeReturnsHashOfOne(t *testing.T) {
	tx := sampleTx()
	tx.Outputs = tx.Outputs[:1]
	got := Legacy(tx, script.Parse([]byte{0x51}), 1, Single)
	if got[0] != 0x01 {
		t.Fatalf("expected hash-of-one bug value, got %x", got)
	}
	for i := 1; i < 32; i++ {
		if got[i] != 0 {
			t.Fatalf("expected trailing zero bytes, got %x", got)
		}
	}
}

func TestLegacyDeterministic(t *testing.T) {
	tx := sampleTx()
	sub := script.Parse([]byte{0x51})
	a := Legacy(tx, sub, 0, All)
	b := Legacy(tx, sub, 0, All)
	if a != b {
		t.Fatalf("Legacy must be deterministic")
	}
}

func TestLegacyHashTypeChangesDigest(t *testing.T) {
	tx := sampleTx()
	sub := script.Parse([]byte{0x51})
	all := Legacy(tx, sub, 0, All)
	none := Legacy(tx, sub, 0, None)
	if all == none {
		t.Fatalf("different hash types must produce different digests")
	}
}

func TestCacheMemoizes(t *testing.T) {
	tx := sampleTx()
	c := NewCache(&tx)
	a := c.HashPrevOuts()
	b := c.HashPrevOuts()
	if a != b {
		t.Fatalf("cached HashPrevOuts must be stable")
	}
	if !c.havePrevOuts {
		t.Fatalf("expected cache to record computed state")
	}
}

func TestSegwitV0Deterministic(t *testing.T) {
	tx := sampleTx()
	c := NewCache(&tx)
	sub := script.Parse([]byte{0x76, 0xa9, 0x14})
	a := SegwitV0(c, tx, sub, 0, 5000, All)
	b := SegwitV0(c, tx, sub, 0, 5000, All)
	if a != b {
		t.Fatalf("SegwitV0 must be deterministic")
	}
}

func TestSegwitV0ValueAffectsDigest(t *testing.T) {
	tx := sampleTx()
	c := NewCache(&tx)
	sub := script.Parse([]byte{0x76, 0xa9, 0x14})
	a := SegwitV0(c, tx, sub, 0, 5000, All)
	b := SegwitV0(c, tx, sub, 0, 6000, All)
	if a == b {
		t.Fatalf("input value must be committed to by the preimage")
	}
}

func TestValidTaprootHashType(t *testing.T) {
	valid := []Type{0, All, None, Single, All | AnyOneCanPay, None | AnyOneCanPay, Single | AnyOneCanPay}
	for _, ht := range valid {
		if !ValidTaprootHashType(ht) {
			t.Fatalf("expected %x to be valid", ht)
		}
	}
	if ValidTaprootHashType(0x04) {
		t.Fatalf("expected undefined hash type to be rejected")
	}
}
