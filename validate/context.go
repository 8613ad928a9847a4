// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package validate implements the Validation Pipeline component: the
// staged Check/Accept/Connect predicates and mempool-policy guards a
// transaction passes through, generalizing the reference's
// chain::transaction::check/accept/connect/guard split onto this module's
// transaction/txo/machine types.
package validate

import "github.com/libbitcoin-go/core/machine"

// Forks is the active-forks bitmask: a 32-bit mask of independently
// togglable consensus behavior changes, per spec.md §6.
type Forks uint32

const (
	BIP16 Forks = 1 << iota // P2SH
	BIP30                   // no duplicate unspent transaction hashes
	BIP34                   // coinbase must embed block height
	BIP42                   // subsidy halving overflow guard
	BIP65                   // checklocktimeverify
	BIP66                   // strict DER signatures
	BIP68                   // relative locktime
	BIP112                  // checksequenceverify
	BIP113                  // median-time-past locktime comparisons
	BIP141                  // segregated witness
	BIP143                  // segwit signature hash
	BIP147                  // null dummy (checkmultisig)
	Nops                    // discourage upgradable NOPs
	Cats                    // re-enabled OP_CAT and friends (not implemented; reserved)
)

// Enabled reports whether bit is set in f.
func (f Forks) Enabled(bit Forks) bool { return f&bit != 0 }

// Context carries the block-relative state a contextual predicate needs:
// the height and times used for locktime and maturity comparisons, plus
// the active-forks mask.
type Context struct {
	Height         uint32
	Timestamp      uint32
	MedianTimePast uint32
	Forks          Forks
}

// MachineFlags narrows Forks down to the subset of fork behaviors a single
// script evaluation needs to see, the script machine's own Flags bitmask.
func (c Context) MachineFlags() machine.Flags {
	var f machine.Flags
	if c.Forks.Enabled(BIP16) {
		f |= machine.VerifyP2SH
	}
	if c.Forks.Enabled(BIP66) {
		f |= machine.VerifyDERSignatures | machine.VerifyStrictEncoding
	}
	if c.Forks.Enabled(BIP147) {
		f |= machine.VerifyNullDummy | machine.VerifyNullFail
	}
	if c.Forks.Enabled(BIP65) {
		f |= machine.VerifyCheckLockTimeVerify
	}
	if c.Forks.Enabled(BIP112) {
		f |= machine.VerifyCheckSequenceVerify
	}
	if c.Forks.Enabled(BIP141) || c.Forks.Enabled(BIP143) {
		f |= machine.VerifyWitness | machine.VerifyCleanStack
	}
	if c.Forks.Enabled(Nops) {
		f |= machine.VerifyDiscourageUpgradableNops | machine.VerifyDiscourageUpgradableWitnessProgram
	}
	return f
}
