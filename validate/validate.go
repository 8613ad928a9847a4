// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validate

import (
	"github.com/libbitcoin-go/core/internal/er"
	"github.com/libbitcoin-go/core/machine"
	"github.com/libbitcoin-go/core/transaction"
	"github.com/libbitcoin-go/core/txo"
	"github.com/libbitcoin-go/core/validate/rules"
)

// Consensus constants used by the staged predicates below, per spec.md §6.
const (
	MinCoinbaseScriptSize      = 2
	MaxCoinbaseScriptSize      = 100
	LocktimeThreshold          = 500_000_000
	RelativeLocktimeMinVersion = 2
	CoinbaseMaturity           = 100
	MaxBlockSize               = 1_000_000
	MaxBlockSigops             = 20_000
	MaxFastSigops              = 80_000
)

// Check performs the context-free structural predicates: a transaction
// that fails Check can never become valid regardless of chain state.
// Mirrors transaction::check (src/chain/transaction.cpp).
func Check(tx transaction.Transaction) er.R {
	if len(tx.Inputs) == 0 || len(tx.Outputs) == 0 {
		return rules.New(rules.ErrEmptyTransaction, "transaction has no inputs or no outputs")
	}
	if tx.IsCoinbase() {
		size := tx.Inputs[0].Script.SerializeSize()
		if size < MinCoinbaseScriptSize || size > MaxCoinbaseScriptSize {
			return rules.New(rules.ErrInvalidCoinbaseScriptSize, "coinbase script size out of range")
		}
		return nil
	}
	for _, in := range tx.Inputs {
		if in.IsCoinbase() {
			return rules.New(rules.ErrPreviousOutputNull, "non-coinbase input spends the null outpoint")
		}
	}
	return nil
}

// isNonFinal reports whether tx's locktime has not yet been reached, per
// transaction::is_non_final. A transaction with every input final (sequence
// 0xffffffff) is always final regardless of locktime.
func isNonFinal(tx transaction.Transaction, ctx Context) bool {
	if tx.LockTime == 0 {
		return false
	}
	allFinal := true
	for _, in := range tx.Inputs {
		if !in.IsFinal() {
			allFinal = false
			break
		}
	}
	if allFinal {
		return false
	}
	time := ctx.Timestamp
	if ctx.Forks.Enabled(BIP113) {
		time = ctx.MedianTimePast
	}
	heightTime := ctx.Height
	if tx.LockTime >= LocktimeThreshold {
		heightTime = time
	}
	return tx.LockTime >= heightTime
}

// isMissingPrevouts reports whether any input's previous output could not
// be located, per transaction::is_missing_prevouts.
func isMissingPrevouts(tx transaction.Transaction, metadata []txo.Metadata) bool {
	if len(metadata) != len(tx.Inputs) {
		return true
	}
	for _, m := range metadata {
		if m.Missing {
			return true
		}
	}
	return false
}

// Accept performs the contextual predicates that require knowledge of the
// block a transaction would be confirmed in and the confirmation state of
// the outputs its inputs reference. metadata must align by index with
// tx.Inputs. Mirrors transaction::accept (src/chain/transaction.cpp).
func Accept(tx transaction.Transaction, metadata []txo.Metadata, ctx Context) er.R {
	if isNonFinal(tx, ctx) {
		return rules.New(rules.ErrTransactionNonFinal, "transaction locktime not yet satisfied")
	}
	if tx.IsCoinbase() {
		return nil
	}
	if isMissingPrevouts(tx, metadata) {
		return rules.New(rules.ErrMissingPreviousOutput, "one or more previous outputs could not be located")
	}
	// Transaction.Value sums this transaction's own outputs and
	// Transaction.Claim sums the previous outputs its inputs reference
	// (named the other way around from transaction::claim/value).
	if tx.Value() > tx.Claim(metadata) {
		return rules.New(rules.ErrSpendExceedsValue, "transaction spends more than its inputs supply")
	}
	for _, m := range metadata {
		if !m.IsMature(ctx.Height, CoinbaseMaturity) {
			return rules.New(rules.ErrCoinbaseMaturity, "input spends an immature coinbase output")
		}
	}
	if ctx.Forks.Enabled(BIP68) && tx.Version >= RelativeLocktimeMinVersion {
		for i, in := range tx.Inputs {
			m := metadata[i]
			if in.IsLocked(ctx.Height, ctx.MedianTimePast, m.ConfirmationHeight, m.ConfirmationMedianTimePast) {
				return rules.New(rules.ErrRelativeTimeLocked, "relative locktime not yet satisfied")
			}
		}
	}
	for _, m := range metadata {
		if !m.Confirmed && m.ConfirmationHeight == 0 {
			return rules.New(rules.ErrUnconfirmedSpend, "previous output is not yet confirmed")
		}
	}
	for _, m := range metadata {
		if m.Confirmed && m.SpentElsewhere {
			return rules.New(rules.ErrConfirmedDoubleSpend, "previous output already spent by a confirmed transaction")
		}
	}
	return nil
}

// Connect runs the script machine over every non-coinbase input, in order,
// stopping at the first failure. Mirrors transaction::connect: a coinbase
// transaction is skipped whole (its single input carries no spending script
// to verify), and any other transaction's inputs are run from index zero.
func Connect(tx transaction.Transaction, metadata []txo.Metadata, ctx Context) er.R {
	if tx.IsCoinbase() {
		return nil
	}
	flags := ctx.MachineFlags()
	for i, in := range tx.Inputs {
		if i >= len(metadata) {
			return rules.New(rules.ErrMissingPreviousOutput, "previous output metadata missing for input")
		}
		prevout := metadata[i].PreviousOutput
		eng, err := machine.New(tx, i, prevout.Script, in.Script, in.Witness, prevout.Value, flags)
		if err != nil {
			return rules.New(rules.ErrScriptValidation, err.Message())
		}
		ok, err := eng.Execute()
		if err != nil {
			return rules.New(rules.ErrScriptValidation, err.Message())
		}
		if !ok {
			return rules.New(rules.ErrScriptValidation, "script evaluated to false")
		}
	}
	return nil
}

// Guard applies context-free mempool policy: rules that reject a
// transaction from local relay/pool acceptance even though it could still
// appear validly inside a block assembled by rules this node doesn't
// enforce as policy. Mirrors transaction::guard() (the no-argument
// overload).
func Guard(tx transaction.Transaction) er.R {
	if tx.IsCoinbase() {
		return rules.New(rules.ErrCoinbaseNotAllowed, "coinbase transaction is not relayable")
	}
	if isInternalDoubleSpend(tx) {
		return rules.New(rules.ErrInternalDoubleSpend, "transaction spends the same previous output twice")
	}
	if tx.LegacySerializeSize() > MaxBlockSize {
		return rules.New(rules.ErrTransactionSizeLimit, "transaction exceeds the maximum block size")
	}
	return nil
}

// GuardContext applies mempool policy that additionally depends on the
// active forks and the previous outputs an input spends. Mirrors
// transaction::guard(const context&).
func GuardContext(tx transaction.Transaction, metadata []txo.Metadata, ctx Context) er.R {
	bip16 := ctx.Forks.Enabled(BIP16)
	bip141 := ctx.Forks.Enabled(BIP141)

	if !bip141 && tx.IsSegregated() {
		return rules.New(rules.ErrUnexpectedWitness, "transaction carries witness data before segwit activation")
	}
	if bip141 && tx.IsOverweight() {
		return rules.New(rules.ErrTransactionWeightLimit, "transaction exceeds the maximum block weight")
	}
	if isMissingPrevouts(tx, metadata) {
		return rules.New(rules.ErrMissingPreviousOutput, "one or more previous outputs could not be located")
	}
	limit := MaxBlockSigops
	if bip141 {
		limit = MaxFastSigops
	}
	if tx.SignatureOperations(metadata, bip16, bip141) > limit {
		return rules.New(rules.ErrTransactionSigopLimit, "transaction exceeds the maximum sigop count")
	}
	return nil
}

// isInternalDoubleSpend reports whether two inputs of tx spend the same
// outpoint, per transaction::is_internal_double_spend (is_distinct).
func isInternalDoubleSpend(tx transaction.Transaction) bool {
	seen := make(map[txo.Outpoint]struct{}, len(tx.Inputs))
	for _, in := range tx.Inputs {
		if _, ok := seen[in.PreviousOutpoint]; ok {
			return true
		}
		seen[in.PreviousOutpoint] = struct{}{}
	}
	return false
}
