// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rules is the error taxonomy for the Validation Pipeline
// component: the typed codes Check, Accept, Connect, and the mempool
// guards return, split the same way spec.md §7 partitions the error
// space -- structural, contextual, and script-verification failures --
// mirroring the shape of scripterr for the script machine.
package rules

import "github.com/libbitcoin-go/core/internal/er"

// Err identifies a kind of validation-pipeline failure.
var Err er.ErrorType = er.NewErrorType("rules.Err")

var (
	// --------------------------------------------
	// Check: context-free structural failures.
	// --------------------------------------------

	ErrEmptyTransaction          = Err.CodeWithDetail("ErrEmptyTransaction", "bad-txns-vin-vout-empty")
	ErrInvalidCoinbaseScriptSize = Err.CodeWithDetail("ErrInvalidCoinbaseScriptSize", "bad-cb-length")
	ErrPreviousOutputNull        = Err.CodeWithDetail("ErrPreviousOutputNull", "bad-txns-prevout-null")

	// --------------------------------------------
	// Guard: mempool-policy structural failures.
	// --------------------------------------------

	ErrCoinbaseNotAllowed     = Err.CodeWithDetail("ErrCoinbaseNotAllowed", "coinbase")
	ErrInternalDoubleSpend    = Err.CodeWithDetail("ErrInternalDoubleSpend", "bad-txns-inputs-duplicate")
	ErrTransactionSizeLimit   = Err.CodeWithDetail("ErrTransactionSizeLimit", "bad-txns-oversize")
	ErrTransactionWeightLimit = Err.CodeWithDetail("ErrTransactionWeightLimit", "bad-txns-weight")
	ErrUnexpectedWitness      = Err.CodeWithDetail("ErrUnexpectedWitness", "unexpected-witness")
	ErrTransactionSigopLimit  = Err.CodeWithDetail("ErrTransactionSigopLimit", "bad-txns-too-many-sigops")

	// --------------------------------------------
	// Accept: contextual failures.
	// --------------------------------------------

	ErrMissingPreviousOutput = Err.CodeWithDetail("ErrMissingPreviousOutput", "bad-txns-inputs-missingorspent")
	ErrTransactionNonFinal   = Err.CodeWithDetail("ErrTransactionNonFinal", "bad-txns-nonfinal")
	ErrSpendExceedsValue     = Err.CodeWithDetail("ErrSpendExceedsValue", "bad-txns-in-belowout")
	ErrCoinbaseMaturity      = Err.CodeWithDetail("ErrCoinbaseMaturity", "bad-txns-premature-spend-of-coinbase")
	ErrRelativeTimeLocked    = Err.CodeWithDetail("ErrRelativeTimeLocked", "bad-txns-nonfinal")
	ErrUnconfirmedSpend      = Err.CodeWithDetail("ErrUnconfirmedSpend", "bad-txns-inputs-missingorspent")
	ErrConfirmedDoubleSpend  = Err.CodeWithDetail("ErrConfirmedDoubleSpend", "bad-txns-inputs-spent")

	// --------------------------------------------
	// Connect: script verification verdicts.
	// --------------------------------------------

	ErrScriptValidation = Err.CodeWithDetail("ErrScriptValidation", "mandatory-script-verify-flag-failed")
)

// New creates an Error given a set of arguments.
func New(c *er.ErrorCode, desc string) er.R {
	return c.New(desc, nil)
}
