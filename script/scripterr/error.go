// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package scripterr is the error taxonomy shared by script parsing, pattern
// recognition, and the script machine.
package scripterr

import "github.com/libbitcoin-go/core/internal/er"

// Err identifies a kind of script error.
var Err er.ErrorType = er.NewErrorType("scripterr.Err")

var (
	// ErrInternal is returned if internal consistency checks fail. In
	// practice this error should never be seen as it would mean there is
	// an error in the engine logic.
	ErrInternal = Err.Code("ErrInternal")

	// ---------------------------------------
	// Failures related to improper API usage.
	// ---------------------------------------

	ErrInvalidFlags         = Err.Code("ErrInvalidFlags")
	ErrInvalidIndex         = Err.Code("ErrInvalidIndex")
	ErrNotMultisigScript    = Err.Code("ErrNotMultisigScript")
	ErrTooManyRequiredSigs  = Err.Code("ErrTooManyRequiredSigs")
	ErrTooMuchNullData      = Err.Code("ErrTooMuchNullData")

	// ------------------------------------------
	// Failures related to final execution state.
	// ------------------------------------------

	ErrEarlyReturn           = Err.Code("ErrEarlyReturn")
	ErrEmptyStack            = Err.Code("ErrEmptyStack")
	ErrEvalFalse             = Err.Code("ErrEvalFalse")
	ErrScriptUnfinished      = Err.Code("ErrScriptUnfinished")
	ErrInvalidProgramCounter = Err.Code("ErrInvalidProgramCounter")

	// -----------------------------------------------------
	// Failures related to exceeding maximum allowed limits.
	// -----------------------------------------------------

	ErrScriptTooBig          = Err.Code("ErrScriptTooBig")
	ErrElementTooBig         = Err.Code("ErrElementTooBig")
	ErrTooManyOperations     = Err.Code("ErrTooManyOperations")
	ErrStackOverflow         = Err.Code("ErrStackOverflow")
	ErrInvalidPubKeyCount    = Err.Code("ErrInvalidPubKeyCount")
	ErrInvalidSignatureCount = Err.Code("ErrInvalidSignatureCount")
	ErrNumberTooBig          = Err.Code("ErrNumberTooBig")

	// --------------------------------------------
	// Failures related to verification operations.
	// --------------------------------------------

	ErrVerify              = Err.Code("ErrVerify")
	ErrEqualVerify         = Err.Code("ErrEqualVerify")
	ErrNumEqualVerify      = Err.Code("ErrNumEqualVerify")
	ErrCheckSigVerify      = Err.Code("ErrCheckSigVerify")
	ErrCheckMultiSigVerify = Err.Code("ErrCheckMultiSigVerify")

	// --------------------------------------------
	// Failures related to improper use of opcodes.
	// --------------------------------------------

	ErrDisabledOpcode        = Err.Code("ErrDisabledOpcode")
	ErrReservedOpcode        = Err.Code("ErrReservedOpcode")
	ErrMalformedPush         = Err.Code("ErrMalformedPush")
	ErrInvalidStackOperation = Err.Code("ErrInvalidStackOperation")
	ErrUnbalancedConditional = Err.Code("ErrUnbalancedConditional")

	// ---------------------------------
	// Failures related to malleability.
	// ---------------------------------

	ErrMinimalData           = Err.Code("ErrMinimalData")
	ErrInvalidSigHashType    = Err.Code("ErrInvalidSigHashType")
	ErrSigTooShort           = Err.Code("ErrSigTooShort")
	ErrSigTooLong            = Err.Code("ErrSigTooLong")
	ErrSigInvalidSeqID       = Err.Code("ErrSigInvalidSeqID")
	ErrSigInvalidDataLen     = Err.Code("ErrSigInvalidDataLen")
	ErrSigHighS              = Err.Code("ErrSigHighS")
	ErrNotPushOnly           = Err.Code("ErrNotPushOnly")
	ErrSigNullDummy          = Err.Code("ErrSigNullDummy")
	ErrPubKeyType            = Err.Code("ErrPubKeyType")
	ErrCleanStack            = Err.Code("ErrCleanStack")
	ErrNullFail              = Err.Code("ErrNullFail")
	ErrWitnessMalleated      = Err.Code("ErrWitnessMalleated")
	ErrWitnessMalleatedP2SH  = Err.Code("ErrWitnessMalleatedP2SH")

	// -------------------------------
	// Failures related to soft forks.
	// -------------------------------

	ErrDiscourageUpgradableNOPs            = Err.Code("ErrDiscourageUpgradableNOPs")
	ErrNegativeLockTime                    = Err.Code("ErrNegativeLockTime")
	ErrUnsatisfiedLockTime                 = Err.Code("ErrUnsatisfiedLockTime")
	ErrMinimalIf                           = Err.Code("ErrMinimalIf")
	ErrDiscourageUpgradableWitnessProgram  = Err.Code("ErrDiscourageUpgradableWitnessProgram")

	// ----------------------------------------
	// Failures related to segregated witness.
	// ----------------------------------------

	ErrWitnessProgramEmpty       = Err.Code("ErrWitnessProgramEmpty")
	ErrWitnessProgramMismatch    = Err.Code("ErrWitnessProgramMismatch")
	ErrWitnessProgramWrongLength = Err.Code("ErrWitnessProgramWrongLength")
	ErrWitnessUnexpected         = Err.Code("ErrWitnessUnexpected")
	ErrWitnessPubKeyType         = Err.Code("ErrWitnessPubKeyType")

	// ------------------------------------------
	// Failures related to taproot (version 1).
	// ------------------------------------------

	// ErrTaprootUnsupported names the taproot (version 1) extension point.
	// No function in this module returns it: the machine treats a version-1
	// witness program like any other non-zero version, and package sighash
	// covers taproot only as far as ValidTaprootHashType.
	ErrTaprootUnsupported = Err.Code("ErrTaprootUnsupported")
)

// New creates an Error given a set of arguments.
func New(c *er.ErrorCode, desc string) er.R {
	return c.New(desc, nil)
}
