// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package machine is the script interpreter: primary/alt stacks, the
// conditional scope stack, opcode dispatch, P2SH re-execution, and
// witness-program re-execution, following the reference semantics of
// Bitcoin Script.
package machine

import (
	"bytes"

	"github.com/libbitcoin-go/core/internal/er"
	"github.com/libbitcoin-go/core/opcode"
	"github.com/libbitcoin-go/core/script"
	"github.com/libbitcoin-go/core/script/scripterr"
	"github.com/libbitcoin-go/core/sighash"
	"github.com/libbitcoin-go/core/transaction"
	"github.com/libbitcoin-go/core/txo"
	"github.com/libbitcoin-go/core/witness"
)

// Flags is the active-forks bitmask governing which consensus behavior
// changes apply during evaluation.
type Flags uint32

const (
	VerifyP2SH Flags = 1 << iota // BIP16
	VerifyStrictEncoding
	VerifyDERSignatures  // BIP66
	VerifyLowS
	VerifyNullDummy // BIP147
	VerifyDiscourageUpgradableNops
	VerifyCleanStack
	VerifyCheckLockTimeVerify // BIP65
	VerifyCheckSequenceVerify // BIP112
	VerifyWitness             // BIP141/BIP143
	VerifyDiscourageUpgradableWitnessProgram
	VerifyMinimalIf
	VerifyNullFail
	VerifyMinimalData
	VerifySigPushOnly
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// StandardVerifyFlags are the flags applied beyond bare consensus rules,
// matching the teacher's txscript.StandardVerifyFlags: every flag in this
// package turned on at once.
const StandardVerifyFlags = VerifyP2SH |
	VerifyStrictEncoding |
	VerifyDERSignatures |
	VerifyLowS |
	VerifyNullDummy |
	VerifyDiscourageUpgradableNops |
	VerifyCleanStack |
	VerifyCheckLockTimeVerify |
	VerifyCheckSequenceVerify |
	VerifyWitness |
	VerifyDiscourageUpgradableWitnessProgram |
	VerifyMinimalIf |
	VerifyNullFail |
	VerifyMinimalData |
	VerifySigPushOnly

// conditional scope values.
const (
	condFalse = 0
	condTrue  = 1
	condSkip  = 2
)

// witnessInfo records the active witness program version and its payload,
// set only while the final (witness-synthesized) script is executing.
type witnessInfo struct {
	version int
	program []byte
}

// Engine executes the ordered scripts of a single input evaluation: the
// unlocking script, the referenced output script, and (conditionally) a
// P2SH redeem script or a witness-program script.
type Engine struct {
	scripts   []script.Script
	scriptIdx int
	opIdx     int

	lastCodeSep int

	dstack Stack
	astack Stack
	condStack []int

	numOps int

	flags Flags

	tx          transaction.Transaction
	txIdx       int
	inputAmount int64

	witnessProgram *witnessInfo

	// p2shWitness* hold a P2SH-wrapped witness program discovered during
	// New: the redeem script is never executed as ops, it is instead
	// interpreted as a witness program once the P2SH hash check passes.
	p2shWitnessVersion int
	p2shWitnessProgram []byte
	p2shWitness        *witness.Witness

	sigHashCache *sighash.Cache

	savedFirstStack [][]byte
}

// New builds an Engine ready to evaluate a single input. prevScript is the
// script of the output being spent; redeemScript handling (P2SH) and
// witness-program extraction are performed here per flags.
func New(tx transaction.Transaction, txIdx int, prevScript script.Script, inputScript script.Script, wit witness.Witness, inputAmount int64, flags Flags) (*Engine, er.R) {
	if len(prevScript.Bytes()) > 10000 || len(inputScript.Bytes()) > 10000 {
		return nil, scripterr.New(scripterr.ErrScriptTooBig, "script exceeds max_script_size")
	}

	if flags.has(VerifySigPushOnly) && !inputScript.IsPushOnly() {
		return nil, scripterr.New(scripterr.ErrNotPushOnly, "signature script is not push only")
	}

	e := &Engine{
		tx:          tx,
		txIdx:       txIdx,
		inputAmount: inputAmount,
		flags:       flags,
	}
	e.dstack.verifyMinimalData = flags.has(VerifyMinimalData)
	e.astack.verifyMinimalData = flags.has(VerifyMinimalData)
	e.sigHashCache = sighash.NewCache(&e.tx)

	version, program, isWitness := prevScript.ExtractWitnessProgram()
	if isWitness && flags.has(VerifyWitness) {
		// A native witness program is evaluated on its own: the
		// signature script contributes nothing but the witness stack.
		if len(inputScript.Ops) != 0 {
			return nil, scripterr.New(scripterr.ErrWitnessMalleated, "signature script for native witness program must be empty")
		}
		if err := e.setUpWitness(version, program, wit); err != nil {
			return nil, err
		}
		return e, nil
	}

	e.scripts = []script.Script{inputScript, prevScript}

	if flags.has(VerifyP2SH) && prevScript.ClassifyOutput() == script.PayScriptHash {
		if !inputScript.IsPushOnly() {
			return nil, scripterr.New(scripterr.ErrNotPushOnly, "P2SH signature script is not push only")
		}
		redeem, ok := lastPush(inputScript)
		if !ok {
			return nil, scripterr.New(scripterr.ErrMalformedPush, "P2SH input script has no push to supply the redeem script")
		}
		redeemScript := script.Parse(redeem)

		if v, p, isWit := redeemScript.ExtractWitnessProgram(); isWit && flags.has(VerifyWitness) {
			e.p2shWitnessVersion = v
			e.p2shWitnessProgram = p
			e.p2shWitness = &wit
		} else {
			e.scripts = append(e.scripts, redeemScript)
		}
	}

	return e, nil
}

func lastPush(s script.Script) ([]byte, bool) {
	if len(s.Ops) == 0 {
		return nil, false
	}
	last := s.Ops[len(s.Ops)-1]
	if !last.IsPush() {
		return nil, false
	}
	return last.Data, true
}

func (e *Engine) setUpWitness(version int, program []byte, wit witness.Witness) er.R {
	result, ok := witness.Extract(wit, version, program)
	if !ok {
		return scripterr.New(scripterr.ErrWitnessProgramMismatch, "witness program extraction failed")
	}
	if result.AnyVersionSucceeds {
		if e.flags.has(VerifyDiscourageUpgradableWitnessProgram) {
			return scripterr.New(scripterr.ErrDiscourageUpgradableWitnessProgram, "undefined witness version rejected by policy")
		}
		// Forward-compatible: an undefined witness version is a
		// trivial success and no script is executed.
		e.scripts = nil
		e.dstack.PushBool(true)
		return nil
	}
	e.witnessProgram = &witnessInfo{version: version, program: program}
	for _, item := range result.InitialStack {
		e.dstack.PushByteArray(item)
	}
	e.scripts = append(e.scripts, result.Script)
	return nil
}

func (e *Engine) isWitnessVersionActive(version int) bool {
	return e.witnessProgram != nil && e.witnessProgram.version == version
}

// subScript returns the current script's operations from the most recent
// OP_CODESEPARATOR onward.
func (e *Engine) subScript() script.Script {
	cur := e.scripts[e.scriptIdx]
	if e.lastCodeSep == 0 {
		return cur
	}
	return script.FromOperations(cur.Ops[e.lastCodeSep:])
}

// Execute runs every script in sequence over the shared stacks and reports
// the final verdict per the post-evaluation success rule.
func (e *Engine) Execute() (bool, er.R) {
	for e.scriptIdx = 0; e.scriptIdx < len(e.scripts); e.scriptIdx++ {
		cur := e.scripts[e.scriptIdx]
		if !cur.ValidParse {
			return false, scripterr.New(scripterr.ErrMalformedPush, "script failed to parse cleanly")
		}
		e.lastCodeSep = 0
		e.numOps = 0
		e.condStack = e.condStack[:0]

		if e.scriptIdx == 1 {
			// Between the signature script and the output script the
			// stack contents carry over; capture a snapshot so a P2SH
			// redeem script (or P2SH-wrapped witness program) can run
			// against the stack as the signature script left it.
			e.savedFirstStack = append([][]byte{}, e.dstack.data...)
		}

		for e.opIdx = 0; e.opIdx < len(cur.Ops); e.opIdx++ {
			op := cur.Ops[e.opIdx]
			if err := e.step(op); err != nil {
				return false, err
			}
		}

		if len(e.condStack) != 0 {
			return false, scripterr.New(scripterr.ErrUnbalancedConditional, "unclosed conditional at end of script")
		}

		if e.scriptIdx == 1 && (len(e.scripts) > 2 || e.p2shWitness != nil) {
			// P2SH: the hash check in the output script must pass, and the
			// redeem script (or witness program) continues against the
			// stack as it stood right after the signature script ran, not
			// the post-hash-check stack.
			if e.dstack.Depth() < 1 {
				return false, scripterr.New(scripterr.ErrEmptyStack, "P2SH hash check left empty stack")
			}
			top, err := e.dstack.PeekByteArray(0)
			if err != nil {
				return false, err
			}
			if !asBool(top) {
				return false, scripterr.New(scripterr.ErrEvalFalse, "P2SH hash check failed")
			}
			if len(e.savedFirstStack) == 0 {
				return false, scripterr.New(scripterr.ErrEmptyStack, "signature script supplied no redeem script")
			}
			e.dstack.data = append([][]byte{}, e.savedFirstStack[:len(e.savedFirstStack)-1]...)

			if e.p2shWitness != nil {
				if err := e.setUpWitness(e.p2shWitnessVersion, e.p2shWitnessProgram, *e.p2shWitness); err != nil {
					return false, err
				}
			}
		}
	}

	if e.witnessProgram != nil && e.isWitnessVersionActive(0) {
		if e.dstack.Depth() != 1 {
			return false, scripterr.New(scripterr.ErrCleanStack, "witness program left more than one stack element")
		}
	} else if e.flags.has(VerifyCleanStack) && len(e.scripts) > 2 && e.dstack.Depth() != 1 {
		return false, scripterr.New(scripterr.ErrCleanStack, "stack not clean after P2SH execution")
	}

	if e.dstack.Depth() < 1 {
		return false, scripterr.New(scripterr.ErrEmptyStack, "stack empty at end of execution")
	}
	top, err := e.dstack.PeekByteArray(0)
	if err != nil {
		return false, err
	}
	return asBool(top), nil
}

// step evaluates a single operation against the current engine state,
// enforcing the size/op-count/conditional-scope gating rules ahead of
// dispatch.
func (e *Engine) step(op script.Operation) er.R {
	if op.Underflow {
		return scripterr.New(scripterr.ErrMalformedPush, "truncated push operation")
	}
	if len(op.Data) > 520 {
		return scripterr.New(scripterr.ErrElementTooBig, "push data exceeds max_push_data_size")
	}
	if opcode.IsInvalid(op.Opcode) {
		return scripterr.New(scripterr.ErrDisabledOpcode, "disabled opcode")
	}

	executing := e.allEnclosingTrue()

	if !op.IsPush() || op.Opcode > opcode.OP_16 {
		if op.Opcode > opcode.OP_16 {
			e.numOps++
			if e.numOps > 201 {
				return scripterr.New(scripterr.ErrTooManyOperations, "exceeded max_ops_per_script")
			}
		}
	}

	if !executing && !opcode.IsConditional(op.Opcode) {
		return nil
	}

	if e.flags.has(VerifyMinimalData) && op.IsPush() && !op.IsMinimalPush() {
		return scripterr.New(scripterr.ErrMinimalData, "non-minimal push data")
	}

	if err := e.dispatch(op); err != nil {
		return err
	}

	if e.dstack.Depth()+e.astack.Depth() > maxStackSize {
		return scripterr.New(scripterr.ErrStackOverflow, "combined stack size exceeds max_stack_size")
	}

	return nil
}

// maxStackSize is the combined limit on the primary and alternate stacks,
// checked after every opcode dispatch.
const maxStackSize = 1000

func (e *Engine) allEnclosingTrue() bool {
	for _, v := range e.condStack {
		if v != condTrue {
			return false
		}
	}
	return true
}

func (e *Engine) pushConditional(v int) { e.condStack = append(e.condStack, v) }

func (e *Engine) popConditional() er.R {
	if len(e.condStack) == 0 {
		return scripterr.New(scripterr.ErrUnbalancedConditional, "conditional stack empty")
	}
	e.condStack = e.condStack[:len(e.condStack)-1]
	return nil
}

func (e *Engine) flipConditional() er.R {
	if len(e.condStack) == 0 {
		return scripterr.New(scripterr.ErrUnbalancedConditional, "conditional stack empty")
	}
	idx := len(e.condStack) - 1
	switch e.condStack[idx] {
	case condTrue:
		e.condStack[idx] = condFalse
	case condFalse:
		e.condStack[idx] = condTrue
	case condSkip:
		// stays skipped: an outer branch that is not executing leaves
		// OP_ELSE as a no-op on the conditional value itself.
	}
	return nil
}

func removeOpcodeByData(ops []script.Operation, data []byte) []script.Operation {
	out := make([]script.Operation, 0, len(ops))
	for _, op := range ops {
		if !op.IsPush() || !bytes.Contains(op.Data, data) {
			out = append(out, op)
		}
	}
	return out
}

func inputMetadataOutpoint(tx transaction.Transaction, idx int) txo.Outpoint {
	return tx.Inputs[idx].PreviousOutpoint
}
