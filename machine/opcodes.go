// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package machine

import (
	"bytes"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/libbitcoin-go/core/hash"
	"github.com/libbitcoin-go/core/internal/er"
	"github.com/libbitcoin-go/core/number"
	"github.com/libbitcoin-go/core/opcode"
	"github.com/libbitcoin-go/core/script"
	"github.com/libbitcoin-go/core/script/scripterr"
	"github.com/libbitcoin-go/core/sighash"
)

// secp256k1Order is the curve order n; halfOrder is half of it, the bound
// VerifyLowS enforces against a signature's S value to close the
// malleability introduced by the (sig, n-S) complement.
var secp256k1Order, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)
var halfOrder = new(big.Int).Rsh(secp256k1Order, 1)

type handler func(e *Engine, op script.Operation) er.R

var dispatch = buildDispatch()

func (e *Engine) dispatch(op script.Operation) er.R {
	if op.IsPush() {
		return opPush(e, op)
	}
	if h, ok := dispatch[op.Opcode]; ok {
		return h(e, op)
	}
	return opNop(e, op)
}

func buildDispatch() map[byte]handler {
	m := map[byte]handler{
		opcode.OP_NOP:                 opNop,
		opcode.OP_IF:                  opIf,
		opcode.OP_NOTIF:               opNotIf,
		opcode.OP_ELSE:                opElse,
		opcode.OP_ENDIF:               opEndif,
		opcode.OP_VERIFY:              opVerify,
		opcode.OP_RETURN:              opReturn,
		opcode.OP_TOALTSTACK:          opToAltStack,
		opcode.OP_FROMALTSTACK:        opFromAltStack,
		opcode.OP_2DROP:               opDropN(2),
		opcode.OP_2DUP:                opDupN(2),
		opcode.OP_3DUP:                opDupN(3),
		opcode.OP_2OVER:               opOverN(2),
		opcode.OP_2ROT:                opRotN(2),
		opcode.OP_2SWAP:               opSwapN(2),
		opcode.OP_IFDUP:               opIfDup,
		opcode.OP_DEPTH:               opDepth,
		opcode.OP_DROP:                opDropN(1),
		opcode.OP_DUP:                 opDupN(1),
		opcode.OP_NIP:                 opNip,
		opcode.OP_OVER:                opOverN(1),
		opcode.OP_PICK:                opPick,
		opcode.OP_ROLL:                opRoll,
		opcode.OP_ROT:                 opRotN(1),
		opcode.OP_SWAP:                opSwapN(1),
		opcode.OP_TUCK:                opTuck,
		opcode.OP_SIZE:                opSize,
		opcode.OP_EQUAL:               opEqual,
		opcode.OP_EQUALVERIFY:         opEqualVerify,
		opcode.OP_1ADD:                unaryNum(func(v int64) int64 { return v + 1 }),
		opcode.OP_1SUB:                unaryNum(func(v int64) int64 { return v - 1 }),
		opcode.OP_NEGATE:              unaryNum(func(v int64) int64 { return -v }),
		opcode.OP_ABS:                 unaryNum(opAbs),
		opcode.OP_NOT:                 unaryBool(func(v int64) bool { return v == 0 }),
		opcode.OP_0NOTEQUAL:           unaryBool(func(v int64) bool { return v != 0 }),
		opcode.OP_ADD:                 binaryNum(func(a, b int64) int64 { return a + b }),
		opcode.OP_SUB:                 binaryNum(func(a, b int64) int64 { return a - b }),
		opcode.OP_BOOLAND:             binaryBool(func(a, b int64) bool { return a != 0 && b != 0 }),
		opcode.OP_BOOLOR:              binaryBool(func(a, b int64) bool { return a != 0 || b != 0 }),
		opcode.OP_NUMEQUAL:            binaryBool(func(a, b int64) bool { return a == b }),
		opcode.OP_NUMEQUALVERIFY:      opNumEqualVerify,
		opcode.OP_NUMNOTEQUAL:         binaryBool(func(a, b int64) bool { return a != b }),
		opcode.OP_LESSTHAN:            binaryBool(func(a, b int64) bool { return a < b }),
		opcode.OP_GREATERTHAN:         binaryBool(func(a, b int64) bool { return a > b }),
		opcode.OP_LESSTHANOREQUAL:     binaryBool(func(a, b int64) bool { return a <= b }),
		opcode.OP_GREATERTHANOREQUAL:  binaryBool(func(a, b int64) bool { return a >= b }),
		opcode.OP_MIN:                 binaryNum(minI64),
		opcode.OP_MAX:                 binaryNum(maxI64),
		opcode.OP_WITHIN:              opWithin,
		opcode.OP_RIPEMD160:           opHash1(func(b []byte) []byte { s := hash.Sum160(b); return s[:] }),
		opcode.OP_SHA1:                opHash1(func(b []byte) []byte { s := hash.Sum1(b); return s[:] }),
		opcode.OP_SHA256:              opHash1(func(b []byte) []byte { s := hash.Sum256(b); return s[:] }),
		opcode.OP_HASH160:             opHash1(func(b []byte) []byte { s := hash.Hash160(b); return s[:] }),
		opcode.OP_HASH256:             opHash1(func(b []byte) []byte { s := hash.DoubleSha256(b); return s[:] }),
		opcode.OP_CODESEPARATOR:       opCodeSeparator,
		opcode.OP_CHECKSIG:            opCheckSig,
		opcode.OP_CHECKSIGVERIFY:      opCheckSigVerify,
		opcode.OP_CHECKMULTISIG:       opCheckMultiSig,
		opcode.OP_CHECKMULTISIGVERIFY: opCheckMultiSigVerify,
		opcode.OP_CHECKLOCKTIMEVERIFY: opCheckLockTimeVerify,
		opcode.OP_CHECKSEQUENCEVERIFY: opCheckSequenceVerify,
	}
	for v := byte(opcode.OP_NOP1); v <= byte(opcode.OP_NOP10); v++ {
		if _, exists := m[v]; !exists {
			m[v] = opNop
		}
	}
	for v := 0; v <= 255; v++ {
		b := byte(v)
		if opcode.IsReserved(b) {
			if _, exists := m[b]; !exists {
				m[b] = opReserved
			}
		}
	}
	return m
}

func opPush(e *Engine, op script.Operation) er.R {
	if op.Opcode == opcode.OP_0 {
		e.dstack.PushByteArray(nil)
		return nil
	}
	if n, ok := op.SmallInt(); ok {
		e.dstack.PushInt(int64(n))
		return nil
	}
	e.dstack.PushByteArray(op.Data)
	return nil
}

func opNop(e *Engine, op script.Operation) er.R {
	if op.Opcode >= opcode.OP_NOP1 && op.Opcode <= opcode.OP_NOP10 && e.flags.has(VerifyDiscourageUpgradableNops) {
		return scripterr.New(scripterr.ErrDiscourageUpgradableNOPs, "upgradable nop encountered with discouragement flag set")
	}
	return nil
}

func opReserved(e *Engine, op script.Operation) er.R {
	return scripterr.New(scripterr.ErrReservedOpcode, "reserved opcode executed")
}

func popIfBool(e *Engine) (bool, er.R) {
	if e.isWitnessVersionActive(0) && e.flags.has(VerifyMinimalIf) {
		b, err := e.dstack.PopByteArray()
		if err != nil {
			return false, err
		}
		if len(b) > 1 {
			return false, scripterr.New(scripterr.ErrMinimalIf, "non-minimal if operand")
		}
		if len(b) == 1 && b[0] != 1 {
			return false, scripterr.New(scripterr.ErrMinimalIf, "non-minimal if operand")
		}
		return len(b) == 1, nil
	}
	return e.dstack.PopBool()
}

func opIf(e *Engine, op script.Operation) er.R {
	cond := condFalse
	if e.allEnclosingTrue() {
		v, err := popIfBool(e)
		if err != nil {
			return err
		}
		if v {
			cond = condTrue
		}
	} else {
		cond = condSkip
	}
	e.pushConditional(cond)
	return nil
}

func opNotIf(e *Engine, op script.Operation) er.R {
	cond := condFalse
	if e.allEnclosingTrue() {
		v, err := popIfBool(e)
		if err != nil {
			return err
		}
		if !v {
			cond = condTrue
		}
	} else {
		cond = condSkip
	}
	e.pushConditional(cond)
	return nil
}

func opElse(e *Engine, op script.Operation) er.R {
	return e.flipConditional()
}

func opEndif(e *Engine, op script.Operation) er.R {
	return e.popConditional()
}

func opVerify(e *Engine, op script.Operation) er.R {
	return abstractVerify(e, scripterr.ErrVerify)
}

func abstractVerify(e *Engine, code *er.ErrorCode) er.R {
	v, err := e.dstack.PopBool()
	if err != nil {
		return err
	}
	if !v {
		return scripterr.New(code, "verify failed")
	}
	return nil
}

func opReturn(e *Engine, op script.Operation) er.R {
	return scripterr.New(scripterr.ErrEarlyReturn, "encountered OP_RETURN")
}

func opToAltStack(e *Engine, op script.Operation) er.R {
	v, err := e.dstack.PopByteArray()
	if err != nil {
		return err
	}
	e.astack.PushByteArray(v)
	return nil
}

func opFromAltStack(e *Engine, op script.Operation) er.R {
	v, err := e.astack.PopByteArray()
	if err != nil {
		return err
	}
	e.dstack.PushByteArray(v)
	return nil
}

func opDropN(n int) handler {
	return func(e *Engine, op script.Operation) er.R { return e.dstack.DropN(n) }
}
func opDupN(n int) handler {
	return func(e *Engine, op script.Operation) er.R { return e.dstack.DupN(n) }
}
func opOverN(n int) handler {
	return func(e *Engine, op script.Operation) er.R { return e.dstack.OverN(n) }
}
func opRotN(n int) handler {
	return func(e *Engine, op script.Operation) er.R { return e.dstack.RotN(n) }
}
func opSwapN(n int) handler {
	return func(e *Engine, op script.Operation) er.R { return e.dstack.SwapN(n) }
}

func opIfDup(e *Engine, op script.Operation) er.R {
	v, err := e.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if asBool(v) {
		e.dstack.PushByteArray(v)
	}
	return nil
}

func opDepth(e *Engine, op script.Operation) er.R {
	e.dstack.PushInt(int64(e.dstack.Depth()))
	return nil
}

func opNip(e *Engine, op script.Operation) er.R { return e.dstack.Nip() }

func opPick(e *Engine, op script.Operation) er.R {
	n, err := e.dstack.PopInt()
	if err != nil {
		return err
	}
	return e.dstack.PickN(int(n))
}

func opRoll(e *Engine, op script.Operation) er.R {
	n, err := e.dstack.PopInt()
	if err != nil {
		return err
	}
	return e.dstack.RollN(int(n))
}

func opTuck(e *Engine, op script.Operation) er.R { return e.dstack.Tuck() }

func opSize(e *Engine, op script.Operation) er.R {
	v, err := e.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	e.dstack.PushInt(int64(len(v)))
	return nil
}

func opEqual(e *Engine, op script.Operation) er.R {
	a, err := e.dstack.PopByteArray()
	if err != nil {
		return err
	}
	b, err := e.dstack.PopByteArray()
	if err != nil {
		return err
	}
	e.dstack.PushBool(bytes.Equal(a, b))
	return nil
}

func opEqualVerify(e *Engine, op script.Operation) er.R {
	if err := opEqual(e, op); err != nil {
		return err
	}
	return abstractVerify(e, scripterr.ErrEqualVerify)
}

func unaryNum(f func(int64) int64) handler {
	return func(e *Engine, op script.Operation) er.R {
		v, err := e.dstack.PopInt()
		if err != nil {
			return err
		}
		e.dstack.PushInt(f(v))
		return nil
	}
}

func unaryBool(f func(int64) bool) handler {
	return func(e *Engine, op script.Operation) er.R {
		v, err := e.dstack.PopInt()
		if err != nil {
			return err
		}
		e.dstack.PushBool(f(v))
		return nil
	}
}

func binaryNum(f func(a, b int64) int64) handler {
	return func(e *Engine, op script.Operation) er.R {
		b, err := e.dstack.PopInt()
		if err != nil {
			return err
		}
		a, err := e.dstack.PopInt()
		if err != nil {
			return err
		}
		e.dstack.PushInt(f(a, b))
		return nil
	}
}

func binaryBool(f func(a, b int64) bool) handler {
	return func(e *Engine, op script.Operation) er.R {
		b, err := e.dstack.PopInt()
		if err != nil {
			return err
		}
		a, err := e.dstack.PopInt()
		if err != nil {
			return err
		}
		e.dstack.PushBool(f(a, b))
		return nil
	}
}

func opNumEqualVerify(e *Engine, op script.Operation) er.R {
	if err := binaryBool(func(a, b int64) bool { return a == b })(e, op); err != nil {
		return err
	}
	return abstractVerify(e, scripterr.ErrNumEqualVerify)
}

func opAbs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func opWithin(e *Engine, op script.Operation) er.R {
	max, err := e.dstack.PopInt()
	if err != nil {
		return err
	}
	min, err := e.dstack.PopInt()
	if err != nil {
		return err
	}
	v, err := e.dstack.PopInt()
	if err != nil {
		return err
	}
	e.dstack.PushBool(v >= min && v < max)
	return nil
}

func opHash1(f func([]byte) []byte) handler {
	return func(e *Engine, op script.Operation) er.R {
		v, err := e.dstack.PopByteArray()
		if err != nil {
			return err
		}
		e.dstack.PushByteArray(f(v))
		return nil
	}
}

func opCodeSeparator(e *Engine, op script.Operation) er.R {
	e.lastCodeSep = e.opIdx + 1
	return nil
}

func opCheckSig(e *Engine, op script.Operation) er.R {
	pkBytes, err := e.dstack.PopByteArray()
	if err != nil {
		return err
	}
	fullSig, err := e.dstack.PopByteArray()
	if err != nil {
		return err
	}

	valid, verr := e.checkSig(fullSig, pkBytes)
	if verr != nil {
		return verr
	}
	e.dstack.PushBool(valid)
	return nil
}

func opCheckSigVerify(e *Engine, op script.Operation) er.R {
	if err := opCheckSig(e, op); err != nil {
		return err
	}
	return abstractVerify(e, scripterr.ErrCheckSigVerify)
}

// checkSig verifies a single (signature, pubkey) pair against the
// appropriate sighash for the current script version, returning false
// (not an error) for any malformed-but-recoverable input so the caller can
// push the boolean result as consensus requires.
func (e *Engine) checkSig(fullSig, pkBytes []byte) (bool, er.R) {
	if len(fullSig) < 1 {
		return false, nil
	}
	hashType := sighash.Type(fullSig[len(fullSig)-1])
	sigBytes := fullSig[:len(fullSig)-1]

	if err := e.checkHashTypeEncoding(hashType); err != nil {
		return false, err
	}
	if err := e.checkSignatureEncoding(sigBytes); err != nil {
		return false, err
	}
	if err := e.checkPubKeyEncoding(pkBytes); err != nil {
		return false, err
	}

	sub := e.subScript()

	var digest [32]byte
	if e.isWitnessVersionActive(0) {
		digest = sighash.SegwitV0(e.sigHashCache, e.tx, sub, e.txIdx, e.inputAmount, hashType)
	} else {
		cleaned := script.FromOperations(removeOpcodeByData(sub.Ops, fullSig))
		digest = sighash.Legacy(e.tx, cleaned, e.txIdx, hashType)
	}

	pubKey, perr := btcec.ParsePubKey(pkBytes)
	if perr != nil {
		return false, nil
	}
	sig, serr := ecdsa.ParseDERSignature(sigBytes)
	if serr != nil {
		return false, nil
	}

	valid := sig.Verify(digest[:], pubKey)
	if !valid && e.flags.has(VerifyNullFail) && len(sigBytes) > 0 {
		return false, scripterr.New(scripterr.ErrNullFail, "signature not empty on failed checksig")
	}
	return valid, nil
}

func (e *Engine) checkHashTypeEncoding(hashType sighash.Type) er.R {
	masked := hashType &^ sighash.AnyOneCanPay
	if masked < sighash.All || masked > sighash.Single {
		return scripterr.New(scripterr.ErrInvalidSigHashType, "invalid hash type")
	}
	return nil
}

func (e *Engine) checkSignatureEncoding(sig []byte) er.R {
	if !e.flags.has(VerifyDERSignatures) && !e.flags.has(VerifyStrictEncoding) && !e.flags.has(VerifyLowS) {
		return nil
	}
	if len(sig) < 8 {
		return scripterr.New(scripterr.ErrSigTooShort, "signature too short")
	}
	if len(sig) > 72 {
		return scripterr.New(scripterr.ErrSigTooLong, "signature too long")
	}
	if sig[0] != 0x30 {
		return scripterr.New(scripterr.ErrSigInvalidSeqID, "signature missing DER sequence marker")
	}
	if int(sig[1]) != len(sig)-2 {
		return scripterr.New(scripterr.ErrSigInvalidDataLen, "signature length mismatch")
	}

	if e.flags.has(VerifyLowS) {
		rLen := int(sig[3])
		if rLen+5 > len(sig) {
			return scripterr.New(scripterr.ErrSigInvalidDataLen, "R value runs past end of signature")
		}
		sLen := int(sig[rLen+5])
		if rLen+sLen+6 != len(sig) {
			return scripterr.New(scripterr.ErrSigInvalidDataLen, "S value length does not match signature")
		}
		sValue := new(big.Int).SetBytes(sig[rLen+6 : rLen+6+sLen])
		if sValue.Cmp(halfOrder) > 0 {
			return scripterr.New(scripterr.ErrSigHighS, "signature S value exceeds half the curve order")
		}
	}
	return nil
}

func (e *Engine) checkPubKeyEncoding(pk []byte) er.R {
	if !e.flags.has(VerifyStrictEncoding) {
		return nil
	}
	if len(pk) == 33 && (pk[0] == 0x02 || pk[0] == 0x03) {
		return nil
	}
	if len(pk) == 65 && pk[0] == 0x04 {
		return nil
	}
	return scripterr.New(scripterr.ErrPubKeyType, "unsupported public key encoding")
}

func opCheckMultiSig(e *Engine, op script.Operation) er.R {
	numKeys, err := e.dstack.PopInt()
	if err != nil {
		return err
	}
	if numKeys < 0 || numKeys > script.MaxPubKeysPerMultiSig {
		return scripterr.New(scripterr.ErrInvalidPubKeyCount, "invalid pubkey count")
	}
	keys := make([][]byte, numKeys)
	for i := range keys {
		keys[numKeys-1-int64(i)], err = e.dstack.PopByteArray()
		if err != nil {
			return err
		}
	}

	numSigs, err := e.dstack.PopInt()
	if err != nil {
		return err
	}
	if numSigs < 0 || numSigs > numKeys {
		return scripterr.New(scripterr.ErrInvalidSignatureCount, "invalid signature count")
	}
	sigs := make([][]byte, numSigs)
	for i := range sigs {
		sigs[numSigs-1-int64(i)], err = e.dstack.PopByteArray()
		if err != nil {
			return err
		}
	}

	dummy, err := e.dstack.PopByteArray()
	if err != nil {
		return err
	}
	if e.flags.has(VerifyNullDummy) && len(dummy) != 0 {
		return scripterr.New(scripterr.ErrSigNullDummy, "multisig dummy element not empty")
	}

	success := true
	sigIdx, keyIdx := 0, 0
	for sigIdx < len(sigs) {
		if keyIdx >= len(keys) {
			success = false
			break
		}
		valid, verr := e.checkSig(sigs[sigIdx], keys[keyIdx])
		if verr != nil {
			return verr
		}
		if valid {
			sigIdx++
		}
		keyIdx++
		if len(sigs)-sigIdx > len(keys)-keyIdx {
			success = false
			break
		}
	}

	if !success && e.flags.has(VerifyNullFail) {
		for _, s := range sigs {
			if len(s) > 0 {
				return scripterr.New(scripterr.ErrNullFail, "signature not empty on failed checkmultisig")
			}
		}
	}

	e.dstack.PushBool(success)
	return nil
}

func opCheckMultiSigVerify(e *Engine, op script.Operation) er.R {
	if err := opCheckMultiSig(e, op); err != nil {
		return err
	}
	return abstractVerify(e, scripterr.ErrCheckMultiSigVerify)
}

const lockTimeThreshold = 500000000

func opCheckLockTimeVerify(e *Engine, op script.Operation) er.R {
	if !e.flags.has(VerifyCheckLockTimeVerify) {
		return opNop(e, op)
	}
	raw, err := e.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	lockTime, nerr := number.ParseScriptNum(raw, e.dstack.verifyMinimalData, 5)
	if nerr != nil {
		return scripterr.New(scripterr.ErrNumberTooBig, "invalid locktime operand")
	}
	if lockTime < 0 {
		return scripterr.New(scripterr.ErrNegativeLockTime, "negative locktime operand")
	}
	if e.tx.Inputs[e.txIdx].Sequence == 0xffffffff {
		return scripterr.New(scripterr.ErrUnsatisfiedLockTime, "input is final, locktime cannot apply")
	}
	txLockTime := int64(e.tx.LockTime)
	if (lockTime < lockTimeThreshold) != (txLockTime < lockTimeThreshold) {
		return scripterr.New(scripterr.ErrUnsatisfiedLockTime, "locktime type mismatch")
	}
	if lockTime > txLockTime {
		return scripterr.New(scripterr.ErrUnsatisfiedLockTime, "locktime requirement not satisfied")
	}
	return nil
}

const (
	sequenceLockTimeDisableFlag = 1 << 31
	sequenceLockTimeTypeFlag    = 1 << 22
	sequenceLockTimeMask        = 0x0000ffff
)

func opCheckSequenceVerify(e *Engine, op script.Operation) er.R {
	if !e.flags.has(VerifyCheckSequenceVerify) {
		return opNop(e, op)
	}
	raw, err := e.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	stackSequence, nerr := number.ParseScriptNum(raw, e.dstack.verifyMinimalData, 5)
	if nerr != nil {
		return scripterr.New(scripterr.ErrNumberTooBig, "invalid sequence operand")
	}
	if stackSequence < 0 {
		return scripterr.New(scripterr.ErrNegativeLockTime, "negative sequence operand")
	}
	if stackSequence&sequenceLockTimeDisableFlag != 0 {
		return nil
	}
	if e.tx.Version < 2 {
		return scripterr.New(scripterr.ErrUnsatisfiedLockTime, "transaction version too low for relative locktime")
	}
	txSequence := int64(e.tx.Inputs[e.txIdx].Sequence)
	if txSequence&sequenceLockTimeDisableFlag != 0 {
		return scripterr.New(scripterr.ErrUnsatisfiedLockTime, "input sequence disables relative locktime")
	}
	if (stackSequence&sequenceLockTimeTypeFlag != 0) != (txSequence&sequenceLockTimeTypeFlag != 0) {
		return scripterr.New(scripterr.ErrUnsatisfiedLockTime, "relative locktime type mismatch")
	}
	if stackSequence&sequenceLockTimeMask > txSequence&sequenceLockTimeMask {
		return scripterr.New(scripterr.ErrUnsatisfiedLockTime, "relative locktime requirement not satisfied")
	}
	return nil
}
