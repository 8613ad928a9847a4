// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package script

import "github.com/libbitcoin-go/core/opcode"

// MaxPubKeysPerMultiSig is the maximum number of keys addressed by a single
// checkmultisig; it is also the non-precise sigop weight assigned to a
// checkmultisig whose preceding push could not be read.
const MaxPubKeysPerMultiSig = 20

// SigOpCount counts signature operations. In precise mode, a
// checkmultisig/verify immediately preceded by a push_positive opcode counts
// that opcode's numeric value instead of the MaxPubKeysPerMultiSig default.
func (s Script) SigOpCount(precise bool) int {
	n := 0
	for i, op := range s.Ops {
		switch op.Opcode {
		case opcode.OP_CHECKSIG, opcode.OP_CHECKSIGVERIFY:
			n++
		case opcode.OP_CHECKMULTISIG, opcode.OP_CHECKMULTISIGVERIFY:
			if precise && i > 0 && opcode.IsRelaxedPush(s.Ops[i-1].Opcode) {
				if v, ok := opcode.AsSmallInt(s.Ops[i-1].Opcode); ok && v > 0 {
					n += v
					continue
				}
			}
			n += MaxPubKeysPerMultiSig
		}
	}
	return n
}

// P2SHSigOpCount returns the precise sigop count for a P2SH spend: the
// redeem script is the final push of sigScript (itself required to be
// push-only), parsed and counted precisely.
func P2SHSigOpCount(sigScript Script) int {
	if !sigScript.IsPushOnly() || len(sigScript.Ops) == 0 {
		return 0
	}
	redeem := sigScript.Ops[len(sigScript.Ops)-1].Data
	if len(redeem) == 0 {
		return 0
	}
	return Parse(redeem).SigOpCount(true)
}
