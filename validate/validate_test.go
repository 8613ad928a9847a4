// Copyright (c) 2026 The libbitcoin-go developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/libbitcoin-go/core/script"
	"github.com/libbitcoin-go/core/transaction"
	"github.com/libbitcoin-go/core/txo"
	"github.com/libbitcoin-go/core/validate/rules"
)

func trivialScript() script.Script { return script.Parse([]byte{0x51}) } // OP_1

func simpleOutput(value int64) txo.Output {
	return txo.Output{Value: value, Script: trivialScript()}
}

func spendingInput(index uint32, sequence uint32) txo.Input {
	return txo.Input{
		PreviousOutpoint: txo.Outpoint{Index: index},
		Script:           script.Script{},
		Sequence:         sequence,
	}
}

func coinbaseTx() transaction.Transaction {
	return transaction.Transaction{
		Version: 1,
		Inputs: []txo.Input{{
			PreviousOutpoint: txo.Outpoint{Index: txo.NullIndex},
			Script:           script.Parse([]byte{0x02, 0x01, 0x02}),
			Sequence:         0xffffffff,
		}},
		Outputs: []txo.Output{simpleOutput(5000)},
	}
}

func TestCheckEmptyTransaction(t *testing.T) {
	err := Check(transaction.Transaction{})
	require.True(t, rules.ErrEmptyTransaction.Is(err))
}

func TestCheckCoinbaseScriptSizeTooSmall(t *testing.T) {
	tx := coinbaseTx()
	tx.Inputs[0].Script = script.Parse([]byte{0x01})
	err := Check(tx)
	require.True(t, rules.ErrInvalidCoinbaseScriptSize.Is(err))
}

func TestCheckCoinbaseOK(t *testing.T) {
	require.NoError(t, errOf(Check(coinbaseTx())))
}

func TestCheckNullInputNonCoinbase(t *testing.T) {
	tx := transaction.Transaction{
		Version: 1,
		Inputs: []txo.Input{
			spendingInput(0, 0xffffffff),
			{PreviousOutpoint: txo.Outpoint{Index: txo.NullIndex}, Sequence: 0xffffffff},
		},
		Outputs: []txo.Output{simpleOutput(1000)},
	}
	err := Check(tx)
	require.True(t, rules.ErrPreviousOutputNull.Is(err))
}

func TestAcceptNonFinalLocktime(t *testing.T) {
	tx := transaction.Transaction{
		Version:  1,
		Inputs:   []txo.Input{spendingInput(0, 0)},
		Outputs:  []txo.Output{simpleOutput(1000)},
		LockTime: 1000,
	}
	metadata := []txo.Metadata{{PreviousOutput: simpleOutput(2000), Confirmed: true, ConfirmationHeight: 1}}
	ctx := Context{Height: 500}
	require.True(t, rules.ErrTransactionNonFinal.Is(Accept(tx, metadata, ctx)))

	ctx.Height = 2000
	require.NoError(t, errOf(Accept(tx, metadata, ctx)))
}

func TestAcceptMissingPrevouts(t *testing.T) {
	tx := transaction.Transaction{
		Version: 1,
		Inputs:  []txo.Input{spendingInput(0, 0xffffffff)},
		Outputs: []txo.Output{simpleOutput(1000)},
	}
	require.True(t, rules.ErrMissingPreviousOutput.Is(Accept(tx, nil, Context{})))

	metadata := []txo.Metadata{{Missing: true}}
	require.True(t, rules.ErrMissingPreviousOutput.Is(Accept(tx, metadata, Context{})))
}

func TestAcceptOverspend(t *testing.T) {
	tx := transaction.Transaction{
		Version: 1,
		Inputs:  []txo.Input{spendingInput(0, 0xffffffff)},
		Outputs: []txo.Output{simpleOutput(5000)},
	}
	metadata := []txo.Metadata{{PreviousOutput: simpleOutput(1000), Confirmed: true, ConfirmationHeight: 1}}
	require.True(t, rules.ErrSpendExceedsValue.Is(Accept(tx, metadata, Context{Height: 100})))
}

func TestAcceptImmatureCoinbaseSpend(t *testing.T) {
	tx := transaction.Transaction{
		Version: 1,
		Inputs:  []txo.Input{spendingInput(0, 0xffffffff)},
		Outputs: []txo.Output{simpleOutput(500)},
	}
	metadata := []txo.Metadata{{
		PreviousOutput:     simpleOutput(1000),
		CoinbaseProduced:   true,
		ConfirmationHeight: 100,
		Confirmed:          true,
	}}
	require.True(t, rules.ErrCoinbaseMaturity.Is(Accept(tx, metadata, Context{Height: 150})))
	require.NoError(t, errOf(Accept(tx, metadata, Context{Height: 200})))
}

func TestAcceptRelativeLocktime(t *testing.T) {
	tx := transaction.Transaction{
		Version: 2,
		Inputs:  []txo.Input{spendingInput(0, 10)}, // 10 blocks relative locktime
		Outputs: []txo.Output{simpleOutput(500)},
	}
	metadata := []txo.Metadata{{
		PreviousOutput:     simpleOutput(1000),
		ConfirmationHeight: 100,
		Confirmed:          true,
	}}
	ctx := Context{Height: 105, Forks: BIP68}
	require.True(t, rules.ErrRelativeTimeLocked.Is(Accept(tx, metadata, ctx)))

	ctx.Height = 110
	require.NoError(t, errOf(Accept(tx, metadata, ctx)))
}

func TestAcceptUnconfirmedAndDoubleSpend(t *testing.T) {
	tx := transaction.Transaction{
		Version: 1,
		Inputs:  []txo.Input{spendingInput(0, 0xffffffff)},
		Outputs: []txo.Output{simpleOutput(500)},
	}
	unconfirmed := []txo.Metadata{{PreviousOutput: simpleOutput(1000)}}
	require.True(t, rules.ErrUnconfirmedSpend.Is(Accept(tx, unconfirmed, Context{Height: 100})))

	doubleSpent := []txo.Metadata{{
		PreviousOutput:     simpleOutput(1000),
		Confirmed:          true,
		ConfirmationHeight: 1,
		SpentElsewhere:     true,
	}}
	require.True(t, rules.ErrConfirmedDoubleSpend.Is(Accept(tx, doubleSpent, Context{Height: 100})))
}

func TestConnectRunsScriptMachine(t *testing.T) {
	tx := transaction.Transaction{
		Version: 1,
		Inputs:  []txo.Input{spendingInput(0, 0xffffffff)},
		Outputs: []txo.Output{simpleOutput(500)},
	}
	metadata := []txo.Metadata{{PreviousOutput: simpleOutput(1000)}}
	require.NoError(t, errOf(Connect(tx, metadata, Context{})))
}

func TestConnectFailsOnFalseScript(t *testing.T) {
	tx := transaction.Transaction{
		Version: 1,
		Inputs:  []txo.Input{spendingInput(0, 0xffffffff)},
		Outputs: []txo.Output{simpleOutput(500)},
	}
	metadata := []txo.Metadata{{PreviousOutput: txo.Output{Value: 1000, Script: script.Parse([]byte{0x00})}}} // OP_0
	require.True(t, rules.ErrScriptValidation.Is(Connect(tx, metadata, Context{})))
}

func TestConnectSkipsCoinbase(t *testing.T) {
	require.NoError(t, errOf(Connect(coinbaseTx(), nil, Context{})))
}

func TestGuardRejectsCoinbase(t *testing.T) {
	require.True(t, rules.ErrCoinbaseNotAllowed.Is(Guard(coinbaseTx())))
}

func TestGuardRejectsInternalDoubleSpend(t *testing.T) {
	tx := transaction.Transaction{
		Version: 1,
		Inputs:  []txo.Input{spendingInput(0, 0xffffffff), spendingInput(0, 0xffffffff)},
		Outputs: []txo.Output{simpleOutput(500)},
	}
	require.True(t, rules.ErrInternalDoubleSpend.Is(Guard(tx)))
}

func TestGuardAcceptsOrdinaryTransaction(t *testing.T) {
	tx := transaction.Transaction{
		Version: 1,
		Inputs:  []txo.Input{spendingInput(0, 0xffffffff)},
		Outputs: []txo.Output{simpleOutput(500)},
	}
	require.NoError(t, errOf(Guard(tx)))
}

func TestGuardContextRejectsUnexpectedWitness(t *testing.T) {
	in := spendingInput(0, 0xffffffff)
	in.Witness.Stack = [][]byte{{0x01}}
	tx := transaction.Transaction{
		Version: 1,
		Inputs:  []txo.Input{in},
		Outputs: []txo.Output{simpleOutput(500)},
	}
	metadata := []txo.Metadata{{PreviousOutput: simpleOutput(1000)}}
	require.True(t, rules.ErrUnexpectedWitness.Is(GuardContext(tx, metadata, Context{})))
	require.NoError(t, errOf(GuardContext(tx, metadata, Context{Forks: BIP141})))
}

func TestGuardContextSigopLimit(t *testing.T) {
	tx := transaction.Transaction{
		Version: 1,
		Inputs:  []txo.Input{spendingInput(0, 0xffffffff)},
		Outputs: []txo.Output{simpleOutput(500)},
	}
	metadata := []txo.Metadata{{PreviousOutput: simpleOutput(1000)}}
	require.NoError(t, errOf(GuardContext(tx, metadata, Context{})))
}

// errOf adapts an er.R result to the standard error interface so it can be
// passed to require.NoError.
func errOf(e interface{ Message() string }) error {
	if e == nil {
		return nil
	}
	return errors.New(e.Message())
}
