package tx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/copernet/kernel/errcode"
	"github.com/copernet/kernel/model/consensus"
	"github.com/copernet/kernel/model/opcodes"
	"github.com/copernet/kernel/model/outpoint"
	"github.com/copernet/kernel/model/script"
	"github.com/copernet/kernel/model/txin"
	"github.com/copernet/kernel/model/txout"
	"github.com/copernet/kernel/util"
	"github.com/copernet/kernel/util/amount"
)

func simpleOutPoint(b byte, index uint32) *outpoint.OutPoint {
	var h util.Hash
	h[0] = b
	return outpoint.NewOutPoint(h, index)
}

func newCoinbaseTx(scriptSize int, value amount.Amount) *Tx {
	transaction := NewTx(0, 1)
	sig := script.NewScriptRaw(make([]byte, scriptSize))
	transaction.AddTxIn(txin.NewTxIn(outpoint.NewNullOutPoint(), sig, txin.SequenceFinal))
	transaction.AddTxOut(txout.NewTxOut(value, script.NewScriptRaw([]byte{opcodes.OP_CHECKSIG})))
	return transaction
}

func newSpendTx(value amount.Amount) *Tx {
	transaction := NewTx(0, 1)
	transaction.AddTxIn(txin.NewTxIn(simpleOutPoint(0x01, 0), script.NewEmptyScript(), txin.SequenceFinal))
	transaction.AddTxOut(txout.NewTxOut(value, script.NewEmptyScript()))
	return transaction
}

func TestIsCoinBase(t *testing.T) {
	assert.True(t, newCoinbaseTx(10, 50*amount.COIN).IsCoinBase())
	assert.False(t, newSpendTx(1).IsCoinBase())

	// two inputs, one of them null, is not a coinbase
	transaction := newSpendTx(1)
	transaction.AddTxIn(txin.NewTxIn(outpoint.NewNullOutPoint(), nil, txin.SequenceFinal))
	assert.False(t, transaction.IsCoinBase())
}

func TestCheckTransactionEmpty(t *testing.T) {
	empty := NewTx(0, 1)
	err := empty.CheckTransaction()
	assert.True(t, errcode.IsErrorCode(err, errcode.TxErrEmpty))

	noOuts := NewTx(0, 1)
	noOuts.AddTxIn(txin.NewTxIn(simpleOutPoint(0x01, 0), nil, 0))
	assert.True(t, errcode.IsErrorCode(noOuts.CheckTransaction(), errcode.TxErrEmpty))

	noIns := NewTx(0, 1)
	noIns.AddTxOut(txout.NewTxOut(1, nil))
	assert.True(t, errcode.IsErrorCode(noIns.CheckTransaction(), errcode.TxErrEmpty))
}

func TestCheckTransactionValueOverflow(t *testing.T) {
	over := newSpendTx(amount.MaxMoney + 1)
	assert.True(t, errcode.IsErrorCode(over.CheckTransaction(), errcode.TxErrOutputValueOverflow))

	atCap := newSpendTx(amount.MaxMoney)
	assert.NoError(t, atCap.CheckTransaction())

	// the running sum trips even when each output is in range
	summed := newSpendTx(amount.MaxMoney)
	summed.AddTxOut(txout.NewTxOut(1, nil))
	assert.True(t, errcode.IsErrorCode(summed.CheckTransaction(), errcode.TxErrOutputValueOverflow))

	negative := newSpendTx(-1)
	assert.True(t, errcode.IsErrorCode(negative.CheckTransaction(), errcode.TxErrOutputValueOverflow))
}

func TestCheckTransactionCoinbaseScriptSize(t *testing.T) {
	tests := []struct {
		size int
		ok   bool
	}{
		{1, false},
		{consensus.MinCoinbaseScriptSize, true},
		{consensus.MaxCoinbaseScriptSize, true},
		{101, false},
	}
	for _, test := range tests {
		err := newCoinbaseTx(test.size, 50*amount.COIN).CheckTransaction()
		if test.ok {
			assert.NoError(t, err, "size %d", test.size)
		} else {
			assert.True(t, errcode.IsErrorCode(err, errcode.TxErrInvalidCoinbaseScriptSize),
				"size %d", test.size)
		}
	}
}

func TestCheckTransactionNullPrevOut(t *testing.T) {
	transaction := newSpendTx(1)
	transaction.AddTxIn(txin.NewTxIn(outpoint.NewNullOutPoint(), nil, 0))
	err := transaction.CheckTransaction()
	assert.True(t, errcode.IsErrorCode(err, errcode.TxErrPreviousOutputNull))
}

func TestIsFinal(t *testing.T) {
	height := int32(100000)
	blockTime := int64(1355843200)

	free := newSpendTx(1)
	assert.True(t, free.IsFinal(height, blockTime))

	byHeight := NewTx(uint32(height), 1)
	byHeight.AddTxIn(txin.NewTxIn(simpleOutPoint(0x01, 0), nil, 0))
	byHeight.AddTxOut(txout.NewTxOut(1, nil))
	// lock_time == height is not yet final
	assert.False(t, byHeight.IsFinal(height, blockTime))
	assert.True(t, byHeight.IsFinal(height+1, blockTime))

	// at the threshold the lock switches from height to time
	atThreshold := NewTx(consensus.LockTimeThreshold, 1)
	atThreshold.AddTxIn(txin.NewTxIn(simpleOutPoint(0x01, 0), nil, 0))
	atThreshold.AddTxOut(txout.NewTxOut(1, nil))
	assert.False(t, atThreshold.IsFinal(height, int64(consensus.LockTimeThreshold)))
	assert.True(t, atThreshold.IsFinal(height, int64(consensus.LockTimeThreshold)+1))

	belowThreshold := NewTx(consensus.LockTimeThreshold-1, 1)
	belowThreshold.AddTxIn(txin.NewTxIn(simpleOutPoint(0x01, 0), nil, 0))
	belowThreshold.AddTxOut(txout.NewTxOut(1, nil))
	// compared against height, which can never reach it here
	assert.False(t, belowThreshold.IsFinal(height, blockTime))

	// final sequences override the lock time
	sequenced := NewTx(uint32(height), 1)
	sequenced.AddTxIn(txin.NewTxIn(simpleOutPoint(0x01, 0), nil, txin.SequenceFinal))
	sequenced.AddTxOut(txout.NewTxOut(1, nil))
	assert.True(t, sequenced.IsFinal(height, blockTime))
}

func TestGetValueOut(t *testing.T) {
	transaction := newSpendTx(7)
	transaction.AddTxOut(txout.NewTxOut(5, nil))
	assert.Equal(t, amount.Amount(12), transaction.GetValueOut())
}

func TestGetSigOpCountWithoutP2SH(t *testing.T) {
	transaction := NewTx(0, 1)
	sig := script.NewScriptRaw([]byte{opcodes.OP_2, opcodes.OP_CHECKMULTISIG})
	transaction.AddTxIn(txin.NewTxIn(simpleOutPoint(0x01, 0), sig, 0))
	transaction.AddTxOut(txout.NewTxOut(1, script.NewScriptRaw([]byte{opcodes.OP_CHECKSIG})))

	// the legacy count ignores the announced key count: 20 + 1
	assert.Equal(t, 21, transaction.GetSigOpCountWithoutP2SH())
}

func TestGetHashStable(t *testing.T) {
	a := newSpendTx(1)
	b := newSpendTx(1)
	assert.Equal(t, a.GetHash(), b.GetHash())

	c := newSpendTx(2)
	assert.NotEqual(t, a.GetHash(), c.GetHash())

	// hash tracks mutation
	before := a.GetHash()
	a.AddTxOut(txout.NewTxOut(9, nil))
	assert.NotEqual(t, before, a.GetHash())
}

func TestSerializeSize(t *testing.T) {
	transaction := newSpendTx(1)
	// version 4 + count 1 + input (36 + 1 + 4) + count 1 + output (8 + 1) + locktime 4
	assert.Equal(t, uint32(60), transaction.SerializeSize())
}

func TestAnyInputSpends(t *testing.T) {
	transaction := newSpendTx(1)
	assert.True(t, transaction.AnyInputSpends(simpleOutPoint(0x01, 0)))
	assert.False(t, transaction.AnyInputSpends(simpleOutPoint(0x01, 1)))
	assert.False(t, transaction.AnyInputSpends(simpleOutPoint(0x02, 0)))
}
