package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/copernet/kernel/model/outpoint"
	"github.com/copernet/kernel/model/script"
	"github.com/copernet/kernel/model/tx"
	"github.com/copernet/kernel/model/txin"
	"github.com/copernet/kernel/model/txout"
	"github.com/copernet/kernel/util"
)

func poolTx(prevByte byte, prevIndex uint32) *tx.Tx {
	transaction := tx.NewTx(0, 1)
	var prev util.Hash
	prev[0] = prevByte
	transaction.AddTxIn(txin.NewTxIn(outpoint.NewOutPoint(prev, prevIndex), script.NewEmptyScript(), 0))
	transaction.AddTxOut(txout.NewTxOut(1, script.NewEmptyScript()))
	return transaction
}

func TestPoolSnapshotOrder(t *testing.T) {
	pool := NewPool()
	first := poolTx(1, 0)
	second := poolTx(2, 0)
	third := poolTx(3, 0)
	pool.Add(NewTxEntry(first))
	pool.Add(NewTxEntry(second))
	pool.Add(NewTxEntry(third))

	assert.Equal(t, 3, pool.Size())
	snapshot := pool.Snapshot()
	assert.Len(t, snapshot, 3)
	assert.Equal(t, first.GetHash(), snapshot[0].TxHash)
	assert.Equal(t, second.GetHash(), snapshot[1].TxHash)
	assert.Equal(t, third.GetHash(), snapshot[2].TxHash)
}

func TestSnapshotFind(t *testing.T) {
	pool := NewPool()
	wanted := poolTx(1, 0)
	pool.Add(NewTxEntry(wanted))
	snapshot := pool.Snapshot()

	hash := wanted.GetHash()
	entry := snapshot.Find(&hash)
	assert.NotNil(t, entry)
	assert.Equal(t, wanted, entry.Tx)

	missing := poolTx(9, 0).GetHash()
	assert.Nil(t, snapshot.Find(&missing))
}

func TestSnapshotIsSpent(t *testing.T) {
	pool := NewPool()
	pool.Add(NewTxEntry(poolTx(1, 0)))
	snapshot := pool.Snapshot()

	var prev util.Hash
	prev[0] = 1
	assert.True(t, snapshot.IsSpent(outpoint.NewOutPoint(prev, 0)))
	assert.False(t, snapshot.IsSpent(outpoint.NewOutPoint(prev, 1)))

	var other util.Hash
	other[0] = 2
	assert.False(t, snapshot.IsSpent(outpoint.NewOutPoint(other, 0)))
}

func TestNewTxEntryFromValidation(t *testing.T) {
	parentA := poolTx(1, 0)
	parentB := poolTx(2, 0)

	child := tx.NewTx(0, 1)
	child.AddTxIn(txin.NewTxIn(outpoint.NewOutPoint(parentA.GetHash(), 0), script.NewEmptyScript(), 0))
	child.AddTxIn(txin.NewTxIn(outpoint.NewOutPoint(parentB.GetHash(), 0), script.NewEmptyScript(), 0))
	child.AddTxOut(txout.NewTxOut(1, script.NewEmptyScript()))

	entry := NewTxEntryFromValidation(child, []int{1})
	assert.Equal(t, []util.Hash{parentB.GetHash()}, entry.DependsOn)

	bare := NewTxEntryFromValidation(child, nil)
	assert.Empty(t, bare.DependsOn)
}

func TestSnapshotStableAcrossAdds(t *testing.T) {
	pool := NewPool()
	pool.Add(NewTxEntry(poolTx(1, 0)))
	snapshot := pool.Snapshot()
	pool.Add(NewTxEntry(poolTx(2, 0)))

	assert.Len(t, snapshot, 1)
	assert.Len(t, pool.Snapshot(), 2)
}
