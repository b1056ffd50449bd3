package block

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

func newTestTx() *tx.Tx {
	transaction := tx.NewTx(0, 1)
	var prev util.Hash
	prev[0] = 1
	transaction.AddTxIn(txin.NewTxIn(outpoint.NewOutPoint(prev, 0), script.NewEmptyScript(), 0))
	transaction.AddTxOut(txout.NewTxOut(1, script.NewEmptyScript()))
	return transaction
}

func TestBlockHeaderHash(t *testing.T) {
	header := NewBlockHeader()
	header.Version = 1
	header.Time = 1231006505
	header.Bits = 0x1d00ffff

	first := header.GetHash()
	assert.Equal(t, first, header.GetHash())

	header.Nonce++
	assert.NotEqual(t, first, header.GetHash())
}

func TestBlockHeaderIsNull(t *testing.T) {
	header := NewBlockHeader()
	assert.True(t, header.IsNull())
	header.Bits = 0x1d00ffff
	assert.False(t, header.IsNull())
}

func TestBlockSerializeSize(t *testing.T) {
	header := NewBlockHeader()
	transaction := newTestTx()
	blk := NewBlock(header, []*tx.Tx{transaction})

	want := header.SerializeSize() + 1 + transaction.SerializeSize()
	assert.Equal(t, want, blk.SerializeSize())
	assert.Equal(t, uint32(80), header.SerializeSize())
}

func TestBlockHash(t *testing.T) {
	header := NewBlockHeader()
	header.Bits = 0x1d00ffff
	blk := NewBlock(header, []*tx.Tx{newTestTx()})
	assert.Equal(t, blk.Header.GetHash(), blk.GetHash())
}
