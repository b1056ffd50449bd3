package block

import (
	"github.com/copernet/kernel/model/tx"
	"github.com/copernet/kernel/util"
)

type Block struct {
	Header BlockHeader
	Txs    []*tx.Tx
}

func NewBlock(header *BlockHeader, txs []*tx.Tx) *Block {
	return &Block{Header: *header, Txs: txs}
}

func (b *Block) GetHash() util.Hash {
	return b.Header.GetHash()
}

func (b *Block) SerializeSize() uint32 {
	n := b.Header.SerializeSize()
	n += util.VarIntSerializeSize(uint64(len(b.Txs)))
	for _, transaction := range b.Txs {
		n += transaction.SerializeSize()
	}
	return n
}
