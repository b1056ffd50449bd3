package block

import (
	"bytes"
	"fmt"
	"io"

	"github.com/copernet/kernel/util"
)

const blockHeaderLength = 16 + util.Hash256Size*2

type BlockHeader struct {
	Version       int32
	HashPrevBlock util.Hash
	MerkleRoot    util.Hash
	Time          uint32
	Bits          uint32
	Nonce         uint32
}

func NewBlockHeader() *BlockHeader {
	return &BlockHeader{}
}

func (bh *BlockHeader) IsNull() bool {
	return bh.Bits == 0
}

func (bh *BlockHeader) GetBlockTime() int64 {
	return int64(bh.Time)
}

func (bh *BlockHeader) GetHash() util.Hash {
	buf := bytes.NewBuffer(make([]byte, 0, blockHeaderLength))
	_ = bh.Encode(buf)
	return util.DoubleSha256Hash(buf.Bytes())
}

func (bh *BlockHeader) SerializeSize() uint32 {
	return blockHeaderLength
}

func (bh *BlockHeader) Encode(w io.Writer) error {
	if err := util.WriteUint32(w, uint32(bh.Version)); err != nil {
		return err
	}
	if _, err := w.Write(bh.HashPrevBlock[:]); err != nil {
		return err
	}
	if _, err := w.Write(bh.MerkleRoot[:]); err != nil {
		return err
	}
	if err := util.WriteUint32(w, bh.Time); err != nil {
		return err
	}
	if err := util.WriteUint32(w, bh.Bits); err != nil {
		return err
	}
	return util.WriteUint32(w, bh.Nonce)
}

func (bh *BlockHeader) String() string {
	return fmt.Sprintf("Block version : %d, hashPrevBlock : %s, hashMerkleRoot : %s, "+
		"Time : %d, Bits : %d, nonce : %d", bh.Version, bh.HashPrevBlock.String(),
		bh.MerkleRoot.String(), bh.Time, bh.Bits, bh.Nonce)
}
