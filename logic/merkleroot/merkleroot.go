package merkleroot

import (
	"github.com/copernet/kernel/model/tx"
	"github.com/copernet/kernel/util"
)

// ComputeMerkleRoot reduces the leaves pairwise with double-SHA256,
// duplicating the last node of an odd level. A repeated-leaf list can
// therefore produce the root of the deduplicated list (CVE-2012-2459); the
// block-level duplicate check rejects such blocks before the root matters.
func ComputeMerkleRoot(leaves []util.Hash) util.Hash {
	if len(leaves) == 0 {
		return util.Hash{}
	}

	level := make([]util.Hash, len(leaves))
	copy(level, leaves)
	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}
		next := make([]util.Hash, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			buf := make([]byte, 0, util.Hash256Size*2)
			buf = append(buf, level[i][:]...)
			buf = append(buf, level[i+1][:]...)
			next = append(next, util.DoubleSha256Hash(buf))
		}
		level = next
	}
	return level[0]
}

// BlockMerkleRoot computes the root over a block's transaction list.
func BlockMerkleRoot(txs []*tx.Tx) util.Hash {
	leaves := make([]util.Hash, 0, len(txs))
	for _, transaction := range txs {
		leaves = append(leaves, transaction.GetHash())
	}
	return ComputeMerkleRoot(leaves)
}
