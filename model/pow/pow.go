package pow

import (
	"math/big"

	"github.com/copernet/kernel/model/chainparams"
	"github.com/copernet/kernel/model/consensus"
	"github.com/copernet/kernel/util"
)

// RetargetView supplies the two ancestor facts difficulty retargeting needs:
// the bits of the previous block and the time the last readjustment interval
// actually took.
type RetargetView interface {
	PreviousBlockBits() uint32

	// ActualTimespan is the seconds between the block interval blocks back
	// and the previous block.
	ActualTimespan(interval int32) uint64
}

// CheckProofOfWork reports whether the block hash satisfies the claimed
// compact target and the target itself is within the permitted range.
func CheckProofOfWork(hash *util.Hash, bits uint32, params *chainparams.BitcoinParams) bool {
	target := CompactToBig(bits)
	if target.Sign() <= 0 || target.Cmp(params.PowLimit) > 0 {
		return false
	}
	return HashToBig(hash).Cmp(target) <= 0
}

// GetNextWorkRequired computes the compact target a block at the given height
// must carry. Outside a readjustment boundary the previous bits carry over;
// on a boundary the target scales with the clamped actual timespan of the
// interval.
func GetNextWorkRequired(height int32, view RetargetView, params *chainparams.BitcoinParams) uint32 {
	if height == 0 {
		return params.PowLimitBits
	}
	if height%consensus.ReadjustmentInterval != 0 {
		return view.PreviousBlockBits()
	}

	// Limit adjustment step
	actualTimespan := view.ActualTimespan(consensus.ReadjustmentInterval)
	if actualTimespan < consensus.TargetTimespan/consensus.RetargetClampDivisor {
		actualTimespan = consensus.TargetTimespan / consensus.RetargetClampDivisor
	}
	if actualTimespan > consensus.TargetTimespan*consensus.RetargetClampMultiple {
		actualTimespan = consensus.TargetTimespan * consensus.RetargetClampMultiple
	}

	// Retarget
	bnNew := CompactToBig(view.PreviousBlockBits())
	bnNew.Mul(bnNew, big.NewInt(int64(actualTimespan)))
	bnNew.Div(bnNew, big.NewInt(consensus.TargetTimespan))
	if bnNew.Cmp(params.PowLimit) > 0 {
		bnNew = params.PowLimit
	}
	return BigToCompact(bnNew)
}
