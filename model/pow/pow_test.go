package pow

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/copernet/kernel/model/chainparams"
	"github.com/copernet/kernel/model/consensus"
	"github.com/copernet/kernel/util"
)

type fakeRetargetView struct {
	bits     uint32
	timespan uint64
}

func (v *fakeRetargetView) PreviousBlockBits() uint32 {
	return v.bits
}

func (v *fakeRetargetView) ActualTimespan(interval int32) uint64 {
	return v.timespan
}

func TestCompactRoundTrip(t *testing.T) {
	for _, compact := range []uint32{0x1d00ffff, 0x1c05a3f4, 0x207fffff, 0x1b0404cb} {
		assert.Equal(t, compact, BigToCompact(CompactToBig(compact)))
	}
}

func TestCompactToBig(t *testing.T) {
	// 0x1d00ffff is 0xffff shifted 26 bytes up
	want := new(big.Int).Lsh(big.NewInt(0xffff), 208)
	assert.Equal(t, 0, want.Cmp(CompactToBig(0x1d00ffff)))

	// sign bit
	assert.Equal(t, -1, CompactToBig(0x1d80ffff).Sign())
	assert.Equal(t, 0, CompactToBig(0).Sign())
}

func TestBigToCompactPowLimits(t *testing.T) {
	assert.Equal(t, uint32(0x1d00ffff), BigToCompact(chainparams.MainNetParams.PowLimit))
	assert.Equal(t, uint32(0x207fffff), BigToCompact(chainparams.RegressionNetParams.PowLimit))
	assert.Equal(t, uint32(0), BigToCompact(big.NewInt(0)))
}

func TestHashToBig(t *testing.T) {
	var h util.Hash
	h[0] = 0x01
	assert.Equal(t, 0, HashToBig(&h).Cmp(big.NewInt(1)))

	h = util.Hash{}
	h[31] = 0x01
	want := new(big.Int).Lsh(big.NewInt(1), 248)
	assert.Equal(t, 0, HashToBig(&h).Cmp(want))
}

func TestCheckProofOfWork(t *testing.T) {
	params := &chainparams.MainNetParams

	// a hash exactly at the target passes
	target := CompactToBig(0x1d00ffff)
	var at util.Hash
	fillHashFromBig(&at, target)
	assert.True(t, CheckProofOfWork(&at, 0x1d00ffff, params))

	// one above fails
	above := new(big.Int).Add(target, big.NewInt(1))
	var aboveHash util.Hash
	fillHashFromBig(&aboveHash, above)
	assert.False(t, CheckProofOfWork(&aboveHash, 0x1d00ffff, params))

	// an easier target than the limit is rejected no matter the hash
	var zero util.Hash
	assert.False(t, CheckProofOfWork(&zero, 0x207fffff, params))

	// a zero or negative target is rejected
	assert.False(t, CheckProofOfWork(&zero, 0, params))
	assert.False(t, CheckProofOfWork(&zero, 0x1d80ffff, params))

	assert.True(t, CheckProofOfWork(&zero, 0x1d00ffff, params))
}

func fillHashFromBig(h *util.Hash, n *big.Int) {
	raw := n.Bytes()
	// store little-endian
	for i, b := range raw {
		h[len(raw)-1-i] = b
	}
}

func TestGetNextWorkRequiredGenesis(t *testing.T) {
	params := &chainparams.MainNetParams
	view := &fakeRetargetView{bits: 0x1c05a3f4}
	assert.Equal(t, params.PowLimitBits, GetNextWorkRequired(0, view, params))
}

func TestGetNextWorkRequiredOffInterval(t *testing.T) {
	params := &chainparams.MainNetParams
	view := &fakeRetargetView{bits: 0x1c05a3f4}
	assert.Equal(t, uint32(0x1c05a3f4), GetNextWorkRequired(2017, view, params))
}

func TestGetNextWorkRequiredRetarget(t *testing.T) {
	params := &chainparams.MainNetParams

	// Block #32256: the interval before it took 1022578 seconds.
	view := &fakeRetargetView{bits: 0x1d00ffff, timespan: 1022578}
	assert.Equal(t, uint32(0x1d00d86a), GetNextWorkRequired(32256, view, params))
}

func TestGetNextWorkRequiredClamps(t *testing.T) {
	params := &chainparams.MainNetParams
	bits := uint32(0x1c0a0000)
	target := CompactToBig(bits)

	// an eighth of the window clamps to a quarter
	fast := &fakeRetargetView{bits: bits, timespan: consensus.TargetTimespan / 8}
	want := new(big.Int).Div(target, big.NewInt(4))
	assert.Equal(t, BigToCompact(want), GetNextWorkRequired(consensus.ReadjustmentInterval, fast, params))

	// eight times the window clamps to four
	slow := &fakeRetargetView{bits: bits, timespan: consensus.TargetTimespan * 8}
	want = new(big.Int).Mul(target, big.NewInt(4))
	assert.Equal(t, BigToCompact(want), GetNextWorkRequired(consensus.ReadjustmentInterval, slow, params))
}

func TestGetNextWorkRequiredPowLimitClamp(t *testing.T) {
	params := &chainparams.MainNetParams

	// retargeting up from the limit cannot pass the limit
	view := &fakeRetargetView{bits: params.PowLimitBits, timespan: consensus.TargetTimespan * 8}
	assert.Equal(t, params.PowLimitBits, GetNextWorkRequired(consensus.ReadjustmentInterval, view, params))
}
