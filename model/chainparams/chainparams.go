package chainparams

import (
	"math/big"

	"github.com/copernet/kernel/util"
)

var (
	bigOne = big.NewInt(1)
	// 2^224 - 1
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)
	// 2^255 - 1
	regressingPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

type Checkpoint struct {
	Height int32
	Hash   *util.Hash
}

type BitcoinParams struct {
	Name         string
	PowLimit     *big.Int
	PowLimitBits uint32
	Checkpoints  []*Checkpoint
}

var ActiveNetParams = &MainNetParams

// MainNetParams carries the main-network proof-of-work bound and the
// hard-coded checkpoints the chain must match exactly.
var MainNetParams = BitcoinParams{
	Name:         "mainnet",
	PowLimit:     mainPowLimit,
	PowLimitBits: 0x1d00ffff,
	Checkpoints: []*Checkpoint{
		{11111, util.HashFromString("0000000069e244f73d78e8fd29ba2fd2ed618bd6fa2ee92559f542fdb26e7c1d")},
		{33333, util.HashFromString("000000002dd5588a74784eaa7ab0507a18ad16a236e7b1ce69f00d7ddfb5d0a6")},
		{68555, util.HashFromString("00000000001e1b4903550a0b96e9a9405c8a95f387162e4944e8d9fbe501cd6a")},
		{70567, util.HashFromString("00000000006a49b14bcf27462068f1264c961f11fa2e0eddd2be0791e1d4124a")},
		{74000, util.HashFromString("0000000000573993a3c9e41ce34471c079dcf5f52a0e824a81e7f953b8661a20")},
		{105000, util.HashFromString("00000000000291ce28027faea320c8d2b054b2e0fe44a773f3eefb151d6bdc97")},
		{118000, util.HashFromString("000000000000774a7f8a7a12dc906ddb9e17e75d684f15e00f8767f9e8f36553")},
		{134444, util.HashFromString("00000000000005b12ffd4cd315cd34ffd4a594f430ac814c91184a0d42d2b0fe")},
		{140700, util.HashFromString("000000000000033b512028abb90e1626d8b346fd0ed598ac0a3c371138dce2bd")},
		{168000, util.HashFromString("000000000000099e61ea72015e79632f216fe6cb33d7899acb35b75c8303b763")},
		{193000, util.HashFromString("000000000000059f452a5f7340de6682a977387c17010ff6e6c3bd83ca8b1317")},
		{210000, util.HashFromString("000000000000048b95347e83192f69cf0366076336c639f9b7228e9ba171342e")},
		{216116, util.HashFromString("00000000000001b4f4b433e81ee46494af945cf96014816a4e2370f11b23df4e")},
	},
}

// RegressionNetParams accepts nearly any proof of work and pins no
// checkpoints.
var RegressionNetParams = BitcoinParams{
	Name:         "regtest",
	PowLimit:     regressingPowLimit,
	PowLimitBits: 0x207fffff,
	Checkpoints:  nil,
}

// PassesCheckpoint requires the block hash at a checkpointed height to match
// the table; heights without an entry pass.
func (params *BitcoinParams) PassesCheckpoint(height int32, hash *util.Hash) bool {
	for _, checkpoint := range params.Checkpoints {
		if checkpoint.Height == height {
			return checkpoint.Hash.IsEqual(hash)
		}
	}
	return true
}

// LastCheckpointHeight is the tail of the checkpoint table, the height below
// which history is pinned.
func (params *BitcoinParams) LastCheckpointHeight() int32 {
	if len(params.Checkpoints) == 0 {
		return 0
	}
	return params.Checkpoints[len(params.Checkpoints)-1].Height
}
