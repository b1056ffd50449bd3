package consensus

import "github.com/copernet/kernel/util/amount"

const (
	// MaxBlockSize bounds the serialized block, its transaction count and,
	// through MaxBlockSigOps, its signature operations.
	MaxBlockSize = 1000000

	MaxBlockSigOps = MaxBlockSize / 50

	// CoinbaseMaturity is the depth a coinbase output must reach before it
	// can be spent.
	CoinbaseMaturity = 100

	// TargetTimespan is the two-week retargeting window; one readjustment
	// every ReadjustmentInterval blocks.
	TargetTimespan        = 14 * 24 * 60 * 60
	ReadjustmentInterval  = 2016
	TargetSpacing         = 10 * 60
	RetargetClampDivisor  = 4
	RetargetClampMultiple = 4

	// LockTimeThreshold splits nLockTime interpretation: below it a block
	// height, at or above it a unix timestamp.
	LockTimeThreshold = 500000000

	// MaxTimeOffset is how far a header timestamp may run ahead of the wall
	// clock.
	MaxTimeOffset = 2 * 60 * 60

	SubsidyHalvingInterval = 210000

	// Bip16SwitchoverTime activates pay-to-script-hash evaluation; any block
	// at or past it is also at or past Bip16SwitchoverHeight.
	Bip16SwitchoverTime   = 1333238400
	Bip16SwitchoverHeight = 173805

	// Bip30ExceptionHeight1/2 carry the two grandfathered duplicate-coinbase
	// blocks exempt from the duplicate-or-spent rule.
	Bip30ExceptionHeight1 = 91842
	Bip30ExceptionHeight2 = 91880

	MinCoinbaseScriptSize = 2
	MaxCoinbaseScriptSize = 100
)

// GetBlockSubsidy halves the base 50-coin subsidy every 210000 blocks until
// the right shift exhausts it.
func GetBlockSubsidy(height int32) amount.Amount {
	halvings := uint(height) / SubsidyHalvingInterval
	if halvings >= 64 {
		return 0
	}
	return amount.Amount(50*amount.COIN) >> halvings
}
