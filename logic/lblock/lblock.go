package lblock

import (
	"gopkg.in/fatih/set.v0"

	"github.com/copernet/kernel/errcode"
	"github.com/copernet/kernel/log"
	"github.com/copernet/kernel/logic/lscript"
	"github.com/copernet/kernel/logic/ltx"
	"github.com/copernet/kernel/logic/merkleroot"
	"github.com/copernet/kernel/model/block"
	"github.com/copernet/kernel/model/chainparams"
	"github.com/copernet/kernel/model/consensus"
	"github.com/copernet/kernel/model/outpoint"
	"github.com/copernet/kernel/model/pow"
	"github.com/copernet/kernel/model/script"
	"github.com/copernet/kernel/model/tx"
	"github.com/copernet/kernel/util"
	"github.com/copernet/kernel/util/amount"
)

// ChainView is a frozen snapshot of the chain up to the parent of the block
// under validation. It must not change for the duration of a Validate call;
// with independent snapshots, any number of validators may run in parallel.
type ChainView interface {
	pow.RetargetView

	// MedianTimePast is the median of the previous eleven block timestamps.
	MedianTimePast() int64

	// TransactionExists reports whether any confirmed transaction carries
	// the hash.
	TransactionExists(hash *util.Hash) bool

	// FetchTransaction returns a confirmed transaction and the height that
	// confirmed it.
	FetchTransaction(hash *util.Hash) (*tx.Tx, int32, error)

	// IsOutputSpent reports whether a confirmed spend of the outpoint
	// exists.
	IsOutputSpent(out *outpoint.OutPoint) bool

	// IsOutputSpentTo additionally counts spends by earlier transactions of
	// the block being connected: the caller identifies itself by transaction
	// and input index so its own claim is not read as a conflict.
	IsOutputSpentTo(out *outpoint.OutPoint, withinBlockTx, withinInput int) bool
}

// BlockValidator checks one block at a claimed height: first free of context,
// then against the ancestor view, then connecting every input. It holds no
// state beyond per-call cursors.
type BlockValidator struct {
	height  int32
	blk     *block.Block
	view    ChainView
	checker lscript.Checker
	timer   util.TimeSource
	params  *chainparams.BitcoinParams
}

func NewBlockValidator(height int32, blk *block.Block, view ChainView,
	checker lscript.Checker, timer util.TimeSource) *BlockValidator {
	return &BlockValidator{
		height:  height,
		blk:     blk,
		view:    view,
		checker: checker,
		timer:   timer,
		params:  chainparams.ActiveNetParams,
	}
}

// Validate runs the three phases in order and returns the first rejection.
func (v *BlockValidator) Validate() error {
	if err := v.CheckBlock(); err != nil {
		return err
	}
	if err := v.AcceptBlock(); err != nil {
		return err
	}
	return v.ConnectBlock()
}

// CheckBlock applies the rules that need no chain context.
func (v *BlockValidator) CheckBlock() error {
	blk := v.blk

	// Size limits
	if len(blk.Txs) == 0 || len(blk.Txs) > consensus.MaxBlockSize ||
		blk.SerializeSize() > consensus.MaxBlockSize {
		return errcode.New(errcode.ErrSizeLimits)
	}

	blockHash := blk.GetHash()
	if !pow.CheckProofOfWork(&blockHash, blk.Header.Bits, v.params) {
		return errcode.New(errcode.ErrProofOfWork)
	}

	twoHoursFuture := v.timer.AdjustedTime().Unix() + consensus.MaxTimeOffset
	if blk.Header.GetBlockTime() > twoHoursFuture {
		return errcode.New(errcode.ErrFuturisticTimestamp)
	}

	if !blk.Txs[0].IsCoinBase() {
		return errcode.New(errcode.ErrFirstNotCoinbase)
	}
	for _, transaction := range blk.Txs[1:] {
		if transaction.IsCoinBase() {
			return errcode.New(errcode.ErrExtraCoinbases)
		}
	}

	uniqueTxs := set.New(set.NonThreadSafe)
	for _, transaction := range blk.Txs {
		if err := transaction.CheckTransaction(); err != nil {
			return err
		}
		uniqueTxs.Add(transaction.GetHash())
	}
	if uniqueTxs.Size() != len(blk.Txs) {
		return errcode.New(errcode.ErrDuplicate)
	}

	if v.legacySigOpsCount() > consensus.MaxBlockSigOps {
		return errcode.New(errcode.ErrTooManySigs)
	}

	merkle := merkleroot.BlockMerkleRoot(blk.Txs)
	if !merkle.IsEqual(&blk.Header.MerkleRoot) {
		return errcode.New(errcode.ErrMerkleMismatch)
	}

	return nil
}

func (v *BlockValidator) legacySigOpsCount() int {
	total := 0
	for _, transaction := range v.blk.Txs {
		total += transaction.GetSigOpCountWithoutP2SH()
	}
	return total
}

// AcceptBlock applies the contextual rules against the ancestor view.
func (v *BlockValidator) AcceptBlock() error {
	blk := v.blk

	if blk.Header.Bits != pow.GetNextWorkRequired(v.height, v.view, v.params) {
		return errcode.New(errcode.ErrIncorrectProofOfWork)
	}

	if blk.Header.GetBlockTime() <= v.view.MedianTimePast() {
		return errcode.New(errcode.ErrTimestampTooEarly)
	}

	// Txs should be final when included in a block
	for _, transaction := range blk.Txs {
		if !transaction.IsFinal(v.height, blk.Header.GetBlockTime()) {
			return errcode.New(errcode.ErrNonFinalTransaction)
		}
	}

	blockHash := blk.GetHash()
	if !v.params.PassesCheckpoint(v.height, &blockHash) {
		log.Print("lblock", "debug", "block %s rejected by checkpoint at height %d",
			blockHash.String(), v.height)
		return errcode.New(errcode.ErrCheckpointsFailed)
	}

	return nil
}

// ConnectBlock connects every input against the UTXO history of the view and
// settles the block's money flow.
func (v *BlockValidator) ConnectBlock() error {
	blk := v.blk

	// BIP 30: a transaction hash may not shadow an earlier transaction that
	// still has unspent outputs. Two early blocks predate the rule.
	if v.height != consensus.Bip30ExceptionHeight1 && v.height != consensus.Bip30ExceptionHeight2 {
		for _, transaction := range blk.Txs {
			if !v.notDuplicateOrSpent(transaction) {
				return errcode.New(errcode.ErrDuplicateOrSpent)
			}
		}
	}

	fees := amount.Amount(0)
	totalSigOps := 0
	for txIndex := 1; txIndex < len(blk.Txs); txIndex++ {
		transaction := blk.Txs[txIndex]

		totalSigOps += transaction.GetSigOpCountWithoutP2SH()
		if totalSigOps > consensus.MaxBlockSigOps {
			return errcode.New(errcode.ErrTooManySigs)
		}

		valueIn := amount.Amount(0)
		for inputIndex := 0; inputIndex < transaction.GetInsCount(); inputIndex++ {
			if !v.connectInput(txIndex, transaction, inputIndex, &valueIn, &totalSigOps) {
				return errcode.New(errcode.ErrValidateInputsFailed)
			}
		}

		if !ltx.TallyFees(transaction, valueIn, &fees) {
			return errcode.New(errcode.ErrFeesOutOfRange)
		}
	}

	coinbaseValue := blk.Txs[0].GetValueOut()
	if coinbaseValue > consensus.GetBlockSubsidy(v.height)+fees {
		return errcode.New(errcode.ErrCoinbaseTooLarge)
	}

	return nil
}

// notDuplicateOrSpent passes when no confirmed transaction shares the hash,
// or when the one that does has every output spent already.
func (v *BlockValidator) notDuplicateOrSpent(transaction *tx.Tx) bool {
	txHash := transaction.GetHash()
	if !v.view.TransactionExists(&txHash) {
		return true
	}
	for outputIndex := 0; outputIndex < transaction.GetOutsCount(); outputIndex++ {
		if !v.view.IsOutputSpent(outpoint.NewOutPoint(txHash, uint32(outputIndex))) {
			return false
		}
	}
	return true
}

// scriptHashSigOps counts the signature operations an output really costs
// once pay-to-script-hash indirection is resolved, with accurate multisig
// weights.
func scriptHashSigOps(scriptPubKey, scriptSig *script.Script) int {
	if !scriptPubKey.IsPayToScriptHash() {
		return scriptPubKey.GetSigOpCount(true)
	}
	if len(scriptSig.ParsedOpCodes) == 0 {
		return 0
	}
	return scriptSig.GetP2SHSigOpCount()
}

func (v *BlockValidator) connectInput(txIndex int, transaction *tx.Tx, inputIndex int,
	valueIn *amount.Amount, totalSigOps *int) bool {
	// Lookup previous output
	input := transaction.GetTxIn(inputIndex)
	prevOutPoint := input.PreviousOutPoint
	prevTx, prevHeight, err := v.view.FetchTransaction(&prevOutPoint.Hash)
	if err != nil {
		return false
	}
	if prevOutPoint.Index >= uint32(prevTx.GetOutsCount()) {
		return false
	}
	prevOut := prevTx.GetTxOut(int(prevOutPoint.Index))

	// Signature operations count
	*totalSigOps += scriptHashSigOps(prevOut.GetScriptPubKey(), input.GetScriptSig())
	if *totalSigOps > consensus.MaxBlockSigOps {
		return false
	}

	outputValue := prevOut.GetValue()
	if outputValue > amount.MaxMoney {
		return false
	}

	// Check coinbase maturity has been reached
	if prevTx.IsCoinBase() {
		if v.height-prevHeight < consensus.CoinbaseMaturity {
			return false
		}
	}

	// Pay to script hash evaluation switches on by timestamp. Block 170060
	// contains an invalid BIP 16 transaction before the switchover date.
	bip16Enabled := v.blk.Header.GetBlockTime() >= consensus.Bip16SwitchoverTime
	if bip16Enabled && v.height < consensus.Bip16SwitchoverHeight {
		log.Print("lblock", "warn", "bip16 active below height %d", consensus.Bip16SwitchoverHeight)
	}

	if !v.checker.VerifyScript(input.GetScriptSig(), prevOut.GetScriptPubKey(),
		transaction, inputIndex, bip16Enabled) {
		return false
	}

	// Search for double spends, counting claims by earlier transactions of
	// this same block.
	if v.view.IsOutputSpentTo(prevOutPoint, txIndex, inputIndex) {
		return false
	}

	*valueIn += outputValue
	return *valueIn <= amount.MaxMoney
}
