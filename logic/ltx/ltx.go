package ltx

import (
	"github.com/copernet/kernel/errcode"
	"github.com/copernet/kernel/log"
	"github.com/copernet/kernel/logic/lscript"
	"github.com/copernet/kernel/mempool"
	"github.com/copernet/kernel/model/consensus"
	"github.com/copernet/kernel/model/outpoint"
	"github.com/copernet/kernel/model/tx"
	"github.com/copernet/kernel/util"
	"github.com/copernet/kernel/util/amount"
)

// ChainOracle answers the validator's blockchain queries. Calls may block for
// as long as they like; the validator issues them one at a time from its own
// goroutine, so replies come back in request order.
type ChainOracle interface {
	// FetchTransaction returns a confirmed transaction by hash, or an error
	// carrying errcode.ErrNotFound when no such transaction is known.
	FetchTransaction(hash *util.Hash) (*tx.Tx, error)

	// FetchTransactionHeight returns the height of the block confirming the
	// transaction. Any error means "not confirmed".
	FetchTransactionHeight(hash *util.Hash) (int32, error)

	// FetchLastHeight returns the current chain tip height.
	FetchLastHeight() (int32, error)

	// FetchSpend reports whether an outpoint has been spent by a confirmed
	// transaction. errcode.ErrUnspentOutput means it has not; any other
	// reply is evidence of a spend.
	FetchSpend(out *outpoint.OutPoint) error
}

// ValidateHandler receives the single, terminal result of a validation. On
// success err is nil and unconfirmed lists the input indices whose parents
// live only in the pool; on ErrInputNotFound it holds the offending index.
type ValidateHandler func(err error, unconfirmed []int)

type validateState int

const (
	stateInitialChecks validateState = iota
	stateDupCheck
	stateConflictScan
	stateLastHeightFetch
	statePerInput
	stateDone
)

// TxValidator decides whether one loose transaction may enter the pool. All
// of its cursors belong to the single goroutine Start spawns; nothing here
// needs a lock.
type TxValidator struct {
	chain   ChainOracle
	txn     *tx.Tx
	txHash  util.Hash
	pool    mempool.Snapshot
	checker lscript.Checker

	state           validateState
	lastBlockHeight int32
	valueIn         amount.Amount
	currentInput    int
	unconfirmed     []int
}

func NewTxValidator(chain ChainOracle, transaction *tx.Tx, pool mempool.Snapshot,
	checker lscript.Checker) *TxValidator {
	return &TxValidator{
		chain:   chain,
		txn:     transaction,
		txHash:  transaction.GetHash(),
		pool:    pool,
		checker: checker,
	}
}

// Start drives the validation on its own goroutine and invokes the handler
// exactly once.
func (v *TxValidator) Start(handler ValidateHandler) {
	go func() {
		unconfirmed, err := v.run()
		handler(err, unconfirmed)
	}()
}

// Validate runs the state machine to completion on the calling goroutine.
func (v *TxValidator) Validate() ([]int, error) {
	return v.run()
}

func (v *TxValidator) run() ([]int, error) {
	v.state = stateInitialChecks
	v.unconfirmed = make([]int, 0)

	for {
		switch v.state {
		case stateInitialChecks:
			if err := v.basicChecks(); err != nil {
				log.Print("ltx", "debug", "tx %s rejected: %v", v.txHash.String(), err)
				return nil, err
			}
			v.state = stateDupCheck

		case stateDupCheck:
			// Check for duplicates in the blockchain. Only a definite
			// not-found reply lets the transaction through.
			if _, err := v.chain.FetchTransaction(&v.txHash); err == nil ||
				!errcode.IsErrorCode(err, errcode.ErrNotFound) {
				return nil, errcode.New(errcode.ErrDuplicate)
			}
			v.state = stateConflictScan

		case stateConflictScan:
			// Check for conflicts with pooled transactions.
			for _, in := range v.txn.GetIns() {
				if v.pool.IsSpent(in.PreviousOutPoint) {
					return nil, errcode.New(errcode.ErrDoubleSpend)
				}
			}
			v.state = stateLastHeightFetch

		case stateLastHeightFetch:
			lastHeight, err := v.chain.FetchLastHeight()
			if err != nil {
				return nil, err
			}
			// Used for checking coinbase maturity
			v.lastBlockHeight = lastHeight
			v.valueIn = 0
			v.currentInput = 0
			v.state = statePerInput

		case statePerInput:
			if indexes, err := v.nextInput(); err != nil {
				return indexes, err
			}
			v.currentInput++
			if v.currentInput == v.txn.GetInsCount() {
				v.state = stateDone
			}

		case stateDone:
			v.checkFees()
			return v.unconfirmed, nil
		}
	}
}

func (v *TxValidator) basicChecks() error {
	if err := v.txn.CheckTransaction(); err != nil {
		return err
	}

	if v.txn.IsCoinBase() {
		return errcode.New(errcode.ErrCoinbaseTransaction)
	}

	if !v.isStandard() {
		return errcode.New(errcode.ErrIsNotStandard)
	}

	if v.pool.Find(&v.txHash) != nil {
		return errcode.New(errcode.ErrDuplicate)
	}

	return nil
}

// isStandard is a deliberate placeholder: the core applies no standardness
// policy of its own.
func (v *TxValidator) isStandard() bool {
	return true
}

// nextInput fetches the parent of the current input, connects it and checks
// the chain for a prior spend.
func (v *TxValidator) nextInput() ([]int, error) {
	prevHash := v.txn.GetTxIn(v.currentInput).PreviousOutPoint.Hash

	var prevTx *tx.Tx
	parentHeight := int32(0)
	fromPool := false

	height, err := v.chain.FetchTransactionHeight(&prevHash)
	if err != nil {
		// Not confirmed; the parent may still be waiting in the pool. A
		// pooled parent is never a coinbase, so its height does not matter
		// for maturity.
		entry := v.pool.Find(&prevHash)
		if entry == nil {
			return []int{v.currentInput}, errcode.New(errcode.ErrInputNotFound)
		}
		prevTx = entry.Tx
		fromPool = true
	} else {
		prevTx, err = v.chain.FetchTransaction(&prevHash)
		if err != nil {
			return []int{v.currentInput}, errcode.New(errcode.ErrInputNotFound)
		}
		parentHeight = height
	}

	if !v.connectInput(prevTx, parentHeight) {
		return nil, errcode.New(errcode.ErrValidateInputsFailed)
	}

	// Search for double spends of this outpoint in the blockchain. Anything
	// but the unspent sentinel means someone already claimed it.
	spendErr := v.chain.FetchSpend(v.txn.GetTxIn(v.currentInput).PreviousOutPoint)
	if !errcode.IsErrorCode(spendErr, errcode.ErrUnspentOutput) {
		return nil, errcode.New(errcode.ErrDoubleSpend)
	}

	if fromPool {
		v.unconfirmed = append(v.unconfirmed, v.currentInput)
	}
	return nil, nil
}

// connectInput applies the per-input rules against the fetched parent: the
// referenced output exists, its value is in range, a coinbase parent is
// mature, and the scripts verify. The pool admission path runs scripts
// without pay-to-script-hash evaluation; only block connection switches the
// flag on.
func (v *TxValidator) connectInput(prevTx *tx.Tx, parentHeight int32) bool {
	input := v.txn.GetTxIn(v.currentInput)
	prevOutPoint := input.PreviousOutPoint
	if prevOutPoint.Index >= uint32(prevTx.GetOutsCount()) {
		return false
	}
	prevOut := prevTx.GetTxOut(int(prevOutPoint.Index))

	outputValue := prevOut.GetValue()
	if outputValue > amount.MaxMoney {
		return false
	}

	if prevTx.IsCoinBase() {
		heightDifference := v.lastBlockHeight - parentHeight
		if heightDifference < consensus.CoinbaseMaturity {
			return false
		}
	}

	if !v.checker.VerifyScript(input.GetScriptSig(), prevOut.GetScriptPubKey(),
		v.txn, v.currentInput, false) {
		return false
	}

	v.valueIn += outputValue
	return v.valueIn <= amount.MaxMoney
}

// checkFees computes the fee and throws it away. The pool takes every
// transaction on equal footing; fee floors are a policy for other layers.
func (v *TxValidator) checkFees() {
	fees := amount.Amount(0)
	TallyFees(v.txn, v.valueIn, &fees)
	log.Print("ltx", "trace", "tx %s fee %d", v.txHash.String(), fees)
}

// TallyFees checks that the inputs cover the outputs and accumulates the
// difference, keeping the running total within the money range.
func TallyFees(transaction *tx.Tx, valueIn amount.Amount, totalFees *amount.Amount) bool {
	valueOut := transaction.GetValueOut()
	if valueIn < valueOut {
		return false
	}
	fee := valueIn - valueOut
	*totalFees += fee
	return *totalFees <= amount.MaxMoney
}
