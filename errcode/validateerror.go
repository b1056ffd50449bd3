package errcode

import "fmt"

type ServiceErr int

const (
	ErrServiceStopped ServiceErr = ServiceErrorBase + iota
)

var serviceErrString = map[ServiceErr]string{
	ErrServiceStopped: "The service is stopped",
}

func (e ServiceErr) String() string {
	if s, ok := serviceErrString[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown code (%d)", e)
}

// GenericErr members double as oracle reply sentinels: ErrNotFound from a
// transaction fetch means the hash is unconfirmed, ErrUnspentOutput from a
// spend fetch means the outpoint is still spendable.
type GenericErr int

const (
	ErrNotFound GenericErr = GenericErrorBase + iota
	ErrDuplicate
	ErrUnspentOutput
)

var genericErrString = map[GenericErr]string{
	ErrNotFound:      "Object does not exist",
	ErrDuplicate:     "Matching previous object found",
	ErrUnspentOutput: "Unspent output",
}

func (e GenericErr) String() string {
	if s, ok := genericErrString[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown code (%d)", e)
}

// TxErr covers the context-free transaction rules shared by mempool
// admission and block checking.
type TxErr int

const (
	TxErrEmpty TxErr = TxErrorBase + iota
	TxErrOutputValueOverflow
	TxErrInvalidCoinbaseScriptSize
	TxErrPreviousOutputNull
)

var txErrString = map[TxErr]string{
	TxErrEmpty:                     "Transaction inputs or outputs are empty",
	TxErrOutputValueOverflow:       "Transaction output value is above the maximum",
	TxErrInvalidCoinbaseScriptSize: "Coinbase script size is out of range",
	TxErrPreviousOutputNull:        "Non-coinbase input has a null previous output",
}

func (e TxErr) String() string {
	if s, ok := txErrString[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown code (%d)", e)
}

type MempoolErr int

const (
	ErrCoinbaseTransaction MempoolErr = MempoolErrorBase + iota
	ErrIsNotStandard
	ErrDoubleSpend
	ErrInputNotFound
	ErrValidateInputsFailed
)

var mempoolErrString = map[MempoolErr]string{
	ErrCoinbaseTransaction:  "Coinbase transaction is not valid in the memory pool",
	ErrIsNotStandard:        "Transaction is not standard",
	ErrDoubleSpend:          "Double spend of an input",
	ErrInputNotFound:        "Input transaction not found",
	ErrValidateInputsFailed: "Validation of an input failed",
}

func (e MempoolErr) String() string {
	if s, ok := mempoolErrString[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown code (%d)", e)
}

type BlockErr int

const (
	ErrSizeLimits BlockErr = BlockErrorBase + iota
	ErrProofOfWork
	ErrFuturisticTimestamp
	ErrFirstNotCoinbase
	ErrExtraCoinbases
	ErrTooManySigs
	ErrMerkleMismatch
	ErrIncorrectProofOfWork
	ErrTimestampTooEarly
	ErrNonFinalTransaction
	ErrCheckpointsFailed
)

var blockErrString = map[BlockErr]string{
	ErrSizeLimits:           "Block size is out of range",
	ErrProofOfWork:          "Proof of work is invalid",
	ErrFuturisticTimestamp:  "Timestamp is too far in the future",
	ErrFirstNotCoinbase:     "First transaction is not a coinbase",
	ErrExtraCoinbases:       "More than one coinbase in the block",
	ErrTooManySigs:          "Too many script signature operations",
	ErrMerkleMismatch:       "Merkle root does not match the header",
	ErrIncorrectProofOfWork: "Proof of work does not match the required amount",
	ErrTimestampTooEarly:    "Timestamp is not after the median time past",
	ErrNonFinalTransaction:  "Block contains a non-final transaction",
	ErrCheckpointsFailed:    "Block hash rejected by a checkpoint",
}

func (e BlockErr) String() string {
	if s, ok := blockErrString[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown code (%d)", e)
}

type ConnectErr int

// ErrValidateInputsFailed is shared with the mempool group: both the mempool
// admission path and the block connection path report a failed input with the
// same code.
const (
	ErrDuplicateOrSpent ConnectErr = ConnectErrorBase + iota
	ErrFeesOutOfRange
	ErrCoinbaseTooLarge
)

var connectErrString = map[ConnectErr]string{
	ErrDuplicateOrSpent: "Duplicate transaction with unspent outputs",
	ErrFeesOutOfRange:   "Fees are out of range",
	ErrCoinbaseTooLarge: "Coinbase claims more than subsidy plus fees",
}

func (e ConnectErr) String() string {
	if s, ok := connectErrString[e]; ok {
		return s
	}
	return fmt.Sprintf("Unknown code (%d)", e)
}
