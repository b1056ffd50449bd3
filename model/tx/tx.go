package tx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/copernet/kernel/errcode"
	"github.com/copernet/kernel/model/consensus"
	"github.com/copernet/kernel/model/outpoint"
	"github.com/copernet/kernel/model/txin"
	"github.com/copernet/kernel/model/txout"
	"github.com/copernet/kernel/util"
	"github.com/copernet/kernel/util/amount"
)

type Tx struct {
	hash     util.Hash
	lockTime uint32
	version  int32
	ins      []*txin.TxIn
	outs     []*txout.TxOut
}

func NewTx(lockTime uint32, version int32) *Tx {
	return &Tx{lockTime: lockTime, version: version}
}

func (tx *Tx) AddTxIn(txIn *txin.TxIn) {
	tx.ins = append(tx.ins, txIn)
	tx.hash = util.HashZero
}

func (tx *Tx) AddTxOut(txOut *txout.TxOut) {
	tx.outs = append(tx.outs, txOut)
	tx.hash = util.HashZero
}

func (tx *Tx) GetTxIn(index int) *txin.TxIn {
	if index < 0 || index >= len(tx.ins) {
		return nil
	}
	return tx.ins[index]
}

func (tx *Tx) GetTxOut(index int) *txout.TxOut {
	if index < 0 || index >= len(tx.outs) {
		return nil
	}
	return tx.outs[index]
}

func (tx *Tx) GetIns() []*txin.TxIn {
	return tx.ins
}

func (tx *Tx) GetOuts() []*txout.TxOut {
	return tx.outs
}

func (tx *Tx) GetInsCount() int {
	return len(tx.ins)
}

func (tx *Tx) GetOutsCount() int {
	return len(tx.outs)
}

func (tx *Tx) GetLockTime() uint32 {
	return tx.lockTime
}

func (tx *Tx) GetVersion() int32 {
	return tx.version
}

// IsCoinBase: the unique minting transaction has exactly one input and that
// input references the null outpoint.
func (tx *Tx) IsCoinBase() bool {
	return len(tx.ins) == 1 && tx.ins[0].PreviousOutPoint.IsNull()
}

// CheckTransaction applies the context-free rules: non-empty sides, output
// values within the money range (individually and summed), a sane coinbase
// script size, and no null previous outputs outside a coinbase.
func (tx *Tx) CheckTransaction() error {
	if len(tx.ins) == 0 || len(tx.outs) == 0 {
		return errcode.New(errcode.TxErrEmpty)
	}

	totalOut := amount.Amount(0)
	for _, out := range tx.outs {
		if !amount.MoneyRange(out.GetValue()) {
			return errcode.New(errcode.TxErrOutputValueOverflow)
		}
		totalOut += out.GetValue()
		if !amount.MoneyRange(totalOut) {
			return errcode.New(errcode.TxErrOutputValueOverflow)
		}
	}

	if tx.IsCoinBase() {
		size := tx.ins[0].GetScriptSig().Size()
		if size < consensus.MinCoinbaseScriptSize || size > consensus.MaxCoinbaseScriptSize {
			return errcode.New(errcode.TxErrInvalidCoinbaseScriptSize)
		}
	} else {
		for _, in := range tx.ins {
			if in.PreviousOutPoint.IsNull() {
				return errcode.New(errcode.TxErrPreviousOutputNull)
			}
		}
	}

	return nil
}

// IsFinal reports whether the transaction may be included at the given height
// and block time. A lock time below LockTimeThreshold is compared against the
// height, otherwise against the time; final sequences on every input override
// the lock time entirely.
func (tx *Tx) IsFinal(height int32, blockTime int64) bool {
	if tx.lockTime == 0 {
		return true
	}

	cutoff := int64(height)
	if tx.lockTime >= consensus.LockTimeThreshold {
		cutoff = blockTime
	}
	if int64(tx.lockTime) < cutoff {
		return true
	}

	for _, in := range tx.ins {
		if in.Sequence != txin.SequenceFinal {
			return false
		}
	}
	return true
}

func (tx *Tx) GetValueOut() amount.Amount {
	var valueOut amount.Amount
	for _, out := range tx.outs {
		valueOut += out.GetValue()
	}
	return valueOut
}

// GetSigOpCountWithoutP2SH is the legacy count over every input and output
// script, charging multisig the worst case regardless of the announced key
// count.
func (tx *Tx) GetSigOpCountWithoutP2SH() int {
	n := 0
	for _, in := range tx.ins {
		n += in.GetScriptSig().GetSigOpCount(false)
	}
	for _, out := range tx.outs {
		n += out.GetScriptPubKey().GetSigOpCount(false)
	}
	return n
}

func (tx *Tx) AnyInputSpends(out *outpoint.OutPoint) bool {
	for _, in := range tx.ins {
		if in.PreviousOutPoint.Hash == out.Hash && in.PreviousOutPoint.Index == out.Index {
			return true
		}
	}
	return false
}

func (tx *Tx) SerializeSize() uint32 {
	// version 4 bytes + lockTime 4 bytes + the varint-counted sides
	n := uint32(8)
	n += util.VarIntSerializeSize(uint64(len(tx.ins)))
	for _, in := range tx.ins {
		n += in.SerializeSize()
	}
	n += util.VarIntSerializeSize(uint64(len(tx.outs)))
	for _, out := range tx.outs {
		n += out.SerializeSize()
	}
	return n
}

func (tx *Tx) Encode(writer io.Writer) error {
	if err := util.WriteUint32(writer, uint32(tx.version)); err != nil {
		return err
	}
	if err := util.WriteVarInt(writer, uint64(len(tx.ins))); err != nil {
		return err
	}
	for _, in := range tx.ins {
		if err := in.Encode(writer); err != nil {
			return err
		}
	}
	if err := util.WriteVarInt(writer, uint64(len(tx.outs))); err != nil {
		return err
	}
	for _, out := range tx.outs {
		if err := out.Encode(writer); err != nil {
			return err
		}
	}
	return util.WriteUint32(writer, tx.lockTime)
}

func (tx *Tx) GetHash() util.Hash {
	if tx.hash != util.HashZero {
		return tx.hash
	}
	buf := bytes.NewBuffer(make([]byte, 0, tx.SerializeSize()))
	_ = tx.Encode(buf)
	tx.hash = util.DoubleSha256Hash(buf.Bytes())
	return tx.hash
}

func (tx *Tx) String() string {
	return fmt.Sprintf("Tx (version:%d, ins:%d, outs:%d, lockTime:%d, hash:%s)",
		tx.version, len(tx.ins), len(tx.outs), tx.lockTime, tx.hash.String())
}
