package txout

import (
	"fmt"
	"io"

	"github.com/copernet/kernel/model/script"
	"github.com/copernet/kernel/util"
	"github.com/copernet/kernel/util/amount"
)

type TxOut struct {
	value        amount.Amount
	scriptPubKey *script.Script
}

func NewTxOut(value amount.Amount, scriptPubKey *script.Script) *TxOut {
	if scriptPubKey == nil {
		scriptPubKey = script.NewEmptyScript()
	}
	return &TxOut{
		value:        value,
		scriptPubKey: scriptPubKey,
	}
}

func (txOut *TxOut) GetValue() amount.Amount {
	return txOut.value
}

func (txOut *TxOut) GetScriptPubKey() *script.Script {
	return txOut.scriptPubKey
}

func (txOut *TxOut) SerializeSize() uint32 {
	return 8 + txOut.scriptPubKey.SerializeSize()
}

func (txOut *TxOut) Encode(writer io.Writer) error {
	if err := util.WriteUint64(writer, uint64(txOut.value)); err != nil {
		return err
	}
	if err := util.WriteVarInt(writer, uint64(txOut.scriptPubKey.Size())); err != nil {
		return err
	}
	_, err := writer.Write(txOut.scriptPubKey.Bytes())
	return err
}

func (txOut *TxOut) String() string {
	return fmt.Sprintf("TxOut (value:%d)", txOut.value)
}
