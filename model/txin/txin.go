package txin

import (
	"fmt"
	"io"

	"github.com/copernet/kernel/model/outpoint"
	"github.com/copernet/kernel/model/script"
	"github.com/copernet/kernel/util"
)

// SequenceFinal disables the lock-time of the transaction when every input
// carries it.
const SequenceFinal = 0xffffffff

type TxIn struct {
	PreviousOutPoint *outpoint.OutPoint
	scriptSig        *script.Script
	Sequence         uint32
}

func NewTxIn(prevOut *outpoint.OutPoint, scriptSig *script.Script, sequence uint32) *TxIn {
	if prevOut == nil {
		prevOut = outpoint.NewNullOutPoint()
	}
	if scriptSig == nil {
		scriptSig = script.NewEmptyScript()
	}
	return &TxIn{
		PreviousOutPoint: prevOut,
		scriptSig:        scriptSig,
		Sequence:         sequence,
	}
}

func (txIn *TxIn) GetScriptSig() *script.Script {
	return txIn.scriptSig
}

func (txIn *TxIn) SetScriptSig(scriptSig *script.Script) {
	txIn.scriptSig = scriptSig
}

func (txIn *TxIn) SerializeSize() uint32 {
	return txIn.PreviousOutPoint.SerializeSize() + txIn.scriptSig.SerializeSize() + 4
}

func (txIn *TxIn) Encode(writer io.Writer) error {
	if err := txIn.PreviousOutPoint.Encode(writer); err != nil {
		return err
	}
	if err := util.WriteVarInt(writer, uint64(txIn.scriptSig.Size())); err != nil {
		return err
	}
	if _, err := writer.Write(txIn.scriptSig.Bytes()); err != nil {
		return err
	}
	return util.WriteUint32(writer, txIn.Sequence)
}

func (txIn *TxIn) String() string {
	return fmt.Sprintf("TxIn (%s, sequence:%d)", txIn.PreviousOutPoint.String(), txIn.Sequence)
}
