package lscript

import (
	"github.com/copernet/kernel/model/script"
	"github.com/copernet/kernel/model/tx"
)

// EmptyChecker fails every script. It stands in wherever a validator must be
// constructed before the host wires a real interpreter.
type EmptyChecker struct {
}

func (sec *EmptyChecker) VerifyScript(scriptSig, scriptPubKey *script.Script,
	transaction *tx.Tx, nIn int, bip16 bool) bool {
	return false
}

func NewScriptEmptyChecker() *EmptyChecker {
	return &EmptyChecker{}
}

// PassingChecker accepts every script. Test harnesses use it to exercise the
// rules around script execution without an interpreter.
type PassingChecker struct {
}

func (spc *PassingChecker) VerifyScript(scriptSig, scriptPubKey *script.Script,
	transaction *tx.Tx, nIn int, bip16 bool) bool {
	return true
}

func NewScriptPassingChecker() *PassingChecker {
	return &PassingChecker{}
}
