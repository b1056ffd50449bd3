package lscript

import (
	"github.com/copernet/kernel/model/script"
	"github.com/copernet/kernel/model/tx"
)

// Checker runs an output script against the input script claiming it. The
// interpreter behind it is a black box to the validation core; the only
// property relied upon is determinism for a given transaction, input index
// and pay-to-script-hash flag.
type Checker interface {
	VerifyScript(scriptSig, scriptPubKey *script.Script, transaction *tx.Tx,
		nIn int, bip16 bool) bool
}
