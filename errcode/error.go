package errcode

import (
	"fmt"
)

const (
	ServiceErrorBase = iota * 1000
	GenericErrorBase
	TxErrorBase
	MempoolErrorBase
	BlockErrorBase
	ConnectErrorBase
)

type ProjectError struct {
	Module string
	Code   int
	Desc   string
}

func (e ProjectError) Error() string {
	return fmt.Sprintf("module: %s, global errcode: %v, errdesc: %s", e.Module, e.Code, e.Desc)
}

func getCodeAndName(errCode fmt.Stringer) (int, string) {
	code := 0
	name := ""

	switch t := errCode.(type) {
	case ServiceErr:
		code = int(t)
		name = "service"
	case GenericErr:
		code = int(t)
		name = "generic"
	case TxErr:
		code = int(t)
		name = "transaction"
	case MempoolErr:
		code = int(t)
		name = "mempool"
	case BlockErr:
		code = int(t)
		name = "block"
	case ConnectErr:
		code = int(t)
		name = "connect"
	default:
	}

	return code, name
}

func New(errCode fmt.Stringer) error {
	code, name := getCodeAndName(errCode)

	return ProjectError{
		Module: name,
		Code:   code,
		Desc:   errCode.String(),
	}
}

func IsErrorCode(err error, errCode fmt.Stringer) bool {
	e, ok := err.(ProjectError)
	code, _ := getCodeAndName(errCode)
	return ok && code == e.Code
}

// IsValidateFailed reports whether err is any consensus rejection, as opposed
// to a service failure or an oracle sentinel. Callers that do not care which
// rule rejected an item key off this umbrella.
func IsValidateFailed(err error) bool {
	e, ok := err.(ProjectError)
	if !ok {
		return false
	}
	switch e.Code {
	case int(ErrServiceStopped), int(ErrNotFound), int(ErrUnspentOutput):
		return false
	}
	return e.Code >= TxErrorBase && e.Code < ConnectErrorBase+1000
}
