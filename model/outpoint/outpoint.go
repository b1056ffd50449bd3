package outpoint

import (
	"fmt"
	"io"
	"math"

	"github.com/copernet/kernel/util"
)

type OutPoint struct {
	Hash  util.Hash
	Index uint32
}

func NewOutPoint(hash util.Hash, index uint32) *OutPoint {
	return &OutPoint{
		Hash:  hash,
		Index: index,
	}
}

// NewNullOutPoint returns the previous output a coinbase input carries: the
// all-ones index with the zero hash.
func NewNullOutPoint() *OutPoint {
	return &OutPoint{
		Hash:  util.HashZero,
		Index: math.MaxUint32,
	}
}

func (outPoint *OutPoint) SerializeSize() uint32 {
	return util.Hash256Size + 4
}

func (outPoint *OutPoint) Encode(writer io.Writer) error {
	if _, err := writer.Write(outPoint.Hash[:]); err != nil {
		return err
	}
	return util.WriteUint32(writer, outPoint.Index)
}

func (outPoint *OutPoint) String() string {
	return fmt.Sprintf("OutPoint (hash:%s index: %d)", outPoint.Hash.String(), outPoint.Index)
}

func (outPoint *OutPoint) IsNull() bool {
	if outPoint == nil {
		return true
	}
	if outPoint.Index != math.MaxUint32 {
		return false
	}
	return outPoint.Hash.IsEqual(&util.HashZero)
}
