package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalcMedianTime(t *testing.T) {
	assert.Equal(t, uint32(0), CalcMedianTime(nil))
	assert.Equal(t, uint32(5), CalcMedianTime([]uint32{5}))
	assert.Equal(t, uint32(3), CalcMedianTime([]uint32{5, 1, 3}))

	// eleven ancestors, the usual window
	window := []uint32{11, 4, 7, 2, 9, 6, 1, 8, 3, 10, 5}
	assert.Equal(t, uint32(6), CalcMedianTime(window))

	// input untouched
	in := []uint32{3, 1, 2}
	CalcMedianTime(in)
	assert.Equal(t, []uint32{3, 1, 2}, in)
}

func TestTimeSource(t *testing.T) {
	fixed := FixedTimeSource{Time: time.Unix(1355843200, 0)}
	assert.Equal(t, int64(1355843200), fixed.AdjustedTime().Unix())

	now := NewSystemTimeSource().AdjustedTime()
	assert.InDelta(t, time.Now().Unix(), now.Unix(), 5)
}
