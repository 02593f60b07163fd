package number

import (
	"testing"

	"tokenbank/core"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedOps(t *testing.T) {
	max := new(uint256.Int).SetAllOne()

	_, err := Add(max, New(1))
	assert.ErrorIs(t, err, core.ErrArithmetic)

	_, err = Sub(New(1), New(2))
	assert.ErrorIs(t, err, core.ErrArithmetic)

	_, err = Mul(max, New(2))
	assert.ErrorIs(t, err, core.ErrArithmetic)

	_, err = Div(New(1), Zero())
	assert.ErrorIs(t, err, core.ErrArithmetic)

	v, err := MulDiv(New(7), New(3), New(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(10), v.Uint64())

	v, err = Bps(New(999), 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), v.Uint64())
}

func TestDecimalConversion(t *testing.T) {
	v, err := Parse("1000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000", ToDecimal(v).String())

	v, err = Parse("12.9")
	require.NoError(t, err)
	assert.Equal(t, uint64(12), v.Uint64())

	_, err = Parse("-1")
	assert.ErrorIs(t, err, core.ErrArithmetic)

	assert.True(t, ToDecimal(nil).IsZero())
}
