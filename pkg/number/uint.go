package number

import (
	"tokenbank/core"

	"github.com/holiman/uint256"
)

// BpsBase basis points of 100%
const BpsBase = 10000

func arithmetic(reason string) error {
	return core.NewError(core.ErrArithmetic, reason)
}

// New uint from uint64
func New(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// Zero new zero value
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// Add x + y
func Add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, arithmetic("number/add-overflow")
	}

	return z, nil
}

// Sub x - y
func Sub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, arithmetic("number/sub-underflow")
	}

	return z, nil
}

// Mul x * y
func Mul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, arithmetic("number/mul-overflow")
	}

	return z, nil
}

// Div x / y rounding toward zero
func Div(x, y *uint256.Int) (*uint256.Int, error) {
	if y.IsZero() {
		return nil, arithmetic("number/division-by-zero")
	}

	return new(uint256.Int).Div(x, y), nil
}

// MulDiv x * y / d
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	p, err := Mul(x, y)
	if err != nil {
		return nil, err
	}

	return Div(p, d)
}

// Bps v * bps / 10000
func Bps(v *uint256.Int, bps uint64) (*uint256.Int, error) {
	return MulDiv(v, New(bps), New(BpsBase))
}

// Min smaller of x and y
func Min(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return x.Clone()
	}

	return y.Clone()
}
