package number

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// ToDecimal integer amount as decimal, nil is zero
func ToDecimal(v *uint256.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v.ToBig(), 0)
}

// FromDecimal truncates d to an integer amount, negative or oversized values
// are rejected
func FromDecimal(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, arithmetic("number/negative")
	}

	v, overflow := uint256.FromBig(d.Truncate(0).BigInt())
	if overflow {
		return nil, arithmetic("number/overflow")
	}

	return v, nil
}

// Parse integer amount from a decimal string
func Parse(s string) (*uint256.Int, error) {
	if s == "" {
		return new(uint256.Int), nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}

	return FromDecimal(d)
}

// MustParse panics on invalid input
func MustParse(s string) *uint256.Int {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return v
}
