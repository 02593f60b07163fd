package core

import "github.com/holiman/uint256"

// Call identity of the caller of a public operation
type Call struct {
	Sender string
	// originating external account
	Origin string
	// native currency attached to the call
	Value *uint256.Int
}

// NewCall call sent directly by an external account
func NewCall(sender string) Call {
	return Call{Sender: sender, Origin: sender}
}

// WithValue attach native currency
func (c Call) WithValue(v *uint256.Int) Call {
	c.Value = v
	return c
}

// IsEOA sender is the originating account
func (c Call) IsEOA() bool {
	return c.Sender != "" && c.Sender == c.Origin
}

// Attached native value, zero when unset
func (c Call) Attached() *uint256.Int {
	if c.Value == nil {
		return new(uint256.Int)
	}

	return c.Value.Clone()
}
