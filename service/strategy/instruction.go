package strategy

import (
	"tokenbank/pkg/number"

	"github.com/fox-one/msgpack"
	"github.com/holiman/uint256"
)

// Instruction work payload understood by Vault, amounts are decimal strings
type Instruction struct {
	// collateral pulled from the owner
	Deposit string `msgpack:"d,omitempty"`
	// collateral handed back to the bank
	Repay string `msgpack:"r,omitempty"`
	// hand back all collateral
	Close bool `msgpack:"c,omitempty"`
}

// EncodeInstruction msgpack payload of ins
func EncodeInstruction(ins Instruction) ([]byte, error) {
	return msgpack.Marshal(ins)
}

// DecodeInstruction an empty payload is the zero instruction
func DecodeInstruction(payload []byte) (*Instruction, error) {
	var ins Instruction
	if len(payload) == 0 {
		return &ins, nil
	}

	if err := msgpack.Unmarshal(payload, &ins); err != nil {
		return nil, err
	}

	return &ins, nil
}

func (ins *Instruction) amounts() (deposit, repay *uint256.Int, err error) {
	if deposit, err = number.Parse(ins.Deposit); err != nil {
		return nil, nil, err
	}

	if repay, err = number.Parse(ins.Repay); err != nil {
		return nil, nil, err
	}

	return deposit, repay, nil
}
