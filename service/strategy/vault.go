package strategy

import (
	"context"
	"fmt"
	"sync"

	"tokenbank/core"
	"tokenbank/pkg/journal"
	"tokenbank/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// Transferer moves assets between holders
type Transferer interface {
	Transfer(ctx context.Context, assetID, from, to string, amount *uint256.Int) error
}

// Vault keeps everything it receives as collateral of the position, valued
// in the borrow asset with a haircut
type Vault struct {
	mu         sync.Mutex
	address    string
	bank       string
	assets     Transferer
	haircutBps uint64
	collateral map[uint64]*uint256.Int
	journal    journal.Journal
}

// NewVault new vault module holding funds under address
func NewVault(address, bank string, assets Transferer, haircutBps uint64) *Vault {
	return &Vault{
		address:    address,
		bank:       bank,
		assets:     assets,
		haircutBps: haircutBps,
		collateral: map[uint64]*uint256.Int{},
	}
}

var (
	_ core.StrategyModule = (*Vault)(nil)
	_ core.Journal        = (*Vault)(nil)
)

func (v *Vault) Address() string {
	return v.address
}

func (v *Vault) Work(ctx context.Context, req *core.WorkRequest) error {
	log := logger.FromContext(ctx).WithField("strategy", v.address)

	ins, err := DecodeInstruction(req.Payload)
	if err != nil {
		return fmt.Errorf("decode instruction: %w", err)
	}

	deposit, repay, err := ins.amounts()
	if err != nil {
		return fmt.Errorf("instruction amounts: %w", err)
	}

	credited := req.Borrow
	if req.BorrowAssetID == core.NativeAssetID {
		credited = req.Value
	} else if req.Value != nil && !req.Value.IsZero() {
		// native value is not collateral of a token position
		if err := v.assets.Transfer(ctx, core.NativeAssetID, v.address, req.Owner, req.Value); err != nil {
			return err
		}
	}

	if credited == nil {
		credited = number.Zero()
	}

	collateral, err := number.Add(v.Collateral(req.PositionID), credited)
	if err != nil {
		return err
	}

	if !deposit.IsZero() {
		if err := v.assets.Transfer(ctx, req.BorrowAssetID, req.Owner, v.address, deposit); err != nil {
			return err
		}

		if collateral, err = number.Add(collateral, deposit); err != nil {
			return err
		}
	}

	back := repay
	if ins.Close {
		back = collateral
	}

	if back.Gt(collateral) {
		return fmt.Errorf("repay %s exceeds collateral %s", back.Dec(), collateral.Dec())
	}

	if !back.IsZero() {
		if err := v.assets.Transfer(ctx, req.BorrowAssetID, v.address, v.bank, back); err != nil {
			return err
		}
	}

	left := new(uint256.Int).Sub(collateral, back)
	v.setCollateral(req.PositionID, left)

	log.Debugf("position %d collateral %s, returned %s", req.PositionID, left.Dec(), back.Dec())
	return nil
}

func (v *Vault) Health(_ context.Context, positionID uint64, _ string) (*uint256.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return number.Bps(v.collateralOf(positionID), v.haircutBps)
}

func (v *Vault) Liquidate(ctx context.Context, positionID uint64, _, borrowAssetID string) error {
	collateral := v.Collateral(positionID)
	if !collateral.IsZero() {
		if err := v.assets.Transfer(ctx, borrowAssetID, v.address, v.bank, collateral); err != nil {
			return err
		}
	}

	v.setCollateral(positionID, number.Zero())
	return nil
}

// Collateral held for the position
func (v *Vault) Collateral(positionID uint64) *uint256.Int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.collateralOf(positionID).Clone()
}

// SetHaircut reprices the collateral, basis points of its nominal amount
func (v *Vault) SetHaircut(bps uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.haircutBps = bps
}

func (v *Vault) collateralOf(positionID uint64) *uint256.Int {
	if c, ok := v.collateral[positionID]; ok {
		return c
	}

	return number.Zero()
}

func (v *Vault) setCollateral(positionID uint64, amount *uint256.Int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	prev, existed := v.collateral[positionID]
	v.journal.Append(func() {
		if existed {
			v.collateral[positionID] = prev
		} else {
			delete(v.collateral, positionID)
		}
	})

	v.collateral[positionID] = amount
}

func (v *Vault) Snapshot() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.journal.Snapshot()
}

func (v *Vault) RevertToSnapshot(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.journal.RevertToSnapshot(id)
}

func (v *Vault) Release(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.journal.Release(id)
}
