package strategy

import (
	"context"
	"testing"

	"tokenbank/core"
	"tokenbank/pkg/number"
	"tokenbank/service/asset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionCodec(t *testing.T) {
	payload, err := EncodeInstruction(Instruction{Deposit: "10", Close: true})
	require.NoError(t, err)

	ins, err := DecodeInstruction(payload)
	require.NoError(t, err)
	assert.Equal(t, "10", ins.Deposit)
	assert.True(t, ins.Close)

	ins, err = DecodeInstruction(nil)
	require.NoError(t, err)
	assert.Equal(t, Instruction{}, *ins)

	_, err = DecodeInstruction([]byte{0xc1})
	assert.Error(t, err)
}

func TestVaultWork(t *testing.T) {
	ctx := context.Background()
	ledger := asset.New()
	require.NoError(t, ledger.Mint(ctx, "usd", "alice", number.New(300)))
	// funds the bank already sent to the vault
	require.NoError(t, ledger.Mint(ctx, "usd", "vault", number.New(500)))

	v := NewVault("vault", "bank", ledger, 5000)
	payload, _ := EncodeInstruction(Instruction{Deposit: "200", Repay: "100"})

	require.NoError(t, v.Work(ctx, &core.WorkRequest{
		PositionID:    1,
		Owner:         "alice",
		BorrowAssetID: "usd",
		Borrow:        number.New(500),
		Debt:          number.New(500),
		Payload:       payload,
	}))

	assert.Equal(t, uint64(600), v.Collateral(1).Uint64())
	health, err := v.Health(ctx, 1, "usd")
	require.NoError(t, err)
	assert.Equal(t, uint64(300), health.Uint64())

	bank, _ := ledger.BalanceOf(ctx, "usd", "bank")
	assert.Equal(t, uint64(100), bank.Uint64())

	v.SetHaircut(2500)
	health, _ = v.Health(ctx, 1, "usd")
	assert.Equal(t, uint64(150), health.Uint64())

	require.NoError(t, v.Liquidate(ctx, 1, "alice", "usd"))
	assert.True(t, v.Collateral(1).IsZero())
	bank, _ = ledger.BalanceOf(ctx, "usd", "bank")
	assert.Equal(t, uint64(700), bank.Uint64())
}

func TestVaultRepayTooMuch(t *testing.T) {
	ctx := context.Background()
	ledger := asset.New()
	v := NewVault("vault", "bank", ledger, 10000)

	payload, _ := EncodeInstruction(Instruction{Repay: "1"})
	err := v.Work(ctx, &core.WorkRequest{PositionID: 1, Owner: "alice", BorrowAssetID: "usd", Borrow: number.Zero(), Debt: number.Zero(), Payload: payload})
	assert.Error(t, err)
}

func TestVaultRevert(t *testing.T) {
	ctx := context.Background()
	ledger := asset.New()
	require.NoError(t, ledger.Mint(ctx, "usd", "vault", number.New(50)))
	v := NewVault("vault", "bank", ledger, 10000)

	snap := v.Snapshot()
	require.NoError(t, v.Work(ctx, &core.WorkRequest{PositionID: 3, Owner: "alice", BorrowAssetID: "usd", Borrow: number.New(50), Debt: number.New(50)}))
	assert.Equal(t, uint64(50), v.Collateral(3).Uint64())
	v.RevertToSnapshot(snap)
	assert.True(t, v.Collateral(3).IsZero())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	v := NewVault("vault", "bank", asset.New(), 10000)
	r.Register("vault", v)

	m, err := r.Strategy(context.Background(), "vault")
	require.NoError(t, err)
	assert.Equal(t, "vault", m.Address())

	_, err = r.Strategy(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrConfiguration)
}
