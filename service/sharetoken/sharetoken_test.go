package sharetoken

import (
	"context"
	"testing"

	"tokenbank/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareToken(t *testing.T) {
	ctx := context.Background()
	r := New()

	tokenID, token, err := r.Create(ctx, "usd", "bUSD")
	require.NoError(t, err)

	_, _, err = r.Create(ctx, "usd", "bUSD")
	assert.Error(t, err)

	found, err := r.Token(ctx, tokenID)
	require.NoError(t, err)
	assert.Equal(t, token, found)

	require.NoError(t, token.Mint(ctx, "alice", number.New(100)))
	require.NoError(t, token.Burn(ctx, "alice", number.New(30)))
	assert.Error(t, token.Burn(ctx, "alice", number.New(71)))

	supply, _ := token.TotalSupply(ctx)
	assert.Equal(t, uint64(70), supply.Uint64())
}

func TestShareTokenRevert(t *testing.T) {
	ctx := context.Background()
	r := New()

	snap := r.Snapshot()
	tokenID, token, err := r.Create(ctx, "usd", "bUSD")
	require.NoError(t, err)
	require.NoError(t, token.Mint(ctx, "alice", number.New(100)))
	r.RevertToSnapshot(snap)

	_, err = r.Token(ctx, tokenID)
	assert.Error(t, err)
	assert.Empty(t, r.Tokens())

	_, token, err = r.Create(ctx, "usd", "bUSD")
	require.NoError(t, err)
	require.NoError(t, token.Mint(ctx, "alice", number.New(100)))

	snap = token.(*Token).Snapshot()
	require.NoError(t, token.Burn(ctx, "alice", number.New(40)))
	token.(*Token).RevertToSnapshot(snap)

	supply, _ := token.TotalSupply(ctx)
	assert.Equal(t, uint64(100), supply.Uint64())
	balance, _ := token.(*Token).BalanceOf(ctx, "alice")
	assert.Equal(t, uint64(100), balance.Uint64())
}
