package sharetoken

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tokenbank/core"
	"tokenbank/pkg/id"
	"tokenbank/pkg/journal"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
)

// Registry deploys share tokens and keeps their balances
type Registry struct {
	mu      sync.Mutex
	tokens  map[string]*Token
	journal journal.Journal
}

// New new share token registry
func New() *Registry {
	return &Registry{
		tokens: map[string]*Token{},
	}
}

var _ core.ShareTokenFactory = (*Registry)(nil)

// Create deploys the share token of assetID, the token id is derived from
// the asset so a pool always maps to the same token
func (r *Registry) Create(_ context.Context, assetID, symbol string) (string, core.ShareToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokenID := id.UUIDFromString("share-token:" + assetID)
	if _, ok := r.tokens[tokenID]; ok {
		return "", nil, fmt.Errorf("share token of %s already exists", assetID)
	}

	token := &Token{
		registry: r,
		ID:       tokenID,
		AssetID:  assetID,
		Symbol:   symbol,
		balances: map[string]*uint256.Int{},
		supply:   number.Zero(),
	}

	r.journal.Append(func() { delete(r.tokens, tokenID) })
	r.tokens[tokenID] = token
	return tokenID, token, nil
}

func (r *Registry) Token(_ context.Context, tokenID string) (core.ShareToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenID]
	if !ok {
		return nil, fmt.Errorf("share token %s not found", tokenID)
	}

	return token, nil
}

// Tokens deployed tokens sorted by id
func (r *Registry) Tokens() []*Token {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokens := make([]*Token, 0, len(r.tokens))
	for _, t := range r.tokens {
		tokens = append(tokens, t)
	}

	sort.Slice(tokens, func(i, j int) bool { return tokens[i].ID < tokens[j].ID })
	return tokens
}

func (r *Registry) Snapshot() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.journal.Snapshot()
}

func (r *Registry) RevertToSnapshot(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.journal.RevertToSnapshot(id)
}

func (r *Registry) Release(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.journal.Release(id)
}

// Token fungible claim on one pool
type Token struct {
	registry *Registry
	ID       string
	AssetID  string
	Symbol   string
	balances map[string]*uint256.Int
	supply   *uint256.Int
}

var (
	_ core.ShareToken = (*Token)(nil)
	_ core.Journal    = (*Token)(nil)
)

func (t *Token) balance(holder string) *uint256.Int {
	if v, ok := t.balances[holder]; ok {
		return v
	}

	return number.Zero()
}

func (t *Token) write(holder string, balance, supply *uint256.Int) {
	prevBalance, existed := t.balances[holder]
	prevSupply := t.supply
	t.registry.journal.Append(func() {
		t.supply = prevSupply
		if existed {
			t.balances[holder] = prevBalance
		} else {
			delete(t.balances, holder)
		}
	})

	t.balances[holder] = balance
	t.supply = supply
}

func (t *Token) Mint(_ context.Context, to string, amount *uint256.Int) error {
	t.registry.mu.Lock()
	defer t.registry.mu.Unlock()

	balance, err := number.Add(t.balance(to), amount)
	if err != nil {
		return err
	}

	supply, err := number.Add(t.supply, amount)
	if err != nil {
		return err
	}

	t.write(to, balance, supply)
	return nil
}

func (t *Token) Burn(_ context.Context, from string, amount *uint256.Int) error {
	t.registry.mu.Lock()
	defer t.registry.mu.Unlock()

	balance := t.balance(from)
	if balance.Lt(amount) {
		return fmt.Errorf("burn %s: %s holds %s, needs %s", t.Symbol, from, balance.Dec(), amount.Dec())
	}

	t.write(from, new(uint256.Int).Sub(balance, amount), new(uint256.Int).Sub(t.supply, amount))
	return nil
}

func (t *Token) TotalSupply(_ context.Context) (*uint256.Int, error) {
	t.registry.mu.Lock()
	defer t.registry.mu.Unlock()

	return t.supply.Clone(), nil
}

func (t *Token) BalanceOf(_ context.Context, holder string) (*uint256.Int, error) {
	t.registry.mu.Lock()
	defer t.registry.mu.Unlock()

	return t.balance(holder).Clone(), nil
}

func (t *Token) Snapshot() int           { return t.registry.Snapshot() }
func (t *Token) RevertToSnapshot(id int) { t.registry.RevertToSnapshot(id) }
func (t *Token) Release(id int)          { t.registry.Release(id) }
