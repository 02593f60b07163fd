package asset

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tokenbank/core"
	"tokenbank/pkg/journal"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
)

// Ledger in process asset balances, every change is journaled so a failed
// bank operation can roll back the transfers it made
type Ledger struct {
	mu       sync.Mutex
	balances map[string]map[string]*uint256.Int
	journal  journal.Journal
}

// New new asset ledger
func New() *Ledger {
	return &Ledger{
		balances: map[string]map[string]*uint256.Int{},
	}
}

func (l *Ledger) balance(assetID, holder string) *uint256.Int {
	if v, ok := l.balances[assetID][holder]; ok {
		return v
	}

	return number.Zero()
}

func (l *Ledger) set(assetID, holder string, v *uint256.Int) {
	prev, existed := l.balances[assetID][holder]
	l.journal.Append(func() {
		if !existed {
			delete(l.balances[assetID], holder)
			return
		}

		l.balances[assetID][holder] = prev
	})

	if _, ok := l.balances[assetID]; !ok {
		l.balances[assetID] = map[string]*uint256.Int{}
	}

	l.balances[assetID][holder] = v
}

// Mint credits amount out of thin air, used for genesis balances
func (l *Ledger) Mint(_ context.Context, assetID, holder string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, err := number.Add(l.balance(assetID, holder), amount)
	if err != nil {
		return err
	}

	l.set(assetID, holder, v)
	return nil
}

// Transfer moves amount between holders
func (l *Ledger) Transfer(_ context.Context, assetID, from, to string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if from == "" || to == "" {
		return fmt.Errorf("transfer %s: empty holder", assetID)
	}

	src := l.balance(assetID, from)
	if src.Lt(amount) {
		return fmt.Errorf("transfer %s: %s has %s, needs %s", assetID, from, src.Dec(), amount.Dec())
	}

	if amount.IsZero() || from == to {
		return nil
	}

	dst, err := number.Add(l.balance(assetID, to), amount)
	if err != nil {
		return err
	}

	l.set(assetID, from, new(uint256.Int).Sub(src, amount))
	l.set(assetID, to, dst)
	return nil
}

func (l *Ledger) BalanceOf(_ context.Context, assetID, holder string) (*uint256.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balance(assetID, holder).Clone(), nil
}

// Holders of assetID with a positive balance, sorted
func (l *Ledger) Holders(assetID string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	holders := make([]string, 0, len(l.balances[assetID]))
	for h, v := range l.balances[assetID] {
		if !v.IsZero() {
			holders = append(holders, h)
		}
	}

	sort.Strings(holders)
	return holders
}

func (l *Ledger) Snapshot() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.journal.Snapshot()
}

func (l *Ledger) RevertToSnapshot(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.journal.RevertToSnapshot(id)
}

func (l *Ledger) Release(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.journal.Release(id)
}

// Gateway transfer gateway of holder
func (l *Ledger) Gateway(holder string) *Gateway {
	return &Gateway{ledger: l, holder: holder}
}

// Gateway moves assets in and out of one holder
type Gateway struct {
	ledger *Ledger
	holder string
}

var (
	_ core.AssetTransferGateway = (*Gateway)(nil)
	_ core.Journal              = (*Gateway)(nil)
)

func (g *Gateway) Pull(ctx context.Context, assetID, from string, amount *uint256.Int) error {
	return g.ledger.Transfer(ctx, assetID, from, g.holder, amount)
}

func (g *Gateway) Push(ctx context.Context, assetID, to string, amount *uint256.Int) error {
	return g.ledger.Transfer(ctx, assetID, g.holder, to, amount)
}

func (g *Gateway) BalanceOf(ctx context.Context, assetID, holder string) (*uint256.Int, error) {
	return g.ledger.BalanceOf(ctx, assetID, holder)
}

func (g *Gateway) Snapshot() int           { return g.ledger.Snapshot() }
func (g *Gateway) RevertToSnapshot(id int) { g.ledger.RevertToSnapshot(id) }
func (g *Gateway) Release(id int)          { g.ledger.Release(id) }
