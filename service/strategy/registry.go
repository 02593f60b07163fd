package strategy

import (
	"context"
	"sync"

	"tokenbank/core"
)

// Registry strategy modules by id
type Registry struct {
	mu      sync.RWMutex
	modules map[string]core.StrategyModule
}

// NewRegistry new strategy registry
func NewRegistry() *Registry {
	return &Registry{modules: map[string]core.StrategyModule{}}
}

// Register binds id to module, replacing any module already bound
func (r *Registry) Register(id string, module core.StrategyModule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules[id] = module
}

func (r *Registry) Strategy(_ context.Context, id string) (core.StrategyModule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	module, ok := r.modules[id]
	if !ok || id == "" {
		return nil, core.NewError(core.ErrConfiguration, "strategy/unset")
	}

	return module, nil
}
