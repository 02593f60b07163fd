package accrual

import (
	"context"
	"time"

	"tokenbank/core"
	"tokenbank/worker"

	"github.com/fox-one/pkg/logger"
)

// Accrual brings the interest of every open pool up to date
type Accrual struct {
	worker.TickWorker
	bank core.BankService
}

// New new accrual worker
func New(bank core.BankService, interval time.Duration) *Accrual {
	return &Accrual{
		TickWorker: worker.TickWorker{
			Delay:    interval,
			ErrDelay: interval,
		},
		bank: bank,
	}
}

// Run run worker
func (w *Accrual) Run(ctx context.Context) error {
	return w.StartTick(ctx, w.onWork)
}

func (w *Accrual) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	pools, err := w.bank.Pools(ctx)
	if err != nil {
		log.WithError(err).Errorln("list pools")
		return err
	}

	var last error
	for _, pool := range pools {
		if !pool.IsOpen {
			continue
		}

		if err := w.bank.Accrue(ctx, pool.AssetID); err != nil {
			log.WithError(err).Errorln("accrue", pool.AssetID)
			last = err
		}
	}

	return last
}
