package keeper

import (
	"context"
	"errors"
	"time"

	"tokenbank/core"
	"tokenbank/worker"

	"github.com/fox-one/pkg/logger"
)

// Config keeper config
type Config struct {
	// account liquidations are sent from, it receives the prizes
	Address  string        `json:"address" valid:"required"`
	Interval time.Duration `json:"interval"`
	Batch    int           `json:"batch" valid:"required"`
}

// Keeper scans positions and liquidates the undercollateralized ones
type Keeper struct {
	worker.TickWorker
	bank core.BankService
	cfg  Config
	from uint64
}

// New new keeper
func New(bank core.BankService, cfg Config) *Keeper {
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}

	return &Keeper{
		TickWorker: worker.TickWorker{
			Delay:    cfg.Interval,
			ErrDelay: 3 * cfg.Interval,
		},
		bank: bank,
		cfg:  cfg,
	}
}

// Run run worker
func (w *Keeper) Run(ctx context.Context) error {
	return w.StartTick(ctx, w.onWork)
}

func (w *Keeper) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "keeper")

	positions, err := w.bank.Positions(ctx, w.from, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("list positions")
		return err
	}

	if len(positions) == 0 {
		// start over with the next round
		w.from = 0
		return errors.New("EOF")
	}

	for _, position := range positions {
		if !position.DebtShare.IsZero() {
			if err := w.handlePosition(ctx, position); err != nil {
				return err
			}
		}

		w.from = position.ID
	}

	return nil
}

func (w *Keeper) handlePosition(ctx context.Context, position *core.Position) error {
	log := logger.FromContext(ctx).WithField("position", position.ID)

	liquidatable, err := w.bank.IsLiquidatable(ctx, position.ID)
	if err != nil {
		// a broken strategy must not stall the scan
		log.WithError(err).Warnln("IsLiquidatable")
		return nil
	}

	if !liquidatable {
		return nil
	}

	result, err := w.bank.Liquidate(ctx, core.NewCall(w.cfg.Address), position.ID)
	if err != nil {
		switch core.CodeOf(err) {
		case core.ErrUndercollateralized:
			// recovered between the check and the call
			log.WithError(err).Infoln("skip liquidation")
			return nil
		default:
			log.WithError(err).Errorln("Liquidate")
			return err
		}
	}

	log.WithField("prize", result.Prize.Dec()).
		WithField("payout", result.Payout.Dec()).
		Infoln("position liquidated")
	return nil
}
