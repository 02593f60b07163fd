package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tokenbank/worker"
	"tokenbank/worker/accrual"
	"tokenbank/worker/keeper"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "boot the bank and run its accrual and keeper jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		b, err := bootBank(ctx, provideLedgerStore(database))
		if err != nil {
			return err
		}

		keeperAddress := cfg.Keeper.Address
		if keeperAddress == "" {
			keeperAddress = cfg.Bank.Admin
		}

		workers := []worker.Worker{
			accrual.New(b, orInterval(cfg.Accrual.Interval, time.Minute)),
			keeper.New(b, keeper.Config{
				Address:  keeperAddress,
				Interval: orInterval(cfg.Keeper.Interval, 10*time.Second),
				Batch:    cfg.Keeper.Batch,
			}),
		}

		g, ctx := errgroup.WithContext(ctx)
		for _, w := range workers {
			w := w
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		if port := cfg.App.MetricsPort; port > 0 {
			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", port),
				Handler: promhttp.Handler(),
			}

			g.Go(func() error {
				<-ctx.Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				return server.Shutdown(shutdown)
			})

			g.Go(func() error {
				log.Infoln("metrics serve at", server.Addr)
				if err := server.ListenAndServe(); err != http.ErrServerClosed {
					return err
				}

				return nil
			})
		}

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		return nil
	},
}

func orInterval(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}

	return d
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
