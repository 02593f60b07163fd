package bank

import (
	"sync"

	"tokenbank/core"
	"tokenbank/pkg/number"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics prometheus collectors of the bank
type Metrics struct {
	operations *prometheus.CounterVec
	pool       *prometheus.GaugeVec
	accrued    *prometheus.CounterVec
}

var (
	metricsOnce     sync.Once
	metricsRegistry *Metrics
)

func metrics() *Metrics {
	metricsOnce.Do(func() {
		metricsRegistry = &Metrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "tokenbank_operations_total",
				Help: "Count of bank operations by outcome.",
			}, []string{"op", "result"}),
			pool: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "tokenbank_pool_amount",
				Help: "Committed pool ledger amounts.",
			}, []string{"asset", "field"}),
			accrued: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "tokenbank_interest_accrued_total",
				Help: "Interest accrued per pool.",
			}, []string{"asset"}),
		}
		prometheus.MustRegister(
			metricsRegistry.operations,
			metricsRegistry.pool,
			metricsRegistry.accrued,
		)
	})
	return metricsRegistry
}

// ObserveOp counts an operation, failures are labelled with their category
func (m *Metrics) ObserveOp(op string, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = core.CodeOf(err).Name()
	}

	m.operations.WithLabelValues(op, result).Inc()
}

func (m *Metrics) ObservePool(pool *core.Pool) {
	if m == nil {
		return
	}

	for field, v := range map[string]*uint256.Int{
		"total_value":      pool.TotalValue,
		"total_debt":       pool.TotalDebt,
		"total_debt_share": pool.TotalDebtShare,
		"total_reserve":    pool.TotalReserve,
	} {
		f, _ := number.ToDecimal(v).Float64()
		m.pool.WithLabelValues(pool.AssetID, field).Set(f)
	}
}

func (m *Metrics) ObserveAccrued(assetID string, accrued *uint256.Int) {
	if m == nil || accrued == nil {
		return
	}

	f, _ := number.ToDecimal(accrued).Float64()
	m.accrued.WithLabelValues(assetID).Add(f)
}
