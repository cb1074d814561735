package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the register service.
type Metrics struct {
	// Ledger metrics
	TransactionsRecorded *prometheus.CounterVec
	TransactionsDeleted  *prometheus.CounterVec
	TransactionAmount    *prometheus.HistogramVec

	// Change calculator metrics
	ChangeCalculations prometheus.Counter
	ChangeImpossible   prometheus.Counter

	// Till metrics
	CashOnHand     prometheus.Gauge
	CurrentBalance prometheus.Gauge

	// Session metrics
	SessionsInitialized prometheus.Counter
	SessionsContinued   prometheus.Counter
	DaysDeleted         prometheus.Counter

	// Balance modification metrics
	BalanceModifications *prometheus.CounterVec

	// Persistence metrics
	SnapshotSaves        prometheus.Counter
	SnapshotSaveFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kasir_transactions_recorded_total",
			Help: "Total number of transactions recorded",
		}, []string{"type", "method"}),
		TransactionsDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kasir_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}, []string{"type"}),
		TransactionAmount: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kasir_transaction_amount",
			Help:    "Recorded transaction amounts in rupiah",
			Buckets: []float64{1000, 5000, 10000, 50000, 100000, 500000, 1000000},
		}, []string{"type"}),
		ChangeCalculations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasir_change_calculations_total",
			Help: "Total number of change calculations performed",
		}),
		ChangeImpossible: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasir_change_impossible_total",
			Help: "Change calculations that could not make exact change",
		}),
		CashOnHand: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "kasir_cash_on_hand",
			Help: "Current till cash value in rupiah",
		}),
		CurrentBalance: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "kasir_current_balance",
			Help: "Current running balance in rupiah",
		}),
		SessionsInitialized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasir_sessions_initialized_total",
			Help: "Register sessions started from an opening float",
		}),
		SessionsContinued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasir_sessions_continued_total",
			Help: "Register sessions resumed from a persisted day",
		}),
		DaysDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasir_days_deleted_total",
			Help: "Daily sessions deleted wholesale",
		}),
		BalanceModifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "kasir_balance_modifications_total",
			Help: "Opening balance modifications outside transaction flow",
		}, []string{"type"}),
		SnapshotSaves: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasir_snapshot_saves_total",
			Help: "Daily snapshot persistence attempts that succeeded",
		}),
		SnapshotSaveFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasir_snapshot_save_failures_total",
			Help: "Daily snapshot persistence attempts that failed after retries",
		}),
	}
}
