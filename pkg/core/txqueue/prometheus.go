package txqueue

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics used in monitoring service.
var (
	pendingTxs = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Help:      "Number of queued transactions by ledger age",
			Name:      "pending_txs",
			Namespace: "thium",
		},
		[]string{"age"},
	)

	pendingOps = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Number of operations in the pending queue",
			Name:      "pending_ops",
			Namespace: "thium",
		},
	)

	bannedTxs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Help:      "Number of banned transaction hashes",
			Name:      "banned_txs",
			Namespace: "thium",
		},
	)
)

func init() {
	prometheus.MustRegister(
		pendingTxs,
		pendingOps,
		bannedTxs,
	)
}

func updateSizeByAgeMetric(age int, size int64) {
	pendingTxs.WithLabelValues(strconv.Itoa(age)).Set(float64(size))
}

func updatePendingOpsMetric(ops int64) {
	pendingOps.Set(float64(ops))
}

func updateBannedTxsMetric(count int) {
	bannedTxs.Set(float64(count))
}
