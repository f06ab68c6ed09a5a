package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrdersSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "obts",
			Name:      "orders_submitted_total",
			Help:      "Total number of orders applied to the book.",
		},
		[]string{"side"},
	)

	OrdersRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "obts",
			Name:      "orders_rejected_total",
			Help:      "Total number of orders rejected before matching.",
		},
		[]string{"reason"}, // zero_quantity / unknown_side / other
	)

	MailboxFullTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "obts",
			Name:      "engine_mailbox_full_total",
			Help:      "Total number of commands refused because the actor mailbox was full.",
		},
	)

	BatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "obts",
			Name:      "engine_batch_size",
			Help:      "Number of commands drained per actor batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 ~ 512
		},
	)

	BookLevels = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "obts",
			Name:      "book_levels",
			Help:      "Number of price levels resting in the book.",
		},
		[]string{"side"},
	)

	RestingQuantity = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "obts",
			Name:      "book_resting_quantity",
			Help:      "Total remaining quantity resting in the book.",
		},
		[]string{"side"},
	)
)

func MustRegister() {
	MustRegisterTo(prometheus.DefaultRegisterer)
}

// MustRegisterTo 注册到指定 registry（测试里用独立 registry，避免重复注册 panic）
func MustRegisterTo(r prometheus.Registerer) {
	r.MustRegister(OrdersSubmittedTotal, OrdersRejectedTotal, MailboxFullTotal, BatchSize, BookLevels, RestingQuantity)
}
