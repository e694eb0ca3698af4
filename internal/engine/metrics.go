package engine

import "github.com/prometheus/client_golang/prometheus"

var (
	publishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notifyd",
			Subsystem: "engine",
			Name:      "published_total",
			Help:      "Total number of accepted publishes per registered topic",
		},
		[]string{"topic"},
	)

	rejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notifyd",
			Subsystem: "engine",
			Name:      "rejected_total",
			Help:      "Total number of rejected publishes",
		},
		[]string{"reason"},
	)

	deliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notifyd",
			Subsystem: "engine",
			Name:      "deliveries_total",
			Help:      "Total number of delivery attempts by result",
		},
		[]string{"result"},
	)

	deliveryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "notifyd",
			Subsystem: "engine",
			Name:      "delivery_duration_seconds",
			Help:      "Duration of subscriber Receive calls in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	deliveriesInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "notifyd",
			Subsystem: "engine",
			Name:      "inflight_deliveries",
			Help:      "Receive calls currently running",
		},
	)

	failuresDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notifyd",
			Subsystem: "engine",
			Name:      "failures_dropped_total",
			Help:      "Delivery failures dropped because the failure stream was full",
		},
	)

	topicsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "notifyd",
			Subsystem: "engine",
			Name:      "topics",
			Help:      "Registered topics",
		},
	)

	subscriptionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "notifyd",
			Subsystem: "engine",
			Name:      "subscriptions",
			Help:      "Subscriber handles across all topics",
		},
	)
)

func init() {
	prometheus.MustRegister(
		publishedTotal,
		rejectedTotal,
		deliveriesTotal,
		deliveryDuration,
		deliveriesInflight,
		failuresDroppedTotal,
		topicsGauge,
		subscriptionsGauge,
	)
}
