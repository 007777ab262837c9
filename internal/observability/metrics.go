package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the ticketing core and its
// supporting workers.
type Metrics struct {
	// --- Core operations ---
	OpsApplied  *prometheus.CounterVec
	OpsRejected *prometheus.CounterVec
	OpDuration  *prometheus.HistogramVec

	// --- Domain gauges/counters ---
	TicketsSold      prometheus.Counter
	TicketsRefunded  prometheus.Counter
	TicketsUsed      prometheus.Counter
	EventsCreated    prometheus.Counter
	EscrowHeld       prometheus.Gauge
	NotifySequence   prometheus.Gauge

	// --- Persistence ---
	PersistRowsWritten prometheus.Counter
	PersistErrors      prometheus.Counter
	PersistRetries     prometheus.Counter

	// --- Publishing ---
	PublishDrops  prometheus.Counter
	PublishErrors prometheus.Counter

	// --- Query API ---
	QueryRequests *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all Prometheus metrics on the default
// registry. Call at most once per process.
func NewMetrics() *Metrics {
	opBuckets := []float64{
		0.000001, 0.000005, 0.00001, 0.000025, 0.00005,
		0.0001, 0.00025, 0.0005, 0.001, 0.002, 0.005, 0.01,
	}

	return &Metrics{
		OpsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketdot_ops_applied_total",
			Help: "Operations applied by the core, by operation name",
		}, []string{"op"}),
		OpsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketdot_ops_rejected_total",
			Help: "Operations rejected by the core, by operation and reason",
		}, []string{"op", "reason"}),
		OpDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ticketdot_op_duration_seconds",
			Help:    "Core operation processing duration",
			Buckets: opBuckets,
		}, []string{"op"}),

		TicketsSold: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketdot_tickets_sold_total",
			Help: "Tickets sold across all events",
		}),
		TicketsRefunded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketdot_tickets_refunded_total",
			Help: "Tickets refunded or cancelled across all events",
		}),
		TicketsUsed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketdot_tickets_used_total",
			Help: "Tickets scanned at the gate",
		}),
		EventsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketdot_events_created_total",
			Help: "Events created",
		}),
		EscrowHeld: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ticketdot_escrow_held",
			Help: "Total native currency held in event escrow",
		}),
		NotifySequence: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ticketdot_notification_sequence",
			Help: "Current notification sequence number",
		}),

		PersistRowsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketdot_persist_rows_written_total",
			Help: "Notification and journal rows written to Postgres",
		}),
		PersistErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketdot_persist_errors_total",
			Help: "Failed persistence flushes",
		}),
		PersistRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketdot_persist_retries_total",
			Help: "Persistence flush retries",
		}),

		PublishDrops: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketdot_publish_drops_total",
			Help: "Notifications dropped because the publish channel was full",
		}),
		PublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ticketdot_publish_errors_total",
			Help: "Failed NATS publishes",
		}),

		QueryRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketdot_query_requests_total",
			Help: "Query API requests by endpoint",
		}, []string{"endpoint"}),
		QueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ticketdot_query_duration_seconds",
			Help:    "Query API request duration by endpoint",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}
