package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	DeliveriesSent    *prometheus.CounterVec
	DeliveriesSkipped *prometheus.CounterVec
	DeliveriesFailed  *prometheus.CounterVec
	IncomingUpdates   *prometheus.CounterVec
	WebhookEvents     *prometheus.CounterVec
	Reconciliations   *prometheus.CounterVec
	Errors            *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			DeliveriesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deliveries_sent_total",
				Help:      "Total slot messages delivered to users.",
			}, []string{"slot"}),
			DeliveriesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deliveries_skipped_total",
				Help:      "Total users skipped during a slot run, by reason.",
			}, []string{"slot", "reason"}),
			DeliveriesFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deliveries_failed_total",
				Help:      "Total send failures during slot runs.",
			}, []string{"slot"}),
			IncomingUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "incoming_updates_total",
				Help:      "Total incoming telegram updates processed.",
			}, []string{"type"}),
			WebhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhook_events_total",
				Help:      "Total YooKassa webhook notifications by outcome.",
			}, []string{"outcome"}),
			Reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_reconciliations_total",
				Help:      "Total payment reconciliations by resulting status.",
			}, []string{"status"}),
			Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total errors grouped by component.",
			}, []string{"component"}),
		}

		prometheus.MustRegister(
			metricsInstance.DeliveriesSent,
			metricsInstance.DeliveriesSkipped,
			metricsInstance.DeliveriesFailed,
			metricsInstance.IncomingUpdates,
			metricsInstance.WebhookEvents,
			metricsInstance.Reconciliations,
			metricsInstance.Errors,
		)
	})
	return metricsInstance
}
