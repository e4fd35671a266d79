package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/wms-catalog/internal/application/dto"
	"github.com/jhoicas/wms-catalog/internal/application/ports"
)

// Metrics colectores del servicio sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	EventsPublished     *prometheus.CounterVec
}

// New registra los colectores con el prefijo dado (ej. wms_catalog).
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_events_published_total",
			Help: "Product events by type and result",
		}, []string{"type", "result"}),
	}
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry para tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Publisher envuelve un EventPublisher contando cada evento por tipo y resultado.
func (m *Metrics) Publisher(next ports.EventPublisher) ports.EventPublisher {
	return &countingPublisher{next: next, counter: m.EventsPublished}
}

type countingPublisher struct {
	next    ports.EventPublisher
	counter *prometheus.CounterVec
}

func (p *countingPublisher) Publish(ctx context.Context, event dto.ProductEvent) error {
	err := p.next.Publish(ctx, event)
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.counter.WithLabelValues(event.Type, result).Inc()
	return err
}
