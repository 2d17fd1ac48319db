// Package metrics exposes identifier allocation statistics to Prometheus.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/viant/idprovider/provider"
	"github.com/viant/idprovider/service/registry"
)

// Collector reads every scope of a registry at scrape time.
type Collector struct {
	registry *registry.Service
	logger   logrus.FieldLogger

	scopes     *prometheus.Desc
	issued     *prometheus.Desc
	collisions *prometheus.Desc
	remaining  *prometheus.Desc
}

func NewPrometheusCollector(r *registry.Service, logger logrus.FieldLogger) *Collector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Collector{
		registry:   r,
		logger:     logger,
		scopes:     prometheus.NewDesc("idprovider_scopes", "Number of provider scopes", nil, nil),
		issued:     prometheus.NewDesc("idprovider_ids_issued_total", "Identifiers issued by origin", []string{"scope", "origin"}, nil),
		collisions: prometheus.NewDesc("idprovider_collisions_total", "Random draws rejected as already issued", []string{"scope"}, nil),
		remaining:  prometheus.NewDesc("idprovider_reserved_remaining", "Reserved identifiers not yet issued", []string{"scope"}, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.scopes
	ch <- c.issued
	ch <- c.collisions
	ch <- c.remaining
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	scopes, err := c.registry.List(context.Background())
	if err != nil {
		c.logger.WithError(err).Warn("failed to list scopes for metrics")
		return
	}
	for _, scope := range scopes {
		stats := scope.Provider.Stats()
		ch <- prometheus.MustNewConstMetric(c.issued, prometheus.CounterValue, float64(stats.FromReserved),
			scope.Name, string(provider.OriginReserved))
		ch <- prometheus.MustNewConstMetric(c.issued, prometheus.CounterValue, float64(stats.Generated),
			scope.Name, string(provider.OriginGenerated))
		ch <- prometheus.MustNewConstMetric(c.collisions, prometheus.CounterValue, float64(stats.Collisions),
			scope.Name)
		ch <- prometheus.MustNewConstMetric(c.remaining, prometheus.GaugeValue, float64(stats.Remaining),
			scope.Name)
	}
	ch <- prometheus.MustNewConstMetric(c.scopes, prometheus.GaugeValue, float64(len(scopes)))
}
