// File: internal/report/metrics.go (complete file)

package report

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	flushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nettxt_flush_total",
		Help: "Number of nettxt report flushes by result",
	}, []string{"result"})

	flushDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nettxt_flush_duration_seconds",
		Help:    "Time to render and write one nettxt report",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	})

	reportNetworks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nettxt_report_networks",
		Help: "Networks written by the last successful flush",
	})

	reportClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nettxt_report_clients",
		Help: "Clients written by the last successful flush",
	})
)

func observeFlush(d time.Duration, st Stats, err error) {
	flushDuration.Observe(d.Seconds())
	if err != nil {
		flushTotal.WithLabelValues("error").Inc()
		return
	}
	flushTotal.WithLabelValues("ok").Inc()
	reportNetworks.Set(float64(st.Networks))
	reportClients.Set(float64(st.Clients))
}
