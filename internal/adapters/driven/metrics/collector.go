// Package metrics exposes client activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/docparse-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docparse-cli/internal/logger"
)

// Ensure Collector implements the interface.
var _ driven.Telemetry = (*Collector)(nil)

const namespace = "docparse"

// Result label values.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultDiscarded = "discarded"
)

// Collector records upload, refresh and delete outcomes on its own registry.
type Collector struct {
	registry *prometheus.Registry

	uploads     *prometheus.CounterVec
	uploadFiles prometheus.Counter
	refreshes   *prometheus.CounterVec
	refreshTime prometheus.Histogram
	deletes     *prometheus.CounterVec
}

// NewCollector creates a collector with every metric registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Upload submissions by result.",
		}, []string{"result"}),
		uploadFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_files_total",
			Help:      "Files sent in successful submissions.",
		}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_refreshes_total",
			Help:      "Dashboard refreshes by result.",
		}, []string{"result"}),
		refreshTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dashboard_refresh_duration_seconds",
			Help:      "Time taken by applied dashboard refreshes.",
			Buckets:   prometheus.DefBuckets,
		}),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_deletes_total",
			Help:      "Document deletions by result.",
		}, []string{"result"}),
	}

	c.registry.MustRegister(c.uploads, c.uploadFiles, c.refreshes, c.refreshTime, c.deletes)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// UploadFinished records one submission.
func (c *Collector) UploadFinished(files int, err error) {
	if err != nil {
		c.uploads.WithLabelValues(ResultFailure).Inc()
		return
	}
	c.uploads.WithLabelValues(ResultSuccess).Inc()
	c.uploadFiles.Add(float64(files))
}

// RefreshApplied records a refresh that replaced the snapshot.
func (c *Collector) RefreshApplied(took time.Duration) {
	c.refreshes.WithLabelValues(ResultSuccess).Inc()
	c.refreshTime.Observe(took.Seconds())
}

// RefreshDiscarded records a refresh superseded by a newer one.
func (c *Collector) RefreshDiscarded() {
	c.refreshes.WithLabelValues(ResultDiscarded).Inc()
}

// RefreshFailed records a refresh with at least one failed fetch.
func (c *Collector) RefreshFailed() {
	c.refreshes.WithLabelValues(ResultFailure).Inc()
}

// DeleteFinished records one deletion.
func (c *Collector) DeleteFinished(err error) {
	if err != nil {
		c.deletes.WithLabelValues(ResultFailure).Inc()
		return
	}
	c.deletes.WithLabelValues(ResultSuccess).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics: serving on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
