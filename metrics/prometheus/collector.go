package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "knntune"

// Collector implements knntune.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency     *prometheus.HistogramVec
	foldAccuracy  *prometheus.HistogramVec
	candidateMean *prometheus.GaugeVec
	candidateErr  *prometheus.GaugeVec
	candidates    *prometheus.CounterVec
	queries       prometheus.Counter
	holdoutAcc    prometheus.Gauge
	archivedBytes prometheus.Counter
}

// New creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of workflow operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
		foldAccuracy: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fold_accuracy",
			Help:      "Validation accuracy of cross-validation folds",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}, []string{"k"}),
		candidateMean: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidate_mean_accuracy",
			Help:      "Mean cross-validated accuracy of the last evaluation per k",
		}, []string{"k"}),
		candidateErr: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidate_stderr",
			Help:      "Standard error of the mean accuracy per k",
		}, []string{"k"}),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Evaluated tuning candidates",
		}, []string{"status"}),
		queries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predicted_queries_total",
			Help:      "Classified query examples",
		}),
		holdoutAcc: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "holdout_accuracy",
			Help:      "Accuracy of the last holdout evaluation",
		}),
		archivedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "archived_bytes_total",
			Help:      "Bytes of reports written to the archive",
		}),
	}

	reg.MustRegister(
		c.opLatency,
		c.foldAccuracy,
		c.candidateMean,
		c.candidateErr,
		c.candidates,
		c.queries,
		c.holdoutAcc,
		c.archivedBytes,
	)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordFold implements knntune.MetricsCollector.
func (c *Collector) RecordFold(k, _ int, accuracy float64, d time.Duration, err error) {
	c.opLatency.WithLabelValues("fold", status(err)).Observe(d.Seconds())
	if err == nil {
		c.foldAccuracy.WithLabelValues(strconv.Itoa(k)).Observe(accuracy)
	}
}

// RecordCandidate implements knntune.MetricsCollector.
func (c *Collector) RecordCandidate(k int, mean, stderr float64, err error) {
	c.candidates.WithLabelValues(status(err)).Inc()
	if err != nil {
		return
	}
	label := strconv.Itoa(k)
	c.candidateMean.WithLabelValues(label).Set(mean)
	c.candidateErr.WithLabelValues(label).Set(stderr)
}

// RecordPrediction implements knntune.MetricsCollector.
func (c *Collector) RecordPrediction(count int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("predict", status(err)).Observe(d.Seconds())
	if err == nil {
		c.queries.Add(float64(count))
	}
}

// RecordHoldout implements knntune.MetricsCollector.
func (c *Collector) RecordHoldout(accuracy float64, d time.Duration, err error) {
	c.opLatency.WithLabelValues("holdout", status(err)).Observe(d.Seconds())
	if err == nil {
		c.holdoutAcc.Set(accuracy)
	}
}

// RecordArchive implements knntune.MetricsCollector.
func (c *Collector) RecordArchive(bytes int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("archive", status(err)).Observe(d.Seconds())
	if err == nil {
		c.archivedBytes.Add(float64(bytes))
	}
}
