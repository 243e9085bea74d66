package knn

import (
	"runtime"

	"github.com/hupe1980/knntune/distance"
)

type options struct {
	metric  distance.Metric
	workers int
}

func defaultOptions() options {
	return options{
		metric:  distance.MetricEuclidean,
		workers: runtime.GOMAXPROCS(0),
	}
}

// Option configures a Classifier.
type Option func(*options)

// WithMetric sets the distance metric. Default: Euclidean.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithWorkers bounds the goroutines used by PredictFrame.
// Values <= 0 fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}
