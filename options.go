package knntune

import (
	"runtime"

	"github.com/hupe1980/knntune/distance"
	"github.com/hupe1980/knntune/resource"
	"github.com/hupe1980/knntune/standardize"
)

type options struct {
	metric           distance.Metric
	standardizer     standardize.Standardizer
	workers          int
	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
}

func defaultOptions() options {
	return options{
		metric:           distance.MetricEuclidean,
		standardizer:     standardize.ZScore{},
		workers:          runtime.GOMAXPROCS(0),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// Option configures a Workflow.
type Option func(*options)

// WithMetric sets the distance metric of every fitted classifier.
// Default: Euclidean.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithStandardizer sets the preprocessing fitted on each training group.
// If nil is passed, standardize.ZScore is used.
func WithStandardizer(s standardize.Standardizer) Option {
	return func(o *options) {
		if s == nil {
			s = standardize.ZScore{}
		}
		o.standardizer = s
	}
}

// WithWorkers bounds the goroutines of each fan-out (queries, folds,
// candidates). Values <= 0 fall back to GOMAXPROCS.
//
// Nested fan-outs multiply: a tuning run may have workers candidates each
// running workers folds. Use WithResourceController to cap the total.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger sets a custom logger.
//
// Example:
//
//	logger := knntune.NewJSONLogger(slog.LevelInfo)
//	wf := knntune.New(knntune.WithLogger(logger))
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithResourceController caps concurrent fold evaluations across all
// candidates with a shared controller.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}
