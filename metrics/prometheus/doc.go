// Package prometheus exports workflow metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	wf := knntune.New(knntune.WithMetricsCollector(promcollector.New(reg)))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prometheus
