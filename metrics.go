package main

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

const metricsPushInterval = 10 * time.Second

var (
	probeReads       = metrics.NewCounter("probe_reads_total")
	probeOpenErrors  = metrics.NewCounter("probe_open_errors_total")
	probeParseErrors = metrics.NewCounter("probe_parse_errors_total")

	temperature = metrics.NewHistogram("probe_temperature_celsius")
	humidity    = metrics.NewHistogram("probe_humidity_percent")
)

func observeReading(reading TemperatureReading) {
	temperature.Update(float64(reading.Temperature))
	humidity.Update(float64(reading.Humidity))
}

func deliveryCounter(o Outcome) *metrics.Counter {
	return metrics.GetOrCreateCounter(`probe_deliveries_total{outcome="` + o.String() + `"}`)
}

// initMetricsPush periodically pushes all process metrics to pushURL in the
// Prometheus text format until ctx is done.
func initMetricsPush(ctx context.Context, cfg *Config) error {
	writeMetrics := func(w io.Writer) {
		metrics.WritePrometheus(w, true)
	}

	opts := &metrics.PushOptions{
		ExtraLabels: `service_name="probebridge",probe_id="` + strconv.Itoa(cfg.ProbeID) + `"`,
	}

	return metrics.InitPushExtWithOptions(ctx, cfg.MetricsPushURL, metricsPushInterval, writeMetrics, opts)
}
