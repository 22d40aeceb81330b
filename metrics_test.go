package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/VictoriaMetrics/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryCounters(t *testing.T) {
	before := deliveryCounter(ServerRejected).Get()
	deliveryCounter(ServerRejected).Inc()
	assert.Equal(t, before+1, deliveryCounter(ServerRejected).Get())

	observeReading(TemperatureReading{Humidity: 45, Temperature: 22})

	var buf bytes.Buffer
	metrics.WritePrometheus(&buf, false)
	assert.Contains(t, buf.String(), `probe_deliveries_total{outcome="server_rejected"}`)
	assert.Contains(t, buf.String(), "probe_temperature_celsius_bucket")
}

func TestInitMetricsPush(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := testConfig("http://127.0.0.1:1")
	cfg.MetricsPushURL = "http://127.0.0.1:8428/api/v1/import/prometheus"
	require.NoError(t, initMetricsPush(ctx, cfg))

	cfg.MetricsPushURL = "127.0.0.1:8428"
	assert.Error(t, initMetricsPush(ctx, cfg))
}
