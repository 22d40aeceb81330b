package main

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
)

const pollInterval = 500 * time.Millisecond

// bridge moves readings from the probe to the controller, one at a time.
type bridge struct {
	cfg     *Config
	logger  golog.Logger
	clock   clock.Clock
	client  *http.Client
	out     io.Writer
	datadog metricsSubmitter // nil unless the Datadog mirror is enabled
}

func newBridge(cfg *Config, logger golog.Logger, out io.Writer) *bridge {
	b := &bridge{
		cfg:    cfg,
		logger: logger,
		clock:  clock.New(),
		client: &http.Client{},
		out:    out,
	}
	if cfg.DatadogEnabled {
		b.datadog = newDatadogMetricsAPI()
	}
	return b
}

// run polls the probe until ctx is done. It only returns an error when the
// serial ports can no longer be enumerated.
func (b *bridge) run(ctx context.Context) error {
	for {
		b.clock.Sleep(pollInterval)
		if ctx.Err() != nil {
			return nil
		}

		if err := b.poll(ctx); err != nil {
			return err
		}
	}
}

// poll is a single locate, read, parse and deliver cycle.
func (b *bridge) poll(ctx context.Context) error {
	b.logger.Infow("waiting for temperature probe", "port", b.cfg.PortName)

	matches, err := locatePort(b.logger, b.cfg.PortName)
	if err != nil {
		return err
	}

	for _, port := range matches {
		b.handlePort(ctx, port)
	}

	return nil
}

func (b *bridge) handlePort(ctx context.Context, port string) {
	buf, err := readProbe(b.logger, port)
	if err != nil {
		probeOpenErrors.Inc()
		b.logger.Warnw("failed to open probe", "port", port, "error", err)
		return
	}
	probeReads.Inc()

	reading, err := ParseReading(buf)
	if err != nil {
		probeParseErrors.Inc()
		b.logger.Warnw("failed to parse reading", "port", port, "error", err)
		return
	}

	record := CreateRecord(b.clock.Now(), b.cfg.ProbeID, reading)
	if err := writeRecord(b.out, record); err != nil {
		b.logger.Debugw("failed to write record", "error", err)
	}
	observeReading(reading)

	if b.datadog != nil {
		if err := SubmitRecord(ctx, b.datadog, record); err != nil {
			b.logger.Warnw("failed to submit record to datadog", "error", err)
		}
	}

	result := deliver(ctx, b.client, b.cfg, reading)
	deliveryCounter(result.Outcome).Inc()
	b.logDelivery(result)
}

func (b *bridge) logDelivery(result DeliveryResult) {
	switch result.Outcome {
	case Delivered:
		b.logger.Infow("temp data sent to controller", "status", result.StatusCode)
	case ServerRejected:
		b.logger.Warnw("controller replied with server error", "status", result.StatusCode, "body", result.Body)
	case UnknownOutcome:
		b.logger.Warnw("controller responded with unknown error", "status", result.StatusCode, "body", result.Body)
	case TransportFailed:
		b.logger.Errorw("failed to send temp data to controller", "error", result.Err)
	}
}
