package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// Outcome classifies how the controller handled a delivery.
type Outcome int

const (
	Delivered Outcome = iota
	ServerRejected
	UnknownOutcome
	TransportFailed
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case ServerRejected:
		return "server_rejected"
	case UnknownOutcome:
		return "unknown"
	case TransportFailed:
		return "transport_failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// DeliveryResult describes a single POST to the controller. StatusCode is set
// whenever a response was received, Body for non-2xx responses and Err only
// for TransportFailed.
type DeliveryResult struct {
	Outcome    Outcome
	StatusCode int
	Body       string
	Err        error
}

// the controller only receives the temperature.
type deliveryBody struct {
	ID   int `json:"id"`
	Temp int `json:"temp"`
}

// deliver posts the reading to the controller once.
func deliver(ctx context.Context, client *http.Client, cfg *Config, reading TemperatureReading) DeliveryResult {
	b, err := json.Marshal(deliveryBody{ID: cfg.ProbeID, Temp: reading.Temperature})
	if err != nil {
		return DeliveryResult{Outcome: TransportFailed, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.URL, bytes.NewReader(b))
	if err != nil {
		return DeliveryResult{Outcome: TransportFailed, Err: errors.Wrap(err, "failed to build request")}
	}
	req.Header.Set("Authorization", "Bearer "+cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return DeliveryResult{Outcome: TransportFailed, Err: err}
	}
	defer res.Body.Close()

	result := DeliveryResult{StatusCode: res.StatusCode}
	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		result.Outcome = Delivered
		// drained so the connection can be reused by the next poll
		_, _ = io.Copy(io.Discard, res.Body)
		return result
	case res.StatusCode >= 500 && res.StatusCode < 600:
		result.Outcome = ServerRejected
	default:
		result.Outcome = UnknownOutcome
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		result.Body = fmt.Sprintf("<unreadable body: %v>", err)
	} else {
		result.Body = string(body)
	}

	return result
}
