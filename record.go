package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Record is what gets printed for every reading taken from the probe.
type Record struct {
	Timestamp   ISO8601Time `json:"timestamp"`
	ProbeID     int         `json:"probe_id"`
	Humidity    int         `json:"humidity"`
	Temperature int         `json:"temperature"`
}

func CreateRecord(ts time.Time, probeID int, reading TemperatureReading) *Record {
	return &Record{
		Timestamp:   ISO8601Time(ts),
		ProbeID:     probeID,
		Humidity:    reading.Humidity,
		Temperature: reading.Temperature,
	}
}

func writeRecord(w io.Writer, record *Record) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
