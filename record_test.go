package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRecord(t *testing.T) {
	ts := time.Date(2023, 6, 16, 14, 3, 27, 0, time.UTC)
	record := CreateRecord(ts, 7, TemperatureReading{Humidity: 45, Temperature: 22})

	var buf bytes.Buffer
	require.NoError(t, writeRecord(&buf, record))
	assert.Equal(t, `{"timestamp":"2023-06-16T14:03:27Z","probe_id":7,"humidity":45,"temperature":22}`+"\n", buf.String())
}
