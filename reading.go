package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// TemperatureReading is one sample reported by the probe.
type TemperatureReading struct {
	Humidity    int `json:"humidity"`
	Temperature int `json:"temperature"`
}

// ParseError is returned when a buffer read from the probe does not contain a
// usable reading.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse reading `%v`: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// the probe separates lines with CRLF; the first line is usually a banner or
// the tail of the previous buffer.
const lineSeparator = "\r\n"

// ParseReading extracts a reading from one raw buffer read from the probe.
func ParseReading(raw []byte) (TemperatureReading, error) {
	text := strings.Trim(strings.ToValidUTF8(string(raw), "\uFFFD"), "\x00\r\n")

	payload := text
	if lines := strings.Split(text, lineSeparator); len(lines) >= 2 {
		payload = lines[1]
	}

	reading, err := decodeReading(payload)
	if err != nil {
		return TemperatureReading{}, &ParseError{Text: payload, Err: err}
	}

	return reading, nil
}

// decodeReading accepts exactly one JSON object. Keys are matched case
// sensitively, each known key may appear once and values must fit in 32 bits;
// unknown keys are skipped.
func decodeReading(payload string) (TemperatureReading, error) {
	dec := json.NewDecoder(strings.NewReader(payload))

	if err := expectDelim(dec, '{'); err != nil {
		return TemperatureReading{}, err
	}

	values := map[string]json.RawMessage{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return TemperatureReading{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return TemperatureReading{}, fmt.Errorf("expected object key, got %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return TemperatureReading{}, err
		}

		if key != "humidity" && key != "temperature" {
			continue
		}
		if _, dup := values[key]; dup {
			return TemperatureReading{}, fmt.Errorf("duplicate field `%s`", key)
		}
		values[key] = value
	}

	if err := expectDelim(dec, '}'); err != nil {
		return TemperatureReading{}, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return TemperatureReading{}, err
		}
		return TemperatureReading{}, fmt.Errorf("trailing characters after reading: %v", tok)
	}

	humidity, err := decodeField(values, "humidity")
	if err != nil {
		return TemperatureReading{}, err
	}
	temperature, err := decodeField(values, "temperature")
	if err != nil {
		return TemperatureReading{}, err
	}

	return TemperatureReading{
		Humidity:    int(humidity),
		Temperature: int(temperature),
	}, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected `%v`, got %v", want, tok)
	}
	return nil
}

func decodeField(values map[string]json.RawMessage, key string) (int32, error) {
	raw, ok := values[key]
	if !ok {
		return 0, fmt.Errorf("missing field `%s`", key)
	}
	// null would leave the value untouched
	if string(raw) == "null" {
		return 0, fmt.Errorf("invalid type: null for field `%s`, expected i32", key)
	}

	var v int32
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("field `%s`: %v", key, err)
	}
	return v, nil
}
