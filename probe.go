package main

import (
	"io"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.bug.st/serial"
)

const (
	baudRate        = 9600
	readTimeout     = 2000 * time.Millisecond
	probeBufferSize = 256
)

// probePort is the part of serial.Port the reader needs.
type probePort interface {
	io.ReadCloser
	SetReadTimeout(t time.Duration) error
}

// getPortsList and openPort are variables so tests can replace the serial
// subsystem.
var getPortsList = serial.GetPortsList

var openPort = func(portName string, mode *serial.Mode) (probePort, error) {
	return serial.Open(portName, mode)
}

// locatePort lists every serial port visible to the host and returns the ones
// named portName.
func locatePort(logger golog.Logger, portName string) ([]string, error) {
	ports, err := getPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate serial ports")
	}

	var matches []string
	for _, p := range ports {
		logger.Infow("found device", "port", p)
		if p == portName {
			matches = append(matches, p)
		}
	}

	return matches, nil
}

// readProbe opens the probe and performs a single read. A failed read is not
// an error: the buffer is returned as is and left for the parser to reject.
func readProbe(logger golog.Logger, portName string) ([]byte, error) {
	p, err := openPort(portName, &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "error connecting to port %s with a baudrate of %d", portName, baudRate)
	}
	defer func() {
		if err := p.Close(); err != nil {
			logger.Debugw("failed to close serial port", "port", portName, "error", err)
		}
	}()

	if err := p.SetReadTimeout(readTimeout); err != nil {
		return nil, errors.Wrapf(err, "failed to set read timeout on port %s", portName)
	}

	buf := make([]byte, probeBufferSize)
	if n, err := p.Read(buf); err != nil {
		logger.Debugw("serial read failed", "port", portName, "read", n, "error", err)
	}

	return buf, nil
}
