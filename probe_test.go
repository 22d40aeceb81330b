package main

import (
	"io"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

// fakePort serves data from a single read and records how it was used.
type fakePort struct {
	data    []byte
	readErr error
	timeout time.Duration
	closed  bool
}

func (p *fakePort) Read(b []byte) (int, error) {
	n := copy(b, p.data)
	return n, p.readErr
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func (p *fakePort) SetReadTimeout(t time.Duration) error {
	p.timeout = t
	return nil
}

// stubSerial replaces the serial subsystem for the duration of the test.
func stubSerial(t *testing.T, ports []string, listErr error, open func(string, *serial.Mode) (probePort, error)) {
	t.Helper()

	prevList, prevOpen := getPortsList, openPort
	t.Cleanup(func() {
		getPortsList, openPort = prevList, prevOpen
	})

	getPortsList = func() ([]string, error) {
		return ports, listErr
	}
	openPort = open
}

func failOpen(t *testing.T) func(string, *serial.Mode) (probePort, error) {
	return func(string, *serial.Mode) (probePort, error) {
		t.Fatal("serial port must not be opened")
		return nil, nil
	}
}

func TestLocatePort(t *testing.T) {
	logger, logs := golog.NewObservedTestLogger(t)
	stubSerial(t, []string{"/dev/ttyS0", "/dev/ttyUSB0", "/dev/ttyusb0"}, nil, failOpen(t))

	matches, err := locatePort(logger, "/dev/ttyUSB0")
	require.NoError(t, err)
	assert.Equal(t, []string{"/dev/ttyUSB0"}, matches)
	assert.Len(t, logs.FilterMessage("found device").All(), 3)
}

func TestLocatePortNoMatch(t *testing.T) {
	logger := golog.NewTestLogger(t)
	stubSerial(t, []string{"COM1", "COM4"}, nil, failOpen(t))

	matches, err := locatePort(logger, "COM3")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestLocatePortEnumerationFailure(t *testing.T) {
	logger := golog.NewTestLogger(t)
	stubSerial(t, nil, errors.New("no ports subsystem"), failOpen(t))

	_, err := locatePort(logger, "COM3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to enumerate serial ports")
}

func TestReadProbe(t *testing.T) {
	logger := golog.NewTestLogger(t)
	port := &fakePort{data: []byte("BANNER\r\n{\"humidity\":45,\"temperature\":22}")}

	var gotName string
	var gotMode *serial.Mode
	stubSerial(t, nil, nil, func(name string, mode *serial.Mode) (probePort, error) {
		gotName, gotMode = name, mode
		return port, nil
	})

	buf, err := readProbe(logger, "/dev/ttyUSB0")
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", gotName)
	assert.Equal(t, 9600, gotMode.BaudRate)
	assert.Equal(t, 2*time.Second, port.timeout)
	assert.True(t, port.closed)

	require.Len(t, buf, probeBufferSize)
	assert.Equal(t, port.data, buf[:len(port.data)])
	assert.Equal(t, make([]byte, probeBufferSize-len(port.data)), buf[len(port.data):])
}

func TestReadProbeReadErrorIsTolerated(t *testing.T) {
	logger, logs := golog.NewObservedTestLogger(t)
	port := &fakePort{readErr: io.ErrUnexpectedEOF}
	stubSerial(t, nil, nil, func(string, *serial.Mode) (probePort, error) {
		return port, nil
	})

	buf, err := readProbe(logger, "COM3")
	require.NoError(t, err)
	assert.Equal(t, make([]byte, probeBufferSize), buf)
	assert.True(t, port.closed)
	assert.Len(t, logs.FilterMessage("serial read failed").All(), 1)

	_, err = ParseReading(buf)
	assert.Error(t, err)
}

func TestReadProbeOpenFailure(t *testing.T) {
	logger := golog.NewTestLogger(t)
	stubSerial(t, nil, nil, func(string, *serial.Mode) (probePort, error) {
		return nil, &serial.PortError{}
	})

	buf, err := readProbe(logger, "COM3")
	require.Error(t, err)
	assert.Nil(t, buf)
	assert.Contains(t, err.Error(), "error connecting to port COM3 with a baudrate of 9600")
}
