// Package gpsfix provides an optional live position source for a T.001
// beacon transmission: it reads NMEA sentences from a serial-attached GNSS
// receiver and reduces them to the single-point (lat, lon, alt) fix the
// T.001 position encoder needs. Grounded on the teacher's
// hardware/topgnss/top708 serial device pattern and pkg/gnssgo/nmea GGA
// parsing approach, reimplemented here (see nmea.go) to return one fix
// rather than stream continuous sentences to a handler.
package gpsfix

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// portReader is the narrow interface SerialSource actually needs from a
// go.bug.st/serial.Port, so tests can supply a fake reader instead of a
// real serial port.
type portReader interface {
	io.Reader
	io.Closer
}

// Fix is a single-point GPS position, decoded from one NMEA GGA sentence.
// A Fix with Valid == false must never be used to build a T.001 frame;
// callers fall back to a manually configured position instead.
type Fix struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
	Valid     bool
	Time      time.Time
}

// Source reads fixes from a serial-attached GNSS receiver.
type Source interface {
	Read(ctx context.Context) (Fix, error)
}

// SerialSource implements Source over a go.bug.st/serial port, matching the
// 8N1 framing and default baud rate TOPGNSS-class receivers use.
type SerialSource struct {
	port    portReader
	scanner *bufio.Scanner
}

// Open opens portName at baudRate and returns a SerialSource ready to Read.
// The caller owns the returned SerialSource and must Close it.
func Open(portName string, baudRate int) (*SerialSource, error) {
	if baudRate <= 0 {
		baudRate = 38400 // matches the teacher's TOPGNSS default
	}
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("gpsfix: open %s: %w", portName, err)
	}
	port.SetReadTimeout(500 * time.Millisecond)

	return &SerialSource{
		port:    port,
		scanner: bufio.NewScanner(port),
	}, nil
}

// newTestSource is used by tests to inject a fake portReader.
func newTestSource(r portReader) *SerialSource {
	return &SerialSource{port: r, scanner: bufio.NewScanner(r)}
}

// Close releases the underlying serial port.
func (s *SerialSource) Close() error {
	return s.port.Close()
}

// Read blocks until one valid GGA sentence is decoded, ctx is cancelled, or
// the deadline in ctx expires, whichever comes first. Sentences that fail
// checksum verification or are not GGA sentences are skipped, not returned
// as errors; only a read error from the port, or a cancelled/expired ctx
// with no valid fix yet, is returned as an error.
func (s *SerialSource) Read(ctx context.Context) (Fix, error) {
	for {
		select {
		case <-ctx.Done():
			return Fix{}, fmt.Errorf("gpsfix: %w", ctx.Err())
		default:
		}

		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return Fix{}, fmt.Errorf("gpsfix: read: %w", err)
			}
			time.Sleep(10 * time.Millisecond) // no line yet, avoid busy-spinning on ctx.Done
			continue
		}

		gga, err := parseGGA(s.scanner.Text())
		if err != nil {
			continue // malformed or non-GGA sentence, try the next line
		}

		return Fix{
			Latitude:  gga.latitude,
			Longitude: gga.longitude,
			Altitude:  gga.altitude,
			Valid:     gga.quality > 0,
			Time:      time.Now(),
		}, nil
	}
}
