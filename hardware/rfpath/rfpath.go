// Package rfpath toggles the external power amplifier enable line and the
// TX/RX antenna relay around a transmission, via Linux sysfs GPIO. It is
// the Go port of the original gpio_control.c / test_gpio.c collaborator.
package rfpath

import (
	"context"
	"fmt"
)

// GPIO line numbers for the Odroid-C2 carrier board this design targets.
const (
	GPIOPAEnable   = 605 // J2 pin 35
	GPIORelayTX    = 609 // J2 pin 36
	GPIOTXLED      = 610 // J2 pin 31
	GPIOStatusLED  = 615 // J2 pin 32
)

// RFPath brackets a transmission: PrepareTX enables the PA and switches the
// relay to TX before any samples reach the radio; EndTX always runs
// afterwards, in the reverse order, regardless of whether the transmission
// itself succeeded.
type RFPath interface {
	PrepareTX(ctx context.Context) error
	EndTX(ctx context.Context) error
}

// Pins names the four GPIO lines a SysfsRFPath drives. Defaults to the
// Odroid-C2 pinout above; overridable for other carrier boards.
type Pins struct {
	PAEnable  int
	RelayTX   int
	TXLED     int
	StatusLED int
}

// DefaultPins is the Odroid-C2 pinout this design was built against.
var DefaultPins = Pins{
	PAEnable:  GPIOPAEnable,
	RelayTX:   GPIORelayTX,
	TXLED:     GPIOTXLED,
	StatusLED: GPIOStatusLED,
}

// SysfsRFPath drives Pins through /sys/class/gpio, exporting each line on
// first use.
type SysfsRFPath struct {
	pins     Pins
	gpio     sysfsGPIO
	exported bool
}

// NewSysfsRFPath constructs an RFPath against the real /sys/class/gpio
// filesystem.
func NewSysfsRFPath(pins Pins) *SysfsRFPath {
	return &SysfsRFPath{pins: pins, gpio: osGPIO{}}
}

// newTestRFPath is used by tests to inject a fake sysfsGPIO.
func newTestRFPath(pins Pins, gpio sysfsGPIO) *SysfsRFPath {
	return &SysfsRFPath{pins: pins, gpio: gpio}
}

// PrepareTX exports all four lines (idempotent after the first call), then
// drives PA enable and the TX LED high before the relay, so the amplifier
// is biased before it ever sees RF.
func (r *SysfsRFPath) PrepareTX(ctx context.Context) error {
	if !r.exported {
		for _, line := range []int{r.pins.PAEnable, r.pins.RelayTX, r.pins.TXLED, r.pins.StatusLED} {
			if err := r.gpio.export(line); err != nil {
				return fmt.Errorf("rfpath: export gpio %d: %w", line, err)
			}
			if err := r.gpio.setDirection(line, "out"); err != nil {
				return fmt.Errorf("rfpath: set direction gpio %d: %w", line, err)
			}
		}
		r.exported = true
	}

	if err := r.gpio.setValue(r.pins.PAEnable, true); err != nil {
		return fmt.Errorf("rfpath: enable PA: %w", err)
	}
	if err := r.gpio.setValue(r.pins.TXLED, true); err != nil {
		return fmt.Errorf("rfpath: TX LED on: %w", err)
	}
	if err := r.gpio.setValue(r.pins.RelayTX, true); err != nil {
		return fmt.Errorf("rfpath: switch relay to TX: %w", err)
	}
	return nil
}

// EndTX drives the relay off before the PA, the inverse of PrepareTX, so
// the antenna is never connected to a biased, unmodulated PA output. It is
// always safe to call after a failed PrepareTX or Transmit; it returns the
// first error encountered but still attempts every step.
func (r *SysfsRFPath) EndTX(ctx context.Context) error {
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	record(r.gpio.setValue(r.pins.RelayTX, false))
	record(r.gpio.setValue(r.pins.TXLED, false))
	record(r.gpio.setValue(r.pins.PAEnable, false))

	if firstErr != nil {
		return fmt.Errorf("rfpath: end tx: %w", firstErr)
	}
	return nil
}
