/*
Package t001 implements the core of a COSPAS-SARSAT T.001 distress-beacon
transmitter: deterministic construction of the 144-bit T.001 message frame
and its transformation into a 2.5 MSPS complex-baseband I/Q waveform.

The package is a thin facade over four leaf packages, each pure and
dependency-ordered:

  - bch: the systematic binary BCH encoder shared by both protected data
    fields.
  - position: geodetic fix to coarse/fine position and altitude encoding.
  - frame: assembly and validation of the 144-bit frame.
  - waveform: rendering a frame to a Biphase-L/BPSK I/Q sample sequence.

Example usage:

    cfg := config.BeaconConfig{
        Latitude: 42.95463, Longitude: 1.364479, Altitude: 1080,
        BeaconID: 0x123456, Mode: config.Exercise,
    }
    f := t001.BuildFrame(cfg)
    if !t001.ValidateFrame(f) {
        log.Fatal("built an invalid frame")
    }
    wf := t001.GenerateWaveform(f)
    // wf.Samples is ready to hand to a RadioDriver.

GPIO power-amplifier/relay control and the radio driver itself are external
collaborators, not part of this package; see hardware/rfpath and
hardware/radio.
*/
package t001

import (
	"github.com/moricef/ARM-SARSAT-FGB/pkg/t001/config"
	"github.com/moricef/ARM-SARSAT-FGB/pkg/t001/frame"
	"github.com/moricef/ARM-SARSAT-FGB/pkg/t001/waveform"
)

// Re-exported so callers of this facade need only import pkg/t001.
type (
	BeaconConfig = config.BeaconConfig
	Mode         = config.Mode
	Frame        = frame.Frame
	Waveform     = waveform.Waveform
	Sample       = waveform.Sample
)

const (
	Exercise = config.Exercise
	Test     = config.Test
)

// BuildFrame assembles the 144-bit message frame for cfg. Pure.
func BuildFrame(cfg BeaconConfig) Frame {
	return frame.Build(cfg)
}

// ValidateFrame recomputes both BCH parities and reports whether they match
// the parities stored in f. Pure.
func ValidateFrame(f Frame) bool {
	return frame.Validate(f)
}

// GenerateWaveform renders f as a complete I/Q sample sequence. Pure apart
// from allocation.
func GenerateWaveform(f Frame) Waveform {
	return waveform.Generate(f)
}
