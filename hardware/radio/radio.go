// Package radio defines the collaborator interface this core hands a
// finished I/Q waveform to. No real SDR backend lives here — the original
// implementation's pluto_control.c bound directly to libiio over cgo,
// which this Go core deliberately does not port; a real backend is an
// implementation of RadioDriver supplied by the application.
package radio

import (
	"context"
	"fmt"

	"github.com/moricef/ARM-SARSAT-FGB/pkg/t001/waveform"
)

// Params are the policy knobs passed to a RadioDriver for one transmission.
type Params struct {
	SampleRate    int     // fixed at 2_500_000 for this core
	CenterFreqHz  uint64  // 403_000_000 (training/exercise) or 406_000_000 (real emergency)
	AttenuationDB float64
}

// FreqExercise is the T.001 training/exercise centre frequency.
const FreqExercise uint64 = 403_000_000

// FreqEmergency is the T.001 real-emergency centre frequency.
const FreqEmergency uint64 = 406_000_000

// RadioDriver transmits one I/Q buffer exactly once, blocking until the
// buffer drains.
type RadioDriver interface {
	Transmit(ctx context.Context, wf waveform.Waveform, params Params) error
}

// LoggingRadioDriver is a RadioDriver test double that records the last
// request it received and never touches hardware. It is also useful for
// dry-run CLI invocations.
type LoggingRadioDriver struct {
	LastWaveform waveform.Waveform
	LastParams   Params
	calls        int
}

// Transmit records wf and params and returns nil.
func (d *LoggingRadioDriver) Transmit(ctx context.Context, wf waveform.Waveform, params Params) error {
	d.LastWaveform = wf
	d.LastParams = params
	d.calls++
	return nil
}

// Calls reports how many times Transmit has been invoked.
func (d *LoggingRadioDriver) Calls() int {
	return d.calls
}

// ValidateParams reports a wrapped error if params describes a
// configuration this core's waveform is not built for (wrong sample rate,
// or a centre frequency that is neither the exercise nor the emergency
// frequency).
func ValidateParams(params Params) error {
	if params.SampleRate != 0 && params.SampleRate != 2_500_000 {
		return fmt.Errorf("radio: unsupported sample rate %d, this core only generates 2.5 MSPS waveforms", params.SampleRate)
	}
	if params.CenterFreqHz != FreqExercise && params.CenterFreqHz != FreqEmergency {
		return fmt.Errorf("radio: centre frequency %d Hz is neither the exercise (%d) nor emergency (%d) T.001 frequency", params.CenterFreqHz, FreqExercise, FreqEmergency)
	}
	return nil
}
