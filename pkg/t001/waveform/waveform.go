// Package waveform renders a built T.001 frame as a 2.5 MSPS complex
// baseband I/Q sample sequence: an unmodulated carrier preamble followed by
// Biphase-L (Manchester) BPSK data, shaped by a second-order Bessel filter.
package waveform

import (
	"math"

	"github.com/moricef/ARM-SARSAT-FGB/pkg/t001/frame"
)

const (
	// SampleRate is the fixed I/Q sample rate this synthesizer emits.
	SampleRate = 2_500_000

	// Amplitude is the reduced-headroom carrier/chip amplitude, leaving
	// margin for the following filter's impulse response.
	Amplitude = 1600

	// PhaseDeviationRad is the T.001 BPSK peak phase deviation, not the
	// classical ±π/2.
	PhaseDeviationRad = 1.1

	carrierDurationMS = 160
	carrierSamples     = carrierDurationMS * SampleRate / 1000 // 400000

	chipsPerBit  = 16
	chipRate     = 6400
	totalChips   = frame.Size * chipsPerBit // 2304

	// upsampleFactor is the design's pragmatic integer truncation of the
	// nominal 390.625 samples/chip ratio.
	upsampleFactor = SampleRate / chipRate // 390

	dataSamples = totalChips * upsampleFactor // 898560

	// TotalSamples is the exact length of a generated waveform.
	TotalSamples = carrierSamples + dataSamples // 1298560
)

// Sample is one complex baseband I/Q pair as transmitted, 16-bit signed.
type Sample struct {
	I, Q int16
}

// Waveform is an owned sequence of complex samples at SampleRate.
type Waveform struct {
	Samples []Sample
}

// Generate renders f as a complete I/Q waveform: Stage A carrier preamble,
// Stage B Biphase-L chip sequence, Stage C BPSK I/Q mapping, Stage D Bessel
// smoothing of the data window only. Unlike the original implementation,
// where the equivalent allocation could return NULL, Go's make aborts the
// process on true allocation failure, so this function has no error path.
func Generate(f frame.Frame) Waveform {
	samples := make([]Sample, TotalSamples)

	for n := 0; n < carrierSamples; n++ {
		samples[n] = Sample{I: Amplitude, Q: 0}
	}

	chips := biphaseChips(f)
	var filt besselPair
	for c := 0; c < totalChips; c++ {
		i, q := bpskSample(chips[c])
		base := carrierSamples + c*upsampleFactor
		for k := 0; k < upsampleFactor; k++ {
			fi, fq := filt.process(i, q)
			samples[base+k] = Sample{I: fi, Q: fq}
		}
	}

	return Waveform{Samples: samples}
}

// biphaseChips expands f's 144 data bits into the 2304-chip Biphase-L
// sequence: a logical 0 is eight 0-chips then eight 1-chips (low-to-high
// mid-bit transition); a logical 1 is the reverse.
func biphaseChips(f frame.Frame) []byte {
	chips := make([]byte, 0, totalChips)
	for bitNum := 1; bitNum <= frame.Size; bitNum++ {
		bit := f.Bit(bitNum)
		half := chipsPerBit / 2
		if bit == 0 {
			for i := 0; i < half; i++ {
				chips = append(chips, 0)
			}
			for i := 0; i < half; i++ {
				chips = append(chips, 1)
			}
		} else {
			for i := 0; i < half; i++ {
				chips = append(chips, 1)
			}
			for i := 0; i < half; i++ {
				chips = append(chips, 0)
			}
		}
	}
	return chips
}

// bpskSample maps one chip to its BPSK I/Q pair, unfiltered.
func bpskSample(chip byte) (int16, int16) {
	phase := (2*float64(chip) - 1) * PhaseDeviationRad
	i := Amplitude * math.Cos(phase)
	q := Amplitude * math.Sin(phase)
	return clampInt16(i), clampInt16(q)
}
