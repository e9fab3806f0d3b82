package waveform

// besselState holds the direct-form-II biquad registers for one channel:
// two delayed inputs and two delayed outputs.
type besselState struct {
	x1, x2 float64
	y1, y2 float64
}

// Second-order Bessel low-pass filter coefficients, Fc=800kHz, Fs=2.5MHz,
// matching the analog Bessel active filter this digital stage replaces.
const (
	besselB0 = 0.2693698845
	besselB1 = 0.5387397691
	besselB2 = 0.2693698845
	besselA1 = 0.0056757937
	besselA2 = 0.0718037444
)

func (s *besselState) step(x float64) float64 {
	y := besselB0*x + besselB1*s.x1 + besselB2*s.x2 - besselA1*s.y1 - besselA2*s.y2
	s.x2 = s.x1
	s.x1 = x
	s.y2 = s.y1
	s.y1 = y
	return y
}

// besselPair carries independent filter state for the I and Q channels. A
// fresh besselPair is used for every waveform synthesis; it is never fed
// the carrier preamble, only the data window.
type besselPair struct {
	i, q besselState
}

func (p *besselPair) process(i, q int16) (int16, int16) {
	fi := p.i.step(float64(i))
	fq := p.q.step(float64(q))
	return clampInt16(fi), clampInt16(fq)
}

func clampInt16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
