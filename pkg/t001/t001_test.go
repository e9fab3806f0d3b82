package t001

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestE2AndorraEndToEnd exercises the full pipeline for a realistic fix,
// matching the distilled specification's E2 scenario.
func TestE2AndorraEndToEnd(t *testing.T) {
	cfg := BeaconConfig{
		Latitude: 42.95463, Longitude: 1.364479, Altitude: 1080,
		BeaconID: 0x123456, Mode: Exercise,
	}

	f := BuildFrame(cfg)
	assert.True(t, ValidateFrame(f))

	wf := GenerateWaveform(f)
	assert.Len(t, wf.Samples, 1298560)
}

// TestE3TestModeEndToEnd matches E3: identical fix, TEST mode, still valid.
func TestE3TestModeEndToEnd(t *testing.T) {
	cfg := BeaconConfig{
		Latitude: 42.95463, Longitude: 1.364479, Altitude: 1080,
		BeaconID: 0x123456, Mode: Test,
	}
	f := BuildFrame(cfg)
	assert.True(t, ValidateFrame(f))
}

// TestE5ConfigRangeStillProducesAValidFrame matches E5: an out-of-range
// latitude degrades the position encoding to zero but never breaks the
// frame's BCH invariants.
func TestE5ConfigRangeStillProducesAValidFrame(t *testing.T) {
	cfg := BeaconConfig{Latitude: 90.1, Longitude: 0}
	f := BuildFrame(cfg)
	assert.True(t, ValidateFrame(f))
}

func ExampleBuildFrame() {
	cfg := BeaconConfig{
		Latitude: 42.95463, Longitude: 1.364479, Altitude: 1080,
		BeaconID: 0x123456, Mode: Exercise,
	}
	f := BuildFrame(cfg)
	wf := GenerateWaveform(f)
	_ = wf
	// Output:
}
