package rfpath

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type call struct {
	op   string
	line int
	arg  string
}

type fakeGPIO struct {
	calls   []call
	failOn  map[int]bool // line -> fail setValue
}

func (f *fakeGPIO) export(line int) error {
	f.calls = append(f.calls, call{op: "export", line: line})
	return nil
}

func (f *fakeGPIO) setDirection(line int, direction string) error {
	f.calls = append(f.calls, call{op: "direction", line: line, arg: direction})
	return nil
}

func (f *fakeGPIO) setValue(line int, high bool) error {
	v := "0"
	if high {
		v = "1"
	}
	f.calls = append(f.calls, call{op: "value", line: line, arg: v})
	if f.failOn != nil && f.failOn[line] {
		return fmt.Errorf("fake: write failed for gpio %d", line)
	}
	return nil
}

func TestPrepareTXDrivesPABeforeRelay(t *testing.T) {
	fake := &fakeGPIO{}
	rp := newTestRFPath(DefaultPins, fake)

	err := rp.PrepareTX(context.Background())
	assert.NoError(t, err)

	var valueOrder []call
	for _, c := range fake.calls {
		if c.op == "value" {
			valueOrder = append(valueOrder, c)
		}
	}
	assert.Equal(t, []call{
		{op: "value", line: GPIOPAEnable, arg: "1"},
		{op: "value", line: GPIOTXLED, arg: "1"},
		{op: "value", line: GPIORelayTX, arg: "1"},
	}, valueOrder)
}

func TestEndTXDrivesRelayBeforePA(t *testing.T) {
	fake := &fakeGPIO{}
	rp := newTestRFPath(DefaultPins, fake)

	err := rp.EndTX(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, []call{
		{op: "value", line: GPIORelayTX, arg: "0"},
		{op: "value", line: GPIOTXLED, arg: "0"},
		{op: "value", line: GPIOPAEnable, arg: "0"},
	}, fake.calls)
}

func TestEndTXStillAttemptsAllStepsAfterAFailure(t *testing.T) {
	fake := &fakeGPIO{failOn: map[int]bool{GPIORelayTX: true}}
	rp := newTestRFPath(DefaultPins, fake)

	err := rp.EndTX(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("gpio %d", GPIORelayTX))

	// All three lines were still written despite the relay write failing.
	assert.Len(t, fake.calls, 3)
}

func TestPrepareTXExportsOnlyOnce(t *testing.T) {
	fake := &fakeGPIO{}
	rp := newTestRFPath(DefaultPins, fake)

	assert.NoError(t, rp.PrepareTX(context.Background()))
	assert.NoError(t, rp.PrepareTX(context.Background()))

	var exportCount int
	for _, c := range fake.calls {
		if c.op == "export" {
			exportCount++
		}
	}
	assert.Equal(t, 4, exportCount)
}
