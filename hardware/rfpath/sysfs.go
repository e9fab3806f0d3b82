package rfpath

import (
	"fmt"
	"os"
	"time"
)

// sysfsGPIO abstracts the three sysfs operations RFPath needs, so tests can
// run without /sys/class/gpio present.
type sysfsGPIO interface {
	export(line int) error
	setDirection(line int, direction string) error
	setValue(line int, high bool) error
}

// osGPIO implements sysfsGPIO against the real Linux sysfs GPIO interface.
type osGPIO struct{}

func (osGPIO) export(line int) error {
	// A line already exported returns EBUSY; the original gpio_control.c
	// treats that as a non-fatal warning and keeps going, since the
	// gpioN/direction and gpioN/value files it actually needs already
	// exist either way.
	_ = os.WriteFile("/sys/class/gpio/export", []byte(fmt.Sprintf("%d", line)), 0o200)
	time.Sleep(100 * time.Millisecond) // sysfs needs time to create the gpioN files
	return nil
}

func (osGPIO) setDirection(line int, direction string) error {
	path := fmt.Sprintf("/sys/class/gpio/gpio%d/direction", line)
	return os.WriteFile(path, []byte(direction), 0o200)
}

func (osGPIO) setValue(line int, high bool) error {
	path := fmt.Sprintf("/sys/class/gpio/gpio%d/value", line)
	v := "0"
	if high {
		v = "1"
	}
	return os.WriteFile(path, []byte(v), 0o200)
}
