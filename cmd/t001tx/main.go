// Command t001tx builds one COSPAS-SARSAT T.001 distress-beacon frame,
// renders its I/Q waveform, and transmits it: bracketed by RF path
// control (PA enable, TX/RX relay) and handed to a radio driver.
//
// This binary wires no real SDR backend (see hardware/radio's package
// documentation); it ships with LoggingRadioDriver,
// which records the request and logs it, so the full pipeline — frame
// build, validation, waveform synthesis, RF path bracketing — can be
// exercised end to end without hardware.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/moricef/ARM-SARSAT-FGB/hardware/radio"
	"github.com/moricef/ARM-SARSAT-FGB/hardware/rfpath"
	"github.com/moricef/ARM-SARSAT-FGB/pkg/gpsfix"
	"github.com/moricef/ARM-SARSAT-FGB/pkg/t001"
)

var (
	lat          float64
	lon          float64
	alt          float64
	beaconIDHex  string
	modeFlag     string
	centerFreq   uint64
	attenDB      float64
	gpsPort      string
	gpsBaud      int
	gpsTimeout   time.Duration
	once         bool
)

func init() {
	flag.Float64Var(&lat, "lat", 0, "Latitude in degrees, -90..+90 (ignored if -gps-port yields a valid fix)")
	flag.Float64Var(&lon, "lon", 0, "Longitude in degrees, -180..+180")
	flag.Float64Var(&alt, "alt", 0, "Altitude in metres")
	flag.StringVar(&beaconIDHex, "beacon-id", "0", "26-bit beacon identifier, hex")
	flag.StringVar(&modeFlag, "mode", "exercise", "Sync pattern: exercise or test")
	flag.Uint64Var(&centerFreq, "center-freq", radio.FreqExercise, "Centre frequency in Hz (403000000 or 406000000)")
	flag.Float64Var(&attenDB, "atten-db", 0, "Transmit attenuation in dB")
	flag.StringVar(&gpsPort, "gps-port", "", "Optional serial port for a live GPS fix (e.g. /dev/ttyUSB0)")
	flag.IntVar(&gpsBaud, "gps-baud", 38400, "Baud rate for -gps-port")
	flag.DurationVar(&gpsTimeout, "gps-timeout", 5*time.Second, "How long to wait for a live GPS fix before falling back to -lat/-lon/-alt")
	flag.BoolVar(&once, "once", true, "Transmit exactly once and exit")
}

func main() {
	flag.Parse()

	if !once {
		fmt.Fprintln(os.Stderr, "repeated transmission scheduling is outside this core's scope; pass -once or wrap this binary in your own scheduler")
		os.Exit(2)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	runID := uuid.New()
	entry := log.WithField("run_id", runID)

	cfg, err := buildConfig(entry)
	if err != nil {
		entry.Fatalf("configuration error: %v", err)
	}

	params := radio.Params{
		SampleRate:    2_500_000,
		CenterFreqHz:  centerFreq,
		AttenuationDB: attenDB,
	}
	if err := radio.ValidateParams(params); err != nil {
		entry.Fatalf("invalid radio parameters: %v", err)
	}

	if err := transmit(entry, cfg, params); err != nil {
		entry.Fatalf("transmission failed: %v", err)
	}
}

func buildConfig(log *logrus.Entry) (t001.BeaconConfig, error) {
	beaconID, err := strconv.ParseUint(beaconIDHex, 16, 32)
	if err != nil {
		return t001.BeaconConfig{}, fmt.Errorf("parse -beacon-id: %w", err)
	}

	mode := t001.Exercise
	switch modeFlag {
	case "exercise":
		mode = t001.Exercise
	case "test":
		mode = t001.Test
	default:
		return t001.BeaconConfig{}, fmt.Errorf("unsupported -mode %q, want exercise or test", modeFlag)
	}

	cfg := t001.BeaconConfig{
		Latitude: lat, Longitude: lon, Altitude: alt,
		BeaconID: uint32(beaconID) & 0x3FFFFFF,
		Mode:     mode,
	}

	if gpsPort == "" {
		return cfg, nil
	}

	src, err := gpsfix.Open(gpsPort, gpsBaud)
	if err != nil {
		log.WithError(err).Warn("could not open GPS port, falling back to configured position")
		return cfg, nil
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), gpsTimeout)
	defer cancel()

	fix, err := src.Read(ctx)
	if err != nil || !fix.Valid {
		log.WithError(err).Warn("no valid GPS fix before timeout, falling back to configured position")
		return cfg, nil
	}

	log.WithFields(logrus.Fields{"lat": fix.Latitude, "lon": fix.Longitude, "alt": fix.Altitude}).Info("using live GPS fix")
	cfg.Latitude = fix.Latitude
	cfg.Longitude = fix.Longitude
	cfg.Altitude = fix.Altitude
	return cfg, nil
}

func transmit(log *logrus.Entry, cfg t001.BeaconConfig, params radio.Params) error {
	f := t001.BuildFrame(cfg)
	if !t001.ValidateFrame(f) {
		return fmt.Errorf("built frame failed BCH validation, this is a builder bug, not a configuration problem")
	}
	log.Info("frame built and validated")

	wf := t001.GenerateWaveform(f)
	log.WithField("samples", len(wf.Samples)).Info("waveform synthesized")

	path := rfpath.NewSysfsRFPath(rfpath.DefaultPins)
	driver := &radio.LoggingRadioDriver{}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sigCh
		log.Warn("interrupt received, cancelling after current transmission")
		cancel()
	}()

	if err := path.PrepareTX(ctx); err != nil {
		if endErr := path.EndTX(ctx); endErr != nil {
			log.WithError(endErr).Error("rf path end_tx reported an error")
		}
		return fmt.Errorf("rf path: %w", err)
	}

	txErr := driver.Transmit(ctx, wf, params)

	if endErr := path.EndTX(ctx); endErr != nil {
		log.WithError(endErr).Error("rf path end_tx reported an error")
	}

	if txErr != nil {
		return fmt.Errorf("radio: %w", txErr)
	}
	log.Info("transmission complete")
	return nil
}
