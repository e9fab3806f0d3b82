package gpsfix

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ggaFix is the subset of an NMEA GGA sentence this package needs: a
// single-point fix quality, position, and altitude. Adapted from the
// teacher's broader NMEA sentence parser (pkg/gnssgo/nmea) and checksum
// routine (hardware/topgnss/top708/parser.go), trimmed to GGA only since a
// T.001 fix needs nothing else a GNSS receiver reports.
type ggaFix struct {
	latitude  float64
	longitude float64
	altitude  float64
	quality   int
}

// parseGGA validates an NMEA checksum and decodes a $..GGA sentence. Any
// other sentence type, a missing/mismatched checksum, or too few fields is
// reported as an error so the caller can skip the line and keep reading.
func parseGGA(sentence string) (ggaFix, error) {
	sentence = strings.TrimSpace(sentence)
	if !strings.HasPrefix(sentence, "$") {
		return ggaFix{}, errors.New("gpsfix: sentence missing '$' prefix")
	}

	star := strings.LastIndex(sentence, "*")
	if star < 0 || star+3 > len(sentence) {
		return ggaFix{}, errors.New("gpsfix: sentence missing checksum")
	}

	body := sentence[1:star]
	want := strings.ToUpper(sentence[star+1 : star+3])
	if got := nmeaChecksum(body); got != want {
		return ggaFix{}, fmt.Errorf("gpsfix: checksum mismatch: got %s want %s", got, want)
	}

	fields := strings.Split(body, ",")
	if len(fields) < 10 || !strings.HasSuffix(fields[0], "GGA") {
		return ggaFix{}, errors.New("gpsfix: not a GGA sentence")
	}

	lat, err := parseDegrees(fields[2], fields[3])
	if err != nil {
		return ggaFix{}, err
	}
	lon, err := parseDegrees(fields[4], fields[5])
	if err != nil {
		return ggaFix{}, err
	}

	quality, _ := strconv.Atoi(fields[6])
	altitude, _ := strconv.ParseFloat(fields[9], 64)

	return ggaFix{latitude: lat, longitude: lon, altitude: altitude, quality: quality}, nil
}

// nmeaChecksum XORs every byte of data and returns it as two uppercase hex
// digits, matching the T.001-irrelevant but universal NMEA 0183 checksum.
func nmeaChecksum(data string) string {
	var c byte
	for i := 0; i < len(data); i++ {
		c ^= data[i]
	}
	return fmt.Sprintf("%02X", c)
}

// parseDegrees converts an NMEA ddmm.mmmm (latitude) or dddmm.mmmm
// (longitude) coordinate plus its hemisphere letter into signed decimal
// degrees. Dividing by 100 strips exactly the two-digit minutes field
// regardless of whether one, two, or three digits of degrees precede it.
func parseDegrees(value, hemisphere string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	raw, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("gpsfix: parse coordinate %q: %w", value, err)
	}

	degrees := math.Floor(raw / 100)
	minutes := raw - degrees*100
	decimal := degrees + minutes/60

	switch strings.ToUpper(hemisphere) {
	case "S", "W":
		decimal = -decimal
	}
	return decimal, nil
}
