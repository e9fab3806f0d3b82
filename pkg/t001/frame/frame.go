// Package frame assembles the 144-bit T.001 message frame: fixed fields,
// the position encoding, and the two BCH-protected data windows.
package frame

import (
	"github.com/moricef/ARM-SARSAT-FGB/pkg/t001/bch"
	"github.com/moricef/ARM-SARSAT-FGB/pkg/t001/config"
	"github.com/moricef/ARM-SARSAT-FGB/pkg/t001/position"
)

// Sync patterns for bits 16..24.
const (
	syncExercise = 0b000101111
	syncTest     = 0b011010000

	formatLong         = 1
	protocolLocation   = 0
	protocolCodeELTDT  = 0b1001
)

// Bit positions, 1-based, matching T.001 field boundaries exactly.
const (
	preambleStart, preambleLen = 1, 15
	syncStart, syncLen         = 16, 9
	formatStart                = 25
	protoFlagStart             = 26
	countryStart, countryLen   = 27, 10
	protoCodeStart, protoLen   = 37, 4
	beaconIDStart, beaconIDLen = 41, 26
	coarseStart, coarseLen     = 67, 19
	bch1Start, bch1Len         = 86, 21
	activationStart            = 107
	altitudeStart, altitudeLen = 109, 4
	freshnessStart             = 113
	offsetStart, offsetLen     = 115, 18
	bch2Start, bch2Len         = 133, 12

	pdf1Start, pdf1Len = 25, 61 // covers bits 25..85
	pdf2Start, pdf2Len = 107, 26 // covers bits 107..132
)

// Build assembles a complete, BCH-protected T.001 frame from cfg.
func Build(cfg config.BeaconConfig) Frame {
	var f Frame

	f.Set(preambleStart, preambleLen, (1<<preambleLen)-1)
	f.Set(syncStart, syncLen, syncPattern(cfg.Mode))
	f.Set(formatStart, 1, formatLong)
	f.Set(protoFlagStart, 1, protocolLocation)
	f.Set(countryStart, countryLen, uint64(cfg.EffectiveCountryCode()))
	f.Set(protoCodeStart, protoLen, protocolCodeELTDT)
	f.Set(beaconIDStart, beaconIDLen, uint64(cfg.BeaconID)&((1<<beaconIDLen)-1))

	pos := position.Encode(cfg.Latitude, cfg.Longitude, cfg.Altitude)
	f.Set(coarseStart, coarseLen, uint64(pos.Coarse19))

	pdf1 := f.Get(pdf1Start, pdf1Len)
	parity1 := bch.Encode(bch.PDF1, pdf1)
	f.Set(bch1Start, bch1Len, uint64(parity1))

	f.Set(activationStart, 2, uint64(cfg.EffectiveActivationSource()))
	f.Set(altitudeStart, altitudeLen, uint64(pos.Altitude))
	f.Set(freshnessStart, 2, uint64(cfg.EffectiveFreshness()))
	f.Set(offsetStart, offsetLen, uint64(pos.Offset18))

	pdf2 := f.Get(pdf2Start, pdf2Len)
	parity2 := bch.Encode(bch.PDF2, pdf2)
	f.Set(bch2Start, bch2Len, uint64(parity2))

	return f
}

// Validate recomputes both BCH parities over the stored data windows and
// reports whether they match the parities present in f.
func Validate(f Frame) bool {
	pdf1 := f.Get(pdf1Start, pdf1Len)
	want1 := bch.Encode(bch.PDF1, pdf1)
	if f.Get(bch1Start, bch1Len) != uint64(want1) {
		return false
	}

	pdf2 := f.Get(pdf2Start, pdf2Len)
	want2 := bch.Encode(bch.PDF2, pdf2)
	return f.Get(bch2Start, bch2Len) == uint64(want2)
}

func syncPattern(mode config.Mode) uint64 {
	if mode == config.Test {
		return syncTest
	}
	return syncExercise
}
