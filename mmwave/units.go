package mmwave

import "math"

const (
	// SpeedOfLight in m/s
	SpeedOfLight = 3e8

	// RFFreqScaleFactor for 76-81 GHz and 60-64 GHz devices
	RFFreqScale77GHz = 3.6
	RFFreqScale60GHz = 2.7

	freqConstDivisor  = 1 << 26
	slopeConstFactor  = 1e3 * 900
	timeConstPerUs    = 100    // 10 ns LSB
	periodConstPerMs  = 200000 // 5 ns LSB
	bytesPerComplex16 = 4
)

// StartFreqHz converts a start frequency register value to Hz.
func StartFreqHz(c uint32, rfFreqScaleFactor float64) float64 {
	return float64(c) * rfFreqScaleFactor * 1e9 / freqConstDivisor
}

// StartFreqConst converts a start frequency in GHz to its register value.
func StartFreqConst(ghz, rfFreqScaleFactor float64) uint32 {
	return uint32(math.Round(ghz * freqConstDivisor / rfFreqScaleFactor))
}

// FreqSlopeHzPerSec converts a slope register value to Hz/s.
func FreqSlopeHzPerSec(c int16, rfFreqScaleFactor float64) float64 {
	mhzPerUs := float64(c) * rfFreqScaleFactor * slopeConstFactor / freqConstDivisor
	return mhzPerUs * 1e12
}

// FreqSlopeConst converts a slope in MHz/us to its register value. Values
// outside the int16 range saturate.
func FreqSlopeConst(mhzPerUs, rfFreqScaleFactor float64) int16 {
	v := math.Round(mhzPerUs * freqConstDivisor / (rfFreqScaleFactor * slopeConstFactor))
	return int16(max(math.MinInt16, min(math.MaxInt16, v)))
}

// Longest times in microseconds the unsigned and signed 10 ns registers hold.
const (
	MaxTimeUs        = float64(math.MaxUint32) / timeConstPerUs
	MaxTxStartTimeUs = float64(math.MaxInt32) / timeConstPerUs
)

// MaxStartFreqGHz is the highest start frequency a register value can encode.
func MaxStartFreqGHz(rfFreqScaleFactor float64) float64 {
	return StartFreqHz(math.MaxUint32, rfFreqScaleFactor) / 1e9
}

// TimeConst converts microseconds to a 10 ns register value.
func TimeConst(us float64) uint32 {
	return uint32(math.Round(us * timeConstPerUs))
}

// TimeConstMs converts a 10 ns register value to milliseconds.
func TimeConstMs(c uint32) float64 {
	return float64(c) / timeConstPerUs / 1e3
}

// PeriodicityConst converts milliseconds to a 5 ns register value.
func PeriodicityConst(ms float64) uint32 {
	return uint32(math.Round(ms * periodConstPerMs))
}

// PeriodicityMs converts a 5 ns register value to milliseconds.
func PeriodicityMs(c uint32) float64 {
	return float64(c) / periodConstPerMs
}

// BytesPerSample is the ADCBuf footprint of one complex 16-bit sample.
func BytesPerSample() uint32 {
	return bytesPerComplex16
}

// TxStartTimeConst converts a possibly negative Tx start time in
// microseconds to a 10 ns register value.
func TxStartTimeConst(us float64) int32 {
	return int32(math.Round(us * timeConstPerUs))
}

// MaxFreqSlope is the steepest slope in MHz/us a register value can encode.
func MaxFreqSlope(rfFreqScaleFactor float64) float64 {
	return math.MaxInt16 * rfFreqScaleFactor * slopeConstFactor / freqConstDivisor
}
