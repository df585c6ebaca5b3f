package rfparser

import (
	"math"
	"math/bits"

	"github.com/jrwynneiii/mmwrf/mmwave"
)

// Upper bounds that keep NumRangeBins and NumDopplerBins representable.
const (
	MaxADCSamples     = 1 << 15
	MaxChirpsPerFrame = 1 << 15
)

type timing struct {
	numRangeBins       uint16
	numChirpsPerFrame  uint16
	numDopplerChirps   uint16
	numDopplerBins     uint16
	adcBufChanDataSize uint32

	rangeStep     float64
	dopplerStep   float64
	framePeriod   float64
	chirpInterval float64
	bandwidth     float64
	centerFreq    float64
}

func nextPow2(n uint32) uint32 {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len32(n-1)
}

func roundUp16(n uint32) uint32 {
	return (n + 15) &^ 15
}

func checkSlope(profile *mmwave.ProfileConfig) error {
	if profile.FreqSlopeConst < 0 {
		return newError(CodeNegativeFreqSlope, "profile %d slope const %d", profile.ProfileID, profile.FreqSlopeConst)
	}
	return nil
}

func checkADCFormat(open *mmwave.OpenConfig, adcBuf *mmwave.ADCBufConfig) error {
	if !open.ADCOut.Format.IsComplex() {
		return newError(CodeNonComplexADCFormat, "adc output format %s", open.ADCOut.Format)
	}
	if open.ADCOut.Bits != mmwave.ADCBits16 {
		return newError(CodeNon16BitsADC, "adc output width %s", open.ADCOut.Bits)
	}
	if adcBuf.Format != mmwave.ADCBufComplex {
		return newError(CodeNonComplexADCBufFormat, "adcbuf format %s", adcBuf.Format)
	}
	return nil
}

func computeTiming(profile *mmwave.ProfileConfig, sf *subFrame, topo *topology, rfFreqScaleFactor float64) (*timing, error) {
	if profile.NumADCSamples == 0 || profile.NumADCSamples > MaxADCSamples || profile.DigOutSampleRate == 0 {
		return nil, newError(CodeChirpNotConfigured, "profile %d samples %d at %d ksps",
			profile.ProfileID, profile.NumADCSamples, profile.DigOutSampleRate)
	}
	chirpDuration := uint64(profile.IdleTimeConst) + uint64(profile.RampEndTime)
	if chirpDuration == 0 || chirpDuration > math.MaxUint32 {
		return nil, newError(CodeChirpNotConfigured, "profile %d chirp duration %d x 10 ns out of range", profile.ProfileID, chirpDuration)
	}
	if sf.numLoops == 0 {
		return nil, newError(CodeChirpNotConfigured, "sub-frame has zero loops")
	}

	t := &timing{}

	slope := mmwave.FreqSlopeHzPerSec(profile.FreqSlopeConst, rfFreqScaleFactor)
	sampleRate := float64(profile.DigOutSampleRate) * 1e3
	t.bandwidth = slope * float64(profile.NumADCSamples) / sampleRate
	if t.bandwidth <= 0 {
		return nil, newError(CodeNegativeFreqSlope, "profile %d sweeps %g Hz", profile.ProfileID, t.bandwidth)
	}

	startFreq := mmwave.StartFreqHz(profile.StartFreqConst, rfFreqScaleFactor)
	// Sampling starts ADCStartTime into the ramp.
	sampleStart := startFreq + slope*mmwave.TimeConstMs(profile.ADCStartTimeConst)*1e-3
	t.centerFreq = (sampleStart + (sampleStart + t.bandwidth)) / 2
	t.rangeStep = mmwave.SpeedOfLight / (2 * t.bandwidth)
	t.numRangeBins = uint16(nextPow2(uint32(profile.NumADCSamples)))

	chirpsPerFrame := sf.numUniqueChirp * int(sf.numLoops)
	if chirpsPerFrame > MaxChirpsPerFrame {
		return nil, newError(CodeChirpNotConfigured, "%d chirps per frame, at most %d supported", chirpsPerFrame, MaxChirpsPerFrame)
	}
	if chirpsPerFrame%int(topo.numTx) != 0 {
		return nil, newError(CodeNumTxAntennas, "%d chirps per frame not divisible by %d tx antennas", chirpsPerFrame, topo.numTx)
	}
	t.numChirpsPerFrame = uint16(chirpsPerFrame)
	t.numDopplerChirps = t.numChirpsPerFrame / uint16(topo.numTx)
	t.numDopplerBins = uint16(nextPow2(uint32(t.numDopplerChirps)))

	t.chirpInterval = mmwave.TimeConstMs(uint32(chirpDuration))
	t.framePeriod = mmwave.PeriodicityMs(sf.periodicity)

	// A Doppler chirp repeats once every numTx chirp intervals.
	lambda := mmwave.SpeedOfLight / t.centerFreq
	dopplerPeriod := float64(topo.numTx) * t.chirpInterval * 1e-3
	t.dopplerStep = lambda / (2 * float64(t.numDopplerChirps) * dopplerPeriod)

	t.adcBufChanDataSize = roundUp16(uint32(profile.NumADCSamples) * mmwave.BytesPerSample())

	return t, nil
}

// chirpThreshold validates the configured ADCBuf chirp threshold, or picks
// the largest admissible one when none is configured.
func chirpThreshold(p *mmwave.Platform, adcBuf *mmwave.ADCBufConfig, t *timing, numRx uint8) (uint8, error) {
	bytesPerChirp := t.adcBufChanDataSize * uint32(numRx)
	maxThresh := min(uint32(p.MaxChirpThreshold), p.ADCBufMemSize/bytesPerChirp)
	if maxThresh == 0 {
		return 0, newError(CodeChirpThreshGreaterThanMax, "one chirp needs %d bytes, ADCBuf holds %d", bytesPerChirp, p.ADCBufMemSize)
	}

	thresh := uint32(adcBuf.ChirpThreshold)
	if thresh == 0 {
		thresh = maxThresh
		for uint32(t.numChirpsPerFrame)%thresh != 0 {
			thresh--
		}
		return uint8(thresh), nil
	}

	if thresh > maxThresh {
		return 0, newError(CodeChirpThreshGreaterThanMax, "threshold %d, max %d", thresh, maxThresh)
	}
	if uint32(t.numChirpsPerFrame)%thresh != 0 {
		return 0, newError(CodeNonDivisibilityOfChirpThresh, "threshold %d, %d chirps per frame", thresh, t.numChirpsPerFrame)
	}
	return uint8(thresh), nil
}
