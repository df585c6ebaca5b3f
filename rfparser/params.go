package rfparser

import "github.com/jrwynneiii/mmwrf/mmwave"

// AntennaUnused marks a slot of RxAntOrder/TxAntOrder with no antenna.
const AntennaUnused uint8 = 0xFF

// OutParams is the fully resolved parameter set of one sub-frame.
type OutParams struct {
	ValidProfileIdx              uint8 `yaml:"validProfileIdx" json:"validProfileIdx"`
	ValidProfileHasOneTxPerChirp bool  `yaml:"validProfileHasOneTxPerChirp" json:"validProfileHasOneTxPerChirp"`

	// ADCBuf raises a chirp event every this many chirps
	NumChirpsPerChirpEvent uint8 `yaml:"numChirpsPerChirpEvent" json:"numChirpsPerChirpEvent"`

	NumADCSamples uint16 `yaml:"numAdcSamples" json:"numAdcSamples"`

	NumRxAntennas uint8                       `yaml:"numRxAntennas" json:"numRxAntennas"`
	RxAntOrder    [mmwave.NumRxChannels]uint8 `yaml:"rxAntOrder" json:"rxAntOrder"`
	TxAntOrder    [mmwave.NumTxAntennas]uint8 `yaml:"txAntOrder" json:"txAntOrder"`
	NumTxAntennas uint8                       `yaml:"numTxAntennas" json:"numTxAntennas"`

	NumVirtualAntennas uint8 `yaml:"numVirtualAntennas" json:"numVirtualAntennas"`
	NumVirtualAntAzim  uint8 `yaml:"numVirtualAntAzim" json:"numVirtualAntAzim"`
	NumVirtualAntElev  uint8 `yaml:"numVirtualAntElev" json:"numVirtualAntElev"`

	// Smallest power of two >= NumADCSamples
	NumRangeBins      uint16 `yaml:"numRangeBins" json:"numRangeBins"`
	NumChirpsPerFrame uint16 `yaml:"numChirpsPerFrame" json:"numChirpsPerFrame"`

	// Bytes per Rx channel, 16-byte aligned for the ADCBuf driver
	ADCBufChanDataSize uint32 `yaml:"adcBufChanDataSize" json:"adcBufChanDataSize"`

	// NumChirpsPerFrame / NumTxAntennas
	NumDopplerChirps uint16 `yaml:"numDopplerChirps" json:"numDopplerChirps"`
	NumDopplerBins   uint16 `yaml:"numDopplerBins" json:"numDopplerBins"`

	RangeStep     float64 `yaml:"rangeStep" json:"rangeStep"`         // m
	DopplerStep   float64 `yaml:"dopplerStep" json:"dopplerStep"`     // m/s
	FramePeriod   float64 `yaml:"framePeriod" json:"framePeriod"`     // ms
	ChirpInterval float64 `yaml:"chirpInterval" json:"chirpInterval"` // ms
	Bandwidth     float64 `yaml:"bandwidth" json:"bandwidth"`         // Hz
	CenterFreq    float64 `yaml:"centerFreq" json:"centerFreq"`       // Hz
}

// RxAntennas returns the used prefix of RxAntOrder.
func (o *OutParams) RxAntennas() []uint8 {
	return o.RxAntOrder[:o.NumRxAntennas]
}

// TxAntennas returns the used prefix of TxAntOrder.
func (o *OutParams) TxAntennas() []uint8 {
	return o.TxAntOrder[:o.NumTxAntennas]
}

// MaxRange is the largest unambiguous range in meters: one range step per
// complex ADC sample.
func (o *OutParams) MaxRange() float64 {
	return o.RangeStep * float64(o.NumADCSamples)
}

// MaxVelocity is the largest unambiguous radial velocity in m/s, i.e. half of
// the Doppler span covered by NumDopplerChirps.
func (o *OutParams) MaxVelocity() float64 {
	return o.DopplerStep * float64(o.NumDopplerChirps) / 2
}
