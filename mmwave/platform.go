package mmwave

import (
	"fmt"
	"maps"
	"slices"
)

// AntennaRow places a transmit antenna in the virtual array.
type AntennaRow uint8

const (
	RowAzimuth AntennaRow = iota
	RowElevation
)

func (r AntennaRow) String() string {
	if r == RowElevation {
		return "elevation"
	}
	return "azimuth"
}

func ParseAntennaRow(s string) (AntennaRow, error) {
	switch s {
	case "azimuth", "azim":
		return RowAzimuth, nil
	case "elevation", "elev":
		return RowElevation, nil
	}
	return RowAzimuth, fmt.Errorf("mmwave.AntennaRow: unknown row %q", s)
}

// Platform describes one hardware family: how many channels it has, the
// canonical order in which downstream beamforming expects them, where each
// transmitter sits in the virtual array and the ADCBuf limits.
type Platform struct {
	Name          string
	NumRxChannels uint8
	NumTxAntennas uint8

	// Only the first NumRxChannels / NumTxAntennas entries are used.
	RxOrder [NumRxChannels]uint8
	TxOrder [NumTxAntennas]uint8
	TxRows  [NumTxAntennas]AntennaRow

	MaxVirtualAntennas uint8
	MaxChirpThreshold  uint8
	ADCBufMemSize      uint32 // bytes available to one ping-pong half

	RFFreqScaleFactor float64
}

const DefaultPlatformName = "xwr68xx-isk"

var platforms = map[string]Platform{
	"xwr68xx-isk": {
		Name:               "xwr68xx-isk",
		NumRxChannels:      4,
		NumTxAntennas:      3,
		RxOrder:            [NumRxChannels]uint8{0, 1, 2, 3},
		TxOrder:            [NumTxAntennas]uint8{0, 2, 1},
		TxRows:             [NumTxAntennas]AntennaRow{RowAzimuth, RowElevation, RowAzimuth},
		MaxVirtualAntennas: 12,
		MaxChirpThreshold:  8,
		ADCBufMemSize:      0x4000,
		RFFreqScaleFactor:  RFFreqScale60GHz,
	},
	"xwr68xx-ods": {
		Name:               "xwr68xx-ods",
		NumRxChannels:      4,
		NumTxAntennas:      3,
		RxOrder:            [NumRxChannels]uint8{0, 1, 3, 2},
		TxOrder:            [NumTxAntennas]uint8{0, 1, 2},
		TxRows:             [NumTxAntennas]AntennaRow{RowAzimuth, RowElevation, RowElevation},
		MaxVirtualAntennas: 12,
		MaxChirpThreshold:  8,
		ADCBufMemSize:      0x4000,
		RFFreqScaleFactor:  RFFreqScale60GHz,
	},
	"xwr16xx": {
		Name:               "xwr16xx",
		NumRxChannels:      4,
		NumTxAntennas:      2,
		RxOrder:            [NumRxChannels]uint8{0, 1, 2, 3},
		TxOrder:            [NumTxAntennas]uint8{0, 1},
		TxRows:             [NumTxAntennas]AntennaRow{RowAzimuth, RowAzimuth},
		MaxVirtualAntennas: 8,
		MaxChirpThreshold:  8,
		ADCBufMemSize:      0x4000,
		RFFreqScaleFactor:  RFFreqScale77GHz,
	},
	"xwr18xx": {
		Name:               "xwr18xx",
		NumRxChannels:      4,
		NumTxAntennas:      3,
		RxOrder:            [NumRxChannels]uint8{0, 1, 2, 3},
		TxOrder:            [NumTxAntennas]uint8{0, 2, 1},
		TxRows:             [NumTxAntennas]AntennaRow{RowAzimuth, RowElevation, RowAzimuth},
		MaxVirtualAntennas: 12,
		MaxChirpThreshold:  8,
		ADCBufMemSize:      0x4000,
		RFFreqScaleFactor:  RFFreqScale77GHz,
	},
}

// LookupPlatform returns a copy of a built-in platform.
func LookupPlatform(name string) (*Platform, error) {
	p, ok := platforms[name]
	if !ok {
		return nil, fmt.Errorf("mmwave.Platform: unknown platform %q", name)
	}
	return &p, nil
}

// DefaultPlatform returns the platform used when none is configured.
func DefaultPlatform() *Platform {
	p := platforms[DefaultPlatformName]
	return &p
}

// PlatformNames lists the built-in platforms in lexical order.
func PlatformNames() []string {
	return slices.Sorted(maps.Keys(platforms))
}

func (p *Platform) Validate() error {
	if p.NumRxChannels == 0 || p.NumRxChannels > NumRxChannels {
		return fmt.Errorf("mmwave.Platform: rx channel count must be between 1 and %d: %d given", NumRxChannels, p.NumRxChannels)
	}
	if p.NumTxAntennas == 0 || p.NumTxAntennas > NumTxAntennas {
		return fmt.Errorf("mmwave.Platform: tx antenna count must be between 1 and %d: %d given", NumTxAntennas, p.NumTxAntennas)
	}
	if !isPermutation(p.RxOrder[:p.NumRxChannels]) {
		return fmt.Errorf("mmwave.Platform: rx order %v is not a permutation of 0..%d", p.RxOrder[:p.NumRxChannels], p.NumRxChannels-1)
	}
	if !isPermutation(p.TxOrder[:p.NumTxAntennas]) {
		return fmt.Errorf("mmwave.Platform: tx order %v is not a permutation of 0..%d", p.TxOrder[:p.NumTxAntennas], p.NumTxAntennas-1)
	}
	if p.MaxVirtualAntennas == 0 || p.MaxVirtualAntennas > p.NumRxChannels*p.NumTxAntennas {
		return fmt.Errorf("mmwave.Platform: max virtual antennas must be between 1 and %d: %d given", p.NumRxChannels*p.NumTxAntennas, p.MaxVirtualAntennas)
	}
	if p.MaxChirpThreshold == 0 {
		return fmt.Errorf("mmwave.Platform: max chirp threshold must be positive")
	}
	if p.ADCBufMemSize == 0 {
		return fmt.Errorf("mmwave.Platform: ADCBuf memory size must be positive")
	}
	if p.RFFreqScaleFactor <= 0 {
		return fmt.Errorf("mmwave.Platform: rf frequency scale factor must be positive: %g given", p.RFFreqScaleFactor)
	}
	return nil
}

// RxMask and TxMask are the channel bits that physically exist.
func (p *Platform) RxMask() uint8 {
	return uint8(1<<p.NumRxChannels) - 1
}

func (p *Platform) TxMask() uint8 {
	return uint8(1<<p.NumTxAntennas) - 1
}

func isPermutation(order []uint8) bool {
	sorted := slices.Clone(order)
	slices.Sort(sorted)
	for i, v := range sorted {
		if int(v) != i {
			return false
		}
	}
	return true
}
