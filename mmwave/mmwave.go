// Package mmwave holds the raw, register-level radar control configuration
// that an application programs into the mmWave front-end, plus the platform
// table describing antenna geometry and hardware limits.
package mmwave

import "fmt"

// Compile-time bounds of the largest supported device family. Platforms may
// use fewer channels but never more.
const (
	NumRxChannels   = 4
	NumTxAntennas   = 3
	MaxUniqueChirps = 32
	MaxSubFrames    = 4
)

type DFEMode int

const (
	DFEModeFrame DFEMode = iota
	DFEModeAdvancedFrame
)

func (m DFEMode) String() string {
	switch m {
	case DFEModeFrame:
		return "frame"
	case DFEModeAdvancedFrame:
		return "advanced"
	}
	return fmt.Sprintf("DFEMode(%d)", int(m))
}

// ParseDFEMode accepts the names produced by DFEMode.String.
func ParseDFEMode(s string) (DFEMode, error) {
	switch s {
	case "frame", "":
		return DFEModeFrame, nil
	case "advanced", "advanced_frame":
		return DFEModeAdvancedFrame, nil
	}
	return DFEModeFrame, fmt.Errorf("mmwave.DFEMode: unknown mode %q", s)
}

type ADCBits int

const (
	ADCBits12 ADCBits = iota
	ADCBits14
	ADCBits16
)

// Width returns the sample word width in bits.
func (b ADCBits) Width() int {
	switch b {
	case ADCBits12:
		return 12
	case ADCBits14:
		return 14
	case ADCBits16:
		return 16
	}
	return 0
}

func (b ADCBits) String() string {
	if w := b.Width(); w != 0 {
		return fmt.Sprintf("%dbit", w)
	}
	return fmt.Sprintf("ADCBits(%d)", int(b))
}

// ParseADCBits maps a word width in bits to its register value.
func ParseADCBits(width int) (ADCBits, error) {
	switch width {
	case 12:
		return ADCBits12, nil
	case 14:
		return ADCBits14, nil
	case 16:
		return ADCBits16, nil
	}
	return ADCBits16, fmt.Errorf("mmwave.ADCBits: unsupported width %d", width)
}

type ADCOutFormat int

const (
	ADCOutReal ADCOutFormat = iota
	ADCOutComplex1x
	ADCOutComplex2x
	ADCOutPseudoReal
)

var adcOutFormatNames = map[ADCOutFormat]string{
	ADCOutReal:       "real",
	ADCOutComplex1x:  "complex1x",
	ADCOutComplex2x:  "complex2x",
	ADCOutPseudoReal: "pseudo-real",
}

func (f ADCOutFormat) String() string {
	if name, ok := adcOutFormatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("ADCOutFormat(%d)", int(f))
}

// IsComplex reports whether the front-end delivers I and Q samples.
func (f ADCOutFormat) IsComplex() bool {
	return f == ADCOutComplex1x || f == ADCOutComplex2x
}

func ParseADCOutFormat(s string) (ADCOutFormat, error) {
	for f, name := range adcOutFormatNames {
		if name == s {
			return f, nil
		}
	}
	return ADCOutComplex1x, fmt.Errorf("mmwave.ADCOutFormat: unknown format %q", s)
}

// ADCBufFormat is the sample format the ADCBuf driver stores in memory.
type ADCBufFormat int

const (
	ADCBufComplex ADCBufFormat = iota
	ADCBufReal
)

func (f ADCBufFormat) String() string {
	switch f {
	case ADCBufComplex:
		return "complex"
	case ADCBufReal:
		return "real"
	}
	return fmt.Sprintf("ADCBufFormat(%d)", int(f))
}

func ParseADCBufFormat(s string) (ADCBufFormat, error) {
	switch s {
	case "complex", "":
		return ADCBufComplex, nil
	case "real":
		return ADCBufReal, nil
	}
	return ADCBufComplex, fmt.Errorf("mmwave.ADCBufFormat: unknown format %q", s)
}
