// Package report renders derived sub-frame parameters for people (text) and
// for tools (YAML, JSON).
package report

import (
	"fmt"

	"github.com/jrwynneiii/mmwrf/mmwave"
	"github.com/jrwynneiii/mmwrf/rfparser"
	"gonum.org/v1/gonum/floats"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("report.Format: unknown format %q", s)
}

// SubFrame is one derived sub-frame plus the figures implied by it.
type SubFrame struct {
	Index              uint8 `yaml:"index" json:"index"`
	rfparser.OutParams `yaml:",inline"`

	MaxRange    float64 `yaml:"maxRange" json:"maxRange"`       // m
	MaxVelocity float64 `yaml:"maxVelocity" json:"maxVelocity"` // m/s

	// Time the front-end spends chirping per frame and its share of the
	// frame period.
	ActiveTime float64 `yaml:"activeTime" json:"activeTime"` // ms
	DutyCycle  float64 `yaml:"dutyCycle" json:"dutyCycle"`   // percent

	// Share of one ADCBuf ping-pong half filled per chirp event.
	ADCBufUtilization float64 `yaml:"adcBufUtilization" json:"adcBufUtilization"` // percent
}

// Summary aggregates every sub-frame of a frame.
type Summary struct {
	FramePeriod     float64 `yaml:"framePeriod" json:"framePeriod"` // ms
	ActiveTime      float64 `yaml:"activeTime" json:"activeTime"`   // ms
	DutyCycle       float64 `yaml:"dutyCycle" json:"dutyCycle"`     // percent
	FinestRangeStep float64 `yaml:"finestRangeStep" json:"finestRangeStep"`
	MaxRange        float64 `yaml:"maxRange" json:"maxRange"`
	MaxVelocity     float64 `yaml:"maxVelocity" json:"maxVelocity"`
}

type Report struct {
	Platform          string     `yaml:"platform" json:"platform"`
	RFFreqScaleFactor float64    `yaml:"rfFreqScaleFactor" json:"rfFreqScaleFactor"`
	SubFrames         []SubFrame `yaml:"subFrames" json:"subFrames"`
	Summary           Summary    `yaml:"summary" json:"summary"`
}

// ADCBufUtilization returns the percentage of one ADCBuf ping-pong half a
// chirp event fills on the given platform.
func ADCBufUtilization(out *rfparser.OutParams, platform *mmwave.Platform) float64 {
	if platform.ADCBufMemSize == 0 {
		return 0
	}
	used := float64(out.ADCBufChanDataSize) * float64(out.NumRxAntennas) * float64(out.NumChirpsPerChirpEvent)
	return used / float64(platform.ADCBufMemSize) * 100
}

func NewSubFrame(idx uint8, out *rfparser.OutParams, platform *mmwave.Platform) SubFrame {
	sf := SubFrame{
		Index:             idx,
		OutParams:         *out,
		MaxRange:          out.MaxRange(),
		MaxVelocity:       out.MaxVelocity(),
		ActiveTime:        float64(out.NumChirpsPerFrame) * out.ChirpInterval,
		ADCBufUtilization: ADCBufUtilization(out, platform),
	}
	if out.FramePeriod > 0 {
		sf.DutyCycle = sf.ActiveTime / out.FramePeriod * 100
	}
	return sf
}

// New builds a report for consecutive sub-frames starting at firstIdx.
func New(platform *mmwave.Platform, rfFreqScaleFactor float64, firstIdx uint8, params ...*rfparser.OutParams) *Report {
	r := &Report{
		Platform:          platform.Name,
		RFFreqScaleFactor: rfFreqScaleFactor,
		SubFrames:         make([]SubFrame, 0, len(params)),
	}
	for i, out := range params {
		r.SubFrames = append(r.SubFrames, NewSubFrame(firstIdx+uint8(i), out, platform))
	}
	r.Summary = summarize(r.SubFrames)
	return r
}

func summarize(subFrames []SubFrame) Summary {
	if len(subFrames) == 0 {
		return Summary{}
	}

	n := len(subFrames)
	periods := make([]float64, n)
	active := make([]float64, n)
	rangeSteps := make([]float64, n)
	ranges := make([]float64, n)
	velocities := make([]float64, n)
	for i := range subFrames {
		sf := &subFrames[i]
		periods[i] = sf.FramePeriod
		active[i] = sf.ActiveTime
		rangeSteps[i] = sf.RangeStep
		ranges[i] = sf.MaxRange
		velocities[i] = sf.MaxVelocity
	}

	s := Summary{
		FramePeriod:     floats.Sum(periods),
		ActiveTime:      floats.Sum(active),
		FinestRangeStep: floats.Min(rangeSteps),
		MaxRange:        floats.Max(ranges),
		MaxVelocity:     floats.Max(velocities),
	}
	if s.FramePeriod > 0 {
		s.DutyCycle = s.ActiveTime / s.FramePeriod * 100
	}
	return s
}
