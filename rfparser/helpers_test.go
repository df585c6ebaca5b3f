package rfparser

import (
	"math"
	"testing"

	"github.com/jrwynneiii/mmwrf/mmwave"
)

const testScale = mmwave.RFFreqScale60GHz

// fixture is a valid single-profile, single-chirp legacy frame on the
// default platform: 256 samples at 5 Msps, 50 MHz/us from 60.25 GHz, all
// four Rx channels and Tx0.
type fixture struct {
	open   mmwave.OpenConfig
	ctrl   mmwave.CtrlConfig
	adcBuf mmwave.ADCBufConfig
	bpm    bool
}

func newFixture() *fixture {
	return &fixture{
		open: mmwave.OpenConfig{
			Channel: mmwave.ChannelConfig{RxChannelEn: 0xF, TxChannelEn: 0x7},
			ADCOut:  mmwave.ADCOutConfig{Bits: mmwave.ADCBits16, Format: mmwave.ADCOutComplex1x},
		},
		ctrl: mmwave.CtrlConfig{
			DFEMode: mmwave.DFEModeFrame,
			Profiles: []mmwave.ProfileConfig{{
				ProfileID:         0,
				StartFreqConst:    mmwave.StartFreqConst(60.25, testScale),
				IdleTimeConst:     mmwave.TimeConst(7),
				ADCStartTimeConst: mmwave.TimeConst(6),
				RampEndTime:       mmwave.TimeConst(60),
				FreqSlopeConst:    mmwave.FreqSlopeConst(50, testScale),
				NumADCSamples:     256,
				DigOutSampleRate:  5000,
			}},
			Chirps: []mmwave.ChirpConfig{
				{ChirpStartIdx: 0, ChirpEndIdx: 0, ProfileID: 0, TxEnable: 0x1},
			},
			Frame: mmwave.FrameConfig{
				ChirpStartIdx:    0,
				ChirpEndIdx:      0,
				NumLoops:         32,
				FramePeriodicity: mmwave.PeriodicityConst(50),
			},
		},
		adcBuf: mmwave.ADCBufConfig{Format: mmwave.ADCBufComplex, ChInterleave: 1, ChirpThreshold: 1},
	}
}

// withChirps replaces the chirp table with one chirp per mask, indices
// 0..len(masks)-1, and makes the legacy frame cover all of them.
func (f *fixture) withChirps(masks ...uint8) *fixture {
	f.ctrl.Chirps = f.ctrl.Chirps[:0]
	for i, m := range masks {
		f.ctrl.Chirps = append(f.ctrl.Chirps, mmwave.ChirpConfig{
			ChirpStartIdx: uint16(i),
			ChirpEndIdx:   uint16(i),
			TxEnable:      m,
		})
	}
	f.ctrl.Frame.ChirpStartIdx = 0
	f.ctrl.Frame.ChirpEndIdx = uint16(len(masks) - 1)
	return f
}

// withAdvanced switches to advanced frame mode with the given sub-frames.
func (f *fixture) withAdvanced(subFrames ...mmwave.SubFrameConfig) *fixture {
	f.ctrl.DFEMode = mmwave.DFEModeAdvancedFrame
	f.ctrl.AdvancedFrame.NumSubFrames = uint8(len(subFrames))
	copy(f.ctrl.AdvancedFrame.SubFrames[:], subFrames)
	return f
}

func (f *fixture) parse(t *testing.T, p *Parser, subFrameIdx uint8) (*OutParams, error) {
	t.Helper()
	if p == nil {
		p = New(nil)
	}
	return p.Parse(subFrameIdx, &f.open, &f.ctrl, &f.adcBuf, testScale, f.bpm)
}

func mustParse(t *testing.T, f *fixture, p *Parser, subFrameIdx uint8) *OutParams {
	t.Helper()
	out, err := f.parse(t, p, subFrameIdx)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if out == nil {
		t.Fatal("Parse returned nil params without error")
	}
	return out
}

func approxEqual(a, b, relTol float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= relTol*math.Max(math.Abs(a), math.Abs(b))
}

func isPow2(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}
