package config

import (
	"fmt"

	"github.com/jrwynneiii/mmwrf/mmwave"
)

// Radar is a validated file converted to the register-level inputs of
// rfparser.Parser.Parse.
type Radar struct {
	Platform          *mmwave.Platform
	RFFreqScaleFactor float64
	BPMEnabled        bool
	Open              mmwave.OpenConfig
	Ctrl              mmwave.CtrlConfig
	ADCBuf            mmwave.ADCBufConfig
}

// Platform converts a custom platform description.
func (p *PlatformConf) Platform() (*mmwave.Platform, error) {
	platform := &mmwave.Platform{
		Name:               p.Name,
		NumRxChannels:      uint8(p.NumRxChannels),
		NumTxAntennas:      uint8(p.NumTxAntennas),
		MaxVirtualAntennas: uint8(p.MaxVirtualAntennas),
		MaxChirpThreshold:  uint8(p.MaxChirpThreshold),
		ADCBufMemSize:      uint32(p.ADCBufMemSize),
		RFFreqScaleFactor:  p.RFFreqScaleFactor,
	}
	for i, rx := range p.RxOrder[:min(len(p.RxOrder), mmwave.NumRxChannels)] {
		platform.RxOrder[i] = uint8(rx)
	}
	for i, tx := range p.TxOrder[:min(len(p.TxOrder), mmwave.NumTxAntennas)] {
		platform.TxOrder[i] = uint8(tx)
	}
	for i, name := range p.TxRows[:min(len(p.TxRows), mmwave.NumTxAntennas)] {
		row, err := mmwave.ParseAntennaRow(name)
		if err != nil {
			return nil, fmt.Errorf("config.PlatformConf: %w", err)
		}
		platform.TxRows[i] = row
	}
	return platform, nil
}

// Build validates the file and converts it to register units.
func (f *File) Build() (*Radar, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	r := &Radar{BPMEnabled: f.BPMEnabled}

	var err error
	if f.CustomPlatform != nil {
		r.Platform, err = f.CustomPlatform.Platform()
	} else {
		r.Platform, err = mmwave.LookupPlatform(f.Platform)
	}
	if err != nil {
		return nil, err
	}

	r.RFFreqScaleFactor = f.RFFreqScaleFactor
	if r.RFFreqScaleFactor == 0 {
		r.RFFreqScaleFactor = r.Platform.RFFreqScaleFactor
	}

	bits, _ := mmwave.ParseADCBits(f.ADCOut.Bits)
	outFormat, _ := mmwave.ParseADCOutFormat(f.ADCOut.Format)
	r.Open = mmwave.OpenConfig{
		Channel: mmwave.ChannelConfig{
			RxChannelEn:     uint8(f.Channel.RxMask),
			TxChannelEn:     uint8(f.Channel.TxMask),
			CascadingConfig: uint8(f.Channel.Cascading),
		},
		ADCOut: mmwave.ADCOutConfig{Bits: bits, Format: outFormat},
	}

	bufFormat, _ := mmwave.ParseADCBufFormat(f.ADCBuf.Format)
	r.ADCBuf = mmwave.ADCBufConfig{
		Format:         bufFormat,
		IQSwap:         uint8(f.ADCBuf.IQSwap),
		ChInterleave:   uint8(f.ADCBuf.ChInterleave),
		ChirpThreshold: uint8(f.ADCBuf.ChirpThreshold),
	}

	r.Ctrl.DFEMode, _ = mmwave.ParseDFEMode(f.DFEMode)
	maxSlope := mmwave.MaxFreqSlope(r.RFFreqScaleFactor)
	for i := range f.Profiles {
		p := &f.Profiles[i]
		if p.FreqSlopeMHzUs > maxSlope || p.FreqSlopeMHzUs < -maxSlope {
			return nil, fmt.Errorf("profile %d: config.ProfileConf: freq_slope_mhz_us must be within +/-%g: %g given", i, maxSlope, p.FreqSlopeMHzUs)
		}
		r.Ctrl.Profiles = append(r.Ctrl.Profiles, p.profile(r.RFFreqScaleFactor))
	}
	for i := range f.Chirps {
		c := &f.Chirps[i]
		r.Ctrl.Chirps = append(r.Ctrl.Chirps, mmwave.ChirpConfig{
			ChirpStartIdx: uint16(c.StartIdx),
			ChirpEndIdx:   uint16(c.EndIdx),
			ProfileID:     uint8(c.ProfileID),
			TxEnable:      uint8(c.TxMask),
		})
	}

	if r.Ctrl.DFEMode == mmwave.DFEModeAdvancedFrame {
		r.Ctrl.AdvancedFrame = f.AdvancedFrame.advancedFrame()
	} else {
		r.Ctrl.Frame = f.Frame.frame()
	}

	return r, nil
}

func (p *ProfileConf) profile(rfFreqScaleFactor float64) mmwave.ProfileConfig {
	return mmwave.ProfileConfig{
		ProfileID:         uint8(p.ID),
		StartFreqConst:    mmwave.StartFreqConst(p.StartFreqGHz, rfFreqScaleFactor),
		IdleTimeConst:     mmwave.TimeConst(p.IdleTimeUs),
		ADCStartTimeConst: mmwave.TimeConst(p.ADCStartTimeUs),
		RampEndTime:       mmwave.TimeConst(p.RampEndTimeUs),
		TxStartTime:       mmwave.TxStartTimeConst(p.TxStartTimeUs),
		FreqSlopeConst:    mmwave.FreqSlopeConst(p.FreqSlopeMHzUs, rfFreqScaleFactor),
		NumADCSamples:     uint16(p.NumADCSamples),
		DigOutSampleRate:  uint16(p.SampleRateKsps),
		RxGain:            uint8(p.RxGainDB),
	}
}

func (c *FrameConf) frame() mmwave.FrameConfig {
	return mmwave.FrameConfig{
		ChirpStartIdx:     uint16(c.ChirpStartIdx),
		ChirpEndIdx:       uint16(c.ChirpEndIdx),
		NumLoops:          uint16(c.NumLoops),
		NumFrames:         uint16(c.NumFrames),
		FramePeriodicity:  mmwave.PeriodicityConst(c.PeriodicityMs),
		TriggerSelect:     uint8(c.TriggerSelect),
		FrameTriggerDelay: mmwave.PeriodicityConst(c.TriggerDelayMs),
	}
}

func (c *AdvancedFrameConf) advancedFrame() mmwave.AdvancedFrameConfig {
	adv := mmwave.AdvancedFrameConfig{
		NumSubFrames:      uint8(len(c.SubFrames)),
		NumFrames:         uint16(c.NumFrames),
		TriggerSelect:     uint8(c.TriggerSelect),
		FrameTriggerDelay: mmwave.PeriodicityConst(c.TriggerDelayMs),
	}
	if c.ForceProfile {
		adv.ForceProfile = 1
	}
	for i := range c.SubFrames[:min(len(c.SubFrames), mmwave.MaxSubFrames)] {
		sf := &c.SubFrames[i]
		adv.SubFrames[i] = mmwave.SubFrameConfig{
			ForceProfileIdx:     uint8(sf.ForceProfileIdx),
			ChirpStartIdx:       uint16(sf.ChirpStartIdx),
			NumOfChirps:         uint16(sf.NumChirps),
			NumLoops:            uint16(sf.NumLoops),
			BurstPeriodicity:    mmwave.PeriodicityConst(sf.BurstPeriodicityMs),
			ChirpStartIdxOffset: uint16(sf.ChirpStartIdxOffset),
			NumOfBurst:          uint16(sf.NumBursts),
			NumOfBurstLoops:     uint16(sf.NumBurstLoops),
			SubFramePeriodicity: mmwave.PeriodicityConst(sf.PeriodicityMs),
		}
	}
	return adv
}
