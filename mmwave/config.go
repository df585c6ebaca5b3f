package mmwave

// ProfileConfig is one chirp waveform template in register units.
type ProfileConfig struct {
	ProfileID         uint8  `yaml:"profileId" json:"profileId"`
	StartFreqConst    uint32 `yaml:"startFreqConst" json:"startFreqConst"`       // rfFreqScaleFactor*1e9/2^26 Hz per LSB
	IdleTimeConst     uint32 `yaml:"idleTimeConst" json:"idleTimeConst"`         // 10 ns per LSB
	ADCStartTimeConst uint32 `yaml:"adcStartTimeConst" json:"adcStartTimeConst"` // 10 ns per LSB
	RampEndTime       uint32 `yaml:"rampEndTime" json:"rampEndTime"`             // 10 ns per LSB
	TxStartTime       int32  `yaml:"txStartTime" json:"txStartTime"`             // 10 ns per LSB
	FreqSlopeConst    int16  `yaml:"freqSlopeConst" json:"freqSlopeConst"`       // rfFreqScaleFactor*1e3*900/2^26 MHz/us per LSB
	NumADCSamples     uint16 `yaml:"numAdcSamples" json:"numAdcSamples"`
	DigOutSampleRate  uint16 `yaml:"digOutSampleRate" json:"digOutSampleRate"` // ksps
	RxGain            uint8  `yaml:"rxGain" json:"rxGain"`                     // dB
}

// ChirpConfig binds the chirp indices [ChirpStartIdx, ChirpEndIdx] to a
// profile and a transmit antenna enable mask.
type ChirpConfig struct {
	ChirpStartIdx uint16 `yaml:"chirpStartIdx" json:"chirpStartIdx"`
	ChirpEndIdx   uint16 `yaml:"chirpEndIdx" json:"chirpEndIdx"`
	ProfileID     uint8  `yaml:"profileId" json:"profileId"`
	TxEnable      uint8  `yaml:"txEnable" json:"txEnable"`
}

// Covers reports whether the chirp index belongs to this configuration.
func (c *ChirpConfig) Covers(idx uint16) bool {
	return idx >= c.ChirpStartIdx && idx <= c.ChirpEndIdx
}

// FrameConfig is the legacy (single sub-frame) frame definition.
type FrameConfig struct {
	ChirpStartIdx     uint16 `yaml:"chirpStartIdx" json:"chirpStartIdx"`
	ChirpEndIdx       uint16 `yaml:"chirpEndIdx" json:"chirpEndIdx"`
	NumLoops          uint16 `yaml:"numLoops" json:"numLoops"`
	NumFrames         uint16 `yaml:"numFrames" json:"numFrames"`
	FramePeriodicity  uint32 `yaml:"framePeriodicity" json:"framePeriodicity"` // 5 ns per LSB
	TriggerSelect     uint8  `yaml:"triggerSelect" json:"triggerSelect"`
	FrameTriggerDelay uint32 `yaml:"frameTriggerDelay" json:"frameTriggerDelay"` // 5 ns per LSB
}

type SubFrameConfig struct {
	ForceProfileIdx     uint8  `yaml:"forceProfileIdx" json:"forceProfileIdx"`
	ChirpStartIdx       uint16 `yaml:"chirpStartIdx" json:"chirpStartIdx"`
	NumOfChirps         uint16 `yaml:"numOfChirps" json:"numOfChirps"`
	NumLoops            uint16 `yaml:"numLoops" json:"numLoops"`
	BurstPeriodicity    uint32 `yaml:"burstPeriodicity" json:"burstPeriodicity"` // 5 ns per LSB
	ChirpStartIdxOffset uint16 `yaml:"chirpStartIdxOffset" json:"chirpStartIdxOffset"`
	NumOfBurst          uint16 `yaml:"numOfBurst" json:"numOfBurst"`
	NumOfBurstLoops     uint16 `yaml:"numOfBurstLoops" json:"numOfBurstLoops"`
	SubFramePeriodicity uint32 `yaml:"subFramePeriodicity" json:"subFramePeriodicity"` // 5 ns per LSB
}

type AdvancedFrameConfig struct {
	NumSubFrames      uint8                        `yaml:"numSubFrames" json:"numSubFrames"`
	ForceProfile      uint8                        `yaml:"forceProfile" json:"forceProfile"`
	NumFrames         uint16                       `yaml:"numFrames" json:"numFrames"`
	TriggerSelect     uint8                        `yaml:"triggerSelect" json:"triggerSelect"`
	FrameTriggerDelay uint32                       `yaml:"frameTriggerDelay" json:"frameTriggerDelay"`
	SubFrames         [MaxSubFrames]SubFrameConfig `yaml:"subFrames" json:"subFrames"`
}

// CtrlConfig is the complete control configuration owned by the application.
// Only the frame definition matching DFEMode is consulted.
type CtrlConfig struct {
	DFEMode       DFEMode             `yaml:"dfeMode" json:"dfeMode"`
	Profiles      []ProfileConfig     `yaml:"profiles" json:"profiles"`
	Chirps        []ChirpConfig       `yaml:"chirps" json:"chirps"`
	Frame         FrameConfig         `yaml:"frame" json:"frame"`
	AdvancedFrame AdvancedFrameConfig `yaml:"advancedFrame" json:"advancedFrame"`
}

// Profile returns the profile with the given ID.
func (c *CtrlConfig) Profile(id uint8) (*ProfileConfig, bool) {
	for i := range c.Profiles {
		if c.Profiles[i].ProfileID == id {
			return &c.Profiles[i], true
		}
	}
	return nil, false
}

// Chirp returns the chirp configuration covering idx. Later entries win
// when ranges overlap, matching the order in which they are programmed.
func (c *CtrlConfig) Chirp(idx uint16) (*ChirpConfig, bool) {
	for i := len(c.Chirps) - 1; i >= 0; i-- {
		if c.Chirps[i].Covers(idx) {
			return &c.Chirps[i], true
		}
	}
	return nil, false
}

type ChannelConfig struct {
	RxChannelEn     uint8 `yaml:"rxChannelEn" json:"rxChannelEn"`
	TxChannelEn     uint8 `yaml:"txChannelEn" json:"txChannelEn"`
	CascadingConfig uint8 `yaml:"cascading" json:"cascading"`
}

type ADCOutConfig struct {
	Bits   ADCBits      `yaml:"bits" json:"bits"`
	Format ADCOutFormat `yaml:"format" json:"format"`
}

// OpenConfig is the part of the configuration applied when the front-end
// is opened: channel masks and ADC output format.
type OpenConfig struct {
	Channel ChannelConfig `yaml:"channel" json:"channel"`
	ADCOut  ADCOutConfig  `yaml:"adcOut" json:"adcOut"`
}

type ADCBufConfig struct {
	Format       ADCBufFormat `yaml:"format" json:"format"`
	IQSwap       uint8        `yaml:"iqSwap" json:"iqSwap"`
	ChInterleave uint8        `yaml:"chInterleave" json:"chInterleave"`
	// ChirpThreshold of 0 lets the parser pick the largest admissible value.
	ChirpThreshold uint8 `yaml:"chirpThreshold" json:"chirpThreshold"`
}
