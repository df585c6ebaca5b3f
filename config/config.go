// Package config models the HCL radar configuration file in physical units
// and converts it to the register-level mmwave types.
package config

import (
	"fmt"
	"math"

	"github.com/jrwynneiii/mmwrf/mmwave"
)

type File struct {
	Platform          string            `koanf:"platform"`
	CustomPlatform    *PlatformConf     `koanf:"custom_platform"`
	RFFreqScaleFactor float64           `koanf:"rf_freq_scale_factor"`
	BPMEnabled        bool              `koanf:"bpm_enabled"`
	DFEMode           string            `koanf:"dfe_mode"`
	Channel           ChannelConf       `koanf:"channel"`
	ADCOut            ADCOutConf        `koanf:"adc_out"`
	ADCBuf            ADCBufConf        `koanf:"adcbuf"`
	Profiles          []ProfileConf     `koanf:"profile"`
	Chirps            []ChirpConf       `koanf:"chirp"`
	Frame             FrameConf         `koanf:"frame"`
	AdvancedFrame     AdvancedFrameConf `koanf:"advanced_frame"`
	TUI               TuiConf           `koanf:"tui"`
}

// PlatformConf describes a board that is not built in.
type PlatformConf struct {
	Name               string   `koanf:"name"`
	NumRxChannels      int      `koanf:"num_rx"`
	NumTxAntennas      int      `koanf:"num_tx"`
	RxOrder            []int    `koanf:"rx_order"`
	TxOrder            []int    `koanf:"tx_order"`
	TxRows             []string `koanf:"tx_rows"`
	MaxVirtualAntennas int      `koanf:"max_virtual_antennas"`
	MaxChirpThreshold  int      `koanf:"max_chirp_threshold"`
	ADCBufMemSize      int      `koanf:"adcbuf_mem_size"`
	RFFreqScaleFactor  float64  `koanf:"rf_freq_scale_factor"`
}

type ChannelConf struct {
	RxMask    int `koanf:"rx_mask"`
	TxMask    int `koanf:"tx_mask"`
	Cascading int `koanf:"cascading"`
}

type ADCOutConf struct {
	Bits   int    `koanf:"bits"`
	Format string `koanf:"format"`
}

type ADCBufConf struct {
	Format         string `koanf:"format"`
	IQSwap         int    `koanf:"iq_swap"`
	ChInterleave   int    `koanf:"ch_interleave"`
	ChirpThreshold int    `koanf:"chirp_threshold"`
}

type ProfileConf struct {
	ID             int     `koanf:"id"`
	StartFreqGHz   float64 `koanf:"start_freq_ghz"`
	IdleTimeUs     float64 `koanf:"idle_time_us"`
	ADCStartTimeUs float64 `koanf:"adc_start_time_us"`
	RampEndTimeUs  float64 `koanf:"ramp_end_time_us"`
	TxStartTimeUs  float64 `koanf:"tx_start_time_us"`
	FreqSlopeMHzUs float64 `koanf:"freq_slope_mhz_us"`
	NumADCSamples  int     `koanf:"num_adc_samples"`
	SampleRateKsps int     `koanf:"sample_rate_ksps"`
	RxGainDB       int     `koanf:"rx_gain_db"`
}

type ChirpConf struct {
	StartIdx  int `koanf:"start_idx"`
	EndIdx    int `koanf:"end_idx"`
	ProfileID int `koanf:"profile_id"`
	TxMask    int `koanf:"tx_mask"`
}

type FrameConf struct {
	ChirpStartIdx  int     `koanf:"chirp_start_idx"`
	ChirpEndIdx    int     `koanf:"chirp_end_idx"`
	NumLoops       int     `koanf:"num_loops"`
	NumFrames      int     `koanf:"num_frames"`
	PeriodicityMs  float64 `koanf:"periodicity_ms"`
	TriggerSelect  int     `koanf:"trigger_select"`
	TriggerDelayMs float64 `koanf:"trigger_delay_ms"`
}

type SubFrameConf struct {
	ForceProfileIdx     int     `koanf:"force_profile_idx"`
	ChirpStartIdx       int     `koanf:"chirp_start_idx"`
	NumChirps           int     `koanf:"num_chirps"`
	NumLoops            int     `koanf:"num_loops"`
	BurstPeriodicityMs  float64 `koanf:"burst_periodicity_ms"`
	ChirpStartIdxOffset int     `koanf:"chirp_start_idx_offset"`
	NumBursts           int     `koanf:"num_bursts"`
	NumBurstLoops       int     `koanf:"num_burst_loops"`
	PeriodicityMs       float64 `koanf:"periodicity_ms"`
}

type AdvancedFrameConf struct {
	ForceProfile   bool           `koanf:"force_profile"`
	NumFrames      int            `koanf:"num_frames"`
	TriggerSelect  int            `koanf:"trigger_select"`
	TriggerDelayMs float64        `koanf:"trigger_delay_ms"`
	SubFrames      []SubFrameConf `koanf:"subframe"`
}

type TuiConf struct {
	ADCBufWarnPct   float64 `koanf:"adcbuf_warn_pct"`
	ADCBufCritPct   float64 `koanf:"adcbuf_crit_pct"`
	EnableLogOutput bool    `koanf:"enable_log_output"`
}

// Default returns the values used for every key the file and environment
// leave unset.
func Default() *File {
	return &File{
		Platform: mmwave.DefaultPlatformName,
		DFEMode:  mmwave.DFEModeFrame.String(),
		Channel: ChannelConf{
			RxMask: 0xF,
			TxMask: 0x7,
		},
		ADCOut: ADCOutConf{
			Bits:   16,
			Format: mmwave.ADCOutComplex1x.String(),
		},
		ADCBuf: ADCBufConf{
			Format:       mmwave.ADCBufComplex.String(),
			ChInterleave: 1,
		},
		TUI: TuiConf{
			ADCBufWarnPct: 75,
			ADCBufCritPct: 90,
		},
	}
}

// maxPeriodMs is the longest period a 32-bit 5 ns register holds.
var maxPeriodMs = mmwave.PeriodicityMs(math.MaxUint32)

func checkRange(what string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be between %d and %d: %d given", what, lo, hi, v)
	}
	return nil
}

func checkPeriod(what string, ms float64) error {
	if ms < 0 || ms > maxPeriodMs {
		return fmt.Errorf("%s must be between 0 and %g ms: %g given", what, maxPeriodMs, ms)
	}
	return nil
}

// Validate reports the first value that cannot be represented in the
// register-level configuration. Hardware constraints such as antenna counts
// or the chirp threshold are left to the parser so they surface with their
// error codes.
func (f *File) Validate() error {
	var platform *mmwave.Platform
	if f.CustomPlatform != nil {
		if err := f.CustomPlatform.Validate(); err != nil {
			return err
		}
		platform, _ = f.CustomPlatform.Platform()
	} else {
		var err error
		if platform, err = mmwave.LookupPlatform(f.Platform); err != nil {
			return fmt.Errorf("config.File: %w", err)
		}
	}
	if f.RFFreqScaleFactor < 0 {
		return fmt.Errorf("config.File: rf_freq_scale_factor must not be negative: %g given", f.RFFreqScaleFactor)
	}
	scale := f.RFFreqScaleFactor
	if scale == 0 {
		scale = platform.RFFreqScaleFactor
	}

	mode, err := mmwave.ParseDFEMode(f.DFEMode)
	if err != nil {
		return fmt.Errorf("config.File: %w", err)
	}

	if err := f.Channel.Validate(); err != nil {
		return err
	}
	if err := f.ADCOut.Validate(); err != nil {
		return err
	}
	if err := f.ADCBuf.Validate(); err != nil {
		return err
	}

	if len(f.Profiles) == 0 {
		return fmt.Errorf("config.File: at least one profile is required")
	}
	seen := make(map[int]bool, len(f.Profiles))
	for i := range f.Profiles {
		p := &f.Profiles[i]
		if err := p.Validate(); err != nil {
			return fmt.Errorf("profile %d: %w", i, err)
		}
		if maxGHz := mmwave.MaxStartFreqGHz(scale); p.StartFreqGHz > maxGHz {
			return fmt.Errorf("profile %d: config.ProfileConf: start_freq_ghz must not exceed %g at scale factor %g: %g given", i, maxGHz, scale, p.StartFreqGHz)
		}
		if seen[p.ID] {
			return fmt.Errorf("config.ProfileConf: id %d defined twice", p.ID)
		}
		seen[p.ID] = true
	}

	if len(f.Chirps) == 0 {
		return fmt.Errorf("config.File: at least one chirp is required")
	}
	for i := range f.Chirps {
		if err := f.Chirps[i].Validate(); err != nil {
			return fmt.Errorf("chirp %d: %w", i, err)
		}
	}

	if mode == mmwave.DFEModeAdvancedFrame {
		return f.AdvancedFrame.Validate()
	}
	return f.Frame.Validate()
}

func (p *PlatformConf) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("config.PlatformConf: name must be set")
	}
	if err := checkRange("config.PlatformConf: num_rx", p.NumRxChannels, 1, mmwave.NumRxChannels); err != nil {
		return err
	}
	if err := checkRange("config.PlatformConf: num_tx", p.NumTxAntennas, 1, mmwave.NumTxAntennas); err != nil {
		return err
	}
	if len(p.RxOrder) != p.NumRxChannels {
		return fmt.Errorf("config.PlatformConf: rx_order must list %d channels: %d given", p.NumRxChannels, len(p.RxOrder))
	}
	if len(p.TxOrder) != p.NumTxAntennas {
		return fmt.Errorf("config.PlatformConf: tx_order must list %d antennas: %d given", p.NumTxAntennas, len(p.TxOrder))
	}
	if len(p.TxRows) != p.NumTxAntennas {
		return fmt.Errorf("config.PlatformConf: tx_rows must list %d antennas: %d given", p.NumTxAntennas, len(p.TxRows))
	}
	for _, row := range p.TxRows {
		if _, err := mmwave.ParseAntennaRow(row); err != nil {
			return fmt.Errorf("config.PlatformConf: %w", err)
		}
	}
	if err := checkRange("config.PlatformConf: max_chirp_threshold", p.MaxChirpThreshold, 1, math.MaxUint8); err != nil {
		return err
	}
	if err := checkRange("config.PlatformConf: adcbuf_mem_size", p.ADCBufMemSize, 1, math.MaxInt32); err != nil {
		return err
	}
	if p.RFFreqScaleFactor <= 0 {
		return fmt.Errorf("config.PlatformConf: rf_freq_scale_factor must be positive: %g given", p.RFFreqScaleFactor)
	}
	// The remaining invariants are checked on the converted platform.
	platform, err := p.Platform()
	if err != nil {
		return err
	}
	if err := platform.Validate(); err != nil {
		return fmt.Errorf("config.PlatformConf: %w", err)
	}
	return nil
}

func (c *ChannelConf) Validate() error {
	if err := checkRange("config.ChannelConf: rx_mask", c.RxMask, 0, math.MaxUint8); err != nil {
		return err
	}
	if err := checkRange("config.ChannelConf: tx_mask", c.TxMask, 0, math.MaxUint8); err != nil {
		return err
	}
	return checkRange("config.ChannelConf: cascading", c.Cascading, 0, math.MaxUint8)
}

func (c *ADCOutConf) Validate() error {
	if _, err := mmwave.ParseADCBits(c.Bits); err != nil {
		return fmt.Errorf("config.ADCOutConf: %w", err)
	}
	if _, err := mmwave.ParseADCOutFormat(c.Format); err != nil {
		return fmt.Errorf("config.ADCOutConf: %w", err)
	}
	return nil
}

func (c *ADCBufConf) Validate() error {
	if _, err := mmwave.ParseADCBufFormat(c.Format); err != nil {
		return fmt.Errorf("config.ADCBufConf: %w", err)
	}
	if err := checkRange("config.ADCBufConf: iq_swap", c.IQSwap, 0, 1); err != nil {
		return err
	}
	if err := checkRange("config.ADCBufConf: ch_interleave", c.ChInterleave, 0, 1); err != nil {
		return err
	}
	return checkRange("config.ADCBufConf: chirp_threshold", c.ChirpThreshold, 0, math.MaxUint8)
}

func (p *ProfileConf) Validate() error {
	if err := checkRange("config.ProfileConf: id", p.ID, 0, math.MaxUint8); err != nil {
		return err
	}
	if p.StartFreqGHz <= 0 {
		return fmt.Errorf("config.ProfileConf: start_freq_ghz must be positive: %g given", p.StartFreqGHz)
	}
	for _, t := range []struct {
		name string
		us   float64
	}{
		{"idle_time_us", p.IdleTimeUs},
		{"adc_start_time_us", p.ADCStartTimeUs},
		{"ramp_end_time_us", p.RampEndTimeUs},
	} {
		if t.us < 0 || t.us > mmwave.MaxTimeUs {
			return fmt.Errorf("config.ProfileConf: %s must be between 0 and %g: %g given", t.name, mmwave.MaxTimeUs, t.us)
		}
	}
	if math.Abs(p.TxStartTimeUs) > mmwave.MaxTxStartTimeUs {
		return fmt.Errorf("config.ProfileConf: tx_start_time_us must be within +/-%g: %g given", mmwave.MaxTxStartTimeUs, p.TxStartTimeUs)
	}
	if err := checkRange("config.ProfileConf: num_adc_samples", p.NumADCSamples, 0, math.MaxUint16); err != nil {
		return err
	}
	if err := checkRange("config.ProfileConf: sample_rate_ksps", p.SampleRateKsps, 0, math.MaxUint16); err != nil {
		return err
	}
	return checkRange("config.ProfileConf: rx_gain_db", p.RxGainDB, 0, math.MaxUint8)
}

func (c *ChirpConf) Validate() error {
	if err := checkRange("config.ChirpConf: start_idx", c.StartIdx, 0, math.MaxUint16); err != nil {
		return err
	}
	if err := checkRange("config.ChirpConf: end_idx", c.EndIdx, c.StartIdx, math.MaxUint16); err != nil {
		return err
	}
	if err := checkRange("config.ChirpConf: profile_id", c.ProfileID, 0, math.MaxUint8); err != nil {
		return err
	}
	return checkRange("config.ChirpConf: tx_mask", c.TxMask, 0, math.MaxUint8)
}

func (c *FrameConf) Validate() error {
	for _, v := range []struct {
		name string
		v    int
	}{
		{"chirp_start_idx", c.ChirpStartIdx},
		{"chirp_end_idx", c.ChirpEndIdx},
		{"num_loops", c.NumLoops},
		{"num_frames", c.NumFrames},
	} {
		if err := checkRange("config.FrameConf: "+v.name, v.v, 0, math.MaxUint16); err != nil {
			return err
		}
	}
	if err := checkRange("config.FrameConf: trigger_select", c.TriggerSelect, 0, math.MaxUint8); err != nil {
		return err
	}
	if err := checkPeriod("config.FrameConf: periodicity_ms", c.PeriodicityMs); err != nil {
		return err
	}
	return checkPeriod("config.FrameConf: trigger_delay_ms", c.TriggerDelayMs)
}

func (c *AdvancedFrameConf) Validate() error {
	if err := checkRange("config.AdvancedFrameConf: subframe count", len(c.SubFrames), 1, mmwave.MaxSubFrames); err != nil {
		return err
	}
	if err := checkRange("config.AdvancedFrameConf: num_frames", c.NumFrames, 0, math.MaxUint16); err != nil {
		return err
	}
	if err := checkRange("config.AdvancedFrameConf: trigger_select", c.TriggerSelect, 0, math.MaxUint8); err != nil {
		return err
	}
	if err := checkPeriod("config.AdvancedFrameConf: trigger_delay_ms", c.TriggerDelayMs); err != nil {
		return err
	}
	for i := range c.SubFrames {
		if err := c.SubFrames[i].Validate(); err != nil {
			return fmt.Errorf("subframe %d: %w", i, err)
		}
	}
	return nil
}

func (c *SubFrameConf) Validate() error {
	if err := checkRange("config.SubFrameConf: force_profile_idx", c.ForceProfileIdx, 0, math.MaxUint8); err != nil {
		return err
	}
	for _, v := range []struct {
		name string
		v    int
	}{
		{"chirp_start_idx", c.ChirpStartIdx},
		{"num_chirps", c.NumChirps},
		{"num_loops", c.NumLoops},
		{"chirp_start_idx_offset", c.ChirpStartIdxOffset},
		{"num_bursts", c.NumBursts},
		{"num_burst_loops", c.NumBurstLoops},
	} {
		if err := checkRange("config.SubFrameConf: "+v.name, v.v, 0, math.MaxUint16); err != nil {
			return err
		}
	}
	if err := checkPeriod("config.SubFrameConf: burst_periodicity_ms", c.BurstPeriodicityMs); err != nil {
		return err
	}
	return checkPeriod("config.SubFrameConf: periodicity_ms", c.PeriodicityMs)
}
