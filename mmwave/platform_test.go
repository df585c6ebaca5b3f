package mmwave

import (
	"slices"
	"strings"
	"testing"
)

func TestBuiltinPlatformsAreValid(t *testing.T) {
	for _, name := range PlatformNames() {
		t.Run(name, func(t *testing.T) {
			p, err := LookupPlatform(name)
			if err != nil {
				t.Fatalf("LookupPlatform failed: %v", err)
			}
			if p.Name != name {
				t.Errorf("Expected name %q, got %q", name, p.Name)
			}
			if err := p.Validate(); err != nil {
				t.Errorf("Validate failed: %v", err)
			}
		})
	}
}

func TestPlatformNames(t *testing.T) {
	names := PlatformNames()
	if !slices.IsSorted(names) {
		t.Errorf("Expected sorted names, got %v", names)
	}
	if !slices.Contains(names, DefaultPlatformName) {
		t.Errorf("Default platform %q missing from %v", DefaultPlatformName, names)
	}
}

func TestLookupPlatform(t *testing.T) {
	if _, err := LookupPlatform("awr9999"); err == nil {
		t.Error("Expected error for unknown platform")
	}

	p, err := LookupPlatform(DefaultPlatformName)
	if err != nil {
		t.Fatalf("LookupPlatform failed: %v", err)
	}
	p.NumTxAntennas = 1
	if DefaultPlatform().NumTxAntennas != 3 {
		t.Error("Modifying a looked-up platform changed the built-in table")
	}
}

func TestPlatform_Masks(t *testing.T) {
	p, err := LookupPlatform("xwr16xx")
	if err != nil {
		t.Fatalf("LookupPlatform failed: %v", err)
	}
	if got := p.RxMask(); got != 0xF {
		t.Errorf("RxMask() = %#x, want 0xf", got)
	}
	if got := p.TxMask(); got != 0x3 {
		t.Errorf("TxMask() = %#x, want 0x3", got)
	}
}

func TestPlatform_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(p *Platform)
		want   string
	}{
		{"no rx", func(p *Platform) { p.NumRxChannels = 0 }, "rx channel count"},
		{"too many tx", func(p *Platform) { p.NumTxAntennas = 4 }, "tx antenna count"},
		{"rx order repeats", func(p *Platform) { p.RxOrder = [NumRxChannels]uint8{0, 1, 1, 3} }, "rx order"},
		{"tx order out of range", func(p *Platform) { p.TxOrder = [NumTxAntennas]uint8{0, 1, 3} }, "tx order"},
		{"virtual above rx*tx", func(p *Platform) { p.MaxVirtualAntennas = 13 }, "max virtual antennas"},
		{"zero threshold", func(p *Platform) { p.MaxChirpThreshold = 0 }, "chirp threshold"},
		{"no adcbuf", func(p *Platform) { p.ADCBufMemSize = 0 }, "ADCBuf memory"},
		{"no scale", func(p *Platform) { p.RFFreqScaleFactor = 0 }, "scale factor"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultPlatform()
			tc.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestParseEnums(t *testing.T) {
	if m, err := ParseDFEMode("advanced_frame"); err != nil || m != DFEModeAdvancedFrame {
		t.Errorf("ParseDFEMode(advanced_frame) = %v, %v", m, err)
	}
	if _, err := ParseDFEMode("continuous"); err == nil {
		t.Error("Expected error for unknown DFE mode")
	}

	if b, err := ParseADCBits(16); err != nil || b != ADCBits16 {
		t.Errorf("ParseADCBits(16) = %v, %v", b, err)
	}
	if _, err := ParseADCBits(10); err == nil {
		t.Error("Expected error for 10-bit ADC")
	}

	for f, name := range adcOutFormatNames {
		got, err := ParseADCOutFormat(name)
		if err != nil || got != f {
			t.Errorf("ParseADCOutFormat(%q) = %v, %v", name, got, err)
		}
		if got.String() != name {
			t.Errorf("%v.String() = %q, want %q", f, got.String(), name)
		}
	}

	if f, err := ParseADCBufFormat(""); err != nil || f != ADCBufComplex {
		t.Errorf("ParseADCBufFormat(\"\") = %v, %v", f, err)
	}
	if r, err := ParseAntennaRow("elev"); err != nil || r != RowElevation {
		t.Errorf("ParseAntennaRow(elev) = %v, %v", r, err)
	}
}

func TestCtrlConfig_Lookup(t *testing.T) {
	ctrl := &CtrlConfig{
		Profiles: []ProfileConfig{{ProfileID: 2, NumADCSamples: 64}},
		Chirps: []ChirpConfig{
			{ChirpStartIdx: 0, ChirpEndIdx: 7, TxEnable: 0x1},
			{ChirpStartIdx: 4, ChirpEndIdx: 4, TxEnable: 0x2},
		},
	}

	if _, ok := ctrl.Profile(0); ok {
		t.Error("Expected profile 0 to be missing")
	}
	if p, ok := ctrl.Profile(2); !ok || p.NumADCSamples != 64 {
		t.Errorf("Profile(2) = %+v, %v", p, ok)
	}

	if c, ok := ctrl.Chirp(4); !ok || c.TxEnable != 0x2 {
		t.Errorf("Chirp(4) = %+v, %v; expected later config to win", c, ok)
	}
	if c, ok := ctrl.Chirp(5); !ok || c.TxEnable != 0x1 {
		t.Errorf("Chirp(5) = %+v, %v", c, ok)
	}
	if _, ok := ctrl.Chirp(8); ok {
		t.Error("Expected chirp 8 to be missing")
	}
}
