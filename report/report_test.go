package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/jrwynneiii/mmwrf/mmwave"
	"github.com/jrwynneiii/mmwrf/rfparser"
	"gopkg.in/yaml.v3"
)

func testParams() *rfparser.OutParams {
	return &rfparser.OutParams{
		ValidProfileHasOneTxPerChirp: true,
		NumChirpsPerChirpEvent:       2,
		NumADCSamples:                256,
		NumRxAntennas:                4,
		RxAntOrder:                   [mmwave.NumRxChannels]uint8{0, 1, 2, 3},
		TxAntOrder:                   [mmwave.NumTxAntennas]uint8{0, 2, rfparser.AntennaUnused},
		NumTxAntennas:                2,
		NumVirtualAntennas:           8,
		NumVirtualAntAzim:            8,
		NumRangeBins:                 256,
		NumChirpsPerFrame:            64,
		ADCBufChanDataSize:           1024,
		NumDopplerChirps:             32,
		NumDopplerBins:               32,
		RangeStep:                    0.05,
		DopplerStep:                  0.1,
		FramePeriod:                  50,
		ChirpInterval:                0.1,
		Bandwidth:                    3e9,
		CenterFreq:                   62e9,
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewSubFrame(t *testing.T) {
	sf := NewSubFrame(1, testParams(), mmwave.DefaultPlatform())

	if sf.Index != 1 {
		t.Errorf("Expected index 1, got %d", sf.Index)
	}
	if !near(sf.MaxRange, 12.8) {
		t.Errorf("Expected max range 12.8 m, got %g", sf.MaxRange)
	}
	if !near(sf.MaxVelocity, 1.6) {
		t.Errorf("Expected max velocity 1.6 m/s, got %g", sf.MaxVelocity)
	}
	if !near(sf.ActiveTime, 6.4) || !near(sf.DutyCycle, 12.8) {
		t.Errorf("Expected 6.4 ms active at 12.8%%, got %g ms at %g%%", sf.ActiveTime, sf.DutyCycle)
	}
	// 1 KiB per channel, 4 channels, 2 chirps per event, 16 KiB buffer
	if !near(sf.ADCBufUtilization, 50) {
		t.Errorf("Expected 50%% ADCBuf utilization, got %g", sf.ADCBufUtilization)
	}
}

func TestNew_Summary(t *testing.T) {
	second := testParams()
	second.FramePeriod = 30
	second.RangeStep = 0.02
	second.DopplerStep = 0.3

	r := New(mmwave.DefaultPlatform(), mmwave.RFFreqScale60GHz, 0, testParams(), second)

	if len(r.SubFrames) != 2 || r.SubFrames[1].Index != 1 {
		t.Fatalf("Unexpected sub-frames: %+v", r.SubFrames)
	}
	s := r.Summary
	if !near(s.FramePeriod, 80) {
		t.Errorf("Expected 80 ms frame, got %g", s.FramePeriod)
	}
	if !near(s.ActiveTime, 12.8) || !near(s.DutyCycle, 16) {
		t.Errorf("Expected 12.8 ms active at 16%%, got %g ms at %g%%", s.ActiveTime, s.DutyCycle)
	}
	if !near(s.FinestRangeStep, 0.02) {
		t.Errorf("Expected finest range step 0.02 m, got %g", s.FinestRangeStep)
	}
	if !near(s.MaxRange, 12.8) {
		t.Errorf("Expected max range 12.8 m, got %g", s.MaxRange)
	}
	if !near(s.MaxVelocity, 4.8) {
		t.Errorf("Expected max velocity 4.8 m/s, got %g", s.MaxVelocity)
	}
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"yaml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
	}

	for _, tc := range testCases {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWrite_Text(t *testing.T) {
	second := testParams()
	second.FramePeriod = 30
	r := New(mmwave.DefaultPlatform(), mmwave.RFFreqScale60GHz, 2, testParams(), second)

	var buf bytes.Buffer
	if err := r.Write(&buf, FormatText); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"xwr68xx-isk",
		"Sub-frame 2",
		"Sub-frame 3",
		"2 Tx x 4 Rx = 8 virtual",
		"[0 2]",
		"1.0 KiB",
		"50.0%",
		"3.00 GHz",
		"62.00 GHz",
		"50.00 mm",
		"12.80 m",
		"Frame",
		"80.00 ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Text output does not contain %q:\n%s", want, out)
		}
	}
}

func TestWrite_TextSingleSubFrameHasNoSummary(t *testing.T) {
	r := New(mmwave.DefaultPlatform(), mmwave.RFFreqScale60GHz, 0, testParams())

	var buf bytes.Buffer
	if err := r.Write(&buf, FormatText); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if strings.Contains(buf.String(), "Finest range resolution") {
		t.Errorf("Unexpected frame summary:\n%s", buf.String())
	}
}

func TestWrite_YAML(t *testing.T) {
	r := New(mmwave.DefaultPlatform(), mmwave.RFFreqScale60GHz, 0, testParams())

	var buf bytes.Buffer
	if err := r.Write(&buf, FormatYAML); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var doc struct {
		Platform  string `yaml:"platform"`
		SubFrames []struct {
			Index        int     `yaml:"index"`
			NumRangeBins int     `yaml:"numRangeBins"`
			TxAntOrder   []int   `yaml:"txAntOrder"`
			MaxRange     float64 `yaml:"maxRange"`
		} `yaml:"subFrames"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Output is not valid YAML: %v\n%s", err, buf.String())
	}
	if doc.Platform != "xwr68xx-isk" || len(doc.SubFrames) != 1 {
		t.Fatalf("Unexpected document: %+v", doc)
	}
	// derived params are inlined next to the index
	sf := doc.SubFrames[0]
	if sf.NumRangeBins != 256 || !near(sf.MaxRange, 12.8) {
		t.Errorf("Unexpected sub-frame: %+v", sf)
	}
	if len(sf.TxAntOrder) != 3 || sf.TxAntOrder[2] != int(rfparser.AntennaUnused) {
		t.Errorf("Expected full tx order with unused marker, got %v", sf.TxAntOrder)
	}
}

func TestWrite_JSON(t *testing.T) {
	r := New(mmwave.DefaultPlatform(), mmwave.RFFreqScale60GHz, 0, testParams())

	var buf bytes.Buffer
	if err := r.Write(&buf, FormatJSON); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, buf.String())
	}
	subFrames, ok := doc["subFrames"].([]any)
	if !ok || len(subFrames) != 1 {
		t.Fatalf("Unexpected subFrames: %v", doc["subFrames"])
	}
	sf := subFrames[0].(map[string]any)
	if sf["numRangeBins"] != float64(256) {
		t.Errorf("Expected numRangeBins 256, got %v", sf["numRangeBins"])
	}
	if sf["adcBufUtilization"] != float64(50) {
		t.Errorf("Expected adcBufUtilization 50, got %v", sf["adcBufUtilization"])
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	r := New(mmwave.DefaultPlatform(), mmwave.RFFreqScale60GHz, 0, testParams())
	if err := r.Write(&bytes.Buffer{}, Format("xml")); err == nil {
		t.Error("Expected error for unknown format")
	}
}
