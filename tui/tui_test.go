package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/jrwynneiii/mmwrf/config"
	"github.com/jrwynneiii/mmwrf/mmwave"
	"github.com/jrwynneiii/mmwrf/report"
	"github.com/jrwynneiii/mmwrf/rfparser"
	"github.com/rivo/tview"
)

func testRadar(t *testing.T) *config.Radar {
	t.Helper()
	f := config.Default()
	f.DFEMode = "advanced"
	f.Profiles = []config.ProfileConf{{
		StartFreqGHz:   60,
		IdleTimeUs:     10,
		ADCStartTimeUs: 6,
		RampEndTimeUs:  40,
		FreqSlopeMHzUs: 70,
		NumADCSamples:  128,
		SampleRateKsps: 6000,
	}}
	f.Chirps = []config.ChirpConf{{StartIdx: 0, EndIdx: 3, TxMask: 1}}
	f.AdvancedFrame.SubFrames = []config.SubFrameConf{
		{ChirpStartIdx: 0, NumChirps: 1, NumLoops: 64, NumBursts: 1, NumBurstLoops: 1, PeriodicityMs: 20},
		{ChirpStartIdx: 1, NumChirps: 1, NumLoops: 32, NumBursts: 2, NumBurstLoops: 1, PeriodicityMs: 20},
	}

	radar, err := f.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return radar
}

func TestEvaluate(t *testing.T) {
	results := Evaluate(rfparser.New(nil), testRadar(t))

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Err != nil || results[0].Params == nil {
		t.Fatalf("Expected sub-frame 0 to derive, got %v", results[0].Err)
	}
	if results[0].Params.NumChirpsPerFrame != 64 {
		t.Errorf("Expected 64 chirps, got %d", results[0].Params.NumChirpsPerFrame)
	}
	if results[1].Params != nil || !errors.Is(results[1].Err, rfparser.ErrNonOneNumOfBurstForAdvFrame) {
		t.Errorf("Expected burst error for sub-frame 1, got %+v", results[1])
	}
	if results[1].Index != 1 {
		t.Errorf("Expected index 1, got %d", results[1].Index)
	}
}

// foreground reads the text colour tview keeps in the cell style.
func foreground(cell *tview.TableCell) tcell.Color {
	fg, _, _ := cell.Style.Decompose()
	return fg
}

func TestOverviewTableData(t *testing.T) {
	data := &OverviewTableData{results: Evaluate(rfparser.New(nil), testRadar(t))}

	if data.GetRowCount() != 3 {
		t.Errorf("Expected header plus 2 rows, got %d", data.GetRowCount())
	}
	if header := data.GetCell(0, 0); !header.NotSelectable {
		t.Error("Expected header not to be selectable")
	}

	if got := data.GetCell(1, 1); got.Text != "OK" || foreground(got) != tcell.ColorGreen {
		t.Errorf("Expected green OK, got %q in %v", got.Text, foreground(got))
	}
	if got := data.GetCell(1, 3).Text; !strings.Contains(got, "128 x 64") {
		t.Errorf("Expected 128 x 64 bins, got %q", got)
	}

	status := data.GetCell(2, 1)
	if status.Text != rfparser.CodeNonOneNumOfBurstForAdvFrame.String() || foreground(status) != tcell.ColorRed {
		t.Errorf("Expected red burst error, got %q in %v", status.Text, foreground(status))
	}
	if data.GetCell(3, 0) != nil {
		t.Error("Expected no cell past the last row")
	}
}

func TestDetailTableData(t *testing.T) {
	results := Evaluate(rfparser.New(nil), testRadar(t))
	data := &DetailTableData{}

	data.show(&results[0])
	if data.GetRowCount() != len(results[0].Params.Rows()) {
		t.Errorf("Expected %d rows, got %d", len(results[0].Params.Rows()), data.GetRowCount())
	}
	if got := data.GetCell(0, 0).Text; !strings.Contains(got, "Profile:") {
		t.Errorf("Expected profile label, got %q", got)
	}

	data.show(&results[1])
	if data.GetRowCount() != 1 {
		t.Errorf("Expected single error row, got %d", data.GetRowCount())
	}
	if got := data.GetCell(0, 1).Text; !strings.Contains(got, "ENOTSUPPORT__NON_ONE_NUMOFBURST_FOR_ADVANCED_FRAME") {
		t.Errorf("Expected error text, got %q", got)
	}
}

func TestRampData(t *testing.T) {
	sf := report.NewSubFrame(0, &rfparser.OutParams{
		NumChirpsPerFrame: 16,
		ChirpInterval:     0.05,
		Bandwidth:         2e9,
		CenterFreq:        61e9,
	}, mmwave.DefaultPlatform())

	data := RampData(&sf)
	if len(data) != rampChirps*rampPointsPerChirp {
		t.Fatalf("Expected %d points, got %d", rampChirps*rampPointsPerChirp, len(data))
	}
	if data[0] != 60 {
		t.Errorf("Expected ramp to start at 60 GHz, got %g", data[0])
	}
	for i, v := range data {
		if v < 60 || v >= 62 {
			t.Fatalf("Point %d = %g GHz outside the 60-62 GHz sweep", i, v)
		}
	}
}

func TestRampData_Empty(t *testing.T) {
	sf := report.NewSubFrame(0, &rfparser.OutParams{}, mmwave.DefaultPlatform())
	if data := RampData(&sf); data != nil {
		t.Errorf("Expected no data, got %v", data)
	}

	few := report.NewSubFrame(0, &rfparser.OutParams{NumChirpsPerFrame: 2, ChirpInterval: 0.1, Bandwidth: 1e9, CenterFreq: 77e9}, mmwave.DefaultPlatform())
	if got := len(RampData(&few)); got != 2*rampPointsPerChirp {
		t.Errorf("Expected %d points for 2 chirps, got %d", 2*rampPointsPerChirp, got)
	}
}
