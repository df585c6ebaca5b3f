package tui

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/jrwynneiii/mmwrf/config"
	"github.com/jrwynneiii/mmwrf/report"
	"github.com/navidys/tvxwidgets"
	"github.com/rivo/tview"
	"gonum.org/v1/gonum/floats"
)

const (
	rampChirps         = 4
	rampPointsPerChirp = 32
)

// RampData samples the transmitted frequency in GHz over the first chirps
// of a sub-frame: each chirp sweeps the sampled Bandwidth around
// CenterFreq, then returns during the idle time.
func RampData(sf *report.SubFrame) []float64 {
	chirps := min(rampChirps, int(sf.NumChirpsPerFrame))
	if chirps == 0 || sf.ChirpInterval <= 0 {
		return nil
	}

	t := make([]float64, chirps*rampPointsPerChirp)
	floats.Span(t, 0, float64(chirps)*sf.ChirpInterval)

	startGHz := (sf.CenterFreq - sf.Bandwidth/2) / 1e9
	bwGHz := sf.Bandwidth / 1e9
	freq := make([]float64, len(t))
	for i, ti := range t {
		_, frac := math.Modf(ti / sf.ChirpInterval)
		freq[i] = startGHz + bwGHz*frac
	}
	return freq
}

var LogOut *tview.TextView

// StartUI shows the derived parameters of every sub-frame until 'q' or
// Ctrl-C is pressed.
func StartUI(results []SubFrameResult, platformName string, tuiConf config.TuiConf) {
	app := tview.NewApplication()

	LogOut = tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	overviewData := &OverviewTableData{results: results}
	detailData := &DetailTableData{}
	overview := tview.NewTable().SetContent(overviewData)
	detail := tview.NewTable().SetContent(detailData)

	rampPlot := tvxwidgets.NewPlot()
	rampPlot.SetLineColor([]tcell.Color{tcell.ColorLightSkyBlue})
	rampPlot.SetMarker(tvxwidgets.PlotMarkerBraille)
	rampPlot.SetBorder(true)
	rampPlot.SetTitle("Chirp ramp (GHz)")

	adcBufGauge := tvxwidgets.NewUtilModeGauge()
	adcBufGauge.SetLabel("ADCBuf per chirp event: ")
	adcBufGauge.SetLabelColor(tcell.ColorLightSkyBlue)
	adcBufGauge.SetWarnPercentage(tuiConf.ADCBufWarnPct)
	adcBufGauge.SetCritPercentage(tuiConf.ADCBufCritPct)
	adcBufGauge.SetEmptyColor(tcell.ColorBlack)
	adcBufGauge.SetBorder(false)

	gaugeBox := tview.NewFlex()
	gaugeBox.SetDirection(tview.FlexRow)
	gaugeBox.AddItem(adcBufGauge, 0, 1, false)
	gaugeBox.SetTitle("Memory")
	gaugeBox.SetBorder(true)

	LogOut.SetChangedFunc(func() {
		LogOut.ScrollToEnd()
		app.Draw()
	})
	LogOut.SetBorder(true).SetTitle("Log Output")
	if tuiConf.EnableLogOutput {
		log.SetOutput(LogOut)
		for _, res := range results {
			if res.Err != nil {
				log.Warnf("Sub-frame %d: %v", res.Index, res.Err)
			}
		}
	}

	selectRow := func(row int) {
		if row < 1 || row > len(results) {
			return
		}
		res := &results[row-1]
		detailData.show(res)
		detail.ScrollToBeginning()
		if res.Params == nil {
			adcBufGauge.SetValue(0)
			rampPlot.SetData([][]float64{{0}})
			return
		}
		adcBufGauge.SetValue(res.Params.ADCBufUtilization)
		rampPlot.SetData([][]float64{RampData(res.Params)})
	}

	overview.SetSelectable(true, false).SetFixed(1, 0).SetBorder(true).SetTitle("Sub-frames on " + platformName)
	overview.SetSelectionChangedFunc(func(row, column int) {
		selectRow(row)
	})
	detail.SetSelectable(false, false).SetBorder(true).SetTitle("Derived parameters")

	page := tview.NewFlex().SetDirection(tview.FlexColumn)

	leftCol := tview.NewFlex().SetDirection(tview.FlexRow)
	leftCol.AddItem(overview, 0, 1, true)
	if tuiConf.EnableLogOutput {
		leftCol.AddItem(LogOut, 0, 1, false)
	}

	rightCol := tview.NewFlex().SetDirection(tview.FlexRow)
	rightCol.AddItem(detail, 0, 4, false)
	rightCol.AddItem(gaugeBox, 3, 0, false)
	rightCol.AddItem(rampPlot, 0, 2, false)

	page.AddItem(leftCol, 0, 2, true)
	page.AddItem(rightCol, 0, 3, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	overview.Select(1, 0)

	if err := app.SetRoot(page, true).EnableMouse(true).Run(); err != nil {
		log.Fatalf("Could not start UI: %v", err)
	}
}
