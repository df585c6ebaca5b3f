package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/jrwynneiii/mmwrf/config"
	"github.com/jrwynneiii/mmwrf/report"
	"github.com/jrwynneiii/mmwrf/rfparser"
	"github.com/rivo/tview"
)

// SubFrameResult is the outcome of deriving one sub-frame. Exactly one of
// Params and Err is set.
type SubFrameResult struct {
	Index  uint8
	Params *report.SubFrame
	Err    error
}

// Evaluate derives every sub-frame of radar independently, so a failing
// sub-frame does not hide the others.
func Evaluate(p *rfparser.Parser, radar *config.Radar) []SubFrameResult {
	n := rfparser.NumSubFrames(&radar.Ctrl)
	results := make([]SubFrameResult, 0, n)
	for i := uint8(0); i < n; i++ {
		out, err := p.Parse(i, &radar.Open, &radar.Ctrl, &radar.ADCBuf, radar.RFFreqScaleFactor, radar.BPMEnabled)
		if err != nil {
			results = append(results, SubFrameResult{Index: i, Err: err})
			continue
		}
		sf := report.NewSubFrame(i, out, radar.Platform)
		results = append(results, SubFrameResult{Index: i, Params: &sf})
	}
	return results
}

type OverviewTableData struct {
	tview.TableContentReadOnly
	results []SubFrameResult
}

type DetailTableData struct {
	tview.TableContentReadOnly
	rows []report.Row
	err  error
}

func (o *OverviewTableData) GetRowCount() int {
	return len(o.results) + 1
}

func (o *OverviewTableData) GetColumnCount() int {
	return 4
}

func (o *OverviewTableData) GetCell(row, column int) *tview.TableCell {
	if row == 0 {
		switch column {
		case 0:
			return tview.NewTableCell("[lightskyblue]Sub-frame ").SetSelectable(false)
		case 1:
			return tview.NewTableCell("[white]Status ").SetSelectable(false)
		case 2:
			return tview.NewTableCell("[white]Antennas ").SetSelectable(false)
		case 3:
			return tview.NewTableCell("[white]Bins (range x doppler)").SetSelectable(false)
		}
		return tview.NewTableCell("ERROR")
	}
	if row > len(o.results) {
		return nil
	}

	res := &o.results[row-1]
	if res.Err != nil {
		switch column {
		case 0:
			return tview.NewTableCell(fmt.Sprintf("[lightskyblue]%d", res.Index))
		case 1:
			return tview.NewTableCell(rfparser.CodeOf(res.Err).String()).SetTextColor(tcell.ColorRed)
		default:
			return tview.NewTableCell("-").SetTextColor(tcell.ColorRed)
		}
	}

	sf := res.Params
	switch column {
	case 0:
		return tview.NewTableCell(fmt.Sprintf("[lightskyblue]%d", res.Index))
	case 1:
		return tview.NewTableCell("OK").SetTextColor(tcell.ColorGreen)
	case 2:
		return tview.NewTableCell(fmt.Sprintf("[white]%dTx x %dRx", sf.NumTxAntennas, sf.NumRxAntennas))
	case 3:
		return tview.NewTableCell(fmt.Sprintf("[white]%d x %d", sf.NumRangeBins, sf.NumDopplerBins))
	}
	return tview.NewTableCell("ERROR")
}

// show switches the detail table to res.
func (d *DetailTableData) show(res *SubFrameResult) {
	d.rows, d.err = nil, res.Err
	if res.Params != nil {
		d.rows = res.Params.Rows()
	}
}

func (d *DetailTableData) GetRowCount() int {
	if d.err != nil {
		return 1
	}
	return len(d.rows)
}

func (d *DetailTableData) GetColumnCount() int {
	return 2
}

func (d *DetailTableData) GetCell(row, column int) *tview.TableCell {
	if d.err != nil {
		if column == 0 {
			return tview.NewTableCell("Error:")
		}
		return tview.NewTableCell(d.err.Error()).SetTextColor(tcell.ColorRed)
	}
	if row < 0 || row >= len(d.rows) {
		return nil
	}
	if column == 0 {
		return tview.NewTableCell(fmt.Sprintf("[lightskyblue]%s:", d.rows[row].Label))
	}
	return tview.NewTableCell(fmt.Sprintf("[white]%s", d.rows[row].Value))
}
