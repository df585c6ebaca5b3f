package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Row is one labelled value of the human-readable rendering.
type Row struct {
	Label string
	Value string
}

func humanSI(v float64, unit string) string {
	fract, suffix := humanize.ComputeSI(v)
	return fmt.Sprintf("%0.2f %s%s", fract, suffix, unit)
}

// Rows lists the parameters of one sub-frame in display order.
func (sf *SubFrame) Rows() []Row {
	txMode := "single"
	if !sf.ValidProfileHasOneTxPerChirp {
		txMode = "multiple"
	}
	return []Row{
		{"Profile", fmt.Sprintf("%d", sf.ValidProfileIdx)},
		{"Antennas", fmt.Sprintf("%d Tx x %d Rx = %d virtual", sf.NumTxAntennas, sf.NumRxAntennas, sf.NumVirtualAntennas)},
		{"Virtual azimuth / elevation", fmt.Sprintf("%d / %d", sf.NumVirtualAntAzim, sf.NumVirtualAntElev)},
		{"Tx order", fmt.Sprintf("%v", sf.TxAntennas())},
		{"Rx order", fmt.Sprintf("%v", sf.RxAntennas())},
		{"Tx per chirp", txMode},
		{"ADC samples / range bins", fmt.Sprintf("%d / %d", sf.NumADCSamples, sf.NumRangeBins)},
		{"Chirps per frame", humanize.Comma(int64(sf.NumChirpsPerFrame))},
		{"Doppler chirps / bins", fmt.Sprintf("%d / %d", sf.NumDopplerChirps, sf.NumDopplerBins)},
		{"Chirps per chirp event", fmt.Sprintf("%d", sf.NumChirpsPerChirpEvent)},
		{"ADCBuf per channel", humanize.IBytes(uint64(sf.ADCBufChanDataSize))},
		{"ADCBuf utilization", fmt.Sprintf("%.1f%%", sf.ADCBufUtilization)},
		{"Bandwidth", humanSI(sf.Bandwidth, "Hz")},
		{"Center frequency", humanSI(sf.CenterFreq, "Hz")},
		{"Range resolution", humanSI(sf.RangeStep, "m")},
		{"Max range", humanSI(sf.MaxRange, "m")},
		{"Velocity resolution", humanSI(sf.DopplerStep, "m/s")},
		{"Max velocity", humanSI(sf.MaxVelocity, "m/s")},
		{"Chirp interval", humanSI(sf.ChirpInterval*1e-3, "s")},
		{"Frame period", humanSI(sf.FramePeriod*1e-3, "s")},
		{"Active time / duty cycle", fmt.Sprintf("%s / %.1f%%", humanSI(sf.ActiveTime*1e-3, "s"), sf.DutyCycle)},
	}
}

func (s *Summary) Rows() []Row {
	return []Row{
		{"Frame period", humanSI(s.FramePeriod*1e-3, "s")},
		{"Active time / duty cycle", fmt.Sprintf("%s / %.1f%%", humanSI(s.ActiveTime*1e-3, "s"), s.DutyCycle)},
		{"Finest range resolution", humanSI(s.FinestRangeStep, "m")},
		{"Max range", humanSI(s.MaxRange, "m")},
		{"Max velocity", humanSI(s.MaxVelocity, "m/s")},
	}
}

// Write renders the report in the requested format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report: encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report: encode json: %w", err)
		}
		return nil
	case FormatText, "":
		return r.writeText(w)
	}
	return fmt.Errorf("report.Format: unknown format %q", format)
}

func (r *Report) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Platform:\t%s (scale factor %g)\n", r.Platform, r.RFFreqScaleFactor)
	for i := range r.SubFrames {
		sf := &r.SubFrames[i]
		fmt.Fprintf(tw, "\nSub-frame %d\n", sf.Index)
		for _, row := range sf.Rows() {
			fmt.Fprintf(tw, "  %s:\t%s\n", row.Label, row.Value)
		}
	}
	if len(r.SubFrames) > 1 {
		fmt.Fprintln(tw, "\nFrame")
		for _, row := range r.Summary.Rows() {
			fmt.Fprintf(tw, "  %s:\t%s\n", row.Label, row.Value)
		}
	}
	return tw.Flush()
}
