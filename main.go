package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/jrwynneiii/mmwrf/config"
	"github.com/jrwynneiii/mmwrf/mmwave"
	"github.com/jrwynneiii/mmwrf/report"
	"github.com/jrwynneiii/mmwrf/rfparser"
	"github.com/jrwynneiii/mmwrf/tui"
)

func loadConfig() (*config.File, *config.Radar) {
	path := cli.Config
	if path == "" {
		path = config.FindPath(config.SearchPaths...)
	}
	if path == "" {
		log.Info("Attempting to use environment variables")
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	radar, err := cfg.Build()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	log.Debugf("Using platform %s, scale factor %g, %s mode", radar.Platform.Name, radar.RFFreqScaleFactor, radar.Ctrl.DFEMode)
	return cfg, radar
}

func derive(radar *config.Radar) {
	format, err := report.ParseFormat(cli.Derive.Format)
	if err != nil {
		log.Fatal(err)
	}

	p := rfparser.New(radar.Platform, rfparser.WithLogger(log.Default()))

	var params []*rfparser.OutParams
	first := cli.Derive.SubFrame
	if cli.Derive.All {
		first = 0
		params, err = p.ParseAll(&radar.Open, &radar.Ctrl, &radar.ADCBuf, radar.RFFreqScaleFactor, radar.BPMEnabled)
	} else {
		var out *rfparser.OutParams
		out, err = p.Parse(first, &radar.Open, &radar.Ctrl, &radar.ADCBuf, radar.RFFreqScaleFactor, radar.BPMEnabled)
		params = append(params, out)
	}
	if err != nil {
		log.Fatalf("Configuration rejected: %v", err)
	}

	rep := report.New(radar.Platform, radar.RFFreqScaleFactor, first, params...)
	if err := rep.Write(os.Stdout, format); err != nil {
		log.Fatalf("Could not write report: %v", err)
	}
}

func listSubFrames(radar *config.Radar) {
	failed := false
	for _, res := range tui.Evaluate(rfparser.New(radar.Platform), radar) {
		if res.Err != nil {
			failed = true
			fmt.Printf("%d\t%s\t%v\n", res.Index, rfparser.CodeOf(res.Err), res.Err)
			continue
		}
		sf := res.Params
		fmt.Printf("%d\tOK\t%dTx x %dRx, %d x %d bins, %s frame\n",
			res.Index, sf.NumTxAntennas, sf.NumRxAntennas, sf.NumRangeBins, sf.NumDopplerBins,
			humanize.FormatFloat("#.###", sf.FramePeriod)+" ms")
	}
	if failed {
		os.Exit(1)
	}
}

func listPlatforms() {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tRX\tTX\tVIRTUAL\tCHIRP THRESHOLD\tADCBUF\tSCALE")
	for _, name := range mmwave.PlatformNames() {
		p, _ := mmwave.LookupPlatform(name)
		marker := ""
		if name == mmwave.DefaultPlatformName {
			marker = " (default)"
		}
		fmt.Fprintf(tw, "%s%s\t%v\t%v\t%d\t%d\t%s\t%g\n",
			p.Name, marker, p.RxOrder[:p.NumRxChannels], p.TxOrder[:p.NumTxAntennas],
			p.MaxVirtualAntennas, p.MaxChirpThreshold, humanize.IBytes(uint64(p.ADCBufMemSize)), p.RFFreqScaleFactor)
	}
	tw.Flush()
}

func main() {
	flags := kong.Parse(&cli)
	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if cli.Profile {
		prof, err := os.Create("./cpu.pprof")
		if err != nil {
			panic(err)
		}
		pprof.StartCPUProfile(prof)
		defer pprof.StopCPUProfile()
	}

	switch flags.Command() {
	case "derive":
		_, radar := loadConfig()
		derive(radar)

	case "subframes":
		_, radar := loadConfig()
		listSubFrames(radar)

	case "platforms":
		listPlatforms()

	case "view":
		cfg, radar := loadConfig()
		results := tui.Evaluate(rfparser.New(radar.Platform), radar)
		tui.StartUI(results, radar.Platform.Name, cfg.TUI)

	default:
		log.Info("Command not recognized")
	}
}
