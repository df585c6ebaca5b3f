package main

var cli struct {
	Verbose bool   `help:"Prints debug output by default"`
	Profile bool   `help:"Output a pprof profile"`
	Config  string `short:"c" type:"path" help:"HCL radar configuration. Searched in /etc/mmwrf, ~/.config/mmwrf and the working directory when unset"`
	Derive  struct {
		SubFrame uint8  `name:"subframe" short:"s" default:"0" help:"Index of the sub-frame to derive"`
		All      bool   `help:"Derive every configured sub-frame"`
		Format   string `short:"f" enum:"text,yaml,json" default:"text" help:"Output format (text, yaml, json)"`
	} `cmd:"" help:"Derive and validate the parameters of one or all sub-frames"`
	Subframes struct {
	} `cmd:"" help:"List the configured sub-frames and whether each one is valid"`
	Platforms struct {
	} `cmd:"" help:"List the built-in platforms"`
	View struct {
	} `cmd:"" help:"Browse the derived parameters in the TUI"`
}
