package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/atomlab/pulsekit"
	"github.com/atomlab/pulsekit/abstractrepr"
	"github.com/atomlab/pulsekit/channels"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "channels":
		channelsCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "pulsekit CLI\n\nUsage:\n  pulsekit validate -kind sequence|device|layout|register|noise file.json\n  pulsekit channels -f device.yaml")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var kindStr string
	fs.StringVar(&kindStr, "kind", "sequence", "object kind to validate against")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	kind, ok := abstractrepr.ParseKind(kindStr)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown kind %q\n", kindStr)
		os.Exit(2)
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := abstractrepr.Validate(string(data), kind); err != nil {
		printIssues(err)
		os.Exit(1)
	}
	fmt.Printf("%s: valid %s\n", fs.Arg(0), kind)
}

func channelsCmd(args []string) {
	fs := flag.NewFlagSet("channels", flag.ExitOnError)
	var path string
	fs.StringVar(&path, "f", "", "device channel configuration (YAML)")
	_ = fs.Parse(args)
	if path == "" {
		fs.Usage()
		os.Exit(2)
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()
	cfg, err := channels.LoadDeviceConfig(f)
	if err != nil {
		printIssues(err)
		os.Exit(1)
	}
	dmms, err := cfg.BuildDMMs()
	if err != nil {
		printIssues(err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d DMM channel(s)\n", cfg.Name, len(dmms))
	for _, nd := range dmms {
		if bd, ok := nd.DMM.BottomDetuning(); ok {
			fmt.Printf("  %s (bottom detuning %g rad/µs)\n", nd.Name, bd)
		} else {
			fmt.Printf("  %s\n", nd.Name)
		}
	}
}

func printIssues(err error) {
	if iss, ok := pulsekit.AsIssues(err); ok {
		for _, it := range iss {
			fmt.Fprintf(os.Stderr, "%s at %s: %s\n", it.Code, it.Path, it.Message)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
