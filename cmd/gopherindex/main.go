package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopherindex/internal/crawl"
	"gopherindex/internal/logging"
	"gopherindex/internal/report"
	"gopherindex/internal/sink"
)

const (
	defaultHost = "comp3310.ddns.net"
	defaultPort = "70"
	outputDir   = "out"
)

func main() {
	var (
		host     string
		portStr  string
		keep     bool
		logLevel string
	)

	fs := flag.NewFlagSet("gopherindex", flag.ContinueOnError)
	fs.StringVar(&host, "n", defaultHost, "origin hostname")
	fs.StringVar(&portStr, "p", defaultPort, "origin port")
	fs.BoolVar(&keep, "d", false, "keep the download directory after the run")
	fs.StringVar(&logLevel, "log-level", "notice", "log level: debug, info, notice, warning, error")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fs.Usage()
		os.Exit(0)
	}
	if fs.NArg() > 0 {
		fs.Usage()
		os.Exit(0)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gopherindex: -p must be an integer in [0, 65535], got %q\n", portStr)
		os.Exit(0)
	}

	log := logging.Configure(logLevel)
	if err := run(host, uint16(port), keep, log); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

// run wires the sink and crawl controller together and renders the report.
// The sink is only removed once the crawl has actually succeeded, per
// spec.md §6's "successful termination" contract — a hard failure leaves
// out/ and every partial download in place for inspection.
func run(host string, port uint16, keep bool, log *logging.Logger) error {
	sk, err := sink.New(outputDir)
	if err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	controller := crawl.New(host, port, sk, log)
	if err := controller.Run(); err != nil {
		return fmt.Errorf("crawl %s:%d: %w", host, port, err)
	}

	fmt.Print(report.Render(controller.State(), controller.Registry().InvalidRefs()))

	if !keep {
		return sk.Close()
	}
	return nil
}
