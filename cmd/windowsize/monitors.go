package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/windowsize/internal/config"
	"github.com/1broseidon/windowsize/internal/platform"
	"github.com/1broseidon/windowsize/internal/windowsize"
)

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: windowsize monitors")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print each monitor as a {frame, visibleFrame, scaleFactor} record.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	view, err := platform.NewLinuxViewFromDisplay(targetSpec(cfg), cfg.ScaleFactor, newLogger(cfg.Log.Level))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer view.Disconnect()

	monitors, err := view.Monitors()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list monitors: %v\n", err)
		return 1
	}
	if err := printValue(os.Stdout, windowsize.MakeMonitorList(monitors)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
